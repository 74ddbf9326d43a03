package repository

import (
	"context"
	"testing"
	"time"

	"github.com/clinickart/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backends store times with millisecond precision.
func testNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func newTestVendor(email string) *domain.Vendor {
	now := testNow()
	return &domain.Vendor{
		ID:               uuid.Must(uuid.NewV7()),
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            email,
		Password:         "$2a$04$hash",
		Role:             "vendor",
		IsEmailVerified:  true,
		RegistrationStep: domain.StepProfileSetup,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func newTestProfile(vendorID uuid.UUID, regNumber string) *domain.VendorProfile {
	now := testNow()
	return &domain.VendorProfile{
		ID:                         uuid.Must(uuid.NewV7()),
		VendorID:                   vendorID,
		Phone:                      "9876543210",
		BusinessName:               "Acme Pharma",
		BusinessType:               domain.BusinessPharmacy,
		BusinessRegistrationNumber: regNumber,
		Address: domain.Address{
			Street:  "12 MG Road",
			Area:    "Indiranagar",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560038",
			Country: domain.DefaultCountry,
		},
		Description: "Retail pharmacy",
		BankDetails: domain.BankDetails{
			BankName:          "HDFC",
			AccountHolderName: "Acme Pharma",
			AccountNumber:     "50100012345678",
			IFSCCode:          "HDFC0001234",
			BranchName:        "Indiranagar",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testVendorsContract(t *testing.T, repos *Repositories) {
	ctx := context.Background()
	vendors := repos.Vendors

	t.Run("create and get", func(t *testing.T) {
		v := newTestVendor("create@x.com")
		require.NoError(t, vendors.Create(ctx, v))

		byEmail, err := vendors.GetByEmail(ctx, "create@x.com")
		require.NoError(t, err)
		assert.Equal(t, v.ID, byEmail.ID)
		assert.Equal(t, "Jane", byEmail.FirstName)
		assert.Equal(t, domain.StepProfileSetup, byEmail.RegistrationStep)
		assert.True(t, byEmail.IsEmailVerified)
		assert.WithinDuration(t, v.CreatedAt, byEmail.CreatedAt, time.Millisecond)
		assert.Nil(t, byEmail.RegistrationCompletedAt)

		byID, err := vendors.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "create@x.com", byID.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		require.NoError(t, vendors.Create(ctx, newTestVendor("dup@x.com")))
		err := vendors.Create(ctx, newTestVendor("dup@x.com"))
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := vendors.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = vendors.GetByID(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = vendors.Update(ctx, newTestVendor("ghost@x.com"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update replaces refresh tokens", func(t *testing.T) {
		v := newTestVendor("tokens@x.com")
		v.AddRefreshToken("t1", testNow())
		require.NoError(t, vendors.Create(ctx, v))

		stored, err := vendors.GetByID(ctx, v.ID)
		require.NoError(t, err)
		require.Len(t, stored.RefreshTokens, 1)

		stored.RemoveRefreshToken("t1")
		stored.AddRefreshToken("t2", testNow())
		stored.AddRefreshToken("t3", testNow())
		completed := testNow()
		stored.IsProfileComplete = true
		stored.ProfileCompletedAt = &completed
		stored.AdvanceStep(domain.StepCompleted)
		stored.UpdatedAt = testNow().Add(time.Second)
		require.NoError(t, vendors.Update(ctx, stored))

		reloaded, err := vendors.GetByID(ctx, v.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.RefreshTokens, 2)
		assert.Equal(t, "t2", reloaded.RefreshTokens[0].Token)
		assert.Equal(t, "t3", reloaded.RefreshTokens[1].Token)
		assert.False(t, reloaded.HasRefreshToken("t1"))
		assert.Equal(t, domain.StepCompleted, reloaded.RegistrationStep)
		require.NotNil(t, reloaded.ProfileCompletedAt)
		assert.WithinDuration(t, completed, *reloaded.ProfileCompletedAt, time.Millisecond)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		v := newTestVendor("copy@x.com")
		require.NoError(t, vendors.Create(ctx, v))
		v.FirstName = "Changed"

		got, err := vendors.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.FirstName)
	})

	t.Run("counts", func(t *testing.T) {
		before, err := vendors.CountByStep(ctx)
		require.NoError(t, err)
		total, err := vendors.Count(ctx)
		require.NoError(t, err)

		pending := newTestVendor("count@x.com")
		pending.IsEmailVerified = false
		pending.RegistrationStep = domain.StepEmailVerification
		require.NoError(t, vendors.Create(ctx, pending))

		after, err := vendors.CountByStep(ctx)
		require.NoError(t, err)
		assert.Equal(t, before[domain.StepEmailVerification]+1, after[domain.StepEmailVerification])

		totalAfter, err := vendors.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, total+1, totalAfter)
	})
}

func testVendorProfilesContract(t *testing.T, repos *Repositories) {
	ctx := context.Background()
	profiles := repos.VendorProfiles

	owner := func(email string) uuid.UUID {
		v := newTestVendor(email)
		require.NoError(t, repos.Vendors.Create(ctx, v))
		return v.ID
	}

	t.Run("create and get", func(t *testing.T) {
		p := newTestProfile(owner("profile@x.com"), "REG-001")
		require.NoError(t, profiles.Create(ctx, p))

		got, err := profiles.GetByVendorID(ctx, p.VendorID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, p.Address, got.Address)
		assert.Equal(t, p.BankDetails, got.BankDetails)
		assert.Equal(t, domain.BusinessPharmacy, got.BusinessType)
		assert.True(t, got.IsComplete())

		byNumber, err := profiles.GetByRegistrationNumber(ctx, "REG-001")
		require.NoError(t, err)
		assert.Equal(t, p.ID, byNumber.ID)
	})

	t.Run("one profile per vendor", func(t *testing.T) {
		vendorID := owner("twice@x.com")
		require.NoError(t, profiles.Create(ctx, newTestProfile(vendorID, "REG-010")))
		err := profiles.Create(ctx, newTestProfile(vendorID, "REG-011"))
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	})

	t.Run("unique registration number", func(t *testing.T) {
		require.NoError(t, profiles.Create(ctx, newTestProfile(owner("a@x.com"), "REG-020")))
		err := profiles.Create(ctx, newTestProfile(owner("b@x.com"), "REG-020"))
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	})

	t.Run("update", func(t *testing.T) {
		p := newTestProfile(owner("update@x.com"), "REG-030")
		require.NoError(t, profiles.Create(ctx, p))

		p.BusinessName = "Acme Clinic"
		p.Address.Landmark = "Near metro"
		p.UpdatedAt = testNow().Add(time.Second)
		require.NoError(t, profiles.Update(ctx, p))

		got, err := profiles.GetByVendorID(ctx, p.VendorID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Clinic", got.BusinessName)
		assert.Equal(t, "Near metro", got.Address.Landmark)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := profiles.GetByVendorID(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = profiles.GetByRegistrationNumber(ctx, "REG-404")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = profiles.Update(ctx, newTestProfile(uuid.Must(uuid.NewV7()), "REG-405"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
