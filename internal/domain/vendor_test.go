package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVendor_AddRefreshToken_KeepsNewestFive(t *testing.T) {
	var v Vendor
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		v.AddRefreshToken(fmt.Sprintf("t%d", i), start.Add(time.Duration(i)*time.Minute))
		assert.LessOrEqual(t, len(v.RefreshTokens), MaxRefreshTokens)
	}

	assert.Len(t, v.RefreshTokens, MaxRefreshTokens)
	assert.Equal(t, "t3", v.RefreshTokens[0].Token)
	assert.Equal(t, "t7", v.RefreshTokens[4].Token)
	assert.False(t, v.HasRefreshToken("t2"))
	assert.True(t, v.HasRefreshToken("t5"))
}

func TestVendor_RemoveRefreshToken(t *testing.T) {
	var v Vendor
	now := time.Now()
	v.AddRefreshToken("a", now)
	v.AddRefreshToken("b", now)

	assert.True(t, v.RemoveRefreshToken("a"))
	assert.False(t, v.RemoveRefreshToken("a"))
	assert.False(t, v.RemoveRefreshToken("missing"))
	assert.Len(t, v.RefreshTokens, 1)
	assert.Equal(t, "b", v.RefreshTokens[0].Token)
}

func TestVendor_NextAction(t *testing.T) {
	tests := []struct {
		name     string
		verified bool
		profile  bool
		want     NextAction
	}{
		{"unverified", false, false, ActionVerifyEmail},
		{"verified", true, false, ActionCompleteProfile},
		{"complete", true, true, ActionStartSelling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Vendor{IsEmailVerified: tt.verified, IsProfileComplete: tt.profile}
			assert.Equal(t, tt.want, v.NextAction())
			assert.Equal(t, tt.verified && tt.profile, v.CanAddProducts())
		})
	}
}

func TestVendor_AdvanceStepIsMonotonic(t *testing.T) {
	v := Vendor{RegistrationStep: StepEmailVerification}

	assert.True(t, v.AdvanceStep(StepProfileSetup))
	assert.False(t, v.AdvanceStep(StepEmailVerification))
	assert.False(t, v.AdvanceStep(StepProfileSetup))
	assert.False(t, v.AdvanceStep("bogus"))
	assert.Equal(t, StepProfileSetup, v.RegistrationStep)

	assert.True(t, v.AdvanceStep(StepCompleted))
	assert.False(t, v.AdvanceStep(StepProfileSetup))
	assert.Equal(t, StepCompleted, v.RegistrationStep)
}

func TestVendor_FullName(t *testing.T) {
	v := Vendor{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", v.FullName())
}

func TestVendorProfile(t *testing.T) {
	p := VendorProfile{
		Phone:                      "+91 98765 43210",
		BusinessName:               "Care Pharmacy",
		BusinessType:               BusinessPharmacy,
		BusinessRegistrationNumber: "REG-1",
		Address: Address{
			Street:  "12 MG Road",
			Area:    "Indiranagar",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560038",
			Country: DefaultCountry,
		},
		BankDetails: BankDetails{
			BankName:          "SBI",
			AccountHolderName: "Jane Doe",
			AccountNumber:     "1234567890",
			IFSCCode:          "SBIN0001234",
			BranchName:        "Indiranagar",
		},
	}

	assert.Equal(t, "12 MG Road, Indiranagar, Bengaluru, Karnataka, 560038, India", p.FullAddress())
	assert.True(t, p.IsComplete())

	p.BankDetails.IFSCCode = ""
	assert.False(t, p.IsComplete())
}

func TestPrincipal_Is(t *testing.T) {
	p := &Principal{Kind: KindVendor, ID: uuid.New()}

	assert.True(t, p.Is(KindVendor))
	assert.True(t, p.Is(KindAdmin, KindVendor))
	assert.False(t, p.Is(KindAdmin))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.Is(KindVendor))
}
