package repository

import (
	"context"

	"github.com/clinickart/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repositories struct {
	Vendors        Vendors
	VendorProfiles VendorProfiles
}

// NewMySQLRepositories expects the schema from MySQLSchema to be applied.
func NewMySQLRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Vendors:        newVendorMySQLRepository(db),
		VendorProfiles: newVendorProfileMySQLRepository(db),
	}
}

// NewMongoRepositories creates the unique indexes the repositories rely on
// before returning.
func NewMongoRepositories(ctx context.Context, db *mongo.Database) (*Repositories, error) {
	vendors := newVendorMongoRepository(db)
	if err := vendors.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	profiles := newVendorProfileMongoRepository(db)
	if err := profiles.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return &Repositories{
		Vendors:        vendors,
		VendorProfiles: profiles,
	}, nil
}

func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Vendors:        newVendorMemoryRepository(),
		VendorProfiles: newVendorProfileMemoryRepository(),
	}
}

type Vendors interface {
	// Create fails with domain.ErrDuplicateEntry when the email is taken.
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByEmail(ctx context.Context, email string) (*domain.Vendor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
	// Update replaces the stored vendor including its refresh tokens.
	Update(ctx context.Context, vendor *domain.Vendor) error
	Count(ctx context.Context) (int64, error)
	CountByStep(ctx context.Context) (map[domain.RegistrationStep]int64, error)
}

type VendorProfiles interface {
	// Create fails with domain.ErrDuplicateEntry when the vendor already has
	// a profile or the registration number is taken.
	Create(ctx context.Context, profile *domain.VendorProfile) error
	GetByVendorID(ctx context.Context, vendorID uuid.UUID) (*domain.VendorProfile, error)
	GetByRegistrationNumber(ctx context.Context, number string) (*domain.VendorProfile, error)
	Update(ctx context.Context, profile *domain.VendorProfile) error
}
