package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinickart/backend/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const vendorProfilesCollection = "vendor_profiles"

type addressDocument struct {
	Street   string `bson:"street"`
	Area     string `bson:"area"`
	City     string `bson:"city"`
	State    string `bson:"state"`
	Pincode  string `bson:"pincode"`
	Country  string `bson:"country"`
	Landmark string `bson:"landmark,omitempty"`
}

type bankDetailsDocument struct {
	BankName          string `bson:"bank_name"`
	AccountHolderName string `bson:"account_holder_name"`
	AccountNumber     string `bson:"account_number"`
	IFSCCode          string `bson:"ifsc_code"`
	BranchName        string `bson:"branch_name"`
}

type vendorProfileDocument struct {
	ID                         string              `bson:"_id"`
	VendorID                   string              `bson:"vendor_id"`
	Phone                      string              `bson:"phone"`
	AlternatePhone             string              `bson:"alternate_phone,omitempty"`
	BusinessName               string              `bson:"business_name"`
	BusinessType               string              `bson:"business_type"`
	BusinessRegistrationNumber string              `bson:"business_registration_number"`
	GSTNumber                  string              `bson:"gst_number,omitempty"`
	LicenseNumber              string              `bson:"license_number,omitempty"`
	Address                    addressDocument     `bson:"address"`
	Description                string              `bson:"description,omitempty"`
	EstablishedYear            int                 `bson:"established_year,omitempty"`
	BankDetails                bankDetailsDocument `bson:"bank_details"`
	CreatedAt                  time.Time           `bson:"created_at"`
	UpdatedAt                  time.Time           `bson:"updated_at"`
}

func newVendorProfileDocument(p *domain.VendorProfile) vendorProfileDocument {
	return vendorProfileDocument{
		ID:                         p.ID.String(),
		VendorID:                   p.VendorID.String(),
		Phone:                      p.Phone,
		AlternatePhone:             p.AlternatePhone,
		BusinessName:               p.BusinessName,
		BusinessType:               string(p.BusinessType),
		BusinessRegistrationNumber: p.BusinessRegistrationNumber,
		GSTNumber:                  p.GSTNumber,
		LicenseNumber:              p.LicenseNumber,
		Address:                    addressDocument(p.Address),
		Description:                p.Description,
		EstablishedYear:            p.EstablishedYear,
		BankDetails:                bankDetailsDocument(p.BankDetails),
		CreatedAt:                  p.CreatedAt,
		UpdatedAt:                  p.UpdatedAt,
	}
}

func (d vendorProfileDocument) toDomain() (*domain.VendorProfile, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse vendor profile id %q: %w", d.ID, err)
	}
	vendorID, err := uuid.Parse(d.VendorID)
	if err != nil {
		return nil, fmt.Errorf("parse vendor id %q: %w", d.VendorID, err)
	}

	return &domain.VendorProfile{
		ID:                         id,
		VendorID:                   vendorID,
		Phone:                      d.Phone,
		AlternatePhone:             d.AlternatePhone,
		BusinessName:               d.BusinessName,
		BusinessType:               domain.BusinessType(d.BusinessType),
		BusinessRegistrationNumber: d.BusinessRegistrationNumber,
		GSTNumber:                  d.GSTNumber,
		LicenseNumber:              d.LicenseNumber,
		Address:                    domain.Address(d.Address),
		Description:                d.Description,
		EstablishedYear:            d.EstablishedYear,
		BankDetails:                domain.BankDetails(d.BankDetails),
		CreatedAt:                  d.CreatedAt,
		UpdatedAt:                  d.UpdatedAt,
	}, nil
}

type vendorProfileMongoRepository struct {
	collection *mongo.Collection
}

func newVendorProfileMongoRepository(db *mongo.Database) *vendorProfileMongoRepository {
	return &vendorProfileMongoRepository{
		collection: db.Collection(vendorProfilesCollection),
	}
}

func (r *vendorProfileMongoRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "vendor_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_vendor_id"),
		},
		{
			Keys:    bson.D{{Key: "business_registration_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_business_registration_number"),
		},
	})
	if err != nil {
		return fmt.Errorf("create vendor profile indexes failed: %w", err)
	}
	return nil
}

func (r *vendorProfileMongoRepository) Create(ctx context.Context, profile *domain.VendorProfile) error {
	if _, err := r.collection.InsertOne(ctx, newVendorProfileDocument(profile)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("insert vendor profile failed: %w", err)
	}
	return nil
}

func (r *vendorProfileMongoRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID) (*domain.VendorProfile, error) {
	return r.findOne(ctx, bson.M{"vendor_id": vendorID.String()})
}

func (r *vendorProfileMongoRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.VendorProfile, error) {
	return r.findOne(ctx, bson.M{"business_registration_number": number})
}

func (r *vendorProfileMongoRepository) findOne(ctx context.Context, filter bson.M) (*domain.VendorProfile, error) {
	var doc vendorProfileDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find vendor profile failed: %w", err)
	}
	return doc.toDomain()
}

func (r *vendorProfileMongoRepository) Update(ctx context.Context, profile *domain.VendorProfile) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID.String()}, newVendorProfileDocument(profile))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("replace vendor profile failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
