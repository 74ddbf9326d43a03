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

const vendorsCollection = "vendors"

type refreshTokenDocument struct {
	Token     string    `bson:"token"`
	CreatedAt time.Time `bson:"created_at"`
}

type vendorDocument struct {
	ID                      string                 `bson:"_id"`
	FirstName               string                 `bson:"first_name"`
	LastName                string                 `bson:"last_name"`
	Email                   string                 `bson:"email"`
	Password                string                 `bson:"password"`
	Role                    string                 `bson:"role"`
	IsEmailVerified         bool                   `bson:"is_email_verified"`
	IsRegistrationComplete  bool                   `bson:"is_registration_complete"`
	RegistrationCompletedAt *time.Time             `bson:"registration_completed_at,omitempty"`
	RegistrationStep        string                 `bson:"registration_step"`
	IsProfileComplete       bool                   `bson:"is_profile_complete"`
	ProfileCompletedAt      *time.Time             `bson:"profile_completed_at,omitempty"`
	IsActive                bool                   `bson:"is_active"`
	IsApproved              bool                   `bson:"is_approved"`
	RefreshTokens           []refreshTokenDocument `bson:"refresh_tokens"`
	LastLoginAt             *time.Time             `bson:"last_login_at,omitempty"`
	CreatedAt               time.Time              `bson:"created_at"`
	UpdatedAt               time.Time              `bson:"updated_at"`
}

func newVendorDocument(v *domain.Vendor) vendorDocument {
	tokens := make([]refreshTokenDocument, 0, len(v.RefreshTokens))
	for _, rt := range v.RefreshTokens {
		tokens = append(tokens, refreshTokenDocument{Token: rt.Token, CreatedAt: rt.CreatedAt})
	}

	return vendorDocument{
		ID:                      v.ID.String(),
		FirstName:               v.FirstName,
		LastName:                v.LastName,
		Email:                   v.Email,
		Password:                v.Password,
		Role:                    v.Role,
		IsEmailVerified:         v.IsEmailVerified,
		IsRegistrationComplete:  v.IsRegistrationComplete,
		RegistrationCompletedAt: v.RegistrationCompletedAt,
		RegistrationStep:        string(v.RegistrationStep),
		IsProfileComplete:       v.IsProfileComplete,
		ProfileCompletedAt:      v.ProfileCompletedAt,
		IsActive:                v.IsActive,
		IsApproved:              v.IsApproved,
		RefreshTokens:           tokens,
		LastLoginAt:             v.LastLoginAt,
		CreatedAt:               v.CreatedAt,
		UpdatedAt:               v.UpdatedAt,
	}
}

func (d vendorDocument) toDomain() (*domain.Vendor, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse vendor id %q: %w", d.ID, err)
	}

	var tokens []domain.RefreshToken
	for _, rt := range d.RefreshTokens {
		tokens = append(tokens, domain.RefreshToken{Token: rt.Token, CreatedAt: rt.CreatedAt})
	}

	return &domain.Vendor{
		ID:                      id,
		FirstName:               d.FirstName,
		LastName:                d.LastName,
		Email:                   d.Email,
		Password:                d.Password,
		Role:                    d.Role,
		IsEmailVerified:         d.IsEmailVerified,
		IsRegistrationComplete:  d.IsRegistrationComplete,
		RegistrationCompletedAt: d.RegistrationCompletedAt,
		RegistrationStep:        domain.RegistrationStep(d.RegistrationStep),
		IsProfileComplete:       d.IsProfileComplete,
		ProfileCompletedAt:      d.ProfileCompletedAt,
		IsActive:                d.IsActive,
		IsApproved:              d.IsApproved,
		RefreshTokens:           tokens,
		LastLoginAt:             d.LastLoginAt,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}, nil
}

type vendorMongoRepository struct {
	collection *mongo.Collection
}

func newVendorMongoRepository(db *mongo.Database) *vendorMongoRepository {
	return &vendorMongoRepository{
		collection: db.Collection(vendorsCollection),
	}
}

func (r *vendorMongoRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_email"),
		},
		{
			Keys:    bson.D{{Key: "registration_step", Value: 1}},
			Options: options.Index().SetName("idx_registration_step"),
		},
	})
	if err != nil {
		return fmt.Errorf("create vendor indexes failed: %w", err)
	}
	return nil
}

func (r *vendorMongoRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	if _, err := r.collection.InsertOne(ctx, newVendorDocument(vendor)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("insert vendor failed: %w", err)
	}
	return nil
}

func (r *vendorMongoRepository) GetByEmail(ctx context.Context, email string) (*domain.Vendor, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *vendorMongoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *vendorMongoRepository) findOne(ctx context.Context, filter bson.M) (*domain.Vendor, error) {
	var doc vendorDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find vendor failed: %w", err)
	}
	return doc.toDomain()
}

func (r *vendorMongoRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": vendor.ID.String()}, newVendorDocument(vendor))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("replace vendor failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vendorMongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count vendors failed: %w", err)
	}
	return count, nil
}

func (r *vendorMongoRepository) CountByStep(ctx context.Context) (map[domain.RegistrationStep]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$registration_step"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate vendors by step failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Step  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode vendors by step failed: %w", err)
	}

	stats := make(map[domain.RegistrationStep]int64, len(rows))
	for _, row := range rows {
		stats[domain.RegistrationStep(row.Step)] = row.Count
	}
	return stats, nil
}
