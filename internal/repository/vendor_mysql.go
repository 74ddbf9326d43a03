package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clinickart/backend/internal/db"
	"github.com/clinickart/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const vendorColumns = `id, first_name, last_name, email, password, role, is_email_verified, is_registration_complete,
	registration_completed_at, registration_step, is_profile_complete, profile_completed_at, is_active, is_approved,
	last_login_at, created_at, updated_at`

type vendorMySQLRepository struct {
	db *sqlx.DB
}

func newVendorMySQLRepository(db *sqlx.DB) *vendorMySQLRepository {
	return &vendorMySQLRepository{
		db: db,
	}
}

func (r *vendorMySQLRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
	INSERT INTO vendor
	(id, first_name, last_name, email, password, role, is_email_verified, is_registration_complete,
	registration_completed_at, registration_step, is_profile_complete, profile_completed_at, is_active, is_approved,
	last_login_at, created_at, updated_at)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, query,
		vendor.ID,
		vendor.FirstName,
		vendor.LastName,
		vendor.Email,
		vendor.Password,
		vendor.Role,
		vendor.IsEmailVerified,
		vendor.IsRegistrationComplete,
		vendor.RegistrationCompletedAt,
		vendor.RegistrationStep,
		vendor.IsProfileComplete,
		vendor.ProfileCompletedAt,
		vendor.IsActive,
		vendor.IsApproved,
		vendor.LastLoginAt,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	if err := insertRefreshTokens(ctx, tx, vendor.ID, vendor.RefreshTokens); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *vendorMySQLRepository) GetByEmail(ctx context.Context, email string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendor WHERE email = ?;`

	var vendor domain.Vendor
	if err := r.db.GetContext(ctx, &vendor, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from vendor by email failed: %w", err)
	}

	if err := r.loadRefreshTokens(ctx, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorMySQLRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendor WHERE id = uuid_to_bin(?);`

	var vendor domain.Vendor
	if err := r.db.GetContext(ctx, &vendor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from vendor by id failed: %w", err)
	}

	if err := r.loadRefreshTokens(ctx, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorMySQLRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
	UPDATE vendor SET
		first_name = ?, last_name = ?, email = ?, password = ?, role = ?, is_email_verified = ?,
		is_registration_complete = ?, registration_completed_at = ?, registration_step = ?,
		is_profile_complete = ?, profile_completed_at = ?, is_active = ?, is_approved = ?,
		last_login_at = ?, updated_at = ?
	WHERE id = uuid_to_bin(?);
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var found int
	if err := tx.GetContext(ctx, &found, `SELECT COUNT(*) FROM vendor WHERE id = uuid_to_bin(?) FOR UPDATE;`, vendor.ID); err != nil {
		return fmt.Errorf("lock vendor failed: %w", err)
	}
	if found == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, query,
		vendor.FirstName,
		vendor.LastName,
		vendor.Email,
		vendor.Password,
		vendor.Role,
		vendor.IsEmailVerified,
		vendor.IsRegistrationComplete,
		vendor.RegistrationCompletedAt,
		vendor.RegistrationStep,
		vendor.IsProfileComplete,
		vendor.ProfileCompletedAt,
		vendor.IsActive,
		vendor.IsApproved,
		vendor.LastLoginAt,
		vendor.UpdatedAt,
		vendor.ID,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("update vendor by id failed: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM vendor_refresh_token WHERE vendor_id = uuid_to_bin(?);`, vendor.ID); err != nil {
		return fmt.Errorf("delete vendor refresh tokens failed: %w", err)
	}
	if err := insertRefreshTokens(ctx, tx, vendor.ID, vendor.RefreshTokens); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *vendorMySQLRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM vendor`
	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count vendors failed: %w", err)
	}
	return count, nil
}

func (r *vendorMySQLRepository) CountByStep(ctx context.Context) (map[domain.RegistrationStep]int64, error) {
	const query = `
		SELECT registration_step, COUNT(*) AS count
		FROM vendor
		GROUP BY registration_step
	`

	type row struct {
		Step  domain.RegistrationStep `db:"registration_step"`
		Count int64                   `db:"count"`
	}

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count vendors by step failed: %w", err)
	}

	stats := make(map[domain.RegistrationStep]int64, len(rows))
	for _, s := range rows {
		stats[s.Step] = s.Count
	}
	return stats, nil
}

func (r *vendorMySQLRepository) loadRefreshTokens(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
	SELECT token, created_at FROM vendor_refresh_token WHERE vendor_id = uuid_to_bin(?) ORDER BY id;
	`
	var tokens []domain.RefreshToken
	if err := r.db.SelectContext(ctx, &tokens, query, vendor.ID); err != nil {
		return fmt.Errorf("select vendor refresh tokens failed: %w", err)
	}
	vendor.RefreshTokens = tokens
	return nil
}

func insertRefreshTokens(ctx context.Context, tx *sqlx.Tx, vendorID uuid.UUID, tokens []domain.RefreshToken) error {
	const query = `
	INSERT INTO vendor_refresh_token (vendor_id, token, created_at) VALUES(uuid_to_bin(?), ?, ?);
	`
	for _, rt := range tokens {
		if _, err := tx.ExecContext(ctx, query, vendorID, rt.Token, rt.CreatedAt); err != nil {
			return fmt.Errorf("insert vendor refresh token failed: %w", err)
		}
	}
	return nil
}
