package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinickart/backend/internal/db"
	"github.com/clinickart/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const vendorProfileColumns = `id, vendor_id, phone, alternate_phone, business_name, business_type,
	business_registration_number, gst_number, license_number, address_street, address_area, address_city,
	address_state, address_pincode, address_country, address_landmark, description, established_year,
	bank_name, bank_account_holder_name, bank_account_number, bank_ifsc_code, bank_branch_name,
	created_at, updated_at`

// vendorProfileRow is the flattened vendor_profile table row.
type vendorProfileRow struct {
	ID                         uuid.UUID `db:"id"`
	VendorID                   uuid.UUID `db:"vendor_id"`
	Phone                      string    `db:"phone"`
	AlternatePhone             string    `db:"alternate_phone"`
	BusinessName               string    `db:"business_name"`
	BusinessType               string    `db:"business_type"`
	BusinessRegistrationNumber string    `db:"business_registration_number"`
	GSTNumber                  string    `db:"gst_number"`
	LicenseNumber              string    `db:"license_number"`
	Street                     string    `db:"address_street"`
	Area                       string    `db:"address_area"`
	City                       string    `db:"address_city"`
	State                      string    `db:"address_state"`
	Pincode                    string    `db:"address_pincode"`
	Country                    string    `db:"address_country"`
	Landmark                   string    `db:"address_landmark"`
	Description                string    `db:"description"`
	EstablishedYear            int       `db:"established_year"`
	BankName                   string    `db:"bank_name"`
	AccountHolderName          string    `db:"bank_account_holder_name"`
	AccountNumber              string    `db:"bank_account_number"`
	IFSCCode                   string    `db:"bank_ifsc_code"`
	BranchName                 string    `db:"bank_branch_name"`
	CreatedAt                  time.Time `db:"created_at"`
	UpdatedAt                  time.Time `db:"updated_at"`
}

func (r vendorProfileRow) toDomain() *domain.VendorProfile {
	return &domain.VendorProfile{
		ID:                         r.ID,
		VendorID:                   r.VendorID,
		Phone:                      r.Phone,
		AlternatePhone:             r.AlternatePhone,
		BusinessName:               r.BusinessName,
		BusinessType:               domain.BusinessType(r.BusinessType),
		BusinessRegistrationNumber: r.BusinessRegistrationNumber,
		GSTNumber:                  r.GSTNumber,
		LicenseNumber:              r.LicenseNumber,
		Address: domain.Address{
			Street:   r.Street,
			Area:     r.Area,
			City:     r.City,
			State:    r.State,
			Pincode:  r.Pincode,
			Country:  r.Country,
			Landmark: r.Landmark,
		},
		Description:     r.Description,
		EstablishedYear: r.EstablishedYear,
		BankDetails: domain.BankDetails{
			BankName:          r.BankName,
			AccountHolderName: r.AccountHolderName,
			AccountNumber:     r.AccountNumber,
			IFSCCode:          r.IFSCCode,
			BranchName:        r.BranchName,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type vendorProfileMySQLRepository struct {
	db *sqlx.DB
}

func newVendorProfileMySQLRepository(db *sqlx.DB) *vendorProfileMySQLRepository {
	return &vendorProfileMySQLRepository{
		db: db,
	}
}

func (r *vendorProfileMySQLRepository) Create(ctx context.Context, p *domain.VendorProfile) error {
	const query = `
	INSERT INTO vendor_profile
	(id, vendor_id, phone, alternate_phone, business_name, business_type, business_registration_number,
	gst_number, license_number, address_street, address_area, address_city, address_state, address_pincode,
	address_country, address_landmark, description, established_year, bank_name, bank_account_holder_name,
	bank_account_number, bank_ifsc_code, bank_branch_name, created_at, updated_at)
	VALUES(uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.VendorID,
		p.Phone,
		p.AlternatePhone,
		p.BusinessName,
		p.BusinessType,
		p.BusinessRegistrationNumber,
		p.GSTNumber,
		p.LicenseNumber,
		p.Address.Street,
		p.Address.Area,
		p.Address.City,
		p.Address.State,
		p.Address.Pincode,
		p.Address.Country,
		p.Address.Landmark,
		p.Description,
		p.EstablishedYear,
		p.BankDetails.BankName,
		p.BankDetails.AccountHolderName,
		p.BankDetails.AccountNumber,
		p.BankDetails.IFSCCode,
		p.BankDetails.BranchName,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert vendor profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *vendorProfileMySQLRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID) (*domain.VendorProfile, error) {
	query := `SELECT ` + vendorProfileColumns + ` FROM vendor_profile WHERE vendor_id = uuid_to_bin(?);`

	var row vendorProfileRow
	if err := r.db.GetContext(ctx, &row, query, vendorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select vendor profile by vendor id failed: %w", err)
	}
	return row.toDomain(), nil
}

func (r *vendorProfileMySQLRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.VendorProfile, error) {
	query := `SELECT ` + vendorProfileColumns + ` FROM vendor_profile WHERE business_registration_number = ?;`

	var row vendorProfileRow
	if err := r.db.GetContext(ctx, &row, query, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select vendor profile by registration number failed: %w", err)
	}
	return row.toDomain(), nil
}

func (r *vendorProfileMySQLRepository) Update(ctx context.Context, p *domain.VendorProfile) error {
	const query = `
	UPDATE vendor_profile SET
		phone = ?, alternate_phone = ?, business_name = ?, business_type = ?, business_registration_number = ?,
		gst_number = ?, license_number = ?, address_street = ?, address_area = ?, address_city = ?,
		address_state = ?, address_pincode = ?, address_country = ?, address_landmark = ?, description = ?,
		established_year = ?, bank_name = ?, bank_account_holder_name = ?, bank_account_number = ?,
		bank_ifsc_code = ?, bank_branch_name = ?, updated_at = ?
	WHERE id = uuid_to_bin(?);
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Phone,
		p.AlternatePhone,
		p.BusinessName,
		p.BusinessType,
		p.BusinessRegistrationNumber,
		p.GSTNumber,
		p.LicenseNumber,
		p.Address.Street,
		p.Address.Area,
		p.Address.City,
		p.Address.State,
		p.Address.Pincode,
		p.Address.Country,
		p.Address.Landmark,
		p.Description,
		p.EstablishedYear,
		p.BankDetails.BankName,
		p.BankDetails.AccountHolderName,
		p.BankDetails.AccountNumber,
		p.BankDetails.IFSCCode,
		p.BankDetails.BranchName,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("update vendor profile failed: %w", err)
	}

	// updated_at always changes, so zero rows means the profile is gone.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
