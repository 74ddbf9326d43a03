package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCountry = "India"

type BusinessType string

const (
	BusinessPharmacy         BusinessType = "pharmacy"
	BusinessClinic           BusinessType = "clinic"
	BusinessHospital         BusinessType = "hospital"
	BusinessLaboratory       BusinessType = "laboratory"
	BusinessMedicalEquipment BusinessType = "medical_equipment"
	BusinessOther            BusinessType = "other"
)

type Address struct {
	Street   string `json:"street"`
	Area     string `json:"area"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Country  string `json:"country"`
	Landmark string `json:"landmark,omitempty"`
}

type BankDetails struct {
	BankName          string `json:"bank_name"`
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	BranchName        string `json:"branch_name"`
}

type VendorProfile struct {
	ID                         uuid.UUID    `json:"id"`
	VendorID                   uuid.UUID    `json:"vendor_id"`
	Phone                      string       `json:"phone"`
	AlternatePhone             string       `json:"alternate_phone,omitempty"`
	BusinessName               string       `json:"business_name"`
	BusinessType               BusinessType `json:"business_type"`
	BusinessRegistrationNumber string       `json:"business_registration_number"`
	GSTNumber                  string       `json:"gst_number,omitempty"`
	LicenseNumber              string       `json:"license_number,omitempty"`
	Address                    Address      `json:"address"`
	Description                string       `json:"description,omitempty"`
	EstablishedYear            int          `json:"established_year,omitempty"`
	BankDetails                BankDetails  `json:"bank_details"`
	CreatedAt                  time.Time    `json:"created_at"`
	UpdatedAt                  time.Time    `json:"updated_at"`
}

// FullAddress joins the non-empty address parts in postal order.
func (p *VendorProfile) FullAddress() string {
	a := p.Address
	parts := make([]string, 0, 6)
	for _, s := range []string{a.Street, a.Area, a.City, a.State, a.Pincode, a.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// IsComplete reports whether every mandatory profile field is present.
func (p *VendorProfile) IsComplete() bool {
	required := []string{
		p.Phone,
		p.BusinessName,
		string(p.BusinessType),
		p.BusinessRegistrationNumber,
		p.Address.Street,
		p.Address.Area,
		p.Address.City,
		p.Address.State,
		p.Address.Pincode,
		p.BankDetails.BankName,
		p.BankDetails.AccountHolderName,
		p.BankDetails.AccountNumber,
		p.BankDetails.IFSCCode,
		p.BankDetails.BranchName,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
