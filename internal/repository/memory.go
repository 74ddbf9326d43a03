package repository

import (
	"context"
	"sync"

	"github.com/clinickart/backend/internal/domain"

	"github.com/google/uuid"
)

// The memory repositories back local runs and tests. They enforce the same
// unique keys as the database backends and hand out copies, never the
// stored values.

type vendorMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*domain.Vendor
	byEmail map[string]uuid.UUID
}

func newVendorMemoryRepository() *vendorMemoryRepository {
	return &vendorMemoryRepository{
		byID:    make(map[uuid.UUID]*domain.Vendor),
		byEmail: make(map[string]uuid.UUID),
	}
}

func cloneVendor(v *domain.Vendor) *domain.Vendor {
	c := *v
	if v.RefreshTokens != nil {
		c.RefreshTokens = append([]domain.RefreshToken(nil), v.RefreshTokens...)
	}
	return &c
}

func (r *vendorMemoryRepository) Create(_ context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[vendor.Email]; ok {
		return domain.ErrDuplicateEntry
	}
	if _, ok := r.byID[vendor.ID]; ok {
		return domain.ErrDuplicateEntry
	}

	r.byID[vendor.ID] = cloneVendor(vendor)
	r.byEmail[vendor.Email] = vendor.ID
	return nil
}

func (r *vendorMemoryRepository) GetByEmail(_ context.Context, email string) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneVendor(r.byID[id]), nil
}

func (r *vendorMemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneVendor(v), nil
}

func (r *vendorMemoryRepository) Update(_ context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[vendor.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if vendor.Email != current.Email {
		if _, taken := r.byEmail[vendor.Email]; taken {
			return domain.ErrDuplicateEntry
		}
		delete(r.byEmail, current.Email)
		r.byEmail[vendor.Email] = vendor.ID
	}

	r.byID[vendor.ID] = cloneVendor(vendor)
	return nil
}

func (r *vendorMemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byID)), nil
}

func (r *vendorMemoryRepository) CountByStep(_ context.Context) (map[domain.RegistrationStep]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[domain.RegistrationStep]int64)
	for _, v := range r.byID {
		stats[v.RegistrationStep]++
	}
	return stats, nil
}

type vendorProfileMemoryRepository struct {
	mu          sync.RWMutex
	byID        map[uuid.UUID]*domain.VendorProfile
	byVendor    map[uuid.UUID]uuid.UUID
	byRegNumber map[string]uuid.UUID
}

func newVendorProfileMemoryRepository() *vendorProfileMemoryRepository {
	return &vendorProfileMemoryRepository{
		byID:        make(map[uuid.UUID]*domain.VendorProfile),
		byVendor:    make(map[uuid.UUID]uuid.UUID),
		byRegNumber: make(map[string]uuid.UUID),
	}
}

func cloneProfile(p *domain.VendorProfile) *domain.VendorProfile {
	c := *p
	return &c
}

func (r *vendorProfileMemoryRepository) Create(_ context.Context, profile *domain.VendorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byVendor[profile.VendorID]; ok {
		return domain.ErrDuplicateEntry
	}
	if _, ok := r.byRegNumber[profile.BusinessRegistrationNumber]; ok {
		return domain.ErrDuplicateEntry
	}
	if _, ok := r.byID[profile.ID]; ok {
		return domain.ErrDuplicateEntry
	}

	r.byID[profile.ID] = cloneProfile(profile)
	r.byVendor[profile.VendorID] = profile.ID
	r.byRegNumber[profile.BusinessRegistrationNumber] = profile.ID
	return nil
}

func (r *vendorProfileMemoryRepository) GetByVendorID(_ context.Context, vendorID uuid.UUID) (*domain.VendorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byVendor[vendorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProfile(r.byID[id]), nil
}

func (r *vendorProfileMemoryRepository) GetByRegistrationNumber(_ context.Context, number string) (*domain.VendorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byRegNumber[number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProfile(r.byID[id]), nil
}

func (r *vendorProfileMemoryRepository) Update(_ context.Context, profile *domain.VendorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[profile.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if profile.BusinessRegistrationNumber != current.BusinessRegistrationNumber {
		if _, taken := r.byRegNumber[profile.BusinessRegistrationNumber]; taken {
			return domain.ErrDuplicateEntry
		}
		delete(r.byRegNumber, current.BusinessRegistrationNumber)
		r.byRegNumber[profile.BusinessRegistrationNumber] = profile.ID
	}

	r.byID[profile.ID] = cloneProfile(profile)
	return nil
}
