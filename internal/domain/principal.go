package domain

import (
	"slices"

	"github.com/google/uuid"
)

type PrincipalKind string

const (
	KindUser   PrincipalKind = "user"
	KindVendor PrincipalKind = "vendor"
	KindAdmin  PrincipalKind = "admin"
)

func (k PrincipalKind) Valid() bool {
	switch k {
	case KindUser, KindVendor, KindAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller of a request.
type Principal struct {
	Kind   PrincipalKind
	ID     uuid.UUID
	Claims map[string]any
}

func (p *Principal) Is(kinds ...PrincipalKind) bool {
	if p == nil {
		return false
	}
	return slices.Contains(kinds, p.Kind)
}
