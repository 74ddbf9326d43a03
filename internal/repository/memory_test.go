package repository

import (
	"testing"
)

func TestMemoryVendors(t *testing.T) {
	testVendorsContract(t, NewMemoryRepositories())
}

func TestMemoryVendorProfiles(t *testing.T) {
	testVendorProfilesContract(t, NewMemoryRepositories())
}
