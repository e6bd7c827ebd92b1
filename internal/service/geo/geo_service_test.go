package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holasaidlola/shop-analytics/internal/domain"
)

const testReference = `ZIP Code,Area,Province or city
1100,Diliman,Quezon City
1226,Bel-Air,Makati
6000,Cebu CPO,Cebu
8000,Davao CPO,Davao del Sur
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewGeoService()
	require.NoError(t, s.LoadReference(strings.NewReader(testReference)))
	return s
}

func TestResolvePriorityChain(t *testing.T) {
	s := newTestService(t)

	// zip present in the reference table wins
	assert.Equal(t, "Quezon City", s.Resolve("1100", "Cebu", "Davao City"))

	// invalid zip falls through to the raw province
	assert.Equal(t, "Cebu", s.Resolve("abc", "Cebu", "Davao City"))

	// absent zip and province fall through to the normalized city
	assert.Equal(t, "Davao", s.Resolve("", "", "Davao City"))

	// nothing usable yields the sentinel
	assert.Equal(t, MissingData, s.Resolve("", "", ""))
	assert.Equal(t, MissingData, s.Resolve("none", "  ", " "))
}

func TestResolveStripsNonNumericZip(t *testing.T) {
	s := newTestService(t)

	assert.Equal(t, "Quezon City", s.Resolve("1100-A", "", ""))
	assert.Equal(t, "Cebu", s.Resolve(" 6000 ", "", ""))

	// a zip missing from the table is a fall-through, not an error
	assert.Equal(t, "Iloilo", s.Resolve("9999", "Iloilo", ""))
}

func TestNormalizeCity(t *testing.T) {
	s := newTestService(t)

	assert.Equal(t, "Davao", s.NormalizeCity("DAVAO CITY"))
	assert.Equal(t, "Taguig", s.NormalizeCity(" taguig city "))
	assert.Equal(t, "Makati", s.NormalizeCity("Makati City"))
	assert.Equal(t, "Pasig", s.NormalizeCity("Pasig"))
	assert.Equal(t, "", s.NormalizeCity(""))
}

func TestCollapseMetroCities(t *testing.T) {
	s := newTestService(t)

	for _, city := range []string{
		"Manila", "Quezon City", "Caloocan", "Las Piñas", "Makati", "Malabon",
		"Mandaluyong", "Marikina", "Muntinlupa", "Navotas", "Parañaque",
		"Pasay", "Pasig", "San Juan", "Taguig", "Valenzuela", "Pateros",
	} {
		assert.Equal(t, MetroManila, s.Collapse(city), city)
	}

	assert.Equal(t, "Cebu", s.Collapse("Cebu"))
	assert.Equal(t, MissingData, s.Collapse(MissingData))
}

func TestResolveAddress(t *testing.T) {
	s := newTestService(t)

	loc, ok := s.ResolveAddress(&domain.Address{Zip: "6000"})
	assert.True(t, ok)
	assert.Equal(t, "Cebu", loc)

	_, ok = s.ResolveAddress(nil)
	assert.False(t, ok)
}

func TestLocations(t *testing.T) {
	s := newTestService(t)

	table := domain.OrderTable{
		{BillingAddress: &domain.Address{Zip: "1100"}},
		{BillingAddress: &domain.Address{Zip: "1226"}},
		{BillingAddress: &domain.Address{Province: "Cebu"}},
		{BillingAddress: nil},
	}

	assert.Equal(t, []string{"Cebu", MetroManila}, s.Locations(table))
}

func TestLoadReferenceRejectsMissingColumns(t *testing.T) {
	s := NewGeoService()
	err := s.LoadReference(strings.NewReader("zip,name\n1000,Manila\n"))
	require.Error(t, err)
}
