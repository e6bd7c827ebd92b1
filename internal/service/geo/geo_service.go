package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/holasaidlola/shop-analytics/internal/domain"
)

// MissingData is the sentinel returned when an address has no usable zip,
// province or city.
const MissingData = "Missing Data"

// MetroManila is the aggregate bucket the metro-area cities collapse into.
const MetroManila = "Metro Manila"

var metroCities = map[string]struct{}{
	"Manila":      {},
	"Quezon City": {},
	"Caloocan":    {},
	"Las Piñas":   {},
	"Makati":      {},
	"Malabon":     {},
	"Mandaluyong": {},
	"Marikina":    {},
	"Muntinlupa":  {},
	"Navotas":     {},
	"Parañaque":   {},
	"Pasay":       {},
	"Pasig":       {},
	"San Juan":    {},
	"Taguig":      {},
	"Valenzuela":  {},
	"Pateros":     {},
}

// Service resolves raw billing address fields to a canonical province or
// city name through the zip code reference table. The table is loaded once
// at startup and immutable afterwards.
type Service struct {
	zipcodes map[int]string
	titler   cases.Caser
}

func NewGeoService() *Service {
	return &Service{
		zipcodes: make(map[int]string),
		titler:   cases.Title(language.English),
	}
}

// LoadReferenceFile reads the zip code reference table from a CSV file.
func (s *Service) LoadReferenceFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open zip reference: %w", err)
	}
	defer f.Close()

	return s.LoadReference(f)
}

// LoadReference reads a CSV with at least the columns "ZIP Code" and
// "Province or city".
func (s *Service) LoadReference(r io.Reader) error {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read zip reference header: %w", err)
	}

	zipCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "ZIP Code":
			zipCol = i
		case "Province or city":
			nameCol = i
		}
	}
	if zipCol < 0 || nameCol < 0 {
		return fmt.Errorf(`zip reference is missing the "ZIP Code" or "Province or city" column`)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read zip reference row: %w", err)
		}

		zip, err := strconv.Atoi(strings.TrimSpace(record[zipCol]))
		if err != nil {
			// reference rows with unparseable zips are useless, skip them
			continue
		}
		s.zipcodes[zip] = strings.TrimSpace(record[nameCol])
	}

	return nil
}

// Resolve maps raw zip/province/city fields to a canonical location name.
// Priority order: zip lookup, then raw province, then normalized city, then
// the MissingData sentinel. Malformed zips never fail, they fall through.
func (s *Service) Resolve(zip, province, city string) string {
	if name, ok := s.lookupZip(zip); ok {
		return name
	}
	if p := strings.TrimSpace(province); p != "" {
		return p
	}
	if c := s.NormalizeCity(city); c != "" {
		return c
	}
	return MissingData
}

// ResolveAddress resolves an order's billing address. ok is false when the
// order carries no address at all.
func (s *Service) ResolveAddress(addr *domain.Address) (string, bool) {
	if addr == nil {
		return "", false
	}
	return s.Resolve(addr.Zip, addr.Province, addr.City), true
}

// Collapse folds the metro-area cities into the single MetroManila bucket.
// Everything else passes through unchanged.
func (s *Service) Collapse(location string) string {
	if _, ok := metroCities[location]; ok {
		return MetroManila
	}
	return location
}

// NormalizeCity title-cases the raw city text, strips the literal "City"
// and trims. "DAVAO CITY" becomes "Davao".
func (s *Service) NormalizeCity(city string) string {
	c := s.titler.String(strings.TrimSpace(city))
	c = strings.ReplaceAll(c, "City", "")
	return strings.TrimSpace(c)
}

// Locations returns the sorted distinct collapsed locations present in the
// table, for the UI's selector.
func (s *Service) Locations(table domain.OrderTable) []string {
	seen := make(map[string]struct{})
	for _, o := range table {
		loc, ok := s.ResolveAddress(o.BillingAddress)
		if !ok {
			continue
		}
		seen[s.Collapse(loc)] = struct{}{}
	}

	locations := make([]string, 0, len(seen))
	for loc := range seen {
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	return locations
}

func (s *Service) lookupZip(zip string) (string, bool) {
	var digits strings.Builder
	for _, r := range zip {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", false
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return "", false
	}

	name, ok := s.zipcodes[n]
	return name, ok
}
