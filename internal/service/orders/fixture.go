package orders

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/holasaidlola/shop-analytics/internal/domain/dto"
)

// LoadFixture reads a CSV export of orders for demo mode. Nested columns
// (customer, billing_address, shipping_address) hold single-quoted
// quasi-JSON text, which the normalizer repairs and parses.
func LoadFixture(path string) ([]*dto.RawOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return readFixture(f)
}

func readFixture(r io.Reader) ([]*dto.RawOrder, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read fixture header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, col := range header {
		cols[strings.TrimSpace(col)] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf(`fixture is missing the "id" column`)
	}

	var raws []*dto.RawOrder
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read fixture row: %w", err)
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		id, err := strconv.ParseInt(cell("id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fixture line %d: parse id: %w", line, err)
		}

		raw := &dto.RawOrder{
			ID:                id,
			Name:              cell("name"),
			Email:             cell("email"),
			CreatedAt:         cell("created_at"),
			SubtotalPrice:     parseMoney(cell("subtotal_price")),
			TotalDiscounts:    parseMoney(cell("total_discounts")),
			TotalPrice:        parseMoney(cell("total_price")),
			CurrentTotalPrice: parseMoney(cell("current_total_price")),
			TotalOutstanding:  parseMoney(cell("total_outstanding")),
			FinancialStatus:   cell("financial_status"),
			FulfillmentStatus: cell("fulfillment_status"),
			Customer:          dto.NewRawTextField(cell("customer")),
			BillingAddress:    dto.NewRawTextField(cell("billing_address")),
			ShippingAddress:   dto.NewRawTextField(cell("shipping_address")),
		}

		if site := cell("referring_site"); site != "" {
			raw.ReferringSite = &site
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

// parseMoney tolerates absent values as null rather than erroring.
func parseMoney(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
