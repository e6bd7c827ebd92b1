package dto

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

// NestedFieldKind tags the three states a nested order field can arrive in:
// absent, an already-structured object, or single-quoted quasi-JSON text.
type NestedFieldKind int

const (
	NestedMissing NestedFieldKind = iota
	NestedStructured
	NestedRawText
)

// NestedField defers parsing of heterogeneous nested fields (billing
// address, customer) until normalization. The zero value is Missing.
type NestedField struct {
	kind NestedFieldKind
	raw  []byte
	text string
}

func NewRawTextField(text string) NestedField {
	if strings.TrimSpace(text) == "" {
		return NestedField{}
	}
	return NestedField{kind: NestedRawText, text: text}
}

func NewStructuredField(raw []byte) NestedField {
	return NestedField{kind: NestedStructured, raw: raw}
}

func (f NestedField) Kind() NestedFieldKind {
	return f.kind
}

func (f *NestedField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = NestedField{}
	case b[0] == '"':
		var s string
		if err := sonic.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode nested field string: %w", err)
		}
		*f = NewRawTextField(s)
	default:
		raw := make([]byte, len(b))
		copy(raw, b)
		*f = NestedField{kind: NestedStructured, raw: raw}
	}
	return nil
}

func (f NestedField) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case NestedStructured:
		return f.raw, nil
	case NestedRawText:
		return sonic.Marshal(f.text)
	default:
		return []byte("null"), nil
	}
}

// Decode parses the field into v. Missing fields report ok=false with no
// error; irrecoverable text reports ok=false with the parse error so the
// caller can log it and move on instead of aborting the whole fetch.
func (f NestedField) Decode(v interface{}) (ok bool, err error) {
	switch f.kind {
	case NestedStructured:
		if err := sonic.Unmarshal(f.raw, v); err != nil {
			return false, fmt.Errorf("decode nested object: %w", err)
		}
		return true, nil
	case NestedRawText:
		repaired := RepairQuasiJSON(f.text)
		if err := sonic.Unmarshal([]byte(repaired), v); err != nil {
			return false, fmt.Errorf("decode repaired quasi-JSON: %w", err)
		}
		return true, nil
	default:
		return false, nil
	}
}

// RepairQuasiJSON turns single-quote delimited pseudo-JSON, as produced by
// fixture exports, into parseable JSON. None becomes null.
func RepairQuasiJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = strings.ReplaceAll(s, ": None", ": null")
	return s
}

// RawOrder is a loosely-typed order record exactly as returned by the
// orders endpoint (or loaded from a fixture). Money fields decode from both
// quoted strings and bare numbers; nested fields stay deferred.
type RawOrder struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	CreatedAt         string              `json:"created_at"`
	SubtotalPrice     decimal.NullDecimal `json:"subtotal_price"`
	TotalDiscounts    decimal.NullDecimal `json:"total_discounts"`
	TotalPrice        decimal.NullDecimal `json:"total_price"`
	CurrentTotalPrice decimal.NullDecimal `json:"current_total_price"`
	TotalOutstanding  decimal.NullDecimal `json:"total_outstanding"`
	FinancialStatus   string              `json:"financial_status"`
	FulfillmentStatus string              `json:"fulfillment_status"`
	ReferringSite     *string             `json:"referring_site"`
	Customer          NestedField         `json:"customer"`
	BillingAddress    NestedField         `json:"billing_address"`
	ShippingAddress   NestedField         `json:"shipping_address"`
}

// OrdersPage is one page of the paginated orders resource.
type OrdersPage struct {
	Orders []*RawOrder `json:"orders"`
}
