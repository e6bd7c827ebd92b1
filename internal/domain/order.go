package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Financial status values as assigned by the source system.
const (
	FinancialStatusPending           = "pending"
	FinancialStatusAuthorized        = "authorized"
	FinancialStatusPaid              = "paid"
	FinancialStatusPartiallyPaid     = "partially_paid"
	FinancialStatusRefunded          = "refunded"
	FinancialStatusPartiallyRefunded = "partially_refunded"
	FinancialStatusVoided            = "voided"
)

type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName is what the treemaps group customers by.
func (c *Customer) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

type Address struct {
	Name     string `json:"name,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Order is one purchase transaction after normalization. Customer, billing
// and shipping addresses stay optional: guest checkouts carry no customer
// record at all, and downstream code treats nil as "no data".
type Order struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name,omitempty"`
	Email             string              `json:"email,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	SubtotalPrice     decimal.NullDecimal `json:"subtotal_price"`
	TotalDiscounts    decimal.NullDecimal `json:"total_discounts"`
	TotalPrice        decimal.NullDecimal `json:"total_price"`
	CurrentTotalPrice decimal.NullDecimal `json:"current_total_price"`
	TotalOutstanding  decimal.NullDecimal `json:"total_outstanding"`
	FinancialStatus   string              `json:"financial_status,omitempty"`
	FulfillmentStatus string              `json:"fulfillment_status,omitempty"`
	ReferringSite     *string             `json:"referring_site,omitempty"`
	Customer          *Customer           `json:"customer,omitempty"`
	BillingAddress    *Address            `json:"billing_address,omitempty"`
	ShippingAddress   *Address            `json:"shipping_address,omitempty"`
}

// OrderTable is the central in-memory collection. It is rebuilt whole on
// every fetch and treated as immutable once handed out.
type OrderTable []*Order

// CreatedAtBounds returns the earliest and latest creation timestamps, used
// by the UI to initialize its date picker. ok is false for an empty table.
func (t OrderTable) CreatedAtBounds() (min, max time.Time, ok bool) {
	if len(t) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = t[0].CreatedAt, t[0].CreatedAt
	for _, o := range t[1:] {
		if o.CreatedAt.Before(min) {
			min = o.CreatedAt
		}
		if o.CreatedAt.After(max) {
			max = o.CreatedAt
		}
	}
	return min, max, true
}

// Snapshot is the serialized view of the table handed to the UI collaborator,
// together with the distinct locations for its selector.
type Snapshot struct {
	Orders       OrderTable `json:"orders"`
	Locations    []string   `json:"locations"`
	FetchedAt    time.Time  `json:"fetched_at"`
	MinCreatedAt time.Time  `json:"min_created_at,omitempty"`
	MaxCreatedAt time.Time  `json:"max_created_at,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
