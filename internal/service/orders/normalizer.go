package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/holasaidlola/shop-analytics/internal/domain"
	"github.com/holasaidlola/shop-analytics/internal/domain/dto"
	"github.com/holasaidlola/shop-analytics/internal/pkg/logger"
)

// Normalize type-coerces raw fetched records into the order table. A single
// unreadable nested field is logged and treated as missing data rather than
// failing the whole fetch; an unparseable creation timestamp is fatal since
// every aggregate depends on it.
func Normalize(ctx context.Context, raws []*dto.RawOrder) (domain.OrderTable, error) {
	table := make(domain.OrderTable, 0, len(raws))
	for _, raw := range raws {
		order, err := normalizeOrder(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", raw.ID, err)
		}
		table = append(table, order)
	}
	return table, nil
}

func normalizeOrder(ctx context.Context, raw *dto.RawOrder) (*domain.Order, error) {
	createdAt, err := parseTimestamp(raw.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", raw.CreatedAt, err)
	}

	order := &domain.Order{
		ID:                raw.ID,
		Name:              raw.Name,
		Email:             raw.Email,
		CreatedAt:         createdAt,
		SubtotalPrice:     raw.SubtotalPrice,
		TotalDiscounts:    raw.TotalDiscounts,
		TotalPrice:        raw.TotalPrice,
		CurrentTotalPrice: raw.CurrentTotalPrice,
		TotalOutstanding:  raw.TotalOutstanding,
		FinancialStatus:   raw.FinancialStatus,
		FulfillmentStatus: raw.FulfillmentStatus,
	}

	if raw.ReferringSite != nil {
		site := *raw.ReferringSite
		order.ReferringSite = &site
	}

	var customer domain.Customer
	if ok, err := raw.Customer.Decode(&customer); err != nil {
		logger.Warnf(ctx, "order %d: unreadable customer field, treating as missing: %s", raw.ID, err.Error())
	} else if ok {
		order.Customer = &customer
	}

	var billing domain.Address
	if ok, err := raw.BillingAddress.Decode(&billing); err != nil {
		logger.Warnf(ctx, "order %d: unreadable billing_address field, treating as missing: %s", raw.ID, err.Error())
	} else if ok {
		order.BillingAddress = &billing
	}

	var shipping domain.Address
	if ok, err := raw.ShippingAddress.Decode(&shipping); err != nil {
		logger.Warnf(ctx, "order %d: unreadable shipping_address field, treating as missing: %s", raw.ID, err.Error())
	} else if ok {
		order.ShippingAddress = &shipping
	}

	return order, nil
}

func parseTimestamp(s string) (time.Time, error) {
	// the API sends RFC3339; fixture exports sometimes drop the zone
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp layout")
}
