package shopify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"

	"github.com/holasaidlola/shop-analytics/internal/domain/dto"
	"github.com/holasaidlola/shop-analytics/internal/pkg/config"
	"github.com/holasaidlola/shop-analytics/internal/pkg/logger"
)

const (
	resource = "orders"
	// pageSize is the API's maximum; a short page signals the final one.
	pageSize = 250

	maxRetries = 5
)

// orderFields is the fixed projection requested from the orders resource.
var orderFields = []string{
	"id", "app_id", "buyer_accepts_marketing", "cancel_reason", "cancelled_at",
	"client_details", "closed_at", "contact_email", "created_at",
	"current_subtotal_price", "current_total_discounts", "current_total_price",
	"customer", "discount_codes", "email", "financial_status",
	"fulfillment_status", "gateway", "landing_site", "name", "order_number",
	"payment_gateway_names", "phone", "processed_at", "processing_method",
	"referring_site", "source_name", "subtotal_price", "total_discounts",
	"total_line_items_price", "total_outstanding", "total_price", "updated_at",
	"billing_address", "discount_applications", "line_items", "refunds",
	"shipping_address",
}

// Service fetches order pages from the store's REST Admin API. Credentials
// are embedded in the request target, so the built URLs never get logged.
type Service struct {
	cfg    config.ShopifyConfig
	client *http.Client

	scheme        string
	retryInterval time.Duration
}

func NewShopifyService(cfg config.ShopifyConfig, requestTimeout time.Duration) *Service {
	return &Service{
		cfg:           cfg,
		client:        &http.Client{Timeout: requestTimeout},
		scheme:        "https",
		retryInterval: 500 * time.Millisecond,
	}
}

// FetchAll paginates the orders resource with a since_id cursor until a
// short (possibly empty) page signals the end, and returns every record.
func (s *Service) FetchAll(ctx context.Context) ([]*dto.RawOrder, error) {
	var (
		all   []*dto.RawOrder
		since int64
		pages int
	)
	for {
		page, err := s.fetchPage(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("fetch page since_id=%d: %w", since, err)
		}
		pages++
		all = append(all, page...)

		for _, o := range page {
			if o.ID > since {
				since = o.ID
			}
		}
		if len(page) < pageSize {
			break
		}
	}

	logger.Infof(ctx, "fetched %d orders in %d pages", len(all), pages)
	return all, nil
}

func (s *Service) fetchPage(ctx context.Context, since int64) ([]*dto.RawOrder, error) {
	u := url.URL{
		Scheme: s.scheme,
		User:   url.UserPassword(s.cfg.APIKey, s.cfg.APISecret),
		Host:   s.cfg.Hostname,
		Path:   fmt.Sprintf("/admin/api/%s/%s.json", s.cfg.Version, resource),
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("status", "any")
	q.Set("since_id", strconv.FormatInt(since, 10))
	q.Set("fields", strings.Join(orderFields, ","))
	u.RawQuery = q.Encode()

	var body []byte
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInterval
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("build request: %w", err))
			}

			resp, err := s.client.Do(req)
			if err != nil {
				return fmt.Errorf("http.Do: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}
			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx),
	)
	if err != nil {
		return nil, err
	}

	var page dto.OrdersPage
	if err := sonic.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode orders page: %w", err)
	}

	return page.Orders, nil
}
