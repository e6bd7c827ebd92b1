package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holasaidlola/shop-analytics/internal/pkg/config"
)

func newTestService(t *testing.T, serverURL string) *Service {
	t.Helper()
	u, err := url.Parse(serverURL)
	require.NoError(t, err)

	s := NewShopifyService(config.ShopifyConfig{
		APIKey:    "key",
		APISecret: "secret",
		Hostname:  u.Host,
		Version:   "2022-04",
	}, 5*time.Second)
	s.scheme = "http"
	s.retryInterval = time.Millisecond
	return s
}

// ordersHandler serves a synthetic dataset of total orders with ids 1..total,
// honoring limit and since_id the way the real endpoint does.
func ordersHandler(t *testing.T, total int, requests *int32, sinceSeen *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/admin/api/2022-04/orders.json", r.URL.Path)
		assert.Equal(t, "any", r.URL.Query().Get("status"))
		assert.NotEmpty(t, r.URL.Query().Get("fields"))

		since, err := strconv.Atoi(r.URL.Query().Get("since_id"))
		assert.NoError(t, err)
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		assert.NoError(t, err)
		*sinceSeen = append(*sinceSeen, r.URL.Query().Get("since_id"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"orders":[`)
		n := 0
		for id := since + 1; id <= total && n < limit; id++ {
			if n > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":%d,"created_at":"2021-03-01T09:00:00+08:00","total_price":"100.00"}`, id)
			n++
		}
		fmt.Fprint(w, `]}`)
	}
}

func TestFetchAllPaginates(t *testing.T) {
	var (
		requests  int32
		sinceSeen []string
	)
	srv := httptest.NewServer(ordersHandler(t, 600, &requests, &sinceSeen))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	orders, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, orders, 600)
	assert.EqualValues(t, 3, requests)

	// each cursor equals the max id of the previous page
	assert.Equal(t, []string{"0", "250", "500"}, sinceSeen)

	assert.EqualValues(t, 1, orders[0].ID)
	assert.EqualValues(t, 600, orders[len(orders)-1].ID)
}

func TestFetchAllToleratesEmptyFinalPage(t *testing.T) {
	var (
		requests  int32
		sinceSeen []string
	)
	srv := httptest.NewServer(ordersHandler(t, 250, &requests, &sinceSeen))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	orders, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, orders, 250)
	assert.EqualValues(t, 2, requests)
	assert.Equal(t, []string{"0", "250"}, sinceSeen)
}

func TestFetchAllRetriesTransientFailures(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"orders":[{"id":1,"created_at":"2021-03-01T09:00:00+08:00"}]}`)
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	orders, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, orders, 1)
	assert.EqualValues(t, 3, requests)
}

func TestFetchAllSurfacesExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	_, err := s.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code error")
}
