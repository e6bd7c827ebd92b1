package orders

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/holasaidlola/shop-analytics/internal/domain"
	"github.com/holasaidlola/shop-analytics/internal/domain/dto"
	"github.com/holasaidlola/shop-analytics/internal/pkg/config"
	"github.com/holasaidlola/shop-analytics/internal/pkg/constants"
	"github.com/holasaidlola/shop-analytics/internal/pkg/logger"
	"github.com/holasaidlola/shop-analytics/internal/pkg/store"
	"github.com/holasaidlola/shop-analytics/internal/pkg/utils"
	"github.com/holasaidlola/shop-analytics/internal/service/geo"
	"github.com/holasaidlola/shop-analytics/internal/service/shopify"
)

// Service owns the fetch → normalize → store pipeline. The table is rebuilt
// whole on every refresh; there is no incremental sync.
type Service struct {
	shopify *shopify.Service
	store   store.Store
	geo     *geo.Service
	demo    config.DemoConfig

	refreshing atomic.Bool
}

func NewOrdersService(shopifyService *shopify.Service, st store.Store, geoService *geo.Service, demo config.DemoConfig) *Service {
	return &Service{
		shopify: shopifyService,
		store:   st,
		geo:     geoService,
		demo:    demo,
	}
}

type RefreshResult struct {
	JobID  string `json:"job_id"`
	Orders int    `json:"orders"`
}

// Refresh rebuilds the order table, either from the live store or from the
// demo fixture. Only one refresh may be in flight at a time; concurrent
// callers get ErrRefreshInProgress instead of a second fetch.
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return nil, constants.ErrRefreshInProgress
	}
	defer s.refreshing.Store(false)

	jobID := uuid.NewString()

	var (
		raws []*dto.RawOrder
		err  error
	)
	if s.demo.Enabled {
		logger.Infof(ctx, "refresh %s: loading fixture %s", jobID, s.demo.FixturePath)
		raws, err = utils.Measure(ctx, "load_fixture", func(ctx context.Context) ([]*dto.RawOrder, error) {
			return LoadFixture(s.demo.FixturePath)
		})
	} else {
		logger.Infof(ctx, "refresh %s: fetching orders", jobID)
		raws, err = utils.Measure(ctx, "fetch_all_orders", s.shopify.FetchAll)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", jobID, err)
	}

	table, err := utils.Measure(ctx, "normalize_orders", func(ctx context.Context) (domain.OrderTable, error) {
		return Normalize(ctx, raws)
	})
	if err != nil {
		return nil, fmt.Errorf("refresh %s: normalize: %w", jobID, err)
	}

	s.store.Replace(ctx, table, time.Now())
	logger.Infof(ctx, "refresh %s: table replaced with %d orders", jobID, len(table))

	return &RefreshResult{JobID: jobID, Orders: len(table)}, nil
}

// Table returns the current frozen order table.
func (s *Service) Table(ctx context.Context) domain.OrderTable {
	table, _ := s.store.Snapshot(ctx)
	return table
}

// Snapshot builds the serialized view handed to the UI collaborator.
func (s *Service) Snapshot(ctx context.Context) *domain.Snapshot {
	table, fetchedAt := s.store.Snapshot(ctx)
	min, max, _ := table.CreatedAtBounds()

	return &domain.Snapshot{
		Orders:       table,
		Locations:    s.geo.Locations(table),
		FetchedAt:    fetchedAt,
		MinCreatedAt: min,
		MaxCreatedAt: max,
	}
}

// Locations returns the distinct resolved locations for the UI selector.
func (s *Service) Locations(ctx context.Context) []string {
	table, _ := s.store.Snapshot(ctx)
	return s.geo.Locations(table)
}
