package analytics

import (
	"context"
	"net/url"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/holasaidlola/shop-analytics/internal/domain"
	"github.com/holasaidlola/shop-analytics/internal/service/geo"
)

// LocationAll disables location filtering.
const LocationAll = "All"

const noReferrerLabel = "No referring site or no data"

const quantityOfOrders = "Quantity of Orders"

// Service derives the chart-ready aggregate views from a (filtered) order
// table. Every method is read-only on its input and degrades to an empty
// series on an empty table.
type Service struct {
	geo *geo.Service
}

func NewAnalyticsService(geoService *geo.Service) *Service {
	return &Service{geo: geoService}
}

// Filter applies the inclusive date range and the optional location filter.
// The location must equal the resolved, metro-collapsed value exactly; the
// raw address text never matches.
func (s *Service) Filter(table domain.OrderTable, start, end time.Time, location string) domain.OrderTable {
	filtered := make(domain.OrderTable, 0, len(table))
	for _, o := range table {
		if o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		if location != LocationAll {
			loc, ok := s.resolvedLocation(o)
			if !ok || loc != location {
				continue
			}
		}
		filtered = append(filtered, o)
	}
	return filtered
}

// LocationDistribution counts orders per resolved billing location with the
// metro cities collapsed into one bucket. Points are sorted by count
// descending; Detail keeps the pre-collapse name for hover display.
func (s *Service) LocationDistribution(table domain.OrderTable) *domain.Series {
	counts := make(map[string]int64)
	for _, o := range table {
		raw, ok := s.geo.ResolveAddress(o.BillingAddress)
		if !ok {
			continue
		}
		counts[raw]++
	}

	points := make([]domain.SeriesPoint, 0, len(counts))
	for raw, n := range counts {
		points = append(points, domain.SeriesPoint{
			Label:  s.geo.Collapse(raw),
			Count:  n,
			Detail: raw,
		})
	}
	sortDescending(points)

	return &domain.Series{
		Title:  "Distribution of Orders over Billing Address Location",
		XLabel: "Province or City",
		YLabel: quantityOfOrders,
		Points: points,
	}
}

// ReferringSites counts orders per referring domain. Orders without a
// referring URL are excluded entirely; URLs that yield no host collapse
// into the no-data bucket.
func (s *Service) ReferringSites(table domain.OrderTable) *domain.Series {
	counts := make(map[string]int64)
	for _, o := range table {
		if o.ReferringSite == nil {
			continue
		}
		counts[referrerHost(*o.ReferringSite)]++
	}

	points := make([]domain.SeriesPoint, 0, len(counts))
	for host, n := range counts {
		points = append(points, domain.SeriesPoint{Label: host, Count: n})
	}
	sortDescending(points)

	return &domain.Series{
		Title:  "Popular Referring Sites",
		XLabel: "Referring Site",
		YLabel: "Quantity of Referrals",
		Points: points,
	}
}

// ChartBundle recomputes every chart series for one filter-change event.
// The table snapshot is frozen, so the series can be built in parallel.
func (s *Service) ChartBundle(ctx context.Context, table domain.OrderTable, start, end time.Time, location string) (*domain.ChartBundle, error) {
	filtered := s.Filter(table, start, end, location)

	// the city-level treemap needs a concrete location even when the
	// caller has not narrowed one down
	selected := location
	if selected == LocationAll {
		selected = geo.MetroManila
	}

	bundle := &domain.ChartBundle{}
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error { bundle.PopularHours = s.PopularHours(filtered); return nil })
	eg.Go(func() error { bundle.PopularWeekdays = s.PopularWeekdays(filtered); return nil })
	eg.Go(func() error { bundle.PopularMonthDays = s.PopularMonthDays(filtered); return nil })
	eg.Go(func() error { bundle.PopularMonths = s.PopularMonths(filtered); return nil })
	eg.Go(func() error { bundle.PopularWeeks = s.PopularWeeks(filtered); return nil })
	eg.Go(func() error { bundle.Locations = s.LocationDistribution(filtered); return nil })
	eg.Go(func() error { bundle.ReferringSites = s.ReferringSites(filtered); return nil })
	eg.Go(func() error { bundle.SpendAll = s.SpendTreemap(filtered); return nil })
	eg.Go(func() error { bundle.SpendSelected = s.SpendTreemapForLocation(filtered, selected); return nil })
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return bundle, nil
}

func (s *Service) resolvedLocation(o *domain.Order) (string, bool) {
	raw, ok := s.geo.ResolveAddress(o.BillingAddress)
	if !ok {
		return "", false
	}
	return s.geo.Collapse(raw), true
}

// referrerHost isolates the netloc of a referring URL, e.g.
// "https://www.google.com/search?q=x" yields "www.google.com".
func referrerHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return noReferrerLabel
	}
	return u.Host
}

func sortDescending(points []domain.SeriesPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Count != points[j].Count {
			return points[i].Count > points[j].Count
		}
		if points[i].Label != points[j].Label {
			return points[i].Label < points[j].Label
		}
		return points[i].Detail < points[j].Detail
	})
}
