package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/holasaidlola/shop-analytics/internal/domain"
)

var weekdayLabels = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var monthLabels = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// PopularHours counts orders per hour of day, 12 AM through 11 PM.
func (s *Service) PopularHours(table domain.OrderTable) *domain.Series {
	return bucketSeries(table, "Popular Hours of the Day", "Hour of Day",
		func(t time.Time) (int, string) {
			h := t.Hour()
			return h, hourLabel(h)
		})
}

// PopularWeekdays counts orders per day of week, Monday first.
func (s *Service) PopularWeekdays(table domain.OrderTable) *domain.Series {
	return bucketSeries(table, "Popular Days of the Week", "Day of Week",
		func(t time.Time) (int, string) {
			// shift so Monday is 0 rather than time.Weekday's Sunday
			d := (int(t.Weekday()) + 6) % 7
			return d, weekdayLabels[d]
		})
}

// PopularMonthDays counts orders per day of month, 1 through 31.
func (s *Service) PopularMonthDays(table domain.OrderTable) *domain.Series {
	return bucketSeries(table, "Popular Days of the Month", "Day of Month",
		func(t time.Time) (int, string) {
			d := t.Day()
			return d, strconv.Itoa(d)
		})
}

// PopularMonths counts orders per month of year.
func (s *Service) PopularMonths(table domain.OrderTable) *domain.Series {
	return bucketSeries(table, "Popular Months of the Year", "Month of Year",
		func(t time.Time) (int, string) {
			m := int(t.Month())
			return m, monthLabels[m-1]
		})
}

// PopularWeeks counts orders per ISO week of year.
func (s *Service) PopularWeeks(table domain.OrderTable) *domain.Series {
	return bucketSeries(table, "Popular Weeks of the Year", "Week of Year",
		func(t time.Time) (int, string) {
			_, wk := t.ISOWeek()
			return wk, strconv.Itoa(wk)
		})
}

// bucketSeries counts orders per bucket of the creation timestamp. Only
// observed buckets are emitted, in natural key order.
func bucketSeries(table domain.OrderTable, title, xLabel string, bucket func(time.Time) (int, string)) *domain.Series {
	counts := make(map[int]int64)
	labels := make(map[int]string)
	for _, o := range table {
		key, label := bucket(o.CreatedAt)
		counts[key]++
		labels[key] = label
	}

	keys := make([]int, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	points := make([]domain.SeriesPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, domain.SeriesPoint{Label: labels[key], Count: counts[key]})
	}

	return &domain.Series{
		Title:  title,
		XLabel: xLabel,
		YLabel: quantityOfOrders,
		Points: points,
	}
}

func hourLabel(h int) string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return strconv.Itoa(h) + " AM"
	case h == 12:
		return "12 PM"
	default:
		return strconv.Itoa(h-12) + " PM"
	}
}
