package domain

import "github.com/shopspring/decimal"

// SeriesPoint is one bar of a chart. Detail carries auxiliary hover data,
// e.g. the pre-collapse city name behind a "Metro Manila" bar.
type SeriesPoint struct {
	Label  string `json:"label"`
	Count  int64  `json:"count"`
	Detail string `json:"detail,omitempty"`
}

// Series is one chart-ready aggregate view of the order table.
type Series struct {
	Title  string        `json:"title"`
	XLabel string        `json:"x_label"`
	YLabel string        `json:"y_label"`
	Points []SeriesPoint `json:"points"`
}

// TreeNode is one tier of a treemap. Value of an inner node is the sum of
// its children.
type TreeNode struct {
	Label    string          `json:"label"`
	Value    decimal.Decimal `json:"value"`
	Detail   string          `json:"detail,omitempty"`
	Children []*TreeNode     `json:"children,omitempty"`
}

type Treemap struct {
	Title string    `json:"title"`
	Root  *TreeNode `json:"root"`
}

// ChartBundle is the fixed ordered set of named series the UI collaborator
// receives on every filter change.
type ChartBundle struct {
	PopularHours     *Series  `json:"popular_hours"`
	PopularWeekdays  *Series  `json:"popular_weekdays"`
	PopularMonthDays *Series  `json:"popular_month_days"`
	PopularMonths    *Series  `json:"popular_months"`
	PopularWeeks     *Series  `json:"popular_weeks"`
	Locations        *Series  `json:"locations"`
	ReferringSites   *Series  `json:"referring_sites"`
	SpendAll         *Treemap `json:"spend_all"`
	SpendSelected    *Treemap `json:"spend_selected"`
}
