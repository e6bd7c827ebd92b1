package analytics

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/holasaidlola/shop-analytics/internal/domain"
	"github.com/holasaidlola/shop-analytics/internal/service/geo"
)

const treemapRoot = "Orders"

// guestCustomerID is the placeholder identity for orders without a customer
// record.
const guestCustomerID int64 = -1

// SpendTreemap groups total order value by location and customer, rooted at
// the fixed "Orders" label.
func (s *Service) SpendTreemap(table domain.OrderTable) *domain.Treemap {
	root := newTreeBuilder(treemapRoot)
	for _, o := range table {
		loc := s.orderLocation(o)
		name, detail := customerIdentity(o)
		root.child(loc, "").child(name, detail).add(orderValue(o))
	}

	return &domain.Treemap{
		Title: "Profitable Provinces and Customers",
		Root:  root.build(),
	}
}

// SpendTreemapForLocation narrows the spend treemap to one location and adds
// a city tier between location and customer.
func (s *Service) SpendTreemapForLocation(table domain.OrderTable, location string) *domain.Treemap {
	root := newTreeBuilder(treemapRoot)
	for _, o := range table {
		loc := s.orderLocation(o)
		if loc != location {
			continue
		}

		city := geo.MissingData
		if o.BillingAddress != nil {
			if c := s.geo.NormalizeCity(o.BillingAddress.City); c != "" {
				city = c
			}
		}

		name, detail := customerIdentity(o)
		root.child(loc, "").child(city, "").child(name, detail).add(orderValue(o))
	}

	return &domain.Treemap{
		Title: "Profitable Cities and Customer in Selected Province",
		Root:  root.build(),
	}
}

// orderLocation resolves and collapses the billing location, labeling
// address-less orders as missing data so their value is never dropped.
func (s *Service) orderLocation(o *domain.Order) string {
	raw, ok := s.geo.ResolveAddress(o.BillingAddress)
	if !ok {
		return geo.MissingData
	}
	return s.geo.Collapse(raw)
}

func customerIdentity(o *domain.Order) (name, detail string) {
	if o.Customer == nil {
		return geo.MissingData, strconv.FormatInt(guestCustomerID, 10)
	}
	return o.Customer.DisplayName(), strconv.FormatInt(o.Customer.ID, 10)
}

func orderValue(o *domain.Order) decimal.Decimal {
	if !o.CurrentTotalPrice.Valid {
		return decimal.Zero
	}
	return o.CurrentTotalPrice.Decimal
}

// treeBuilder accumulates grouped sums before freezing them into TreeNodes.
type treeBuilder struct {
	label    string
	detail   string
	value    decimal.Decimal
	children map[string]*treeBuilder
}

func newTreeBuilder(label string) *treeBuilder {
	return &treeBuilder{label: label, children: make(map[string]*treeBuilder)}
}

func (b *treeBuilder) child(label, detail string) *treeBuilder {
	c, ok := b.children[label]
	if !ok {
		c = newTreeBuilder(label)
		c.detail = detail
		b.children[label] = c
	}
	return c
}

func (b *treeBuilder) add(v decimal.Decimal) {
	b.value = b.value.Add(v)
}

// build freezes the builder into a TreeNode. Inner node values are the sums
// of their children; children are ordered by value descending.
func (b *treeBuilder) build() *domain.TreeNode {
	node := &domain.TreeNode{
		Label:  b.label,
		Detail: b.detail,
		Value:  b.value,
	}

	if len(b.children) == 0 {
		return node
	}

	node.Children = make([]*domain.TreeNode, 0, len(b.children))
	total := decimal.Zero
	for _, c := range b.children {
		child := c.build()
		total = total.Add(child.Value)
		node.Children = append(node.Children, child)
	}
	node.Value = total

	sort.Slice(node.Children, func(i, j int) bool {
		if !node.Children[i].Value.Equal(node.Children[j].Value) {
			return node.Children[i].Value.GreaterThan(node.Children[j].Value)
		}
		return node.Children[i].Label < node.Children[j].Label
	})

	return node
}
