// Package paytype classifies transaction payment types as cash-settling or
// credit-bearing. Credit-bearing types may differ per owner group.
package paytype

import (
	"slices"
	"strings"
	"sync/atomic"
)

type Rules struct {
	Cash          []string
	Credit        []string
	CreditByGroup map[string][]string
}

type compiled struct {
	cash    map[string]struct{}
	credit  map[string]struct{}
	byGroup map[string]map[string]struct{}
}

// Classifier answers payment type questions against rules that can be
// swapped at runtime.
type Classifier struct {
	cur atomic.Pointer[compiled]
}

func NewClassifier(r Rules) *Classifier {
	c := &Classifier{}
	c.Store(r)

	return c
}

func (c *Classifier) Store(r Rules) {
	comp := &compiled{
		cash:    toSet(r.Cash),
		credit:  toSet(r.Credit),
		byGroup: make(map[string]map[string]struct{}, len(r.CreditByGroup)),
	}

	for g, types := range r.CreditByGroup {
		comp.byGroup[normalizeGroup(g)] = toSet(types)
	}

	c.cur.Store(comp)
}

func (c *Classifier) IsCash(paymentType string) bool {
	_, ok := c.cur.Load().cash[normalize(paymentType)]
	return ok
}

// IsCreditBearing reports whether paymentType accrues credit for an owner in
// group. Types listed globally apply to every group.
func (c *Classifier) IsCreditBearing(paymentType, group string) bool {
	comp := c.cur.Load()
	pt := normalize(paymentType)

	if _, ok := comp.credit[pt]; ok {
		return true
	}

	_, ok := comp.byGroup[normalizeGroup(group)][pt]

	return ok
}

// CreditBearingTypes lists every type that accrues credit for group, sorted.
func (c *Classifier) CreditBearingTypes(group string) []string {
	comp := c.cur.Load()

	out := make([]string, 0, len(comp.credit))
	for pt := range comp.credit {
		out = append(out, pt)
	}

	for pt := range comp.byGroup[normalizeGroup(group)] {
		if _, dup := comp.credit[pt]; !dup {
			out = append(out, pt)
		}
	}

	slices.Sort(out)

	return out
}

func toSet(types []string) map[string]struct{} {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		if n := normalize(t); n != "" {
			set[n] = struct{}{}
		}
	}

	return set
}

func normalize(pt string) string {
	return strings.ToUpper(strings.TrimSpace(pt))
}

func normalizeGroup(g string) string {
	return strings.ToLower(strings.TrimSpace(g))
}
