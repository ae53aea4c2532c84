package domain

import "strings"

// FilterAll is the sentinel the admin dashboard uses for "no constraint".
const FilterAll = "All"

type FilterCriteria struct {
	WebsiteType string
	Package     string
	Referral    string
}

func (c FilterCriteria) IsZero() bool {
	return unconstrained(c.WebsiteType) && unconstrained(c.Package) && c.Referral == ""
}

// FilterOrders returns the orders matching every criterion, preserving input
// order. It never mutates its input.
func FilterOrders(orders []Order, c FilterCriteria) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		if c.Matches(o) {
			result = append(result, o)
		}
	}
	return result
}

func (c FilterCriteria) Matches(o Order) bool {
	if !unconstrained(c.WebsiteType) && o.WebsiteType != c.WebsiteType {
		return false
	}
	if !unconstrained(c.Package) && string(o.Package) != c.Package {
		return false
	}
	if c.Referral != "" {
		if o.Referral == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(o.Referral), strings.ToLower(c.Referral)) {
			return false
		}
	}
	return true
}

func unconstrained(v string) bool {
	return v == "" || v == FilterAll
}
