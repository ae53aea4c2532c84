package domain

import (
	"cmp"
	"slices"
	"time"
)

type Order struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	WebsiteType string
	Package     PackageType
	Referral    string
	Preferences string
	Status      Status
	OrderDate   time.Time
	Version     int64
}

// Advisory website types shown by the intake form. The server accepts any
// non-blank value.
const (
	WebsiteTypePortfolio = "Portfolio"
	WebsiteTypeResume    = "Resume"
	WebsiteTypeProject   = "Project"
	WebsiteTypeBlog      = "Blog"
)

// OrderSubmission is the raw input of the public intake form.
type OrderSubmission struct {
	Name        string
	Email       string
	Phone       string
	WebsiteType string
	Package     string
	Referral    string
	Preferences string
}

// ProjectSummary is the public projection of an order shown on the project
// board. It never carries contact details.
type ProjectSummary struct {
	ID          string
	Name        string
	WebsiteType string
	Status      Status
}

func (o Order) Summary() ProjectSummary {
	return ProjectSummary{
		ID:          o.ID,
		Name:        o.Name,
		WebsiteType: o.WebsiteType,
		Status:      o.Status,
	}
}

// SortOrdersByDateDesc sorts newest first. Orders placed at the same instant
// are ordered by id descending so the listing is deterministic.
func SortOrdersByDateDesc(orders []Order) {
	slices.SortStableFunc(orders, func(a, b Order) int {
		if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
