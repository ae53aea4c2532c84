package domain

import "time"

const (
	MinDiscountPercentage = 1
	MaxDiscountPercentage = 99
)

type Offer struct {
	ID                 string
	Title              string
	DiscountPercentage int
	ApplicablePackage  PackageType
	IsActive           bool
	CreatedDate        time.Time
}

type OfferDraft struct {
	Title              string
	DiscountPercentage int
	ApplicablePackage  string
}

// FirstOfferFor returns the first active offer targeting pkg, in the order
// given. Callers pass offers in storage listing order.
func FirstOfferFor(offers []Offer, pkg PackageType) (Offer, bool) {
	for _, o := range offers {
		if o.IsActive && o.ApplicablePackage == pkg {
			return o, true
		}
	}
	return Offer{}, false
}
