package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type PackageType string

const (
	PackageBasic    PackageType = "basic"
	PackageStandard PackageType = "standard"
	PackagePro      PackageType = "pro"
)

var packageTypes = []PackageType{PackageBasic, PackageStandard, PackagePro}

func PackageTypes() []PackageType {
	return slices.Clone(packageTypes)
}

func ParsePackageType(raw string) (PackageType, bool) {
	p := PackageType(raw)
	if !slices.Contains(packageTypes, p) {
		return "", false
	}
	return p, true
}

// Package is a service tier offered on the public site.
type Package struct {
	Type     PackageType
	Title    string
	Price    decimal.Decimal
	Features []string
	Popular  bool
}

// Quote is the price shown for a package once any active offer is applied.
// StrikePrice and DiscountPercentage are nil when no offer applies.
type Quote struct {
	DisplayPrice       decimal.Decimal
	StrikePrice        *decimal.Decimal
	DiscountPercentage *int
}

type PricedPackage struct {
	Package
	Quote
}

// PriceFor applies the first active offer for pkg to base. The discounted
// price is rounded half away from zero to whole currency units.
func PriceFor(base decimal.Decimal, pkg PackageType, activeOffers []Offer) Quote {
	offer, ok := FirstOfferFor(activeOffers, pkg)
	if !ok {
		return Quote{DisplayPrice: base}
	}

	pct := offer.DiscountPercentage
	factor := decimal.NewFromInt(int64(100 - pct)).Div(decimal.NewFromInt(100))
	strike := base

	return Quote{
		DisplayPrice:       base.Mul(factor).Round(0),
		StrikePrice:        &strike,
		DiscountPercentage: &pct,
	}
}
