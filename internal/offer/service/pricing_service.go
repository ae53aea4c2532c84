package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"studentsites/internal/domain"
	apperrors "studentsites/internal/errors"
)

type ActiveOfferLister interface {
	ListActive(ctx context.Context) ([]domain.Offer, error)
}

type PackageCatalog interface {
	Packages() []domain.Package
}

type PricingService struct {
	offers  ActiveOfferLister
	catalog PackageCatalog
}

func NewPricingService(offers ActiveOfferLister, catalog PackageCatalog) *PricingService {
	return &PricingService{offers: offers, catalog: catalog}
}

// PriceFor quotes base for pkg using the currently active offers.
func (s *PricingService) PriceFor(ctx context.Context, base decimal.Decimal, pkg domain.PackageType) (domain.Quote, error) {
	offers, err := s.offers.ListActive(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.PriceFor(base, pkg, offers), nil
}

// PricedPackages quotes every catalog package against a single read of the
// active offers.
func (s *PricingService) PricedPackages(ctx context.Context) ([]domain.PricedPackage, error) {
	packages := s.catalog.Packages()
	if len(packages) == 0 {
		return nil, apperrors.NewInternalError("package catalog is empty", nil)
	}

	offers, err := s.offers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("pricing packages: %w", err)
	}

	priced := make([]domain.PricedPackage, len(packages))
	for i, p := range packages {
		priced[i] = domain.PricedPackage{
			Package: p,
			Quote:   domain.PriceFor(p.Price, p.Type, offers),
		}
	}
	return priced, nil
}
