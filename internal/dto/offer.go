package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"studentsites/internal/domain"
)

type CreateOfferRequest struct {
	Title              string `json:"title"`
	DiscountPercentage int    `json:"discountPercentage"`
	ApplicablePackage  string `json:"applicablePackage"`
}

func (r CreateOfferRequest) ToDomain() domain.OfferDraft {
	return domain.OfferDraft{
		Title:              r.Title,
		DiscountPercentage: r.DiscountPercentage,
		ApplicablePackage:  r.ApplicablePackage,
	}
}

type SetOfferActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

type OfferResponse struct {
	ID                 string    `json:"_id"`
	Title              string    `json:"title"`
	DiscountPercentage int       `json:"discountPercentage"`
	ApplicablePackage  string    `json:"applicablePackage"`
	IsActive           bool      `json:"isActive"`
	CreatedDate        time.Time `json:"createdDate"`
}

func NewOfferResponse(o domain.Offer) OfferResponse {
	return OfferResponse{
		ID:                 o.ID,
		Title:              o.Title,
		DiscountPercentage: o.DiscountPercentage,
		ApplicablePackage:  string(o.ApplicablePackage),
		IsActive:           o.IsActive,
		CreatedDate:        o.CreatedDate,
	}
}

func NewOfferResponses(offers []domain.Offer) []OfferResponse {
	out := make([]OfferResponse, len(offers))
	for i, o := range offers {
		out[i] = NewOfferResponse(o)
	}
	return out
}

// PackageResponse is a catalog package with the active offer applied.
// Prices are exact decimals encoded as JSON strings.
type PackageResponse struct {
	Type               string           `json:"packageType"`
	Title              string           `json:"title"`
	Features           []string         `json:"features"`
	Popular            bool             `json:"popular"`
	BasePrice          decimal.Decimal  `json:"basePrice"`
	DisplayPrice       decimal.Decimal  `json:"displayPrice"`
	StrikePrice        *decimal.Decimal `json:"strikePrice"`
	DiscountPercentage *int             `json:"discountPercentage"`
}

func NewPackageResponses(packages []domain.PricedPackage) []PackageResponse {
	out := make([]PackageResponse, len(packages))
	for i, p := range packages {
		out[i] = PackageResponse{
			Type:               string(p.Type),
			Title:              p.Title,
			Features:           p.Features,
			Popular:            p.Popular,
			BasePrice:          p.Price,
			DisplayPrice:       p.DisplayPrice,
			StrikePrice:        p.StrikePrice,
			DiscountPercentage: p.DiscountPercentage,
		}
	}
	return out
}
