package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFor_NoOffer(t *testing.T) {
	base := decimal.NewFromInt(499)

	quote := PriceFor(base, PackageBasic, nil)

	assert.True(t, base.Equal(quote.DisplayPrice))
	assert.Nil(t, quote.StrikePrice)
	assert.Nil(t, quote.DiscountPercentage)
}

func TestPriceFor_AppliesDiscount(t *testing.T) {
	offers := []Offer{
		{ID: "o1", DiscountPercentage: 20, ApplicablePackage: PackageStandard, IsActive: true},
	}

	quote := PriceFor(decimal.NewFromInt(1499), PackageStandard, offers)

	assert.Equal(t, "1199", quote.DisplayPrice.String())
	require.NotNil(t, quote.StrikePrice)
	assert.Equal(t, "1499", quote.StrikePrice.String())
	require.NotNil(t, quote.DiscountPercentage)
	assert.Equal(t, 20, *quote.DiscountPercentage)
}

func TestPriceFor_RoundsToNearestUnit(t *testing.T) {
	testCases := []struct {
		base     int64
		pct      int
		expected string
	}{
		{499, 10, "449"},   // 449.1
		{499, 50, "250"},   // 249.5
		{3499, 15, "2974"}, // 2974.15
		{1499, 99, "15"},   // 14.99
		{1, 1, "1"},        // 0.99
	}

	for _, tc := range testCases {
		offers := []Offer{{DiscountPercentage: tc.pct, ApplicablePackage: PackagePro, IsActive: true}}
		quote := PriceFor(decimal.NewFromInt(tc.base), PackagePro, offers)
		assert.Equal(t, tc.expected, quote.DisplayPrice.String(), "%d at %d%%", tc.base, tc.pct)
	}
}

func TestPriceFor_FirstMatchWins(t *testing.T) {
	now := time.Now()
	offers := []Offer{
		{ID: "basic", DiscountPercentage: 50, ApplicablePackage: PackageBasic, IsActive: true, CreatedDate: now},
		{ID: "first", DiscountPercentage: 10, ApplicablePackage: PackagePro, IsActive: true, CreatedDate: now},
		{ID: "second", DiscountPercentage: 40, ApplicablePackage: PackagePro, IsActive: true, CreatedDate: now.Add(time.Minute)},
	}

	quote := PriceFor(decimal.NewFromInt(1000), PackagePro, offers)

	assert.Equal(t, "900", quote.DisplayPrice.String())
}

func TestPriceFor_IgnoresInactiveOffers(t *testing.T) {
	offers := []Offer{
		{ID: "off", DiscountPercentage: 50, ApplicablePackage: PackagePro, IsActive: false},
	}

	quote := PriceFor(decimal.NewFromInt(3499), PackagePro, offers)

	assert.Equal(t, "3499", quote.DisplayPrice.String())
	assert.Nil(t, quote.StrikePrice)
}

func TestPriceFor_DisplayNeverExceedsBase(t *testing.T) {
	base := decimal.NewFromInt(777)
	for pct := MinDiscountPercentage; pct <= MaxDiscountPercentage; pct++ {
		offers := []Offer{{DiscountPercentage: pct, ApplicablePackage: PackageBasic, IsActive: true}}
		quote := PriceFor(base, PackageBasic, offers)
		assert.True(t, quote.DisplayPrice.LessThanOrEqual(base), "pct %d", pct)
		assert.True(t, quote.DisplayPrice.IsPositive(), "pct %d", pct)
	}
}
