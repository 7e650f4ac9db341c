package service

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
)

func pageRule(t *testing.T, basePrice string) *ruledomain.PricingRule {
	t.Helper()
	return &ruledomain.PricingRule{
		ID:              testID(1),
		DisplayName:     "Copy",
		CalculationType: ruledomain.CalculationTypePage,
		BasePrice:       decimal.RequireFromString(basePrice),
	}
}

func TestCalculatePageDoubleSidedDoubles(t *testing.T) {
	rule := pageRule(t, "150")

	result, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        10,
		Attributes:      map[string]string{ruledomain.AttrSides: ruledomain.SidesDouble},
	})
	require.NoError(t, err)
	require.True(t, result.UnitPrice.Equal(decimal.RequireFromString("300")))
	require.True(t, result.Total.Equal(decimal.RequireFromString("3000")))
	require.True(t, result.Matched)
}

func TestCalculatePageSingleSided(t *testing.T) {
	rule := pageRule(t, "150")

	result, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        10,
		Attributes:      map[string]string{ruledomain.AttrSides: ruledomain.SidesSingle},
	})
	require.NoError(t, err)
	require.True(t, result.Total.Equal(decimal.RequireFromString("1500")))
}

func TestCalculatePageIgnoresStoredSidesMultiplier(t *testing.T) {
	rule := pageRule(t, "100")
	raw, err := json.Marshal(map[string]map[string]float64{
		ruledomain.AttrSides: {ruledomain.SidesDouble: 1.5},
	})
	require.NoError(t, err)
	rule.PriceMultipliers = raw

	result, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        1,
		Attributes:      map[string]string{ruledomain.AttrSides: ruledomain.SidesDouble},
	})
	require.NoError(t, err)
	// Doubling only; the stored sides multiplier must not stack on top.
	require.True(t, result.Total.Equal(decimal.RequireFromString("200")))
}

func TestCalculateAppliesAttributeMultipliers(t *testing.T) {
	rule := pageRule(t, "300")
	raw, err := json.Marshal(map[string]map[string]float64{
		ruledomain.AttrPaperSize: {"A3": 2.0},
	})
	require.NoError(t, err)
	rule.PriceMultipliers = raw

	result, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        5,
		Attributes:      map[string]string{ruledomain.AttrPaperSize: "A3"},
	})
	require.NoError(t, err)
	require.True(t, result.UnitPrice.Equal(decimal.RequireFromString("600")))
	require.True(t, result.Total.Equal(decimal.RequireFromString("3000")))
}

func TestCalculateAreaScalesByDimensions(t *testing.T) {
	rule := &ruledomain.PricingRule{
		ID:              testID(2),
		DisplayName:     "Banner",
		CalculationType: ruledomain.CalculationTypeArea,
		BasePrice:       decimal.RequireFromString("25000"),
	}

	// 200cm x 100cm = 2 m2, quantity defaults to 1.
	result, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypeArea,
		WidthCm:         200,
		HeightCm:        100,
	})
	require.NoError(t, err)
	require.True(t, result.AreaM2.Equal(decimal.RequireFromString("2")))
	require.True(t, result.Total.Equal(decimal.RequireFromString("50000")))

	// Three identical banners.
	result, err = calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypeArea,
		Quantity:        3,
		WidthCm:         200,
		HeightCm:        100,
	})
	require.NoError(t, err)
	require.True(t, result.Total.Equal(decimal.RequireFromString("150000")))
}

func TestCalculateAreaWithoutDimensionsDegrades(t *testing.T) {
	rule := &ruledomain.PricingRule{
		ID:              testID(2),
		CalculationType: ruledomain.CalculationTypeArea,
		BasePrice:       decimal.RequireFromString("25000"),
	}

	result, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypeArea,
		Quantity:        2,
	})
	require.NoError(t, err)
	require.True(t, result.Total.Equal(decimal.RequireFromString("50000")))
	require.NotEmpty(t, result.Reason)
}

func TestCalculateRejectsBadQuantity(t *testing.T) {
	rule := pageRule(t, "100")

	_, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        0,
	})
	require.ErrorIs(t, err, pricingdomain.ErrInvalidQuantity)

	_, err = calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        -3,
	})
	require.ErrorIs(t, err, pricingdomain.ErrInvalidQuantity)
}

func TestCalculateRejectsNegativeBasePrice(t *testing.T) {
	rule := pageRule(t, "-10")

	_, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        1,
	})
	require.ErrorIs(t, err, pricingdomain.ErrInvalidRuleState)
}

func TestCalculateRejectsNegativeDimensions(t *testing.T) {
	rule := pageRule(t, "100")

	_, err := calculate(rule, pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        1,
		WidthCm:         -21,
		HeightCm:        29.7,
	})
	require.ErrorIs(t, err, pricingdomain.ErrInvalidDimension)
}
