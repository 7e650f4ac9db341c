package service

import (
	"encoding/json"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"

	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
)

func testID(v int64) snowflake.ID { return snowflake.ID(v) }

func ruleWithAttrs(t *testing.T, id int64, order int, attrs map[string]string) ruledomain.PricingRule {
	t.Helper()
	rule := ruledomain.PricingRule{
		ID:              testID(id),
		CalculationType: ruledomain.CalculationTypePage,
		DisplayOrder:    order,
	}
	if len(attrs) > 0 {
		raw, err := json.Marshal(attrs)
		require.NoError(t, err)
		rule.Attributes = raw
	}
	return rule
}

func TestBestMatchPrefersMoreSpecificRule(t *testing.T) {
	ruleA := ruleWithAttrs(t, 1, 10, map[string]string{
		ruledomain.AttrPaperSize: "A4",
		ruledomain.AttrColorMode: ruledomain.ColorModeBW,
	})
	ruleB := ruleWithAttrs(t, 2, 20, map[string]string{
		ruledomain.AttrPaperSize:    "A4",
		ruledomain.AttrColorMode:    ruledomain.ColorModeColor,
		ruledomain.AttrPrintQuality: ruledomain.QualityLaser,
	})

	q := pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Attributes: map[string]string{
			ruledomain.AttrPaperSize:    "A4",
			ruledomain.AttrColorMode:    ruledomain.ColorModeColor,
			ruledomain.AttrPrintQuality: ruledomain.QualityLaser,
			ruledomain.AttrSides:        ruledomain.SidesDouble,
		},
	}

	match := bestMatch([]ruledomain.PricingRule{ruleA, ruleB}, q, pricingdomain.DefaultWeights())
	require.Equal(t, ruleB.ID, match.Rule.ID)
	require.Equal(t, 5, match.Score)
	require.False(t, match.Fallback)
}

func TestBestMatchTieBreaksByDisplayOrderThenID(t *testing.T) {
	attrs := map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeBW}
	first := ruleWithAttrs(t, 5, 10, attrs)
	second := ruleWithAttrs(t, 3, 20, attrs)

	q := pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Attributes:      map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeBW},
	}

	// Equal scores: the lower display_order wins regardless of slice order.
	match := bestMatch([]ruledomain.PricingRule{second, first}, q, pricingdomain.DefaultWeights())
	require.Equal(t, first.ID, match.Rule.ID)

	// Same display_order: the lower id wins.
	third := ruleWithAttrs(t, 2, 10, attrs)
	match = bestMatch([]ruledomain.PricingRule{first, third}, q, pricingdomain.DefaultWeights())
	require.Equal(t, third.ID, match.Rule.ID)
}

func TestBestMatchGenericRuleScoresOne(t *testing.T) {
	generic := ruleWithAttrs(t, 1, 10, nil)
	mismatched := ruleWithAttrs(t, 2, 20, map[string]string{
		ruledomain.AttrColorMode: ruledomain.ColorModeColor,
	})

	q := pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Attributes:      map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeBW},
	}

	match := bestMatch([]ruledomain.PricingRule{mismatched, generic}, q, pricingdomain.DefaultWeights())
	require.Equal(t, generic.ID, match.Rule.ID)
	require.Equal(t, 1, match.Score)
	require.False(t, match.Fallback)
}

func TestBestMatchFallsBackToFirstCandidate(t *testing.T) {
	ruleA := ruleWithAttrs(t, 9, 20, map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeColor})
	ruleB := ruleWithAttrs(t, 4, 10, map[string]string{ruledomain.AttrPrintQuality: ruledomain.QualityLaser})

	q := pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Attributes:      map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeBW},
	}

	match := bestMatch([]ruledomain.PricingRule{ruleA, ruleB}, q, pricingdomain.DefaultWeights())
	require.True(t, match.Fallback)
	require.Equal(t, 0, match.Score)
	require.Equal(t, ruleB.ID, match.Rule.ID)
}

func TestScoreRuleMalformedAttributesDegradeToGeneric(t *testing.T) {
	rule := ruledomain.PricingRule{
		ID:              testID(1),
		CalculationType: ruledomain.CalculationTypePage,
		Attributes:      []byte(`{"color_mode": 42}`),
	}

	q := pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Attributes:      map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeBW},
	}

	require.Equal(t, genericRuleScore, scoreRule(&rule, q, pricingdomain.DefaultWeights()))
}

func TestScoreRuleUnitLabelMatch(t *testing.T) {
	rule := ruleWithAttrs(t, 1, 10, map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeBW})
	rule.UnitLabel = "page"

	q := pricingdomain.PriceQuery{
		CalculationType: ruledomain.CalculationTypePage,
		Attributes:      map[string]string{ruledomain.AttrColorMode: ruledomain.ColorModeBW},
		UnitLabel:       "page",
	}

	require.Equal(t, 3, scoreRule(&rule, q, pricingdomain.DefaultWeights()))
}
