package service

import (
	"sort"

	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
)

// genericRuleScore is what a rule with no attributes at all receives,
// regardless of the query. It keeps fully generic rules as low-priority
// fallbacks instead of non-candidates.
const genericRuleScore = 1

// bestMatch scores every candidate and returns the winner. Candidates
// are re-sorted by (display_order, id) ascending so ties and the
// zero-score fallback resolve deterministically. Callers must pass a
// non-empty slice.
func bestMatch(candidates []ruledomain.PricingRule, q pricingdomain.PriceQuery, w pricingdomain.Weights) pricingdomain.MatchResult {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DisplayOrder != candidates[j].DisplayOrder {
			return candidates[i].DisplayOrder < candidates[j].DisplayOrder
		}
		return candidates[i].ID < candidates[j].ID
	})

	bestIdx := -1
	bestScore := 0
	for i := range candidates {
		score := scoreRule(&candidates[i], q, w)
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	// Nothing scored above zero: fall back to the first candidate so a
	// request never goes unmatched while any rule of the right
	// calculation type exists.
	if bestIdx == -1 {
		return pricingdomain.MatchResult{Rule: &candidates[0], Score: 0, Fallback: true}
	}

	return pricingdomain.MatchResult{Rule: &candidates[bestIdx], Score: bestScore}
}

func scoreRule(rule *ruledomain.PricingRule, q pricingdomain.PriceQuery, w pricingdomain.Weights) int {
	attrs := rule.AttributeMap()
	if len(attrs) == 0 {
		return genericRuleScore
	}

	score := 0
	score += attributeScore(attrs, q, ruledomain.AttrColorMode, w.ColorMode)
	score += attributeScore(attrs, q, ruledomain.AttrSides, w.Sides)
	score += attributeScore(attrs, q, ruledomain.AttrPrintQuality, w.PrintQuality)
	score += attributeScore(attrs, q, ruledomain.AttrPaperSize, w.PaperSize)
	if rule.UnitLabel != "" && q.UnitLabel != "" && rule.UnitLabel == q.UnitLabel {
		score += w.UnitLabel
	}
	return score
}

func attributeScore(attrs map[string]string, q pricingdomain.PriceQuery, key string, weight int) int {
	ruleValue, ok := attrs[key]
	if !ok {
		return 0
	}
	queryValue, ok := q.Attribute(key)
	if ok && ruleValue == queryValue {
		return weight
	}
	return 0
}
