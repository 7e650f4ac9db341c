package service

import (
	"github.com/printhauslabs/printhaus/internal/papersize"
	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// calculate prices a query against a selected rule. All arithmetic is
// exact decimal; display rounding is a caller concern.
func calculate(rule *ruledomain.PricingRule, q pricingdomain.PriceQuery) (*pricingdomain.PriceResult, error) {
	if rule.BasePrice.IsNegative() {
		return nil, pricingdomain.ErrInvalidRuleState
	}
	if q.WidthCm < 0 || q.HeightCm < 0 {
		return nil, pricingdomain.ErrInvalidDimension
	}

	quantity := q.Quantity
	switch rule.CalculationType {
	case ruledomain.CalculationTypeArea:
		// Quantity is the count of identical pieces; default 1.
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, pricingdomain.ErrInvalidQuantity
		}
	default:
		if quantity <= 0 {
			return nil, pricingdomain.ErrInvalidQuantity
		}
	}

	unit := rule.BasePrice

	// A double-sided page costs exactly twice a single-sided page of
	// the same configuration. The doubling is automatic so a single
	// rule covers both sidednesses.
	isPage := rule.CalculationType == ruledomain.CalculationTypePage
	if isPage {
		if sides, ok := q.Attribute(ruledomain.AttrSides); ok && sides == ruledomain.SidesDouble {
			unit = unit.Mul(two)
		}
	}

	for attr, values := range rule.MultiplierMap() {
		// Sidedness is priced into page rules above; a stored sides
		// multiplier must not apply on top of the doubling.
		if isPage && attr == ruledomain.AttrSides {
			continue
		}
		queryValue, ok := q.Attribute(attr)
		if !ok {
			continue
		}
		if m, ok := values[queryValue]; ok {
			unit = unit.Mul(m)
		}
	}

	qty := decimal.NewFromInt(quantity)
	result := &pricingdomain.PriceResult{
		UnitPrice: unit,
		RuleID:    rule.ID,
		RuleName:  rule.DisplayName,
		Matched:   true,
	}

	switch rule.CalculationType {
	case ruledomain.CalculationTypeArea:
		if q.WidthCm > 0 && q.HeightCm > 0 {
			area := papersize.AreaSquareMeters(q.WidthCm, q.HeightCm)
			result.AreaM2 = area
			result.Total = unit.Mul(area).Mul(qty)
		} else {
			// Degraded mode: no dimensions, quantity alone scales.
			result.Total = unit.Mul(qty)
			result.Reason = "area rule priced without dimensions"
		}
	default:
		result.Total = unit.Mul(qty)
	}

	return result, nil
}
