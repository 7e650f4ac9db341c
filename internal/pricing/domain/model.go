// Package domain defines the pricing engine's query and result types.
package domain

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/printhauslabs/printhaus/internal/papersize"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/shopspring/decimal"
)

// PriceQuery is the ephemeral input to matching and calculation. It is
// never persisted. WidthCm/HeightCm of zero mean "not supplied".
type PriceQuery struct {
	CalculationType ruledomain.CalculationType `json:"calculation_type"`
	Quantity        int64                      `json:"quantity"`
	WidthCm         float64                    `json:"width_cm,omitempty"`
	HeightCm        float64                    `json:"height_cm,omitempty"`
	Attributes      map[string]string          `json:"attributes,omitempty"`
	UnitLabel       string                     `json:"unit_label,omitempty"`
}

func (q PriceQuery) Attribute(key string) (string, bool) {
	v, ok := q.Attributes[key]
	return v, ok
}

// PriceResult is the calculator output. When Matched is false the
// total is zero and Reason explains why; that is a recoverable outcome
// so an order can still be created for manual follow-up pricing.
type PriceResult struct {
	Total     decimal.Decimal `json:"total"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	RuleID    snowflake.ID    `json:"rule_id,omitempty"`
	RuleName  string          `json:"rule_name,omitempty"`
	PaperSize papersize.Size  `json:"paper_size,omitempty"`
	AreaM2    decimal.Decimal `json:"area_m2,omitempty"`
	Matched   bool            `json:"matched"`
	Reason    string          `json:"reason,omitempty"`
}

// MatchResult reports the rule the matcher selected and its score.
type MatchResult struct {
	Rule  *ruledomain.PricingRule
	Score int
	// Fallback is set when no rule scored above zero and the first
	// candidate in (display_order, id) order was used instead.
	Fallback bool
}

// Weights are the matcher's scoring constants. The exact values are
// configuration, not load-bearing business rules.
type Weights struct {
	ColorMode    int
	Sides        int
	PrintQuality int
	PaperSize    int
	UnitLabel    int
}

func DefaultWeights() Weights {
	return Weights{ColorMode: 2, Sides: 2, PrintQuality: 2, PaperSize: 1, UnitLabel: 1}
}

var (
	ErrInvalidQuantity        = errors.New("invalid_quantity")
	ErrInvalidDimension       = papersize.ErrInvalidDimension
	ErrInvalidCalculationType = errors.New("invalid_calculation_type")
	ErrInvalidRuleState       = errors.New("invalid_rule_state")
)
