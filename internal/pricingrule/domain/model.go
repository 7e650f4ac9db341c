// Package domain contains the persistence model for pricing rules.
package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CalculationType is the pricing basis of a rule. It is fixed at
// creation; changing it would invalidate the historical interpretation
// of BasePrice.
type CalculationType string

const (
	CalculationTypePiece CalculationType = "piece"
	CalculationTypeArea  CalculationType = "area"
	CalculationTypePage  CalculationType = "page"
)

func (t CalculationType) Valid() bool {
	switch t {
	case CalculationTypePiece, CalculationTypeArea, CalculationTypePage:
		return true
	}
	return false
}

// Well-known attribute keys. A key absent from a rule's attribute map
// is a wildcard: the rule matches any value of that attribute.
const (
	AttrPaperSize    = "paper_size"
	AttrPaperType    = "paper_type"
	AttrColorMode    = "color_mode"
	AttrPrintQuality = "print_quality"
	AttrSides        = "sides"
)

const (
	ColorModeBW    = "bw"
	ColorModeColor = "color"

	SidesSingle = "single"
	SidesDouble = "double"

	QualityStandard = "standard"
	QualityLaser    = "laser"
)

// PricingRule is one priced printing configuration. BasePrice is the
// price of one unit under the rule's calculation type: one piece, one
// square meter, or one single-sided page.
type PricingRule struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	DisplayName      string          `gorm:"type:text;not null" json:"display_name"`
	DisplayNameLocal string          `gorm:"type:text" json:"display_name_local,omitempty"`
	CalculationType  CalculationType `gorm:"type:text;not null;index" json:"calculation_type"`
	BasePrice        decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"base_price"`
	UnitLabel        string          `gorm:"type:text" json:"unit_label"`
	Attributes       datatypes.JSON  `gorm:"type:jsonb" json:"attributes,omitempty"`
	PriceMultipliers datatypes.JSON  `gorm:"type:jsonb" json:"price_multipliers,omitempty"`
	IsActive         bool            `gorm:"not null;default:true;index" json:"is_active"`
	DisplayOrder     int             `gorm:"not null;default:0" json:"display_order"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

func (PricingRule) TableName() string { return "pricing_rules" }

// AttributeMap decodes the stored attribute payload. A malformed
// payload degrades to an empty map so one corrupt rule cannot abort a
// whole matching pass; the rule then scores as a generic fallback.
func (r *PricingRule) AttributeMap() map[string]string {
	if len(r.Attributes) == 0 {
		return map[string]string{}
	}
	var attrs map[string]string
	if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
		return map[string]string{}
	}
	return attrs
}

// MultiplierMap decodes the stored price multipliers, keyed by
// attribute name and then attribute value. Malformed payloads degrade
// to no multipliers.
func (r *PricingRule) MultiplierMap() map[string]map[string]decimal.Decimal {
	if len(r.PriceMultipliers) == 0 {
		return nil
	}
	var raw map[string]map[string]float64
	if err := json.Unmarshal(r.PriceMultipliers, &raw); err != nil {
		return nil
	}
	out := make(map[string]map[string]decimal.Decimal, len(raw))
	for attr, values := range raw {
		converted := make(map[string]decimal.Decimal, len(values))
		for value, m := range values {
			converted[value] = decimal.NewFromFloat(m)
		}
		out[attr] = converted
	}
	return out
}
