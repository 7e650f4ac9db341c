package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PricingRule, error)
	Get(ctx context.Context, id string) (*PricingRule, error)
	List(ctx context.Context, opts ListOptions) ([]PricingRule, error)
	Update(ctx context.Context, req UpdateRequest) (*PricingRule, error)
	Deactivate(ctx context.Context, id string) (*PricingRule, error)
	BulkReprice(ctx context.Context, req BulkRepriceRequest) (*BulkRepriceResult, error)
}

// CacheInvalidator is notified after a bulk reprice commits so cached
// rule sets do not serve stale prices longer than their TTL.
type CacheInvalidator interface {
	InvalidateRules(ctx context.Context) error
}

type RepriceOperation string

const (
	RepriceIncrease RepriceOperation = "increase"
	RepriceDecrease RepriceOperation = "decrease"
)

type CreateRequest struct {
	DisplayName      string                        `json:"display_name"`
	DisplayNameLocal string                        `json:"display_name_local"`
	CalculationType  CalculationType               `json:"calculation_type"`
	BasePrice        decimal.Decimal               `json:"base_price"`
	UnitLabel        string                        `json:"unit_label"`
	Attributes       map[string]string             `json:"attributes"`
	PriceMultipliers map[string]map[string]float64 `json:"price_multipliers"`
	DisplayOrder     int                           `json:"display_order"`
}

// UpdateRequest corrects a rule in place. The calculation type is
// immutable; requests carrying a different one are rejected.
type UpdateRequest struct {
	ID               string                         `json:"-"`
	DisplayName      *string                        `json:"display_name,omitempty"`
	DisplayNameLocal *string                        `json:"display_name_local,omitempty"`
	CalculationType  *CalculationType               `json:"calculation_type,omitempty"`
	BasePrice        *decimal.Decimal               `json:"base_price,omitempty"`
	UnitLabel        *string                        `json:"unit_label,omitempty"`
	Attributes       *map[string]string             `json:"attributes,omitempty"`
	PriceMultipliers *map[string]map[string]float64 `json:"price_multipliers,omitempty"`
	IsActive         *bool                          `json:"is_active,omitempty"`
	DisplayOrder     *int                           `json:"display_order,omitempty"`
}

type BulkRepriceRequest struct {
	Percentage      float64          `json:"percentage"`
	Operation       RepriceOperation `json:"operation"`
	CalculationType *CalculationType `json:"calculation_type,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

type BulkRepriceResult struct {
	UpdatedCount int64           `json:"updated_count"`
	Multiplier   decimal.Decimal `json:"multiplier"`
}

var (
	ErrInvalidID                = errors.New("invalid_rule_id")
	ErrRuleNotFound             = errors.New("pricing_rule_not_found")
	ErrInvalidDisplayName       = errors.New("invalid_display_name")
	ErrInvalidCalculationType   = errors.New("invalid_calculation_type")
	ErrCalculationTypeImmutable = errors.New("calculation_type_immutable")
	ErrNegativeBasePrice        = errors.New("negative_base_price")
	ErrInvalidPercentage        = errors.New("invalid_percentage")
	ErrInvalidOperation         = errors.New("invalid_reprice_operation")
)
