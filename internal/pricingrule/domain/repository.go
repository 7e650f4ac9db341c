package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListOptions struct {
	CalculationType *CalculationType `form:"calculation_type"`
	IsActive        *bool            `form:"is_active"`
}

// RepriceFilter selects the rules a bulk reprice applies to. A nil
// IsActive defaults to active rules only; inactive rules are excluded
// unless explicitly targeted.
type RepriceFilter struct {
	CalculationType *CalculationType
	IsActive        *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PricingRule, error)
	List(ctx context.Context, db *gorm.DB, opts ListOptions) ([]PricingRule, error)
	// ListActive returns active rules of one calculation type ordered
	// by (display_order, id) ascending, the matcher's candidate order.
	ListActive(ctx context.Context, db *gorm.DB, calcType CalculationType) ([]PricingRule, error)
	Update(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	UpdatePrice(ctx context.Context, db *gorm.DB, id snowflake.ID, price decimal.Decimal, now time.Time) error
	SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool, now time.Time) error
	// ListForReprice returns the id and base price of every rule the
	// filter selects, in a stable order.
	ListForReprice(ctx context.Context, db *gorm.DB, filter RepriceFilter) ([]PricingRule, error)
}
