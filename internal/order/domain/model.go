// Package domain contains the order line persistence model.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Status string

const (
	// StatusPriced means the engine matched a rule and the stored
	// total is authoritative.
	StatusPriced Status = "priced"
	// StatusPendingPricing means no rule matched; the line was stored
	// with a zero total for manual follow-up pricing.
	StatusPendingPricing Status = "pending_pricing"
)

// OrderLine persists one priced (or pending) position of a customer
// order, including the rule that produced the price for auditability.
type OrderLine struct {
	ID              snowflake.ID               `gorm:"primaryKey" json:"id"`
	OrderNumber     string                     `gorm:"type:text;not null;index" json:"order_number"`
	Description     string                     `gorm:"type:text" json:"description,omitempty"`
	CalculationType ruledomain.CalculationType `gorm:"type:text;not null" json:"calculation_type"`
	Quantity        int64                      `gorm:"not null" json:"quantity"`
	WidthCm         float64                    `json:"width_cm,omitempty"`
	HeightCm        float64                    `json:"height_cm,omitempty"`
	PaperSize       string                     `gorm:"type:text" json:"paper_size,omitempty"`
	Attributes      datatypes.JSON             `gorm:"type:jsonb" json:"attributes,omitempty"`
	RuleID          *snowflake.ID              `gorm:"index" json:"rule_id,omitempty"`
	RuleName        string                     `gorm:"type:text" json:"rule_name,omitempty"`
	UnitPrice       decimal.Decimal            `gorm:"type:numeric(14,4);not null" json:"unit_price"`
	Total           decimal.Decimal            `gorm:"type:numeric(14,4);not null" json:"total"`
	Status          Status                     `gorm:"type:text;not null;index" json:"status"`
	PricingNote     string                     `gorm:"type:text" json:"pricing_note,omitempty"`
	CreatedAt       time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                  `gorm:"not null" json:"updated_at"`
}

func (OrderLine) TableName() string { return "order_lines" }

type ListOptions struct {
	Status      *Status `form:"status"`
	OrderNumber string  `form:"order_number"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, line *OrderLine) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*OrderLine, error)
	List(ctx context.Context, db *gorm.DB, opts ListOptions) ([]OrderLine, error)
}

type CreateRequest struct {
	Description     string                     `json:"description"`
	CalculationType ruledomain.CalculationType `json:"calculation_type"`
	Quantity        int64                      `json:"quantity"`
	WidthCm         float64                    `json:"width_cm"`
	HeightCm        float64                    `json:"height_cm"`
	Attributes      map[string]string          `json:"attributes"`
	UnitLabel       string                     `json:"unit_label"`
}

type Service interface {
	// Create prices the request through the engine and persists the
	// resulting line. A no-match outcome still creates the line, with
	// a zero total and pending status.
	Create(ctx context.Context, req CreateRequest) (*OrderLine, error)
	Get(ctx context.Context, id string) (*OrderLine, error)
	List(ctx context.Context, opts ListOptions) ([]OrderLine, error)
}

var (
	ErrInvalidID    = errors.New("invalid_order_line_id")
	ErrLineNotFound = errors.New("order_line_not_found")
)
