package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ruledomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *ruledomain.PricingRule) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO pricing_rules (
			id, display_name, display_name_local, calculation_type, base_price,
			unit_label, attributes, price_multipliers, is_active, display_order,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID,
		rule.DisplayName,
		rule.DisplayNameLocal,
		rule.CalculationType,
		rule.BasePrice,
		rule.UnitLabel,
		rule.Attributes,
		rule.PriceMultipliers,
		rule.IsActive,
		rule.DisplayOrder,
		rule.CreatedAt,
		rule.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ruledomain.PricingRule, error) {
	var rule ruledomain.PricingRule
	err := db.WithContext(ctx).
		Model(&ruledomain.PricingRule{}).
		Where("id = ?", id).
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, opts ruledomain.ListOptions) ([]ruledomain.PricingRule, error) {
	query := db.WithContext(ctx).Model(&ruledomain.PricingRule{})

	if opts.CalculationType != nil {
		query = query.Where("calculation_type = ?", *opts.CalculationType)
	}
	if opts.IsActive != nil {
		query = query.Where("is_active = ?", *opts.IsActive)
	}

	var rules []ruledomain.PricingRule
	err := query.Order("display_order ASC, id ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, calcType ruledomain.CalculationType) ([]ruledomain.PricingRule, error) {
	var rules []ruledomain.PricingRule
	err := db.WithContext(ctx).
		Model(&ruledomain.PricingRule{}).
		Where("is_active = ? AND calculation_type = ?", true, calcType).
		Order("display_order ASC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *ruledomain.PricingRule) error {
	return db.WithContext(ctx).Exec(
		`UPDATE pricing_rules SET
			display_name = ?, display_name_local = ?, base_price = ?,
			unit_label = ?, attributes = ?, price_multipliers = ?,
			is_active = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		rule.DisplayName,
		rule.DisplayNameLocal,
		rule.BasePrice,
		rule.UnitLabel,
		rule.Attributes,
		rule.PriceMultipliers,
		rule.IsActive,
		rule.DisplayOrder,
		rule.UpdatedAt,
		rule.ID,
	).Error
}

func (r *repo) UpdatePrice(ctx context.Context, db *gorm.DB, id snowflake.ID, price decimal.Decimal, now time.Time) error {
	return db.WithContext(ctx).
		Model(&ruledomain.PricingRule{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"base_price": price,
			"updated_at": now,
		}).Error
}

func (r *repo) SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool, now time.Time) error {
	return db.WithContext(ctx).
		Model(&ruledomain.PricingRule{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": now,
		}).Error
}

func (r *repo) ListForReprice(ctx context.Context, db *gorm.DB, filter ruledomain.RepriceFilter) ([]ruledomain.PricingRule, error) {
	query := db.WithContext(ctx).Model(&ruledomain.PricingRule{})

	if filter.CalculationType != nil {
		query = query.Where("calculation_type = ?", *filter.CalculationType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	} else {
		query = query.Where("is_active = ?", true)
	}

	var rules []ruledomain.PricingRule
	err := query.Order("id ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
