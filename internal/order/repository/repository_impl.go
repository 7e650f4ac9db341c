package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/printhauslabs/printhaus/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, line *orderdomain.OrderLine) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO order_lines (
			id, order_number, description, calculation_type, quantity,
			width_cm, height_cm, paper_size, attributes, rule_id, rule_name,
			unit_price, total, status, pricing_note, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		line.ID,
		line.OrderNumber,
		line.Description,
		line.CalculationType,
		line.Quantity,
		line.WidthCm,
		line.HeightCm,
		line.PaperSize,
		line.Attributes,
		line.RuleID,
		line.RuleName,
		line.UnitPrice,
		line.Total,
		line.Status,
		line.PricingNote,
		line.CreatedAt,
		line.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.OrderLine, error) {
	var line orderdomain.OrderLine
	err := db.WithContext(ctx).
		Model(&orderdomain.OrderLine{}).
		Where("id = ?", id).
		First(&line).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, opts orderdomain.ListOptions) ([]orderdomain.OrderLine, error) {
	query := db.WithContext(ctx).Model(&orderdomain.OrderLine{})

	if opts.Status != nil {
		query = query.Where("status = ?", *opts.Status)
	}
	if opts.OrderNumber != "" {
		query = query.Where("order_number = ?", opts.OrderNumber)
	}

	var lines []orderdomain.OrderLine
	err := query.Order("created_at DESC, id DESC").Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
