// Package seed installs a starter rule set so a fresh deployment can
// price common jobs out of the box. It never touches a database that
// already has rules.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
)

var Module = fx.Module("seed",
	fx.Invoke(Run),
)

type starterRule struct {
	DisplayName      string
	DisplayNameLocal string
	CalculationType  ruledomain.CalculationType
	BasePrice        string
	UnitLabel        string
	Attributes       map[string]string
	PriceMultipliers map[string]map[string]float64
	DisplayOrder     int
}

func starterRules() []starterRule {
	return []starterRule{
		{
			DisplayName:      "Black & White Copy",
			DisplayNameLocal: "Fotokopi Hitam Putih",
			CalculationType:  ruledomain.CalculationTypePage,
			BasePrice:        "300",
			UnitLabel:        "page",
			Attributes: map[string]string{
				ruledomain.AttrColorMode: ruledomain.ColorModeBW,
			},
			PriceMultipliers: map[string]map[string]float64{
				ruledomain.AttrPaperSize: {"A3": 2.0},
			},
			DisplayOrder: 10,
		},
		{
			DisplayName:      "Color Copy",
			DisplayNameLocal: "Fotokopi Warna",
			CalculationType:  ruledomain.CalculationTypePage,
			BasePrice:        "1000",
			UnitLabel:        "page",
			Attributes: map[string]string{
				ruledomain.AttrColorMode: ruledomain.ColorModeColor,
			},
			PriceMultipliers: map[string]map[string]float64{
				ruledomain.AttrPaperSize: {"A3": 2.0},
			},
			DisplayOrder: 20,
		},
		{
			DisplayName:      "Color Laser Print",
			DisplayNameLocal: "Cetak Laser Warna",
			CalculationType:  ruledomain.CalculationTypePage,
			BasePrice:        "1500",
			UnitLabel:        "page",
			Attributes: map[string]string{
				ruledomain.AttrColorMode:    ruledomain.ColorModeColor,
				ruledomain.AttrPrintQuality: ruledomain.QualityLaser,
			},
			DisplayOrder: 30,
		},
		{
			DisplayName:      "Outdoor Banner",
			DisplayNameLocal: "Spanduk Outdoor",
			CalculationType:  ruledomain.CalculationTypeArea,
			BasePrice:        "25000",
			UnitLabel:        "m2",
			Attributes: map[string]string{
				ruledomain.AttrPaperType: "flexi",
			},
			DisplayOrder: 40,
		},
		{
			DisplayName:      "Business Card Box",
			DisplayNameLocal: "Kartu Nama per Box",
			CalculationType:  ruledomain.CalculationTypePiece,
			BasePrice:        "35000",
			UnitLabel:        "box",
			PriceMultipliers: map[string]map[string]float64{
				ruledomain.AttrSides: {ruledomain.SidesDouble: 1.5},
			},
			DisplayOrder: 50,
		},
		{
			DisplayName:      "Lamination",
			DisplayNameLocal: "Laminasi",
			CalculationType:  ruledomain.CalculationTypePiece,
			BasePrice:        "2000",
			UnitLabel:        "sheet",
			DisplayOrder:     60,
		},
	}
}

// Run inserts the starter rules when the pricing_rules table is empty.
func Run(conn *gorm.DB, gen *snowflake.Node, log *zap.Logger) error {
	ctx := context.Background()

	var count int64
	if err := conn.WithContext(ctx).Model(&ruledomain.PricingRule{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count pricing rules: %w", err)
	}
	if count > 0 {
		return nil
	}

	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range starterRules() {
			price, err := decimal.NewFromString(s.BasePrice)
			if err != nil {
				return fmt.Errorf("parse seed price for %q: %w", s.DisplayName, err)
			}

			rule := ruledomain.PricingRule{
				ID:               gen.Generate(),
				DisplayName:      s.DisplayName,
				DisplayNameLocal: s.DisplayNameLocal,
				CalculationType:  s.CalculationType,
				BasePrice:        price,
				UnitLabel:        s.UnitLabel,
				IsActive:         true,
				DisplayOrder:     s.DisplayOrder,
			}
			if len(s.Attributes) > 0 {
				raw, err := json.Marshal(s.Attributes)
				if err != nil {
					return fmt.Errorf("marshal seed attributes for %q: %w", s.DisplayName, err)
				}
				rule.Attributes = raw
			}
			if len(s.PriceMultipliers) > 0 {
				raw, err := json.Marshal(s.PriceMultipliers)
				if err != nil {
					return fmt.Errorf("marshal seed multipliers for %q: %w", s.DisplayName, err)
				}
				rule.PriceMultipliers = raw
			}

			if err := tx.Create(&rule).Error; err != nil {
				return fmt.Errorf("insert seed rule %q: %w", s.DisplayName, err)
			}
		}

		log.Info("seeded starter pricing rules", zap.Int("count", len(starterRules())))
		return nil
	})
}
