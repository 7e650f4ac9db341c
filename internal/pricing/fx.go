package pricing

import (
	"github.com/printhauslabs/printhaus/internal/config"
	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	"github.com/printhauslabs/printhaus/internal/pricing/service"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(NewWeights),
	fx.Provide(service.NewRuleCache),
	fx.Provide(func(c *service.RuleCache) ruledomain.CacheInvalidator { return c }),
	fx.Provide(service.New),
)

// NewWeights lifts the matcher scoring constants out of configuration.
func NewWeights(cfg *config.Config) pricingdomain.Weights {
	w := pricingdomain.Weights{
		ColorMode:    cfg.Pricing.Weights.ColorMode,
		Sides:        cfg.Pricing.Weights.Sides,
		PrintQuality: cfg.Pricing.Weights.PrintQuality,
		PaperSize:    cfg.Pricing.Weights.PaperSize,
		UnitLabel:    cfg.Pricing.Weights.UnitLabel,
	}
	if w == (pricingdomain.Weights{}) {
		return pricingdomain.DefaultWeights()
	}
	return w
}
