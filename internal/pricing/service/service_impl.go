package service

import (
	"context"
	"fmt"

	"github.com/printhauslabs/printhaus/internal/papersize"
	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    ruledomain.Repository
	Cache   *RuleCache            `optional:"true"`
	Weights pricingdomain.Weights `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    ruledomain.Repository
	cache   *RuleCache
	weights pricingdomain.Weights
}

func New(p Params) pricingdomain.Service {
	w := p.Weights
	if w == (pricingdomain.Weights{}) {
		w = pricingdomain.DefaultWeights()
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("pricing.service"),
		repo:    p.Repo,
		cache:   p.Cache,
		weights: w,
	}
}

func (s *Service) Quote(ctx context.Context, q pricingdomain.PriceQuery) (*pricingdomain.PriceResult, error) {
	if !q.CalculationType.Valid() {
		return nil, pricingdomain.ErrInvalidCalculationType
	}

	size, err := s.classify(&q)
	if err != nil {
		return nil, err
	}

	candidates, err := s.activeRules(ctx, q.CalculationType)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &pricingdomain.PriceResult{
			Total:     decimal.Zero,
			UnitPrice: decimal.Zero,
			PaperSize: size,
			Matched:   false,
			Reason:    fmt.Sprintf("no pricing rule found for calculation type %q", q.CalculationType),
		}, nil
	}

	match := bestMatch(candidates, q, s.weights)
	result, err := calculate(match.Rule, q)
	if err != nil {
		return nil, err
	}
	result.PaperSize = size
	if match.Fallback && result.Reason == "" {
		result.Reason = "no rule matched the requested attributes; first active rule used"
	}
	return result, nil
}

func (s *Service) Match(ctx context.Context, q pricingdomain.PriceQuery) (*pricingdomain.MatchResult, error) {
	if !q.CalculationType.Valid() {
		return nil, pricingdomain.ErrInvalidCalculationType
	}
	if _, err := s.classify(&q); err != nil {
		return nil, err
	}

	candidates, err := s.activeRules(ctx, q.CalculationType)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	match := bestMatch(candidates, q, s.weights)
	return &match, nil
}

// classify resolves raw dimensions to a standard paper size and, when
// the query did not declare one, feeds it into the attribute set the
// matcher sees.
func (s *Service) classify(q *pricingdomain.PriceQuery) (papersize.Size, error) {
	if q.WidthCm == 0 && q.HeightCm == 0 {
		return papersize.SizeNone, nil
	}
	size, err := papersize.Classify(q.WidthCm, q.HeightCm)
	if err != nil {
		return papersize.SizeNone, err
	}
	if size == papersize.SizeNone {
		return size, nil
	}
	if _, declared := q.Attributes[ruledomain.AttrPaperSize]; !declared {
		attrs := make(map[string]string, len(q.Attributes)+1)
		for k, v := range q.Attributes {
			attrs[k] = v
		}
		attrs[ruledomain.AttrPaperSize] = string(size)
		q.Attributes = attrs
	}
	return size, nil
}

func (s *Service) activeRules(ctx context.Context, calcType ruledomain.CalculationType) ([]ruledomain.PricingRule, error) {
	if rules, ok := s.cache.Lookup(ctx, calcType); ok {
		return rules, nil
	}
	rules, err := s.repo.ListActive(ctx, s.db, calcType)
	if err != nil {
		return nil, err
	}
	s.cache.Store(ctx, calcType, rules)
	return rules, nil
}
