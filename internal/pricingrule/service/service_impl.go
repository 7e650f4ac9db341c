package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/printhauslabs/printhaus/internal/clock"
	"github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Clock       clock.Clock             `optional:"true"`
	Invalidator domain.CacheInvalidator `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	clock       clock.Clock
	invalidator domain.CacheInvalidator
}

func New(p Params) domain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricingrule.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		clock:       c,
		invalidator: p.Invalidator,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.PricingRule, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, domain.ErrInvalidDisplayName
	}
	if !req.CalculationType.Valid() {
		return nil, domain.ErrInvalidCalculationType
	}
	if req.BasePrice.IsNegative() {
		return nil, domain.ErrNegativeBasePrice
	}

	attrs, err := marshalJSONMap(req.Attributes)
	if err != nil {
		return nil, err
	}
	multipliers, err := marshalJSONMap(req.PriceMultipliers)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	rule := &domain.PricingRule{
		ID:               s.genID.Generate(),
		DisplayName:      name,
		DisplayNameLocal: strings.TrimSpace(req.DisplayNameLocal),
		CalculationType:  req.CalculationType,
		BasePrice:        req.BasePrice,
		UnitLabel:        strings.TrimSpace(req.UnitLabel),
		Attributes:       attrs,
		PriceMultipliers: multipliers,
		IsActive:         true,
		DisplayOrder:     req.DisplayOrder,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.PricingRule, error) {
	ruleID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}
	return rule, nil
}

func (s *Service) List(ctx context.Context, opts domain.ListOptions) ([]domain.PricingRule, error) {
	if opts.CalculationType != nil && !opts.CalculationType.Valid() {
		return nil, domain.ErrInvalidCalculationType
	}
	return s.repo.List(ctx, s.db, opts)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.PricingRule, error) {
	ruleID, err := parseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}

	if req.CalculationType != nil && *req.CalculationType != rule.CalculationType {
		return nil, domain.ErrCalculationTypeImmutable
	}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, domain.ErrInvalidDisplayName
		}
		rule.DisplayName = name
	}
	if req.DisplayNameLocal != nil {
		rule.DisplayNameLocal = strings.TrimSpace(*req.DisplayNameLocal)
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, domain.ErrNegativeBasePrice
		}
		rule.BasePrice = *req.BasePrice
	}
	if req.UnitLabel != nil {
		rule.UnitLabel = strings.TrimSpace(*req.UnitLabel)
	}
	if req.Attributes != nil {
		attrs, err := marshalJSONMap(*req.Attributes)
		if err != nil {
			return nil, err
		}
		rule.Attributes = attrs
	}
	if req.PriceMultipliers != nil {
		multipliers, err := marshalJSONMap(*req.PriceMultipliers)
		if err != nil {
			return nil, err
		}
		rule.PriceMultipliers = multipliers
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		rule.DisplayOrder = *req.DisplayOrder
	}

	rule.UpdatedAt = s.clock.Now(ctx)
	if err := s.repo.Update(ctx, s.db, rule); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return rule, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*domain.PricingRule, error) {
	ruleID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}

	now := s.clock.Now(ctx)
	if err := s.repo.SetActive(ctx, s.db, ruleID, false, now); err != nil {
		return nil, err
	}
	rule.IsActive = false
	rule.UpdatedAt = now
	s.invalidate(ctx)
	return rule, nil
}

// BulkReprice applies a uniform percentage change to the base price of
// every rule the filter selects, in a single transaction. Either all
// matching rules are updated or none are.
func (s *Service) BulkReprice(ctx context.Context, req domain.BulkRepriceRequest) (*domain.BulkRepriceResult, error) {
	if req.Percentage < 0 {
		return nil, domain.ErrInvalidPercentage
	}
	if req.Operation != domain.RepriceIncrease && req.Operation != domain.RepriceDecrease {
		return nil, domain.ErrInvalidOperation
	}
	// A decrease above 100% would drive prices negative.
	if req.Operation == domain.RepriceDecrease && req.Percentage > 100 {
		return nil, domain.ErrInvalidPercentage
	}
	if req.CalculationType != nil && !req.CalculationType.Valid() {
		return nil, domain.ErrInvalidCalculationType
	}

	pct := decimal.NewFromFloat(req.Percentage).Div(decimal.NewFromInt(100))
	multiplier := decimal.NewFromInt(1)
	if req.Operation == domain.RepriceIncrease {
		multiplier = multiplier.Add(pct)
	} else {
		multiplier = multiplier.Sub(pct)
	}

	filter := domain.RepriceFilter{
		CalculationType: req.CalculationType,
		IsActive:        req.IsActive,
	}

	now := s.clock.Now(ctx)
	var updated int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rules, err := s.repo.ListForReprice(ctx, tx, filter)
		if err != nil {
			return err
		}
		for _, rule := range rules {
			newPrice := rule.BasePrice.Mul(multiplier)
			if err := s.repo.UpdatePrice(ctx, tx, rule.ID, newPrice, now); err != nil {
				return err
			}
		}
		updated = int64(len(rules))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("bulk reprice applied",
		zap.String("operation", string(req.Operation)),
		zap.Float64("percentage", req.Percentage),
		zap.Int64("updated_count", updated),
	)

	return &domain.BulkRepriceResult{
		UpdatedCount: updated,
		Multiplier:   multiplier,
	}, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateRules(ctx); err != nil {
		s.log.Warn("rule cache invalidation failed", zap.Error(err))
	}
}

func marshalJSONMap[M ~map[string]string | ~map[string]map[string]float64](m M) (datatypes.JSON, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
