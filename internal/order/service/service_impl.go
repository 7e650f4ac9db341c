package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/printhauslabs/printhaus/internal/clock"
	orderdomain "github.com/printhauslabs/printhaus/internal/order/domain"
	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       orderdomain.Repository
	PricingSvc pricingdomain.Service
	Clock      clock.Clock `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       orderdomain.Repository
	pricingSvc pricingdomain.Service
	clock      clock.Clock
}

func New(p Params) orderdomain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("order.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		pricingSvc: p.PricingSvc,
		clock:      c,
	}
}

func (s *Service) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.OrderLine, error) {
	result, err := s.pricingSvc.Quote(ctx, pricingdomain.PriceQuery{
		CalculationType: req.CalculationType,
		Quantity:        req.Quantity,
		WidthCm:         req.WidthCm,
		HeightCm:        req.HeightCm,
		Attributes:      req.Attributes,
		UnitLabel:       req.UnitLabel,
	})
	if err != nil {
		// Validation failures are the caller's to fix; nothing is
		// persisted for them.
		return nil, err
	}

	var attrs datatypes.JSON
	if len(req.Attributes) > 0 {
		raw, err := json.Marshal(req.Attributes)
		if err != nil {
			return nil, err
		}
		attrs = datatypes.JSON(raw)
	}

	status := orderdomain.StatusPriced
	if !result.Matched {
		status = orderdomain.StatusPendingPricing
	}

	var ruleID *snowflake.ID
	if result.RuleID != 0 {
		id := result.RuleID
		ruleID = &id
	}

	now := s.clock.Now(ctx)
	line := &orderdomain.OrderLine{
		ID:              s.genID.Generate(),
		OrderNumber:     uuid.NewString(),
		Description:     strings.TrimSpace(req.Description),
		CalculationType: req.CalculationType,
		Quantity:        req.Quantity,
		WidthCm:         req.WidthCm,
		HeightCm:        req.HeightCm,
		PaperSize:       string(result.PaperSize),
		Attributes:      attrs,
		RuleID:          ruleID,
		RuleName:        result.RuleName,
		UnitPrice:       result.UnitPrice,
		Total:           result.Total,
		Status:          status,
		PricingNote:     result.Reason,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, line); err != nil {
		return nil, err
	}

	if status == orderdomain.StatusPendingPricing {
		s.log.Info("order line stored without a matched rule",
			zap.String("order_number", line.OrderNumber),
			zap.String("reason", result.Reason),
		)
	}

	return line, nil
}

func (s *Service) Get(ctx context.Context, id string) (*orderdomain.OrderLine, error) {
	lineID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, orderdomain.ErrInvalidID
	}
	line, err := s.repo.FindByID(ctx, s.db, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, orderdomain.ErrLineNotFound
	}
	return line, nil
}

func (s *Service) List(ctx context.Context, opts orderdomain.ListOptions) ([]orderdomain.OrderLine, error) {
	return s.repo.List(ctx, s.db, opts)
}
