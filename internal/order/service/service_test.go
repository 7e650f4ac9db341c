package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/printhauslabs/printhaus/internal/clock"
	orderdomain "github.com/printhauslabs/printhaus/internal/order/domain"
	orderrepo "github.com/printhauslabs/printhaus/internal/order/repository"
	pricingsvc "github.com/printhauslabs/printhaus/internal/pricing/service"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	rulerepo "github.com/printhauslabs/printhaus/internal/pricingrule/repository"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (orderdomain.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ruledomain.PricingRule{}, &orderdomain.OrderLine{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	pricing := pricingsvc.New(pricingsvc.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: rulerepo.Provide(),
	})

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       orderrepo.Provide(),
		PricingSvc: pricing,
		Clock:      clock.Fixed{At: testNow},
	})
	return svc, db
}

func seedPageRule(t *testing.T, db *gorm.DB, name, basePrice string, attrs map[string]string) {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	rule := ruledomain.PricingRule{
		ID:              node.Generate(),
		DisplayName:     name,
		CalculationType: ruledomain.CalculationTypePage,
		BasePrice:       decimal.RequireFromString(basePrice),
		IsActive:        true,
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}
	if len(attrs) > 0 {
		raw, err := json.Marshal(attrs)
		require.NoError(t, err)
		rule.Attributes = raw
	}
	require.NoError(t, db.Create(&rule).Error)
}

func TestCreatePersistsPricedLine(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedPageRule(t, db, "BW Copy", "300", map[string]string{
		ruledomain.AttrColorMode: ruledomain.ColorModeBW,
	})

	line, err := svc.Create(ctx, orderdomain.CreateRequest{
		Description:     "Handout copies",
		CalculationType: ruledomain.CalculationTypePage,
		Quantity:        20,
		Attributes: map[string]string{
			ruledomain.AttrColorMode: ruledomain.ColorModeBW,
			ruledomain.AttrSides:     ruledomain.SidesDouble,
		},
	})
	require.NoError(t, err)
	require.Equal(t, orderdomain.StatusPriced, line.Status)
	require.NotEmpty(t, line.OrderNumber)
	require.NotNil(t, line.RuleID)
	require.Equal(t, "BW Copy", line.RuleName)
	require.True(t, line.UnitPrice.Equal(decimal.RequireFromString("600")))
	require.True(t, line.Total.Equal(decimal.RequireFromString("12000")))

	got, err := svc.Get(ctx, line.ID.String())
	require.NoError(t, err)
	require.Equal(t, line.OrderNumber, got.OrderNumber)
	require.True(t, got.Total.Equal(decimal.RequireFromString("12000")))
}

func TestCreateNoMatchStoresPendingLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	line, err := svc.Create(ctx, orderdomain.CreateRequest{
		CalculationType: ruledomain.CalculationTypeArea,
		Quantity:        1,
		WidthCm:         200,
		HeightCm:        100,
	})
	require.NoError(t, err)
	require.Equal(t, orderdomain.StatusPendingPricing, line.Status)
	require.Nil(t, line.RuleID)
	require.True(t, line.Total.IsZero())
	require.NotEmpty(t, line.PricingNote)
}

func TestCreateValidationFailurePersistsNothing(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, orderdomain.CreateRequest{
		CalculationType: "weight",
		Quantity:        1,
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&orderdomain.OrderLine{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGetErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-number")
	require.ErrorIs(t, err, orderdomain.ErrInvalidID)

	_, err = svc.Get(ctx, "987654321")
	require.ErrorIs(t, err, orderdomain.ErrLineNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, orderdomain.CreateRequest{
		CalculationType: ruledomain.CalculationTypePiece,
		Quantity:        1,
	})
	require.NoError(t, err)

	pending := orderdomain.StatusPendingPricing
	lines, err := svc.List(ctx, orderdomain.ListOptions{Status: &pending})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	priced := orderdomain.StatusPriced
	lines, err = svc.List(ctx, orderdomain.ListOptions{Status: &priced})
	require.NoError(t, err)
	require.Empty(t, lines)
}
