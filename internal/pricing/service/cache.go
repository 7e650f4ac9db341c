package service

import (
	"context"
	"encoding/json"
	"time"

	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const ruleCacheKeyPrefix = "pricing:rules:"

// ruleCacheTTL bounds how long a repriced rule set can keep serving
// stale prices if invalidation is missed. Concurrent reads observing
// the pre-update price inside this window are an accepted
// weak-consistency outcome.
const ruleCacheTTL = 30 * time.Second

// RuleCache is a read-through cache of active rule sets per
// calculation type. With no redis client configured every method is a
// no-op and the pricing service reads straight from the store.
type RuleCache struct {
	client *redis.Client
	log    *zap.Logger
}

type CacheParams struct {
	fx.In

	Log   *zap.Logger
	Redis *redis.Client `optional:"true"`
}

func NewRuleCache(p CacheParams) *RuleCache {
	return &RuleCache{
		client: p.Redis,
		log:    p.Log.Named("pricing.cache"),
	}
}

func (c *RuleCache) Lookup(ctx context.Context, calcType ruledomain.CalculationType) ([]ruledomain.PricingRule, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, ruleCacheKey(calcType)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("rule cache lookup failed", zap.Error(err))
		}
		return nil, false
	}
	var rules []ruledomain.PricingRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		c.log.Warn("rule cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return rules, true
}

func (c *RuleCache) Store(ctx context.Context, calcType ruledomain.CalculationType, rules []ruledomain.PricingRule) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(rules)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, ruleCacheKey(calcType), raw, ruleCacheTTL).Err(); err != nil {
		c.log.Warn("rule cache store failed", zap.Error(err))
	}
}

// InvalidateRules drops every cached rule set. Called after bulk
// reprice and rule updates commit.
func (c *RuleCache) InvalidateRules(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	keys := []string{
		ruleCacheKey(ruledomain.CalculationTypePiece),
		ruleCacheKey(ruledomain.CalculationTypeArea),
		ruleCacheKey(ruledomain.CalculationTypePage),
	}
	return c.client.Del(ctx, keys...).Err()
}

func ruleCacheKey(calcType ruledomain.CalculationType) string {
	return ruleCacheKeyPrefix + string(calcType)
}
