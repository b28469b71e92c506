package quoting

import (
	"context"
	"encoding/hex"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"
)

type TierCache interface {
	GetTier(ctx context.Context, key string) (domain.RiskTier, bool, error)
	SetTier(ctx context.Context, key string, tier domain.RiskTier) error
}

// TierKey identifies a scoring input: the customer's document and a digest
// of the income the tier was computed from. Storage ids are not used since
// they restart with the store while a shared cache does not.
func TierKey(customer domain.Customer) string {
	sum := blake2b.Sum256([]byte(customer.DocumentID + "|" + customer.MonthlyIncome.StringFixed(2)))
	return customer.DocumentID + ":" + hex.EncodeToString(sum[:8])
}

// CachedRiskPolicy memoizes ScoreRisk per scoring input. Cache failures are
// logged and the wrapped policy is consulted instead.
type CachedRiskPolicy struct {
	next  RiskPolicy
	cache TierCache
}

func NewCachedRiskPolicy(next RiskPolicy, cache TierCache) *CachedRiskPolicy {
	return &CachedRiskPolicy{next: next, cache: cache}
}

func (p *CachedRiskPolicy) ScoreRisk(ctx context.Context, customer domain.Customer) (domain.RiskTier, error) {
	cacheable := customer.DocumentID != ""
	key := TierKey(customer)

	if cacheable {
		tier, ok, err := p.cache.GetTier(ctx, key)
		if err != nil {
			logger.Warn("risk tier cache read failed", err, logger.Fields{
				"customerId": customer.ID,
			})
		} else if ok {
			return tier, nil
		}
	}

	tier, err := p.next.ScoreRisk(ctx, customer)
	if err != nil {
		return 0, err
	}

	if cacheable {
		if err := p.cache.SetTier(ctx, key, tier); err != nil {
			logger.Warn("risk tier cache write failed", err, logger.Fields{
				"customerId": customer.ID,
			})
		}
	}

	return tier, nil
}

func (p *CachedRiskPolicy) BaseRate(tier domain.RiskTier, termYears int) decimal.Decimal {
	return p.next.BaseRate(tier, termYears)
}
