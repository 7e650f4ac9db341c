package domain

import "context"

type Service interface {
	// Quote runs the full flow: classify dimensions, match a rule, and
	// calculate the total. A missing rule is reported in the result,
	// not as an error.
	Quote(ctx context.Context, q PriceQuery) (*PriceResult, error)
	// Match selects the best rule for the query without pricing it.
	// A nil result means no active rule of the calculation type exists.
	Match(ctx context.Context, q PriceQuery) (*MatchResult, error)
}
