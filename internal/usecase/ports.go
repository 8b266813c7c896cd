package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-roster/internal/domain/advice"
	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
)

// AdviceProvider fetches fresh, paid advice for the caller. Both calls spend
// one of the caller's tokens.
type AdviceProvider interface {
	FetchAdvice(ctx context.Context, leagueID string) ([]advice.Item, error)
	ComparePlayers(ctx context.Context, leagueID, targetID, compareID string, pos position.Position) ([]advice.Recommendation, error)
}

// AdviceCache stores advice per user, league and ordered starter ids.
type AdviceCache interface {
	Get(ctx context.Context, userID, leagueID string, playerIDs []string) ([]advice.Item, bool, error)
	Put(ctx context.Context, userID, leagueID string, playerIDs []string, items []advice.Item) error
}

// PrincipalInvalidator forgets the verified principal of the caller in ctx,
// so a spent token shows up on the next request.
type PrincipalInvalidator interface {
	InvalidatePrincipal(ctx context.Context)
}
