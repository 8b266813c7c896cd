package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/domain/advice"
	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/user"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"golang.org/x/sync/singleflight"
)

type CompareInput struct {
	LeagueID  string
	TargetID  string
	CompareID string
	Position  string
}

type ComparisonResult struct {
	LeagueID        string
	TargetID        string
	CompareID       string
	Position        position.Position
	Recommendations []advice.Recommendation
}

type AdviceResult struct {
	LeagueID  string
	PlayerIDs []string
	Items     []advice.Item
	Cached    bool
}

// AdviceService serves roster advice, paying for a fresh fetch only when
// the started lineup has no cached answer.
type AdviceService struct {
	leagues    roster.Repository
	provider   AdviceProvider
	principals PrincipalInvalidator
	cache      AdviceCache
	flight     singleflight.Group
	logger     *logging.Logger
}

func NewAdviceService(
	leagues roster.Repository,
	provider AdviceProvider,
	principals PrincipalInvalidator,
	cache AdviceCache,
	logger *logging.Logger,
) *AdviceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdviceService{
		leagues:    leagues,
		provider:   provider,
		principals: principals,
		cache:      cache,
		logger:     logger,
	}
}

func (s *AdviceService) Get(ctx context.Context, principal user.Principal, leagueID string) (AdviceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdviceService.Get")
	defer span.End()

	if strings.TrimSpace(principal.UserID) == "" {
		return AdviceResult{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	league, err := loadLeague(ctx, s.leagues, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return AdviceResult{}, err
	}
	playerIDs := league.StartedIDs()
	result := AdviceResult{LeagueID: league.ID, PlayerIDs: playerIDs}

	items, hit, err := s.cache.Get(ctx, principal.UserID, league.ID, playerIDs)
	if err != nil {
		s.logger.WarnContext(ctx, "advice cache read failed, fetching fresh advice",
			"league_id", league.ID,
			"error", err,
		)
	}
	if hit {
		result.Items = items
		result.Cached = true
		return result, nil
	}

	if !principal.HasAdviceTokens() {
		return AdviceResult{}, fmt.Errorf("%w: user=%s", ErrInsufficientTokens, principal.UserID)
	}

	key := principal.UserID + "|" + league.ID + "|" + strings.Join(playerIDs, ",")
	out, err, _ := s.flight.Do(key, func() (any, error) {
		// Every waiter on key shares this call; it outlives the caller that
		// started it.
		fetchCtx := context.WithoutCancel(ctx)
		fresh, fetchErr := s.provider.FetchAdvice(fetchCtx, league.ID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		s.invalidatePrincipal(fetchCtx)
		if putErr := s.cache.Put(fetchCtx, principal.UserID, league.ID, playerIDs, fresh); putErr != nil {
			s.logger.WarnContext(ctx, "advice cache write failed",
				"league_id", league.ID,
				"error", putErr,
			)
		}
		return fresh, nil
	})
	if err != nil {
		err = fmt.Errorf("fetch advice for league %s: %w", league.ID, err)
		recordSpanError(span, err)
		return AdviceResult{}, err
	}

	result.Items = out.([]advice.Item)
	s.logger.InfoContext(ctx, "fresh advice fetched",
		"league_id", league.ID,
		"starters", len(playerIDs),
		"items", len(result.Items),
	)
	return result, nil
}

// Compare asks for a start or sit call between a rostered target and another
// player at the same position. The answer is paid and never cached.
func (s *AdviceService) Compare(ctx context.Context, principal user.Principal, input CompareInput) (ComparisonResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdviceService.Compare")
	defer span.End()

	if strings.TrimSpace(principal.UserID) == "" {
		return ComparisonResult{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	input.TargetID = strings.TrimSpace(input.TargetID)
	input.CompareID = strings.TrimSpace(input.CompareID)
	if input.TargetID == "" || input.CompareID == "" {
		return ComparisonResult{}, fmt.Errorf("%w: both player ids are required", ErrInvalidInput)
	}
	if input.TargetID == input.CompareID {
		return ComparisonResult{}, fmt.Errorf("%w: cannot compare player %s with itself", ErrInvalidInput, input.TargetID)
	}
	pos, err := parsePosition(input.Position)
	if err != nil {
		return ComparisonResult{}, err
	}

	league, err := loadLeague(ctx, s.leagues, input.LeagueID)
	if err != nil {
		recordSpanError(span, err)
		return ComparisonResult{}, err
	}
	if !principal.HasAdviceTokens() {
		return ComparisonResult{}, fmt.Errorf("%w: user=%s", ErrInsufficientTokens, principal.UserID)
	}

	recs, err := s.provider.ComparePlayers(ctx, league.ID, input.TargetID, input.CompareID, pos)
	if err != nil {
		err = fmt.Errorf("compare players in league %s: %w", league.ID, err)
		recordSpanError(span, err)
		return ComparisonResult{}, err
	}
	s.invalidatePrincipal(ctx)

	s.logger.InfoContext(ctx, "player comparison fetched",
		"league_id", league.ID,
		"target_id", input.TargetID,
		"compare_id", input.CompareID,
		"position", pos.String(),
	)
	return ComparisonResult{
		LeagueID:        league.ID,
		TargetID:        input.TargetID,
		CompareID:       input.CompareID,
		Position:        pos,
		Recommendations: recs,
	}, nil
}

func (s *AdviceService) invalidatePrincipal(ctx context.Context) {
	if s.principals != nil {
		s.principals.InvalidatePrincipal(ctx)
	}
}
