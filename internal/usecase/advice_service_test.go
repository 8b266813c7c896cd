package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/domain/advice"
	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/user"
	rostermock "github.com/riskibarqy/fantasy-roster/internal/mocks/domain/roster"
	usecasemock "github.com/riskibarqy/fantasy-roster/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

func adviceLeague() roster.League {
	return roster.League{
		ID:       "l1",
		Settings: &roster.Settings{QB: 1, RB: 2, DEF: 1, Bench: 3},
		Players: []roster.Member{
			testPlayer("qb1", position.QB, true),
			testPlayer("rb1", position.RB, false),
			testPlayer("rb2", position.RB, true),
		},
		Defenses: []roster.Member{testDefense("d1", true)},
	}
}

func TestAdviceService_CacheHitSkipsProviderAndTokenCheck(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	cache := usecasemock.NewAdviceCache(t)
	service := NewAdviceService(repo, provider, nil, cache, nil)

	starters := []string{"qb1", "rb2", "d1"}
	cached := []advice.Item{advice.Item(`{"start":"rb2"}`)}
	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
	cache.On("Get", mock.Anything, "u1", "l1", starters).Return(cached, true, nil).Once()

	got, err := service.Get(context.Background(), user.Principal{UserID: "u1", TokensLeft: 0}, "l1")
	if err != nil {
		t.Fatalf("get advice: %v", err)
	}
	if !got.Cached || len(got.Items) != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
	provider.AssertNotCalled(t, "FetchAdvice", mock.Anything, mock.Anything)
}

func TestAdviceService_MissFetchesAndStores(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	cache := usecasemock.NewAdviceCache(t)
	service := NewAdviceService(repo, provider, nil, cache, nil)

	starters := []string{"qb1", "rb2", "d1"}
	fresh := []advice.Item{advice.Item(`{"sit":"rb1"}`), advice.Item(`{"start":"qb1"}`)}
	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
	cache.On("Get", mock.Anything, "u1", "l1", starters).Return(nil, false, nil).Once()
	provider.On("FetchAdvice", mock.Anything, "l1").Return(fresh, nil).Once()
	cache.On("Put", mock.Anything, "u1", "l1", starters, fresh).Return(nil).Once()

	got, err := service.Get(context.Background(), user.Principal{UserID: "u1", TokensLeft: 3}, "l1")
	if err != nil {
		t.Fatalf("get advice: %v", err)
	}
	if got.Cached || len(got.Items) != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if len(got.PlayerIDs) != 3 || got.PlayerIDs[2] != "d1" {
		t.Fatalf("unexpected player ids: %v", got.PlayerIDs)
	}
}

func TestAdviceService_MissWithoutTokensIsRejected(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	cache := usecasemock.NewAdviceCache(t)
	service := NewAdviceService(repo, provider, nil, cache, nil)

	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
	cache.On("Get", mock.Anything, "u1", "l1", mock.Anything).Return(nil, false, nil).Once()

	_, err := service.Get(context.Background(), user.Principal{UserID: "u1", TokensLeft: 0}, "l1")
	if !errors.Is(err, ErrInsufficientTokens) {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
	provider.AssertNotCalled(t, "FetchAdvice", mock.Anything, mock.Anything)
}

func TestAdviceService_CacheFailuresDoNotBlockAdvice(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	cache := usecasemock.NewAdviceCache(t)
	service := NewAdviceService(repo, provider, nil, cache, nil)

	fresh := []advice.Item{advice.Item(`"ok"`)}
	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
	cache.On("Get", mock.Anything, "u1", "l1", mock.Anything).Return(nil, false, errors.New("db down")).Once()
	provider.On("FetchAdvice", mock.Anything, "l1").Return(fresh, nil).Once()
	cache.On("Put", mock.Anything, "u1", "l1", mock.Anything, fresh).Return(errors.New("db down")).Once()

	got, err := service.Get(context.Background(), user.Principal{UserID: "u1", TokensLeft: 1}, "l1")
	if err != nil {
		t.Fatalf("get advice: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("unexpected items: %v", got.Items)
	}
}

func TestAdviceService_ProviderErrorIsReturned(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	cache := usecasemock.NewAdviceCache(t)
	service := NewAdviceService(repo, provider, nil, cache, nil)

	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
	cache.On("Get", mock.Anything, "u1", "l1", mock.Anything).Return(nil, false, nil).Once()
	provider.On("FetchAdvice", mock.Anything, "l1").Return(nil, ErrDependencyUnavailable).Once()

	_, err := service.Get(context.Background(), user.Principal{UserID: "u1", TokensLeft: 1}, "l1")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdviceService_FreshFetchForgetsPrincipalSoNextMissSeesSpentToken(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	principals := usecasemock.NewPrincipalInvalidator(t)
	cache := usecasemock.NewAdviceCache(t)
	service := NewAdviceService(repo, provider, principals, cache, nil)

	fresh := []advice.Item{advice.Item(`"ok"`)}
	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Twice()
	cache.On("Get", mock.Anything, "u1", "l1", mock.Anything).Return(nil, false, nil).Twice()
	provider.On("FetchAdvice", mock.Anything, "l1").Return(fresh, nil).Once()
	principals.On("InvalidatePrincipal", mock.Anything).Once()
	cache.On("Put", mock.Anything, "u1", "l1", mock.Anything, fresh).Return(nil).Once()

	if _, err := service.Get(context.Background(), user.Principal{UserID: "u1", TokensLeft: 1}, "l1"); err != nil {
		t.Fatalf("first get: %v", err)
	}

	// The verifier reloads the principal after invalidation and sees the
	// balance the backend now reports.
	_, err := service.Get(context.Background(), user.Principal{UserID: "u1", TokensLeft: 0}, "l1")
	if !errors.Is(err, ErrInsufficientTokens) {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
}

func TestAdviceService_FetchOutlivesCancelledCaller(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	cache := usecasemock.NewAdviceCache(t)
	service := NewAdviceService(repo, provider, nil, cache, nil)

	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	fresh := []advice.Item{advice.Item(`"ok"`)}
	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
	cache.On("Get", mock.Anything, "u1", "l1", mock.Anything).Return(nil, false, nil).Once()
	provider.On("FetchAdvice", live, "l1").Return(fresh, nil).Once()
	cache.On("Put", live, "u1", "l1", mock.Anything, fresh).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := service.Get(ctx, user.Principal{UserID: "u1", TokensLeft: 1}, "l1")
	if err != nil {
		t.Fatalf("get advice: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("unexpected items: %v", got.Items)
	}
}

func TestAdviceService_Compare(t *testing.T) {
	t.Parallel()

	recs := []advice.Recommendation{
		{Position: "RB", PlayerID: "rb1", Reasoning: "tough matchup"},
		{Position: "RB", PlayerID: "rb9", Picked: true, Reasoning: "more carries"},
	}

	tests := []struct {
		name    string
		input   CompareInput
		tokens  int
		fetch   bool
		wantErr error
	}{
		{name: "paid comparison", input: CompareInput{LeagueID: "l1", TargetID: "rb1", CompareID: "rb9", Position: "rb"}, tokens: 1, fetch: true},
		{name: "same player", input: CompareInput{LeagueID: "l1", TargetID: "rb1", CompareID: " rb1 ", Position: "RB"}, tokens: 1, wantErr: ErrInvalidInput},
		{name: "missing id", input: CompareInput{LeagueID: "l1", TargetID: "rb1", Position: "RB"}, tokens: 1, wantErr: ErrInvalidInput},
		{name: "bad position", input: CompareInput{LeagueID: "l1", TargetID: "rb1", CompareID: "rb9", Position: "BENCH"}, tokens: 1, wantErr: ErrInvalidInput},
		{name: "no tokens", input: CompareInput{LeagueID: "l1", TargetID: "rb1", CompareID: "rb9", Position: "RB"}, tokens: 0, wantErr: ErrInsufficientTokens},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := rostermock.NewRepository(t)
			provider := usecasemock.NewAdviceProvider(t)
			principals := usecasemock.NewPrincipalInvalidator(t)
			service := NewAdviceService(repo, provider, principals, usecasemock.NewAdviceCache(t), nil)

			if tc.fetch || errors.Is(tc.wantErr, ErrInsufficientTokens) {
				repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
			}
			if tc.fetch {
				provider.On("ComparePlayers", mock.Anything, "l1", "rb1", "rb9", position.RB).Return(recs, nil).Once()
				principals.On("InvalidatePrincipal", mock.Anything).Once()
			}

			got, err := service.Compare(context.Background(), user.Principal{UserID: "u1", TokensLeft: tc.tokens}, tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				provider.AssertNotCalled(t, "ComparePlayers", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			if err != nil {
				t.Fatalf("compare: %v", err)
			}
			if got.Position != position.RB || len(got.Recommendations) != 2 || !got.Recommendations[1].Picked {
				t.Fatalf("unexpected comparison: %+v", got)
			}
		})
	}
}

func TestAdviceService_CompareFailureKeepsPrincipal(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	provider := usecasemock.NewAdviceProvider(t)
	principals := usecasemock.NewPrincipalInvalidator(t)
	service := NewAdviceService(repo, provider, principals, usecasemock.NewAdviceCache(t), nil)

	repo.On("GetLeague", mock.Anything, "l1").Return(adviceLeague(), true, nil).Once()
	provider.On("ComparePlayers", mock.Anything, "l1", "rb1", "rb9", position.RB).Return(nil, ErrDependencyUnavailable).Once()

	_, err := service.Compare(context.Background(), user.Principal{UserID: "u1", TokensLeft: 1}, CompareInput{
		LeagueID: "l1", TargetID: "rb1", CompareID: "rb9", Position: "RB",
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	principals.AssertNotCalled(t, "InvalidatePrincipal", mock.Anything)
}
