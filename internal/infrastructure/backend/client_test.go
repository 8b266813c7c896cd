package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/user"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

const userDataFixture = `{
  "userInfo": {"id": "u1", "email": "a@b.c", "tokens_left": 3, "fullname": "Ann Lee"},
  "leagues": [{
    "leagueId": "L1",
    "leagueName": "Sunday Crew",
    "rosterSettings": {"id": "s1", "qb_count": 1, "rb_count": 2, "wr_count": 2, "te_count": 1,
      "k_count": 1, "def_count": 1, "flex_count": 1, "bench_count": 5, "ir_count": 1},
    "players": [
      {"player": {"id": "p1", "name": "Runner", "position": "rb", "team_id": "t9"}, "picked": true},
      {"player": {"id": "p2", "name": "Mystery", "position": "LS"}, "picked": false}
    ],
    "defenses": [{"team": {"id": "d1", "name": "Bears"}, "picked": true}]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL:           server.URL + "/",
		Timeout:           2 * time.Second,
		PrincipalCacheTTL: time.Minute,
		Logger:            logging.NewNop(),
		CircuitBreaker:    breaker,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func authedContext(t *testing.T) context.Context {
	return user.WithAccessToken(t.Context(), "secret-token")
}

func TestClientGetLeagueMapsPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != userDataPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("unexpected authorization header %q", got)
		}
		_, _ = io.WriteString(w, userDataFixture)
	}, resilience.CircuitBreakerConfig{})

	league, found, err := client.GetLeague(authedContext(t), "L1")
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if !found {
		t.Fatalf("expected league to be found")
	}
	if league.Name != "Sunday Crew" || league.Settings == nil {
		t.Fatalf("unexpected league: %+v", league)
	}
	if league.Settings.RB != 2 || league.Settings.Flex != 1 || league.Settings.Bench != 5 || league.Settings.IR != 1 {
		t.Fatalf("unexpected settings: %+v", *league.Settings)
	}
	if len(league.Players) != 2 || len(league.Defenses) != 1 {
		t.Fatalf("unexpected members: %+v", league)
	}
	if league.Players[0].Position != position.RB || league.Players[0].TeamID != "t9" || !league.Players[0].Picked {
		t.Fatalf("unexpected first player: %+v", league.Players[0])
	}
	if league.Players[1].Position != position.Position("LS") {
		t.Fatalf("expected unknown position to be kept, got %q", league.Players[1].Position)
	}
	def := league.Defenses[0]
	if def.Kind != roster.KindDefense || def.Position != position.DEF || def.ID != "d1" {
		t.Fatalf("unexpected defense: %+v", def)
	}

	_, found, err = client.GetLeague(authedContext(t), "missing")
	if err != nil {
		t.Fatalf("get missing league: %v", err)
	}
	if found {
		t.Fatalf("expected missing league to be reported as not found")
	}
}

func TestClientRequiresAccessToken(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, resilience.CircuitBreakerConfig{})

	_, err := client.ListLeagues(t.Context())
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no backend call without a token")
	}
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: usecase.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: usecase.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, want: usecase.ErrNotFound},
		{name: "payment required", status: http.StatusPaymentRequired, want: usecase.ErrInsufficientTokens},
		{name: "server error", status: http.StatusBadGateway, want: usecase.ErrDependencyUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, want: usecase.ErrDependencyUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}, resilience.CircuitBreakerConfig{})

			_, err := client.ListLeagues(authedContext(t))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClientCircuitBreakerOpensOnTransientFailures(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	ctx := authedContext(t)
	for i := 0; i < 2; i++ {
		if _, err := client.ListLeagues(ctx); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if client.BreakerState() != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", client.BreakerState())
	}

	_, err := client.ListLeagues(ctx)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected open breaker to short-circuit, backend hits=%d", hits.Load())
	}
}

func TestClientUnauthorizedDoesNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		if _, err := client.ListLeagues(authedContext(t)); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if client.BreakerState() != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", client.BreakerState())
	}
}

func TestClientMemberMutations(t *testing.T) {
	type captured struct {
		method string
		body   memberMutationRequest
	}
	calls := make(chan captured, 3)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != rosterMemberPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body memberMutationRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		calls <- captured{method: r.Method, body: body}
		w.WriteHeader(http.StatusNoContent)
	}, resilience.CircuitBreakerConfig{})

	ctx := authedContext(t)
	picked := false
	if err := client.AddMember(ctx, roster.MemberUpdate{LeagueID: "L1", MemberID: "p1"}); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := client.SetPicked(ctx, roster.MemberUpdate{LeagueID: "L1", MemberID: "d1", IsDefense: true, Picked: &picked}); err != nil {
		t.Fatalf("set picked: %v", err)
	}
	if err := client.RemoveMember(ctx, roster.MemberUpdate{LeagueID: "L1", MemberID: "p2"}); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	add := <-calls
	if add.method != http.MethodPost || add.body.MemberID != "p1" || add.body.Picked != nil {
		t.Fatalf("unexpected add call: %+v", add)
	}
	set := <-calls
	if set.method != http.MethodPut || !set.body.IsDefense || set.body.Picked == nil || *set.body.Picked {
		t.Fatalf("unexpected set-picked call: %+v", set)
	}
	remove := <-calls
	if remove.method != http.MethodDelete || remove.body.MemberID != "p2" {
		t.Fatalf("unexpected remove call: %+v", remove)
	}
}

func TestClientSetPickedRequiresFlag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call")
	}, resilience.CircuitBreakerConfig{})

	err := client.SetPicked(authedContext(t), roster.MemberUpdate{LeagueID: "L1", MemberID: "p1"})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClientVerifyAccessTokenIsCached(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, userDataFixture)
	}, resilience.CircuitBreakerConfig{})

	for i := 0; i < 3; i++ {
		principal, err := client.VerifyAccessToken(t.Context(), "secret-token")
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if principal.UserID != "u1" || principal.TokensLeft != 3 || principal.FullName != "Ann Lee" {
			t.Fatalf("unexpected principal: %+v", principal)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one backend call, got %d", hits.Load())
	}

	if _, err := client.VerifyAccessToken(t.Context(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for blank token, got %v", err)
	}
}

func TestClientFetchAdvice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != rosterPredictionPath || r.URL.Query().Get("leagueId") != "L1" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = io.WriteString(w, `{"advice":[{"playerId":"p1","tip":"start"}]}`)
	}, resilience.CircuitBreakerConfig{})

	items, err := client.FetchAdvice(authedContext(t), "L1")
	if err != nil {
		t.Fatalf("fetch advice: %v", err)
	}
	if len(items) != 1 || !strings.Contains(string(items[0]), `"tip":"start"`) {
		t.Fatalf("unexpected advice: %s", items)
	}
}

func TestClientInvalidatePrincipalAfterSpendingToken(t *testing.T) {
	var userDataHits atomic.Int32
	var tokensLeft atomic.Int32
	tokensLeft.Store(1)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case userDataPath:
			userDataHits.Add(1)
			_, _ = fmt.Fprintf(w, `{"userInfo":{"id":"u1","email":"a@b.c","tokens_left":%d},"leagues":[]}`, tokensLeft.Load())
		case rosterPredictionPath:
			tokensLeft.Add(-1)
			_, _ = io.WriteString(w, `{"advice":[]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, resilience.CircuitBreakerConfig{})

	ctx := authedContext(t)
	before, err := client.VerifyAccessToken(ctx, "secret-token")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if !before.HasAdviceTokens() {
		t.Fatalf("expected a token before fetching advice: %+v", before)
	}
	if _, err := client.FetchAdvice(ctx, "L1"); err != nil {
		t.Fatalf("fetch advice: %v", err)
	}

	stale, err := client.VerifyAccessToken(ctx, "secret-token")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if stale.TokensLeft != 1 || userDataHits.Load() != 1 {
		t.Fatalf("expected cached principal before invalidation, got %+v after %d calls", stale, userDataHits.Load())
	}

	client.InvalidatePrincipal(ctx)
	after, err := client.VerifyAccessToken(ctx, "secret-token")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if after.HasAdviceTokens() {
		t.Fatalf("expected spent token to be visible, got %+v", after)
	}
	if userDataHits.Load() != 2 {
		t.Fatalf("expected a fresh user data call, got %d", userDataHits.Load())
	}

	// Without a token in ctx there is nothing to forget.
	client.InvalidatePrincipal(t.Context())
	if _, err := client.VerifyAccessToken(ctx, "secret-token"); err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if userDataHits.Load() != 2 {
		t.Fatalf("expected principal to stay cached, got %d calls", userDataHits.Load())
	}
}

func TestClientListPlayersByPosition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case playersByPosPath + "RB":
			_, _ = io.WriteString(w, `[
				{"player": {"id": "p7", "name": "Runner", "position": "RB", "team_id": "t1"}, "picked": true},
				{"player": {"id": "p8", "name": "Backup", "position": "RB"}, "picked": false}
			]`)
		case playersByPosPath + "DEF":
			_, _ = io.WriteString(w, `[{"team": {"id": "d4", "name": "Bears"}, "picked": true}]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, resilience.CircuitBreakerConfig{})

	players, err := client.ListPlayersByPosition(authedContext(t), position.RB)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 2 || players[0].ID != "p7" || players[0].TeamID != "t1" || players[0].Kind != roster.KindPlayer {
		t.Fatalf("unexpected players: %+v", players)
	}
	for _, p := range players {
		if p.Picked {
			t.Fatalf("pool player %s should not be picked", p.ID)
		}
	}

	defenses, err := client.ListPlayersByPosition(authedContext(t), position.DEF)
	if err != nil {
		t.Fatalf("list defenses: %v", err)
	}
	if len(defenses) != 1 || !defenses[0].IsDefense() || defenses[0].Picked {
		t.Fatalf("unexpected defenses: %+v", defenses)
	}
}

func TestClientComparePlayers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != playerComparisonPath+"p1/p9/WR" || r.URL.Query().Get("leagueId") != "L1" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = io.WriteString(w, `{"recommendations":[
			{"position":"WR","playerId":"p1","picked":false,"reasoning":"tough matchup"},
			{"position":"WR","playerId":"p9","picked":true,"reasoning":"target share"}
		]}`)
	}, resilience.CircuitBreakerConfig{})

	recs, err := client.ComparePlayers(authedContext(t), "L1", "p1", "p9", position.WR)
	if err != nil {
		t.Fatalf("compare players: %v", err)
	}
	if len(recs) != 2 || recs[1].PlayerID != "p9" || !recs[1].Picked || recs[0].Reasoning != "tough matchup" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestDecodeAdvice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "array", raw: `[{"a":1},{"b":2}]`, want: 2},
		{name: "envelope", raw: `{"advice":[{"a":1}]}`, want: 1},
		{name: "empty body", raw: "  ", want: 0},
		{name: "envelope without advice", raw: `{}`, want: 0},
		{name: "garbage", raw: `[{`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, err := decodeAdvice([]byte(tc.raw))
			if tc.wantErr {
				if !errors.Is(err, usecase.ErrDependencyUnavailable) {
					t.Fatalf("expected decode error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if items == nil || len(items) != tc.want {
				t.Fatalf("expected %d items, got %v", tc.want, items)
			}
		})
	}
}

func TestBuildCurlPreviewMasksToken(t *testing.T) {
	preview := buildCurlPreview("PUT", "http://backend/api/roster-member", []byte(`{"memberId":"it's"}`))

	if strings.Contains(preview, "secret") {
		t.Fatalf("preview leaked token: %s", preview)
	}
	if !strings.Contains(preview, "'Authorization: Bearer ***'") {
		t.Fatalf("expected masked authorization header, got %s", preview)
	}
	if !strings.Contains(preview, `'{"memberId":"it'"'"'s"}'`) {
		t.Fatalf("expected shell-quoted body, got %s", preview)
	}
}

func TestNewClientRejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://host", "http://"} {
		if _, err := NewClient(ClientConfig{BaseURL: raw}); err == nil {
			t.Fatalf("expected error for base url %q", raw)
		}
	}
}
