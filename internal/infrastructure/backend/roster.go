package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/user"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
	"github.com/valyala/fasthttp"
)

// VerifyAccessToken resolves a bearer token to the caller. Lookups are cached
// per token hash for a short TTL so one request does not cost two backend calls.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: empty access token", usecase.ErrUnauthorized)
	}

	return c.principals.GetOrLoad(ctx, hashToken(token), func(ctx context.Context) (user.Principal, error) {
		data, err := c.fetchUserData(user.WithAccessToken(ctx, token))
		if err != nil {
			return user.Principal{}, err
		}
		principal := data.UserInfo.toDomain()
		if principal.UserID == "" {
			return user.Principal{}, fmt.Errorf("%w: backend returned no user id", usecase.ErrUnauthorized)
		}
		return principal, nil
	})
}

// InvalidatePrincipal drops the cached principal of the caller in ctx so the
// next verification reads a fresh token balance.
func (c *Client) InvalidatePrincipal(ctx context.Context) {
	token, ok := user.AccessTokenFromContext(ctx)
	if !ok {
		return
	}
	c.principals.Delete(ctx, hashToken(strings.TrimSpace(token)))
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (roster.League, bool, error) {
	data, err := c.fetchUserData(ctx)
	if err != nil {
		return roster.League{}, false, err
	}
	for _, item := range data.Leagues {
		if item.LeagueID == leagueID {
			return item.toDomain(), true, nil
		}
	}
	return roster.League{}, false, nil
}

func (c *Client) ListLeagues(ctx context.Context) ([]roster.League, error) {
	data, err := c.fetchUserData(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]roster.League, 0, len(data.Leagues))
	for _, item := range data.Leagues {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) AddMember(ctx context.Context, update roster.MemberUpdate) error {
	return c.mutate(ctx, fasthttp.MethodPost, update)
}

func (c *Client) SetPicked(ctx context.Context, update roster.MemberUpdate) error {
	if update.Picked == nil {
		return fmt.Errorf("%w: picked flag is required", usecase.ErrInvalidInput)
	}
	return c.mutate(ctx, fasthttp.MethodPut, update)
}

func (c *Client) RemoveMember(ctx context.Context, update roster.MemberUpdate) error {
	return c.mutate(ctx, fasthttp.MethodDelete, update)
}

func (c *Client) mutate(ctx context.Context, method string, update roster.MemberUpdate) error {
	body, err := sonic.Marshal(mutationFromUpdate(update))
	if err != nil {
		return crerr.Wrap(err, "encode roster member mutation")
	}
	if _, err := c.do(ctx, request{method: method, path: rosterMemberPath, body: body}); err != nil {
		return fmt.Errorf("roster member %s league=%s member=%s: %w", strings.ToLower(method), update.LeagueID, update.MemberID, err)
	}
	return nil
}

func (c *Client) fetchUserData(ctx context.Context) (userDataResponse, error) {
	raw, err := c.do(ctx, request{method: fasthttp.MethodGet, path: userDataPath})
	if err != nil {
		return userDataResponse{}, err
	}

	var out userDataResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return userDataResponse{}, fmt.Errorf("%w: decode user data: %v", usecase.ErrDependencyUnavailable, err)
	}
	return out, nil
}
