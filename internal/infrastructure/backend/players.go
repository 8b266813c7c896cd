package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-roster/internal/domain/advice"
	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
	"github.com/valyala/fasthttp"
)

// ListPlayersByPosition returns the backend's player pool for pos. DEF
// lists team defenses. Picked is always false: pool entries are not
// roster entries.
func (c *Client) ListPlayersByPosition(ctx context.Context, pos position.Position) ([]roster.Member, error) {
	raw, err := c.do(ctx, request{
		method: fasthttp.MethodGet,
		path:   playersByPosPath + url.PathEscape(pos.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("list players position=%s: %w", pos, err)
	}

	if pos == position.DEF {
		var entries []defenseEntryDTO
		if err := sonic.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("%w: decode defense pool: %v", usecase.ErrDependencyUnavailable, err)
		}
		out := make([]roster.Member, 0, len(entries))
		for _, entry := range entries {
			m := entry.toDomain()
			m.Picked = false
			out = append(out, m)
		}
		return out, nil
	}

	var entries []playerEntryDTO
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode player pool: %v", usecase.ErrDependencyUnavailable, err)
	}
	out := make([]roster.Member, 0, len(entries))
	for _, entry := range entries {
		m := entry.toDomain()
		m.Picked = false
		out = append(out, m)
	}
	return out, nil
}

// ComparePlayers asks for a paid start or sit call between two players at
// pos in the given league.
func (c *Client) ComparePlayers(ctx context.Context, leagueID, targetID, compareID string, pos position.Position) ([]advice.Recommendation, error) {
	query := url.Values{}
	query.Set("leagueId", leagueID)

	path := playerComparisonPath + strings.Join([]string{
		url.PathEscape(targetID),
		url.PathEscape(compareID),
		url.PathEscape(pos.String()),
	}, "/")

	raw, err := c.do(ctx, request{method: fasthttp.MethodGet, path: path, query: query})
	if err != nil {
		return nil, fmt.Errorf("compare players league=%s target=%s compare=%s: %w", leagueID, targetID, compareID, err)
	}

	var out comparisonResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode player comparison: %v", usecase.ErrDependencyUnavailable, err)
	}
	if out.Recommendations == nil {
		return []advice.Recommendation{}, nil
	}
	return out.Recommendations, nil
}
