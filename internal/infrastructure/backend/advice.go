package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-roster/internal/domain/advice"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
	"github.com/valyala/fasthttp"
)

// FetchAdvice requests paid advice for one league. Each successful call
// spends one of the caller's tokens on the backend side.
func (c *Client) FetchAdvice(ctx context.Context, leagueID string) ([]advice.Item, error) {
	query := url.Values{}
	query.Set("leagueId", leagueID)

	raw, err := c.do(ctx, request{method: fasthttp.MethodGet, path: rosterPredictionPath, query: query})
	if err != nil {
		return nil, fmt.Errorf("fetch advice league=%s: %w", leagueID, err)
	}
	return decodeAdvice(raw)
}

// decodeAdvice accepts either a bare JSON array or an object with an
// "advice" array.
func decodeAdvice(raw []byte) ([]advice.Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []advice.Item{}, nil
	}

	if trimmed[0] == '[' {
		var items []advice.Item
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: decode advice list: %v", usecase.ErrDependencyUnavailable, err)
		}
		return nonNil(items), nil
	}

	var envelope adviceEnvelope
	if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode advice payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nonNil(envelope.Advice), nil
}

func nonNil(items []advice.Item) []advice.Item {
	if items == nil {
		return []advice.Item{}
	}
	return items
}
