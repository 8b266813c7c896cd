package user

import "context"

// Principal is the authenticated caller as reported by the backend.
type Principal struct {
	UserID     string
	Email      string
	FullName   string
	TokensLeft int
}

// HasAdviceTokens reports whether a paid advice request is allowed.
func (p Principal) HasAdviceTokens() bool {
	return p.TokensLeft > 0
}

type accessTokenKey struct{}

// WithAccessToken stores the caller's bearer token for outbound backend calls.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
