package advice

import (
	"context"
	"encoding/json"
	"time"
)

const (
	// CacheKey prefixes the per-user store key holding that user's cached
	// advice records.
	CacheKey = "aiAdviceCache"
	// DefaultTTL is how long a cached advice response stays valid.
	DefaultTTL = 7 * 24 * time.Hour
)

// Item is one advice entry. Its shape belongs to the advice service and is
// passed through untouched.
type Item = json.RawMessage

// CachedAdvice is one stored advice response. Timestamp is unix milliseconds.
type CachedAdvice struct {
	UserID    string   `json:"userId"`
	LeagueID  string   `json:"leagueId"`
	PlayerIDs []string `json:"playerIds"`
	Advice    []Item   `json:"advice"`
	Timestamp int64    `json:"timestamp"`
}

// KeyValueStore persists raw cache payloads.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Recommendation is the start or sit call for one side of a player
// comparison.
type Recommendation struct {
	Position  string `json:"position"`
	PlayerID  string `json:"playerId"`
	Picked    bool   `json:"picked"`
	Reasoning string `json:"reasoning"`
}

// StoreKey is where the records of one user live. Users never share a key,
// so writers for different users cannot overwrite each other.
func StoreKey(userID string) string {
	return CacheKey + ":" + userID
}
