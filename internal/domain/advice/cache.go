package advice

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
)

// Cache avoids repeat paid advice requests for the same user, league and
// ordered starter list.
type Cache struct {
	mu    sync.Mutex
	store KeyValueStore
	ttl   time.Duration
	now   func() time.Time
}

func NewCache(store KeyValueStore, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get evicts the user's expired records, then returns the advice stored for
// exactly this league and player id order. A miss returns ok=false.
func (c *Cache) Get(ctx context.Context, userID, leagueID string, playerIDs []string) ([]Item, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	valid, removed, err := c.loadValid(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if removed > 0 {
		if err := c.save(ctx, userID, valid); err != nil {
			return nil, false, err
		}
	}

	for _, entry := range valid {
		if entry.UserID == userID && entry.LeagueID == leagueID && slices.Equal(entry.PlayerIDs, playerIDs) {
			return append([]Item(nil), entry.Advice...), true, nil
		}
	}
	return nil, false, nil
}

// Put replaces whatever is cached for the user and league, regardless of
// the player ids it was stored under.
func (c *Cache) Put(ctx context.Context, userID, leagueID string, playerIDs []string, items []Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]CachedAdvice, 0, len(entries)+1)
	for _, entry := range entries {
		if entry.UserID == userID && entry.LeagueID == leagueID {
			continue
		}
		kept = append(kept, entry)
	}
	kept = append(kept, CachedAdvice{
		UserID:    userID,
		LeagueID:  leagueID,
		PlayerIDs: append([]string{}, playerIDs...),
		Advice:    append([]Item{}, items...),
		Timestamp: c.now().UnixMilli(),
	})

	return c.save(ctx, userID, kept)
}

func (c *Cache) loadValid(ctx context.Context, userID string) ([]CachedAdvice, int, error) {
	entries, err := c.load(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	nowMs := c.now().UnixMilli()
	ttlMs := c.ttl.Milliseconds()
	valid := make([]CachedAdvice, 0, len(entries))
	for _, entry := range entries {
		if nowMs-entry.Timestamp <= ttlMs {
			valid = append(valid, entry)
		}
	}
	return valid, len(entries) - len(valid), nil
}

func (c *Cache) load(ctx context.Context, userID string) ([]CachedAdvice, error) {
	raw, ok, err := c.store.Get(ctx, StoreKey(userID))
	if err != nil {
		return nil, fmt.Errorf("read advice cache: %w", err)
	}
	if !ok || len(raw) == 0 {
		return []CachedAdvice{}, nil
	}

	var entries []CachedAdvice
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		// Unreadable payloads are dropped; the next write replaces them.
		return []CachedAdvice{}, nil
	}
	return entries, nil
}

func (c *Cache) save(ctx context.Context, userID string, entries []CachedAdvice) error {
	if entries == nil {
		entries = []CachedAdvice{}
	}
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode advice cache: %w", err)
	}
	if err := c.store.Set(ctx, StoreKey(userID), raw); err != nil {
		return fmt.Errorf("write advice cache: %w", err)
	}
	return nil
}
