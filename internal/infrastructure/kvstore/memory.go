package kvstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/coocood/freecache"
)

const (
	minMemoryBytes = 512 * 1024
	// freecache refuses key+value pairs above 1/1024 of its capacity minus
	// its own 24 byte entry header.
	freecacheEntryHeader = 24
	chunkSuffixBudget    = 11
	headerSize           = 8
)

// MemoryStore keeps advice payloads in a fixed-size freecache arena. Values
// larger than one freecache entry are split into numbered chunks under a
// small header record. Every write restarts the key's ttl; a zero ttl never
// expires.
type MemoryStore struct {
	mu            sync.Mutex
	cache         *freecache.Cache
	maxEntry      int
	expireSeconds int
}

func NewMemoryStore(sizeBytes int, ttl time.Duration) *MemoryStore {
	return newMemoryStore(sizeBytes, ttl, nil)
}

func newMemoryStore(sizeBytes int, ttl time.Duration, timer freecache.Timer) *MemoryStore {
	if sizeBytes < minMemoryBytes {
		sizeBytes = minMemoryBytes
	}
	cache := freecache.NewCache(sizeBytes)
	if timer != nil {
		cache = freecache.NewCacheCustomTimer(sizeBytes, timer)
	}
	expireSeconds := 0
	if ttl > 0 {
		expireSeconds = int(math.Ceil(ttl.Seconds()))
	}
	return &MemoryStore{
		cache:         cache,
		maxEntry:      sizeBytes/1024 - freecacheEntryHeader,
		expireSeconds: expireSeconds,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, total, ok, err := s.readHeader(key)
	if err != nil || !ok {
		return nil, false, err
	}

	out := make([]byte, 0, total)
	for i := range count {
		chunk, err := s.cache.Get(chunkKey(key, i))
		if errors.Is(err, freecache.ErrNotFound) {
			// A chunk was evicted under memory pressure; the value is gone.
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("read chunk %d of %q: %w", i, key, err)
		}
		out = append(out, chunk...)
	}
	if len(out) != total {
		return nil, false, nil
	}
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, _, _, err := s.readHeader(key)
	if err != nil {
		return err
	}

	chunkSize := s.maxEntry - len(key) - chunkSuffixBudget
	if chunkSize <= 0 {
		return fmt.Errorf("key %q is too long for the cache arena", key)
	}

	count := 0
	for offset := 0; offset < len(value) || count == 0; offset += chunkSize {
		end := min(offset+chunkSize, len(value))
		if err := s.cache.Set(chunkKey(key, count), value[offset:end], s.expireSeconds); err != nil {
			return fmt.Errorf("write chunk %d of %q: %w", count, key, err)
		}
		count++
	}
	for i := count; i < previous; i++ {
		s.cache.Del(chunkKey(key, i))
	}

	header := make([]byte, headerSize)
	binary.BigEndian.PutUint32(header[:4], uint32(count))
	binary.BigEndian.PutUint32(header[4:], uint32(len(value)))
	if err := s.cache.Set([]byte(key), header, s.expireSeconds); err != nil {
		return fmt.Errorf("write header of %q: %w", key, err)
	}
	return nil
}

// EntryCount reports raw freecache records, headers and chunks included.
func (s *MemoryStore) EntryCount() int64 {
	return s.cache.EntryCount()
}

func (s *MemoryStore) readHeader(key string) (int, int, bool, error) {
	header, err := s.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("read header of %q: %w", key, err)
	}
	if len(header) != headerSize {
		return 0, 0, false, nil
	}
	return int(binary.BigEndian.Uint32(header[:4])), int(binary.BigEndian.Uint32(header[4:])), true, nil
}

func chunkKey(key string, i int) []byte {
	return []byte(key + "#" + strconv.Itoa(i))
}
