package resilience

import "sync"

// KeyedGate admits at most one holder per key. Callers that lose the race
// are rejected instead of queued.
type KeyedGate struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewKeyedGate() *KeyedGate {
	return &KeyedGate{held: make(map[string]struct{})}
}

// TryAcquire returns a release func and true when the key was free.
func (g *KeyedGate) TryAcquire(key string) (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[key]; busy {
		return nil, false
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, true
}
