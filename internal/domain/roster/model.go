package roster

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
)

var (
	ErrUnknownPosition = errors.New("unknown roster position")
	ErrMemberNotFound  = errors.New("roster member not found")
	ErrInvalidSettings = errors.New("invalid roster settings")
)

// Kind separates the two member namespaces of a league roster.
type Kind string

const (
	KindPlayer  Kind = "player"
	KindDefense Kind = "defense"
)

// Member is one player or team defense on a league roster.
// Picked is true when the member is currently started.
type Member struct {
	ID       string
	Name     string
	TeamID   string
	Kind     Kind
	Position position.Position
	Picked   bool
}

func (m Member) IsDefense() bool {
	return m.Kind == KindDefense
}

// Settings stores per-league slot capacities.
type Settings struct {
	QB    int
	RB    int
	WR    int
	TE    int
	K     int
	DEF   int
	Flex  int
	Bench int
	// IR is carried for display only and never allocated.
	IR int
}

func (s Settings) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"qb", s.QB}, {"rb", s.RB}, {"wr", s.WR}, {"te", s.TE}, {"k", s.K},
		{"def", s.DEF}, {"flex", s.Flex}, {"bench", s.Bench}, {"ir", s.IR},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s count must be non-negative, got %d", ErrInvalidSettings, f.name, f.value)
		}
	}
	return nil
}

// League is a point-in-time snapshot of one league roster as returned by the
// backend. Nothing here is cached; every check is recomputed from it.
type League struct {
	ID       string
	Name     string
	Settings *Settings
	Players  []Member
	Defenses []Member
}

// Members returns players followed by defenses, preserving listed order.
func (l League) Members() []Member {
	out := make([]Member, 0, len(l.Players)+len(l.Defenses))
	out = append(out, l.Players...)
	out = append(out, l.Defenses...)
	return out
}

func (l League) FindMember(memberID string, isDefense bool) (Member, error) {
	items := l.Players
	if isDefense {
		items = l.Defenses
	}
	for _, m := range items {
		if m.ID == memberID {
			return m, nil
		}
	}
	return Member{}, fmt.Errorf("%w: league=%s member=%s defense=%t", ErrMemberNotFound, l.ID, memberID, isDefense)
}

// StartedIDs returns the ids of started members in roster order.
func (l League) StartedIDs() []string {
	out := make([]string, 0, len(l.Players)+len(l.Defenses))
	for _, m := range l.Members() {
		if m.Picked {
			out = append(out, m.ID)
		}
	}
	return out
}
