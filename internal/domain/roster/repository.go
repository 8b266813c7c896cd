package roster

import (
	"context"

	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
)

// Repository reads league rosters from the source of truth. Implementations
// resolve the acting user from ctx.
type Repository interface {
	GetLeague(ctx context.Context, leagueID string) (League, bool, error)
	ListLeagues(ctx context.Context) ([]League, error)
}

// MemberUpdate is the payload of a single roster-member mutation.
type MemberUpdate struct {
	LeagueID  string
	MemberID  string
	IsDefense bool
	Picked    *bool
}

// Updater mutates roster members. Each call is independent; there is no
// transaction spanning two calls.
type Updater interface {
	AddMember(ctx context.Context, update MemberUpdate) error
	SetPicked(ctx context.Context, update MemberUpdate) error
	RemoveMember(ctx context.Context, update MemberUpdate) error
}

// PlayerPool lists every player the backend offers at a position, rostered
// or not.
type PlayerPool interface {
	ListPlayersByPosition(ctx context.Context, pos position.Position) ([]Member, error)
}
