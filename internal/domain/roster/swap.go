package roster

import "github.com/riskibarqy/fantasy-roster/internal/domain/position"

// PlayersToSwapForNewStarter lists the started members the user may bench to
// make room for a new starter at pos.
//
// For FLEX-eligible positions every starter of each over-capacity position is
// offered, not just the overflow count, because any of them could be the one
// holding the shared FLEX slot.
func PlayersToSwapForNewStarter(league League, pos position.Position) []Member {
	if !pos.FlexEligible() {
		return startedAt(league, func(p position.Position) bool { return p == pos })
	}
	if league.Settings == nil {
		return []Member{}
	}

	started := startedByPosition(league)
	overflowing := make(map[position.Position]bool, len(position.FlexEligiblePositions()))
	for _, flexPos := range position.FlexEligiblePositions() {
		extra := max(started[flexPos]-league.Settings.SlotsFor(flexPos.Slot()), 0)
		if extra > 0 {
			overflowing[flexPos] = true
		}
	}

	return startedAt(league, func(p position.Position) bool { return overflowing[p] })
}

// MembersToReplaceForNewMember lists the members that may be dropped when a
// new member at pos has no room on the roster.
func MembersToReplaceForNewMember(league League, pos position.Position) []Member {
	out := make([]Member, 0)
	for _, m := range league.Members() {
		if m.Position == pos {
			out = append(out, m)
		}
	}
	return out
}

func startedAt(league League, match func(position.Position) bool) []Member {
	out := make([]Member, 0)
	for _, m := range league.Members() {
		if m.Picked && match(m.Position) {
			out = append(out, m)
		}
	}
	return out
}
