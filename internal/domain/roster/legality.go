package roster

import "github.com/riskibarqy/fantasy-roster/internal/domain/position"

// IsSpaceRemainingForPlayerAtPosition reports whether a brand-new member at
// pos fits anywhere on the roster. Started and benched members both count.
func IsSpaceRemainingForPlayerAtPosition(league League, pos position.Position) bool {
	if league.Settings == nil {
		return false
	}
	settings := *league.Settings
	occ := Simulate(league)

	if occ.PerPosition[pos] < settings.SlotsFor(pos.Slot()) {
		return true
	}
	if pos.FlexEligible() && occ.UsedFlex < settings.Flex {
		return true
	}
	return occ.BenchRemaining > 0
}

// CanPlayerStartAtPosition reports whether one more started member at pos is
// legal given only the members currently started.
//
// FLEX usage is abs(sum(min(cap-started, 0))) over RB/WR/TE. This differs
// from the max(started-cap, 0) form used by PlayersToSwapForNewStarter; both
// yield the same number while no position is started beyond cap+FLEX, and
// the form here must stay as-is because it decides what users may start.
func CanPlayerStartAtPosition(league League, pos position.Position) bool {
	if league.Settings == nil {
		return false
	}
	settings := *league.Settings

	started := startedByPosition(league)
	if started[pos] < settings.SlotsFor(pos.Slot()) {
		return true
	}
	if !pos.FlexEligible() {
		return false
	}

	deficit := 0
	for _, flexPos := range position.FlexEligiblePositions() {
		deficit += min(settings.SlotsFor(flexPos.Slot())-started[flexPos], 0)
	}
	usedFlex := -deficit

	return usedFlex < settings.Flex
}

// CanDefenseStartAtPosition reports whether another defense may start.
// Defenses have no FLEX path.
func CanDefenseStartAtPosition(league League) bool {
	if league.Settings == nil {
		return false
	}

	startedDefenses := 0
	for _, d := range league.Defenses {
		if d.Picked {
			startedDefenses++
		}
	}
	return startedDefenses < league.Settings.DEF
}

// CanStart dispatches to the player or defense check for m.
func CanStart(league League, m Member) bool {
	if m.IsDefense() {
		return CanDefenseStartAtPosition(league)
	}
	return CanPlayerStartAtPosition(league, m.Position)
}

func startedByPosition(league League) map[position.Position]int {
	out := make(map[position.Position]int, len(position.Order()))
	for _, m := range league.Members() {
		if m.Picked {
			out[m.Position]++
		}
	}
	return out
}
