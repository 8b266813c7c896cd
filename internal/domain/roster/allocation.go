package roster

import "github.com/riskibarqy/fantasy-roster/internal/domain/position"

// Occupancy is the result of replaying the greedy slot allocation over a
// whole roster.
type Occupancy struct {
	PerPosition    map[position.Position]int
	UsedFlex       int
	UsedBench      int
	BenchRemaining int
}

// Simulate allocates every member, started or benched, in listed order:
// dedicated slot first, then FLEX for eligible positions, then bench.
// Defenses never take FLEX.
func Simulate(league League) Occupancy {
	occ := Occupancy{PerPosition: make(map[position.Position]int, len(position.Order()))}
	for _, pos := range position.Order() {
		occ.PerPosition[pos] = 0
	}
	if league.Settings == nil {
		return occ
	}
	settings := *league.Settings

	for _, m := range league.Players {
		pos := m.Position
		// Unknown positions resolve to UnknownCapacity and fall through to bench.
		if occ.PerPosition[pos] < settings.SlotsFor(pos.Slot()) {
			occ.PerPosition[pos]++
		} else if pos.FlexEligible() && occ.UsedFlex < settings.Flex {
			occ.UsedFlex++
		} else {
			occ.UsedBench++
		}
	}

	for range league.Defenses {
		if occ.PerPosition[position.DEF] < settings.DEF {
			occ.PerPosition[position.DEF]++
		} else {
			occ.UsedBench++
		}
	}

	occ.BenchRemaining = max(settings.Bench-occ.UsedBench, 0)
	return occ
}
