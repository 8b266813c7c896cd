package position

import "strings"

// Position is a roster position a player or defense is listed at.
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DEF Position = "DEF"
)

// Slot keys one capacity field of a league's roster settings. Every Position
// is also a Slot; FLEX and BENCH exist only as slots.
type Slot string

const (
	SlotQB    Slot = Slot(QB)
	SlotRB    Slot = Slot(RB)
	SlotWR    Slot = Slot(WR)
	SlotTE    Slot = Slot(TE)
	SlotK     Slot = Slot(K)
	SlotDEF   Slot = Slot(DEF)
	SlotFlex  Slot = "FLEX"
	SlotBench Slot = "BENCH"
)

var order = []Position{QB, RB, WR, TE, K, DEF}

var flexEligible = []Position{RB, WR, TE}

var allSlots = []Slot{SlotQB, SlotRB, SlotWR, SlotTE, SlotK, SlotDEF, SlotFlex, SlotBench}

// Order returns positions in display order.
func Order() []Position {
	return append([]Position(nil), order...)
}

// FlexEligiblePositions returns the positions that may occupy a FLEX slot.
func FlexEligiblePositions() []Position {
	return append([]Position(nil), flexEligible...)
}

func (p Position) Valid() bool {
	for _, candidate := range order {
		if p == candidate {
			return true
		}
	}
	return false
}

func (p Position) FlexEligible() bool {
	for _, candidate := range flexEligible {
		if p == candidate {
			return true
		}
	}
	return false
}

// Rank is the index of p in display order, or len(Order()) when unknown.
func (p Position) Rank() int {
	for i, candidate := range order {
		if p == candidate {
			return i
		}
	}
	return len(order)
}

func (p Position) Slot() Slot {
	return Slot(p)
}

func (p Position) String() string {
	return string(p)
}

func (s Slot) Valid() bool {
	for _, candidate := range allSlots {
		if s == candidate {
			return true
		}
	}
	return false
}

func (s Slot) String() string {
	return string(s)
}

// Parse converts a raw position string from an external payload.
func Parse(raw string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}

// ParseSlot converts a raw slot string, accepting positions, FLEX and BENCH.
func ParseSlot(raw string) (Slot, bool) {
	s := Slot(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", false
	}
	return s, true
}
