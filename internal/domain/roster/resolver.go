package roster

import "github.com/riskibarqy/fantasy-roster/internal/domain/position"

// UnknownCapacity means no capacity information exists for a slot string.
// It is never a real slot count.
const UnknownCapacity = -1

// SlotsFor returns the configured capacity of slot.
func (s Settings) SlotsFor(slot position.Slot) int {
	switch slot {
	case position.SlotQB:
		return s.QB
	case position.SlotRB:
		return s.RB
	case position.SlotWR:
		return s.WR
	case position.SlotTE:
		return s.TE
	case position.SlotK:
		return s.K
	case position.SlotDEF:
		return s.DEF
	case position.SlotFlex:
		return s.Flex
	case position.SlotBench:
		return s.Bench
	default:
		return UnknownCapacity
	}
}

// SlotsForRaw resolves a raw slot string coming from an external payload.
// Missing settings or unrecognized strings yield UnknownCapacity.
func SlotsForRaw(settings *Settings, raw string) int {
	if settings == nil {
		return UnknownCapacity
	}
	slot, ok := position.ParseSlot(raw)
	if !ok {
		return UnknownCapacity
	}
	return settings.SlotsFor(slot)
}
