package roster

import "sort"

// SortForDisplay orders members by position, then starters before bench.
// The input slice is not modified.
func SortForDisplay(members []Member) []Member {
	out := append([]Member(nil), members...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Position.Rank(), out[j].Position.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].Picked && !out[j].Picked
	})
	return out
}
