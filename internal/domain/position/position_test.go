package position

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Position
		ok   bool
	}{
		{raw: "QB", want: QB, ok: true},
		{raw: " rb ", want: RB, ok: true},
		{raw: "def", want: DEF, ok: true},
		{raw: "FLEX", ok: false},
		{raw: "BENCH", ok: false},
		{raw: "", ok: false},
		{raw: "LB", ok: false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Parse(%q) = (%q, %t), want (%q, %t)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSlot(t *testing.T) {
	for _, raw := range []string{"QB", "RB", "WR", "TE", "K", "DEF", "flex", "Bench"} {
		if _, ok := ParseSlot(raw); !ok {
			t.Fatalf("expected %q to parse as slot", raw)
		}
	}
	if _, ok := ParseSlot("IR"); ok {
		t.Fatalf("expected IR to be rejected")
	}
}

func TestFlexEligible(t *testing.T) {
	eligible := map[Position]bool{QB: false, RB: true, WR: true, TE: true, K: false, DEF: false}
	for pos, want := range eligible {
		if got := pos.FlexEligible(); got != want {
			t.Fatalf("%s.FlexEligible() = %t, want %t", pos, got, want)
		}
	}
}

func TestRank(t *testing.T) {
	if QB.Rank() >= RB.Rank() || K.Rank() >= DEF.Rank() {
		t.Fatalf("unexpected display order")
	}
	if got := Position("LB").Rank(); got != len(Order()) {
		t.Fatalf("unknown position rank = %d, want %d", got, len(Order()))
	}
}
