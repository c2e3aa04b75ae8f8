package mahjong_test

import (
	"testing"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

func TestMeldClassification(t *testing.T) {
	cases := []struct {
		meld string
		kind mahjong.EMeldKind
	}{
		{"s1", mahjong.MeldSingle},
		{"fe", mahjong.MeldBonus},
		{"drdr", mahjong.MeldPair},
		{"DrDr", mahjong.MeldPair},
		{"s1b1", mahjong.MeldKnittedPair},
		{"s1s2s3", mahjong.MeldChow},
		{"wewewe", mahjong.MeldPung},
		{"S7S7S7", mahjong.MeldPung},
		{"s5b5c5", mahjong.MeldKnittedTriple},
		{"c9c9c9c9", mahjong.MeldKong},
		{"c9c9c9C9", mahjong.MeldClaimedKong},
		{"c9C9C9c9", mahjong.MeldConcealedKong},
		{"C9C9C9C9", mahjong.MeldConcealedKong},
	}
	for _, tc := range cases {
		m, err := mahjong.ParseMeld(tc.meld)
		if err != nil {
			t.Fatalf("ParseMeld(%q): %v", tc.meld, err)
		}
		if m.Kind() != tc.kind {
			t.Errorf("ParseMeld(%q).Kind() = %v, want %v", tc.meld, m.Kind(), tc.kind)
		}
	}
}

func TestMeldInvalid(t *testing.T) {
	for _, s := range []string{"s1s3", "s1S1", "s1s2s4", "wewews", "s1s1s1s2", "fefe"} {
		if _, err := mahjong.ParseMeld(s); err == nil {
			t.Errorf("ParseMeld(%q): expected error", s)
		}
	}
}

func TestMeldInterning(t *testing.T) {
	a, err := mahjong.ParseMeld("s1s2s3")
	if err != nil {
		t.Fatal(err)
	}
	b, err := mahjong.ParseMeld("s1s2s3")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("equal melds are not interned to the same instance")
	}
}

func TestMeldExposureConversion(t *testing.T) {
	exposed, _ := mahjong.ParseMeld("s1s2s3")
	concealed := exposed.Concealed()
	if !concealed.IsConcealed() {
		t.Fatal("Concealed() meld is not concealed")
	}
	if concealed.Exposed() != exposed {
		t.Error("Exposed(Concealed(m)) should intern back to m")
	}
}

func TestMeldPredicates(t *testing.T) {
	dragonPung, _ := mahjong.ParseMeld("drdrdr")
	if !dragonPung.IsDragonMeld() || !dragonPung.IsMajor() || dragonPung.IsConcealed() {
		t.Error("dragon pung predicates wrong")
	}
	windPair, _ := mahjong.ParseMeld("WeWe")
	if !windPair.IsWindMeld() || !windPair.IsConcealed() {
		t.Error("wind pair predicates wrong")
	}
	claimed, _ := mahjong.ParseMeld("b2b2b2B2")
	if !claimed.IsKong() || claimed.IsConcealed() {
		t.Error("claimed kong predicates wrong")
	}
}

func TestShortcutMelds(t *testing.T) {
	s5, _ := mahjong.ParseTile("s5")
	if got := mahjong.PungMeld(s5).String(); got != "s5s5s5" {
		t.Errorf("PungMeld = %q", got)
	}
	if got := mahjong.ChowMeld(s5).String(); got != "s5s6s7" {
		t.Errorf("ChowMeld = %q", got)
	}
	if got := mahjong.Knitted3Meld(s5).String(); got != "s5b5c5" {
		t.Errorf("Knitted3Meld = %q", got)
	}
	s9, _ := mahjong.ParseTile("s9")
	if mahjong.ChowMeld(s9) != nil {
		t.Error("ChowMeld(s9) should be nil")
	}
}
