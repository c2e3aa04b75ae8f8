package mahjong_test

import (
	"slices"
	"testing"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

func TestParseTileRoundTrip(t *testing.T) {
	for _, s := range []string{"s1", "s9", "b5", "c7", "we", "wn", "db", "dr", "fe", "ys", "S1", "We", "Dr", "C4"} {
		tile, err := mahjong.ParseTile(s)
		if err != nil {
			t.Fatalf("ParseTile(%q): %v", s, err)
		}
		if got := tile.String(); got != s {
			t.Errorf("ParseTile(%q).String() = %q", s, got)
		}
	}
	for _, s := range []string{"", "s", "s0", "sx", "k1", "s11"} {
		if _, err := mahjong.ParseTile(s); err == nil {
			t.Errorf("ParseTile(%q): expected error", s)
		}
	}
}

func TestTileExposure(t *testing.T) {
	exposed, _ := mahjong.ParseTile("s1")
	concealed, _ := mahjong.ParseTile("S1")
	if exposed.IsConcealed() || !concealed.IsConcealed() {
		t.Fatal("exposure flags wrong")
	}
	if exposed.Concealed() != concealed {
		t.Error("Concealed() does not yield the concealed form")
	}
	if concealed.Exposed() != exposed {
		t.Error("Exposed() does not yield the exposed form")
	}
	if concealed.Concealed() != concealed {
		t.Error("Concealed() is not idempotent")
	}
	if exposed.Key() != concealed.Key() {
		t.Error("Key() should ignore exposure")
	}
}

func TestTileOrdering(t *testing.T) {
	tiles, err := mahjong.ParseTiles("drwec1b1s1")
	if err != nil {
		t.Fatal(err)
	}
	sorted := tiles.Sorted()
	if got, want := sorted.String(), "s1b1c1wedr"; got != want {
		t.Errorf("sorted = %q, want %q", got, want)
	}
}

func TestTilePredicates(t *testing.T) {
	cases := []struct {
		tile     string
		terminal bool
		major    bool
		honor    bool
		bonus    bool
	}{
		{"s1", true, true, false, false},
		{"s2", false, false, false, false},
		{"b9", true, true, false, false},
		{"c5", false, false, false, false},
		{"we", false, true, true, false},
		{"dr", false, true, true, false},
		{"fe", false, false, false, true},
		{"yn", false, false, false, true},
	}
	for _, tc := range cases {
		tile, err := mahjong.ParseTile(tc.tile)
		if err != nil {
			t.Fatal(err)
		}
		if tile.IsTerminal() != tc.terminal {
			t.Errorf("%s: IsTerminal() = %v", tc.tile, tile.IsTerminal())
		}
		if tile.IsMajor() != tc.major {
			t.Errorf("%s: IsMajor() = %v", tc.tile, tile.IsMajor())
		}
		if tile.IsHonor() != tc.honor {
			t.Errorf("%s: IsHonor() = %v", tc.tile, tile.IsHonor())
		}
		if tile.IsBonus() != tc.bonus {
			t.Errorf("%s: IsBonus() = %v", tc.tile, tile.IsBonus())
		}
	}
}

func TestTileNeighbors(t *testing.T) {
	s8, _ := mahjong.ParseTile("s8")
	if got := s8.NextForChow(); got.String() != "s9" {
		t.Errorf("s8.NextForChow() = %v", got)
	}
	s9, _ := mahjong.ParseTile("s9")
	if got := s9.NextForChow(); got != mahjong.TileNull {
		t.Errorf("s9.NextForChow() = %v, want null", got)
	}
	if got := s9.Next(); got.String() != "s1" {
		t.Errorf("s9.Next() = %v, want wraparound", got)
	}
	if got := mahjong.TileWindEast.Next(); got != mahjong.TileWindSouth {
		t.Errorf("east.Next() = %v", got)
	}
	we, _ := mahjong.ParseTile("we")
	if got := we.NextForChow(); got != mahjong.TileNull {
		t.Errorf("we.NextForChow() = %v, want null", got)
	}
}

func TestTileListOps(t *testing.T) {
	tiles, _ := mahjong.ParseTiles("s1s1s2drdr")
	s1, _ := mahjong.ParseTile("s1")
	if got := tiles.Count(s1); got != 2 {
		t.Errorf("Count(s1) = %d", got)
	}
	if got := tiles.Removed(s1); got.Count(s1) != 1 || len(got) != 4 {
		t.Errorf("Removed(s1) = %v", got)
	}
	// Removed 不改动原集合
	if len(tiles) != 5 {
		t.Error("Removed mutated the receiver")
	}
	concealed := tiles.Concealed()
	for _, tile := range concealed {
		if !tile.IsConcealed() {
			t.Fatalf("Concealed() left %v exposed", tile)
		}
	}
	if !slices.Equal(concealed.Exposed(), tiles) {
		t.Error("Exposed(Concealed(tl)) != tl")
	}
}

func TestAllTiles(t *testing.T) {
	if got := len(mahjong.AllTiles()); got != 34 {
		t.Errorf("AllTiles() = %d identities, want 34", got)
	}
	if got := len(mahjong.AllBonusTiles()); got != 8 {
		t.Errorf("AllBonusTiles() = %d, want 8", got)
	}
}
