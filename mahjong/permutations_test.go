package mahjong_test

import (
	"strings"
	"testing"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

func collect(tiles string, maxChows int, t *testing.T) []string {
	t.Helper()
	tl, err := mahjong.ParseTiles(tiles)
	if err != nil {
		t.Fatal(err)
	}
	var res []string
	mahjong.Permutations(tl.Sorted(), maxChows, func(melds mahjong.MeldList) bool {
		res = append(res, melds.String())
		return true
	})
	return res
}

func TestPermutationsCompletePartition(t *testing.T) {
	got := collect("S1S1S1S2S3S4", 4, t)
	want := "S1S1S1 S2S3S4"
	found := false
	for _, p := range got {
		if p == want {
			found = true
		}
	}
	if !found {
		t.Errorf("partitions %v do not include %q", got, want)
	}
}

func TestPermutationsDeduplicate(t *testing.T) {
	got := collect("S5S5S5S5", 4, t)
	seen := make(map[string]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate partition %q", p)
		}
		seen[p] = true
	}
}

func TestPermutationsMaxChows(t *testing.T) {
	for _, p := range collect("S1S2S3S4S5S6", 1, t) {
		chows := 0
		for _, meldStr := range strings.Fields(p) {
			m, err := mahjong.ParseMeld(meldStr)
			if err != nil {
				continue
			}
			if m.IsChow() {
				chows++
			}
		}
		if chows > 1 {
			t.Errorf("partition %q has %d chows, limit is 1", p, chows)
		}
	}
}

func TestPermutationsEarlyStop(t *testing.T) {
	calls := 0
	tl, _ := mahjong.ParseTiles("S1S1S2S2S3S3")
	mahjong.Permutations(tl, 4, func(mahjong.MeldList) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("yield returning false should stop enumeration, got %d calls", calls)
	}
}
