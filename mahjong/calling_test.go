package mahjong_test

import (
	"testing"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

func TestWinningTilesStandard(t *testing.T) {
	h, err := mahjong.NewHand(dmjl(t), "RB1B1B1B2B3B4B5B6B7B8B8C5C5 mee")
	if err != nil {
		t.Fatal(err)
	}
	winning := h.WinningTiles()
	if got := winning.Exposed().Sorted().String(); got != "b8c5" {
		t.Errorf("winning tiles = %q, want b8c5", got)
	}
	if !h.IsCalling() {
		t.Error("hand should be calling")
	}

	// 听牌公理：每张听牌加上都和，其余加上都不和
	for _, tile := range mahjong.AllTiles() {
		full, err := h.WithWinningTile(tile)
		if err != nil {
			continue
		}
		if full.Won() != winning.Contains(tile) {
			t.Errorf("WithWinningTile(%v).Won() = %v, in winning set: %v",
				tile, full.Won(), winning.Contains(tile))
		}
	}
}

func TestWinningTilesThirteenOrphans(t *testing.T) {
	h, err := mahjong.NewHand(dmjl(t), "RC1C9B9B1S1S9WeDgWsWnWwDbDr mee")
	if err != nil {
		t.Fatal(err)
	}
	winning := h.WinningTiles()
	if len(winning) != 13 {
		t.Fatalf("thirteen orphans single wait: got %d tiles (%v), want 13", len(winning), winning)
	}
	c1, _ := mahjong.ParseTile("c1")
	c2, _ := mahjong.ParseTile("c2")
	if !winning.Contains(c1) {
		t.Error("c1 should be a winning tile")
	}
	if winning.Contains(c2) {
		t.Error("c2 must not be a winning tile")
	}
}

func TestNotCalling(t *testing.T) {
	h, err := mahjong.NewHand(dmjl(t), "s1s1s1s1 b5b6b7 RB1B1B8C2C2C6C7 mee")
	if err != nil {
		t.Fatal(err)
	}
	if h.IsCalling() {
		t.Errorf("hand should not be calling, winning tiles: %v", h.WinningTiles())
	}
}

func TestAllPairHonorsWaitDependsOnRuleset(t *testing.T) {
	desc := "RDgDgDrDrWeWeWsWsWwWwWnWnB1 mee"

	h, err := mahjong.NewHand(bmja(t), desc)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.WinningTiles().Exposed().String(); got != "b1" {
		t.Errorf("BMJA winning tiles = %q, want b1", got)
	}

	h, err = mahjong.NewHand(dmjl(t), desc)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.WinningTiles(); len(got) != 0 {
		t.Errorf("DMJL winning tiles = %v, want none", got)
	}
}

func TestCallingHands(t *testing.T) {
	h, err := mahjong.NewHand(dmjl(t), "RB1B1B1B2B3B4B5B6B7B8B8C5C5 mee")
	if err != nil {
		t.Fatal(err)
	}
	calling := h.CallingHands()
	if len(calling) != 2 {
		t.Fatalf("CallingHands() = %d hands, want 2", len(calling))
	}
	for _, full := range calling {
		if !full.Won() {
			t.Error("calling hand must be won")
		}
	}
}

func TestChancesToWin(t *testing.T) {
	// B8 已用两张、C5 已用两张，各剩两张
	h, err := mahjong.NewHand(dmjl(t), "RB1B1B1B2B3B4B5B6B7B8B8C5C5 mee")
	if err != nil {
		t.Fatal(err)
	}
	if got := h.ChancesToWin(); got != 4 {
		t.Errorf("ChancesToWin() = %d, want 4", got)
	}
}
