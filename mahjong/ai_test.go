package mahjong_test

import (
	"math/rand"
	"testing"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

func TestSelectDiscardDropsLoneHonor(t *testing.T) {
	h, err := mahjong.NewHand(dmjl(t), "RB1B2B3B4B5B6B7B8B9WeC5C5C5 mee")
	if err != nil {
		t.Fatal(err)
	}
	ai := mahjong.NewIntelligence(rand.New(rand.NewSource(1)))
	got := ai.SelectDiscard(h, nil)
	if got.String() != "we" {
		t.Errorf("SelectDiscard = %v, want the lone honor we", got)
	}
}

func TestSelectDiscardAvoidsDangerous(t *testing.T) {
	h, err := mahjong.NewHand(dmjl(t), "RB1B2B3C4C5C6S7S8S9WeWsDbDg mee")
	if err != nil {
		t.Fatal(err)
	}
	we, _ := mahjong.ParseTile("we")
	ws, _ := mahjong.ParseTile("ws")
	db, _ := mahjong.ParseTile("db")
	dg, _ := mahjong.ParseTile("dg")
	dangerous := mahjong.TileList{we, ws, db}
	ai := mahjong.NewIntelligence(rand.New(rand.NewSource(1)))
	got := ai.SelectDiscard(h, dangerous)
	if got.Key() != dg.Key() {
		t.Errorf("SelectDiscard = %v, want the safe lone honor dg", got)
	}
}

func TestShouldClaimPriority(t *testing.T) {
	rs := dmjl(t)
	cases := []struct {
		name    string
		desc    string
		discard string
		want    mahjong.Message
	}{
		{"pung", "RDrDrB1B2B3C4C5C6S7S8S9WeWn mee", "dr", mahjong.MessagePung},
		{"kong beats pung", "RDrDrDrB1B2B3C4C5C6S7S8S9We mee", "dr", mahjong.MessageKong},
		{"chow", "RB1B2C4C5C6S7S8S9WeWnDbDgS2 mee", "b3", mahjong.MessageChow},
		{"pass", "RB1B2B3C4C5C6S7S8S9WeWnDbDg mee", "s1", mahjong.MessageDiscard},
	}
	ai := mahjong.NewIntelligence(rand.New(rand.NewSource(1)))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := mahjong.NewHand(rs, tc.desc)
			if err != nil {
				t.Fatal(err)
			}
			discard, err := mahjong.ParseTile(tc.discard)
			if err != nil {
				t.Fatal(err)
			}
			if got := ai.ShouldClaim(h, discard); got != tc.want {
				t.Errorf("ShouldClaim(%q, %v) = %v, want %v", tc.desc, discard, got, tc.want)
			}
		})
	}
}

func TestShouldClaimMahJongg(t *testing.T) {
	// 十三幺听牌，任何幺九字牌来都直接和
	h, err := mahjong.NewHand(dmjl(t), "RC1C9B9B1S1S9WeDgWsWnWwDbDr mee")
	if err != nil {
		t.Fatal(err)
	}
	ai := mahjong.NewIntelligence(rand.New(rand.NewSource(1)))
	dr, _ := mahjong.ParseTile("dr")
	if got := ai.ShouldClaim(h, dr); got != mahjong.MessageMahJongg {
		t.Errorf("ShouldClaim = %v, want MahJongg", got)
	}
}

func TestCallingHandDeclinesBreakingClaims(t *testing.T) {
	// 听 s3；东风对是将，碰了就得拆听，规则压下鸣牌
	h, err := mahjong.NewHand(dmjl(t), "RB1B2B3C5C6C7S5S6S7WeWeS1S2 mee")
	if err != nil {
		t.Fatal(err)
	}
	ai := mahjong.NewIntelligence(rand.New(rand.NewSource(1)))
	we, _ := mahjong.ParseTile("we")
	if got := ai.ShouldClaim(h, we); got != mahjong.MessageDiscard {
		t.Errorf("calling hand must not break its call, got %v", got)
	}
}

func TestOriginalCallRestrictsClaims(t *testing.T) {
	h, err := mahjong.NewHand(dmjl(t), "RDrDrB1B2B3C4C5C6S7S8S9WeWn meea")
	if err != nil {
		t.Fatal(err)
	}
	ai := mahjong.NewIntelligence(rand.New(rand.NewSource(1)))
	dr, _ := mahjong.ParseTile("dr")
	if got := ai.ShouldClaim(h, dr); got != mahjong.MessageDiscard {
		t.Errorf("original caller may not pung, got %v", got)
	}
}
