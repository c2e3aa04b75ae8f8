package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

func dmjl(t *testing.T) *mahjong.Ruleset {
	t.Helper()
	rs := mahjong.PredefinedRuleset("Classical Chinese DMJL")
	if rs == nil {
		t.Fatal("Classical Chinese DMJL not registered")
	}
	return rs
}

func testGame(t *testing.T) *Game {
	return NewGame(dmjl(t), 42, [4]string{"Ana", "Ben", "Cleo", "Dan"})
}

func setConcealed(t *testing.T, p *Player, tiles string) {
	t.Helper()
	tl, err := mahjong.ParseTiles(tiles)
	if err != nil {
		t.Fatalf("ParseTiles(%q): %v", tiles, err)
	}
	p.Concealed = tl.Concealed().Sorted()
	p.invalidateHand()
}

// setLimitWinner 给玩家摆一手满贯牌（四个大面子全部副露）。
func setLimitWinner(t *testing.T, p *Player) {
	t.Helper()
	for _, s := range []string{"c1c1c1", "c9c9", "b9b9b9b9", "s1s1s1", "s9s9s9"} {
		m, err := mahjong.ParseMeld(s)
		if err != nil {
			t.Fatalf("ParseMeld(%q): %v", s, err)
		}
		p.Declared = append(p.Declared, m)
	}
	last, err := mahjong.ParseTile("c1")
	if err != nil {
		t.Fatal(err)
	}
	p.lastTile = last
	p.lastMeld, _ = mahjong.ParseMeld("c1c1c1")
	p.invalidateHand()
}

func TestWallCounts(t *testing.T) {
	w := newWall(dmjl(t), rand.New(rand.NewSource(1)))
	if got := w.LiveCount(); got != 144-deadWallSize {
		t.Fatalf("LiveCount = %d, want %d", got, 144-deadWallSize)
	}
	seen := make(map[mahjong.Tile]int)
	for {
		tile := w.Draw()
		if tile == mahjong.TileNull {
			break
		}
		seen[tile.Key()]++
	}
	if w.LiveCount() != 0 {
		t.Errorf("live wall should be empty, %d left", w.LiveCount())
	}
	for i := 0; i < deadWallSize; i++ {
		if tile := w.DrawDead(); tile == mahjong.TileNull {
			t.Fatalf("dead wall exhausted after %d draws", i)
		}
	}
	if tile := w.DrawDead(); tile != mahjong.TileNull {
		t.Error("dead wall should be exhausted")
	}
	for tile, n := range seen {
		if n > 4 {
			t.Errorf("%s drawn %d times", tile, n)
		}
	}
}

func TestRotateWinds(t *testing.T) {
	g := testGame(t)
	g.rotateWinds()
	want := []byte{'s', 'w', 'n', 'e'}
	for i, p := range g.Players {
		if p.Wind.WindChar() != want[i] {
			t.Errorf("player %d wind = %c, want %c", i, p.Wind.WindChar(), want[i])
		}
	}
}

func TestSeatExchange(t *testing.T) {
	g := testGame(t)
	g.roundsFinished = 1 // 进入第二圈
	g.exchangeSeats()    // "SWEN"：南西互换、东北互换
	want := []byte{'n', 'w', 's', 'e'}
	for i, p := range g.Players {
		if p.Wind.WindChar() != want[i] {
			t.Errorf("player %d wind = %c, want %c", i, p.Wind.WindChar(), want[i])
		}
	}
}

func TestSeatExchangeFirstRound(t *testing.T) {
	g := testGame(t)
	var before [4]mahjong.Tile
	for i, p := range g.Players {
		before[i] = p.Wind
	}
	g.exchangeSeats() // 第一圈无换座
	for i, p := range g.Players {
		if p.Wind.Key() != before[i].Key() {
			t.Error("no exchange expected in the first round")
		}
	}
}

func TestPayHandZeroSum(t *testing.T) {
	g := testGame(t)
	east := g.Players[0]
	setLimitWinner(t, east)
	for _, p := range g.Players[1:] {
		setConcealed(t, p, "S1S2S3S5S6S7B1B2B3C1C2C3C5")
	}
	g.winner = east
	g.payHand()

	sum := 0
	for _, p := range g.Players {
		sum += p.Payment
	}
	if sum != 0 {
		t.Fatalf("payments sum to %d, want 0", sum)
	}
	// 满贯 500，庄家和牌收付皆翻倍：每家付 1000。
	if east.Payment != 3000 {
		t.Errorf("east payment = %d, want 3000", east.Payment)
	}
	for i, p := range g.Players[1:] {
		if p.Payment != -1000 {
			t.Errorf("loser %d payment = %d, want -1000", i+1, p.Payment)
		}
	}
}

func TestPayHandNonEastWinnerDoublesOnlyEast(t *testing.T) {
	g := testGame(t)
	south := g.Players[1]
	setLimitWinner(t, south)
	for _, p := range []*Player{g.Players[0], g.Players[2], g.Players[3]} {
		setConcealed(t, p, "S1S2S3S5S6S7B1B2B3C1C2C3C5")
	}
	g.winner = south
	g.payHand()

	sum := 0
	for _, p := range g.Players {
		sum += p.Payment
	}
	if sum != 0 {
		t.Fatalf("payments sum to %d, want 0", sum)
	}
	// 东家付 1000，两闲家各付 500。
	if south.Payment != 2000 {
		t.Errorf("winner payment = %d, want 2000", south.Payment)
	}
	if g.Players[0].Payment != -1000 {
		t.Errorf("east payment = %d, want -1000", g.Players[0].Payment)
	}
	if g.Players[2].Payment != -500 || g.Players[3].Payment != -500 {
		t.Errorf("other losers = %d/%d, want -500 each",
			g.Players[2].Payment, g.Players[3].Payment)
	}
}

func TestPayHandDangerousGamePaysForAll(t *testing.T) {
	g := testGame(t)
	east := g.Players[0]
	south := g.Players[1]
	setLimitWinner(t, east)
	for _, p := range g.Players[1:] {
		setConcealed(t, p, "S1S2S3S5S6S7B1B2B3C1C2C3C5")
	}
	dangerous := g.Ruleset.LoserRules.Get("Dangerous Game")
	if dangerous == nil {
		t.Fatal("Dangerous Game rule missing")
	}
	south.AddManualRule(dangerous)
	g.winner = east
	g.payHand()

	if east.Payment != 3000 {
		t.Errorf("east payment = %d, want 3000", east.Payment)
	}
	if south.Payment != -3000 {
		t.Errorf("guilty payment = %d, want -3000", south.Payment)
	}
	if g.Players[2].Payment != 0 || g.Players[3].Payment != 0 {
		t.Error("innocent losers must not pay when one player pays for all")
	}
}

func TestApplyPenalty(t *testing.T) {
	g := testGame(t)
	rule := g.Ruleset.PenaltyRules.Get("False Declaration of Mah Jongg")
	if rule == nil {
		t.Fatal("penalty rule missing")
	}
	offender := g.Players[2]
	victims := []*Player{g.Players[0], g.Players[1], g.Players[3]}
	if err := g.ApplyPenalty(rule, []*Player{offender}, victims); err != nil {
		t.Fatal(err)
	}
	if offender.Payment != -300 {
		t.Errorf("offender payment = %d, want -300", offender.Payment)
	}
	for _, p := range victims {
		if p.Payment != 100 {
			t.Errorf("victim payment = %d, want 100", p.Payment)
		}
	}

	if err := g.ApplyPenalty(rule, []*Player{offender}, victims[:1]); err == nil {
		t.Error("wrong payee count should be rejected")
	}
}

func TestGameOverOnNinthEastWin(t *testing.T) {
	g := testGame(t)
	g.winner = g.East()
	g.eastWinStreak = 8
	if g.gameOver() {
		t.Error("eight east wins must not end the game")
	}
	g.eastWinStreak = 9
	if !g.gameOver() {
		t.Error("nine east wins in a row must end the game")
	}
}

func TestNinthEastWinScoresLimit(t *testing.T) {
	g := testGame(t)
	east := g.Players[0]
	setLimitWinner(t, east)
	for _, p := range g.Players[1:] {
		setConcealed(t, p, "S1S2S3S5S6S7B1B2B3C1C2C3C5")
	}
	g.winner = east
	g.eastWinStreak = 8

	(&payState{game: g}).onEnter()

	if g.eastWinStreak != 9 {
		t.Fatalf("east win streak = %d, want 9", g.eastWinStreak)
	}
	found := false
	for _, name := range east.ManualRuleNames() {
		if name == "East Won Nine Times in a Row" {
			found = true
		}
	}
	if !found {
		t.Fatal("ninth east win must be credited to the winning hand")
	}
	// 规则在付钱前入账：三家各付两倍手分
	if want := 6 * g.handTotal(east); east.Payment != want {
		t.Errorf("east payment = %d, want %d", east.Payment, want)
	}
	if !g.gameOver() {
		t.Error("ninth east win must end the game")
	}
}

func TestFourthRoundEndsGame(t *testing.T) {
	g := testGame(t)
	south := g.Players[1]
	setLimitWinner(t, south)
	for _, p := range []*Player{g.Players[0], g.Players[2], g.Players[3]} {
		setConcealed(t, p, "S1S2S3S5S6S7B1B2B3C1C2C3C5")
	}
	g.winner = south
	// 北圈最后一手：圈风回绕到东，圈数计数器必须接住
	g.Point.Prevailing = mahjong.WindTile('n')
	g.Point.Rotated = 3
	g.roundsFinished = 3

	(&endHandState{game: g}).onEnter()

	if !g.Finished() {
		t.Fatalf("game must be over after the 4th round; point now %s", g.Point)
	}
	if g.nextState != nil {
		t.Error("no further hand may be scheduled")
	}
}

func TestGameRunsToCompletion(t *testing.T) {
	g := testGame(t)
	g.Run()
	if !g.Finished() {
		t.Fatal("autoplay must terminate")
	}
	if len(g.History()) == 0 {
		t.Fatal("no hands recorded")
	}
	if g.roundsFinished < 4 && g.eastWinStreak < 9 {
		t.Errorf("finished after %d rounds without a rotation rule", g.roundsFinished)
	}
	for i, result := range g.History() {
		sum := 0
		for _, ps := range result.Scores {
			sum += ps.Payment
		}
		if sum != 0 {
			t.Errorf("hand %d payments sum to %d, want 0", i, sum)
		}
	}
}

func TestEndHandKeepsRotationOnEastWin(t *testing.T) {
	g := testGame(t)
	east := g.Players[0]
	setLimitWinner(t, east)
	for _, p := range g.Players[1:] {
		setConcealed(t, p, "S1S2S3S5S6S7B1B2B3C1C2C3C5")
	}
	g.winner = east

	(&payState{game: g}).onEnter()
	(&endHandState{game: g}).onEnter()

	if g.Players[0].Wind.WindChar() != 'e' {
		t.Error("east win must keep the winds")
	}
	if g.Point.NotRotated != 1 || g.Point.Rotated != 0 {
		t.Errorf("point after east win = %s", g.Point)
	}
	if g.eastWinStreak != 1 {
		t.Errorf("east win streak = %d, want 1", g.eastWinStreak)
	}
	if len(g.History()) != 1 {
		t.Fatalf("history length = %d, want 1", len(g.History()))
	}
	if !g.History()[0].Scores[0].Won {
		t.Error("east must be recorded as winner")
	}
}

func TestEndHandRotatesOnOtherWin(t *testing.T) {
	g := testGame(t)
	south := g.Players[1]
	setLimitWinner(t, south)
	for _, p := range []*Player{g.Players[0], g.Players[2], g.Players[3]} {
		setConcealed(t, p, "S1S2S3S5S6S7B1B2B3C1C2C3C5")
	}
	g.winner = south

	(&payState{game: g}).onEnter()
	(&endHandState{game: g}).onEnter()

	if g.Players[0].Wind.WindChar() != 's' {
		t.Error("winds must rotate when east did not win")
	}
	if g.Point.Rotated != 1 || g.Point.NotRotated != 0 {
		t.Errorf("point after rotation = %s", g.Point)
	}
	if g.eastWinStreak != 0 {
		t.Errorf("east win streak = %d, want 0", g.eastWinStreak)
	}
}

func TestClaimArbiterPriority(t *testing.T) {
	g := testGame(t)
	arb := newClaimArbiter(50 * time.Millisecond)
	others := [4]*Player{g.Players[1], g.Players[2], g.Players[3]}
	arb.Expect(others[0], others[1], others[2])
	arb.Submit(others[0], mahjong.MessageChow)
	arb.Submit(others[1], mahjong.MessagePung)
	arb.Submit(others[2], mahjong.MessageDiscard)
	c, ok := arb.Decide(others)
	if !ok || c.player != others[1] || c.msg != mahjong.MessagePung {
		t.Errorf("Decide = %v/%v, want pung by third player", c.player, ok)
	}
}

func TestClaimArbiterAllPass(t *testing.T) {
	g := testGame(t)
	arb := newClaimArbiter(50 * time.Millisecond)
	others := [4]*Player{g.Players[1], g.Players[2], g.Players[3]}
	arb.Expect(others[0], others[1], others[2])
	for _, p := range others[:3] {
		arb.Submit(p, mahjong.MessageDiscard)
	}
	if _, ok := arb.Decide(others); ok {
		t.Error("all passes must yield no claim")
	}
}

func TestClaimArbiterTimeout(t *testing.T) {
	g := testGame(t)
	arb := newClaimArbiter(20 * time.Millisecond)
	others := [4]*Player{g.Players[1], g.Players[2], g.Players[3]}
	arb.Expect(others[0], others[1], others[2])
	arb.Submit(others[2], mahjong.MessageKong)
	// 其余两家不应答，超时后按过牌处理。
	c, ok := arb.Decide(others)
	if !ok || c.player != others[2] || c.msg != mahjong.MessageKong {
		t.Error("timeout must settle with the answers received")
	}
}

func TestAutoplayHand(t *testing.T) {
	g := testGame(t)
	g.PlayHand()
	if len(g.History()) != 1 {
		t.Fatalf("history length = %d, want 1", len(g.History()))
	}
	result := g.History()[0]
	sum := 0
	for _, ps := range result.Scores {
		sum += ps.Payment
	}
	if sum != 0 {
		t.Errorf("hand payments sum to %d, want 0", sum)
	}
	if result.Winner != mahjong.TileNull && g.Winner() == nil {
		t.Error("recorded winner without game winner")
	}
}
