package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
	"github.com/sirupsen/logrus"
)

// Recorder 对局落库钩子；storage 包提供实现。
type Recorder interface {
	RecordHand(g *Game, result *HandResult) error
}

// PlayerScore 单手结算中一名玩家的切面。
type PlayerScore struct {
	PlayerID    int64
	Name        string
	Wind        mahjong.Tile
	Won         bool
	HandString  string
	Points      int
	Payment     int
	Balance     int
	ManualRules []string
}

// HandResult 一手牌的完整结算。
type HandResult struct {
	Point  mahjong.Point
	Winner mahjong.Tile
	Scores [4]PlayerScore
}

// Game 四人对局：规则、座次、计分位置与牌墙。
type Game struct {
	ID      int64
	Ruleset *mahjong.Ruleset
	Players [4]*Player
	Point   *mahjong.Point

	rnd    *rand.Rand
	wall   *Wall
	winner *Player

	eastWinStreak  int
	roundsFinished int
	history        []*HandResult
	recorder       Recorder
	finished       bool

	curState  state
	nextState func() state

	log *logrus.Entry
}

// NewGame 以种子建局；names 依起始座次 E S W N。
func NewGame(rs *mahjong.Ruleset, seed uint64, names [4]string) *Game {
	g := &Game{
		Ruleset: rs,
		Point:   mahjong.NewPoint(seed),
		rnd:     rand.New(rand.NewSource(int64(seed))),
		log:     logrus.WithField("seed", seed),
	}
	winds := []mahjong.Tile{
		mahjong.WindTile('e'), mahjong.WindTile('s'),
		mahjong.WindTile('w'), mahjong.WindTile('n'),
	}
	for i := range g.Players {
		g.Players[i] = newPlayer(int64(i+1), names[i], g.rnd)
		g.Players[i].Wind = winds[i]
	}
	return g
}

// SetRecorder 设置落库钩子。
func (g *Game) SetRecorder(r Recorder) { g.recorder = r }

// Finished 对局是否已终局。
func (g *Game) Finished() bool { return g.finished }

// History 已结算各手。
func (g *Game) History() []*HandResult { return g.history }

// Winner 当前（或最近一手）的和牌者。
func (g *Game) Winner() *Player { return g.winner }

// RoundWind 当前圈风。
func (g *Game) RoundWind() mahjong.Tile { return g.Point.Prevailing }

// EastWinStreak 东家连胜手数。
func (g *Game) EastWinStreak() int { return g.eastWinStreak }

// WinnerWind 和牌者风位，无人和牌为 TileNull。
func (g *Game) WinnerWind() mahjong.Tile {
	if g.winner == nil {
		return mahjong.TileNull
	}
	return g.winner.Wind
}

// PlayerAt 按风位取玩家。
func (g *Game) PlayerAt(wind mahjong.Tile) *Player {
	for _, p := range g.Players {
		if p.Wind.Key() == wind.Key() {
			return p
		}
	}
	return nil
}

// East 当前庄家。
func (g *Game) East() *Player { return g.PlayerAt(mahjong.WindTile('e')) }

// seatOrder 从某玩家起按 E S W N 逆时针排列。
func (g *Game) seatOrder(from *Player) [4]*Player {
	winds := []byte{'e', 's', 'w', 'n'}
	start := 0
	for i, c := range winds {
		if from.Wind.Key() == mahjong.WindTile(c).Key() {
			start = i
		}
	}
	var order [4]*Player
	for i := 0; i < 4; i++ {
		order[i] = g.PlayerAt(mahjong.WindTile(winds[(start+i)%4]))
	}
	return order
}

// rotateWinds 东未和时每家风位后移。
func (g *Game) rotateWinds() {
	for _, p := range g.Players {
		p.Wind = p.Wind.Next()
	}
}

// exchangeSeats 按圈间换座约定交换风位。
// 约定形如 "SWEN,SE,WE"：第 n 圈开始前取第 n-1 段，每两个风字母为一对互换。
func (g *Game) exchangeSeats() {
	parts := strings.Split(g.Ruleset.SeatExchange, ",")
	idx := g.roundsFinished // 进入第 idx+1 圈
	if idx < 1 || idx > len(parts) {
		return
	}
	pairs := parts[idx-1]
	for i := 0; i+1 < len(pairs); i += 2 {
		a := g.PlayerAt(mahjong.WindTile(pairs[i]))
		b := g.PlayerAt(mahjong.WindTile(pairs[i+1]))
		if a != nil && b != nil {
			a.Wind, b.Wind = b.Wind, a.Wind
		}
	}
}

// creditRotationRules 把命中的换风规则按手工规则记入胜者，
// 使其在本手结算中计分（东连庄九次付满贯）。
func (g *Game) creditRotationRules(winner *Player) {
	lists := []*mahjong.RuleList{
		g.Ruleset.MJRules, g.Ruleset.WinnerRules, g.Ruleset.HandRules,
	}
	for _, list := range lists {
		for _, r := range list.Rules() {
			if r.Rotate(g) {
				winner.AddManualRule(r)
			}
		}
	}
}

// gameOver 终局判定：局数打满，或换风规则（东连庄九次）触发。
// 圈数用对局计数器判断：Point 的圈风在北圈之后回绕到东，
// 不能用来数已完成的圈。
func (g *Game) gameOver() bool {
	if g.roundsFinished >= g.Ruleset.MinRounds {
		return true
	}
	lists := []*mahjong.RuleList{
		g.Ruleset.MJRules, g.Ruleset.WinnerRules, g.Ruleset.HandRules,
	}
	for _, list := range lists {
		for _, r := range list.Rules() {
			if r.Rotate(g) {
				g.log.WithField("rule", r.Name).Info("rotation rule ends the game")
				return true
			}
		}
	}
	return false
}

func (g *Game) String() string {
	return fmt.Sprintf("game %s", g.Point)
}
