package game

import (
	"math/rand"
	"strings"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

// Player 一局之内的玩家状态；Balance 跨手累计，Payment 为单手增量。
type Player struct {
	ID   int64
	Name string

	Wind    mahjong.Tile
	Balance int
	Payment int

	Concealed mahjong.TileList
	Declared  mahjong.MeldList
	Bonus     mahjong.TileList

	MayWin       bool
	OriginalCall bool

	lastTile   mahjong.Tile
	lastMeld   *mahjong.Meld
	lastSource mahjong.ESource
	manual     []*mahjong.Rule

	hand *mahjong.Hand
	ai   *mahjong.Intelligence
}

func newPlayer(id int64, name string, rnd *rand.Rand) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		lastTile: mahjong.TileNull,
		ai:       mahjong.NewIntelligence(rnd),
	}
}

// clearHand 开新一手前复位。
func (p *Player) clearHand() {
	p.Concealed = nil
	p.Declared = nil
	p.Bonus = nil
	p.MayWin = true
	p.OriginalCall = false
	p.lastTile = mahjong.TileNull
	p.lastMeld = nil
	p.lastSource = mahjong.SourceNone
	p.manual = nil
	p.hand = nil
	p.Payment = 0
}

func (p *Player) invalidateHand() {
	p.hand = nil
}

// AddTile 摸进一张暗牌。
func (p *Player) AddTile(t mahjong.Tile, source mahjong.ESource) {
	p.Concealed = append(p.Concealed, t.Concealed()).Sorted()
	p.lastTile = t.Concealed()
	p.lastMeld = nil
	p.lastSource = source
	p.invalidateHand()
}

// RemoveTile 打出一张暗牌。
func (p *Player) RemoveTile(t mahjong.Tile) {
	p.Concealed = p.Concealed.Removed(t.Concealed())
	if p.lastTile.Key() == t.Key() {
		p.lastTile = mahjong.TileNull
		p.lastSource = mahjong.SourceNone
	}
	p.invalidateHand()
}

// AddBonus 花牌落台。
func (p *Player) AddBonus(t mahjong.Tile) {
	p.Bonus = append(p.Bonus, t.Exposed()).Sorted()
	p.invalidateHand()
}

// Expose 用暗牌加上（可选的）打出牌组成副露。
func (p *Player) Expose(meld *mahjong.Meld, claimed mahjong.Tile) {
	own := meld.Tiles()
	if claimed != mahjong.TileNull {
		own = own.Removed(claimed)
	}
	p.Concealed = p.Concealed.RemovedAll(own.Concealed())
	p.Declared = append(p.Declared, meld)
	p.lastTile = claimed
	p.lastMeld = meld
	p.invalidateHand()
}

// AddManualRule 人工勾选的规则（危局、罚则）。
func (p *Player) AddManualRule(r *mahjong.Rule) {
	p.manual = append(p.manual, r)
	p.invalidateHand()
}

func (p *Player) ManualRuleNames() []string {
	names := make([]string, len(p.manual))
	for i, r := range p.manual {
		names[i] = r.Name
	}
	return names
}

// handDesc 以手牌文法拼出当前状态。
func (p *Player) handDesc(roundWind mahjong.Tile, declareMJ bool) string {
	var parts []string
	for _, m := range p.Declared {
		parts = append(parts, m.String())
	}
	if len(p.Concealed) > 0 {
		parts = append(parts, "R"+p.Concealed.String())
	}
	for _, b := range p.Bonus {
		parts = append(parts, b.String())
	}
	ctx := "m"
	if declareMJ {
		ctx = "M"
	}
	ctx += string(p.Wind.WindChar()) + string(roundWind.WindChar())
	if p.lastSource != mahjong.SourceNone {
		ctx += string(p.lastSource)
	}
	if p.OriginalCall {
		ctx += string(rune(mahjong.AnnounceOriginalCall))
	}
	parts = append(parts, ctx)
	if p.lastTile.IsKnown() {
		last := "L" + p.lastTile.String()
		if p.lastMeld != nil {
			last += p.lastMeld.String()
		}
		parts = append(parts, last)
	}
	return strings.Join(parts, " ")
}

// Hand 当前手牌的评分快照，按需重建。
func (p *Player) Hand(rs *mahjong.Ruleset, roundWind mahjong.Tile) (*mahjong.Hand, error) {
	if p.hand != nil {
		return p.hand, nil
	}
	h, err := mahjong.NewHand(rs, p.handDesc(roundWind, false), p.manual...)
	if err != nil {
		return nil, err
	}
	p.hand = h
	return h, nil
}

// WinningHand 按声明和牌评分；不缓存。
func (p *Player) WinningHand(rs *mahjong.Ruleset, roundWind mahjong.Tile) (*mahjong.Hand, error) {
	return mahjong.NewHand(rs, p.handDesc(roundWind, true), p.manual...)
}
