package mahjong

import (
	"math"
	"math/rand"
	"slices"
)

// Message 抢牌应答，按裁决优先级排列。
type Message int

const (
	MessageDiscard Message = iota
	MessageChow
	MessagePung
	MessageKong
	MessageOriginalCall
	MessageMahJongg
)

var messageNames = map[Message]string{
	MessageDiscard:      "Discard",
	MessageChow:         "Chow",
	MessagePung:         "Pung",
	MessageKong:         "Kong",
	MessageOriginalCall: "OriginalCall",
	MessageMahJongg:     "MahJongg",
}

func (m Message) String() string { return messageNames[m] }

// Claimness 各应答的意愿修正；负值禁止。
type Claimness map[Message]int

func (c Claimness) Add(other Claimness) {
	for k, v := range other {
		c[k] += v
	}
}

// DiscardCandidate 一张可打出的牌与其保留价值；权重最低者被打出。
type DiscardCandidate struct {
	Tile      Tile
	Weight    float64
	Dangerous bool
}

type DiscardCandidates []*DiscardCandidate

func (dc DiscardCandidates) Get(t Tile) *DiscardCandidate {
	for _, c := range dc {
		if c.Tile.Key() == t.Key() {
			return c
		}
	}
	return nil
}

// Intelligence 出牌与鸣牌决策；随机源由调用方注入以便重放。
type Intelligence struct {
	rnd *rand.Rand
}

func NewIntelligence(rnd *rand.Rand) *Intelligence {
	return &Intelligence{rnd: rnd}
}

// SelectDiscard 权重管线：基础 -> 同色 -> 特殊牌型 -> 规则集钩子 ->
// 原叫保护 -> 听牌推进；最后在最低权重中等概率取一张。
// dangerous 为喂给他家的危险牌集合。
func (ai *Intelligence) SelectDiscard(h *Hand, dangerous TileList) Tile {
	candidates := newCandidates(h)
	if len(candidates) == 0 {
		return TileNull
	}
	weighBasics(h, candidates, dangerous)
	weighSameColors(h, candidates)
	weighSpecialGames(h, candidates)
	for _, rl := range []*RuleList{h.Ruleset.MeldRules, h.Ruleset.HandRules, h.Ruleset.MJRules, h.Ruleset.WinnerRules} {
		for _, rule := range rl.Rules() {
			rule.Weigh(h, candidates)
		}
	}
	weighOriginalCall(h, candidates)
	weighCallingHand(h, candidates)

	minWeight := math.Inf(1)
	for _, c := range candidates {
		minWeight = math.Min(minWeight, c.Weight)
	}
	var lowest []*DiscardCandidate
	for _, c := range candidates {
		if c.Weight < minWeight+0.001 {
			lowest = append(lowest, c)
		}
	}
	return lowest[ai.rnd.Intn(len(lowest))].Tile
}

func newCandidates(h *Hand) DiscardCandidates {
	var res DiscardCandidates
	for _, t := range h.Concealed {
		if res.Get(t) == nil {
			res = append(res, &DiscardCandidate{Tile: t.Exposed()})
		}
	}
	return res
}

func weighBasics(h *Hand, candidates DiscardCandidates, dangerous TileList) {
	for _, c := range candidates {
		count := h.Concealed.Count(c.Tile)
		switch count {
		case 2:
			c.Weight += 5
		case 3:
			c.Weight += 10
		case 4:
			c.Weight += 12
		}
		if c.Tile.IsHonor() {
			// 孤张字牌先走，成对则是刻子苗子
			if count == 1 {
				c.Weight -= 1
			} else {
				c.Weight += 1
			}
		}
		if c.Tile.IsTerminal() {
			c.Weight -= 0.5
		}
		if c.Tile.IsSuit() {
			for _, n := range []Tile{c.Tile.Prev2(), c.Tile.Prev(), c.Tile.NextForChow(), c.Tile.Next2()} {
				if n != TileNull && h.Concealed.Contains(n) {
					c.Weight += 0.5
				}
			}
		}
		if dangerous.Contains(c.Tile) {
			c.Weight += 10
			c.Dangerous = true
		}
	}
}

func weighSameColors(h *Hand, candidates DiscardCandidates) {
	for _, c := range candidates {
		if !c.Tile.IsSuit() {
			continue
		}
		sameColor := 0
		for _, t := range h.Concealed {
			if t.IsSuit() && t.Group() == c.Tile.Group() {
				sameColor++
			}
		}
		c.Weight += 0.1 * float64(sameColor)
	}
}

// weighSpecialGames 手型明显偏向一色或字牌时，把局外牌推出去。
func weighSpecialGames(h *Hand, candidates DiscardCandidates) {
	counts := make(map[EGroup]int)
	honors := 0
	for _, t := range h.AllTilesInHand() {
		if t.IsHonor() {
			honors++
		} else if t.IsSuit() {
			counts[t.Group()]++
		}
	}
	var bestGroup EGroup = GroupUndefined
	best := 0
	for g, n := range counts {
		if n > best {
			best, bestGroup = n, g
		}
	}
	if best+honors < 10 {
		return
	}
	for _, c := range candidates {
		if c.Tile.IsSuit() && c.Tile.Group() != bestGroup {
			c.Weight -= 3
		}
	}
}

// weighOriginalCall 原叫之后只能打摸进的牌，听牌绝不拆。
func weighOriginalCall(h *Hand, candidates DiscardCandidates) {
	if !h.HasAnnouncement(AnnounceOriginalCall) {
		return
	}
	if h.LenOffset() != 1 {
		return
	}
	last := h.LastTile
	if !last.IsKnown() {
		return
	}
	for _, c := range candidates {
		if c.Tile.Key() != last.Key() {
			c.Weight += 50
		}
	}
}

// weighCallingHand 打出后即听牌的候选按听张数和分值加成。
func weighCallingHand(h *Hand, candidates DiscardCandidates) {
	if h.LenOffset() != 1 {
		return
	}
	for _, c := range candidates {
		reduced, err := h.Sub(c.Tile)
		if err != nil {
			continue
		}
		winning := reduced.WinningTiles()
		if len(winning) == 0 {
			continue
		}
		bonus := 2 + 0.5*float64(reduced.ChancesToWin())
		for _, calling := range reduced.CallingHands() {
			bonus += float64(calling.Total()) / 100
		}
		c.Weight -= bonus
	}
}

// claimPriorities 裁决次序（高到低）。
var claimPriorities = []Message{MessageMahJongg, MessageOriginalCall, MessageKong, MessagePung, MessageChow}

// ShouldClaim 对一张打出的牌给出应答。
// h 是本家 13 张形态的手牌；鸣牌意愿由各规则的 Claimness 钩子累加，
// 原叫限制与护听都走这条路。
func (ai *Intelligence) ShouldClaim(h *Hand, discard Tile) Message {
	claimness := make(Claimness)
	for _, rl := range []*RuleList{h.Ruleset.MeldRules, h.Ruleset.HandRules, h.Ruleset.MJRules, h.Ruleset.WinnerRules, h.Ruleset.LoserRules} {
		for _, rule := range rl.Rules() {
			if cn := rule.Claimness(h, discard); cn != nil {
				claimness.Add(cn)
			}
		}
	}
	for _, msg := range claimPriorities {
		if claimness[msg] < 0 {
			continue
		}
		if ai.mayClaim(h, discard, msg) {
			return msg
		}
	}
	return MessageDiscard
}

func (ai *Intelligence) mayClaim(h *Hand, discard Tile, msg Message) bool {
	switch msg {
	case MessageMahJongg:
		if h.LenOffset() != 0 {
			return false
		}
		return h.WinningTiles().Contains(discard)
	case MessageKong:
		return h.Concealed.Count(discard) >= 3
	case MessagePung:
		return h.Concealed.Count(discard) >= 2
	case MessageChow:
		if !discard.IsSuit() {
			return false
		}
		if ai.chowCount(h)+h.Declared.ChowCount() >= h.Ruleset.MaxChows {
			return false
		}
		return ai.hasChowPartners(h, discard)
	default:
		return false
	}
}

func (ai *Intelligence) chowCount(h *Hand) int {
	return h.Melds().ChowCount() - h.Declared.ChowCount()
}

func (ai *Intelligence) hasChowPartners(h *Hand, discard Tile) bool {
	d := discard.Concealed()
	pairs := [][2]Tile{
		{d.Prev2(), d.Prev()},
		{d.Prev(), d.NextForChow()},
		{d.NextForChow(), d.Next2()},
	}
	for _, p := range pairs {
		if p[0] != TileNull && p[1] != TileNull &&
			h.Concealed.Contains(p[0]) && h.Concealed.Contains(p[1]) {
			return true
		}
	}
	return false
}

// Dangerous 根据他家副露估计的危险牌：对明显的一色或全字副露，
// 同色与字牌都算危险。
func Dangerous(declared []MeldList) TileList {
	var res TileList
	for _, melds := range declared {
		if len(melds) < 3 {
			continue
		}
		groups := melds.Tiles().Groups()
		honorsOnly := true
		for _, t := range melds.Tiles() {
			if !t.IsHonor() {
				honorsOnly = false
				break
			}
		}
		switch {
		case honorsOnly:
			for _, t := range AllTiles() {
				if t.IsHonor() && !res.Contains(t) {
					res = append(res, t)
				}
			}
		case len(groups) == 1:
			for p := 0; p < 9; p++ {
				t := MakeTile(groups[0], p)
				if !res.Contains(t) {
					res = append(res, t)
				}
			}
		}
	}
	return slices.Clone(res)
}
