package mahjong

// 整手牌谓词。多数同时出现在 handRules 与 winnerRules 两张表里，
// 由规则集数据决定落位。

type handCode struct {
	name    string
	applies func(h *Hand) bool
}

func (c handCode) CodeName() string { return c.name }

func (c handCode) AppliesToHand(h *Hand) bool { return c.applies(h) }

// structureMelds 除花牌外的全部面子。
func structureMelds(h *Hand) MeldList {
	return h.Melds()
}

func noRest(h *Hand) bool {
	for _, m := range h.Melds() {
		if m.IsRest() {
			return false
		}
	}
	return true
}

func zeroPointHand(h *Hand) bool {
	for _, m := range structureMelds(h) {
		switch {
		case m.IsChow():
		case m.IsPair() && m.First().IsMinor():
		case m.IsRest():
			return false
		default:
			return false
		}
	}
	return true
}

func noChow(h *Hand) bool {
	for _, m := range structureMelds(h) {
		if m.IsChow() {
			return false
		}
	}
	return true
}

func onlyConcealedMelds(h *Hand) bool {
	for _, m := range structureMelds(h) {
		if !m.IsConcealed() && !m.IsClaimedKong() {
			return false
		}
		if m.IsClaimedKong() {
			return false
		}
	}
	return true
}

// falseColorGame 一色加字牌（字牌必须出现）。
func falseColorGame(h *Hand) bool {
	groups := h.SuitGroups()
	if len(groups) != 1 {
		return false
	}
	for _, t := range h.AllTilesInHand() {
		if t.IsHonor() {
			return true
		}
	}
	return false
}

// trueColorGame 清一色。
func trueColorGame(h *Hand) bool {
	if len(h.SuitGroups()) != 1 {
		return false
	}
	for _, t := range h.AllTilesInHand() {
		if t.IsHonor() {
			return false
		}
	}
	return true
}

func onlyMajors(h *Hand) bool {
	for _, t := range h.AllTilesInHand() {
		if !t.IsMajor() {
			return false
		}
	}
	return true
}

func onlyHonors(h *Hand) bool {
	for _, t := range h.AllTilesInHand() {
		if !t.IsHonor() {
			return false
		}
	}
	return true
}

func onlyTerminals(h *Hand) bool {
	for _, t := range h.AllTilesInHand() {
		if !t.IsTerminal() {
			return false
		}
	}
	return true
}

// greenTiles 全绿：条子 23468 与发财。
var greenTiles = TileList{
	MakeTile(GroupBamboo, 1), MakeTile(GroupBamboo, 2), MakeTile(GroupBamboo, 3),
	MakeTile(GroupBamboo, 5), MakeTile(GroupBamboo, 7), TileDragonGreen,
}

func allGreen(h *Hand) bool {
	for _, t := range h.AllTilesInHand() {
		if !greenTiles.Contains(t) {
			return false
		}
	}
	return true
}

func countMelds(h *Hand, pred func(*Meld) bool) int {
	count := 0
	for _, m := range structureMelds(h) {
		if pred(m) {
			count++
		}
	}
	return count
}

func threeConcealedPongs(h *Hand) bool {
	return countMelds(h, func(m *Meld) bool { return m.IsPungKong() && m.IsConcealed() }) >= 3
}

func littleThreeDragons(h *Hand) bool {
	return countMelds(h, func(m *Meld) bool { return m.IsDragonMeld() && m.IsPungKong() }) == 2 &&
		countMelds(h, func(m *Meld) bool { return m.IsDragonMeld() && m.IsPair() }) == 1
}

func bigThreeDragons(h *Hand) bool {
	return countMelds(h, func(m *Meld) bool { return m.IsDragonMeld() && m.IsPungKong() }) == 3
}

func littleFourJoys(h *Hand) bool {
	return countMelds(h, func(m *Meld) bool { return m.IsWindMeld() && m.IsPungKong() }) == 3 &&
		countMelds(h, func(m *Meld) bool { return m.IsWindMeld() && m.IsPair() }) == 1
}

// bigFourJoys 大四喜：四副风刻（即“四喜临门”）。
func bigFourJoys(h *Hand) bool {
	return countMelds(h, func(m *Meld) bool { return m.IsWindMeld() && m.IsPungKong() }) == 4
}

// threeGreatScholars 大三元且无相公杂牌：箭刻三副，一色或全字陪衬。
func threeGreatScholars(h *Hand) bool {
	if !bigThreeDragons(h) {
		return false
	}
	for _, m := range structureMelds(h) {
		if m.IsChow() || m.IsRest() {
			return false
		}
	}
	return true
}

// hiddenTreasure 坎坎胡：全暗刻、墙上自摸。
func hiddenTreasure(h *Hand) bool {
	if !noRest(h) {
		return false
	}
	for _, m := range structureMelds(h) {
		if m.IsPair() {
			continue
		}
		if !m.IsPungKong() || !m.IsConcealed() {
			return false
		}
	}
	return h.LastSource == SourceWall || h.LastSource == SourceWallEnd
}

// buriedTreasure 埋藏之宝：坎坎胡且清一色或字一色。
func buriedTreasure(h *Hand) bool {
	return hiddenTreasure(h) && (trueColorGame(h) || onlyHonors(h))
}

// ownFlowerOwnSeason 门风位的花与季同时在手。
func ownFlowerOwnSeason(h *Hand) bool {
	point := h.OwnWind.Point()
	return h.Bonus.Contains(MakeTile(GroupFlower, point)) &&
		h.Bonus.Contains(MakeTile(GroupSeason, point))
}

func allBonusOf(group EGroup) func(h *Hand) bool {
	return func(h *Hand) bool {
		n := 0
		for _, t := range h.Bonus {
			if t.Group() == group {
				n++
			}
		}
		return n == 4
	}
}

// Weigher 钩子：一色倾向时加重同色邻张的价值由 ai.go 的
// weighSameColors 承担，这里仅提供规则表可挂接的实现。
type colorWeighCode struct {
	handCode
}

func (c colorWeighCode) Weigh(h *Hand, candidates DiscardCandidates) {
	groups := h.SuitGroups()
	if len(groups) != 1 {
		return
	}
	for _, cand := range candidates {
		if cand.Tile.IsSuit() && cand.Tile.Group() == groups[0] {
			cand.Weight += 2
		}
	}
}

func init() {
	RegisterRuleCode(
		handCode{name: "ZeroPointHand", applies: zeroPointHand},
		handCode{name: "NoChow", applies: noChow},
		handCode{name: "OnlyConcealedMelds", applies: onlyConcealedMelds},
		handCode{name: "FalseColorGame", applies: falseColorGame},
		colorWeighCode{handCode{name: "TrueColorGame", applies: trueColorGame}},
		handCode{name: "OnlyMajors", applies: onlyMajors},
		handCode{name: "OnlyHonors", applies: onlyHonors},
		handCode{name: "AllTerminals", applies: onlyTerminals},
		handCode{name: "AllGreen", applies: allGreen},
		handCode{name: "ThreeConcealedPongs", applies: threeConcealedPongs},
		handCode{name: "LittleThreeDragons", applies: littleThreeDragons},
		handCode{name: "BigThreeDragons", applies: bigThreeDragons},
		handCode{name: "LittleFourJoys", applies: littleFourJoys},
		handCode{name: "BigFourJoys", applies: bigFourJoys},
		handCode{name: "ThreeGreatScholars", applies: threeGreatScholars},
		handCode{name: "HiddenTreasure", applies: hiddenTreasure},
		handCode{name: "BuriedTreasure", applies: buriedTreasure},
		handCode{name: "OwnFlowerOwnSeason", applies: ownFlowerOwnSeason},
		handCode{name: "AllFlowers", applies: allBonusOf(GroupFlower)},
		handCode{name: "AllSeasons", applies: allBonusOf(GroupSeason)},
	)
}
