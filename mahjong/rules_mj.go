package mahjong

import "slices"

// 和牌规则。模式类规则统一在“完整 14 张多重集合”上匹配：
// AppliesToHand 检查当前手牌，WinningTileCandidates 对 13 张手
// 逐一试探加入第 14 张。外层 WinningTiles 会再做真实评分剪枝。

// hasBigDeclared 有副露的吃碰杠（记谱用的单张与对子不算）。
func hasBigDeclared(h *Hand) bool {
	for _, m := range h.Declared {
		if m.Len() >= 3 {
			return true
		}
	}
	return false
}

func hasAnyDeclared(h *Hand) bool {
	return len(h.Declared) > 0
}

// keyCounts 忽略明暗的计数。
func keyCounts(tiles TileList) map[Tile]int {
	m := make(map[Tile]int, len(tiles))
	for _, t := range tiles {
		m[t.Key()]++
	}
	return m
}

// patternCode 以完整牌集匹配的和牌规则。
type patternCode struct {
	name          string
	concealedOnly bool
	matches       func(h *Hand, tiles TileList) bool
	shouldTry     func(h *Hand, maxMissing int) bool
}

func (c patternCode) CodeName() string { return c.name }

func (c patternCode) AppliesToHand(h *Hand) bool {
	if h.LenOffset() != 1 {
		return false
	}
	if c.concealedOnly && hasBigDeclared(h) {
		return false
	}
	return c.matches(h, h.AllTilesInHand())
}

func (c patternCode) WinningTileCandidates(h *Hand) TileList {
	if h.LenOffset() != 0 {
		return nil
	}
	if c.concealedOnly && hasBigDeclared(h) {
		return nil
	}
	counts := keyCounts(h.AllTilesInHand())
	var res TileList
	for _, t := range AllTiles() {
		if counts[t] >= SameTileCountByGroup[t.Group()] {
			continue
		}
		tiles := append(slices.Clone(h.AllTilesInHand()), t)
		if c.matches(h, tiles) {
			res = append(res, t)
		}
	}
	return res
}

func (c patternCode) ShouldTry(h *Hand, maxMissing int) bool {
	if c.shouldTry == nil {
		return false
	}
	if c.concealedOnly && hasBigDeclared(h) {
		return false
	}
	return c.shouldTry(h, maxMissing)
}

// ---- 标准和牌：四副面子加一对 ----

type standardMJCode struct{}

func (standardMJCode) CodeName() string { return "StandardMahJongg" }

func (standardMJCode) AppliesToHand(h *Hand) bool {
	if h.LenOffset() != 1 {
		return false
	}
	pairs, bigs, chows := 0, 0, 0
	for _, m := range h.Melds() {
		switch {
		case m.IsPair():
			pairs++
		case m.IsChow():
			bigs++
			chows++
		case m.IsPungKong():
			bigs++
		default:
			return false
		}
	}
	return pairs == 1 && bigs == 4 && chows <= h.Ruleset.MaxChows
}

// Claimness 已听牌的手不为吃碰拆听。
// 杠用的是手里现成的暗刻，不动结构，放行。
func (standardMJCode) Claimness(h *Hand, discard Tile) Claimness {
	if h.LenOffset() != 0 {
		return nil
	}
	winning := h.WinningTiles()
	if len(winning) == 0 || winning.Contains(discard) {
		return nil
	}
	return Claimness{MessageChow: -1, MessagePung: -1}
}

func (standardMJCode) WinningTileCandidates(h *Hand) TileList {
	if h.LenOffset() != 0 {
		return nil
	}
	needMelds, needPairs := 4, 1
	for _, m := range h.Declared {
		switch {
		case m.IsPair():
			needPairs--
		case m.IsChow() || m.IsPungKong():
			needMelds--
		default:
			return nil // 记谱单张无法并入标准结构
		}
	}
	if needMelds < 0 || needPairs < 0 {
		return nil
	}
	counts := keyCounts(h.AllTilesInHand())
	var res TileList
	for _, t := range neighborClosure(h.Concealed) {
		if counts[t] >= SameTileCountByGroup[t.Group()] {
			continue
		}
		tiles := append(h.Concealed.Exposed().Sorted(), t)
		if winStructure(tiles.Sorted(), needMelds, needPairs, h.Ruleset.MaxChows) {
			res = append(res, t)
		}
	}
	return res
}

// neighborClosure 暗牌及其同色两步内邻张，缩小试探范围。
func neighborClosure(tiles TileList) TileList {
	var res TileList
	add := func(t Tile) {
		if t != TileNull && !res.Contains(t) {
			res = append(res, t.Exposed())
		}
	}
	for _, t := range tiles {
		add(t)
		if t.IsSuit() {
			add(t.Prev())
			add(t.Prev2())
			add(t.NextForChow())
			add(t.Next2())
		}
	}
	return res.Sorted()
}

// winStructure 递归检查 tiles 能否拆成 melds 副面子加 pairs 对。
func winStructure(tiles TileList, melds, pairs, maxChows int) bool {
	if len(tiles) == 0 {
		return melds == 0 && pairs == 0
	}
	first := tiles[0]
	count := tiles.Count(first)
	if pairs > 0 && count >= 2 {
		if winStructure(tiles.RemovedAll(TileList{first, first}), melds, pairs-1, maxChows) {
			return true
		}
	}
	if melds > 0 {
		if count >= 3 &&
			winStructure(tiles.RemovedAll(TileList{first, first, first}), melds-1, pairs, maxChows) {
			return true
		}
		if maxChows > 0 {
			if chow := ChowMeld(first); chow != nil &&
				tiles.Contains(chow.Tiles()[1]) && tiles.Contains(chow.Tiles()[2]) &&
				winStructure(tiles.RemovedAll(chow.Tiles()), melds-1, pairs, maxChows-1) {
				return true
			}
		}
	}
	return false
}

// ---- 具体模式 ----

var majorSingles = func() TileList {
	var res TileList
	for _, t := range AllTiles() {
		if t.IsMajor() {
			res = append(res, t)
		}
	}
	return res
}()

func matchThirteenOrphans(_ *Hand, tiles TileList) bool {
	if len(tiles) != 14 {
		return false
	}
	counts := keyCounts(tiles)
	pairSeen := false
	for t, n := range counts {
		if !t.IsMajor() {
			return false
		}
		switch n {
		case 1:
		case 2:
			if pairSeen {
				return false
			}
			pairSeen = true
		default:
			return false
		}
	}
	return len(counts) == 13 && pairSeen
}

func tryThirteenOrphans(h *Hand, maxMissing int) bool {
	counts := keyCounts(h.AllTilesInHand())
	have := 0
	for _, t := range majorSingles {
		if counts[t] > 0 {
			have++
		}
	}
	return 13-have <= maxMissing
}

// gatesPattern 九莲宝灯基形 1112345678999。
var gatesPattern = [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}

func matchGates(_ *Hand, tiles TileList) bool {
	if len(tiles) != 14 {
		return false
	}
	groups := tiles.Groups()
	if len(groups) != 1 {
		return false
	}
	counts := keyCounts(tiles)
	extra := 0
	for p := 0; p < 9; p++ {
		n := counts[MakeTile(groups[0], p)]
		diff := n - gatesPattern[p]
		if diff < 0 || diff > 1 {
			return false
		}
		extra += diff
	}
	sum := 0
	for _, n := range counts {
		sum += n
	}
	return sum == 14 && extra == 1
}

func matchSquirmingSnake(_ *Hand, tiles TileList) bool {
	if len(tiles) != 14 {
		return false
	}
	groups := tiles.Groups()
	if len(groups) != 1 {
		return false
	}
	counts := keyCounts(tiles)
	if len(counts) != 9 {
		return false
	}
	doubled := TileNull
	for p := 0; p < 9; p++ {
		n := counts[MakeTile(groups[0], p)]
		switch p {
		case 0, 8:
			if n != 3 {
				return false
			}
		default:
			if n < 1 || n > 2 {
				return false
			}
			if n == 2 {
				if doubled != TileNull {
					return false
				}
				doubled = MakeTile(groups[0], p)
			}
		}
	}
	// 多出的对子必须落在 2、5 或 8 上
	return doubled != TileNull && doubled.Value()%3 == 2
}

func matchWrigglingSnake(_ *Hand, tiles TileList) bool {
	if len(tiles) != 14 {
		return false
	}
	counts := keyCounts(tiles)
	for _, w := range Winds {
		if counts[w] != 1 {
			return false
		}
	}
	groups := tiles.Groups()
	if len(groups) != 1 {
		return false
	}
	for p := 0; p < 9; p++ {
		want := 1
		if p == 0 {
			want = 2
		}
		if counts[MakeTile(groups[0], p)] != want {
			return false
		}
	}
	return len(counts) == 13
}

// suitVector 每个点数在三色上的张数。
func suitVector(counts map[Tile]int, point int) [3]int {
	var v [3]int
	for g := GroupStone; g <= GroupCharacter; g++ {
		v[g] = counts[MakeTile(g, point)]
	}
	return v
}

func matchTripleKnitting(_ *Hand, tiles TileList) bool {
	if len(tiles) != 14 {
		return false
	}
	counts := keyCounts(tiles)
	triples, pairs := 0, 0
	for p := 0; p < 9; p++ {
		v := suitVector(counts, p)
		sum := v[0] + v[1] + v[2]
		switch {
		case sum == 0:
		case sum == 3 && v[0] == 1 && v[1] == 1 && v[2] == 1:
			triples++
		case sum == 2 && v[0] <= 1 && v[1] <= 1 && v[2] <= 1:
			pairs++
		case sum == 6 && v[0] == 2 && v[1] == 2 && v[2] == 2:
			triples += 2
		default:
			return false
		}
	}
	for t := range counts {
		if t.IsHonor() {
			return false
		}
	}
	return triples == 4 && pairs == 1
}

func matchKnitting(_ *Hand, tiles TileList) bool {
	if len(tiles) != 14 {
		return false
	}
	counts := keyCounts(tiles)
	for t := range counts {
		if t.IsHonor() {
			return false
		}
	}
	groups := tiles.Groups()
	if len(groups) != 2 {
		return false
	}
	values := 0
	for p := 0; p < 9; p++ {
		a := counts[MakeTile(groups[0], p)]
		b := counts[MakeTile(groups[1], p)]
		switch {
		case a == 0 && b == 0:
		case a == 1 && b == 1:
			values++
		default:
			return false
		}
	}
	return values == 7
}

func matchAllPairHonors(_ *Hand, tiles TileList) bool {
	if len(tiles) != 14 {
		return false
	}
	counts := keyCounts(tiles)
	if len(counts) != 7 {
		return false
	}
	for t, n := range counts {
		if n != 2 || !t.IsMajor() {
			return false
		}
	}
	return true
}

func tryAllPairHonors(h *Hand, maxMissing int) bool {
	counts := keyCounts(h.AllTilesInHand())
	pairs := 0
	for t, n := range counts {
		if t.IsMajor() && n >= 2 {
			pairs++
		}
	}
	return 7-pairs <= maxMissing
}

// knittedRearranger 把牌拆出跨色组合，供三色编织类牌型的拆分。
type knittedRearranger struct{}

func (knittedRearranger) Rearrange(h *Hand, rest TileList, yield func(MeldList, TileList) bool) {
	counts := keyCounts(rest)
	var melds MeldList
	remaining := rest.Sorted()
	for p := 0; p < 9; p++ {
		v := suitVector(counts, p)
		if v[0] >= 1 && v[1] >= 1 && v[2] >= 1 {
			m := Knitted3Meld(MakeTile(GroupStone, p).Concealed())
			melds = append(melds, m)
			remaining = remaining.RemovedAll(m.Tiles())
		}
	}
	if len(melds) > 0 {
		yield(melds, remaining)
	}
}

type tripleKnittingCode struct {
	patternCode
	knittedRearranger
}

func init() {
	RegisterRuleCode(
		standardMJCode{},
		patternCode{
			name:          "ThirteenOrphans",
			concealedOnly: true,
			matches:       matchThirteenOrphans,
			shouldTry:     tryThirteenOrphans,
		},
		patternCode{name: "NineGates", concealedOnly: true, matches: matchGates},
		patternCode{name: "GatesOfHeaven", concealedOnly: true, matches: matchGates},
		patternCode{name: "SquirmingSnake", concealedOnly: true, matches: matchSquirmingSnake},
		patternCode{name: "WrigglingSnake", concealedOnly: true, matches: matchWrigglingSnake},
		tripleKnittingCode{
			patternCode: patternCode{
				name:          "TripleKnitting",
				concealedOnly: true,
				matches:       matchTripleKnitting,
			},
		},
		patternCode{name: "Knitting", concealedOnly: true, matches: matchKnitting},
		patternCode{
			name:          "AllPairHonors",
			concealedOnly: true,
			matches:       matchAllPairHonors,
			shouldTry:     tryAllPairHonors,
		},
	)
}
