package mahjong

// WinningTiles 听牌候选：各和牌规则候选集的并，再以真实评分剪枝。
// 仅对 lenOffset==0 的手有意义。
func (h *Hand) WinningTiles() TileList {
	if h.cache.hasWinning {
		return h.cache.winningTiles
	}
	h.cache.hasWinning = true
	if h.LenOffset() != 0 {
		return nil
	}
	var candidates TileList
	for _, rule := range h.Ruleset.MJRules.Rules() {
		for _, t := range rule.WinningTileCandidates(h) {
			if !candidates.Contains(t) {
				candidates = append(candidates, t.Exposed())
			}
		}
	}
	var winning TileList
	var hands []*Hand
	for _, t := range candidates.Sorted() {
		full, err := h.WithWinningTile(t)
		if err != nil {
			continue
		}
		if full.Won() {
			winning = append(winning, t)
			hands = append(hands, full)
		}
	}
	h.cache.winningTiles = winning
	h.cache.callingHands = hands
	return winning
}

// CallingHands 每个听张对应的假想和牌手。
func (h *Hand) CallingHands() []*Hand {
	h.WinningTiles()
	return h.cache.callingHands
}

// ChancesToWin 和 WinningTiles 相同，但按墙上可能剩余的张数展开权重：
// 每种听张按 4 减去手中已见张数计。
func (h *Hand) ChancesToWin() int {
	chances := 0
	counts := allCounts(h)
	for _, t := range h.WinningTiles() {
		chances += SameTileCountByGroup[t.Group()] - counts[t.Key()]
	}
	return chances
}
