package mahjong

import "slices"

// Permutations 枚举把牌多重集合划分成面子的所有方式。
// 每次取剩余最小的一张，尝试以它开头的每种兼容面子；
// 超过 maxChows 的分支剪掉，结果按规范排序去重。
// yield 返回 false 时停止枚举。
func Permutations(tiles TileList, maxChows int, yield func(MeldList) bool) {
	if len(tiles) == 0 {
		yield(MeldList{})
		return
	}
	seen := make(map[string]struct{})
	stopped := false
	var recurse func(rest TileList, melds MeldList, chows int)
	recurse = func(rest TileList, melds MeldList, chows int) {
		if stopped {
			return
		}
		if len(rest) == 0 {
			sorted := melds.Sorted()
			key := sorted.String()
			if _, ok := seen[key]; ok {
				return
			}
			seen[key] = struct{}{}
			if !yield(sorted) {
				stopped = true
			}
			return
		}
		first := rest[0]
		for _, m := range meldsStartingWith(first, rest) {
			nextChows := chows
			if m.IsChow() {
				nextChows++
				if nextChows > maxChows {
					continue
				}
			}
			branch := append(slices.Clone(melds), m)
			recurse(rest.RemovedAll(m.Tiles()), branch, nextChows)
		}
	}
	recurse(tiles.Sorted(), nil, 0)
}

// meldsStartingWith 以 first 开头、可由 rest 凑出的面子。
func meldsStartingWith(first Tile, rest TileList) MeldList {
	var res MeldList
	count := rest.Count(first)
	res = append(res, SingleMeld(first))
	if count >= 2 {
		res = append(res, PairMeld(first))
	}
	if count >= 3 {
		res = append(res, PungMeld(first))
	}
	if count >= 4 {
		res = append(res, KongMeld(first))
	}
	if chow := ChowMeld(first); chow != nil {
		if rest.Contains(chow.Tiles()[1]) && rest.Contains(chow.Tiles()[2]) {
			res = append(res, chow)
		}
	}
	return res
}
