package mahjong

import (
	"slices"
	"strings"
)

// analyze 完成分析主流程：枚举暗牌拆分，逐一评分，取最优。
func (h *Hand) analyze() {
	best := -1
	var bestMelds MeldList
	var bestResult evalResult
	for _, melds := range h.arrangements() {
		candidate := h.shallowCopy()
		candidate.arranged = melds
		result := candidate.evaluate()
		total := result.score.Total(h.Ruleset)
		if better(total, result, best, bestResult, melds, bestMelds) {
			best = total
			bestMelds = melds
			bestResult = result
		}
	}
	h.arranged = bestMelds
	h.won = bestResult.won
	h.mjRule = bestResult.mjRule
	h.score = bestResult.score
	h.used = bestResult.used
}

// better 最高总分优先；同分取较少番，再按面子序串定序。
func better(total int, r evalResult, bestTotal int, bestR evalResult, melds, bestMelds MeldList) bool {
	if bestTotal < 0 {
		return true
	}
	if total != bestTotal {
		return total > bestTotal
	}
	if r.score.Doubles != bestR.score.Doubles {
		return r.score.Doubles < bestR.score.Doubles
	}
	return strings.Compare(melds.String(), bestMelds.String()) < 0
}

// arrangements 暗牌的候选拆分：先问各和牌规则的 Rearrange，再以通用排列兜底。
func (h *Hand) arrangements() []MeldList {
	var res []MeldList
	seen := make(map[string]struct{})
	add := func(melds MeldList, rest TileList) bool {
		full := slices.Clone(melds)
		if len(rest) > 0 {
			full = append(full, newRest(rest.Sorted()))
		}
		full = full.Sorted()
		key := full.String()
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
		res = append(res, full)
		return true
	}

	for _, rule := range h.Ruleset.MJRules.Rules() {
		if _, isTry := rule.code.(TryChecker); isTry && !rule.ShouldTry(h, 2) {
			continue
		}
		rule.Rearrange(h, h.Concealed, add)
	}
	Permutations(h.Concealed, h.Ruleset.MaxChows, func(melds MeldList) bool {
		return add(melds, nil)
	})
	if len(res) == 0 {
		res = append(res, MeldList{})
	}
	return res
}

type evalResult struct {
	won    bool
	mjRule *Rule
	score  Score
	used   []UsedRule
}

// evaluate 对一个具体拆分计分（analyzer 第 4 步）。
func (h *Hand) evaluate() evalResult {
	var base []UsedRule
	melds := h.Melds()
	if h.Ruleset.WithBonusTiles {
		for _, b := range h.Bonus {
			melds = append(melds, SingleMeld(b))
		}
	}
	for _, meld := range melds {
		for _, rule := range h.Ruleset.MeldRules.Rules() {
			if rule.MayApplyToMeld(meld) && rule.AppliesToMeld(h, meld) {
				base = append(base, UsedRule{Rule: rule, Meld: meld})
			}
		}
	}
	for _, rule := range h.Ruleset.HandRules.Rules() {
		if rule.AppliesToHand(h) {
			base = append(base, UsedRule{Rule: rule})
		}
	}
	for _, rule := range h.Manual {
		base = append(base, UsedRule{Rule: rule})
	}

	if h.MJDeclared {
		if result, ok := h.evaluateWon(base); ok {
			return result
		}
	}

	used := base
	for _, rule := range h.Ruleset.LoserRules.Rules() {
		if rule.AppliesToHand(h) {
			used = append(used, UsedRule{Rule: rule})
		}
	}
	return evalResult{score: sumScore(used), used: used}
}

// evaluateWon 依次尝试和牌规则，满足门槛者中取总分最高。
func (h *Hand) evaluateWon(base []UsedRule) (evalResult, bool) {
	best := evalResult{}
	found := false
	for _, mjRule := range h.Ruleset.MJRules.Rules() {
		if !mjRule.AppliesToHand(h) {
			continue
		}
		used := slices.Clone(base)
		used = append(used, UsedRule{Rule: mjRule})
		for _, rule := range h.Ruleset.WinnerRules.Rules() {
			if rule.AppliesToHand(h) {
				used = append(used, UsedRule{Rule: rule})
			}
		}
		score := sumScore(used)
		if score.Total(h.Ruleset) < h.Ruleset.MinMJPoints && score.Limits == 0 {
			continue
		}
		if score.Doubles < h.Ruleset.MinMJDoubles && score.Limits == 0 {
			continue
		}
		result := evalResult{won: true, mjRule: mjRule, score: score, used: used}
		if !found || result.score.Total(h.Ruleset) > best.score.Total(h.Ruleset) {
			best = result
			found = true
		}
	}
	return best, found
}

func sumScore(used []UsedRule) Score {
	var score Score
	for _, u := range used {
		score = score.Add(u.Rule.Score)
	}
	return score
}
