package mahjong

import "fmt"

// RuleCode 规则谓词的最小接口；其余能力按可选接口提供。
// 注册表在包初始化时填充，之后只读。
type RuleCode interface {
	CodeName() string
}

// HandChecker 整手牌谓词
type HandChecker interface {
	AppliesToHand(h *Hand) bool
}

// MeldChecker 单面子谓词；hand 提供上下文（圈风门风等）。
type MeldChecker interface {
	AppliesToMeld(h *Hand, m *Meld) bool
}

// MeldFilter 不依赖上下文的预筛选
type MeldFilter interface {
	MayApplyToMeld(m *Meld) bool
}

// MJChecker 和牌规则：判定成和并给出听牌候选。
type MJChecker interface {
	HandChecker
	WinningTileCandidates(h *Hand) TileList
}

// Rearranger 将暗牌剩余部分组织为面子的惰性枚举；yield 返回 false 即停止。
type Rearranger interface {
	Rearrange(h *Hand, rest TileList, yield func(melds MeldList, rest TileList) bool)
}

// TryChecker AI 是否值得朝该牌型努力
type TryChecker interface {
	ShouldTry(h *Hand, maxMissing int) bool
}

// Weigher 出牌 AI 权重钩子
type Weigher interface {
	Weigh(h *Hand, candidates DiscardCandidates)
}

// Claimer 鸣牌意愿钩子
type Claimer interface {
	Claimness(h *Hand, discard Tile) Claimness
}

// Rotator 影响换风的规则（如东连庄九次终局）。
type Rotator interface {
	Rotate(g RotationGame) bool
}

// RotationGame 换风规则所需的对局视图，由 game 包实现。
type RotationGame interface {
	EastWinStreak() int
	WinnerWind() Tile
}

// LastMelder 和牌规则给出最后面子的可选解释。
type LastMelder interface {
	ComputeLastMelds(h *Hand) MeldList
}

// Selectable 可由计分者手工勾选的规则（如 Dangerous Game）。
type Selectable interface {
	SelectableByHand(h *Hand) bool
}

var ruleCodes = make(map[string]RuleCode)

// RegisterRuleCode 在 init 阶段登记规则实现；重复登记视为编程错误。
func RegisterRuleCode(codes ...RuleCode) {
	for _, code := range codes {
		name := code.CodeName()
		if _, ok := ruleCodes[name]; ok {
			panic(fmt.Sprintf("rule code %q registered twice", name))
		}
		ruleCodes[name] = code
	}
}

// LookupRuleCode 供规则定义解析使用。
func LookupRuleCode(name string) (RuleCode, bool) {
	code, ok := ruleCodes[name]
	return code, ok
}
