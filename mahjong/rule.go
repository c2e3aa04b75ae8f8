package mahjong

import (
	"fmt"
	"strconv"
	"strings"
)

// EParType 参数规则的类型
type EParType byte

const (
	ParNone EParType = 0
	ParInt  EParType = 'i'
	ParBool EParType = 'b'
	ParStr  EParType = 's'
)

// Rule 一条记分条件。定义串形如
//
//	"FDragonPung" 或 "FStandardMahJongg||Opoints=20"
//
// 第一段以 F 开头给出规则码名，其后以 || 分隔的段以 O 开头给出选项。
type Rule struct {
	Name       string
	Definition string
	Score      Score
	ParType    EParType
	Parameter  string

	code    RuleCode
	options map[string]string
}

// NewRule 解析并绑定规则码；未知规则码属致命装载错误。
func NewRule(name, definition string, score Score) (*Rule, error) {
	if score.UnitCount() > 1 {
		return nil, fmt.Errorf("rule %s: more than one score unit in %s", name, score)
	}
	r := &Rule{
		Name:       name,
		Definition: definition,
		Score:      score,
		options:    make(map[string]string),
	}
	for i, variant := range strings.Split(definition, "||") {
		if variant == "" {
			continue
		}
		switch variant[0] {
		case 'F':
			if i != 0 {
				return nil, fmt.Errorf("rule %s: misplaced rule code in %q", name, definition)
			}
			code, ok := LookupRuleCode(variant[1:])
			if !ok {
				return nil, fmt.Errorf("rule %s: unknown rule code %q", name, variant[1:])
			}
			r.code = code
		case 'O':
			for _, opt := range strings.Fields(variant[1:]) {
				key, value, _ := strings.Cut(opt, "=")
				r.options[key] = value
			}
		default:
			return nil, fmt.Errorf("rule %s: bad definition variant %q", name, variant)
		}
	}
	if r.code == nil && definition != "" {
		return nil, fmt.Errorf("rule %s: no rule code in %q", name, definition)
	}
	return r, nil
}

// NewParameterRule 规则集参数（limit、minMJPoints 等）。
func NewParameterRule(name string, parType EParType, value string) *Rule {
	return &Rule{Name: name, ParType: parType, Parameter: value}
}

func (r *Rule) Option(key string) (string, bool) {
	v, ok := r.options[key]
	return v, ok
}

func (r *Rule) HasOption(key string) bool {
	_, ok := r.options[key]
	return ok
}

// IntOption 数值选项；缺失时返回 def。
func (r *Rule) IntOption(key string, def int) int {
	v, ok := r.options[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// PayForAll 违例者单付全桌（Dangerous Game 类规则）。
func (r *Rule) PayForAll() bool {
	return r.HasOption("payforall")
}

func (r *Rule) IntValue() int {
	n, _ := strconv.Atoi(r.Parameter)
	return n
}

func (r *Rule) BoolValue() bool {
	return r.Parameter == "1" || strings.EqualFold(r.Parameter, "true")
}

func (r *Rule) StrValue() string {
	return r.Parameter
}

// 规则能力探测；缺失的钩子视为无效果。

func (r *Rule) AppliesToHand(h *Hand) bool {
	if c, ok := r.code.(HandChecker); ok {
		return h.cached(r, "hand", func() bool { return c.AppliesToHand(h) })
	}
	return false
}

func (r *Rule) MayApplyToMeld(m *Meld) bool {
	if c, ok := r.code.(MeldFilter); ok {
		return c.MayApplyToMeld(m)
	}
	_, isMeld := r.code.(MeldChecker)
	return isMeld
}

func (r *Rule) AppliesToMeld(h *Hand, m *Meld) bool {
	if c, ok := r.code.(MeldChecker); ok {
		return c.AppliesToMeld(h, m)
	}
	return false
}

func (r *Rule) WinningTileCandidates(h *Hand) TileList {
	if c, ok := r.code.(MJChecker); ok {
		return c.WinningTileCandidates(h)
	}
	return nil
}

func (r *Rule) Rearrange(h *Hand, rest TileList, yield func(MeldList, TileList) bool) {
	if c, ok := r.code.(Rearranger); ok {
		c.Rearrange(h, rest, yield)
	}
}

func (r *Rule) ShouldTry(h *Hand, maxMissing int) bool {
	if c, ok := r.code.(TryChecker); ok {
		return c.ShouldTry(h, maxMissing)
	}
	return false
}

func (r *Rule) Weigh(h *Hand, candidates DiscardCandidates) {
	if c, ok := r.code.(Weigher); ok {
		c.Weigh(h, candidates)
	}
}

func (r *Rule) Claimness(h *Hand, discard Tile) Claimness {
	if c, ok := r.code.(Claimer); ok {
		return c.Claimness(h, discard)
	}
	return nil
}

func (r *Rule) Rotate(g RotationGame) bool {
	if c, ok := r.code.(Rotator); ok {
		return c.Rotate(g)
	}
	return false
}

func (r *Rule) ComputeLastMelds(h *Hand) MeldList {
	if c, ok := r.code.(LastMelder); ok {
		return c.ComputeLastMelds(h)
	}
	return nil
}

func (r *Rule) Selectable(h *Hand) bool {
	if c, ok := r.code.(Selectable); ok {
		return c.SelectableByHand(h)
	}
	return false
}

func (r *Rule) String() string {
	return r.Name
}
