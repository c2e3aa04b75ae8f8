package mahjong

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// 规则表编号，持久化时写入 rule.list 列。
const (
	ListMeld = iota + 1
	ListHand
	ListMJ
	ListWinner
	ListLoser
	ListParameter
	ListPenalty
)

var listNames = map[int]string{
	ListMeld:      "meld",
	ListHand:      "hand",
	ListMJ:        "mj",
	ListWinner:    "winner",
	ListLoser:     "loser",
	ListParameter: "parameter",
	ListPenalty:   "penalty",
}

// RuleList 有序规则表；按名字索引，重名添加即替换。
type RuleList struct {
	ListID int
	rules  []*Rule
	byName map[string]int
}

func NewRuleList(listID int) *RuleList {
	return &RuleList{ListID: listID, byName: make(map[string]int)}
}

func (rl *RuleList) Add(r *Rule) {
	if i, ok := rl.byName[r.Name]; ok {
		rl.rules[i] = r
		return
	}
	rl.byName[r.Name] = len(rl.rules)
	rl.rules = append(rl.rules, r)
}

func (rl *RuleList) Get(name string) *Rule {
	if i, ok := rl.byName[name]; ok {
		return rl.rules[i]
	}
	return nil
}

func (rl *RuleList) Remove(name string) {
	i, ok := rl.byName[name]
	if !ok {
		return
	}
	rl.rules = slices.Delete(rl.rules, i, i+1)
	delete(rl.byName, name)
	for n, j := range rl.byName {
		if j > i {
			rl.byName[n] = j - 1
		}
	}
}

func (rl *RuleList) Rules() []*Rule {
	return rl.rules
}

func (rl *RuleList) Len() int {
	return len(rl.rules)
}

// RuleRow 持久化形态的一行规则，对应 rule 表。
type RuleRow struct {
	List       int
	Position   int
	Name       string
	Definition string
	Points     int
	Doubles    int
	Limits     float64
	Parameter  string
}

// Ruleset 规则集；哈希即身份。
type Ruleset struct {
	Name        string
	Description string

	MeldRules      *RuleList
	HandRules      *RuleList
	MJRules        *RuleList
	WinnerRules    *RuleList
	LoserRules     *RuleList
	ParameterRules *RuleList
	PenaltyRules   *RuleList

	// 参数规则的解析结果
	Limit                  int
	RoofOff                bool
	MinMJPoints            int
	MinMJDoubles           int
	MaxChows               int
	MinRounds              int
	WithBonusTiles         bool
	MustDeclareCallingHand bool
	ClaimTimeout           time.Duration
	DiscardTilesOrdered    bool
	DiscardLeaveHole       bool
	SeatExchange           string

	hash string
}

func NewRuleset(name string) *Ruleset {
	rs := &Ruleset{
		Name:           name,
		MeldRules:      NewRuleList(ListMeld),
		HandRules:      NewRuleList(ListHand),
		MJRules:        NewRuleList(ListMJ),
		WinnerRules:    NewRuleList(ListWinner),
		LoserRules:     NewRuleList(ListLoser),
		ParameterRules: NewRuleList(ListParameter),
		PenaltyRules:   NewRuleList(ListPenalty),

		Limit:        500,
		MaxChows:     4,
		MinRounds:    4,
		ClaimTimeout: 10 * time.Second,
		SeatExchange: "SWEN,SE,WE",
	}
	return rs
}

func (rs *Ruleset) lists() []*RuleList {
	return []*RuleList{
		rs.MeldRules, rs.HandRules, rs.MJRules, rs.WinnerRules,
		rs.LoserRules, rs.ParameterRules, rs.PenaltyRules,
	}
}

func (rs *Ruleset) list(id int) *RuleList {
	for _, rl := range rs.lists() {
		if rl.ListID == id {
			return rl
		}
	}
	return nil
}

// AddRule 添加并使哈希失效。
func (rs *Ruleset) AddRule(listID int, r *Rule) {
	rs.list(listID).Add(r)
	rs.hash = ""
	if listID == ListParameter {
		rs.applyParameter(r)
	}
}

func (rs *Ruleset) RemoveRule(listID int, name string) {
	rs.list(listID).Remove(name)
	rs.hash = ""
}

func (rs *Ruleset) FindRule(name string) *Rule {
	for _, rl := range rs.lists() {
		if r := rl.Get(name); r != nil {
			return r
		}
	}
	return nil
}

// Hash 稳定的 MD5：对排序后的 (list, name, definition, score, parameter) 串。
func (rs *Ruleset) Hash() string {
	if rs.hash != "" {
		return rs.hash
	}
	var parts []string
	for _, row := range rs.Rows() {
		parts = append(parts, fmt.Sprintf("%d\x00%s\x00%s\x00%d\x00%d\x00%g\x00%s",
			row.List, row.Name, row.Definition, row.Points, row.Doubles, row.Limits, row.Parameter))
	}
	sort.Strings(parts)
	sum := md5.Sum([]byte(strings.Join(parts, "\x01")))
	rs.hash = hex.EncodeToString(sum[:])
	return rs.hash
}

// Rows 持久化形态。
func (rs *Ruleset) Rows() []RuleRow {
	var rows []RuleRow
	for _, rl := range rs.lists() {
		for pos, r := range rl.Rules() {
			par := r.Parameter
			if r.ParType != ParNone {
				par = string(r.ParType) + par
			}
			rows = append(rows, RuleRow{
				List:       rl.ListID,
				Position:   pos,
				Name:       r.Name,
				Definition: r.Definition,
				Points:     r.Score.Points,
				Doubles:    r.Score.Doubles,
				Limits:     r.Score.Limits,
				Parameter:  par,
			})
		}
	}
	return rows
}

// LoadRows 由行序列重建规则集；任何无法解析的规则都使装载失败。
func LoadRows(name string, rows []RuleRow) (*Ruleset, error) {
	rs := NewRuleset(name)
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b RuleRow) int {
		if a.List != b.List {
			return a.List - b.List
		}
		return a.Position - b.Position
	})
	for _, row := range sorted {
		rl := rs.list(row.List)
		if rl == nil {
			return nil, fmt.Errorf("ruleset %s: unknown rule list %d", name, row.List)
		}
		if row.List == ListParameter {
			if row.Parameter == "" {
				return nil, fmt.Errorf("ruleset %s: parameter rule %s without value", name, row.Name)
			}
			r := NewParameterRule(row.Name, EParType(row.Parameter[0]), row.Parameter[1:])
			rs.AddRule(row.List, r)
			continue
		}
		r, err := NewRule(row.Name, row.Definition,
			Score{Points: row.Points, Doubles: row.Doubles, Limits: row.Limits})
		if err != nil {
			return nil, fmt.Errorf("ruleset %s: %w", name, err)
		}
		if row.List == ListPenalty {
			if err := validatePenalty(r); err != nil {
				return nil, fmt.Errorf("ruleset %s: %w", name, err)
			}
		}
		rs.AddRule(row.List, r)
	}
	return rs, nil
}

// 参数规则名到字段的落位。
func (rs *Ruleset) applyParameter(r *Rule) {
	switch r.Name {
	case "limit":
		rs.Limit = r.IntValue()
	case "roofOff":
		rs.RoofOff = r.BoolValue()
	case "minMJPoints":
		rs.MinMJPoints = r.IntValue()
	case "minMJDoubles":
		rs.MinMJDoubles = r.IntValue()
	case "maxChows":
		rs.MaxChows = r.IntValue()
	case "minRounds":
		rs.MinRounds = r.IntValue()
	case "withBonusTiles":
		rs.WithBonusTiles = r.BoolValue()
	case "mustDeclareCallingHand":
		rs.MustDeclareCallingHand = r.BoolValue()
	case "claimTimeout":
		rs.ClaimTimeout = time.Duration(r.IntValue()) * time.Millisecond
	case "discardTilesOrdered":
		rs.DiscardTilesOrdered = r.BoolValue()
	case "discardTilesOrderedLeaveHole":
		rs.DiscardLeaveHole = r.BoolValue()
	case "seatExchange":
		rs.SeatExchange = r.StrValue()
	}
}

func (rs *Ruleset) addIntParameter(name string, value int) {
	rs.AddRule(ListParameter, NewParameterRule(name, ParInt, strconv.Itoa(value)))
}

func (rs *Ruleset) addBoolParameter(name string, value bool) {
	v := "0"
	if value {
		v = "1"
	}
	rs.AddRule(ListParameter, NewParameterRule(name, ParBool, v))
}

func (rs *Ruleset) addStrParameter(name, value string) {
	rs.AddRule(ListParameter, NewParameterRule(name, ParStr, value))
}

// validatePenalty 罚则需要协调的付/收人数。
func validatePenalty(r *Rule) error {
	payers := r.IntOption("payers", 1)
	payees := r.IntOption("payees", 1)
	if payers < 1 || payees < 1 || payers+payees > 4 {
		return fmt.Errorf("penalty %s: invalid payers=%d payees=%d", r.Name, payers, payees)
	}
	return nil
}

// Copy 深拷贝（独立哈希），用于另存与 roofOff 变体。
func (rs *Ruleset) Copy(name string) *Ruleset {
	clone, err := LoadRows(name, rs.Rows())
	if err != nil {
		// Rows 出自一个已装载的规则集，重建不应失败。
		panic(err)
	}
	clone.Description = rs.Description
	return clone
}

var (
	predefinedBuilders []func() *Ruleset
	predefinedRulesets []*Ruleset
	predefinedOnce     sync.Once
)

// RegisterRuleset 在 init 阶段登记预定义规则集的构造函数。
// 构造延迟到首次访问，此时全部规则码已注册完毕。
func RegisterRuleset(build func() *Ruleset) {
	predefinedBuilders = append(predefinedBuilders, build)
}

// PredefinedRulesets 登记过的内建规则集。
func PredefinedRulesets() []*Ruleset {
	predefinedOnce.Do(func() {
		for _, build := range predefinedBuilders {
			predefinedRulesets = append(predefinedRulesets, build())
		}
	})
	return slices.Clone(predefinedRulesets)
}

// PredefinedRuleset 按名查找。
func PredefinedRuleset(name string) *Ruleset {
	for _, rs := range PredefinedRulesets() {
		if rs.Name == name {
			return rs
		}
	}
	return nil
}

func ListName(listID int) string {
	return listNames[listID]
}
