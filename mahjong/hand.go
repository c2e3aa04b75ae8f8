package mahjong

import (
	"fmt"
	"slices"
	"strings"
)

// ESource 最后一张牌的来源
type ESource byte

const (
	SourceNone            ESource = 0
	SourceWall            ESource = 'w' // 牌墙自摸
	SourceDiscard         ESource = 'd' // 他家打出
	SourceWallEnd         ESource = 'z' // 牌墙最后一张
	SourceWallEndDiscard  ESource = 'Z' // 最后一张被打出
	SourceDeadWall        ESource = 'e' // 杠上开花（死墙补张）
	SourceRobbedKong      ESource = 'k' // 抢杠
	SourceEast14th        ESource = '1' // 庄家起手第 14 张
)

const sourceChars = "wdzZek1"

const (
	// Announcements
	AnnounceOriginalCall   = 'a'
	AnnounceTwofoldFortune = 't'
)

// UsedRule 一条实际生效的规则；面子规则附带其面子。
type UsedRule struct {
	Rule *Rule
	Meld *Meld
}

// Hand 一次评分输入的不可变快照。
// 所有派生结果在构造期间算出；Hand 本身不再变化。
type Hand struct {
	Ruleset  *Ruleset
	OwnWind  Tile
	RoundWind Tile

	Declared  MeldList // 副露（含花牌面子）
	Concealed TileList // 暗牌，有序
	Bonus     TileList
	LastTile  Tile
	LastMeld  *Meld
	LastSource ESource
	Announcements string
	MJDeclared bool
	Manual     []*Rule // 人工选定的规则（危局、罚则），无谓词、直接生效

	arranged MeldList // 选定的暗牌拆分
	won      bool
	mjRule   *Rule
	score    Score
	used     []UsedRule

	str   string
	cache *handCache
}

// handCache 规则结果按 (规则名, 钩子名) 记忆化；Hand 不可变，缓存自然有效。
type handCache struct {
	applies      map[string]bool
	winningTiles TileList
	hasWinning   bool
	callingHands []*Hand
}

func newHandCache() *handCache {
	return &handCache{applies: make(map[string]bool)}
}

func (h *Hand) cached(r *Rule, fn string, f func() bool) bool {
	key := r.Name + "\x00" + fn
	if v, ok := h.cache.applies[key]; ok {
		return v
	}
	v := f()
	h.cache.applies[key] = v
	return v
}

// NewHand 解析手牌描述串并完成全部分析。
func NewHand(rs *Ruleset, desc string, manual ...*Rule) (*Hand, error) {
	h := &Hand{
		Ruleset:   rs,
		OwnWind:   TileWindEast,
		RoundWind: TileWindEast,
		LastTile:  TileNull,
		Manual:    manual,
		cache:     newHandCache(),
	}
	if err := h.parse(desc); err != nil {
		return nil, err
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	h.analyze()
	return h, nil
}

func (h *Hand) parse(desc string) error {
	for _, token := range strings.Fields(desc) {
		switch {
		case token[0] == 'R' || token[0] == 'r':
			tiles, err := ParseTiles(token[1:])
			if err != nil {
				return err
			}
			h.Concealed = append(h.Concealed, tiles.Concealed()...)
		case token[0] == 'M' || token[0] == 'm':
			if err := h.parseContext(token); err != nil {
				return err
			}
		case token[0] == 'L':
			if err := h.parseLast(token); err != nil {
				return err
			}
		case len(token) == 2 && (token[0] == 'f' || token[0] == 'y'):
			t, err := ParseTile(token)
			if err != nil {
				return err
			}
			h.Bonus = append(h.Bonus, t)
		default:
			meld, err := ParseMeld(token)
			if err != nil {
				return err
			}
			if meld.IsBonus() {
				h.Bonus = append(h.Bonus, meld.First())
			} else {
				h.Declared = append(h.Declared, meld)
			}
		}
	}
	h.Concealed = h.Concealed.Sorted()
	h.Bonus = h.Bonus.Sorted()
	return nil
}

// parseContext 解析 m/M 旗标：'M' 声明和牌；随后两字符为门风与圈风，
// 余下字符为最后一张来源与宣告。
func (h *Hand) parseContext(token string) error {
	h.MJDeclared = token[0] == 'M'
	if len(token) < 3 {
		return fmt.Errorf("malformed context %q", token)
	}
	h.OwnWind = WindTile(token[1])
	h.RoundWind = WindTile(token[2])
	if h.OwnWind == TileNull || h.RoundWind == TileNull {
		return fmt.Errorf("bad winds in context %q", token)
	}
	for _, c := range token[3:] {
		switch {
		case strings.ContainsRune(sourceChars, c):
			h.LastSource = ESource(c)
		case c == AnnounceOriginalCall || c == AnnounceTwofoldFortune:
			h.Announcements += string(c)
		default:
			return fmt.Errorf("bad context flag %q in %q", c, token)
		}
	}
	return nil
}

func (h *Hand) parseLast(token string) error {
	if len(token) < 3 {
		return fmt.Errorf("malformed last tile %q", token)
	}
	tile, err := ParseTile(token[1:3])
	if err != nil {
		return err
	}
	h.LastTile = tile
	if len(token) > 3 {
		meld, err := ParseMeld(token[3:])
		if err != nil {
			return err
		}
		h.LastMeld = meld
	}
	return nil
}

func (h *Hand) validate() error {
	bigMelds := 0
	for _, m := range h.Declared {
		if m.IsRest() {
			return fmt.Errorf("declared meld %s has no structure", m)
		}
		if m.Len() >= 3 {
			bigMelds++
		}
	}
	if bigMelds > 4 {
		return fmt.Errorf("too many declared melds: %d", bigMelds)
	}
	offset := h.LenOffset()
	if offset < -13 || offset > 1 {
		return fmt.Errorf("impossible tile count: offset %d", offset)
	}
	if h.MJDeclared && offset != 1 {
		return fmt.Errorf("mah jongg declared with %d tiles missing", 1-offset)
	}
	if h.LastTile.IsKnown() && !h.LastTile.IsBonus() {
		all := append(slices.Clone(h.Concealed), h.Declared.Tiles()...)
		if !all.Contains(h.LastTile) {
			return fmt.Errorf("last tile %s not in hand", h.LastTile)
		}
	}
	for t, n := range allCounts(h) {
		if !t.IsKnown() {
			return fmt.Errorf("unknown tile %s in hand", t)
		}
		if n > SameTileCountByGroup[t.Group()] {
			return fmt.Errorf("too many tiles %s: %d", t, n)
		}
	}
	return nil
}

func allCounts(h *Hand) map[Tile]int {
	m := h.Concealed.CountsByKey()
	for t, n := range h.Declared.Tiles().CountsByKey() {
		m[t] += n
	}
	for t, n := range h.Bonus.CountsByKey() {
		m[t] += n
	}
	return m
}

// LenOffset 牌数相对 13 的偏移；杠多出的一张不计。和牌为 +1。
func (h *Hand) LenOffset() int {
	total := len(h.Concealed)
	for _, m := range h.Declared {
		total += m.Len()
		if m.IsKong() {
			total--
		}
	}
	return total - 13
}

// Melds 选定拆分后的全部面子（副露在前）。
func (h *Hand) Melds() MeldList {
	res := slices.Clone(h.Declared)
	return append(res, h.arranged...)
}

func (h *Hand) Won() bool        { return h.won }
func (h *Hand) Score() Score     { return h.score }
func (h *Hand) MJRule() *Rule    { return h.mjRule }
func (h *Hand) UsedRules() []UsedRule { return h.used }

// Total 数值总分。
func (h *Hand) Total() int {
	return h.score.Total(h.Ruleset)
}

// HasAnnouncement 是否带宣告（a=原叫, t=双重机缘）。
func (h *Hand) HasAnnouncement(c byte) bool {
	return strings.IndexByte(h.Announcements, c) >= 0
}

// SuitGroups 手上出现的数牌花色。
func (h *Hand) SuitGroups() []EGroup {
	all := append(slices.Clone(h.Concealed), h.Declared.Tiles()...)
	return all.Groups()
}

// AllTilesInHand 除花牌外的全部牌。
func (h *Hand) AllTilesInHand() TileList {
	return append(slices.Clone(h.Concealed), h.Declared.Tiles()...)
}

// IsCalling 是否听牌（差一张成和）。
func (h *Hand) IsCalling() bool {
	return len(h.WinningTiles()) > 0
}

// String 规范串；parse(format(h)) 在面子次序意义下与 h 相等。
func (h *Hand) String() string {
	if h.str != "" {
		return h.str
	}
	var parts []string
	for _, m := range h.Declared {
		parts = append(parts, m.String())
	}
	if len(h.Concealed) > 0 {
		parts = append(parts, "R"+h.Concealed.String())
	}
	for _, b := range h.Bonus {
		parts = append(parts, b.Exposed().String())
	}
	ctx := "m"
	if h.MJDeclared {
		ctx = "M"
	}
	ctx += string(h.OwnWind.WindChar()) + string(h.RoundWind.WindChar())
	if h.LastSource != SourceNone {
		ctx += string(h.LastSource)
	}
	ctx += h.Announcements
	parts = append(parts, ctx)
	if h.LastTile.IsKnown() {
		last := "L" + h.LastTile.String()
		if h.LastMeld != nil {
			last += h.LastMeld.String()
		}
		parts = append(parts, last)
	}
	h.str = strings.Join(parts, " ")
	return h.str
}

// Equal 上下文与牌内容相等（面子次序无关）。
func (h *Hand) Equal(other *Hand) bool {
	return h.OwnWind == other.OwnWind && h.RoundWind == other.RoundWind &&
		h.MJDeclared == other.MJDeclared &&
		h.LastTile == other.LastTile && h.LastSource == other.LastSource &&
		h.Announcements == other.Announcements &&
		slices.Equal(h.Concealed, other.Concealed) &&
		slices.Equal(h.Bonus, other.Bonus) &&
		h.Declared.Sorted().String() == other.Declared.Sorted().String()
}

// Sub 去掉一张暗牌得到新 Hand（负号算子）。
func (h *Hand) Sub(tile Tile) (*Hand, error) {
	clone := h.shallowCopy()
	clone.Concealed = h.Concealed.Removed(tile.Concealed())
	if len(clone.Concealed) == len(h.Concealed) {
		return nil, fmt.Errorf("tile %s not in hand", tile)
	}
	clone.MJDeclared = false
	if clone.LastTile.Key() == tile.Key() {
		clone.LastTile = TileNull
		clone.LastMeld = nil
	}
	if err := clone.validate(); err != nil {
		return nil, err
	}
	clone.analyze()
	return clone, nil
}

// WithWinningTile 加上一张候选牌并按声明和牌重新分析。
func (h *Hand) WithWinningTile(tile Tile) (*Hand, error) {
	clone := h.shallowCopy()
	clone.Concealed = append(slices.Clone(h.Concealed), tile.Concealed())
	clone.Concealed = clone.Concealed.Sorted()
	clone.LastTile = tile.Concealed()
	clone.LastMeld = nil
	clone.MJDeclared = true
	if clone.LastSource == SourceNone {
		clone.LastSource = SourceWall
	}
	if err := clone.validate(); err != nil {
		return nil, err
	}
	clone.analyze()
	return clone, nil
}

func (h *Hand) shallowCopy() *Hand {
	return &Hand{
		Ruleset:       h.Ruleset,
		OwnWind:       h.OwnWind,
		RoundWind:     h.RoundWind,
		Declared:      slices.Clone(h.Declared),
		Concealed:     h.Concealed,
		Bonus:         h.Bonus,
		LastTile:      h.LastTile,
		LastMeld:      h.LastMeld,
		LastSource:    h.LastSource,
		Announcements: h.Announcements,
		MJDeclared:    h.MJDeclared,
		Manual:        h.Manual,
		cache:         newHandCache(),
	}
}
