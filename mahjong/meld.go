package mahjong

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// EMeldKind 面子分类
type EMeldKind int

const (
	MeldInvalid EMeldKind = iota
	MeldSingle
	MeldPair
	MeldChow
	MeldPung
	MeldKong
	MeldClaimedKong
	MeldConcealedKong
	MeldKnittedPair // 同点数跨两色
	MeldKnittedTriple
	MeldBonus
	MeldRest // 无结构剩余，仅用于排列中间态
)

var meldKindNames = map[EMeldKind]string{
	MeldSingle:        "single",
	MeldPair:          "pair",
	MeldChow:          "chow",
	MeldPung:          "pung",
	MeldKong:          "kong",
	MeldClaimedKong:   "claimed kong",
	MeldConcealedKong: "concealed kong",
	MeldKnittedPair:   "knitted pair",
	MeldKnittedTriple: "knitted triple",
	MeldBonus:         "bonus",
	MeldRest:          "rest",
}

func (k EMeldKind) String() string {
	if name, ok := meldKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Meld 不可变面子；按规范串在进程级缓存中驻留。
type Meld struct {
	tiles TileList
	kind  EMeldKind
	key   string
}

var (
	meldCacheMu sync.RWMutex
	meldCache   = make(map[string]*Meld)
)

// NewMeld 由有序牌序列构造面子；不合法组合返回错误。
func NewMeld(tiles TileList) (*Meld, error) {
	key := tiles.String()
	meldCacheMu.RLock()
	m, ok := meldCache[key]
	meldCacheMu.RUnlock()
	if ok {
		return m, nil
	}

	kind := classify(tiles)
	if kind == MeldInvalid {
		return nil, fmt.Errorf("cannot make a meld from %q", key)
	}
	m = &Meld{tiles: slices.Clone(tiles), kind: kind, key: key}
	meldCacheMu.Lock()
	meldCache[key] = m
	meldCacheMu.Unlock()
	return m, nil
}

// newRest 把无结构的剩余牌也包装成 Meld，供排列器传递。
func newRest(tiles TileList) *Meld {
	key := "R" + tiles.String()
	meldCacheMu.RLock()
	m, ok := meldCache[key]
	meldCacheMu.RUnlock()
	if ok {
		return m
	}
	m = &Meld{tiles: slices.Clone(tiles), kind: MeldRest, key: key}
	meldCacheMu.Lock()
	meldCache[key] = m
	meldCacheMu.Unlock()
	return m
}

// ParseMeld 解析一个面子串，如 "c1c1c1" 或 "DrDr"。
func ParseMeld(s string) (*Meld, error) {
	tiles, err := ParseTiles(s)
	if err != nil {
		return nil, err
	}
	return NewMeld(tiles)
}

func classify(tiles TileList) EMeldKind {
	switch len(tiles) {
	case 1:
		if tiles[0].IsBonus() {
			return MeldBonus
		}
		if tiles[0].IsKnown() {
			return MeldSingle
		}
	case 2:
		return classify2(tiles)
	case 3:
		return classify3(tiles)
	case 4:
		return classify4(tiles)
	}
	return MeldInvalid
}

func classify2(tiles TileList) EMeldKind {
	a, b := tiles[0], tiles[1]
	if a.IsBonus() || b.IsBonus() || !a.IsKnown() || !b.IsKnown() {
		return MeldInvalid
	}
	if a.IsConcealed() != b.IsConcealed() {
		return MeldInvalid
	}
	if a.Key() == b.Key() {
		return MeldPair
	}
	if a.IsSuit() && b.IsSuit() && a.Group() != b.Group() && a.Point() == b.Point() {
		return MeldKnittedPair
	}
	return MeldInvalid
}

func classify3(tiles TileList) EMeldKind {
	if !sameExposure(tiles) {
		return MeldInvalid
	}
	a, b, c := tiles[0], tiles[1], tiles[2]
	if !a.IsKnown() || a.IsBonus() || b.IsBonus() || c.IsBonus() {
		return MeldInvalid
	}
	if a.Key() == b.Key() && b.Key() == c.Key() {
		return MeldPung
	}
	if a.IsSuit() && b.IsSuit() && c.IsSuit() {
		if a.Group() == b.Group() && b.Group() == c.Group() &&
			b.Point() == a.Point()+1 && c.Point() == b.Point()+1 {
			return MeldChow
		}
		if a.Group() != b.Group() && b.Group() != c.Group() && a.Group() != c.Group() &&
			a.Point() == b.Point() && b.Point() == c.Point() {
			return MeldKnittedTriple
		}
	}
	return MeldInvalid
}

// 杠的明暗花样：aaaa 明杠，aaaA 碰后补杠，aAAa 与全暗为暗杠。
func classify4(tiles TileList) EMeldKind {
	a := tiles[0]
	for _, t := range tiles[1:] {
		if t.Key() != a.Key() {
			return MeldInvalid
		}
	}
	if a.IsBonus() || !a.IsKnown() {
		return MeldInvalid
	}
	var pattern [4]bool
	for i, t := range tiles {
		pattern[i] = t.IsConcealed()
	}
	switch pattern {
	case [4]bool{false, false, false, false}:
		return MeldKong
	case [4]bool{false, false, false, true}:
		return MeldClaimedKong
	case [4]bool{false, true, true, false}, [4]bool{true, true, true, true}:
		return MeldConcealedKong
	}
	return MeldInvalid
}

func sameExposure(tiles TileList) bool {
	for _, t := range tiles[1:] {
		if t.IsConcealed() != tiles[0].IsConcealed() {
			return false
		}
	}
	return true
}

func (m *Meld) Kind() EMeldKind { return m.kind }
func (m *Meld) Tiles() TileList { return m.tiles }
func (m *Meld) Len() int        { return len(m.tiles) }
func (m *Meld) First() Tile     { return m.tiles[0] }
func (m *Meld) String() string  { return m.key }

func (m *Meld) IsSingle() bool { return m.kind == MeldSingle }
func (m *Meld) IsPair() bool   { return m.kind == MeldPair }
func (m *Meld) IsChow() bool   { return m.kind == MeldChow }
func (m *Meld) IsPung() bool   { return m.kind == MeldPung }
func (m *Meld) IsBonus() bool  { return m.kind == MeldBonus }
func (m *Meld) IsRest() bool   { return m.kind == MeldRest }

func (m *Meld) IsKong() bool {
	return m.kind == MeldKong || m.kind == MeldClaimedKong || m.kind == MeldConcealedKong
}

func (m *Meld) IsClaimedKong() bool { return m.kind == MeldClaimedKong }

func (m *Meld) IsKnitted() bool {
	return m.kind == MeldKnittedPair || m.kind == MeldKnittedTriple
}

// IsPungKong 刻子或杠
func (m *Meld) IsPungKong() bool {
	return m.kind == MeldPung || m.IsKong()
}

// IsConcealed 暗面子；暗杠按暗计，补杠按明计。
func (m *Meld) IsConcealed() bool {
	switch m.kind {
	case MeldConcealedKong:
		return true
	case MeldKong, MeldClaimedKong:
		return false
	default:
		return m.tiles[0].IsConcealed()
	}
}

// IsDragonMeld 箭牌对/刻/杠
func (m *Meld) IsDragonMeld() bool {
	return m.First().IsDragon() && !m.IsChow() && !m.IsKnitted()
}

func (m *Meld) IsWindMeld() bool {
	return m.First().IsWind()
}

// HasTerminals 含幺九或字牌
func (m *Meld) IsMajor() bool {
	return !m.IsBonus() && m.First().IsMajor() && (m.First().IsHonor() || m.IsPungKong() || m.IsPair() || m.IsSingle())
}

func (m *Meld) IsMinor() bool {
	return !m.IsBonus() && !m.IsMajor()
}

// Concealed / Exposed 转换后的驻留面子。
func (m *Meld) Concealed() *Meld {
	res, err := NewMeld(m.tiles.Concealed())
	if err != nil {
		return m
	}
	return res
}

func (m *Meld) Exposed() *Meld {
	res, err := NewMeld(m.tiles.Exposed())
	if err != nil {
		return m
	}
	return res
}

// 每张牌的快捷面子，排列器重度使用。

func PairMeld(t Tile) *Meld {
	m, _ := NewMeld(TileList{t, t})
	return m
}

func PungMeld(t Tile) *Meld {
	m, _ := NewMeld(TileList{t, t, t})
	return m
}

func KongMeld(t Tile) *Meld {
	m, _ := NewMeld(TileList{t, t, t, t})
	return m
}

func SingleMeld(t Tile) *Meld {
	m, _ := NewMeld(TileList{t})
	return m
}

// ChowMeld 以 t 开头的顺子；不可行返回 nil。
func ChowMeld(t Tile) *Meld {
	b, c := t.NextForChow(), t.Next2()
	if b == TileNull || c == TileNull {
		return nil
	}
	m, _ := NewMeld(TileList{t, b, c})
	return m
}

// Knitted3Meld 以 t 的点数跨三色的组合。
func Knitted3Meld(t Tile) *Meld {
	if !t.IsSuit() {
		return nil
	}
	tiles := make(TileList, 0, 3)
	for g := GroupStone; g <= GroupCharacter; g++ {
		n := MakeTile(g, t.Point())
		if t.IsConcealed() {
			n = n.Concealed()
		}
		tiles = append(tiles, n)
	}
	m, _ := NewMeld(tiles)
	return m
}

// MeldList 面子序列
type MeldList []*Meld

func (ml MeldList) String() string {
	parts := make([]string, len(ml))
	for i, m := range ml {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Sorted 按首牌与长度的规范排序，用于排列去重。
func (ml MeldList) Sorted() MeldList {
	res := slices.Clone(ml)
	slices.SortStableFunc(res, func(a, b *Meld) int {
		if a.First() != b.First() {
			return int(a.First() - b.First())
		}
		if a.Len() != b.Len() {
			return a.Len() - b.Len()
		}
		return strings.Compare(a.key, b.key)
	})
	return res
}

func (ml MeldList) Tiles() TileList {
	var res TileList
	for _, m := range ml {
		res = append(res, m.tiles...)
	}
	return res
}

func (ml MeldList) PairCount() int {
	count := 0
	for _, m := range ml {
		if m.IsPair() {
			count++
		}
	}
	return count
}

func (ml MeldList) ChowCount() int {
	count := 0
	for _, m := range ml {
		if m.IsChow() {
			count++
		}
	}
	return count
}
