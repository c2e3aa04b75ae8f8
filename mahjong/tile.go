package mahjong

import (
	"fmt"
	"slices"
	"strings"
)

// EGroup 牌组 tile group
type EGroup int

const (
	GroupUndefined EGroup = -1
	GroupStone     EGroup = iota - 1 // 筒 s1..s9
	GroupBamboo                      // 条 b1..b9
	GroupCharacter                   // 万 c1..c9
	GroupWind                        // 风 we ws ww wn
	GroupDragon                      // 箭 db dg dr
	GroupFlower                      // 花 fe fs fw fn
	GroupSeason                      // 季 ye ys yw yn
	GroupEnd
	GroupBegin = GroupStone
)

var groupChars = [GroupEnd]byte{'s', 'b', 'c', 'w', 'd', 'f', 'y'}

var PointCountByGroup = [GroupEnd]int{9, 9, 9, 4, 3, 4, 4}
var SameTileCountByGroup = [GroupEnd]int{4, 4, 4, 4, 4, 1, 1}

// 字牌与花牌的点数字符；数牌为 '1'..'9'
var windChars = []byte{'e', 's', 'w', 'n'}
var dragonChars = []byte{'b', 'g', 'r'}

const (
	flagValid     = 0x01
	flagConcealed = 0x02
)

// Tile 编码: group<<8 | point<<4 | flags
// point 从 0 开始；flags 低位为有效位，次位为暗牌(concealed)位。
// 整数比较即为牌序：组 -> 点数 -> 明暗。
type Tile int32

var (
	TileNull    Tile = -1
	TileUnknown Tile = Tile(int(GroupEnd)<<8 | flagValid)

	TileDragonWhite = MakeTile(GroupDragon, 0)
	TileDragonGreen = MakeTile(GroupDragon, 1)
	TileDragonRed   = MakeTile(GroupDragon, 2)
	TileWindEast    = MakeTile(GroupWind, 0)
	TileWindSouth   = MakeTile(GroupWind, 1)
	TileWindWest    = MakeTile(GroupWind, 2)
	TileWindNorth   = MakeTile(GroupWind, 3)
)

// Winds in game order.
var Winds = []Tile{TileWindEast, TileWindSouth, TileWindWest, TileWindNorth}

func MakeTile(group EGroup, point int) Tile {
	return Tile(int(group)<<8 | point<<4 | flagValid)
}

func makeConcealed(group EGroup, point int) Tile {
	return Tile(int(group)<<8 | point<<4 | flagValid | flagConcealed)
}

func (t Tile) Group() EGroup {
	return EGroup((t >> 8) & 0x0F)
}

func (t Tile) Point() int {
	return int((t >> 4) & 0x0F)
}

func (t Tile) IsKnown() bool {
	return t > 0 && t < TileUnknown
}

func (t Tile) IsConcealed() bool {
	return t&flagConcealed != 0
}

// Concealed 求暗牌形式；对暗牌本身是恒等的，Exposed 同理。
func (t Tile) Concealed() Tile {
	if !t.IsKnown() {
		return t
	}
	return t | flagConcealed
}

func (t Tile) Exposed() Tile {
	if !t.IsKnown() {
		return t
	}
	return t &^ flagConcealed
}

// Key 忽略明暗的牌身份，用于多重集合计数。
func (t Tile) Key() Tile {
	return t.Exposed()
}

func (t Tile) IsSuit() bool {
	return t.IsKnown() && t.Group() <= GroupCharacter
}

func (t Tile) IsWind() bool {
	return t.IsKnown() && t.Group() == GroupWind
}

func (t Tile) IsDragon() bool {
	return t.IsKnown() && t.Group() == GroupDragon
}

func (t Tile) IsHonor() bool {
	return t.IsWind() || t.IsDragon()
}

func (t Tile) IsBonus() bool {
	return t.IsKnown() && (t.Group() == GroupFlower || t.Group() == GroupSeason)
}

func (t Tile) IsTerminal() bool {
	return t.IsSuit() && (t.Point() == 0 || t.Point() == 8)
}

// IsMajor 幺九与字牌
func (t Tile) IsMajor() bool {
	return t.IsHonor() || t.IsTerminal()
}

func (t Tile) IsMinor() bool {
	return t.IsSuit() && !t.IsTerminal()
}

// Value 数牌的点数 1..9；字牌与花牌返回 0。
func (t Tile) Value() int {
	if !t.IsSuit() {
		return 0
	}
	return t.Point() + 1
}

// NextForChow 同组内数值加一的牌；9 或非数牌返回 TileNull。
func (t Tile) NextForChow() Tile {
	if !t.IsSuit() || t.Point() >= 8 {
		return TileNull
	}
	return MakeTile(t.Group(), t.Point()+1).withExposure(t)
}

// Next 组内循环的下一张，用于风圈推进等。
func (t Tile) Next() Tile {
	if !t.IsKnown() {
		return t
	}
	g := t.Group()
	return MakeTile(g, (t.Point()+1)%PointCountByGroup[g]).withExposure(t)
}

func (t Tile) Next2() Tile {
	if next := t.NextForChow(); next != TileNull {
		return next.NextForChow()
	}
	return TileNull
}

func (t Tile) Prev() Tile {
	if !t.IsSuit() || t.Point() == 0 {
		return TileNull
	}
	return MakeTile(t.Group(), t.Point()-1).withExposure(t)
}

func (t Tile) Prev2() Tile {
	if prev := t.Prev(); prev != TileNull {
		return prev.Prev()
	}
	return TileNull
}

func (t Tile) withExposure(like Tile) Tile {
	if like.IsConcealed() {
		return t.Concealed()
	}
	return t.Exposed()
}

// String 两字符形式，组字符大写表示暗牌："s1" 明一筒，"S1" 暗一筒，"We" 暗东风。
func (t Tile) String() string {
	if t == TileNull {
		return ""
	}
	if !t.IsKnown() {
		return "Xy"
	}
	g := groupChars[t.Group()]
	if t.IsConcealed() {
		g -= 'a' - 'A'
	}
	return string([]byte{g, t.pointChar()})
}

func (t Tile) pointChar() byte {
	switch t.Group() {
	case GroupWind, GroupFlower, GroupSeason:
		return windChars[t.Point()]
	case GroupDragon:
		return dragonChars[t.Point()]
	default:
		return byte('1' + t.Point())
	}
}

// WindChar 风牌对应的 e/s/w/n；非风牌返回 0。
func (t Tile) WindChar() byte {
	if !t.IsWind() {
		return 0
	}
	return windChars[t.Point()]
}

func groupOf(c byte) (EGroup, bool) {
	lower := c | 0x20
	for g, gc := range groupChars {
		if gc == lower {
			return EGroup(g), true
		}
	}
	return GroupUndefined, false
}

func pointOf(group EGroup, c byte) (int, bool) {
	var chars []byte
	switch group {
	case GroupWind, GroupFlower, GroupSeason:
		chars = windChars
	case GroupDragon:
		chars = dragonChars
	default:
		if c >= '1' && c <= '9' {
			return int(c - '1'), true
		}
		return 0, false
	}
	for i, pc := range chars {
		if pc == c {
			return i, true
		}
	}
	return 0, false
}

// ParseTile 解析两字符牌面；"Xy" 为未知牌。
func ParseTile(s string) (Tile, error) {
	if len(s) != 2 {
		return TileNull, fmt.Errorf("malformed tile %q", s)
	}
	if s == "Xy" {
		return TileUnknown, nil
	}
	group, ok := groupOf(s[0])
	if !ok {
		return TileNull, fmt.Errorf("unknown tile group %q", s)
	}
	point, ok := pointOf(group, s[1])
	if !ok {
		return TileNull, fmt.Errorf("unknown tile value %q", s)
	}
	if s[0] < 'a' {
		return makeConcealed(group, point), nil
	}
	return MakeTile(group, point), nil
}

// WindTile e/s/w/n 对应的暗风牌（手牌上下文中的风总以暗牌表示）。
func WindTile(c byte) Tile {
	for i, wc := range windChars {
		if wc == c|0x20 {
			return MakeTile(GroupWind, i)
		}
	}
	return TileNull
}

// TileList 有序的牌多重集合。
type TileList []Tile

// ParseTiles 解析连续两字符串联的牌串，如 "B1B2B3"。
func ParseTiles(s string) (TileList, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("malformed tile string %q", s)
	}
	tiles := make(TileList, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		t, err := ParseTile(s[i : i+2])
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func (tl TileList) String() string {
	var sb strings.Builder
	for _, t := range tl {
		sb.WriteString(t.String())
	}
	return sb.String()
}

func (tl TileList) Sorted() TileList {
	res := slices.Clone(tl)
	slices.Sort(res)
	return res
}

func (tl TileList) Count(t Tile) int {
	count := 0
	for _, v := range tl {
		if v.Key() == t.Key() {
			count++
		}
	}
	return count
}

func (tl TileList) Contains(t Tile) bool {
	return tl.Count(t) > 0
}

// Removed 去掉一张同身份的牌（优先精确匹配明暗）。
func (tl TileList) Removed(t Tile) TileList {
	if i := slices.Index(tl, t); i >= 0 {
		return slices.Delete(slices.Clone(tl), i, i+1)
	}
	for i, v := range tl {
		if v.Key() == t.Key() {
			return slices.Delete(slices.Clone(tl), i, i+1)
		}
	}
	return slices.Clone(tl)
}

func (tl TileList) RemovedAll(tiles TileList) TileList {
	res := slices.Clone(tl)
	for _, t := range tiles {
		res = res.Removed(t)
	}
	return res
}

// Groups 出现过的数牌组集合。
func (tl TileList) Groups() []EGroup {
	var res []EGroup
	for _, t := range tl {
		if t.IsSuit() && !slices.Contains(res, t.Group()) {
			res = append(res, t.Group())
		}
	}
	return res
}

func (tl TileList) Exposed() TileList {
	res := make(TileList, len(tl))
	for i, t := range tl {
		res[i] = t.Exposed()
	}
	return res
}

func (tl TileList) Concealed() TileList {
	res := make(TileList, len(tl))
	for i, t := range tl {
		res[i] = t.Concealed()
	}
	return res
}

// CountsByKey 按牌身份计数。
func (tl TileList) CountsByKey() map[Tile]int {
	m := make(map[Tile]int, len(tl))
	for _, t := range tl {
		m[t.Key()]++
	}
	return m
}

// AllTiles 整副牌的 34 种基本身份（不含花季）。
func AllTiles() TileList {
	res := make(TileList, 0, 34)
	for g := GroupBegin; g <= GroupDragon; g++ {
		for p := 0; p < PointCountByGroup[g]; p++ {
			res = append(res, MakeTile(g, p))
		}
	}
	return res
}

// AllBonusTiles 八张花季牌。
func AllBonusTiles() TileList {
	res := make(TileList, 0, 8)
	for _, g := range []EGroup{GroupFlower, GroupSeason} {
		for p := 0; p < PointCountByGroup[g]; p++ {
			res = append(res, MakeTile(g, p))
		}
	}
	return res
}
