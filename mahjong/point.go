package mahjong

import (
	"fmt"
	"strconv"
	"strings"
)

// Point 一局之内的时间坐标：种子 / 圈风 / 已转次数 / 未转次数。
// 序列化为 "SEED/Wrn"，r 为数字，n 为 a..z 的 26 进制。
type Point struct {
	Seed       uint64
	Prevailing Tile
	Rotated    int
	NotRotated int
	MoveCount  int
	HandCount  int
}

func NewPoint(seed uint64) *Point {
	return &Point{Seed: seed, Prevailing: WindTile('e')}
}

// notRotatedAZ 0 -> "a", 25 -> "z", 26 -> "ba"。
func notRotatedAZ(n int) string {
	if n < 26 {
		return string(rune('a' + n))
	}
	return notRotatedAZ(n/26) + string(rune('a'+n%26))
}

func parseNotRotatedAZ(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return 0, fmt.Errorf("bad notRotated %q", s)
		}
		n = n*26 + int(c-'a')
	}
	return n, nil
}

// String 形如 "1/e0a"；moveCount 非零时作为数字直接缀在字母段后。
func (p *Point) String() string {
	s := fmt.Sprintf("%d/%c%d%s", p.Seed, p.Prevailing.WindChar(), p.Rotated, notRotatedAZ(p.NotRotated))
	if p.MoveCount > 0 {
		s += strconv.Itoa(p.MoveCount)
	}
	return s
}

func ParsePoint(s string) (*Point, error) {
	seedStr, rest, ok := strings.Cut(s, "/")
	if !ok {
		return nil, fmt.Errorf("malformed point %q", s)
	}
	seed, err := strconv.ParseUint(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed point %q: %v", s, err)
	}
	if len(rest) < 3 {
		return nil, fmt.Errorf("malformed point %q", s)
	}
	prevailing := WindTile(rest[0] | 0x20)
	if prevailing == TileNull {
		return nil, fmt.Errorf("bad prevailing wind in %q", s)
	}
	rotated := int(rest[1] - '0')
	if rotated < 0 || rotated > 3 {
		return nil, fmt.Errorf("bad rotated count in %q", s)
	}
	letters := rest[2:]
	var moveStr string
	for i, c := range letters {
		if c >= '0' && c <= '9' {
			letters, moveStr = letters[:i], letters[i:]
			break
		}
	}
	notRotated, err := parseNotRotatedAZ(letters)
	if err != nil {
		return nil, err
	}
	p := &Point{Seed: seed, Prevailing: prevailing, Rotated: rotated, NotRotated: notRotated}
	if moveStr != "" {
		if p.MoveCount, err = strconv.Atoi(moveStr); err != nil {
			return nil, fmt.Errorf("bad move count in %q", s)
		}
	}
	return p, nil
}

// windOrder 圈风推进次序 E S W N。
var windOrder = []byte{'e', 's', 'w', 'n'}

func windIndex(w Tile) int {
	for i, c := range windOrder {
		if w == WindTile(c) {
			return i
		}
	}
	return -1
}

// Less 按 圈风 -> rotated -> notRotated 全序比较；种子不参与。
func (p *Point) Less(other *Point) bool {
	if a, b := windIndex(p.Prevailing), windIndex(other.Prevailing); a != b {
		return a < b
	}
	if p.Rotated != other.Rotated {
		return p.Rotated < other.Rotated
	}
	return p.NotRotated < other.NotRotated
}

func (p *Point) Equal(other *Point) bool {
	return !p.Less(other) && !other.Less(p)
}

// NextHand 不换风推进：handCount 与 notRotated 各加一。
func (p *Point) NextHand() {
	p.HandCount++
	p.NotRotated++
	p.MoveCount = 0
}

// Rotate 换风推进：rotated 满 4 则圈风前进一位。
func (p *Point) Rotate() {
	p.HandCount++
	p.NotRotated = 0
	p.Rotated++
	if p.Rotated == 4 {
		p.Rotated = 0
		p.Prevailing = nextWind(p.Prevailing)
	}
	p.MoveCount = 0
}

func nextWind(w Tile) Tile {
	i := windIndex(w)
	return WindTile(windOrder[(i+1)%4])
}

// RoundsFinished 已完成的圈数（圈风序号）。
func (p *Point) RoundsFinished() int {
	return windIndex(p.Prevailing)
}

func (p *Point) Copy() *Point {
	c := *p
	return &c
}

// PointRange 闭区间 "P1..P2"，用于回放；P2 省略时与 P1 相同。
type PointRange struct {
	First *Point
	Last  *Point
}

func ParsePointRange(s string) (*PointRange, error) {
	firstStr, lastStr, ok := strings.Cut(s, "..")
	if !ok {
		p, err := ParsePoint(s)
		if err != nil {
			return nil, err
		}
		return &PointRange{First: p, Last: p.Copy()}, nil
	}
	first, err := ParsePoint(firstStr)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(lastStr, "/") {
		lastStr = fmt.Sprintf("%d/%s", first.Seed, lastStr)
	}
	last, err := ParsePoint(lastStr)
	if err != nil {
		return nil, err
	}
	if last.Less(first) {
		return nil, fmt.Errorf("empty point range %q", s)
	}
	return &PointRange{First: first, Last: last}, nil
}

func (pr *PointRange) Contains(p *Point) bool {
	return !p.Less(pr.First) && !pr.Last.Less(p)
}

func (pr *PointRange) String() string {
	if pr.First.Equal(pr.Last) {
		return pr.First.String()
	}
	return pr.First.String() + ".." + pr.Last.String()
}
