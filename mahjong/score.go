package mahjong

import (
	"fmt"
	"math"
	"strings"
)

// Score 单条规则至多使用 points/doubles/limits 之一。
type Score struct {
	Points  int
	Doubles int
	Limits  float64
}

func (s Score) IsZero() bool {
	return s.Points == 0 && s.Doubles == 0 && s.Limits == 0
}

// UnitCount 已使用的记分单位数，规则装载时校验不超过 1。
func (s Score) UnitCount() int {
	count := 0
	if s.Points != 0 {
		count++
	}
	if s.Doubles != 0 {
		count++
	}
	if s.Limits != 0 {
		count++
	}
	return count
}

// Add 分量相加，limits 取最大值。
func (s Score) Add(other Score) Score {
	return Score{
		Points:  s.Points + other.Points,
		Doubles: s.Doubles + other.Doubles,
		Limits:  math.Max(s.Limits, other.Limits),
	}
}

// Total 按规则集结算：limits 优先，其次 points*2^doubles 截断到 limit。
func (s Score) Total(ruleset *Ruleset) int {
	if s.Limits > 0 {
		return int(math.Round(s.Limits * float64(ruleset.Limit)))
	}
	total := s.Points
	for i := 0; i < s.Doubles; i++ {
		total *= 2
		if !ruleset.RoofOff && total > ruleset.Limit {
			break
		}
	}
	if !ruleset.RoofOff && total > ruleset.Limit {
		return ruleset.Limit
	}
	return total
}

func (s Score) String() string {
	var parts []string
	if s.Points != 0 {
		parts = append(parts, fmt.Sprintf("%d points", s.Points))
	}
	if s.Doubles != 0 {
		parts = append(parts, fmt.Sprintf("%d doubles", s.Doubles))
	}
	if s.Limits != 0 {
		parts = append(parts, fmt.Sprintf("%g limits", s.Limits))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}
