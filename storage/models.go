package storage

import "time"

// 表结构与单机记分程序的本地库一致；主键手工分配，
// 预置规则集的 id 为负、随局保存的为正。

type Player struct {
	ID   int64  `xorm:"'id' pk"`
	Name string `xorm:"'name' unique notnull"`
}

func (Player) TableName() string { return "player" }

type Ruleset struct {
	ID          int64  `xorm:"'id' pk"`
	Name        string `xorm:"'name'"`
	Hash        string `xorm:"'hash' index"`
	Description string `xorm:"'description'"`
}

func (Ruleset) TableName() string { return "ruleset" }

type Rule struct {
	Ruleset    int64   `xorm:"'ruleset' pk"`
	List       int     `xorm:"'list' pk"`
	Position   int     `xorm:"'position' pk"`
	Name       string  `xorm:"'name'"`
	Definition string  `xorm:"'definition'"`
	Points     int     `xorm:"'points'"`
	Doubles    int     `xorm:"'doubles'"`
	Limits     float64 `xorm:"'limits'"`
	Parameter  string  `xorm:"'parameter'"`
}

func (Rule) TableName() string { return "rule" }

type Game struct {
	ID        int64     `xorm:"'id' pk autoincr"`
	StartTime time.Time `xorm:"'starttime'"`
	EndTime   time.Time `xorm:"'endtime'"`
	Seed      int64     `xorm:"'seed'"`
	P0        int64     `xorm:"'p0'"`
	P1        int64     `xorm:"'p1'"`
	P2        int64     `xorm:"'p2'"`
	P3        int64     `xorm:"'p3'"`
	Ruleset   int64     `xorm:"'ruleset'"`
	Autoplay  bool      `xorm:"'autoplay'"`
}

func (Game) TableName() string { return "game" }

type Score struct {
	Game        int64     `xorm:"'game' index"`
	Hand        int       `xorm:"'hand'"`
	Rotated     int       `xorm:"'rotated'"`
	NotRotated  int       `xorm:"'notrotated'"`
	Player      int64     `xorm:"'player'"`
	ScoreTime   time.Time `xorm:"'scoretime'"`
	Won         bool      `xorm:"'won'"`
	Prevailing  string    `xorm:"'prevailing'"`
	Wind        string    `xorm:"'wind'"`
	Points      int       `xorm:"'points'"`
	Payments    int       `xorm:"'payments'"`
	Balance     int       `xorm:"'balance'"`
	ManualRules string    `xorm:"'manualrules'"`
}

func (Score) TableName() string { return "score" }
