package storage

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"xorm.io/xorm"

	"github.com/kevin-chtw/tw_mahjong/game"
	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

// Store 单机记分库：一个 sqlite 文件。
type Store struct {
	engine *xorm.Engine
	log    *logrus.Entry
}

// Open 打开（或创建）记分库并同步表结构。
func Open(path string) (*Store, error) {
	engine, err := xorm.NewEngine("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open score db %s: %w", path, err)
	}
	if err := engine.Sync2(new(Player), new(Ruleset), new(Rule), new(Game), new(Score)); err != nil {
		engine.Close()
		return nil, fmt.Errorf("sync score db %s: %w", path, err)
	}
	return &Store{
		engine: engine,
		log:    logrus.WithField("db", path),
	}, nil
}

func (s *Store) Close() error {
	return s.engine.Close()
}

// EnsurePlayer 按名取玩家，不存在则登记。
func (s *Store) EnsurePlayer(name string) (int64, error) {
	var row Player
	found, err := s.engine.Where("name = ?", name).Get(&row)
	if err != nil {
		return 0, err
	}
	if found {
		return row.ID, nil
	}
	id, err := s.nextID(new(Player), 1)
	if err != nil {
		return 0, err
	}
	row = Player{ID: id, Name: name}
	if _, err := s.engine.Insert(&row); err != nil {
		return 0, err
	}
	return row.ID, nil
}

// SaveRuleset 保存规则集；同哈希的已有行直接复用。
// template 为真保存为模板（负 id），否则保存为随局副本（正 id）。
func (s *Store) SaveRuleset(rs *mahjong.Ruleset, template bool) (int64, error) {
	hash := rs.Hash()
	var existing Ruleset
	found, err := s.engine.Where("hash = ?", hash).Get(&existing)
	if err != nil {
		return 0, err
	}
	if found {
		return existing.ID, nil
	}

	dir := int64(1)
	if template {
		dir = -1
	}
	id, err := s.nextID(new(Ruleset), dir)
	if err != nil {
		return 0, err
	}

	session := s.engine.NewSession()
	defer session.Close()
	if err := session.Begin(); err != nil {
		return 0, err
	}
	row := Ruleset{ID: id, Name: rs.Name, Hash: hash, Description: rs.Description}
	if _, err := session.Insert(&row); err != nil {
		session.Rollback()
		return 0, err
	}
	for _, rr := range rs.Rows() {
		rule := Rule{
			Ruleset:    id,
			List:       rr.List,
			Position:   rr.Position,
			Name:       rr.Name,
			Definition: rr.Definition,
			Points:     rr.Points,
			Doubles:    rr.Doubles,
			Limits:     rr.Limits,
			Parameter:  rr.Parameter,
		}
		if _, err := session.Insert(&rule); err != nil {
			session.Rollback()
			return 0, err
		}
	}
	if err := session.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// LoadRuleset 由规则行重建规则集；任何坏行都使整体失败。
func (s *Store) LoadRuleset(id int64) (*mahjong.Ruleset, error) {
	var head Ruleset
	found, err := s.engine.ID(id).Get(&head)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("ruleset %d not found", id)
	}
	var rows []Rule
	if err := s.engine.Where("ruleset = ?", id).Find(&rows); err != nil {
		return nil, err
	}
	ruleRows := make([]mahjong.RuleRow, len(rows))
	for i, r := range rows {
		ruleRows[i] = mahjong.RuleRow{
			List:       r.List,
			Position:   r.Position,
			Name:       r.Name,
			Definition: r.Definition,
			Points:     r.Points,
			Doubles:    r.Doubles,
			Limits:     r.Limits,
			Parameter:  r.Parameter,
		}
	}
	rs, err := mahjong.LoadRows(head.Name, ruleRows)
	if err != nil {
		return nil, err
	}
	rs.Description = head.Description
	return rs, nil
}

// StartGame 写入对局头并回填持久化 id。
func (s *Store) StartGame(g *game.Game, autoplay bool) error {
	rulesetID, err := s.SaveRuleset(g.Ruleset, false)
	if err != nil {
		return err
	}
	var ids [4]int64
	for i, p := range g.Players {
		id, err := s.EnsurePlayer(p.Name)
		if err != nil {
			return err
		}
		ids[i] = id
		p.ID = id
	}
	row := Game{
		StartTime: time.Now(),
		Seed:      int64(g.Point.Seed),
		P0:        ids[0],
		P1:        ids[1],
		P2:        ids[2],
		P3:        ids[3],
		Ruleset:   rulesetID,
		Autoplay:  autoplay,
	}
	if _, err := s.engine.Insert(&row); err != nil {
		return err
	}
	g.ID = row.ID
	return nil
}

// RecordHand 一手四行计分，单事务写入；失败不留半手。
func (s *Store) RecordHand(g *game.Game, result *game.HandResult) error {
	now := time.Now()
	session := s.engine.NewSession()
	defer session.Close()
	if err := session.Begin(); err != nil {
		return err
	}
	for _, ps := range result.Scores {
		row := Score{
			Game:        g.ID,
			Hand:        result.Point.HandCount,
			Rotated:     result.Point.Rotated,
			NotRotated:  result.Point.NotRotated,
			Player:      ps.PlayerID,
			ScoreTime:   now,
			Won:         ps.Won,
			Prevailing:  string(result.Point.Prevailing.WindChar()),
			Wind:        string(ps.Wind.WindChar()),
			Points:      ps.Points,
			Payments:    ps.Payment,
			Balance:     ps.Balance,
			ManualRules: strings.Join(ps.ManualRules, ","),
		}
		if _, err := session.Insert(&row); err != nil {
			session.Rollback()
			return err
		}
	}
	return session.Commit()
}

// FinishGame 记录终局时间。
func (s *Store) FinishGame(g *game.Game) error {
	_, err := s.engine.ID(g.ID).Cols("endtime").Update(&Game{EndTime: time.Now()})
	return err
}

// LoadPoint 从最高一手的计分行恢复计分位置。
func (s *Store) LoadPoint(gameID int64) (*mahjong.Point, error) {
	var head Game
	found, err := s.engine.ID(gameID).Get(&head)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("game %d not found", gameID)
	}
	point := mahjong.NewPoint(uint64(head.Seed))
	var last Score
	found, err = s.engine.Where("game = ?", gameID).Desc("hand").Get(&last)
	if err != nil {
		return nil, err
	}
	if !found {
		return point, nil
	}
	if last.Prevailing == "" {
		return nil, fmt.Errorf("game %d: empty prevailing wind", gameID)
	}
	prevailing := mahjong.WindTile(last.Prevailing[0])
	if prevailing == mahjong.TileNull {
		return nil, fmt.Errorf("game %d: bad prevailing wind %q", gameID, last.Prevailing)
	}
	point.Prevailing = prevailing
	point.Rotated = last.Rotated
	point.NotRotated = last.NotRotated
	point.HandCount = last.Hand
	return point, nil
}

// nextID 手工分配主键；dir 为 -1 时向负方向增长。
func (s *Store) nextID(bean interface{}, dir int64) (int64, error) {
	total, err := s.engine.Table(bean).Count()
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return dir, nil
	}
	agg := "max(id)"
	if dir < 0 {
		agg = "min(id)"
	}
	var cur int64
	if _, err := s.engine.Table(bean).Select(agg).Get(&cur); err != nil {
		return 0, err
	}
	next := cur + dir
	if dir > 0 && next < 1 {
		next = 1
	}
	if dir < 0 && next > -1 {
		next = -1
	}
	return next, nil
}
