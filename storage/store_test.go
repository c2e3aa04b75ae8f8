package storage_test

import (
	"path/filepath"
	"testing"

	"xorm.io/xorm"

	"github.com/kevin-chtw/tw_mahjong/game"
	"github.com/kevin-chtw/tw_mahjong/mahjong"
	"github.com/kevin-chtw/tw_mahjong/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func dmjl(t *testing.T) *mahjong.Ruleset {
	t.Helper()
	rs := mahjong.PredefinedRuleset("Classical Chinese DMJL")
	if rs == nil {
		t.Fatal("Classical Chinese DMJL not registered")
	}
	return rs
}

func TestEnsurePlayer(t *testing.T) {
	s := openStore(t)
	id1, err := s.EnsurePlayer("Ana")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.EnsurePlayer("Ana")
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("same name got ids %d and %d", id1, id2)
	}
	id3, err := s.EnsurePlayer("Ben")
	if err != nil {
		t.Fatal(err)
	}
	if id3 == id1 {
		t.Error("different names must get different ids")
	}
}

func TestSaveRulesetDedupesByHash(t *testing.T) {
	s := openStore(t)
	rs := dmjl(t)
	id1, err := s.SaveRuleset(rs, false)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.SaveRuleset(rs, false)
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("identical hash saved twice: ids %d and %d", id1, id2)
	}
	if id1 < 1 {
		t.Errorf("game ruleset id = %d, want positive", id1)
	}

	bmja := mahjong.PredefinedRuleset("Classical Chinese BMJA")
	if bmja == nil {
		t.Fatal("Classical Chinese BMJA not registered")
	}
	tid, err := s.SaveRuleset(bmja, true)
	if err != nil {
		t.Fatal(err)
	}
	if tid > -1 {
		t.Errorf("template id = %d, want negative", tid)
	}
}

func TestRulesetRoundTrip(t *testing.T) {
	s := openStore(t)
	rs := dmjl(t)
	id, err := s.SaveRuleset(rs, false)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadRuleset(id)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Hash() != rs.Hash() {
		t.Errorf("hash changed through storage: %s != %s", loaded.Hash(), rs.Hash())
	}
	if loaded.Limit != rs.Limit || loaded.MaxChows != rs.MaxChows {
		t.Error("parameters must survive the round trip")
	}
	if _, err := s.LoadRuleset(9999); err == nil {
		t.Error("loading a missing ruleset must fail")
	}
}

func TestRecordHandAndLoadPoint(t *testing.T) {
	s := openStore(t)
	g := game.NewGame(dmjl(t), 7, [4]string{"Ana", "Ben", "Cleo", "Dan"})
	if err := s.StartGame(g, true); err != nil {
		t.Fatal(err)
	}
	if g.ID < 1 {
		t.Fatalf("game id = %d, want positive", g.ID)
	}

	record := func() {
		result := &game.HandResult{Point: *g.Point.Copy(), Winner: mahjong.TileNull}
		for i, p := range g.Players {
			result.Scores[i] = game.PlayerScore{
				PlayerID: p.ID,
				Name:     p.Name,
				Wind:     p.Wind,
			}
		}
		if err := s.RecordHand(g, result); err != nil {
			t.Fatal(err)
		}
	}
	record()
	g.Point.NextHand()
	record()

	point, err := s.LoadPoint(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if point.Seed != 7 {
		t.Errorf("seed = %d, want 7", point.Seed)
	}
	if point.HandCount != 1 || point.NotRotated != 1 || point.Rotated != 0 {
		t.Errorf("point = %+v, want the second hand", point)
	}
	if point.Prevailing != mahjong.TileWindEast {
		t.Error("prevailing wind must survive the round trip")
	}

	if err := s.FinishGame(g); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadPoint(9999); err == nil {
		t.Error("loading a missing game must fail")
	}
}

func TestLoadPointRejectsEmptyPrevailing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	s, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	g := game.NewGame(dmjl(t), 3, [4]string{"Ana", "Ben", "Cleo", "Dan"})
	if err := s.StartGame(g, true); err != nil {
		t.Fatal(err)
	}

	// 直接写入一条 prevailing 为空的残缺行
	eng, err := xorm.NewEngine("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Insert(&storage.Score{Game: g.ID, Player: g.Players[0].ID}); err != nil {
		t.Fatal(err)
	}
	eng.Close()

	if _, err := s.LoadPoint(g.ID); err == nil {
		t.Error("a malformed score row must not panic the loader")
	}
}
