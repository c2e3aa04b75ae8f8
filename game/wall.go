package game

import (
	"math/rand"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

// deadWallSize 墙尾保留的补张区。
const deadWallSize = 14

// Wall 麻将牌墙：前端正常摸牌，尾端补杠补花。
type Wall struct {
	tiles    []mahjong.Tile
	liveLeft int
	deadLeft int
}

func newWall(rs *mahjong.Ruleset, rnd *rand.Rand) *Wall {
	var tiles []mahjong.Tile
	for _, t := range mahjong.AllTiles() {
		for i := 0; i < 4; i++ {
			tiles = append(tiles, t.Concealed())
		}
	}
	if rs.WithBonusTiles {
		for _, t := range mahjong.AllBonusTiles() {
			tiles = append(tiles, t.Concealed())
		}
	}
	rnd.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	return &Wall{
		tiles:    tiles,
		liveLeft: len(tiles) - deadWallSize,
		deadLeft: deadWallSize,
	}
}

// Draw 从墙头摸一张；活墙摸空返回 TileNull。
func (w *Wall) Draw() mahjong.Tile {
	if w.liveLeft <= 0 {
		return mahjong.TileNull
	}
	t := w.tiles[0]
	w.tiles = w.tiles[1:]
	w.liveLeft--
	return t
}

// DrawDead 从墙尾补一张（杠、花）；死墙也空返回 TileNull。
func (w *Wall) DrawDead() mahjong.Tile {
	if w.deadLeft <= 0 {
		return mahjong.TileNull
	}
	t := w.tiles[len(w.tiles)-1]
	w.tiles = w.tiles[:len(w.tiles)-1]
	w.deadLeft--
	return t
}

// Deal 起手配牌。
func (w *Wall) Deal(count int) []mahjong.Tile {
	tiles := make([]mahjong.Tile, 0, count)
	for i := 0; i < count; i++ {
		t := w.Draw()
		if t == mahjong.TileNull {
			break
		}
		tiles = append(tiles, t)
	}
	return tiles
}

// LiveCount 活墙剩余张数。
func (w *Wall) LiveCount() int { return w.liveLeft }

// IsLastLive 下一张活牌是否墙上最后一张。
func (w *Wall) IsLastLive() bool { return w.liveLeft == 1 }
