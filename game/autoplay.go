package game

import "github.com/kevin-chtw/tw_mahjong/mahjong"

// Run 自动打完整局：从第一手开始驱动状态机直到终局。
func (g *Game) Run() {
	g.setNextState(func() state { return &prepareState{game: g} })
	g.enterNextStates()
}

// PlayHand 只打一手（测试与单步回放用）。
func (g *Game) PlayHand() {
	g.setNextState(func() state { return &prepareState{game: g} })
	for g.nextState != nil && !g.finished {
		fn := g.nextState
		g.nextState = nil
		g.curState = fn()
		g.curState.onEnter()
		if _, done := g.curState.(*endHandState); done {
			g.nextState = nil
			break
		}
	}
}

// playTurn 一名玩家的完整回合：摸牌、自摸与暗杠、出牌与鸣牌链。
// 返回和牌者，或无人和牌时的下一个行牌者；荒牌两者皆空。
func (g *Game) playTurn(p *Player, source mahjong.ESource) (winner, next *Player) {
	lastLive := g.wall.IsLastLive()
	t := g.wall.Draw()
	if t == mahjong.TileNull {
		return nil, nil
	}
	if lastLive && source == mahjong.SourceWall {
		source = mahjong.SourceWallEnd
	}
	for t.IsBonus() {
		p.AddBonus(t)
		if t = g.wall.DrawDead(); t == mahjong.TileNull {
			return nil, nil
		}
		source = mahjong.SourceDeadWall
	}
	p.AddTile(t, source)
	if g.hasWon(p) {
		return p, nil
	}
	if winner, aborted := g.declareConcealedKongs(p); winner != nil || aborted {
		return winner, nil
	}

	lastDiscard := lastLive
	discarder := p
	for {
		discard := g.chooseDiscard(discarder)
		if discard == mahjong.TileNull {
			return nil, nil
		}
		discarder.RemoveTile(discard)
		if g.Ruleset.MustDeclareCallingHand {
			// 托管自动报听：听牌即报，未报不可和。
			h, err := discarder.Hand(g.Ruleset, g.RoundWind())
			discarder.MayWin = err == nil && len(h.WinningTiles()) > 0
		}
		c, ok := g.arbitrate(discarder, discard.Exposed())
		if !ok {
			return nil, g.seatOrder(discarder)[1]
		}
		claimant := c.player
		switch c.msg {
		case mahjong.MessageMahJongg:
			src := mahjong.SourceDiscard
			if lastDiscard {
				src = mahjong.SourceWallEndDiscard
			}
			claimant.AddTile(discard, src)
			return claimant, nil
		case mahjong.MessageKong:
			if !g.claimKong(claimant, discard) {
				return nil, nil
			}
			if g.hasWon(claimant) {
				return claimant, nil
			}
		case mahjong.MessagePung:
			g.claimPung(claimant, discard)
		case mahjong.MessageChow:
			if !g.claimChow(claimant, discard) {
				return nil, g.seatOrder(discarder)[1]
			}
		}
		discarder = claimant
		lastDiscard = false
	}
}

func (g *Game) hasWon(p *Player) bool {
	if !p.MayWin {
		return false
	}
	h, err := p.WinningHand(g.Ruleset, g.RoundWind())
	return err == nil && h.Won()
}

// declareConcealedKongs 手里四张的牌直接开暗杠并补张。
// aborted 为真表示死墙摸空，此手流局。
func (g *Game) declareConcealedKongs(p *Player) (winner *Player, aborted bool) {
	for {
		kongTile := mahjong.TileNull
		for key, n := range p.Concealed.CountsByKey() {
			if n == 4 {
				kongTile = key.Concealed()
				break
			}
		}
		if kongTile == mahjong.TileNull {
			return nil, false
		}
		p.Expose(mahjong.KongMeld(kongTile), mahjong.TileNull)
		t := g.wall.DrawDead()
		for t.IsKnown() && t.IsBonus() {
			p.AddBonus(t)
			t = g.wall.DrawDead()
		}
		if t == mahjong.TileNull {
			return nil, true
		}
		p.AddTile(t, mahjong.SourceDeadWall)
		if g.hasWon(p) {
			return p, false
		}
	}
}

// chooseDiscard AI 选牌；手牌评分失败时返回 TileNull。
func (g *Game) chooseDiscard(p *Player) mahjong.Tile {
	var declared []mahjong.MeldList
	for _, q := range g.Players {
		if q != p {
			declared = append(declared, q.Declared)
		}
	}
	h, err := p.Hand(g.Ruleset, g.RoundWind())
	if err != nil {
		g.log.WithError(err).WithField("player", p.Name).Error("build hand")
		return mahjong.TileNull
	}
	return p.ai.SelectDiscard(h, mahjong.Dangerous(declared))
}

// arbitrate 向其余三家征询对弃牌的应答并裁决。
func (g *Game) arbitrate(discarder *Player, discard mahjong.Tile) (claim, bool) {
	order := g.seatOrder(discarder)
	others := order[1:]
	arb := newClaimArbiter(g.Ruleset.ClaimTimeout)
	arb.Expect(others...)
	for _, q := range others {
		h, err := q.Hand(g.Ruleset, g.RoundWind())
		if err != nil {
			arb.Submit(q, mahjong.MessageDiscard)
			continue
		}
		msg := q.ai.ShouldClaim(h, discard)
		if msg == mahjong.MessageChow && q != order[1] {
			msg = mahjong.MessageDiscard // 吃只限下家
		}
		if msg == mahjong.MessageMahJongg && !q.MayWin {
			msg = mahjong.MessageDiscard
		}
		arb.Submit(q, msg)
	}
	var claimOrder [4]*Player
	copy(claimOrder[:], others)
	return arb.Decide(claimOrder)
}

// claimKong 明杠：三张暗牌加弃牌；随后从死墙补张。
func (g *Game) claimKong(p *Player, discard mahjong.Tile) bool {
	e := discard.Exposed()
	meld, err := mahjong.NewMeld(mahjong.TileList{e, e, e, discard.Concealed()})
	if err != nil {
		return false
	}
	p.Expose(meld, e)
	t := g.wall.DrawDead()
	for t.IsKnown() && t.IsBonus() {
		p.AddBonus(t)
		t = g.wall.DrawDead()
	}
	if t == mahjong.TileNull {
		return false
	}
	p.AddTile(t, mahjong.SourceDeadWall)
	return true
}

func (g *Game) claimPung(p *Player, discard mahjong.Tile) {
	p.Expose(mahjong.PungMeld(discard.Exposed()), discard.Exposed())
}

// claimChow 从可行的搭子里取第一组。
func (g *Game) claimChow(p *Player, discard mahjong.Tile) bool {
	d := discard.Key()
	pairs := [][2]mahjong.Tile{
		{d.Prev2(), d.Prev()},
		{d.Prev(), d.NextForChow()},
		{d.NextForChow(), d.Next2()},
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if a == mahjong.TileNull || b == mahjong.TileNull {
			continue
		}
		if !p.Concealed.Contains(a) || !p.Concealed.Contains(b) {
			continue
		}
		tiles := mahjong.TileList{a.Exposed(), b.Exposed(), discard.Exposed()}.Sorted()
		meld, err := mahjong.NewMeld(tiles)
		if err != nil {
			continue
		}
		p.Expose(meld, discard.Exposed())
		return true
	}
	return false
}
