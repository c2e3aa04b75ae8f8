package game

import "github.com/kevin-chtw/tw_mahjong/mahjong"

// state 一手牌内的阶段；进入即执行，结束前登记下一阶段。
type state interface {
	onEnter()
}

func (g *Game) setNextState(fn func() state) {
	g.nextState = fn
}

// enterNextStates 逐个进入已登记的阶段，直到无后继。
func (g *Game) enterNextStates() {
	for g.nextState != nil {
		fn := g.nextState
		g.nextState = nil
		g.curState = fn()
		g.curState.onEnter()
	}
}

// prepareState 开手：洗墙、清空各家、配牌补花。
type prepareState struct {
	game *Game
}

func (s *prepareState) onEnter() {
	g := s.game
	g.winner = nil
	g.wall = newWall(g.Ruleset, g.rnd)
	for _, p := range g.Players {
		p.clearHand()
	}
	order := g.seatOrder(g.East())
	for _, p := range order {
		for _, t := range g.wall.Deal(13) {
			g.addDealt(p, t)
		}
	}
	g.log.WithField("point", g.Point.String()).Info("hand dealt")
	g.setNextState(func() state { return &playState{game: g} })
}

// addDealt 配牌入手，花牌即补。
func (g *Game) addDealt(p *Player, t mahjong.Tile) {
	for t.IsKnown() && t.IsBonus() {
		p.AddBonus(t)
		t = g.wall.DrawDead()
	}
	if t.IsKnown() {
		p.AddTile(t, mahjong.SourceNone)
	}
}

// playState 行牌循环：摸牌、自摸判定、出牌、鸣牌仲裁。
type playState struct {
	game *Game
}

func (s *playState) onEnter() {
	g := s.game
	turn := g.East()
	source := mahjong.SourceEast14th
	for {
		winner, next := g.playTurn(turn, source)
		if winner != nil {
			g.winner = winner
			break
		}
		if next == nil { // 荒牌
			break
		}
		turn = next
		source = mahjong.SourceWall
	}
	g.setNextState(func() state { return &payState{game: g} })
}

// payState 结算支付。连庄计数与换风规则在付钱前入账，
// 东连庄第九手的本手即按满贯结算。
type payState struct {
	game *Game
}

func (s *payState) onEnter() {
	g := s.game
	if g.winner != nil && g.winner == g.East() {
		g.eastWinStreak++
		g.creditRotationRules(g.winner)
	} else {
		g.eastWinStreak = 0
	}
	g.payHand()
	g.setNextState(func() state { return &endHandState{game: g} })
}

// endHandState 记录、换风换座，或终局。
type endHandState struct {
	game *Game
}

func (s *endHandState) onEnter() {
	g := s.game
	result := g.buildResult()
	g.history = append(g.history, result)
	if g.recorder != nil {
		if err := g.recorder.RecordHand(g, result); err != nil {
			g.log.WithError(err).Error("record hand")
		}
	}

	if g.gameOver() {
		g.finished = true
		return
	}

	if g.winner != nil && g.winner == g.East() {
		g.Point.NextHand()
	} else {
		g.rotateWinds()
		prevailingBefore := g.Point.Prevailing
		g.Point.Rotate()
		if g.Point.Prevailing != prevailingBefore {
			// 圈风前进即一圈完成；北圈打满后圈风回绕，
			// 圈数只认本计数器。
			g.roundsFinished++
			if g.roundsFinished >= g.Ruleset.MinRounds {
				g.finished = true
				return
			}
			g.exchangeSeats()
		}
	}
	g.setNextState(func() state { return &prepareState{game: g} })
}

func (g *Game) buildResult() *HandResult {
	result := &HandResult{
		Point:  *g.Point.Copy(),
		Winner: g.WinnerWind(),
	}
	for i, p := range g.Players {
		score := PlayerScore{
			PlayerID:    p.ID,
			Name:        p.Name,
			Wind:        p.Wind,
			Won:         p == g.winner,
			Payment:     p.Payment,
			Balance:     p.Balance,
			ManualRules: p.ManualRuleNames(),
		}
		if h, err := p.Hand(g.Ruleset, g.RoundWind()); err == nil {
			score.HandString = h.String()
			score.Points = h.Total()
		}
		if p == g.winner {
			if h, err := p.WinningHand(g.Ruleset, g.RoundWind()); err == nil {
				score.HandString = h.String()
				score.Points = h.Total()
			}
		}
		result.Scores[i] = score
	}
	return result
}
