package game

import (
	"fmt"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

// getsPayment 计入单手支付与累计余额。
func (p *Player) getsPayment(amount int) {
	p.Payment += amount
	p.Balance += amount
}

// handTotal 结算用总分；和牌者按和牌声明评分。
func (g *Game) handTotal(p *Player) int {
	var h *mahjong.Hand
	var err error
	if p == g.winner {
		h, err = p.WinningHand(g.Ruleset, g.RoundWind())
	} else {
		h, err = p.Hand(g.Ruleset, g.RoundWind())
	}
	if err != nil {
		g.log.WithError(err).WithField("player", p.Name).Error("score hand")
		return 0
	}
	return h.Total()
}

// payHand 单手结算。违例者单付全桌时只此一笔；
// 否则赢家向各家收取、闲家互找差额，涉及东家的支付翻倍。
func (g *Game) payHand() {
	totals := make(map[*Player]int, 4)
	var guilty *Player
	for _, p := range g.Players {
		totals[p] = g.handTotal(p)
		if p == g.winner {
			continue
		}
		for _, r := range p.manual {
			if r.PayForAll() {
				guilty = p
			}
		}
	}

	if g.winner != nil && guilty != nil {
		score := totals[g.winner]
		if g.winner == g.East() {
			score *= 6
		} else {
			score *= 4
		}
		guilty.getsPayment(-score)
		g.winner.getsPayment(score)
		return
	}

	east := g.East()
	for _, p1 := range g.Players {
		for _, p2 := range g.Players {
			if p1 == p2 {
				continue
			}
			efactor := 1
			if p1 == east || p2 == east {
				efactor = 2
			}
			if p2 != g.winner {
				p1.getsPayment(totals[p1] * efactor)
			}
			if p1 != g.winner {
				p1.getsPayment(-totals[p2] * efactor)
			}
		}
	}
}

// ApplyPenalty 在正常结算之外执行罚则：每个违例者付出罚额，
// 罚金总额均分给受偿者。人数与规则选项不符时返回错误。
func (g *Game) ApplyPenalty(rule *mahjong.Rule, payers, payees []*Player) error {
	wantPayers := rule.IntOption("payers", 1)
	wantPayees := rule.IntOption("payees", 1)
	if len(payers) != wantPayers || len(payees) != wantPayees {
		return fmt.Errorf("penalty %s needs %d payers and %d payees", rule.Name, wantPayers, wantPayees)
	}
	amount := -rule.Score.Points // 罚则分值为负
	for _, p := range payers {
		p.getsPayment(-amount)
	}
	pot := amount * len(payers)
	share := pot / len(payees)
	for _, p := range payees {
		p.getsPayment(share)
	}
	return nil
}
