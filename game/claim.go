package game

import (
	"time"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

// claim 一名玩家对弃牌的应答。
type claim struct {
	player *Player
	msg    mahjong.Message
}

// claimArbiter 收集弃牌应答并按优先级裁决。
// 应答经缓冲通道提交；超时未答按过牌处理。
type claimArbiter struct {
	answers chan claim
	timeout time.Duration
	pending map[*Player]bool
}

func newClaimArbiter(timeout time.Duration) *claimArbiter {
	return &claimArbiter{
		answers: make(chan claim, 3),
		timeout: timeout,
	}
}

// Expect 登记待应答的玩家。
func (a *claimArbiter) Expect(players ...*Player) {
	a.pending = make(map[*Player]bool, len(players))
	for _, p := range players {
		a.pending[p] = true
	}
}

// Submit 提交应答；未登记或重复提交被忽略。
func (a *claimArbiter) Submit(p *Player, msg mahjong.Message) {
	if !a.pending[p] {
		return
	}
	a.answers <- claim{player: p, msg: msg}
}

// Decide 等待全部应答或超时，返回胜出的鸣牌。
// 同级应答按 order 中靠前者（离弃牌者近者）优先；全过返回 false。
func (a *claimArbiter) Decide(order [4]*Player) (claim, bool) {
	got := make(map[*Player]claim, len(a.pending))
	deadline := time.After(a.timeout)
collect:
	for len(got) < len(a.pending) {
		select {
		case c := <-a.answers:
			if a.pending[c.player] {
				if _, dup := got[c.player]; !dup {
					got[c.player] = c
				}
			}
		case <-deadline:
			break collect
		}
	}
	best := claim{msg: mahjong.MessageDiscard}
	found := false
	for _, p := range order {
		c, ok := got[p]
		if !ok || c.msg == mahjong.MessageDiscard {
			continue
		}
		if !found || c.msg > best.msg {
			best = c
			found = true
		}
	}
	return best, found
}
