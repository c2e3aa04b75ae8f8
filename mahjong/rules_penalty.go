package mahjong

// 罚则与换风类规则。罚则不参与手牌评分，由状态机在 payHand 之外执行；
// payers/payees 人数在规则选项里。

type penaltyCode struct {
	name string
}

func (c penaltyCode) CodeName() string { return c.name }

// 罚则不自动命中任何手牌。
func (c penaltyCode) AppliesToHand(h *Hand) bool { return false }

func (c penaltyCode) SelectableByHand(h *Hand) bool { return true }

// eastNineCode 东家同圈连和九次，整局结束。
// 连和计数来自对局，不来自手牌，因此作为换风钩子实现；
// 命中时状态机把对应规则按手工规则记入胜者分。
type eastNineCode struct {
	needWins int
}

func (c eastNineCode) CodeName() string { return "EastWonNineTimes" }

func (c eastNineCode) Rotate(g RotationGame) bool {
	return g.WinnerWind() == TileWindEast && g.EastWinStreak() >= c.needWins
}

func init() {
	RegisterRuleCode(
		penaltyCode{name: "FalseNamingOfDiscard"},
		penaltyCode{name: "FalseDeclarationOfMahJongg"},
		penaltyCode{name: "FalseNamingClaimedForMahJongg"},
		eastNineCode{needWins: 9},
	)
}
