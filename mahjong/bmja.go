package mahjong

// ClassicalBMJA 英国麻将协会口径；只许一搭顺子，听牌必须报。
func ClassicalBMJA() *Ruleset {
	rs := newClassicalChinese("Classical Chinese BMJA")
	rs.Description = "Classical Chinese as defined by the British Mah-Jong Association"

	rs.addIntParameter("limit", 1000)
	rs.addIntParameter("maxChows", 1)
	rs.addBoolParameter("mustDeclareCallingHand", true)

	for _, r := range []*Rule{
		mustRule("Standard Mah Jongg", "FStandardMahJongg", points(20)),
		mustRule("Gates of Heaven", "FGatesOfHeaven", limits(1)),
		mustRule("Thirteen Unique Wonders", "FThirteenOrphans", limits(1)),
		mustRule("Wriggling Snake", "FWrigglingSnake", limits(1)),
		mustRule("Triple Knitting", "FTripleKnitting", limits(0.5)),
		mustRule("Knitting", "FKnitting", limits(0.5)),
		mustRule("All Pair Honors", "FAllPairHonors", limits(0.5)),
	} {
		rs.AddRule(ListMJ, r)
	}
	return rs
}

// classicalBMJARoofOff 无封顶变体。
func classicalBMJARoofOff() *Ruleset {
	rs := ClassicalBMJA().Copy("Classical Chinese BMJA - unlimited")
	rs.Description = "Classical Chinese BMJA without the point roof"
	rs.addBoolParameter("roofOff", true)
	return rs
}

func init() {
	RegisterRuleset(ClassicalBMJA)
	RegisterRuleset(classicalBMJARoofOff)
}
