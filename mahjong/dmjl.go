package mahjong

import "fmt"

// 预置规则集的表项都是静态的，坏定义直接 panic。
func mustRule(name, definition string, score Score) *Rule {
	r, err := NewRule(name, definition, score)
	if err != nil {
		panic(fmt.Sprintf("predefined rule: %v", err))
	}
	return r
}

func points(n int) Score     { return Score{Points: n} }
func doubles(n int) Score    { return Score{Doubles: n} }
func limits(x float64) Score { return Score{Limits: x} }

// newClassicalChinese 两种古典中式规则集的公共部分。
func newClassicalChinese(name string) *Ruleset {
	rs := NewRuleset(name)

	rs.addIntParameter("limit", 500)
	rs.addIntParameter("minMJPoints", 0)
	rs.addIntParameter("minMJDoubles", 0)
	rs.addIntParameter("maxChows", 4)
	rs.addIntParameter("minRounds", 4)
	rs.addBoolParameter("withBonusTiles", true)
	rs.addBoolParameter("mustDeclareCallingHand", false)
	rs.addIntParameter("claimTimeout", 10000)
	rs.addStrParameter("seatExchange", "SWEN,SE,WE")

	for _, r := range []*Rule{
		mustRule("Exposed Pung", "FExposedPungMinor", points(2)),
		mustRule("Exposed Pung of Terminals or Honors", "FExposedPungMajor", points(4)),
		mustRule("Concealed Pung", "FConcealedPungMinor", points(4)),
		mustRule("Concealed Pung of Terminals or Honors", "FConcealedPungMajor", points(8)),
		mustRule("Exposed Kong", "FExposedKongMinor", points(8)),
		mustRule("Exposed Kong of Terminals or Honors", "FExposedKongMajor", points(16)),
		mustRule("Concealed Kong", "FConcealedKongMinor", points(16)),
		mustRule("Concealed Kong of Terminals or Honors", "FConcealedKongMajor", points(32)),
		mustRule("Pung or Kong of Dragons", "FDragonPungKong", doubles(1)),
		mustRule("Pair of Dragons", "FDragonPair", points(2)),
		mustRule("Pung or Kong of Own Wind", "FOwnWindPungKong", doubles(1)),
		mustRule("Pair of Own Wind", "FOwnWindPair", points(2)),
		mustRule("Pung or Kong of Round Wind", "FRoundWindPungKong", doubles(1)),
		mustRule("Pair of Round Wind", "FRoundWindPair", points(2)),
		mustRule("Flower", "FFlower", points(4)),
		mustRule("Season", "FSeason", points(4)),
	} {
		rs.AddRule(ListMeld, r)
	}

	for _, r := range []*Rule{
		mustRule("Own Flower and Own Season", "FOwnFlowerOwnSeason", doubles(1)),
		mustRule("All Flowers", "FAllFlowers", doubles(1)),
		mustRule("All Seasons", "FAllSeasons", doubles(1)),
		mustRule("Three Concealed Pongs", "FThreeConcealedPongs", doubles(1)),
		mustRule("Little Three Dragons", "FLittleThreeDragons", doubles(1)),
		mustRule("Big Three Dragons", "FBigThreeDragons", doubles(2)),
		mustRule("Little Four Joys", "FLittleFourJoys", doubles(1)),
		mustRule("Big Four Joys", "FBigFourJoys", doubles(2)),
		mustRule("False Color Game", "FFalseColorGame", doubles(1)),
		mustRule("True Color Game", "FTrueColorGame", doubles(3)),
		mustRule("Only Terminals and Honors", "FOnlyMajors", doubles(1)),
	} {
		rs.AddRule(ListHand, r)
	}

	for _, r := range []*Rule{
		mustRule("Zero Point Hand", "FZeroPointHand", doubles(1)),
		mustRule("No Chow", "FNoChow", doubles(1)),
		mustRule("Only Concealed Melds", "FOnlyConcealedMelds", doubles(1)),
		mustRule("Last Tile Taken from the Wall", "FLastTileFromWall", points(2)),
		mustRule("Last Tile Taken from the Dead Wall", "FLastTileFromDeadWall", doubles(1)),
		mustRule("Last Tile of the Wall", "FIsLastTileFromWall", doubles(1)),
		mustRule("Last Tile of the Wall Discarded", "FIsLastTileFromWallDiscarded", doubles(1)),
		mustRule("Robbing the Kong", "FRobbingKong", doubles(1)),
		mustRule("Mah Jongg with Original Call", "FMahJonggWithOriginalCall", doubles(1)),
		mustRule("Last Tile Completes Pair of 2..8", "FLastTileCompletesPairMinor", points(2)),
		mustRule("Last Tile Completes Pair of Terminals or Honors", "FLastTileCompletesPairMajor", points(4)),
		mustRule("Twofold Fortune", "FTwofoldFortune", limits(1)),
		mustRule("Blessing of Heaven", "FBlessingOfHeaven", limits(1)),
		mustRule("Blessing of Earth", "FBlessingOfEarth", limits(1)),
		mustRule("Only Honors", "FOnlyHonors", limits(1)),
		mustRule("All Terminals", "FAllTerminals", limits(1)),
		mustRule("All Greens", "FAllGreen", limits(1)),
		mustRule("Hidden Treasure", "FHiddenTreasure", limits(1)),
		mustRule("Buried Treasure", "FBuriedTreasure", limits(1)),
		mustRule("Three Great Scholars", "FThreeGreatScholars", limits(1)),
		mustRule("Four Blessings Hovering Over the Door", "FBigFourJoys", limits(1)),
		mustRule("Gathering the Plum Blossom from the Roof", "FGatheringPlumBlossomFromRoof", limits(1)),
		mustRule("Plucking the Moon from the Bottom of the Sea", "FPluckingMoonFromBottomOfSea", limits(1)),
		mustRule("Scratching a Carrying Pole", "FScratchingCarryingPole", limits(1)),
		mustRule("East Won Nine Times in a Row", "FEastWonNineTimes", limits(1)),
	} {
		rs.AddRule(ListWinner, r)
	}

	rs.AddRule(ListLoser, mustRule("Dangerous Game", "FDangerousGame||Opayforall", Score{}))

	for _, r := range []*Rule{
		mustRule("False Naming of Discard, Claimed for Chow/Pung/Kong",
			"FFalseNamingOfDiscard||Opayers=1 payees=1", points(-50)),
		mustRule("False Declaration of Mah Jongg",
			"FFalseDeclarationOfMahJongg||Opayers=1 payees=3", points(-300)),
		mustRule("False Naming of Discard, Claimed for Mah Jongg",
			"FFalseNamingClaimedForMahJongg||Opayers=1 payees=3", points(-300)),
	} {
		rs.AddRule(ListPenalty, r)
	}

	return rs
}

// ClassicalDMJL 德国麻将联盟口径的古典中式规则集。
func ClassicalDMJL() *Ruleset {
	rs := newClassicalChinese("Classical Chinese DMJL")
	rs.Description = "Classical Chinese as defined by the Deutsche Mah Jongg Liga e.V."

	for _, r := range []*Rule{
		mustRule("Standard Mah Jongg", "FStandardMahJongg", points(20)),
		mustRule("Nine Gates", "FNineGates", limits(1)),
		mustRule("Thirteen Orphans", "FThirteenOrphans", limits(1)),
		mustRule("Squirming Snake", "FSquirmingSnake", limits(1)),
	} {
		rs.AddRule(ListMJ, r)
	}
	return rs
}

func init() {
	RegisterRuleset(ClassicalDMJL)
}
