package mahjong

// 最后一张来源与宣告类规则。多数只在 winnerRules 表中出现。

type sourceCode struct {
	name    string
	sources string // 接受的来源字符
	// 额外的限定牌（如杠上梅花必须是五筒）
	tile Tile
}

func (c sourceCode) CodeName() string { return c.name }

func (c sourceCode) AppliesToHand(h *Hand) bool {
	found := false
	for i := 0; i < len(c.sources); i++ {
		if h.LastSource == ESource(c.sources[i]) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if c.tile != TileNull && h.LastTile.Key() != c.tile.Key() {
		return false
	}
	return true
}

type announceCode struct {
	name string
	flag byte
}

func (c announceCode) CodeName() string { return c.name }

func (c announceCode) AppliesToHand(h *Hand) bool {
	return h.HasAnnouncement(c.flag)
}

// originalCallCode 原叫规则兼管鸣牌意愿：原叫家不再吃碰杠。
type originalCallCode struct {
	announceCode
}

func (c originalCallCode) Claimness(h *Hand, discard Tile) Claimness {
	if !h.HasAnnouncement(AnnounceOriginalCall) {
		return nil
	}
	return Claimness{MessageChow: -1, MessagePung: -1, MessageKong: -1}
}

// blessingCode 天和地和：庄家第 14 张起手成和，或闲家以庄家头一张打牌成和。
type blessingCode struct {
	name string
	east bool
}

func (c blessingCode) CodeName() string { return c.name }

func (c blessingCode) AppliesToHand(h *Hand) bool {
	if h.LastSource != SourceEast14th {
		return false
	}
	return (h.OwnWind == TileWindEast) == c.east
}

// lastPairCode 最后一张完成对子
type lastPairCode struct {
	name  string
	major bool
}

func (c lastPairCode) CodeName() string { return c.name }

func (c lastPairCode) AppliesToHand(h *Hand) bool {
	if h.LastMeld == nil || !h.LastMeld.IsPair() {
		return false
	}
	if !h.LastMeld.Tiles().Contains(h.LastTile) {
		return false
	}
	return h.LastMeld.First().IsMajor() == c.major
}

// dangerousGameCode 放铳顶付：由计分者手工勾选的 loser 规则。
type dangerousGameCode struct{}

func (dangerousGameCode) CodeName() string { return "DangerousGame" }

func (dangerousGameCode) SelectableByHand(h *Hand) bool {
	return !h.MJDeclared
}

// AppliesToHand 永假：只经手工选择生效。
func (dangerousGameCode) AppliesToHand(h *Hand) bool { return false }

func init() {
	RegisterRuleCode(
		sourceCode{name: "LastTileFromWall", sources: "wz", tile: TileNull},
		sourceCode{name: "LastTileFromDeadWall", sources: "e", tile: TileNull},
		sourceCode{name: "IsLastTileFromWall", sources: "z", tile: TileNull},
		sourceCode{name: "IsLastTileFromWallDiscarded", sources: "Z", tile: TileNull},
		sourceCode{name: "RobbingKong", sources: "k", tile: TileNull},
		sourceCode{
			name:    "GatheringPlumBlossomFromRoof",
			sources: "e",
			tile:    MakeTile(GroupStone, 4),
		},
		sourceCode{
			name:    "PluckingMoonFromBottomOfSea",
			sources: "z",
			tile:    MakeTile(GroupStone, 0),
		},
		sourceCode{
			name:    "ScratchingCarryingPole",
			sources: "k",
			tile:    MakeTile(GroupBamboo, 1),
		},
		originalCallCode{announceCode{name: "MahJonggWithOriginalCall", flag: AnnounceOriginalCall}},
		announceCode{name: "TwofoldFortune", flag: AnnounceTwofoldFortune},
		blessingCode{name: "BlessingOfHeaven", east: true},
		blessingCode{name: "BlessingOfEarth"},
		lastPairCode{name: "LastTileCompletesPairMinor"},
		lastPairCode{name: "LastTileCompletesPairMajor", major: true},
		dangerousGameCode{},
	)
}
