package mahjong

// 单面子谓词。可配置的结构体实例在 init 中按名注册，
// 规则集定义串 "F<名字>" 经注册表解析到这里。

// pungKongCode 明暗×幺九字的刻杠价值表
type pungKongCode struct {
	name      string
	kong      bool
	concealed bool
	major     bool
}

func (c pungKongCode) CodeName() string { return c.name }

func (c pungKongCode) MayApplyToMeld(m *Meld) bool {
	if c.kong {
		return m.IsKong()
	}
	return m.IsPung()
}

func (c pungKongCode) AppliesToMeld(h *Hand, m *Meld) bool {
	if !c.MayApplyToMeld(m) {
		return false
	}
	if m.IsConcealed() != c.concealed {
		return false
	}
	return m.First().IsMajor() == c.major
}

// dragonMeldCode 箭牌刻杠
type dragonMeldCode struct {
	name string
	pair bool
}

func (c dragonMeldCode) CodeName() string { return c.name }

func (c dragonMeldCode) MayApplyToMeld(m *Meld) bool {
	if c.pair {
		return m.IsPair()
	}
	return m.IsPungKong()
}

func (c dragonMeldCode) AppliesToMeld(h *Hand, m *Meld) bool {
	return c.MayApplyToMeld(m) && m.First().IsDragon()
}

// windMeldCode 门风/圈风的对刻杠
type windMeldCode struct {
	name  string
	pair  bool
	round bool // true 圈风，false 门风
}

func (c windMeldCode) CodeName() string { return c.name }

func (c windMeldCode) MayApplyToMeld(m *Meld) bool {
	if c.pair {
		return m.IsPair()
	}
	return m.IsPungKong()
}

func (c windMeldCode) AppliesToMeld(h *Hand, m *Meld) bool {
	if !c.MayApplyToMeld(m) || !m.First().IsWind() {
		return false
	}
	want := h.OwnWind
	if c.round {
		want = h.RoundWind
	}
	return m.First().Key() == want.Key()
}

// bonusCode 花牌与季牌
type bonusCode struct {
	name  string
	group EGroup
	own   bool // 是否要求与门风同位
}

func (c bonusCode) CodeName() string { return c.name }

func (c bonusCode) MayApplyToMeld(m *Meld) bool {
	return m.IsBonus()
}

func (c bonusCode) AppliesToMeld(h *Hand, m *Meld) bool {
	if !m.IsBonus() || m.First().Group() != c.group {
		return false
	}
	if c.own {
		return m.First().Point() == h.OwnWind.Point()
	}
	return true
}

func init() {
	RegisterRuleCode(
		pungKongCode{name: "ExposedPungMinor"},
		pungKongCode{name: "ExposedPungMajor", major: true},
		pungKongCode{name: "ConcealedPungMinor", concealed: true},
		pungKongCode{name: "ConcealedPungMajor", concealed: true, major: true},
		pungKongCode{name: "ExposedKongMinor", kong: true},
		pungKongCode{name: "ExposedKongMajor", kong: true, major: true},
		pungKongCode{name: "ConcealedKongMinor", kong: true, concealed: true},
		pungKongCode{name: "ConcealedKongMajor", kong: true, concealed: true, major: true},

		dragonMeldCode{name: "DragonPungKong"},
		dragonMeldCode{name: "DragonPair", pair: true},
		windMeldCode{name: "OwnWindPungKong"},
		windMeldCode{name: "OwnWindPair", pair: true},
		windMeldCode{name: "RoundWindPungKong", round: true},
		windMeldCode{name: "RoundWindPair", pair: true, round: true},

		bonusCode{name: "Flower", group: GroupFlower},
		bonusCode{name: "Season", group: GroupSeason},
		bonusCode{name: "OwnFlower", group: GroupFlower, own: true},
		bonusCode{name: "OwnSeason", group: GroupSeason, own: true},
	)
}
