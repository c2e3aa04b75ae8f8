package mahjong_test

import (
	"testing"

	"github.com/kevin-chtw/tw_mahjong/mahjong"
)

func TestPredefinedRulesets(t *testing.T) {
	names := make(map[string]bool)
	for _, rs := range mahjong.PredefinedRulesets() {
		names[rs.Name] = true
	}
	for _, want := range []string{"Classical Chinese DMJL", "Classical Chinese BMJA"} {
		if !names[want] {
			t.Errorf("predefined ruleset %q missing", want)
		}
	}
}

func TestRulesetParameters(t *testing.T) {
	dmjl := mahjong.PredefinedRuleset("Classical Chinese DMJL")
	if dmjl == nil {
		t.Fatal("DMJL not registered")
	}
	if dmjl.Limit != 500 || dmjl.MaxChows != 4 || dmjl.MustDeclareCallingHand {
		t.Errorf("DMJL parameters wrong: %+v", dmjl)
	}
	bmja := mahjong.PredefinedRuleset("Classical Chinese BMJA")
	if bmja == nil {
		t.Fatal("BMJA not registered")
	}
	if bmja.Limit != 1000 || bmja.MaxChows != 1 || !bmja.MustDeclareCallingHand {
		t.Errorf("BMJA parameters wrong: %+v", bmja)
	}
}

func TestRulesetHashInvariant(t *testing.T) {
	rs := mahjong.PredefinedRuleset("Classical Chinese DMJL").Copy("scratch")
	before := rs.Hash()

	extra, err := mahjong.NewRule("Scratch Rule", "FNoChow", mahjong.Score{Doubles: 1})
	if err != nil {
		t.Fatal(err)
	}
	rs.AddRule(mahjong.ListWinner, extra)
	if rs.Hash() == before {
		t.Error("hash should change after adding a rule")
	}
	rs.RemoveRule(mahjong.ListWinner, "Scratch Rule")
	if rs.Hash() != before {
		t.Error("hash should be restored after removing the same rule")
	}
}

func TestRulesetCopyKeepsHash(t *testing.T) {
	rs := mahjong.PredefinedRuleset("Classical Chinese DMJL")
	clone := rs.Copy("renamed")
	if clone.Hash() != rs.Hash() {
		t.Error("copy under a new name must keep the content hash")
	}
	if clone.Limit != rs.Limit || clone.MaxChows != rs.MaxChows {
		t.Error("copy lost resolved parameters")
	}
}

func TestRulesetRowsRoundTrip(t *testing.T) {
	rs := mahjong.PredefinedRuleset("Classical Chinese BMJA")
	loaded, err := mahjong.LoadRows(rs.Name, rs.Rows())
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Hash() != rs.Hash() {
		t.Error("LoadRows(Rows()) should reproduce the same hash")
	}
	if loaded.Limit != rs.Limit || loaded.MustDeclareCallingHand != rs.MustDeclareCallingHand {
		t.Error("parameters lost in row round trip")
	}
}

func TestLoadRowsRejectsUnknownCode(t *testing.T) {
	rows := []mahjong.RuleRow{{
		List:       mahjong.ListWinner,
		Position:   0,
		Name:       "Ghost",
		Definition: "FNoSuchRuleCode",
	}}
	if _, err := mahjong.LoadRows("broken", rows); err == nil {
		t.Error("expected error for unknown rule code")
	}
}

func TestRuleDefinitionParsing(t *testing.T) {
	r, err := mahjong.NewRule("penalty", "FFalseNamingOfDiscard||Opayers=1 payees=3", mahjong.Score{Points: -50})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.IntOption("payers", 0); got != 1 {
		t.Errorf("payers = %d", got)
	}
	if got := r.IntOption("payees", 0); got != 3 {
		t.Errorf("payees = %d", got)
	}
	if _, err := mahjong.NewRule("bad", "Fnope", mahjong.Score{}); err == nil {
		t.Error("unknown code must fail")
	}
	if _, err := mahjong.NewRule("bad", "Opayforall", mahjong.Score{}); err == nil {
		t.Error("definition without a code must fail")
	}
}
