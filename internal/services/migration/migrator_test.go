package migration_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/services/migration"
)

const (
	legacySkillMapSheet = `{
		"name": "Tordek",
		"skills": {"stealth": false, "athletics": true}
	}`

	legacyScoreSheet = `{
		"abilityScores": {"str": 16, "dex": "14", "con": 0, "int": {"base": 12, "race": 1}}
	}`

	retiredSpellSheet = `{
		"spells": [
			{"id": "100", "name": "Bless", "concentration": true, "material": "holy water"},
			{"id": "101", "name": "Light"},
			{"id": "102", "name": "Shield", "duration": "1 round"}
		]
	}`

	malformedListSheet = `{
		"weapons": [
			"not an entry",
			{"name": "Handaxe", "attack": 5},
			{"id": 103, "name": "Longbow"},
			{"id": "103", "name": "Shortbow", "extra": "dropped"}
		]
	}`
)

type MigratorTestSuite struct {
	suite.Suite
	migrator migration.Migrator
}

func TestMigratorTestSuite(t *testing.T) {
	suite.Run(t, new(MigratorTestSuite))
}

func (s *MigratorTestSuite) SetupTest() {
	s.migrator = migration.New()
}

func (s *MigratorTestSuite) normalizeJSON(data string) *sheet.Document {
	raw, err := s.migrator.Decode([]byte(data))
	s.Require().NoError(err)

	doc, err := s.migrator.Normalize(raw)
	s.Require().NoError(err)
	return doc
}

func (s *MigratorTestSuite) TestDecode_InvalidJSON() {
	for _, data := range []string{`{"name":`, `not json`, `{} {}`, ``} {
		_, err := s.migrator.Decode([]byte(data))
		s.True(errors.IsParseFailure(err), "input %q", data)
	}
}

func (s *MigratorTestSuite) TestNormalize_MalformedInput() {
	testCases := []struct {
		name string
		raw  any
	}{
		{name: "nil", raw: nil},
		{name: "string", raw: "hello"},
		{name: "number", raw: json.Number("4")},
		{name: "list", raw: []any{map[string]any{}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			doc, err := s.migrator.Normalize(tc.raw)

			s.True(errors.IsMalformedInput(err))
			s.Equal(sheet.Default(), doc)
		})
	}
}

func (s *MigratorTestSuite) TestNormalize_EmptyObjectIsDefault() {
	s.Equal(sheet.Default(), s.normalizeJSON(`{}`))
}

func (s *MigratorTestSuite) TestNormalize_LegacySkillMap() {
	doc := s.normalizeJSON(legacySkillMapSheet)

	s.Equal("Tordek", doc.Name)
	s.Equal([]sheet.Skill{
		{ID: "1", Name: "Stealth", Ability: sheet.AbilityDex, Modifier: "+0"},
		{ID: "2", Name: "Athletics", Ability: sheet.AbilityStr, Modifier: "+0"},
	}, doc.Skills)
}

func (s *MigratorTestSuite) TestNormalize_LegacySkillMapFollowsWrittenOrder() {
	doc := s.normalizeJSON(`{"skills": {"survival": true, "acrobatics": false, "cooking": true, "sleight-of-hand": true}}`)

	s.Equal([]sheet.Skill{
		{ID: "1", Name: "Survival", Ability: sheet.AbilityWis, Modifier: "+0"},
		{ID: "2", Name: "Acrobatics", Ability: sheet.AbilityDex, Modifier: "+0"},
		{ID: "3", Name: "cooking", Ability: sheet.AbilityStr, Modifier: "+0"},
		{ID: "4", Name: "Sleight of Hand", Ability: sheet.AbilityDex, Modifier: "+0"},
	}, doc.Skills)
}

func (s *MigratorTestSuite) TestParse_EnvelopedLegacySkillMapFollowsWrittenOrder() {
	out, err := s.migrator.Parse([]byte(`{
		"character-definition": {"name": "Mialee", "skills": {"stealth": true, "arcana": true}},
		"sheet-layout": {}
	}`))
	s.Require().NoError(err)

	s.True(out.Enveloped)
	s.Equal([]sheet.Skill{
		{ID: "1", Name: "Stealth", Ability: sheet.AbilityDex, Modifier: "+0"},
		{ID: "2", Name: "Arcana", Ability: sheet.AbilityInt, Modifier: "+0"},
	}, out.Document.Skills)
}

func (s *MigratorTestSuite) TestNormalize_UnorderedSkillMapIsSorted() {
	doc, err := s.migrator.Normalize(map[string]any{
		"skills": map[string]any{"stealth": true, "athletics": false},
	})
	s.Require().NoError(err)

	s.Equal([]sheet.Skill{
		{ID: "1", Name: "Athletics", Ability: sheet.AbilityStr, Modifier: "+0"},
		{ID: "2", Name: "Stealth", Ability: sheet.AbilityDex, Modifier: "+0"},
	}, doc.Skills)
}

func (s *MigratorTestSuite) TestNormalize_LegacyAbilityScores() {
	doc := s.normalizeJSON(legacyScoreSheet)

	s.Equal(sheet.AbilityScoreBreakdown{Base: 16}, doc.AbilityScores.Str)
	s.Equal(sheet.AbilityScoreBreakdown{Base: 14}, doc.AbilityScores.Dex)
	s.Equal(sheet.AbilityScoreBreakdown{Base: 10}, doc.AbilityScores.Con)
	s.Equal(sheet.AbilityScoreBreakdown{Base: 12, Race: 1}, doc.AbilityScores.Int)
	s.Equal(sheet.DefaultBreakdown(), doc.AbilityScores.Wis)
	// modifiers are never re-derived on load
	s.Equal("+0", doc.AbilityModifiers.Str)
}

func (s *MigratorTestSuite) TestNormalize_BreakdownKeepsZeroAndClamps() {
	doc := s.normalizeJSON(`{"abilityScores": {"str": {"base": 0, "race": -40, "magic": null}}}`)

	s.Equal(sheet.AbilityScoreBreakdown{Base: 1, Race: -10}, doc.AbilityScores.Str)
}

func (s *MigratorTestSuite) TestNormalize_SpellMigration() {
	doc := s.normalizeJSON(retiredSpellSheet)

	s.Equal([]sheet.Spell{
		{ID: "100", Name: "Bless"},
		{ID: "101", Name: "Light"},
		{ID: "102", Name: "Shield", Duration: "1 round"},
	}, doc.Spells)
}

func (s *MigratorTestSuite) TestNormalize_RepairsMalformedEntries() {
	doc := s.normalizeJSON(malformedListSheet)

	s.Equal([]sheet.Weapon{
		{ID: "104", Name: "Handaxe", Attack: "5"},
		{ID: "103", Name: "Longbow"},
		{ID: "105", Name: "Shortbow"},
	}, doc.Weapons)
}

func (s *MigratorTestSuite) TestNormalize_NonListsBecomeDefaults() {
	doc := s.normalizeJSON(`{"weapons": {"a": 1}, "spells": "none", "skills": 7}`)

	s.Equal([]sheet.Weapon{}, doc.Weapons)
	s.Equal([]sheet.Spell{}, doc.Spells)
	s.Equal(sheet.Default().Skills, doc.Skills)
}

func (s *MigratorTestSuite) TestNormalize_DefinedValuesWin() {
	doc := s.normalizeJSON(`{
		"name": "",
		"armorClass": 0,
		"shield": true,
		"level": 3,
		"speed": null,
		"hitPoints": {"max": "12", "current": 7.9, "temp": "lots"},
		"deathSaves": {"success": [true, null], "failure": "x"},
		"savingThrows": {"wis": true},
		"spellSlots": {"level1": {"max": 4}},
		"coins": {"gp": 15},
		"unknownField": 12
	}`)

	def := sheet.Default()
	s.Equal("", doc.Name)
	s.Equal(0, doc.ArmorClass)
	s.True(doc.Shield)
	s.Equal("3", doc.Level)
	s.Equal(def.Speed, doc.Speed)
	s.Equal(sheet.HitPoints{Max: 12, Current: 7}, doc.HitPoints)
	s.Equal([3]bool{true, false, false}, doc.DeathSaves.Success)
	s.Equal([3]bool{}, doc.DeathSaves.Failure)
	s.True(doc.SavingThrows.Wis)
	s.False(doc.SavingThrows.Str)
	s.Equal(sheet.SpellSlot{Max: 4}, doc.SpellSlots.Level1)
	s.Equal(sheet.Coins{GP: 15}, doc.Coins)
}

func (s *MigratorTestSuite) TestNormalize_Idempotent() {
	fixtures := []string{
		`{}`,
		legacySkillMapSheet,
		legacyScoreSheet,
		retiredSpellSheet,
		malformedListSheet,
		`{"abilityScores": null, "deathSaves": {"success": [1, "yes", true]}}`,
	}

	for _, fixture := range fixtures {
		once := s.normalizeJSON(fixture)

		twice, err := s.migrator.Normalize(once)
		s.Require().NoError(err)
		s.Equal(once, twice, "fixture %s", fixture)
	}
}

func (s *MigratorTestSuite) TestNormalize_AbilityScoresAlwaysComplete() {
	fixtures := []string{
		`{}`,
		`{"abilityScores": null}`,
		`{"abilityScores": "high"}`,
		`{"abilityScores": {"str": 40, "dex": -3}}`,
		`{"abilityScores": {"cha": {"asi": 99, "feat": "2"}}}`,
	}

	for _, fixture := range fixtures {
		doc := s.normalizeJSON(fixture)
		for _, a := range sheet.Abilities {
			b := doc.AbilityScores.Get(a)
			s.GreaterOrEqual(b.Base, sheet.MinScore, fixture)
			s.LessOrEqual(b.Base, sheet.MaxScore, fixture)
			for _, bonus := range []int{b.Race, b.ASI, b.Feat, b.Magic} {
				s.GreaterOrEqual(bonus, sheet.MinBonus, fixture)
				s.LessOrEqual(bonus, sheet.MaxBonus, fixture)
			}
		}
	}
}

func (s *MigratorTestSuite) TestParse_EnvelopeAndBare() {
	doc := sheet.Default()
	doc.Name = "Mialee"
	doc.Weapons = []sheet.Weapon{{ID: "100", Name: "Quarterstaff"}}

	envelope, err := json.Marshal(sheet.Envelope{Document: doc, Layout: json.RawMessage(`{"left":40}`)})
	s.Require().NoError(err)
	bare, err := json.Marshal(doc)
	s.Require().NoError(err)

	out, err := s.migrator.Parse(envelope)
	s.Require().NoError(err)
	s.True(out.Enveloped)
	s.Equal(doc, out.Document)
	s.JSONEq(`{"left":40}`, string(out.Layout))

	out, err = s.migrator.Parse(bare)
	s.Require().NoError(err)
	s.False(out.Enveloped)
	s.Equal(doc, out.Document)
	s.JSONEq(`{}`, string(out.Layout))
}

func (s *MigratorTestSuite) TestParse_EnvelopeWithNullDocument() {
	_, err := s.migrator.Parse([]byte(`{"character-definition": null, "sheet-layout": {}}`))

	s.True(errors.IsMalformedInput(err))
}
