package document_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/orchestrators/document"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
)

type StoreTestSuite struct {
	suite.Suite
	clock   *clock.Fake
	store   document.Store
	changes []document.Change
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.clock = clock.NewFake(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	store, err := document.New(&document.Config{Clock: s.clock})
	s.Require().NoError(err)
	s.store = store

	s.changes = nil
	s.store.OnChange(func(c document.Change) {
		s.changes = append(s.changes, c)
	})
}

func (s *StoreTestSuite) TestNew_RequiresClock() {
	_, err := document.New(&document.Config{})
	s.Error(err)

	_, err = document.New(nil)
	s.Error(err)
}

func (s *StoreTestSuite) TestDebounceCoalescesEdits() {
	for _, name := range []string{"R", "Re", "Reg"} {
		s.Require().NoError(s.store.SetField("name", name))
		s.clock.Advance(100 * time.Millisecond)
	}
	s.False(s.store.CanUndo())

	s.clock.Advance(399 * time.Millisecond)
	s.False(s.store.CanUndo())
	s.Empty(s.changes)

	s.clock.Advance(time.Millisecond)
	s.True(s.store.CanUndo())
	s.Require().Len(s.changes, 1)
	s.Equal(document.ReasonEdit, s.changes[0].Reason)
	s.Equal("Reg", s.changes[0].Document.Name)

	s.True(s.store.Undo())
	s.Equal("", s.store.Document().Name)
	s.True(s.store.Redo())
	s.Equal("Reg", s.store.Document().Name)
}

func (s *StoreTestSuite) TestStructuralActionCancelsPendingSnapshot() {
	s.Require().NoError(s.store.SetField("name", "Lidda"))
	id := s.store.AddWeapon(sheet.Weapon{Name: "Shortsword"})
	s.Equal("100", id)

	s.clock.Advance(time.Second)

	s.Require().Len(s.changes, 1)
	s.Equal(document.ReasonStructure, s.changes[0].Reason)
	s.Equal("Lidda", s.changes[0].Document.Name)
	s.Equal(0, s.clock.Pending())
}

func (s *StoreTestSuite) TestUndoDropsPendingEdit() {
	s.store.AddSpell(sheet.Spell{Name: "Light"})
	s.Require().NoError(s.store.SetField("notes", "typing"))

	s.True(s.store.Undo())
	s.clock.Advance(time.Second)

	doc := s.store.Document()
	s.Empty(doc.Spells)
	s.Equal("", doc.Notes)
	s.True(s.store.CanRedo())
}

func (s *StoreTestSuite) TestShieldKeepsBaseArmorClass() {
	s.Require().NoError(s.store.SetField("armorClass", 15))
	s.Equal(15, s.store.Document().DisplayedArmorClass())

	s.Require().NoError(s.store.SetField("shield", true))
	doc := s.store.Document()
	s.Equal(17, doc.DisplayedArmorClass())
	s.Equal(15, doc.ArmorClass)

	s.Require().NoError(s.store.SetField("shield", false))
	s.Equal(15, s.store.Document().DisplayedArmorClass())
}

func (s *StoreTestSuite) TestAbilityEditRecomputesModifier() {
	s.Require().NoError(s.store.SetField("abilityScores.str.base", 16))
	s.Require().NoError(s.store.SetField("abilityScores.str.race", "2"))

	doc := s.store.Document()
	s.Equal("+4", doc.AbilityModifiers.Str)
	s.Equal("+0", doc.AbilityModifiers.Dex)

	// a manual override sticks until the breakdown changes again
	s.Require().NoError(s.store.SetField("abilityModifiers.str", "+9"))
	s.Equal("+9", s.store.Document().AbilityModifiers.Str)

	s.Require().NoError(s.store.SetField("abilityScores.str.base", 40))
	doc = s.store.Document()
	s.Equal(30, doc.AbilityScores.Str.Base)
	s.Equal("+10", doc.AbilityModifiers.Str)
}

func (s *StoreTestSuite) TestMutateRecomputesChangedAbilitiesOnly() {
	s.store.Mutate(func(doc *sheet.Document) {
		doc.AbilityModifiers.Wis = "+7"
		doc.AbilityScores.Dex = sheet.AbilityScoreBreakdown{Base: 3, Race: -10}
	})

	doc := s.store.Document()
	s.Equal("-5", doc.AbilityModifiers.Dex)
	s.Equal(sheet.AbilityScoreBreakdown{Base: 3, Race: -10}, doc.AbilityScores.Dex)
	s.Equal("+7", doc.AbilityModifiers.Wis)
}

func (s *StoreTestSuite) TestEntryIDsAreNeverReused() {
	s.Equal("100", s.store.AddWeapon(sheet.Weapon{Name: "Dagger"}))
	s.Equal("101", s.store.AddWeapon(sheet.Weapon{Name: "Sling"}))

	s.Require().NoError(s.store.RemoveWeapon("101"))
	s.Equal("102", s.store.AddWeapon(sheet.Weapon{Name: "Club"}))

	s.True(s.store.Undo())
	s.True(s.store.Undo())
	s.Equal("103", s.store.AddWeapon(sheet.Weapon{Name: "Spear"}))

	s.Equal([]string{"100", "101", "103"}, s.store.Document().EntryIDs(sheet.ListWeapons))
}

func (s *StoreTestSuite) TestLoadRecomputesCountersAndResetsHistory() {
	s.store.AddSkill(sheet.Skill{Name: "Cooking"})
	s.True(s.store.CanUndo())

	loaded := sheet.Default()
	loaded.Spells = []sheet.Spell{{ID: "250", Name: "Fireball"}}
	s.store.Load(loaded)

	s.False(s.store.CanUndo())
	s.False(s.store.CanRedo())
	s.Equal(document.ReasonLoad, s.changes[len(s.changes)-1].Reason)

	out, err := s.store.AddEntry(sheet.ListSpells)
	s.Require().NoError(err)
	s.Equal("251", out.ID)

	out, err = s.store.AddEntry(sheet.ListSkills)
	s.Require().NoError(err)
	s.Equal("100", out.ID)
}

func (s *StoreTestSuite) TestReplaceBypassesHistory() {
	doc := sheet.Default()
	doc.Name = "Jozan"
	s.store.Replace(doc)

	s.Equal("Jozan", s.store.Document().Name)
	s.False(s.store.CanUndo())
	s.Empty(s.changes)
}

func (s *StoreTestSuite) TestRemoveEntryErrors() {
	err := s.store.RemoveEntry(sheet.ListWeapons, "999")
	s.True(errors.IsNotFound(err))

	err = s.store.RemoveEntry(sheet.ListKind("pets"), "1")
	s.True(errors.IsInvalidArgument(err))

	_, err = s.store.AddEntry(sheet.ListKind("pets"))
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestSetFieldPaths() {
	weaponID := s.store.AddWeapon(sheet.Weapon{Name: "Mace"})

	s.Require().NoError(s.store.SetField("deathSaves.success.1", true))
	s.Require().NoError(s.store.SetField("spellSlots.level3.max", 2.0))
	s.Require().NoError(s.store.SetField("skills.4.name", "Brawn"))
	s.Require().NoError(s.store.SetField("weapons."+weaponID+".damage", "1d6"))

	doc := s.store.Document()
	s.Equal([3]bool{false, true, false}, doc.DeathSaves.Success)
	s.Equal(2, doc.SpellSlots.Level3.Max)
	s.Equal("Brawn", doc.Skills[3].Name)
	s.Equal("1d6", doc.Weapons[0].Damage)
}

func (s *StoreTestSuite) TestSetFieldRejectsBadInput() {
	testCases := []struct {
		name  string
		path  string
		value any
	}{
		{name: "empty path", path: "", value: "x"},
		{name: "nil value", path: "name", value: nil},
		{name: "unknown field", path: "favouriteColour", value: "blue"},
		{name: "container", path: "hitPoints", value: 3},
		{name: "whole entry", path: "skills.1", value: "x"},
		{name: "entry id", path: "skills.1.id", value: "7"},
		{name: "missing entry", path: "spells.100.name", value: "x"},
		{name: "index out of range", path: "deathSaves.failure.3", value: true},
		{name: "wrong type", path: "shield", value: "yes"},
		{name: "not a number", path: "armorClass", value: "high"},
		{name: "through scalar", path: "name.first", value: "x"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.store.SetField(tc.path, tc.value)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
	s.Equal(sheet.Default(), s.store.Document())
}

func (s *StoreTestSuite) TestFlush() {
	s.store.Flush()
	s.Empty(s.changes)

	s.Require().NoError(s.store.SetField("backstory", "Raised by wolves"))
	s.store.Flush()

	s.Require().Len(s.changes, 1)
	s.True(s.store.CanUndo())

	s.clock.Advance(time.Second)
	s.Len(s.changes, 1)
}
