package sheet

import (
	"slices"
	"strconv"
)

// FirstEntryID seeds the per-list id counters
const FirstEntryID = 100

// ShieldBonus is added to the displayed armor class while a shield is worn
const ShieldBonus = 2

// Document is the canonical character record
type Document struct {
	Name       string `json:"name"`
	PlayerName string `json:"playerName"`
	Race       string `json:"race"`
	Class      string `json:"class"`
	Subclass   string `json:"subclass"`
	Level      string `json:"level"`
	Background string `json:"background"`
	Alignment  string `json:"alignment"`
	Experience string `json:"experience"`

	AbilityScores    AbilitySet[AbilityScoreBreakdown] `json:"abilityScores"`
	AbilityModifiers AbilitySet[string]                `json:"abilityModifiers"`
	SavingThrows     AbilitySet[bool]                  `json:"savingThrows"`
	ProficiencyBonus string                            `json:"proficiencyBonus"`

	ArmorClass        int        `json:"armorClass"`
	Shield            bool       `json:"shield"`
	Initiative        string     `json:"initiative"`
	Speed             string     `json:"speed"`
	Size              string     `json:"size"`
	HitPoints         HitPoints  `json:"hitPoints"`
	HitDice           HitDice    `json:"hitDice"`
	HeroicInspiration bool       `json:"heroicInspiration"`
	DeathSaves        DeathSaves `json:"deathSaves"`

	Skills  []Skill  `json:"skills"`
	Weapons []Weapon `json:"weapons"`
	Spells  []Spell  `json:"spells"`

	SpellcastingAbility string     `json:"spellcastingAbility"`
	SpellSaveDC         string     `json:"spellSaveDC"`
	SpellAttackBonus    string     `json:"spellAttackBonus"`
	SpellSlots          SpellSlots `json:"spellSlots"`

	Equipment         string `json:"equipment"`
	Proficiencies     string `json:"proficiencies"`
	Languages         string `json:"languages"`
	Features          string `json:"features"`
	PersonalityTraits string `json:"personalityTraits"`
	Ideals            string `json:"ideals"`
	Bonds             string `json:"bonds"`
	Flaws             string `json:"flaws"`
	Backstory         string `json:"backstory"`
	Notes             string `json:"notes"`

	Coins                Coins  `json:"coins"`
	CharacterImageFileID string `json:"characterImageFileId"`
}

// HitPoints tracks maximum, current and temporary hit points
type HitPoints struct {
	Max     int `json:"max"`
	Current int `json:"current"`
	Temp    int `json:"temp"`
}

// HitDice is the free-form dice total plus how many have been spent
type HitDice struct {
	Total string `json:"total"`
	Spent int    `json:"spent"`
}

// DeathSaves holds the three success and three failure boxes
type DeathSaves struct {
	Success [3]bool `json:"success"`
	Failure [3]bool `json:"failure"`
}

// Coins holds the five coin denominations
type Coins struct {
	CP int `json:"cp"`
	SP int `json:"sp"`
	EP int `json:"ep"`
	GP int `json:"gp"`
	PP int `json:"pp"`
}

// SpellSlot is the current and maximum slots for one spell level
type SpellSlot struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// SpellSlots holds the nine spell slot levels
type SpellSlots struct {
	Level1 SpellSlot `json:"level1"`
	Level2 SpellSlot `json:"level2"`
	Level3 SpellSlot `json:"level3"`
	Level4 SpellSlot `json:"level4"`
	Level5 SpellSlot `json:"level5"`
	Level6 SpellSlot `json:"level6"`
	Level7 SpellSlot `json:"level7"`
	Level8 SpellSlot `json:"level8"`
	Level9 SpellSlot `json:"level9"`
}

// Level returns the slot for spell level n (1-9), or nil
func (s *SpellSlots) Level(n int) *SpellSlot {
	levels := [...]*SpellSlot{
		&s.Level1, &s.Level2, &s.Level3, &s.Level4, &s.Level5,
		&s.Level6, &s.Level7, &s.Level8, &s.Level9,
	}
	if n < 1 || n > len(levels) {
		return nil
	}
	return levels[n-1]
}

// Skill is one row of the skills list
type Skill struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Ability  Ability `json:"ability"`
	Modifier string  `json:"modifier"`
}

// Weapon is one row of the attacks list
type Weapon struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Attack string `json:"attack"`
	Damage string `json:"damage"`
	Notes  string `json:"notes"`
}

// Spell is one row of the spell list
type Spell struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	CastingTime string `json:"castingTime"`
	Range       string `json:"range"`
	Duration    string `json:"duration"`
	Notes       string `json:"notes"`
}

// Default returns a blank sheet with the standard skills listed
func Default() *Document {
	skills := make([]Skill, 0, len(StandardSkills))
	for i, s := range StandardSkills {
		skills = append(skills, Skill{
			ID:       strconv.Itoa(i + 1),
			Name:     s.Label,
			Ability:  s.Ability,
			Modifier: FormatModifier(0),
		})
	}

	return &Document{
		AbilityScores:    NewAbilitySet(DefaultBreakdown()),
		AbilityModifiers: NewAbilitySet(FormatModifier(0)),
		ProficiencyBonus: "+2",
		ArmorClass:       10,
		Initiative:       FormatModifier(0),
		Speed:            "30",
		Size:             "Medium",
		Skills:           skills,
		Weapons:          []Weapon{},
		Spells:           []Spell{},
	}
}

// Clone returns a deep copy that shares no memory with d
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Skills = slices.Clone(d.Skills)
	c.Weapons = slices.Clone(d.Weapons)
	c.Spells = slices.Clone(d.Spells)
	return &c
}

// DisplayedArmorClass is the stored base armor class plus the shield bonus
func (d *Document) DisplayedArmorClass() int {
	if d.Shield {
		return d.ArmorClass + ShieldBonus
	}
	return d.ArmorClass
}

// RecomputeModifier rewrites the formatted modifier of a from its breakdown
func (d *Document) RecomputeModifier(a Ability) {
	d.AbilityModifiers.Set(a, FormatModifier(d.AbilityScores.Get(a).Modifier()))
}

// ListKind names one of the dynamic entry lists
type ListKind string

// Dynamic list names, matching their JSON keys
const (
	ListSkills  ListKind = "skills"
	ListWeapons ListKind = "weapons"
	ListSpells  ListKind = "spells"
)

// ListKinds enumerates every dynamic list
var ListKinds = []ListKind{ListSkills, ListWeapons, ListSpells}

// EntryIDs returns the ids of the named list in order
func (d *Document) EntryIDs(kind ListKind) []string {
	var ids []string
	switch kind {
	case ListSkills:
		for _, e := range d.Skills {
			ids = append(ids, e.ID)
		}
	case ListWeapons:
		for _, e := range d.Weapons {
			ids = append(ids, e.ID)
		}
	case ListSpells:
		for _, e := range d.Spells {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// NextEntryID returns the smallest id counter value that cannot collide with
// an existing numeric id of the list.
func (d *Document) NextEntryID(kind ListKind) int {
	return NextFreeID(d.EntryIDs(kind))
}

// NextFreeID is max(FirstEntryID, highest numeric id + 1)
func NextFreeID(ids []string) int {
	next := FirstEntryID
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err == nil && n+1 > next {
			next = n + 1
		}
	}
	return next
}
