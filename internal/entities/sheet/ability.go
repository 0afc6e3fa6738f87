package sheet

import "strconv"

// Ability is one of the six fixed ability keys
type Ability string

// Ability keys, in sheet order
const (
	AbilityStr Ability = "str"
	AbilityDex Ability = "dex"
	AbilityCon Ability = "con"
	AbilityInt Ability = "int"
	AbilityWis Ability = "wis"
	AbilityCha Ability = "cha"
)

// Abilities lists every ability key in sheet order
var Abilities = []Ability{AbilityStr, AbilityDex, AbilityCon, AbilityInt, AbilityWis, AbilityCha}

// Valid reports whether a is one of the six ability keys
func (a Ability) Valid() bool {
	switch a {
	case AbilityStr, AbilityDex, AbilityCon, AbilityInt, AbilityWis, AbilityCha:
		return true
	}
	return false
}

// Score and bonus bounds
const (
	MinScore     = 1
	MaxScore     = 30
	DefaultScore = 10
	MinBonus     = -10
	MaxBonus     = 20
)

// AbilitySet holds exactly one value per ability key
type AbilitySet[T any] struct {
	Str T `json:"str"`
	Dex T `json:"dex"`
	Con T `json:"con"`
	Int T `json:"int"`
	Wis T `json:"wis"`
	Cha T `json:"cha"`
}

// NewAbilitySet returns a set with every key set to v
func NewAbilitySet[T any](v T) AbilitySet[T] {
	return AbilitySet[T]{Str: v, Dex: v, Con: v, Int: v, Wis: v, Cha: v}
}

// Get returns the value for a. Unknown keys return the zero value.
func (s *AbilitySet[T]) Get(a Ability) T {
	if p := s.ptr(a); p != nil {
		return *p
	}
	var zero T
	return zero
}

// Set stores v under a and reports whether a was a valid key
func (s *AbilitySet[T]) Set(a Ability, v T) bool {
	p := s.ptr(a)
	if p == nil {
		return false
	}
	*p = v
	return true
}

func (s *AbilitySet[T]) ptr(a Ability) *T {
	switch a {
	case AbilityStr:
		return &s.Str
	case AbilityDex:
		return &s.Dex
	case AbilityCon:
		return &s.Con
	case AbilityInt:
		return &s.Int
	case AbilityWis:
		return &s.Wis
	case AbilityCha:
		return &s.Cha
	}
	return nil
}

// AbilityScoreBreakdown decomposes one ability score into its sources
type AbilityScoreBreakdown struct {
	Base  int `json:"base"`
	Race  int `json:"race"`
	ASI   int `json:"asi"`
	Feat  int `json:"feat"`
	Magic int `json:"magic"`
}

// DefaultBreakdown returns base 10 with no bonuses
func DefaultBreakdown() AbilityScoreBreakdown {
	return AbilityScoreBreakdown{Base: DefaultScore}
}

// Clamped returns b with every component forced into its allowed range
func (b AbilityScoreBreakdown) Clamped() AbilityScoreBreakdown {
	return AbilityScoreBreakdown{
		Base:  clamp(b.Base, MinScore, MaxScore),
		Race:  clamp(b.Race, MinBonus, MaxBonus),
		ASI:   clamp(b.ASI, MinBonus, MaxBonus),
		Feat:  clamp(b.Feat, MinBonus, MaxBonus),
		Magic: clamp(b.Magic, MinBonus, MaxBonus),
	}
}

// Total sums the components and clamps the result to a legal score
func (b AbilityScoreBreakdown) Total() int {
	return clamp(b.Base+b.Race+b.ASI+b.Feat+b.Magic, MinScore, MaxScore)
}

// Modifier is floor((total-10)/2)
func (b AbilityScoreBreakdown) Modifier() int {
	return floorDiv(b.Total()-10, 2)
}

// FormatModifier renders a modifier with an explicit sign for non-negative values
func FormatModifier(m int) string {
	if m >= 0 {
		return "+" + strconv.Itoa(m)
	}
	return strconv.Itoa(m)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floorDiv rounds toward negative infinity; Go's / truncates toward zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
