package sheet_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
)

type AbilityTestSuite struct {
	suite.Suite
}

func TestAbilityTestSuite(t *testing.T) {
	suite.Run(t, new(AbilityTestSuite))
}

func (s *AbilityTestSuite) TestModifier() {
	testCases := []struct {
		name      string
		breakdown sheet.AbilityScoreBreakdown
		total     int
		modifier  string
	}{
		{
			name:      "racial bonus pushes to eighteen",
			breakdown: sheet.AbilityScoreBreakdown{Base: 16, Race: 2},
			total:     18,
			modifier:  "+4",
		},
		{
			name:      "total clamps to one",
			breakdown: sheet.AbilityScoreBreakdown{Base: 3, Race: -10},
			total:     1,
			modifier:  "-5",
		},
		{
			name:      "average score",
			breakdown: sheet.DefaultBreakdown(),
			total:     10,
			modifier:  "+0",
		},
		{
			name:      "odd score below ten rounds down",
			breakdown: sheet.AbilityScoreBreakdown{Base: 9},
			total:     9,
			modifier:  "-1",
		},
		{
			name:      "total clamps to thirty",
			breakdown: sheet.AbilityScoreBreakdown{Base: 20, ASI: 4, Feat: 2, Magic: 10},
			total:     30,
			modifier:  "+10",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.total, tc.breakdown.Total())
			s.Equal(tc.modifier, sheet.FormatModifier(tc.breakdown.Modifier()))
		})
	}
}

func (s *AbilityTestSuite) TestClamped() {
	got := sheet.AbilityScoreBreakdown{Base: 0, Race: -50, ASI: 99, Feat: 3, Magic: -3}.Clamped()

	s.Equal(sheet.AbilityScoreBreakdown{Base: 1, Race: -10, ASI: 20, Feat: 3, Magic: -3}, got)
}

func (s *AbilityTestSuite) TestAbilitySetGetSet() {
	set := sheet.NewAbilitySet(false)

	s.True(set.Set(sheet.AbilityWis, true))
	s.False(set.Set(sheet.Ability("luck"), true))

	s.True(set.Get(sheet.AbilityWis))
	s.False(set.Get(sheet.AbilityStr))
	s.False(set.Get(sheet.Ability("luck")))
	s.True(sheet.AbilityCha.Valid())
	s.False(sheet.Ability("luck").Valid())
}
