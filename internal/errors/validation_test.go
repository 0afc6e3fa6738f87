package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("Store", "is required")
	ve.AddFieldErrorf("HistoryLimit", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: HistoryLimit: must be at least 1; Store: is required", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("Cache", "is required").
		Fieldf("DebounceDelay", "must be positive, got %d", -1).
		RequiredField("Remote")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().Nil(vb.Build())
}

func (s *ValidationTestSuite) TestValidateHelpers() {
	testCases := []struct {
		name      string
		apply     func(vb *errors.ValidationBuilder)
		shouldErr bool
	}{
		{"required present", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("user", "alice", vb) }, false},
		{"required blank", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("user", "   ", vb) }, true},
		{"positive", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("limit", 50, vb) }, false},
		{"zero", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("limit", 0, vb) }, true},
		{"enum member", func(vb *errors.ValidationBuilder) {
			errors.ValidateEnum("backend", "redis", []string{"memory", "redis"}, vb)
		}, false},
		{"enum outsider", func(vb *errors.ValidationBuilder) {
			errors.ValidateEnum("backend", "etcd", []string{"memory", "redis"}, vb)
		}, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			tc.apply(vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}
