package remote_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/idgen"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/remote"
)

type InMemoryTestSuite struct {
	suite.Suite
	clock *clock.Fake
	repo  *remote.InMemoryRepository
	ctx   context.Context
}

func TestInMemoryTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryTestSuite))
}

func (s *InMemoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFake(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	repo, err := remote.NewInMemory(&remote.InMemoryConfig{
		IDGenerator: idgen.NewSequential("file"),
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *InMemoryTestSuite) TestNewInMemory_Validation() {
	_, err := remote.NewInMemory(nil)
	s.Error(err)

	_, err = remote.NewInMemory(&remote.InMemoryConfig{Clock: s.clock})
	s.True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestSaveCreatesThenUpdatesInPlace() {
	created, err := s.repo.Save(s.ctx, remote.SaveInput{Name: "Regdar.json", Content: []byte("v1")})
	s.Require().NoError(err)
	s.Equal("file_1", created.File.ID)

	s.clock.Advance(time.Minute)
	updated, err := s.repo.Save(s.ctx, remote.SaveInput{
		Name:    "Regdar the Bold.json",
		Content: []byte("v2"),
		FileID:  created.File.ID,
	})
	s.Require().NoError(err)
	s.Equal(created.File.ID, updated.File.ID)
	s.Equal(created.File.CreatedTime, updated.File.CreatedTime)
	s.True(updated.File.ModifiedTime.After(created.File.ModifiedTime))

	loaded, err := s.repo.Load(s.ctx, remote.LoadInput{FileID: created.File.ID})
	s.Require().NoError(err)
	s.Equal([]byte("v2"), loaded.Content)
	s.Equal("Regdar the Bold.json", loaded.File.Name)
}

func (s *InMemoryTestSuite) TestSaveUnknownIDFails() {
	_, err := s.repo.Save(s.ctx, remote.SaveInput{Name: "x.json", FileID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Save(s.ctx, remote.SaveInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestListNewestFirst() {
	first, err := s.repo.Save(s.ctx, remote.SaveInput{Name: "a.json"})
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	second, err := s.repo.Save(s.ctx, remote.SaveInput{Name: "b.json"})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, remote.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Files, 2)
	s.Equal(second.File.ID, out.Files[0].ID)
	s.Equal(first.File.ID, out.Files[1].ID)
}

func (s *InMemoryTestSuite) TestDelete() {
	saved, err := s.repo.Save(s.ctx, remote.SaveInput{Name: "a.json"})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, remote.DeleteInput{FileID: saved.File.ID})
	s.Require().NoError(err)

	_, err = s.repo.Load(s.ctx, remote.LoadInput{FileID: saved.File.ID})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, remote.DeleteInput{FileID: saved.File.ID})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestContentIsCopied() {
	content := []byte("original")
	saved, err := s.repo.Save(s.ctx, remote.SaveInput{Name: "a.json", Content: content})
	s.Require().NoError(err)
	content[0] = 'X'

	loaded, err := s.repo.Load(s.ctx, remote.LoadInput{FileID: saved.File.ID})
	s.Require().NoError(err)
	s.Equal("original", string(loaded.Content))
}
