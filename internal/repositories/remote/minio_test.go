package remote

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/suite"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/idgen"
)

// fakeObjects keeps objects in memory and answers like a MinIO server
type fakeObjects struct {
	buckets map[string]bool
	objects map[string]minio.ObjectInfo
	now     func() time.Time
	putErr  error
}

func newFakeObjects(now func() time.Time) *fakeObjects {
	return &fakeObjects{
		buckets: map[string]bool{},
		objects: map[string]minio.ObjectInfo{},
		now:     now,
	}
}

func noSuchKey() error {
	return minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound, Message: "not found"}
}

func (f *fakeObjects) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjects) PutObject(_ context.Context, _, name string, reader io.Reader, _ int64,
	opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	content, _ := io.ReadAll(reader)

	meta := minio.StringMap{}
	for k, v := range opts.UserMetadata {
		meta["X-Amz-Meta-"+k] = v
	}
	f.objects[name] = minio.ObjectInfo{
		Key:          name,
		Size:         int64(len(content)),
		LastModified: f.now(),
		UserMetadata: meta,
	}
	return minio.UploadInfo{Key: name, LastModified: f.now()}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, _, _ string, _ minio.GetObjectOptions) (*minio.Object, error) {
	return nil, minio.ErrorResponse{Code: "NotImplemented"}
}

func (f *fakeObjects) StatObject(_ context.Context, _, name string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	obj, ok := f.objects[name]
	if !ok {
		return minio.ObjectInfo{}, noSuchKey()
	}
	return obj, nil
}

func (f *fakeObjects) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- f.objects[k]
	}
	close(ch)
	return ch
}

func (f *fakeObjects) RemoveObject(_ context.Context, _, name string, _ minio.RemoveObjectOptions) error {
	delete(f.objects, name)
	return nil
}

type MinioTestSuite struct {
	suite.Suite
	clock   *clock.Fake
	objects *fakeObjects
	repo    *MinioRepository
	ctx     context.Context
}

func TestMinioTestSuite(t *testing.T) {
	suite.Run(t, new(MinioTestSuite))
}

func (s *MinioTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFake(time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC))
	s.objects = newFakeObjects(s.clock.Now)
	s.repo = newMinioRepository(s.objects, &MinioConfig{
		Bucket:      "sheets",
		UserID:      "user-1",
		IDGenerator: idgen.NewSequential("sheet"),
		Clock:       s.clock,
	})
}

func (s *MinioTestSuite) TestConfigValidation() {
	_, err := NewMinio(&MinioConfig{Endpoint: "localhost:9000", Bucket: "b", UserID: "a/b"})
	s.True(errors.IsInvalidArgument(err))

	_, err = NewMinio(nil)
	s.Error(err)
}

func (s *MinioTestSuite) TestEnsureBucket() {
	s.Require().NoError(s.repo.EnsureBucket(s.ctx))
	s.True(s.objects.buckets["sheets"])
	s.Require().NoError(s.repo.EnsureBucket(s.ctx))
}

func (s *MinioTestSuite) TestSaveStoresUnderUserPrefix() {
	out, err := s.repo.Save(s.ctx, SaveInput{Name: "Ember.json", Content: []byte(`{}`)})
	s.Require().NoError(err)

	s.Equal("sheet_1", out.File.ID)
	s.Equal("Ember.json", out.File.Name)
	s.Contains(s.objects.objects, "user-1/sheet_1")
}

func (s *MinioTestSuite) TestSaveInPlaceKeepsCreatedTime() {
	first, err := s.repo.Save(s.ctx, SaveInput{Name: "Ember.json"})
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	second, err := s.repo.Save(s.ctx, SaveInput{Name: "Ember v2.json", FileID: first.File.ID})
	s.Require().NoError(err)

	s.Equal(first.File.ID, second.File.ID)
	s.True(first.File.CreatedTime.Equal(second.File.CreatedTime))
	s.True(second.File.ModifiedTime.After(first.File.ModifiedTime))
}

func (s *MinioTestSuite) TestSaveUnknownIDIsNotFound() {
	_, err := s.repo.Save(s.ctx, SaveInput{Name: "x.json", FileID: "gone"})
	s.True(errors.IsNotFound(err))
}

func (s *MinioTestSuite) TestSaveFailureIsUnavailable() {
	s.objects.putErr = io.ErrUnexpectedEOF

	_, err := s.repo.Save(s.ctx, SaveInput{Name: "x.json"})
	s.True(errors.IsUnavailable(err))
}

func (s *MinioTestSuite) TestListReadsMetadata() {
	_, err := s.repo.Save(s.ctx, SaveInput{Name: "Old.json"})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.repo.Save(s.ctx, SaveInput{Name: "New.json"})
	s.Require().NoError(err)
	s.objects.objects["user-2/other"] = minio.ObjectInfo{Key: "user-2/other"}

	out, err := s.repo.List(s.ctx, ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Files, 2)
	s.Equal("New.json", out.Files[0].Name)
	s.Equal("sheet_2", out.Files[0].ID)
	s.Equal("Old.json", out.Files[1].Name)
}

func (s *MinioTestSuite) TestDeleteAndLoadMissing() {
	saved, err := s.repo.Save(s.ctx, SaveInput{Name: "x.json"})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, DeleteInput{FileID: saved.File.ID})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, DeleteInput{FileID: saved.File.ID})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Load(s.ctx, LoadInput{FileID: saved.File.ID})
	s.True(errors.IsNotFound(err))
}

func TestTranslateMinioError(t *testing.T) {
	testCases := []struct {
		err  error
		code errors.Code
	}{
		{err: minio.ErrorResponse{Code: "NoSuchKey"}, code: errors.CodeNotFound},
		{err: minio.ErrorResponse{Code: "AccessDenied"}, code: errors.CodePermissionDenied},
		{err: minio.ErrorResponse{Code: "XMinioStorageFull"}, code: errors.CodeResourceExhausted},
		{err: context.Canceled, code: errors.CodeCanceled},
		{err: io.EOF, code: errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		got := errors.GetCode(translateMinioError(tc.err, "op"))
		if got != tc.code {
			t.Errorf("%v: got %s want %s", tc.err, got, tc.code)
		}
	}
}
