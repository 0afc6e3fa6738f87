package remote

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/idgen"
)

// User metadata stored on every object
const (
	metaName        = "Sheet-Name"
	metaCreatedTime = "Sheet-Created"
	contentTypeJSON = "application/json"
)

// objectClient is the subset of *minio.Client the store uses
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioConfig holds the configuration for the MinIO/S3 store
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// UserID scopes every object under "<UserID>/"
	UserID      string
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required settings are provided
func (c *MinioConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Endpoint", c.Endpoint, vb)
	errors.ValidateRequired("Bucket", c.Bucket, vb)
	errors.ValidateRequired("UserID", c.UserID, vb)
	if strings.Contains(c.UserID, "/") {
		vb.Field("UserID", "must not contain '/'")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

// MinioRepository stores one object per sheet file in an S3 compatible bucket
type MinioRepository struct {
	client objectClient
	bucket string
	prefix string
	idGen  idgen.Generator
	clock  clock.Clock
}

// NewMinio connects to the object store. It does not contact the server;
// call EnsureBucket before first use.
func NewMinio(cfg *MinioConfig) (*MinioRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create minio client for %s", cfg.Endpoint)
	}

	return newMinioRepository(client, cfg), nil
}

func newMinioRepository(client objectClient, cfg *MinioConfig) *MinioRepository {
	return &MinioRepository{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.UserID + "/",
		idGen:  cfg.IDGenerator,
		clock:  cfg.Clock,
	}
}

var _ Repository = (*MinioRepository)(nil)

// EnsureBucket creates the bucket if it does not exist yet
func (r *MinioRepository) EnsureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return translateMinioError(err, "failed to check bucket "+r.bucket)
	}
	if exists {
		return nil
	}

	if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
		return translateMinioError(err, "failed to create bucket "+r.bucket)
	}

	slog.InfoContext(ctx, "created bucket", "bucket", r.bucket)
	return nil
}

// Save writes a file, creating a new id when none is given
func (r *MinioRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	now := r.clock.Now().UTC()
	id := input.FileID
	created := now
	if id != "" {
		existing, err := r.client.StatObject(ctx, r.bucket, r.objectName(id), minio.StatObjectOptions{})
		if err != nil {
			return nil, translateMinioError(err, "failed to find file "+id)
		}
		if t, ok := createdTime(existing.UserMetadata); ok {
			created = t
		}
	} else {
		id = r.idGen.Generate()
	}

	info, err := r.client.PutObject(ctx, r.bucket, r.objectName(id),
		bytes.NewReader(input.Content), int64(len(input.Content)),
		minio.PutObjectOptions{
			ContentType: contentTypeJSON,
			UserMetadata: map[string]string{
				metaName:        input.Name,
				metaCreatedTime: created.Format(time.RFC3339Nano),
			},
		})
	if err != nil {
		slog.ErrorContext(ctx, "failed to put object", "remote_id", id, "error", err)
		return nil, translateMinioError(err, "failed to save file "+input.Name)
	}

	modified := info.LastModified
	if modified.IsZero() {
		modified = now
	}

	return &SaveOutput{File: FileInfo{
		ID:           id,
		Name:         input.Name,
		ModifiedTime: modified,
		CreatedTime:  created,
	}}, nil
}

// Load reads a file's content and metadata
func (r *MinioRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.FileID == "" {
		return nil, errors.InvalidArgument(errFileIDEmpty)
	}

	name := r.objectName(input.FileID)
	stat, err := r.client.StatObject(ctx, r.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		return nil, translateMinioError(err, "failed to find file "+input.FileID)
	}

	obj, err := r.client.GetObject(ctx, r.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinioError(err, "failed to open file "+input.FileID)
	}
	defer func() { _ = obj.Close() }()

	content, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateMinioError(err, "failed to read file "+input.FileID)
	}

	return &LoadOutput{Content: content, File: r.fileInfo(stat)}, nil
}

// List returns every file under the user prefix, most recently modified first
func (r *MinioRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	files := []FileInfo{}
	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{
		Prefix:       r.prefix,
		Recursive:    true,
		WithMetadata: true,
	}) {
		if obj.Err != nil {
			return nil, translateMinioError(obj.Err, "failed to list files")
		}
		files = append(files, r.fileInfo(obj))
	}
	sortNewestFirst(files)

	return &ListOutput{Files: files}, nil
}

// Delete removes a file
func (r *MinioRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.FileID == "" {
		return nil, errors.InvalidArgument(errFileIDEmpty)
	}

	name := r.objectName(input.FileID)
	// RemoveObject succeeds for missing keys, so check first
	if _, err := r.client.StatObject(ctx, r.bucket, name, minio.StatObjectOptions{}); err != nil {
		return nil, translateMinioError(err, "failed to find file "+input.FileID)
	}
	if err := r.client.RemoveObject(ctx, r.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return nil, translateMinioError(err, "failed to delete file "+input.FileID)
	}

	return &DeleteOutput{}, nil
}

func (r *MinioRepository) objectName(id string) string {
	return r.prefix + id
}

func (r *MinioRepository) fileInfo(obj minio.ObjectInfo) FileInfo {
	id := strings.TrimPrefix(obj.Key, r.prefix)
	name, ok := userMeta(obj.UserMetadata, metaName)
	if !ok {
		name = path.Base(id)
	}
	created, ok := createdTime(obj.UserMetadata)
	if !ok {
		created = obj.LastModified
	}

	return FileInfo{
		ID:           id,
		Name:         name,
		ModifiedTime: obj.LastModified,
		CreatedTime:  created,
	}
}

func createdTime(meta map[string]string) (time.Time, bool) {
	v, ok := userMeta(meta, metaCreatedTime)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	return t, err == nil
}

// userMeta looks up user metadata whether or not the server kept the
// x-amz-meta- prefix and regardless of header casing
func userMeta(meta map[string]string, key string) (string, bool) {
	for k, v := range meta {
		k = strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-")
		if k == strings.ToLower(key) {
			return v, true
		}
	}
	return "", false
}

func translateMinioError(err error, message string) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return errors.WrapWithCode(err, errors.CodeNotFound, message)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errors.WrapWithCode(err, errors.CodePermissionDenied, message)
	case "XMinioStorageFull", "QuotaExceeded":
		return errors.WrapWithCode(err, errors.CodeResourceExhausted, message)
	}
	if errors.Is(err, context.Canceled) {
		return errors.WrapWithCode(err, errors.CodeCanceled, message)
	}
	return errors.WrapWithCode(err, errors.CodeUnavailable, message)
}
