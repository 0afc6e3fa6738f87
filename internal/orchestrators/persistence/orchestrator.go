// Package persistence keeps the live sheet in sync with the local cache and
// the remote file store.
package persistence

//go:generate mockgen -destination=mock/mock_service.go -package=persistencemock github.com/sdkfamous/dnd-character-sheet/internal/orchestrators/persistence Service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/orchestrators/document"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/cache"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/remote"
	"github.com/sdkfamous/dnd-character-sheet/internal/services/migration"
	"github.com/sdkfamous/dnd-character-sheet/internal/status"
)

const (
	defaultFileName = "character"
	fileExtension   = ".json"

	errRemoteBusy = "remote operation already in progress"
)

// Service defines the persistence operations
type Service interface {
	// Startup restores the sheet, layout and binding from the local cache
	Startup(ctx context.Context) (*StartupOutput, error)

	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	Export(ctx context.Context) (*ExportOutput, error)
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)

	SetLayout(ctx context.Context, layout json.RawMessage) error
	Layout() json.RawMessage
	Binding() sheet.RemoteFileBinding

	SetImage(ctx context.Context, input *SetImageInput) (*SetImageOutput, error)
	Image(ctx context.Context) (*ImageOutput, error)
}

// Config holds the dependencies for the persistence orchestrator
type Config struct {
	Store    document.Store
	Cache    cache.Repository
	Remote   remote.Repository
	Status   *status.Reporter
	Migrator migration.Migrator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Cache == nil {
		vb.RequiredField("Cache")
	}
	if c.Remote == nil {
		vb.RequiredField("Remote")
	}
	if c.Status == nil {
		vb.RequiredField("Status")
	}

	return vb.Build()
}

type orchestrator struct {
	store    document.Store
	cache    cache.Repository
	remote   remote.Repository
	status   *status.Reporter
	migrator migration.Migrator

	// remoteMu allows a single remote operation at a time
	remoteMu sync.Mutex

	mu      sync.RWMutex
	layout  json.RawMessage
	binding sheet.RemoteFileBinding
}

// NewOrchestrator creates the persistence orchestrator and subscribes it to
// document changes so every snapshot is mirrored to the cache.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	m := cfg.Migrator
	if m == nil {
		m = migration.New()
	}

	o := &orchestrator{
		store:    cfg.Store,
		cache:    cfg.Cache,
		remote:   cfg.Remote,
		status:   cfg.Status,
		migrator: m,
		layout:   sheet.DefaultLayout(),
	}
	o.store.OnChange(o.onDocumentChange)

	return o, nil
}

func (o *orchestrator) onDocumentChange(change document.Change) {
	o.writeDocument(context.Background(), change.Document)
}

func (o *orchestrator) Startup(ctx context.Context) (*StartupOutput, error) {
	out := &StartupOutput{}

	if layout, ok := o.readCache(ctx, cache.KeyLayout); ok && json.Valid([]byte(layout)) {
		o.mu.Lock()
		o.layout = json.RawMessage(layout)
		o.mu.Unlock()
	}

	if raw, ok := o.readCache(ctx, cache.KeyRemoteBinding); ok {
		var binding sheet.RemoteFileBinding
		if err := json.Unmarshal([]byte(raw), &binding); err != nil {
			slog.WarnContext(ctx, "ignoring unreadable cached binding", "error", err)
		} else {
			o.mu.Lock()
			o.binding = binding
			o.mu.Unlock()
			out.Binding = binding
		}
	}

	raw, ok := o.readCache(ctx, cache.KeyDocument)
	if !ok {
		return out, nil
	}

	parsed, err := o.migrator.Parse([]byte(raw))
	if err != nil {
		slog.WarnContext(ctx, "cached sheet could not be restored", "error", err)
		switch {
		case errors.IsParseFailure(err):
			o.status.Info("Saved data could not be read; starting with a blank sheet")
		case errors.IsMalformedInput(err):
			o.status.Info("Saved data failed to validate; starting with a blank sheet")
		default:
			return nil, errors.Wrap(err, "failed to restore cached sheet")
		}
		return out, nil
	}

	o.store.Load(parsed.Document)
	out.Restored = true

	slog.DebugContext(ctx, "restored sheet from cache", "enveloped", parsed.Enveloped)
	return out, nil
}

func (o *orchestrator) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		input = &SaveInput{}
	}
	if !o.remoteMu.TryLock() {
		return nil, errors.Aborted(errRemoteBusy)
	}
	defer o.remoteMu.Unlock()

	doc := o.store.Document()
	binding := o.Binding()
	content, err := json.Marshal(sheet.Envelope{Document: doc, Layout: o.Layout()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode sheet")
	}

	fileID := binding.RemoteID
	if input.AsNew {
		fileID = ""
	}

	o.status.Progress("Saving...")
	saved, err := o.remote.Save(ctx, remote.SaveInput{
		Name:    fileName(doc.Name),
		Content: content,
		FileID:  fileID,
	})
	if err != nil {
		o.reportFailure(ctx, "Save", err)
		return nil, errors.Wrap(err, "failed to save sheet")
	}

	binding = sheet.RemoteFileBinding{RemoteID: saved.File.ID, DisplayName: saved.File.Name}
	o.setBinding(ctx, binding)
	o.status.Success(fmt.Sprintf("Saved %s", saved.File.Name))

	slog.InfoContext(ctx, "saved sheet", "remote_id", saved.File.ID, "as_new", input.AsNew)
	return &SaveOutput{File: saved.File, Binding: binding}, nil
}

func (o *orchestrator) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil || input.FileID == "" {
		return nil, errors.InvalidArgument("file ID is required")
	}
	if !o.remoteMu.TryLock() {
		return nil, errors.Aborted(errRemoteBusy)
	}
	defer o.remoteMu.Unlock()

	o.status.Progress("Loading...")
	loaded, err := o.remote.Load(ctx, remote.LoadInput{FileID: input.FileID})
	if err != nil {
		o.reportFailure(ctx, "Load", err)
		return nil, errors.Wrap(err, "failed to load sheet")
	}

	parsed, err := o.migrator.Parse(loaded.Content)
	if err != nil {
		o.reportFailure(ctx, "Load", err)
		return nil, errors.Wrapf(err, "failed to read %s", loaded.File.Name)
	}

	binding := sheet.RemoteFileBinding{RemoteID: loaded.File.ID, DisplayName: loaded.File.Name}
	o.store.Load(parsed.Document)
	o.setLayout(ctx, parsed.Layout)
	o.setBinding(ctx, binding)
	o.status.Success(fmt.Sprintf("Loaded %s", loaded.File.Name))

	return &LoadOutput{Document: parsed.Document, Binding: binding, Enveloped: parsed.Enveloped}, nil
}

func (o *orchestrator) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	if !o.remoteMu.TryLock() {
		return nil, errors.Aborted(errRemoteBusy)
	}
	defer o.remoteMu.Unlock()

	out, err := o.remote.List(ctx, remote.ListInput{})
	if err != nil {
		o.reportFailure(ctx, "List", err)
		return nil, errors.Wrap(err, "failed to list sheets")
	}

	return &ListOutput{Files: out.Files}, nil
}

func (o *orchestrator) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.FileID == "" {
		return nil, errors.InvalidArgument("file ID is required")
	}
	if !o.remoteMu.TryLock() {
		return nil, errors.Aborted(errRemoteBusy)
	}
	defer o.remoteMu.Unlock()

	if _, err := o.remote.Delete(ctx, remote.DeleteInput{FileID: input.FileID}); err != nil {
		o.reportFailure(ctx, "Delete", err)
		return nil, errors.Wrapf(err, "failed to delete %s", input.FileID)
	}

	out := &DeleteOutput{}
	if o.Binding().RemoteID == input.FileID {
		o.setBinding(ctx, sheet.RemoteFileBinding{})
		out.Unbound = true
	}
	o.status.Success("Deleted")

	return out, nil
}

func (o *orchestrator) Export(_ context.Context) (*ExportOutput, error) {
	doc := o.store.Document()
	content, err := json.MarshalIndent(sheet.Envelope{Document: doc, Layout: o.Layout()}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode sheet")
	}

	return &ExportOutput{Content: content, FileName: fileName(doc.Name)}, nil
}

func (o *orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil || input.Content == nil {
		return nil, errors.Canceled("import cancelled")
	}

	parsed, err := o.migrator.Parse(input.Content)
	if err != nil {
		o.reportFailure(ctx, "Import", err)
		return nil, errors.Wrap(err, "failed to import sheet")
	}

	o.store.Load(parsed.Document)
	o.setLayout(ctx, parsed.Layout)
	// an imported file belongs to no remote file
	o.setBinding(ctx, sheet.RemoteFileBinding{})
	o.status.Success("Imported")

	return &ImportOutput{Document: parsed.Document}, nil
}

func (o *orchestrator) SetLayout(ctx context.Context, layout json.RawMessage) error {
	if !json.Valid(layout) {
		return errors.InvalidArgument("layout must be valid JSON")
	}
	o.setLayout(ctx, layout)
	return nil
}

func (o *orchestrator) Layout() json.RawMessage {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append(json.RawMessage(nil), o.layout...)
}

func (o *orchestrator) Binding() sheet.RemoteFileBinding {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.binding
}

func (o *orchestrator) SetImage(ctx context.Context, input *SetImageInput) (*SetImageOutput, error) {
	if input == nil || len(input.Content) == 0 {
		return nil, errors.InvalidArgument("image content is required")
	}
	if !o.remoteMu.TryLock() {
		return nil, errors.Aborted(errRemoteBusy)
	}
	defer o.remoteMu.Unlock()

	name := input.Name
	if name == "" {
		name = "portrait"
	}

	o.status.Progress("Uploading image...")
	saved, err := o.remote.Save(ctx, remote.SaveInput{
		Name:    name,
		Content: input.Content,
		FileID:  o.store.Document().CharacterImageFileID,
	})
	if err != nil {
		o.reportFailure(ctx, "Image upload", err)
		return nil, errors.Wrap(err, "failed to store image")
	}

	o.store.Mutate(func(doc *sheet.Document) {
		doc.CharacterImageFileID = saved.File.ID
	})
	o.store.Flush()
	o.writeImage(ctx, cachedImage{FileID: saved.File.ID, Data: input.Content})
	o.status.Success("Image saved")

	return &SetImageOutput{FileID: saved.File.ID}, nil
}

func (o *orchestrator) Image(ctx context.Context) (*ImageOutput, error) {
	fileID := o.store.Document().CharacterImageFileID
	if fileID == "" {
		return nil, errors.NotFound("character has no image")
	}

	if raw, ok := o.readCache(ctx, cache.KeyCharacterImage); ok {
		var cached cachedImage
		if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.FileID == fileID {
			return &ImageOutput{FileID: fileID, Content: cached.Data}, nil
		}
	}

	if !o.remoteMu.TryLock() {
		return nil, errors.Aborted(errRemoteBusy)
	}
	defer o.remoteMu.Unlock()

	loaded, err := o.remote.Load(ctx, remote.LoadInput{FileID: fileID})
	if err != nil {
		o.reportFailure(ctx, "Image download", err)
		return nil, errors.Wrap(err, "failed to load image")
	}
	o.writeImage(ctx, cachedImage{FileID: fileID, Data: loaded.Content})

	return &ImageOutput{FileID: fileID, Content: loaded.Content}, nil
}

func (o *orchestrator) setLayout(ctx context.Context, layout json.RawMessage) {
	o.mu.Lock()
	o.layout = append(json.RawMessage(nil), layout...)
	o.mu.Unlock()

	o.writeCache(ctx, cache.KeyLayout, string(layout))
}

func (o *orchestrator) setBinding(ctx context.Context, binding sheet.RemoteFileBinding) {
	o.mu.Lock()
	o.binding = binding
	o.mu.Unlock()

	if !binding.IsBound() {
		if _, err := o.cache.Remove(ctx, cache.RemoveInput{Key: cache.KeyRemoteBinding}); err != nil {
			slog.WarnContext(ctx, "failed to clear cached binding", "error", err)
		}
		return
	}

	b, err := json.Marshal(binding)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode binding", "error", err)
		return
	}
	o.writeCache(ctx, cache.KeyRemoteBinding, string(b))
}

func (o *orchestrator) writeDocument(ctx context.Context, doc *sheet.Document) {
	b, err := json.Marshal(doc)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode sheet for cache", "error", err)
		return
	}
	o.writeCache(ctx, cache.KeyDocument, string(b))
}

func (o *orchestrator) writeImage(ctx context.Context, img cachedImage) {
	b, err := json.Marshal(img)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode image for cache", "error", err)
		return
	}
	o.writeCache(ctx, cache.KeyCharacterImage, string(b))
}

// writeCache never fails the caller; the cache is a convenience
func (o *orchestrator) writeCache(ctx context.Context, key, value string) {
	if _, err := o.cache.Set(ctx, cache.SetInput{Key: key, Value: value}); err != nil {
		slog.WarnContext(ctx, "cache write failed", "cache_key", key, "error", err)
	}
}

func (o *orchestrator) readCache(ctx context.Context, key string) (string, bool) {
	out, err := o.cache.Get(ctx, cache.GetInput{Key: key})
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.WarnContext(ctx, "cache read failed", "cache_key", key, "error", err)
		}
		return "", false
	}
	return out.Value, true
}

// reportFailure turns an error into a status message. Cancellation is silent.
func (o *orchestrator) reportFailure(ctx context.Context, action string, err error) {
	if !errors.GetCode(err).UserFacing() || errors.Is(err, context.Canceled) {
		o.status.Reset()
		return
	}

	slog.ErrorContext(ctx, "remote operation failed", "action", action, "error", err)
	o.status.Error(fmt.Sprintf("%s failed: %s", action, errors.GetMessage(err)))
}

func fileName(characterName string) string {
	name := strings.TrimSpace(characterName)
	if name == "" {
		name = defaultFileName
	}
	return name + fileExtension
}
