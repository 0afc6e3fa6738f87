// Package v1alpha1 exposes the character sheet over gRPC
package v1alpha1

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"slices"
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/orchestrators/document"
	"github.com/sdkfamous/dnd-character-sheet/internal/orchestrators/persistence"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/remote"
	"github.com/sdkfamous/dnd-character-sheet/internal/status"
)

// HandlerConfig holds dependencies for the sheet handler
type HandlerConfig struct {
	Store       document.Store
	Persistence persistence.Service
	Status      *status.Reporter
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Persistence == nil {
		vb.RequiredField("Persistence")
	}
	if c.Status == nil {
		vb.RequiredField("Status")
	}

	return vb.Build()
}

// Handler implements SheetServiceServer
type Handler struct {
	store       document.Store
	persistence persistence.Service
	status      *status.Reporter
}

// NewHandler creates a new sheet handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		store:       cfg.Store,
		persistence: cfg.Persistence,
		status:      cfg.Status,
	}, nil
}

// GetDocument returns the live sheet and its history state
func (h *Handler) GetDocument(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return h.sheetState(nil)
}

// SetField sets one field by dotted path
func (h *Handler) SetField(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path := stringField(req, "path")
	if path == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("path is required"))
	}

	if err := h.store.SetField(path, req.GetFields()["value"].AsInterface()); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.sheetState(nil)
}

// AddEntry appends a blank skill, weapon or spell
func (h *Handler) AddEntry(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	kind, err := listKind(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.store.AddEntry(kind)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.sheetState(map[string]any{"id": out.ID})
}

// RemoveEntry removes a list entry by id
func (h *Handler) RemoveEntry(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	kind, err := listKind(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	id := stringField(req, "id")
	if id == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	if err := h.store.RemoveEntry(kind, id); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.sheetState(nil)
}

// Undo steps history back; applied is false at the oldest snapshot
func (h *Handler) Undo(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return h.sheetState(map[string]any{"applied": h.store.Undo()})
}

// Redo steps history forward; applied is false at the newest snapshot
func (h *Handler) Redo(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return h.sheetState(map[string]any{"applied": h.store.Redo()})
}

// SaveRemote writes the sheet to the remote store
func (h *Handler) SaveRemote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// pending field edits belong in the saved file and in undo history
	h.store.Flush()

	out, err := h.persistence.Save(ctx, &persistence.SaveInput{
		AsNew: req.GetFields()["asNew"].GetBoolValue(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"file":    fileInfo(out.File),
		"binding": out.Binding,
	})
}

// LoadRemote replaces the sheet with a remote file
func (h *Handler) LoadRemote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fileID := stringField(req, "fileId")
	if fileID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("fileId is required"))
	}

	out, err := h.persistence.Load(ctx, &persistence.LoadInput{FileID: fileID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.sheetState(map[string]any{
		"binding":   out.Binding,
		"enveloped": out.Enveloped,
	})
}

// ListRemote lists the user's remote files, newest first
func (h *Handler) ListRemote(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.persistence.List(ctx, &persistence.ListInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	files := make([]any, 0, len(out.Files))
	for _, f := range out.Files {
		files = append(files, fileInfo(f))
	}

	return toStruct(map[string]any{
		"files":   files,
		"boundId": h.persistence.Binding().RemoteID,
	})
}

// DeleteRemote deletes a remote file
func (h *Handler) DeleteRemote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fileID := stringField(req, "fileId")
	if fileID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("fileId is required"))
	}

	out, err := h.persistence.Delete(ctx, &persistence.DeleteInput{FileID: fileID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{"unbound": out.Unbound})
}

// GetStatus returns the latest save/load status
func (h *Handler) GetStatus(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st := h.status.Current()
	return toStruct(map[string]any{
		"state":    string(st.State),
		"severity": string(st.Severity),
		"message":  st.Message,
	})
}

// ExportSheet returns the envelope of the live sheet and a suggested file name
func (h *Handler) ExportSheet(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	h.store.Flush()

	out, err := h.persistence.Export(ctx)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"content":  string(out.Content),
		"fileName": out.FileName,
	})
}

// ImportSheet replaces the sheet with an exported file. A request without
// content is treated as a cancelled pick.
func (h *Handler) ImportSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var content []byte
	if v, ok := req.GetFields()["content"]; ok {
		content = []byte(v.GetStringValue())
	}

	if _, err := h.persistence.Import(ctx, &persistence.ImportInput{Content: content}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.sheetState(map[string]any{"layout": h.persistence.Layout()})
}

// SetLayout stores the opaque panel layout
func (h *Handler) SetLayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	v, ok := req.GetFields()["layout"]
	if !ok {
		return nil, errors.ToGRPCError(errors.InvalidArgument("layout is required"))
	}

	layout, err := json.Marshal(v.AsInterface())
	if err != nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("layout must be valid JSON"))
	}
	if err := h.persistence.SetLayout(ctx, layout); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{"layout": h.persistence.Layout()})
}

// GetLayout returns the current panel layout
func (h *Handler) GetLayout(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(map[string]any{"layout": h.persistence.Layout()})
}

// SetImage uploads the character portrait. Content is base64 encoded.
func (h *Handler) SetImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	content, err := base64.StdEncoding.DecodeString(stringField(req, "content"))
	if err != nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("content must be base64 encoded"))
	}

	out, err := h.persistence.SetImage(ctx, &persistence.SetImageInput{
		Name:    stringField(req, "name"),
		Content: content,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{"fileId": out.FileID})
}

// GetImage returns the character portrait as base64
func (h *Handler) GetImage(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.persistence.Image(ctx)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"fileId":  out.FileID,
		"content": base64.StdEncoding.EncodeToString(out.Content),
	})
}

func (h *Handler) sheetState(extra map[string]any) (*structpb.Struct, error) {
	doc := h.store.Document()

	state := map[string]any{
		"document":            doc,
		"displayedArmorClass": doc.DisplayedArmorClass(),
		"canUndo":             h.store.CanUndo(),
		"canRedo":             h.store.CanRedo(),
	}
	for k, v := range extra {
		state[k] = v
	}

	return toStruct(state)
}

func listKind(req *structpb.Struct) (sheet.ListKind, error) {
	kind := sheet.ListKind(stringField(req, "kind"))
	if kind == "" {
		return "", errors.InvalidArgument("kind is required")
	}
	if !slices.Contains(sheet.ListKinds, kind) {
		return "", errors.InvalidArgumentf("unknown list %q", kind)
	}
	return kind, nil
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func fileInfo(f remote.FileInfo) map[string]any {
	info := map[string]any{
		"id":           f.ID,
		"name":         f.Name,
		"modifiedTime": f.ModifiedTime.UTC().Format(time.RFC3339),
	}
	if !f.CreatedTime.IsZero() {
		info["createdTime"] = f.CreatedTime.UTC().Format(time.RFC3339)
	}
	return info
}

// toStruct converts any JSON-encodable value into a protobuf Struct
func toStruct(v map[string]any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}

	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return s, nil
}
