package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sdkfamous/dnd-character-sheet/internal/handlers/sheet/v1alpha1"
)

var (
	fieldPath  string
	fieldValue string
	entryKind  string
	entryID    string
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the live sheet",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.GetDocument(ctx, &emptypb.Empty{})
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one field by dotted path",
	Long: `Set one field by dotted path, e.g. --path abilityScores.str.base --value 15.
The value is parsed as JSON when possible and sent as a string otherwise.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		req, err := request(map[string]any{"path": fieldPath, "value": parseValue(fieldValue)})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.SetField(ctx, req)
		})
	},
}

var addEntryCmd = &cobra.Command{
	Use:   "add-entry",
	Short: "Append a blank skill, weapon or spell",
	RunE: func(_ *cobra.Command, _ []string) error {
		req, err := request(map[string]any{"kind": entryKind})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.AddEntry(ctx, req)
		})
	},
}

var removeEntryCmd = &cobra.Command{
	Use:   "remove-entry",
	Short: "Remove a skill, weapon or spell by id",
	RunE: func(_ *cobra.Command, _ []string) error {
		req, err := request(map[string]any{"kind": entryKind, "id": entryID})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.RemoveEntry(ctx, req)
		})
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Step history back",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.Undo(ctx, &emptypb.Empty{})
		})
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Step history forward",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.Redo(ctx, &emptypb.Empty{})
		})
	},
}

func init() {
	setCmd.Flags().StringVar(&fieldPath, "path", "", "Dotted field path (required)")
	setCmd.Flags().StringVar(&fieldValue, "value", "", "New value")
	_ = setCmd.MarkFlagRequired("path") // nolint:errcheck // safe to ignore in init

	for _, cmd := range []*cobra.Command{addEntryCmd, removeEntryCmd} {
		cmd.Flags().StringVar(&entryKind, "kind", "", "List: skills, weapons or spells (required)")
		_ = cmd.MarkFlagRequired("kind") // nolint:errcheck // safe to ignore in init
	}
	removeEntryCmd.Flags().StringVar(&entryID, "id", "", "Entry ID (required)")
	_ = removeEntryCmd.MarkFlagRequired("id") // nolint:errcheck // safe to ignore in init
}

// call runs one request against the server and prints the response
func call(fn func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error)) error {
	resp, err := send(fn)
	if err != nil {
		return err
	}
	return printStruct(resp)
}

// send runs one request against the server and returns the response
func send(fn func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error)) (*structpb.Struct, error) {
	client, cleanup, err := createSheetClient()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
