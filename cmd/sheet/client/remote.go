package client

import (
	"context"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sdkfamous/dnd-character-sheet/internal/handlers/sheet/v1alpha1"
)

var (
	saveAsNew  bool
	loadFileID string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the live sheet to the remote store",
	RunE: func(_ *cobra.Command, _ []string) error {
		req, err := request(map[string]any{"asNew": saveAsNew})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.SaveRemote(ctx, req)
		})
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace the live sheet with a remote file",
	RunE: func(_ *cobra.Command, _ []string) error {
		req, err := request(map[string]any{"fileId": loadFileID})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.LoadRemote(ctx, req)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the latest save/load status",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.GetStatus(ctx, &emptypb.Empty{})
		})
	},
}

func init() {
	saveCmd.Flags().BoolVar(&saveAsNew, "as-new", false, "Create a new file instead of updating the bound one")
	loadCmd.Flags().StringVar(&loadFileID, "file-id", "", "Remote file ID (required)")
	_ = loadCmd.MarkFlagRequired("file-id") // nolint:errcheck // safe to ignore in init
}
