package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sdkfamous/dnd-character-sheet/internal/handlers/sheet/v1alpha1"
)

var (
	deleteFile string
	exportOut  string
	importFile string
	layoutJSON string
	imageFile  string
	imageOut   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List remote files, newest first",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.ListRemote(ctx, &emptypb.Empty{})
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a remote file",
	RunE: func(_ *cobra.Command, _ []string) error {
		req, err := request(map[string]any{"fileId": deleteFile})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.DeleteRemote(ctx, req)
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the live sheet and layout to a local file",
	Long: `Export the live sheet and layout as an envelope file. Without --out the
file is written to the current directory under the character's name.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := send(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.ExportSheet(ctx, &emptypb.Empty{})
		})
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = filepath.Base(resp.GetFields()["fileName"].GetStringValue())
		}
		if err := os.WriteFile(path, []byte(resp.GetFields()["content"].GetStringValue()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the live sheet with a local file",
	RunE: func(_ *cobra.Command, _ []string) error {
		content, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", importFile, err)
		}
		req, err := request(map[string]any{"content": string(content)})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.ImportSheet(ctx, req)
		})
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the panel layout, or replace it with --set",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("set") {
			return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
				return c.GetLayout(ctx, &emptypb.Empty{})
			})
		}

		req, err := request(map[string]any{"layout": parseValue(layoutJSON)})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.SetLayout(ctx, req)
		})
	},
}

var setImageCmd = &cobra.Command{
	Use:   "set-image",
	Short: "Upload a character portrait",
	RunE: func(_ *cobra.Command, _ []string) error {
		content, err := os.ReadFile(imageFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", imageFile, err)
		}
		req, err := request(map[string]any{
			"name":    filepath.Base(imageFile),
			"content": base64.StdEncoding.EncodeToString(content),
		})
		if err != nil {
			return err
		}
		return call(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.SetImage(ctx, req)
		})
	},
}

var getImageCmd = &cobra.Command{
	Use:   "get-image",
	Short: "Download the character portrait",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := send(func(ctx context.Context, c v1alpha1.SheetServiceClient) (*structpb.Struct, error) {
			return c.GetImage(ctx, &emptypb.Empty{})
		})
		if err != nil {
			return err
		}

		content, err := base64.StdEncoding.DecodeString(resp.GetFields()["content"].GetStringValue())
		if err != nil {
			return fmt.Errorf("server sent an unreadable image: %w", err)
		}
		if err := os.WriteFile(imageOut, content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", imageOut, err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(content), imageOut)
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteFile, "file-id", "", "Remote file ID (required)")
	_ = deleteCmd.MarkFlagRequired("file-id") // nolint:errcheck // safe to ignore in init

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Destination path")

	importCmd.Flags().StringVar(&importFile, "file", "", "Exported sheet to import (required)")
	_ = importCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	layoutCmd.Flags().StringVar(&layoutJSON, "set", "", "New layout as JSON")

	setImageCmd.Flags().StringVar(&imageFile, "file", "", "Image to upload (required)")
	_ = setImageCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	getImageCmd.Flags().StringVar(&imageOut, "out", "portrait", "Destination path")
}
