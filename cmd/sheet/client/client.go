// Package client provides commands that drive a running sheet server
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sdkfamous/dnd-character-sheet/internal/handlers/sheet/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Drive a running sheet server",
	Long:  `Client commands edit the live sheet of a running server over gRPC.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Sheet commands
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(setCmd)
	ClientCmd.AddCommand(addEntryCmd)
	ClientCmd.AddCommand(removeEntryCmd)
	ClientCmd.AddCommand(undoCmd)
	ClientCmd.AddCommand(redoCmd)

	// Remote store commands
	ClientCmd.AddCommand(saveCmd)
	ClientCmd.AddCommand(loadCmd)
	ClientCmd.AddCommand(listCmd)
	ClientCmd.AddCommand(deleteCmd)
	ClientCmd.AddCommand(statusCmd)

	// Local file, layout and portrait commands
	ClientCmd.AddCommand(exportCmd)
	ClientCmd.AddCommand(importCmd)
	ClientCmd.AddCommand(layoutCmd)
	ClientCmd.AddCommand(setImageCmd)
	ClientCmd.AddCommand(getImageCmd)
}

// createSheetClient creates a sheet service client
func createSheetClient() (v1alpha1.SheetServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewSheetServiceClient(conn), cleanup, nil
}

func printStruct(s *structpb.Struct) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func request(fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}
