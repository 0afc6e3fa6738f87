package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/services/migration"
)

var normalizeOut string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Migrate a saved sheet to the current format",
	Long: `Read a saved sheet (an envelope or a bare document from any older version),
migrate it and print the canonical envelope.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "write to this file instead of stdout")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	parsed, err := migration.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to migrate %s: %w", args[0], err)
	}

	out, err := json.MarshalIndent(sheet.Envelope{Document: parsed.Document, Layout: parsed.Layout}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}
	out = append(out, '\n')

	if normalizeOut == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if err := os.WriteFile(normalizeOut, out, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", normalizeOut, err)
	}
	if !parsed.Enveloped {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrapped bare document from %s in an envelope\n", args[0])
	}
	return nil
}
