package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/remote"
)

var remoteTimeout time.Duration

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage files in the remote store",
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sheets, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRemoteList,
}

var remoteDeleteCmd = &cobra.Command{
	Use:   "delete <file-id>",
	Short: "Delete a saved sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoteDelete,
}

func init() {
	remoteCmd.PersistentFlags().DurationVar(&remoteTimeout, "timeout", 30*time.Second, "Request timeout")

	remoteCmd.AddCommand(remoteListCmd)
	remoteCmd.AddCommand(remoteDeleteCmd)
}

// withRemote opens the configured remote store for one command
func withRemote(fn func(ctx context.Context, repo remote.Repository) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	b := &backends{}
	defer b.Close()
	if err := b.openRemote(ctx, cfg, clock.New()); err != nil {
		return err
	}

	return fn(ctx, b.remote)
}

func runRemoteList(cmd *cobra.Command, _ []string) error {
	return withRemote(func(ctx context.Context, repo remote.Repository) error {
		out, err := repo.List(ctx, remote.ListInput{})
		if err != nil {
			return fmt.Errorf("failed to list sheets: %w", err)
		}

		if len(out.Files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved sheets")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMODIFIED")
		for _, f := range out.Files {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.ID, f.Name, f.ModifiedTime.Local().Format(time.DateTime))
		}
		return w.Flush()
	})
}

func runRemoteDelete(cmd *cobra.Command, args []string) error {
	return withRemote(func(ctx context.Context, repo remote.Repository) error {
		if _, err := repo.Delete(ctx, remote.DeleteInput{FileID: args[0]}); err != nil {
			return fmt.Errorf("failed to delete %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	})
}
