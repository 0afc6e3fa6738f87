// Package main is the entry point for the character sheet service and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdkfamous/dnd-character-sheet/cmd/sheet/client"
	"github.com/sdkfamous/dnd-character-sheet/internal/config"
)

var (
	envFile       string
	cacheBackend  string
	remoteBackend string
)

var rootCmd = &cobra.Command{
	Use:   "sheet",
	Short: "D&D character sheet",
	Long:  `Character sheet service with undo history, a local cache and a remote file store.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to read instead of .env")
	rootCmd.PersistentFlags().StringVar(&cacheBackend, "cache", "", "cache backend: memory, redis or sqlite")
	rootCmd.PersistentFlags().StringVar(&remoteBackend, "remote", "", "remote backend: memory or minio")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// loadConfig reads the environment and applies command line overrides
func loadConfig() (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	if cacheBackend != "" {
		cfg.CacheBackend = cacheBackend
	}
	if remoteBackend != "" {
		cfg.RemoteBackend = remoteBackend
	}
	if grpcPort != 0 {
		cfg.GRPCPort = grpcPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
