package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/sdkfamous/dnd-character-sheet/internal/handlers/sheet/v1alpha1"
	"github.com/sdkfamous/dnd-character-sheet/internal/orchestrators/document"
	"github.com/sdkfamous/dnd-character-sheet/internal/orchestrators/persistence"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/status"
)

var (
	grpcPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the character sheet gRPC server with the configured cache and remote store.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides SHEET_GRPC_PORT)")
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	clk := clock.New()
	b, err := openBackends(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer b.Close()

	store, err := document.New(&document.Config{
		Clock:         clk,
		HistoryLimit:  cfg.HistoryLimit,
		DebounceDelay: cfg.DebounceDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}
	// pending edits reach the cache before the backends close
	defer store.Flush()

	reporter := status.NewReporter(clk, cfg.StatusClear)
	persistenceService, err := persistence.NewOrchestrator(&persistence.Config{
		Store:  store,
		Cache:  b.cache,
		Remote: b.remote,
		Status: reporter,
	})
	if err != nil {
		return fmt.Errorf("failed to create persistence orchestrator: %w", err)
	}

	startup, err := persistenceService.Startup(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore sheet: %w", err)
	}
	log.Printf("Sheet restored from cache: %v (bound to %q)", startup.Restored, startup.Binding.RemoteID)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	sheetHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Store:       store,
		Persistence: persistenceService,
		Status:      reporter,
	})
	if err != nil {
		return fmt.Errorf("failed to create sheet handler: %w", err)
	}

	v1alpha1.RegisterSheetServiceServer(srv, sheetHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("gRPC server starting on port %d...", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func logFunc(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
	log.Printf("[%v] %s %v", level, msg, fields)
}
