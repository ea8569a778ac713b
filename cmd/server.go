package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/denysvitali/filebrowser-go/pkg/config"
	"github.com/denysvitali/filebrowser-go/pkg/server"
	"github.com/denysvitali/filebrowser-go/pkg/telemetry"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve [root]",
	Aliases: []string{"server"},
	Short:   "Serve a directory over HTTP",
	Long: `Start the HTTP server. The directory to expose is taken from the optional
argument, the --root flag, the SERVER_ROOT environment variable or the config
file, in that order, and defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServer,
}

func init() {
	// server.root becomes SERVER_ROOT
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	rootCmd.AddCommand(serveCmd)

	// Server-specific flags
	serveCmd.Flags().String("host", "", "Interface to listen on (empty for all)")
	serveCmd.Flags().IntP("port", "p", 8000, "Port to listen on")
	serveCmd.Flags().StringP("root", "r", "", "Directory to serve (default is the current directory)")
	serveCmd.Flags().StringSlice("cors-origins", []string{"*"}, "Origins allowed to make cross-origin requests")
	serveCmd.Flags().Bool("show-hidden", true, "List entries whose name starts with a dot")
	serveCmd.Flags().Bool("enable-telemetry", false, "Enable OpenTelemetry tracing")
	serveCmd.Flags().String("otel-endpoint", "", "OpenTelemetry endpoint (if empty, uses auto-export)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.root", serveCmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("server.cors_origins", serveCmd.Flags().Lookup("cors-origins"))
	_ = viper.BindPFlag("server.show_hidden", serveCmd.Flags().Lookup("show-hidden"))
	_ = viper.BindPFlag("telemetry.enabled", serveCmd.Flags().Lookup("enable-telemetry"))
	_ = viper.BindPFlag("telemetry.endpoint", serveCmd.Flags().Lookup("otel-endpoint"))
}

func runServer(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	if len(args) == 1 {
		viper.Set("server.root", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Telemetry.Enabled {
		logger.Info("Initializing OpenTelemetry")
		cleanup, err := telemetry.Initialize(cfg.Telemetry, logger)
		if err != nil {
			logger.Warnf("Failed to initialize telemetry: %v", err)
		} else {
			defer cleanup()
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown error: %v", err)
			return err
		}

		logger.Info("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
