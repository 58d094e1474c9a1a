package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"query-gateway/config"
	"query-gateway/database"
	"query-gateway/shop"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cfg := config.Load()
	customer := shop.DefaultCustomer()

	rootCmd := &cobra.Command{
		Use:           "query-gateway",
		Short:         "Populate and query the demo shop schema",
		Long:          `Connects to the shop database, inserts a user, a product and an order, reads them back and updates stock and order status.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, customer)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.DBDriver, "driver", cfg.DBDriver, "SQL driver: mysql or sqlite3 (or set DB_DRIVER)")
	flags.StringVar(&cfg.DBHost, "host", cfg.DBHost, "database host (or set DB_HOST)")
	flags.IntVar(&cfg.DBPort, "port", cfg.DBPort, "database port (or set DB_PORT)")
	flags.StringVar(&cfg.DBName, "database", cfg.DBName, "database name, or file path for sqlite3 (or set DB_NAME)")
	flags.StringVar(&cfg.DBUser, "user", cfg.DBUser, "database user (or set DB_USER)")
	flags.StringVar(&cfg.DBPassword, "password", cfg.DBPassword, "database password (or set DB_PASSWORD)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (or set LOG_LEVEL)")
	flags.StringVar(&customer.Name, "customer-name", customer.Name, "name of the demo customer")
	flags.StringVar(&customer.Email, "customer-email", customer.Email, "email of the demo customer")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("query-gateway %s (commit: %s)\n", version, commit)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Printf("Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, customer shop.Customer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Open(ctx, cfg.DatabaseOptions(logger))
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = shop.NewDemo(db, os.Stdout, logger).Run(ctx, customer)
	return err
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(cfg.LogLevel),
		AddSource: cfg.Env == "development",
	}

	// Logs go to stderr so the demo's report stays readable on stdout
	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
