package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/printhauslabs/printhaus/internal/clock"
	"github.com/printhauslabs/printhaus/internal/config"
	"github.com/printhauslabs/printhaus/internal/migration"
	"github.com/printhauslabs/printhaus/internal/observability"
	"github.com/printhauslabs/printhaus/internal/order"
	"github.com/printhauslabs/printhaus/internal/pricing"
	"github.com/printhauslabs/printhaus/internal/pricingrule"
	"github.com/printhauslabs/printhaus/internal/redis"
	"github.com/printhauslabs/printhaus/internal/seed"
	"github.com/printhauslabs/printhaus/internal/server"
	"github.com/printhauslabs/printhaus/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "printhaus",
		Short:   "Printhaus pricing engine CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed starter pricing rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pricing API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the pricing API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		seed.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		pricingrule.Module,
		pricing.Module,
		order.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
