package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/marvalsa/Integration-Web-Site/core/config"
	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/logger"
	"github.com/marvalsa/Integration-Web-Site/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs one full synchronization pass without the HTTP server,
// intended for cron-style scheduling and manual runs.
var syncCmd = &cobra.Command{
	Use:   "sync [task]",
	Short: "Run a synchronization pass and print the report",
	Long: `Runs the full synchronization batch, or a single task when a task key is
given, and prints the resulting report as JSON on stdout. Exits non-zero when
the run did not finish cleanly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()

		client := crm.NewClient(cfg.CRM, logg)
		svc := sync.NewService(db, client, cfg.Sync, cfg.CRM, logg)

		ctx := context.Background()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if len(args) == 1 {
			rep, err := svc.RunTask(ctx, args[0])
			if err != nil {
				return err
			}
			_ = enc.Encode(rep)
			if !rep.OK() {
				os.Exit(1)
			}
			return nil
		}

		batch := svc.RunAll(ctx)
		_ = enc.Encode(batch)
		if batch.OverallState != "Exitoso" {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
