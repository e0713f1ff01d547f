package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/marvalsa/Integration-Web-Site/core/config"
	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/loader"
	"github.com/marvalsa/Integration-Web-Site/core/logger"
	"github.com/marvalsa/Integration-Web-Site/core/middleware/auth"
	"github.com/marvalsa/Integration-Web-Site/core/middleware/rayid"

	"github.com/marvalsa/Integration-Web-Site/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the synchronization server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database",
			zap.String("host", cfg.Database.Host),
			zap.String("name", cfg.Database.Name))

		// 4. CRM Client
		client := crm.NewClient(cfg.CRM, logg)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(sync.NewFeature(db, client, cfg.Sync, cfg.CRM, logg,
			cfg.Server.Name, cfg.Server.Version))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
			logg.Info("Database pool closed")
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
