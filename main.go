package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/CodeClashers89/SwasthyaCare/internal/config"
	"github.com/CodeClashers89/SwasthyaCare/internal/jobs"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/notify"
	"github.com/CodeClashers89/SwasthyaCare/internal/routes"
)

func main() {
	// Load environment variables; a missing .env is fine in production where
	// the environment is injected by the runtime.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	// Structured logging; human-readable console output in development.
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - passing DB and config to let routes.go create the handlers
	routes.SetupRoutes(router, db, cfg)

	// Background reminder sweep for tomorrow's appointments.
	if cfg.RemindersEnabled {
		mailer, err := jobs.NewMailer(cfg.Mailer.Transport, cfg.Mailer.DefaultFrom)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid mailer configuration")
		}
		job := jobs.NewReminderJob(db, mailer, notify.NewInApp(db))
		scheduler, err := jobs.Start(job, cfg.ReminderCronSpec)
		if err != nil {
			log.Fatal().Err(err).Str("spec", cfg.ReminderCronSpec).Msg("failed to start reminder scheduler")
		}
		defer scheduler.Stop()
		log.Info().Str("spec", cfg.ReminderCronSpec).Msg("reminder scheduler started")
	}

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(serverAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
