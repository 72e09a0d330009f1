package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/behavior"
	"github.com/personacore/sentinel/pkg/app/detector"
	appIncident "github.com/personacore/sentinel/pkg/app/incident"
	appModeration "github.com/personacore/sentinel/pkg/app/moderation"
	appProfile "github.com/personacore/sentinel/pkg/app/profile"
	"github.com/personacore/sentinel/pkg/app/rating"
	"github.com/personacore/sentinel/pkg/app/signals"
	"github.com/personacore/sentinel/pkg/cache"
	"github.com/personacore/sentinel/pkg/common"
	"github.com/personacore/sentinel/pkg/config"
	handlers "github.com/personacore/sentinel/pkg/handlers/http"
	"github.com/personacore/sentinel/pkg/infra/database"
	"github.com/personacore/sentinel/pkg/infra/httpx"
	infraLogger "github.com/personacore/sentinel/pkg/infra/logger"
	_ "github.com/personacore/sentinel/pkg/infra/migrations"
	"github.com/personacore/sentinel/pkg/infra/oracle"
	"github.com/personacore/sentinel/pkg/infra/repository"
	"github.com/personacore/sentinel/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheInstance, err := cache.NewCache(common.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	// repository
	profileRepository := repository.NewProfileRepository(db.DB)
	incidentRepository := repository.NewIncidentRepository(db.DB)
	moderationRepository := repository.NewModerationRepository(db.DB)
	activityRepository := repository.NewActivityRepository(db.DB)

	// oracles
	classifier := buildClassifier(logger, cfg.Oracles.Classifier)
	compliance := buildComplianceAnalyzer(logger, cfg.Oracles.Compliance)

	// service
	profileGetter := appProfile.NewGetter(logger, profileRepository, cacheInstance)
	profileUpdater := appProfile.NewUpdater(logger, profileRepository, cacheInstance)
	incidentRecorder := appIncident.NewRecorder(logger, incidentRepository)
	signalCollector := signals.NewCollector(logger, activityRepository, moderationRepository, incidentRepository)
	detectorRunner := detector.NewRunner(logger,
		detector.NewSpamDetector(),
		detector.NewHarassmentDetector(activityRepository),
		detector.NewEscalationDetector(incidentRepository),
		detector.NewThreatLanguageDetector(moderationRepository),
	)
	analyzer := behavior.NewAnalyzer(logger, signalCollector, detectorRunner, incidentRecorder, profileUpdater)
	summarizer := behavior.NewSummarizer(logger, profileGetter, incidentRepository, cacheInstance)
	moderator := appModeration.NewModerator(
		logger, classifier, compliance, moderationRepository, profileGetter, profileUpdater, incidentRecorder,
	)
	ratingService := rating.NewService(logger, activityRepository, incidentRecorder, profileUpdater)

	handlerTransport := handlers.HandlerTransport{
		AnalyzeBehaviorHandler:     handlers.NewAnalyzeBehaviorHandler(logger, analyzer),
		GetBehaviorSummaryHandler:  handlers.NewGetBehaviorSummaryHandler(logger, summarizer),
		ModerateContentHandler:     handlers.NewModerateContentHandler(logger, moderator),
		GetModerationRecordHandler: handlers.NewGetModerationRecordHandler(logger, moderator),
		GetSafetyProfileHandler:    handlers.NewGetSafetyProfileHandler(logger, profileGetter),
		RateInteractionHandler:     handlers.NewRateInteractionHandler(logger, ratingService),
		BlockUserHandler:           handlers.NewBlockUserHandler(logger, ratingService),
	}

	srv := server.NewSafetyServer(server.SafetyServerDI{
		HandlerTransport: handlerTransport,
		Config:           cfg,
		Logger:           logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}

// buildClassifier selects the real adapter or the neutral fallback at wiring
// time; call sites never nil-check the oracle.
func buildClassifier(logger *logrus.Logger, cfg config.OracleConfig) oracle.Classifier {
	if !cfg.Enabled || cfg.URL == "" {
		logger.Warn("classification oracle disabled, using neutral fallback")
		return oracle.NewFallbackClassifier()
	}
	return oracle.NewHTTPClassifier(
		logger,
		&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		httpx.NewCircuitBreaker("classifier", 30*time.Second, cfg.MaxFailures),
		oracle.ClassifierConfig{URL: cfg.URL, APIKey: cfg.APIKey, Model: cfg.Model},
	)
}

func buildComplianceAnalyzer(logger *logrus.Logger, cfg config.OracleConfig) oracle.ComplianceAnalyzer {
	if !cfg.Enabled || cfg.URL == "" {
		logger.Warn("compliance oracle disabled, using keyword fallback")
		return oracle.NewKeywordComplianceAnalyzer()
	}
	return oracle.NewHTTPComplianceAnalyzer(
		logger,
		&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		httpx.NewCircuitBreaker("compliance", 30*time.Second, cfg.MaxFailures),
		oracle.ComplianceConfig{URL: cfg.URL, APIKey: cfg.APIKey},
	)
}
