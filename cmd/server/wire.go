// File: cmd/server/wire.go
package main

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iyunix/go-medisen/internal/config"
	"github.com/iyunix/go-medisen/internal/handlers"
	"github.com/iyunix/go-medisen/internal/ratelimit"
	"github.com/iyunix/go-medisen/internal/repository/ledger"
	"github.com/iyunix/go-medisen/internal/services"
	"github.com/iyunix/go-medisen/internal/services/ai"
	"github.com/iyunix/go-medisen/internal/services/assistant"
	"github.com/iyunix/go-medisen/internal/services/classifier"
	"github.com/iyunix/go-medisen/internal/services/directory"
	"github.com/iyunix/go-medisen/internal/services/doctor"
	"github.com/iyunix/go-medisen/internal/services/selection"
	"github.com/iyunix/go-medisen/internal/services/triage"
)

// Application aggregates all services and handlers
type Application struct {
	Config        *config.Config
	Logger        services.Logger
	DB            *gorm.DB
	TriageService *services.TriageService
	SubmitLimiter *ratelimit.MemoryRateLimiter
	TriageHandler *handlers.TriageHandler
	LedgerHandler *handlers.LedgerHandler
	LogHandler    *handlers.LogHandler

	// RegistryLoaded closes once the doctor directory has been fetched.
	RegistryLoaded <-chan struct{}
}

// Provider functions
func ProvideDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.LedgerDBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}
	if err := ledger.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate ledger database: %w", err)
	}
	return db, nil
}

func ProvideClassifier(cfg *config.Config) (classifier.Classifier, error) {
	clfConfig := classifier.DefaultConfig()
	clfConfig.URL = cfg.ClassifierURL
	clfConfig.Timeout = cfg.ClassifierTimeout
	if err := clfConfig.Validate(); err != nil {
		return nil, err
	}
	return classifier.NewHTTPClient(clfConfig), nil
}

func ProvideAIConfig(cfg *config.Config) *ai.Config {
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.OpenAIAPIKey
	aiConfig.BaseURL = cfg.OpenAIBaseURL
	aiConfig.Model = cfg.AssistantModel
	aiConfig.MaxTokens = cfg.AssistantMaxTokens
	aiConfig.Timeout = cfg.AssistantTimeout
	return aiConfig
}

func ProvideAssistantConfig(cfg *config.Config) *assistant.Config {
	asstConfig := assistant.DefaultConfig()
	asstConfig.Model = cfg.AssistantModel
	asstConfig.MaxTokens = cfg.AssistantMaxTokens
	return asstConfig
}

func ProvideDirectory(cfg *config.Config) directory.Directory {
	if cfg.DirectoryURL == "" {
		return directory.NewStaticDirectory()
	}
	return directory.NewHTTPDirectory(cfg.DirectoryURL, cfg.DirectoryTimeout)
}

func ProvideSubmitLimiter(cfg *config.Config) *ratelimit.MemoryRateLimiter {
	limitConfig := ratelimit.DefaultSubmitConfig()
	if cfg.SubmitRateLimit > 0 {
		limitConfig.MaxRequests = cfg.SubmitRateLimit
	}
	if cfg.SubmitRateWindow > 0 {
		limitConfig.WindowSize = cfg.SubmitRateWindow
	}
	return ratelimit.NewMemoryRateLimiter(limitConfig)
}

// InitializeApplication builds the whole dependency graph. The doctor
// registry starts empty and is fetched once in the background; ctx bounds
// that fetch.
func InitializeApplication(ctx context.Context, cfg *config.Config, logger services.Logger) (*Application, error) {
	db, err := ProvideDB(cfg)
	if err != nil {
		return nil, err
	}

	clf, err := ProvideClassifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	aiConfig := ProvideAIConfig(cfg)
	if aiConfig.APIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; assistant replies will fall back to the error message")
	}
	provider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("completion provider: %w", err)
	}

	registry := doctor.NewRegistry(nil)
	registryLoaded := directory.LoadRegistryAsync(ctx, ProvideDirectory(cfg), logger, registry.Set)

	deps := &triage.Dependencies{
		Vocabulary:      selection.DefaultVocabulary(),
		Classifier:      clf,
		Completion:      provider,
		AssistantConfig: ProvideAssistantConfig(cfg),
		Registry:        registry,
		Matcher:         doctor.NewMatcher(nil),
		SampleSize:      cfg.DoctorSampleSize,
		DefaultCity:     cfg.DefaultCity,
		Logger:          logger,
	}

	store := ledger.NewGormStore(db)
	triageService, err := services.NewTriageService(deps,
		ledger.NewFeedbackLedger(store, logger),
		ledger.NewBookingLedger(store, logger),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("triage service: %w", err)
	}

	return &Application{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		TriageService: triageService,
		SubmitLimiter: ProvideSubmitLimiter(cfg),
		TriageHandler: handlers.NewTriageHandler(triageService, logger),
		LedgerHandler: handlers.NewLedgerHandler(triageService, logger),
		LogHandler:    handlers.NewLogHandler(logger),

		RegistryLoaded: registryLoaded,
	}, nil
}
