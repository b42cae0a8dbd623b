package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/ai-tutor/internal/api"
	sessionapi "github.com/futig/ai-tutor/internal/api/session"
	"github.com/futig/ai-tutor/internal/config"
	"github.com/futig/ai-tutor/internal/integration/llm"
	"github.com/futig/ai-tutor/internal/pkg/formatter"
	"github.com/futig/ai-tutor/internal/pkg/logger"
	"github.com/futig/ai-tutor/internal/pkg/validator"
	"github.com/futig/ai-tutor/internal/telegram"
	"github.com/futig/ai-tutor/internal/usecase/session"
	"github.com/futig/ai-tutor/internal/usecase/tutor"
	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"
)

// serverWriteTimeout has to outlast the router timeout, which in turn covers a slow completion call
const serverWriteTimeout = 160 * time.Second

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	formatters := buildFormatters(cfg, log)
	sessionUC := buildSessionUsecase(cfg, formatters, log)

	// Setup API handlers
	sessionHandler := sessionapi.NewHandler(sessionUC, validator.NewValidator(cfg.SessionCfg, formatters.Formats()))
	log.Info("API handlers initialized")

	router := api.SetupRouter(sessionHandler, cfg.CORSAllowedOrigins, log)
	log.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required to run the bot")
	}

	log.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	formatters := buildFormatters(cfg, log)
	sessionUC := buildSessionUsecase(cfg, formatters, log)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, sessionUC, formatters.Formats(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	log.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, log, nil
}

// buildFormatters applies the unioffice license key. Without a working key DOCX
// is left out of the factory, so no front end offers it.
func buildFormatters(cfg *config.Config, log *zap.Logger) *formatter.Factory {
	if cfg.DocxLicenseKey == "" {
		log.Info("UNIOFFICE_LICENSE_KEY not set, DOCX export disabled")
		return formatter.NewFactory(false)
	}

	if err := license.SetMeteredKey(cfg.DocxLicenseKey); err != nil {
		log.Error("Failed to apply unioffice license key, DOCX export disabled", zap.Error(err))
		return formatter.NewFactory(false)
	}

	log.Info("DOCX export enabled")
	return formatter.NewFactory(true)
}

// buildSessionUsecase wires the completion connector, answer service and session store
func buildSessionUsecase(cfg *config.Config, formatters *formatter.Factory, log *zap.Logger) *session.SessionUsecase {
	var llmConnector tutor.LLMConnector
	if cfg.EnableMocks {
		log.Info("Using mock connector for the completion endpoint")
		llmConnector = llm.NewMockConnector(log)
	} else {
		log.Info("Using completion endpoint",
			zap.String("url", cfg.LLMConnectorCfg.Url),
			zap.String("model", cfg.LLMConnectorCfg.Model),
		)
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, log)
	}

	tutorSvc := tutor.NewService(llmConnector, log)
	store := session.NewStore(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)

	sessionUC := session.NewUsecase(store, tutorSvc, formatters, log)
	log.Info("Use cases initialized")

	return sessionUC
}
