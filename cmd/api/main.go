package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/creative"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/placeholder"
	"server/internal/providers/openai"
	"server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	var store storage.ObjectStore
	if cfg.MinioConfigured() {
		minioStore, err := storage.NewMinioStore(ctx, storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect object store")
		}
		store = minioStore
	} else {
		fileStore, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize local storage")
		}
		logger.Warn().Msg("object store not configured, using local filesystem storage")
		store = fileStore
	}

	ai := openai.NewClient(openai.Options{
		APIKey:       cfg.OpenAIAPIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		ChatModel:    cfg.ChatModel,
		VisionModel:  cfg.VisionModel,
		ImageModel:   cfg.ImageModel,
		EditModel:    cfg.EditModel,
		ImageSize:    cfg.ImageSize,
		ImageQuality: cfg.ImageQuality,
		HTTPClient:   &http.Client{Timeout: cfg.UpstreamTimeout},
	})
	if !ai.Configured() {
		logger.Warn().Msg("openai not configured, generation will fall back to defaults and placeholders")
	}

	users := repo.NewUserRepositoryPG(dbpool)
	submissions := repo.NewSubmissionRepositoryPG(dbpool)

	placeholders := placeholder.NewResolver(store, creative.GeneratedFolder, logger)
	styler := creative.NewStylingGenerator(ai, logger)
	synthesizer := creative.NewSynthesizer(ai, store, placeholders, logger)
	pipeline := creative.NewPipeline(users, submissions, styler, synthesizer, store, cfg.GenerationQuota, logger)
	profiler := creative.NewProductInfoGenerator(ai, ai, logger)

	app := handlers.NewApp(pipeline, profiler, users, submissions, store, cfg.GenerationQuota, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
