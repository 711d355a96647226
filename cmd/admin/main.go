package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"adflow.dev/adflow-admin/internal/admin/catalog"
	"adflow.dev/adflow-admin/internal/admin/httpserver"
	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	"adflow.dev/adflow-admin/internal/admin/session"
)

func main() {
	logger := buildLogger()
	defer logger.Sync()

	rootCtx := context.Background()

	catalogSvc := buildCatalogService(logger)
	sessions, err := session.NewManager(session.Config{
		CookieName:   getEnv("SESSION_COOKIE_NAME", "adflow_session"),
		HashKey:      []byte(getEnv("SESSION_HASH_KEY", "")),
		BlockKey:     blockKey(),
		CookieSecure: getEnv("SESSION_COOKIE_SECURE", "") == "true",
	})
	if err != nil {
		logger.Fatal("session manager init failed; set SESSION_HASH_KEY", zap.Error(err))
	}

	cfg := httpserver.Config{
		Address:          getEnv("ADMIN_HTTP_ADDR", ":8080"),
		BasePath:         getEnv("ADMIN_BASE_PATH", "/admin"),
		CSRFCookieSecure: getEnv("SESSION_COOKIE_SECURE", "") == "true",
		Logger:           logger,
		Authenticator:    buildAuthenticator(rootCtx, logger),
		SessionStore:     sessions,
		CatalogService:   catalogSvc,
		Drafts:           catalog.NewDraftStore(),
		Resolver:         catalog.NewResolver(catalogSvc, nil),
		Submitter:        catalog.NewSubmitter(catalogSvc, logger),
	}

	srv := httpserver.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("admin server listening",
		zap.String("addr", cfg.Address),
		zap.String("base_path", cfg.BasePath))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func buildLogger() *zap.Logger {
	if os.Getenv("ADMIN_ENV") == "development" {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}

func blockKey() []byte {
	if v := os.Getenv("SESSION_BLOCK_KEY"); v != "" {
		return []byte(v)
	}
	return nil
}

func buildCatalogService(logger *zap.Logger) catalog.Service {
	baseURL := os.Getenv("CATALOG_API_URL")
	if baseURL == "" {
		logger.Warn("CATALOG_API_URL not set; using in-memory catalog")
		return catalog.NewStaticService()
	}

	svc, err := catalog.NewHTTPService(baseURL, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		logger.Fatal("catalog service init failed", zap.Error(err))
	}
	logger.Info("catalog service configured", zap.String("base_url", baseURL))
	return svc
}

func buildAuthenticator(ctx context.Context, logger *zap.Logger) middleware.Authenticator {
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		logger.Warn("FIREBASE_PROJECT_ID not set; using passthrough authenticator")
		return nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: projectID,
	})
	if err != nil {
		logger.Error("firebase app init failed", zap.Error(err))
		return nil
	}

	client, err := app.Auth(ctx)
	if err != nil {
		logger.Error("firebase auth client init failed", zap.Error(err))
		return nil
	}

	logger.Info("firebase authenticator enabled", zap.String("project", projectID))
	return middleware.NewFirebaseAuthenticator(client)
}
