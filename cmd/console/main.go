// @title        Pirates party console
// @version      1.0
// @description  Session-holding console in front of the Pirates guest-house party API.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pirates/party-console/internal/api"
	"github.com/pirates/party-console/internal/api/handler"
	"github.com/pirates/party-console/internal/api/middleware"
	"github.com/pirates/party-console/internal/core/guard"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/service"
	"github.com/pirates/party-console/internal/core/session"
	"github.com/pirates/party-console/internal/infrastructure/backend"
	"github.com/pirates/party-console/internal/infrastructure/db/memory"
	"github.com/pirates/party-console/internal/infrastructure/db/mongo"
	"github.com/pirates/party-console/internal/infrastructure/db/redis"
	"github.com/pirates/party-console/internal/infrastructure/queue"
	"github.com/pirates/party-console/internal/pkg/config"
	"github.com/pirates/party-console/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = time.Minute
)

// stores is the session state backend chosen by SESSION_BACKEND.
type stores struct {
	kv     ports.KVStore
	guard  ports.SubmitGuard
	checks map[string]handler.Checker
	close  func(ctx context.Context)
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "party-console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("session store unavailable")
	}

	var opts []session.Option
	var dispatcher *queue.Dispatcher
	if cfg.Session.WriteMode == "async" {
		dispatcher = queue.NewDispatcher(cfg.Session.Writers, st.kv, logger.Component("queue"))
		dispatcher.Start(ctx)
		opts = append(opts, session.WithWriteQueue(dispatcher))
	}
	if cfg.Session.SealKey != "" {
		opts = append(opts, session.WithCodec(session.NewCodec(cfg.Session.SealKey)))
	} else {
		log.Warn().Msg("SESSION_SEAL_KEY not set, session values are stored in the clear")
	}
	registry := session.NewRegistry(st.kv, logger.Component("session"), opts...)
	go registry.RunPruner(ctx, pruneInterval, cfg.Session.Idle)

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, backend tokens are decoded without signature checks")
	}
	client := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.URL,
		ChatURL: cfg.Backend.ChatURL,
		Timeout: cfg.Backend.Timeout,
	}, logger.Component("backend"))

	svcLog := logger.Component("service")
	submit := service.NewSubmitter(st.guard, 0, svcLog)
	clock := service.NewMatchClock(st.kv)

	e := api.NewRouter(api.Deps{
		Log:      logger.Component("http"),
		Registry: registry,
		Guard:    guard.Default(),
		Tracker:  navigation.NewTracker(),
		Session: middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     !cfg.IsDevelopment(),
		},
		KakaoURL: cfg.KakaoLoginURL,
		Auth:     service.NewAuthService(client, service.NewTokenDecoder(cfg.JWTSecret), svcLog),
		Admin:    service.NewAdminService(client, submit, svcLog),
		Owner:    service.NewOwnerService(client, submit, svcLog),
		Manager:  service.NewManagerService(client, clock, submit, svcLog),
		User:     service.NewUserService(client, clock, cfg.MatchWindow, svcLog),
		Chat:     service.NewChatService(client, svcLog),
		Checks:   st.checks,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("session_backend", cfg.Session.Backend).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if dispatcher != nil {
		dispatcher.Close()
	}
	st.close(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Session.Backend {
	case "redis":
		b, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			TTL:      cfg.Session.TTL,
		})
		if err != nil {
			return stores{}, err
		}
		return stores{
			kv:     b.KV,
			guard:  b.Guard,
			checks: map[string]handler.Checker{"redis": b.Check},
			close:  func(context.Context) { _ = b.Close() },
		}, nil

	case "mongo":
		b, err := mongo.Open(ctx, mongo.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
			TTL:         cfg.Session.TTL,
		})
		if err != nil {
			return stores{}, err
		}
		// Duplicate submissions are only caught within one process here.
		return stores{
			kv:     b.KV,
			guard:  memory.NewSubmitGuard(),
			checks: map[string]handler.Checker{"mongo": b.Check},
			close:  func(ctx context.Context) { _ = b.Close(ctx) },
		}, nil

	default:
		return stores{
			kv:    memory.NewKVStore(),
			guard: memory.NewSubmitGuard(),
			close: func(context.Context) {},
		}, nil
	}
}
