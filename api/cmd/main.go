package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/exchange"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/messaging"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/subscription"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/suggestion"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/infrastructure/caching/redis"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/infrastructure/memory"
	rabbitpub "github.com/baechuer/real-time-ressys/services/barter-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/router"
)

const shutdownTimeout = 8 * time.Second

// sysClock implements the application Clock ports using system time.
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service.
type App struct {
	Config *config.Config
	Server *http.Server

	DB        *sql.DB
	Redis     *goredis.Client
	Publisher *rabbitpub.Publisher
	Refresher *suggestion.Refresher
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LogLevel != "" {
		_ = os.Setenv("LOG_LEVEL", cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		_ = os.Setenv("LOG_FORMAT", cfg.LogFormat)
	}
	logger.Init()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(rootCtx, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("app init failed")
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		zlog.Info().Msg("shutdown signal received")
	case err := <-errCh:
		zlog.Error().Err(err).Msg("server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn().Err(err).Msg("http shutdown")
	}
	zlog.Info().Msg("shutdown complete")
}

// NewApp wires stores, services and transport. Postgres, Redis and RabbitMQ are
// each optional; an empty URL selects the in-memory (or no-op) counterpart.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	clock := sysClock{}
	app := &App{Config: cfg}
	ready := map[string]handlers.Pinger{}

	// 1) Infrastructure
	deps := exchange.Deps{
		Listings: memory.NewListingStore(),
		Ratings:  memory.NewRatingStore(),
		Badges:   memory.NewBadgeStore(),
	}
	var subRepo subscription.SubscriptionRepo = memory.NewSubscriptionStore()
	var convRepo messaging.ConversationRepo = memory.NewConversationStore()

	if cfg.UsePostgres() {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.DB = db
		ready["postgres"] = handlers.PingFunc(db.PingContext)

		deps.Listings = postgres.NewListingRepo(db)
		deps.Ratings = postgres.NewRatingRepo(db)
		deps.Badges = postgres.NewBadgeRepo(db)
		subRepo = postgres.NewSubscriptionRepo(db)
		convRepo = postgres.NewConversationRepo(db)
	} else {
		zlog.Warn().Msg("DATABASE_URL empty: listings, ratings and subscriptions are in memory")
	}

	deps.Favorites = memory.NewFavoriteStore()
	deps.History = memory.NewHistoryStore()
	var sugStore suggestion.Store = memory.NewSuggestionStore()

	if cfg.UseRedis() {
		rc, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Redis = rc
		ready["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rc.Ping(ctx).Err() })

		deps.Favorites = redis.NewFavoriteStore(rc)
		deps.History = redis.NewHistoryStore(rc)
		sugStore = redis.NewSuggestionStore(rc, cfg.SuggestionTTL)
		zlog.Info().Msg("redis connected")
	} else {
		zlog.Warn().Msg("REDIS_URL empty: favorites, history and suggestions are in memory")
	}

	var pub events.Publisher = events.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Publisher = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}
	em := events.NewEmitter(pub, clock)

	// 2) Application
	subSvc := subscription.New(subRepo, clock, em)
	exchSvc := exchange.New(deps, subSvc, clock, em)
	sugSvc := suggestion.New(exchSvc, sugStore, clock, cfg.SuggestionDisplayLimit)
	app.Refresher = suggestion.NewRefresher(sugSvc, cfg.SuggestionDebounce)
	exchSvc.SetRefresher(app.Refresher)
	msgSvc := messaging.New(convRepo, exchSvc, subSvc, clock, em)

	// 3) Transport
	h := router.Handlers{
		Listings:      handlers.NewListingsHandler(exchSvc),
		Me:            handlers.NewMeHandler(exchSvc),
		Ratings:       handlers.NewRatingsHandler(exchSvc),
		Suggestions:   handlers.NewSuggestionsHandler(sugSvc),
		Subscription:  handlers.NewSubscriptionHandler(subSvc, clock),
		Conversations: handlers.NewConversationsHandler(msgSvc),
		Health:        handlers.NewHealthHandler(ready),
	}
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)

	// 4) Server
	app.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(h, auth, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	return app, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	zlog.Info().Msg("postgres connected")

	if cfg.DBAutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Close stops pending suggestion refreshes before releasing connections.
func (a *App) Close() {
	if a.Refresher != nil {
		a.Refresher.Close()
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			zlog.Warn().Err(err).Msg("rabbit close")
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
