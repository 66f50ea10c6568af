package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/MelloMattGit/CFBPyckem/external/cfbd"
	"github.com/MelloMattGit/CFBPyckem/external/discord"
	"github.com/MelloMattGit/CFBPyckem/internal/config"
	"github.com/MelloMattGit/CFBPyckem/internal/infrastructure/logos"
	"github.com/MelloMattGit/CFBPyckem/internal/infrastructure/repository/postgres"
	"github.com/MelloMattGit/CFBPyckem/internal/infrastructure/session"
	"github.com/MelloMattGit/CFBPyckem/internal/interfaces/httpapi"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/cache"
	idgen "github.com/MelloMattGit/CFBPyckem/internal/platform/id"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/resilience"
	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func OpenRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func NewHTTPServer(cfg config.Config, db *sqlx.DB, rdb *redis.Client, logger *logging.Logger) (*http.Server, error) {
	branding, err := logos.LoadFile(cfg.LogosPath)
	if err != nil {
		return nil, fmt.Errorf("load logos: %w", err)
	}

	matchupRepo := postgres.NewMatchupRepository(db)
	pickRepo := postgres.NewPickRepository(db)

	matchupSvc := usecase.NewMatchupService(matchupRepo, cfg.BoardClassification)
	if cfg.CacheEnabled {
		matchupSvc.SetCache(cache.NewStore(cfg.CacheTTL))
	}
	pickSvc := usecase.NewPickService(pickRepo, logger)

	discordClient := discord.NewClient(discord.ClientConfig{
		BaseURL:      cfg.DiscordBaseURL,
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		RedirectURI:  cfg.DiscordRedirectURI,
		Timeout:      cfg.DiscordTimeout,
		Logger:       logger,
	})
	sessionStore := session.NewRedisStore(rdb, idgen.NewRandomGenerator(), cfg.SessionTTL)
	sessionSvc := usecase.NewSessionService(discordClient, sessionStore, logger)

	handler := httpapi.NewHandler(
		matchupSvc,
		pickSvc,
		sessionSvc,
		branding,
		cfg.SessionTTL,
		cfg.SessionCookieSecure,
		logger,
	)
	router := httpapi.NewRouter(handler, sessionSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func NewIngestService(cfg config.Config, db *sqlx.DB, logger *logging.Logger) *usecase.IngestService {
	source := cfbd.NewClient(cfbd.ClientConfig{
		BaseURL: cfg.CFBDBaseURL,
		APIKey:  cfg.CFBDAPIKey,
		Timeout: cfg.CFBDTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CFBDCircuitEnabled,
			FailureThreshold: cfg.CFBDCircuitFailureCount,
			OpenTimeout:      cfg.CFBDCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CFBDCircuitHalfOpenMaxReq,
		},
	})
	matchupRepo := postgres.NewMatchupRepository(db)

	return usecase.NewIngestService(source, matchupRepo, cfg.IngestWorkers, logger)
}
