package main

import (
	"cinefav/cache"
	"cinefav/catalog"
	"cinefav/dynamodb"
	"cinefav/favorite"
	"cinefav/httpserver"
	"cinefav/pkg/config"
	"cinefav/pkg/sentry"
	"cinefav/postgres"
	"cinefav/tmdb"
	"context"
	"fmt"
	"log/slog"
	"os"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	var favoriteRepo favorite.Repository
	if cfg.DynamoDB.Table != "" {
		client, err := dynamodb.NewClient(context.Background(), dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			slog.Error("Cannot create dynamodb client", "error", err)
			os.Exit(1)
		}
		favoriteRepo = dynamodb.NewFavoriteRepository(client, cfg.DynamoDB.Table)
		slog.Info("using dynamodb favorites store", "table", cfg.DynamoDB.Table)
	} else {
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			slog.Error("Cannot open postgres connection", "error", err)
			os.Exit(1)
		}
		favoriteRepo = postgres.NewFavoriteRepository(db)
	}

	var store cache.Store
	if cfg.Cache.RedisAddr != "" {
		store = cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		}))
		slog.Info("using redis response cache", "addr", cfg.Cache.RedisAddr)
	} else {
		store = cache.NewMemoryStore()
		slog.Info("using in-process response cache")
	}

	tmdbOpts := []tmdb.Option{tmdb.WithLogger(logger)}
	if cfg.TMDB.BaseURL != "" {
		tmdbOpts = append(tmdbOpts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	if cfg.TMDB.Language != "" {
		tmdbOpts = append(tmdbOpts, tmdb.WithLanguage(cfg.TMDB.Language))
	}
	provider := tmdb.New(cfg.TMDB.APIKey, tmdbOpts...)

	catalogService := catalog.NewUsecase(provider, cache.New(store, logger))
	favoriteService := favorite.NewUsecase(favoriteRepo, catalogService)

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.CatalogService = catalogService
	server.FavoriteService = favoriteService

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
