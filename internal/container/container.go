package container

import (
	"context"
	"fmt"

	"wildberries/parser/internal/cache"
	"wildberries/parser/internal/client"
	"wildberries/parser/internal/config"
	"wildberries/parser/internal/export"
	"wildberries/parser/internal/proxy"
	"wildberries/parser/internal/repository"
	"wildberries/parser/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.WildberriesClient
	Cache      cache.Cache
	Repository repository.ProductRepository
	Exporter   export.Exporter

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier := proxy.NewProxySupplier(ctx, cfg.Wildberries.Proxies, cfg.Wildberries.MenuURL)
	container.Client = client.NewWildberriesClient(cfg.Wildberries, proxySupplier)

	switch cfg.Cache.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.Cache = cache.NewRedisCache(rdb, cfg.Redis.KeyPrefix)
	default:
		container.Cache = cache.NewFileCache(cfg.Cache.Dir)
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		container.db = db

		repo := repository.NewProductRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			container.Close()
			return nil, err
		}
		log.Info("✅ Connected to PostgreSQL successfully")

		container.Repository = repo
	}

	exporter, err := export.New(cfg.Export.Format, cfg.Export.Path)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Exporter = exporter

	container.Service = service.NewService(
		service.NewCatalogLoader(container.Client, container.Cache, cfg.Cache.Key),
		service.NewPathResolver(cfg.Wildberries.CatalogPrefix, cfg.Wildberries.ExactMatch),
		service.NewListingFetcher(container.Client, cfg.Wildberries.MaxPages, cfg.Wildberries.PageDelay),
		service.NewRecordNormalizer(cfg.Wildberries.ProductURL),
	)

	return container, nil
}

// Run executes the pipeline for the configured catalog path and hands the rows to every sink in turn
func (c *Container) Run(ctx context.Context) (*service.Result, error) {
	result, err := c.Service.Run(ctx, c.Config.Wildberries.CatalogPath)
	if err != nil {
		return nil, err
	}

	if c.Exporter != nil {
		if err := c.Exporter.Export(result.Rows); err != nil {
			return nil, err
		}
	}

	if c.Repository != nil {
		if err := c.Repository.SaveProducts(ctx, result.Category, result.Rows); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.Client != nil {
		if err := c.Client.Close(); err != nil {
			log.Warnf("Failed to close HTTP client: %v", err)
		}
	}
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
