package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	auditLogRepo "central360/internal/auditlog"
	"central360/internal/cache"
	"central360/internal/core/config"
	"central360/internal/inventory/stockitems"
	"central360/internal/inventory/stocks"
	"central360/internal/middleware"
	"central360/internal/rate_limiter"
	"central360/internal/repository"
	"central360/internal/sectors"
	"central360/pkg/auditlog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	Repository       *repository.Repository
	AuditLog         *auditlog.Auditlog
	HealthChecker    *middleware.HealthChecker
	WriteLimiter     *rate_limiter.RateLimiter
	StockHandler     *stocks.StockHandler
	StockItemHandler *stockitems.StockItemHandler
	SectorHandler    *sectors.SectorHandler
	redis            *redis.Client
}

func NewAppContainer(ctx context.Context, cfg *config.Config, db *sql.DB, logger *zap.Logger) (*Container, error) {
	policy, err := stocks.NewOmitPolicy(cfg.BaselineOmitPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid STOCK_BASELINE_OMIT_POLICY: %w", err)
	}

	repo := repository.NewRepository(db)
	auditLogRepository := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditLogRepository, logger)

	c := &Container{
		Config:        cfg,
		Logger:        logger,
		Repository:    repo,
		AuditLog:      auditLog,
		HealthChecker: middleware.NewHealthChecker(repo, cfg.Version),
		WriteLimiter:  rate_limiter.NewRateLimiter(cfg.WriteRateLimit, time.Minute),
	}

	var responseCache stocks.ResponseCache = cache.Noop{}
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, overall stock cache disabled", zap.Error(err))
		} else {
			c.redis = client
			responseCache = cache.NewRedisCache(client, "central360", cfg.CacheTTL, logger)
		}
	}

	stockRepo := stocks.NewRepository(repo)
	reconciler := stocks.NewReconciler(stockRepo, policy, logger)
	stockService := stocks.NewStockService(stockRepo, reconciler, auditLog, responseCache, logger)
	c.StockHandler = stocks.NewStockHandler(stockService)

	sectorRepo := sectors.NewRepository(repo)
	c.SectorHandler = sectors.NewSectorHandler(sectorRepo, responseCache)
	c.StockItemHandler = stockitems.NewStockItemHandler(
		stockitems.NewRepository(repo),
		sectorRepo,
		auditLogRepository,
		auditLog,
		responseCache,
	)

	return c, nil
}

// Close releases resources owned by the container. The database handle belongs to the caller.
func (c *Container) Close() {
	c.WriteLimiter.Close()
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.Logger.Warn("Closing Redis client failed", zap.Error(err))
		}
	}
}
