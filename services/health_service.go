package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/types"
)

// HealthService reports component health for the health endpoints. A nil
// pool or redis client means that dependency is not configured (fixture
// mode) and is skipped rather than reported down.
type HealthService struct {
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	version     string
	log         *zap.SugaredLogger
}

func NewHealthService(dbPool *pgxpool.Pool, redisClient *redis.Client, version string) *HealthService {
	return &HealthService{
		dbPool:      dbPool,
		redisClient: redisClient,
		version:     version,
		log:         logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	merge := func(name string, component types.HealthComponent) {
		components[name] = component
		switch component.Status {
		case types.HealthStatusDown:
			overallStatus = types.HealthStatusDown
		case types.HealthStatusDegraded:
			if overallStatus != types.HealthStatusDown {
				overallStatus = types.HealthStatusDegraded
			}
		}
	}

	if h.dbPool != nil {
		merge("database", h.checkDatabase(ctx))
	}
	if h.redisClient != nil {
		merge("redis", h.checkRedis(ctx))
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// IsReady reports whether the service can take traffic.
func (h *HealthService) IsReady(ctx context.Context) bool {
	return h.CheckHealth(ctx).Status != types.HealthStatusDown
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	if err := h.dbPool.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}

	stat := h.dbPool.Stat()
	if stat.TotalConns() > 0 && float64(stat.AcquiredConns())/float64(stat.TotalConns()) > 0.8 {
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "Connection pool near capacity",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
