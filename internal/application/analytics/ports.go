package analytics

import (
	"context"
	"time"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
)

// StatsCache puerto de caché para las estadísticas del dashboard.
type StatsCache interface {
	Get(ctx context.Context, key string) (*dto.DashboardStatsResponse, bool, error)
	Set(ctx context.Context, key string, value *dto.DashboardStatsResponse, ttl time.Duration) error
}
