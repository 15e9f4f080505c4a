// Package cache caché de las respuestas del dashboard. Los KPIs toleran unos
// minutos de desfase, así que un TTL corto evita repetir los agregados de
// PostgreSQL en cada carga del panel.
package cache

import (
	"context"
	"time"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
)

// NoopStatsCache caché desactivada (sin Redis configurado).
type NoopStatsCache struct{}

func (NoopStatsCache) Get(_ context.Context, _ string) (*dto.DashboardStatsResponse, bool, error) {
	return nil, false, nil
}

func (NoopStatsCache) Set(_ context.Context, _ string, _ *dto.DashboardStatsResponse, _ time.Duration) error {
	return nil
}
