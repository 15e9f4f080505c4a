// Package analytics estadísticas operativas del panel: KPIs, alertas de stock
// y productos populares, con la vista regional de cada bodega.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/config"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

const (
	statsTTL          = 5 * time.Minute
	lowStockMin       = 1
	lowStockMax       = 40
	recentOrdersLimit = 5
	popularesDefault  = 10
	popularesMax      = 50
)

// DashboardUseCase arma las estadísticas del panel a partir del repositorio
// de agregados, con caché corta por alcance (admin o CDI).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         StatsCache
	warehouses    config.WarehouseConfig
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	cache StatsCache,
	warehouses config.WarehouseConfig,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		cache:         cache,
		warehouses:    warehouses,
		log:           log,
	}
}

// scope alcance regional de las consultas según el rol del actor.
type scope struct {
	key          string
	tipoPrecioIn []string
	bodegas      []string
}

func (uc *DashboardUseCase) scopeFor(actor *entity.User) (scope, error) {
	switch actor.Rol {
	case entity.RoleAdmin, entity.RoleProduccion, entity.RoleFacturacion:
		return scope{
			key:     "global",
			bodegas: []string{uc.warehouses.Domestic, uc.warehouses.Export},
		}, nil
	case entity.RoleBodega:
		if actor.CDI == "" {
			return scope{}, domain.ErrInvalidInput
		}
		s := scope{key: actor.CDI, bodegas: []string{actor.CDI}}
		if actor.CDI == uc.warehouses.Export {
			s.tipoPrecioIn = []string{entity.PrecioSinIVAInternacional}
		} else {
			s.tipoPrecioIn = []string{entity.PrecioConIVA, entity.PrecioSinIVA}
		}
		return s, nil
	}
	return scope{}, domain.ErrForbidden
}

// Stats devuelve los KPIs del panel. Los contadores livianos van en serie;
// las consultas de agregados corren en paralelo (llamadas independientes).
func (uc *DashboardUseCase) Stats(ctx context.Context, actor *entity.User) (*dto.DashboardStatsResponse, error) {
	sc, err := uc.scopeFor(actor)
	if err != nil {
		return nil, err
	}

	cacheKey := "dashboard:stats:" + sc.key
	if cached, ok, err := uc.cache.Get(ctx, cacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("caché de dashboard no disponible")
	} else if ok {
		return cached, nil
	}

	totalProductos, err := uc.analyticsRepo.CountActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos activos: %w", err)
	}
	totalDistribuidores, err := uc.analyticsRepo.CountDistribuidores(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: distribuidores: %w", err)
	}
	pendientes, err := uc.analyticsRepo.CountPendingOrders(ctx, sc.tipoPrecioIn)
	if err != nil {
		return nil, fmt.Errorf("dashboard: pendientes: %w", err)
	}

	type alertResult struct {
		rows []repository.StockAlert
		err  error
	}
	type recentResult struct {
		rows []*entity.Order
		err  error
	}
	type salesResult struct {
		total decimal.Decimal
		num   int
		err   error
	}

	bajoChan := make(chan alertResult, 1)
	agotadoChan := make(chan alertResult, 1)
	recienteChan := make(chan recentResult, 1)
	ventasChan := make(chan salesResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.LowStockProducts(ctx, sc.bodegas, lowStockMin, lowStockMax)
		bajoChan <- alertResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.OutOfStockProducts(ctx, sc.bodegas)
		agotadoChan <- alertResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.RecentOrders(ctx, sc.tipoPrecioIn, recentOrdersLimit)
		recienteChan <- recentResult{rows, err}
	}()
	go func() {
		desde, hasta := mesEnCurso(time.Now())
		total, num, err := uc.analyticsRepo.MonthlySales(ctx, desde, hasta, sc.tipoPrecioIn)
		ventasChan <- salesResult{total, num, err}
	}()

	bajo := <-bajoChan
	agotado := <-agotadoChan
	reciente := <-recienteChan
	ventas := <-ventasChan

	if bajo.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", bajo.err)
	}
	if agotado.err != nil {
		return nil, fmt.Errorf("dashboard: agotados: %w", agotado.err)
	}
	if reciente.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos recientes: %w", reciente.err)
	}
	if ventas.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", ventas.err)
	}

	resp := &dto.DashboardStatsResponse{
		TotalProductos:      totalProductos,
		TotalDistribuidores: totalDistribuidores,
		PedidosPendientes:   pendientes,
		VentasMes:           ventas.total,
		NumeroVentasMes:     ventas.num,
		StockBajo:           toAlertas(bajo.rows),
		Agotados:            toAlertas(agotado.rows),
		PedidosRecientes:    make([]dto.OrderResponse, 0, len(reciente.rows)),
	}
	for _, o := range reciente.rows {
		resp.PedidosRecientes = append(resp.PedidosRecientes, dto.ToOrderResponse(o))
	}

	if err := uc.cache.Set(ctx, cacheKey, resp, statsTTL); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo cachear el dashboard")
	}
	return resp, nil
}

// Populares agrega unidades vendidas por producto sobre órdenes facturadas
// del período; por defecto los últimos 30 días.
func (uc *DashboardUseCase) Populares(ctx context.Context, actor *entity.User, desde, hasta time.Time, limit int) (*dto.PopularProductsResponse, error) {
	sc, err := uc.scopeFor(actor)
	if err != nil {
		return nil, err
	}

	if hasta.IsZero() {
		hasta = time.Now()
	}
	if desde.IsZero() {
		desde = hasta.AddDate(0, 0, -30)
	}
	if desde.After(hasta) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = popularesDefault
	}
	if limit > popularesMax {
		limit = popularesMax
	}

	rows, err := uc.analyticsRepo.PopularProducts(ctx, desde, hasta, sc.tipoPrecioIn, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: populares: %w", err)
	}

	resp := &dto.PopularProductsResponse{
		Desde:     desde,
		Hasta:     hasta,
		Productos: make([]dto.PopularProductResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Productos = append(resp.Productos, dto.PopularProductResponse{
			ID:             r.ProductID,
			Nombre:         r.Nombre,
			Categoria:      r.Categoria,
			PrecioPromedio: r.PrecioPromedio,
			Vendidos:       r.Vendidos,
			NumPedidos:     r.NumPedidos,
			Activo:         r.Activo,
		})
	}
	return resp, nil
}

// mesEnCurso rango del día 1 del mes a ahora.
func mesEnCurso(ahora time.Time) (time.Time, time.Time) {
	desde := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	return desde, ahora
}

func toAlertas(rows []repository.StockAlert) []dto.StockAlertResponse {
	out := make([]dto.StockAlertResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockAlertResponse{ID: r.ProductID, Nombre: r.Nombre, Stock: r.Stock})
	}
	return out
}
