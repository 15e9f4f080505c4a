package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/application/inventory"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/config"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

// ProductUseCase catálogo de productos: alta con ID de negocio secuencial,
// actualización parcial, soft-delete y vistas por rol.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	warehouses  config.WarehouseConfig
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	warehouses config.WarehouseConfig,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		warehouses:  warehouses,
		log:         log,
	}
}

// nextID calcula el siguiente ID de negocio (P001, P002, ...) del admin.
func (uc *ProductUseCase) nextID(ctx context.Context, adminID string) (string, error) {
	max, err := uc.productRepo.MaxID(ctx, adminID)
	if err != nil {
		return "", err
	}
	n := 0
	if max != "" {
		n, _ = strconv.Atoi(strings.TrimPrefix(max, "P"))
	}
	return fmt.Sprintf("P%03d", n+1), nil
}

// Create da de alta un producto. Solo el admin; el stock inicial acepta el
// formato heredado (plano o por bodega, números o strings).
func (uc *ProductUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if actor.Rol != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	in.Normalize()
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Precios.SinIVAColombia.Decimal.IsNegative() ||
		in.Precios.ConIVAColombia.Decimal.IsNegative() ||
		in.Precios.Internacional.Decimal.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	id, err := uc.nextID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	producto := &entity.Product{
		ID:          id,
		AdminID:     actor.ID,
		Nombre:      in.Nombre,
		Categoria:   in.Categoria,
		Descripcion: in.Descripcion,
		Imagen:      in.Imagen,
		Precios: entity.Precios{
			SinIVAColombia:     in.Precios.SinIVAColombia.Decimal,
			ConIVAColombia:     in.Precios.ConIVAColombia.Decimal,
			Internacional:      in.Precios.Internacional.Decimal,
			FechaActualizacion: now,
		},
		Margenes:      entity.Margenes{Descuento: in.Descuento.Decimal},
		Activo:        true,
		CreadoEn:      now,
		ActualizadoEn: now,
	}
	if err := uc.productRepo.Create(ctx, producto); err != nil {
		return nil, err
	}

	ledger := inventory.NewLedger(uc.stockRepo)
	stock := inventory.NormalizeMap(in.Stock.PorBodega, in.Stock.Flat, uc.warehouses.Domestic)
	for bodega, cantidad := range stock {
		if err := ledger.SetStock(ctx, producto.ID, bodega, cantidad); err != nil {
			return nil, err
		}
	}

	uc.log.Info().Str("producto_id", producto.ID).Str("nombre", producto.Nombre).Msg("producto creado")

	resp := dto.ToProductResponse(producto, stock)
	return &resp, nil
}

// Update actualiza campos del producto; los nil no cambian. Si llegan precios
// se estampa la fecha de actualización; si llega stock se fija por bodega.
func (uc *ProductUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if actor.Rol != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	producto, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		producto.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Categoria != nil {
		producto.Categoria = *in.Categoria
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Imagen != nil {
		producto.Imagen = *in.Imagen
	}
	if in.Descuento != nil {
		producto.Margenes.Descuento = in.Descuento.Decimal
	}
	if in.Precios != nil {
		if in.Precios.SinIVAColombia.Decimal.IsNegative() ||
			in.Precios.ConIVAColombia.Decimal.IsNegative() ||
			in.Precios.Internacional.Decimal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.Precios = entity.Precios{
			SinIVAColombia:     in.Precios.SinIVAColombia.Decimal,
			ConIVAColombia:     in.Precios.ConIVAColombia.Decimal,
			Internacional:      in.Precios.Internacional.Decimal,
			FechaActualizacion: time.Now(),
		}
	}
	producto.ActualizadoEn = time.Now()

	if err := uc.productRepo.Update(ctx, producto); err != nil {
		return nil, err
	}

	if in.Stock != nil {
		ledger := inventory.NewLedger(uc.stockRepo)
		for bodega, cantidad := range inventory.NormalizeMap(in.Stock.PorBodega, in.Stock.Flat, uc.warehouses.Domestic) {
			if err := ledger.SetStock(ctx, producto.ID, bodega, cantidad); err != nil {
				return nil, err
			}
		}
	}

	stock, err := uc.stockRepo.GetByProduct(ctx, producto.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(producto, stock)
	return &resp, nil
}

// Delete marca el producto inactivo. Las órdenes existentes conservan su
// snapshot; las nuevas ya no lo encuentran.
func (uc *ProductUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if actor.Rol != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	producto, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	if err := uc.productRepo.SetActivo(ctx, id, false); err != nil {
		return err
	}
	uc.log.Info().Str("producto_id", id).Msg("producto desactivado")
	return nil
}

// Get devuelve un producto en la vista del rol del actor.
func (uc *ProductUseCase) Get(ctx context.Context, actor *entity.User, id string) (any, error) {
	producto, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	if entity.IsDistribuidor(actor.Rol) {
		if !producto.Activo {
			return nil, domain.ErrNotFound
		}
		precio, ok := producto.PrecioPara(actor.TipoPrecio)
		if !ok {
			return nil, domain.ErrInvalidPriceMode
		}
		resp := dto.ToDistribuidorProductResponse(producto, precio)
		return &resp, nil
	}

	stock, err := uc.stockRepo.GetByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(producto, stock)
	return &resp, nil
}

// List devuelve el catálogo según el rol: el admin ve todo con stock por
// bodega; el distribuidor solo activos con el precio de su tipo.
func (uc *ProductUseCase) List(ctx context.Context, actor *entity.User) (any, error) {
	if entity.IsDistribuidor(actor.Rol) {
		productos, err := uc.productRepo.List(ctx, repository.ProductFilter{SoloActivos: true})
		if err != nil {
			return nil, err
		}
		out := dto.DistribuidorProductListResponse{Productos: []dto.DistribuidorProductResponse{}}
		for _, p := range productos {
			precio, ok := p.PrecioPara(actor.TipoPrecio)
			if !ok {
				continue
			}
			out.Productos = append(out.Productos, dto.ToDistribuidorProductResponse(p, precio))
		}
		out.Total = len(out.Productos)
		return &out, nil
	}

	productos, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := dto.ProductListResponse{Productos: []dto.ProductResponse{}}
	for _, p := range productos {
		stock, err := uc.stockRepo.GetByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out.Productos = append(out.Productos, dto.ToProductResponse(p, stock))
	}
	out.Total = len(out.Productos)
	return &out, nil
}

// Inventario vista de una bodega: stock de su propio CDI con el precio sin
// IVA de referencia.
func (uc *ProductUseCase) Inventario(ctx context.Context, actor *entity.User) (*dto.InventoryResponse, error) {
	if actor.Rol != entity.RoleBodega {
		return nil, domain.ErrForbidden
	}
	if actor.CDI == "" {
		return nil, domain.ErrInvalidInput
	}

	productos, err := uc.productRepo.List(ctx, repository.ProductFilter{SoloActivos: true})
	if err != nil {
		return nil, err
	}

	ledger := inventory.NewLedger(uc.stockRepo)
	out := &dto.InventoryResponse{Bodega: actor.CDI, Productos: []dto.InventoryItemResponse{}}
	for _, p := range productos {
		cantidad, err := ledger.GetStock(ctx, p.ID, actor.CDI)
		if err != nil {
			return nil, err
		}
		precio := p.Precios.SinIVAColombia
		if actor.CDI == uc.warehouses.Export {
			precio = p.Precios.Internacional
		}
		out.Productos = append(out.Productos, dto.InventoryItemResponse{
			ID:        p.ID,
			Nombre:    p.Nombre,
			Categoria: p.Categoria,
			Stock:     cantidad,
			Estado:    estadoStock(cantidad),
			Precio:    precio,
			Activo:    p.Activo,
		})
	}
	out.Total = len(out.Productos)
	return out, nil
}

// estadoStock clasifica el nivel de inventario de una bodega.
func estadoStock(cantidad int) string {
	switch {
	case cantidad == 0:
		return "Sin Stock"
	case cantidad <= 50:
		return "Stock Bajo"
	default:
		return "Normal"
	}
}
