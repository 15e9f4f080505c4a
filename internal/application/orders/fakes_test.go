package orders

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/config"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

// Fakes en memoria para los casos de uso de órdenes. El fakeTxRunner entrega
// siempre los mismos repos; si fn falla, restaura el snapshot previo para
// imitar el rollback de la transacción real.

type memStockRepo struct {
	stock map[string]int
}

func newMemStockRepo() *memStockRepo { return &memStockRepo{stock: map[string]int{}} }

func stockKey(productID, warehouse string) string { return productID + "|" + warehouse }

func (m *memStockRepo) Get(_ context.Context, productID, warehouse string) (int, error) {
	return m.stock[stockKey(productID, warehouse)], nil
}

func (m *memStockRepo) GetForUpdate(ctx context.Context, productID, warehouse string) (int, error) {
	return m.Get(ctx, productID, warehouse)
}

func (m *memStockRepo) Upsert(_ context.Context, productID, warehouse string, cantidad int) error {
	m.stock[stockKey(productID, warehouse)] = cantidad
	return nil
}

func (m *memStockRepo) GetByProduct(_ context.Context, productID string) (map[string]int, error) {
	out := map[string]int{}
	for k, v := range m.stock {
		if strings.HasPrefix(k, productID+"|") {
			out[strings.TrimPrefix(k, productID+"|")] = v
		}
	}
	return out, nil
}

type memProductRepo struct {
	productos map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{productos: map[string]*entity.Product{}}
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.productos[id], nil
}

func (m *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.productos {
		if f.SoloActivos && !p.Activo {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	m.productos[p.ID] = p
	return nil
}

func (m *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	m.productos[p.ID] = p
	return nil
}

func (m *memProductRepo) SetActivo(_ context.Context, id string, activo bool) error {
	if p, ok := m.productos[id]; ok {
		p.Activo = activo
	}
	return nil
}

func (m *memProductRepo) MaxID(_ context.Context, _ string) (string, error) {
	max := ""
	for id := range m.productos {
		if id > max {
			max = id
		}
	}
	return max, nil
}

type memOrderRepo struct {
	ordenes map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{ordenes: map[string]*entity.Order{}} }

func (m *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	m.ordenes[o.ID] = &cp
	return nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := m.ordenes[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return m.GetByID(ctx, id)
}

func (m *memOrderRepo) Update(_ context.Context, o *entity.Order) error {
	cp := *o
	m.ordenes[o.ID] = &cp
	return nil
}

func (m *memOrderRepo) UpdateEstado(_ context.Context, id, estado string) (bool, error) {
	o, ok := m.ordenes[id]
	if !ok {
		return false, nil
	}
	o.Estado = estado
	return true, nil
}

func (m *memOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range m.ordenes {
		if f.DistribuidorID != "" && o.DistribuidorID != f.DistribuidorID {
			continue
		}
		if f.Kind != "" && o.Kind != f.Kind {
			continue
		}
		if f.Estado != "" && o.Estado != f.Estado {
			continue
		}
		if len(f.TipoPrecioIn) > 0 {
			ok := false
			for _, tp := range f.TipoPrecioIn {
				if o.TipoPrecio == tp {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memUserRepo struct {
	usuarios map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{usuarios: map[string]*entity.User{}} }

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.usuarios[id], nil
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.usuarios[u.ID] = u
	return nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	m.usuarios[u.ID] = u
	return nil
}

func (m *memUserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.usuarios {
		if f.Rol != "" && u.Rol != f.Rol {
			continue
		}
		if f.AdminID != "" && u.AdminID != f.AdminID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) TouchUltimoAcceso(_ context.Context, id string, t time.Time) error {
	if u, ok := m.usuarios[id]; ok {
		u.FechaUltimoAcceso = t
	}
	return nil
}

type fakeTxRunner struct {
	orderRepo   *memOrderRepo
	stockRepo   *memStockRepo
	productRepo *memProductRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	// snapshot para simular rollback
	stockAntes := make(map[string]int, len(f.stockRepo.stock))
	for k, v := range f.stockRepo.stock {
		stockAntes[k] = v
	}
	ordenesAntes := make(map[string]*entity.Order, len(f.orderRepo.ordenes))
	for k, v := range f.orderRepo.ordenes {
		cp := *v
		ordenesAntes[k] = &cp
	}

	if err := fn(f.orderRepo, f.stockRepo, f.productRepo); err != nil {
		f.stockRepo.stock = stockAntes
		f.orderRepo.ordenes = ordenesAntes
		return err
	}
	return nil
}

type fakeNotifier struct {
	created   []string
	processed []string
	emails    []string
	fail      bool
}

func (f *fakeNotifier) OrderCreated(_ context.Context, o *entity.Order, email string) error {
	if f.fail {
		return errNotify
	}
	f.created = append(f.created, o.ID)
	f.emails = append(f.emails, email)
	return nil
}

func (f *fakeNotifier) OrderProcessed(_ context.Context, o *entity.Order, email string) error {
	if f.fail {
		return errNotify
	}
	f.processed = append(f.processed, o.ID)
	f.emails = append(f.emails, email)
	return nil
}

var errNotify = &notifyError{}

type notifyError struct{}

func (*notifyError) Error() string { return "smtp caído" }

// harness arma un Service con fakes y datos base.
type harness struct {
	svc      *Service
	orders   *memOrderRepo
	stock    *memStockRepo
	products *memProductRepo
	users    *memUserRepo
	notifier *fakeNotifier
	ahora    time.Time
}

func newHarness() *harness {
	h := &harness{
		orders:   newMemOrderRepo(),
		stock:    newMemStockRepo(),
		products: newMemProductRepo(),
		users:    newMemUserRepo(),
		notifier: &fakeNotifier{},
		ahora:    time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
	}
	tx := &fakeTxRunner{orderRepo: h.orders, stockRepo: h.stock, productRepo: h.products}
	wcfg := config.WarehouseConfig{
		Domestic:      "medellin",
		Export:        "guarne",
		DomesticEmail: "cdimedellin@rizosfelices.co",
		ExportEmail:   "produccion@rizosfelices.co",
	}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	h.svc = NewService(tx, h.orders, h.users, h.notifier, wcfg, log)
	h.svc.now = func() time.Time { return h.ahora }
	return h
}

func (h *harness) conProducto(id, nombre string, stockPorBodega map[string]int) *entity.Product {
	p := &entity.Product{
		ID:     id,
		Nombre: nombre,
		Activo: true,
		Precios: entity.Precios{
			SinIVAColombia: decimal.NewFromInt(1000),
			ConIVAColombia: decimal.NewFromInt(1000),
			Internacional:  decimal.NewFromInt(500),
		},
	}
	h.products.productos[id] = p
	for bodega, cantidad := range stockPorBodega {
		h.stock.stock[stockKey(id, bodega)] = cantidad
	}
	return p
}

func (h *harness) conUsuario(u *entity.User) *entity.User {
	h.users.usuarios[u.ID] = u
	return u
}

func distribuidorNacional() *entity.User {
	return &entity.User{
		ID:         "d1",
		Nombre:     "Distribuciones Andinas",
		Email:      "andinas@example.com",
		Phone:      "3001234567",
		Rol:        entity.RoleDistribuidorNacional,
		TipoPrecio: entity.PrecioConIVA,
	}
}

func distribuidorInternacional() *entity.User {
	return &entity.User{
		ID:         "d2",
		Nombre:     "Export LLC",
		Email:      "export@example.com",
		Rol:        entity.RoleDistribuidorInternacional,
		TipoPrecio: entity.PrecioSinIVAInternacional,
	}
}

func bodegaMedellin() *entity.User {
	return &entity.User{
		ID:    "b1",
		Email: "bodega.medellin@rizosfelices.co",
		Rol:   entity.RoleBodega,
		CDI:   "medellin",
	}
}

func bodegaGuarne() *entity.User {
	return &entity.User{
		ID:    "b2",
		Email: "bodega.guarne@rizosfelices.co",
		Rol:   entity.RoleBodega,
		CDI:   "guarne",
	}
}
