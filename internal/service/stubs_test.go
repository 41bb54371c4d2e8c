package service

import (
	"context"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// transaction body directly, without a database.

type stubProductRepo struct {
	repository.ProductRepository
	products   map[uuid.UUID]*model.Product
	types      map[uuid.UUID]*model.ProductType
	qualities  map[uuid.UUID]*model.ProductQuality
	usageCount int64
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	m := make(map[uuid.UUID]*model.Product, len(products))
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		m[p.ID] = p
	}
	return &stubProductRepo{
		products:  m,
		types:     make(map[uuid.UUID]*model.ProductType),
		qualities: make(map[uuid.UUID]*model.ProductQuality),
	}
}

func (s *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = p
	return nil
}

func (s *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *stubProductRepo) UsageCount(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.usageCount, nil
}

func (s *stubProductRepo) CreateType(_ context.Context, t *model.ProductType) error {
	for _, existing := range s.types {
		if existing.Name == t.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.types[t.ID] = t
	return nil
}

func (s *stubProductRepo) ListTypes(_ context.Context) ([]model.ProductType, error) {
	out := make([]model.ProductType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubProductRepo) DeleteType(_ context.Context, id uuid.UUID) error {
	delete(s.types, id)
	return nil
}

func (s *stubProductRepo) FindTypeByID(_ context.Context, id uuid.UUID) (*model.ProductType, error) {
	t, ok := s.types[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (s *stubProductRepo) CountProductsByType(_ context.Context, name string) (int64, error) {
	var n int64
	for _, p := range s.products {
		if p.Type == name {
			n++
		}
	}
	return n, nil
}

func (s *stubProductRepo) CreateQuality(_ context.Context, q *model.ProductQuality) error {
	for _, existing := range s.qualities {
		if existing.Name == q.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	s.qualities[q.ID] = q
	return nil
}

func (s *stubProductRepo) ListQualities(_ context.Context) ([]model.ProductQuality, error) {
	out := make([]model.ProductQuality, 0, len(s.qualities))
	for _, q := range s.qualities {
		out = append(out, *q)
	}
	return out, nil
}

func (s *stubProductRepo) DeleteQuality(_ context.Context, id uuid.UUID) error {
	delete(s.qualities, id)
	return nil
}

func (s *stubProductRepo) FindQualityByID(_ context.Context, id uuid.UUID) (*model.ProductQuality, error) {
	q, ok := s.qualities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (s *stubProductRepo) CountProductsByQuality(_ context.Context, name string) (int64, error) {
	var n int64
	for _, p := range s.products {
		if p.Quality == name {
			n++
		}
	}
	return n, nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *stubProductRepo) FindByNombre(_ context.Context, name string) (*model.Product, error) {
	for _, p := range s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) List(_ context.Context, _ string) ([]model.Product, error) {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

type stubIngresoRepo struct {
	repository.IngresoRepository
	aggs  []repository.IngresoAgg
	lotes map[uuid.UUID]*model.IngresoLote
}

func newStubIngresoRepo(aggs ...repository.IngresoAgg) *stubIngresoRepo {
	return &stubIngresoRepo{aggs: aggs, lotes: make(map[uuid.UUID]*model.IngresoLote)}
}

func (s *stubIngresoRepo) DB() *gorm.DB { return nil }

func (s *stubIngresoRepo) CreateLote(_ context.Context, _ *gorm.DB, lote *model.IngresoLote) error {
	if lote.ID == uuid.Nil {
		lote.ID = uuid.New()
	}
	s.lotes[lote.ID] = lote
	return nil
}

func (s *stubIngresoRepo) FindLoteByID(_ context.Context, id uuid.UUID) (*model.IngresoLote, error) {
	lote, ok := s.lotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lote, nil
}

func (s *stubIngresoRepo) DeleteLote(_ context.Context, id uuid.UUID) error {
	delete(s.lotes, id)
	return nil
}

func (s *stubIngresoRepo) SumPorProducto(_ context.Context) ([]repository.IngresoAgg, error) {
	return s.aggs, nil
}

func (s *stubIngresoRepo) SumPorProductoEntre(_ context.Context, _, _ time.Time) ([]repository.IngresoAgg, error) {
	return s.aggs, nil
}

type stubVentaRepo struct {
	repository.VentaRepository
	aggs      []repository.VentaAgg
	tipoAggs  []repository.TipoAgg
	ventas    map[uuid.UUID]*model.Venta
	printed   map[uuid.UUID]bool
	deletedID uuid.UUID
}

func newStubVentaRepo(ventas ...*model.Venta) *stubVentaRepo {
	m := make(map[uuid.UUID]*model.Venta, len(ventas))
	for _, v := range ventas {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		m[v.ID] = v
	}
	return &stubVentaRepo{ventas: m, printed: make(map[uuid.UUID]bool)}
}

func (s *stubVentaRepo) DB() *gorm.DB { return nil }

func (s *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.ventas[v.ID] = v
	return nil
}

func (s *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := s.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (s *stubVentaRepo) UpdateIsPrinted(_ context.Context, id uuid.UUID, printed bool) error {
	s.printed[id] = printed
	return nil
}

func (s *stubVentaRepo) SaveTx(_ *gorm.DB, v *model.Venta) error {
	s.ventas[v.ID] = v
	return nil
}

func (s *stubVentaRepo) DeleteItemsTx(_ *gorm.DB, _ uuid.UUID) error { return nil }

func (s *stubVentaRepo) CreateItemsTx(_ *gorm.DB, items []model.VentaItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return nil
}

func (s *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	s.deletedID = id
	delete(s.ventas, id)
	return nil
}

func (s *stubVentaRepo) SumPorProducto(_ context.Context) ([]repository.VentaAgg, error) {
	return s.aggs, nil
}

func (s *stubVentaRepo) SumPorProductoEntre(_ context.Context, _, _ time.Time) ([]repository.VentaAgg, error) {
	return s.aggs, nil
}

func (s *stubVentaRepo) ResumenPorTipo(_ context.Context, _, _ time.Time) ([]repository.TipoAgg, error) {
	return s.tipoAggs, nil
}

type stubClientRepo struct {
	repository.ClientRepository
	clients    map[uuid.UUID]*model.Client
	debts      map[uuid.UUID]decimal.Decimal // values written via SetDebtTx
	payments   []model.ClientPayment
	ventaCount int64
	deudaTotal decimal.Decimal
}

func newStubClientRepo(clients ...*model.Client) *stubClientRepo {
	m := make(map[uuid.UUID]*model.Client, len(clients))
	for _, c := range clients {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		m[c.ID] = c
	}
	return &stubClientRepo{clients: m, debts: make(map[uuid.UUID]decimal.Decimal)}
}

func (s *stubClientRepo) DB() *gorm.DB { return nil }

func (s *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *stubClientRepo) FindByName(_ context.Context, name string) (*model.Client, error) {
	for _, c := range s.clients {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubClientRepo) SetDebtTx(_ *gorm.DB, id uuid.UUID, debt decimal.Decimal) error {
	s.debts[id] = debt
	if c, ok := s.clients[id]; ok {
		c.CurrentDebt = debt
	}
	return nil
}

func (s *stubClientRepo) CreatePaymentTx(_ *gorm.DB, p *model.ClientPayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.payments = append(s.payments, *p)
	return nil
}

func (s *stubClientRepo) ListPayments(_ context.Context, clientID uuid.UUID) ([]model.ClientPayment, error) {
	var out []model.ClientPayment
	for _, p := range s.payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.clients, id)
	return nil
}

func (s *stubClientRepo) CountVentas(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.ventaCount, nil
}

func (s *stubClientRepo) SumDeudas(_ context.Context) (decimal.Decimal, error) {
	return s.deudaTotal, nil
}

type stubSnapshotRepo struct {
	repository.SnapshotRepository
	snaps []model.InventorySnapshot
}

func (s *stubSnapshotRepo) Create(_ context.Context, snap *model.InventorySnapshot) error {
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	s.snaps = append(s.snaps, *snap)
	return nil
}

func (s *stubSnapshotRepo) List(_ context.Context, limit int) ([]model.InventorySnapshot, error) {
	if limit > len(s.snaps) {
		limit = len(s.snaps)
	}
	return s.snaps[:limit], nil
}

type stubUserRepo struct {
	repository.UserRepository
	users        map[uuid.UUID]*model.User
	activeAdmins int64
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	m := make(map[uuid.UUID]*model.User, len(users))
	var admins int64
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		m[u.ID] = u
		if u.Rol == model.RolAdmin && u.Activo {
			admins++
		}
	}
	return &stubUserRepo{users: m, activeAdmins: admins}
}

func (s *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Update(_ context.Context, u *model.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := s.users[id]; ok {
		u.Activo = false
	}
	return nil
}

func (s *stubUserRepo) CountAdminsActivos(_ context.Context) (int64, error) {
	return s.activeAdmins, nil
}

// newTestStock builds a stock service over the given movement aggregates,
// without Redis.
func newTestStock(products *stubProductRepo, ingresos *stubIngresoRepo, ventas *stubVentaRepo) StockService {
	return NewStockService(ingresos, ventas, products, &stubSnapshotRepo{}, nil, nil)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
