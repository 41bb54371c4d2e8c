package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"
	"github.com/BryanFuM/saas-gyh-sub000/internal/timeutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	stockCacheKey = "cache:stock:detalle"
	stockCacheTTL = 30 * time.Second
)

// ProductStock is the computed stock picture for one product. Quantities are
// the lifetime sums of ingresos minus ventas, floored at zero per unit.
type ProductStock struct {
	ProductID         uuid.UUID
	ProductName       string
	IngresoKg         float64
	IngresoJavas      float64
	IngresoCost       float64
	VendidoKg         float64
	VendidoJavas      float64
	DisponibleKg      float64
	DisponibleJavas   float64
	CostoPromedioJava float64
}

type StockService interface {
	Detalle(ctx context.Context) ([]dto.StockDetalleResponse, error)
	Disponible(ctx context.Context) ([]dto.StockResponse, error)
	// ComputeAll returns the raw per-product stock map for other services.
	ComputeAll(ctx context.Context) (map[uuid.UUID]ProductStock, error)
	InvalidateCache(ctx context.Context)

	CrearSnapshot(ctx context.Context, req dto.CrearSnapshotRequest) (*dto.SnapshotResponse, error)
	ListarSnapshots(ctx context.Context, limit int) ([]dto.SnapshotResponse, error)
}

type stockService struct {
	ingresoRepo  repository.IngresoRepository
	ventaRepo    repository.VentaRepository
	productRepo  repository.ProductRepository
	snapshotRepo repository.SnapshotRepository
	rdb          *redis.Client
	clock        *timeutil.Clock
}

func NewStockService(
	ingresoRepo repository.IngresoRepository,
	ventaRepo repository.VentaRepository,
	productRepo repository.ProductRepository,
	snapshotRepo repository.SnapshotRepository,
	rdb *redis.Client,
	clock *timeutil.Clock,
) StockService {
	return &stockService{
		ingresoRepo:  ingresoRepo,
		ventaRepo:    ventaRepo,
		productRepo:  productRepo,
		snapshotRepo: snapshotRepo,
		rdb:          rdb,
		clock:        clock,
	}
}

// ComputeAll derives stock for every product that has at least one movement:
// disponible = suma de ingresos - suma de ventas, floored at zero in each
// unit independently so over-sold rounding residue never shows as negative.
func (s *stockService) ComputeAll(ctx context.Context) (map[uuid.UUID]ProductStock, error) {
	ingresos, err := s.ingresoRepo.SumPorProducto(ctx)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.SumPorProducto(ctx)
	if err != nil {
		return nil, err
	}

	stocks := make(map[uuid.UUID]ProductStock, len(ingresos))
	for _, agg := range ingresos {
		ps := ProductStock{
			ProductID:    agg.ProductID,
			IngresoKg:    agg.TotalKg,
			IngresoJavas: agg.TotalJavas,
			IngresoCost:  agg.TotalCost,
		}
		if agg.TotalJavas > 0 {
			ps.CostoPromedioJava = agg.TotalCost / agg.TotalJavas
		}
		stocks[agg.ProductID] = ps
	}
	for _, agg := range ventas {
		ps := stocks[agg.ProductID]
		ps.ProductID = agg.ProductID
		ps.VendidoKg = agg.TotalKg
		ps.VendidoJavas = agg.TotalJavas
		stocks[agg.ProductID] = ps
	}
	for id, ps := range stocks {
		ps.DisponibleKg = math.Max(0, ps.IngresoKg-ps.VendidoKg)
		ps.DisponibleJavas = math.Max(0, ps.IngresoJavas-ps.VendidoJavas)
		stocks[id] = ps
	}

	// Resolve names in one pass.
	products, err := s.productRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if ps, ok := stocks[p.ID]; ok {
			ps.ProductName = p.Name
			stocks[p.ID] = ps
		}
	}
	return stocks, nil
}

func (s *stockService) Detalle(ctx context.Context) ([]dto.StockDetalleResponse, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	stocks, err := s.ComputeAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockDetalleResponse, 0, len(stocks))
	for _, ps := range stocks {
		resp = append(resp, dto.StockDetalleResponse{
			ProductID:            ps.ProductID.String(),
			ProductName:          ps.ProductName,
			TotalIngresoKg:       round2(ps.IngresoKg),
			TotalIngresoJavas:    round2(ps.IngresoJavas),
			TotalVendidoKg:       round2(ps.VendidoKg),
			TotalVendidoJavas:    round2(ps.VendidoJavas),
			StockDisponibleKg:    round2(ps.DisponibleKg),
			StockDisponibleJavas: round2(ps.DisponibleJavas),
			CostoPromedioJava:    round2(ps.CostoPromedioJava),
		})
	}
	sortStockDetalle(resp)
	s.writeCache(ctx, resp)
	return resp, nil
}

func (s *stockService) Disponible(ctx context.Context) ([]dto.StockResponse, error) {
	detalle, err := s.Detalle(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockResponse, 0, len(detalle))
	for _, d := range detalle {
		resp = append(resp, dto.StockResponse{
			ProductID:           d.ProductID,
			ProductName:         d.ProductName,
			TotalJavasAvailable: d.StockDisponibleJavas,
		})
	}
	return resp, nil
}

func (s *stockService) InvalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, stockCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar cache de stock")
	}
}

func (s *stockService) readCache(ctx context.Context) []dto.StockDetalleResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, stockCacheKey).Result()
	if err != nil {
		return nil
	}
	var resp []dto.StockDetalleResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return resp
}

func (s *stockService) writeCache(ctx context.Context, resp []dto.StockDetalleResponse) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, stockCacheKey, data, stockCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo escribir cache de stock")
	}
}

// ── Snapshots de inventario ─────────────────────────────────────────────────

func (s *stockService) CrearSnapshot(ctx context.Context, req dto.CrearSnapshotRequest) (*dto.SnapshotResponse, error) {
	snap := &model.InventorySnapshot{
		Date:                s.now(),
		PhysicalCount:       req.PhysicalCount,
		SystemExpectedCount: req.SystemExpectedCount,
		Difference:          round2(req.PhysicalCount - req.SystemExpectedCount),
	}
	if err := s.snapshotRepo.Create(ctx, snap); err != nil {
		return nil, err
	}
	resp := snapshotToResponse(snap)
	return &resp, nil
}

func (s *stockService) ListarSnapshots(ctx context.Context, limit int) ([]dto.SnapshotResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	snaps, err := s.snapshotRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SnapshotResponse, len(snaps))
	for i := range snaps {
		resp[i] = snapshotToResponse(&snaps[i])
	}
	return resp, nil
}

func (s *stockService) now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return time.Now()
}

func snapshotToResponse(snap *model.InventorySnapshot) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		ID:                  snap.ID.String(),
		Date:                snap.Date.Format("2006-01-02"),
		PhysicalCount:       snap.PhysicalCount,
		SystemExpectedCount: snap.SystemExpectedCount,
		Difference:          snap.Difference,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortStockDetalle(items []dto.StockDetalleResponse) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductName < items[j].ProductName
	})
}
