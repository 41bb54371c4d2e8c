package service

import (
	"context"
	"sort"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"
	"github.com/BryanFuM/saas-gyh-sub000/internal/timeutil"

	"github.com/shopspring/decimal"
)

type ReporteService interface {
	Ganancias(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteGananciasResponse, error)
	ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiarioResponse, error)
}

type reporteService struct {
	ventaRepo   repository.VentaRepository
	ingresoRepo repository.IngresoRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	clock       *timeutil.Clock
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	ingresoRepo repository.IngresoRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	clock *timeutil.Clock,
) ReporteService {
	return &reporteService{
		ventaRepo:   ventaRepo,
		ingresoRepo: ingresoRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		clock:       clock,
	}
}

// Ganancias values the javas sold in the period at each product's weighted
// average intake cost (lifetime sum of costs over lifetime sum of javas), so
// a lote's price swing moves the average instead of distorting one day.
func (s *reporteService) Ganancias(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteGananciasResponse, error) {
	desde, hasta, err := s.rango(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	ventas, err := s.ventaRepo.SumPorProductoEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	ingresos, err := s.ingresoRepo.SumPorProducto(ctx)
	if err != nil {
		return nil, err
	}
	avgCost := make(map[string]float64, len(ingresos))
	for _, agg := range ingresos {
		if agg.TotalJavas > 0 {
			avgCost[agg.ProductID.String()] = agg.TotalCost / agg.TotalJavas
		}
	}

	products, err := s.productRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID.String()] = p.Name
	}

	resp := &dto.ReporteGananciasResponse{
		StartDate:    desde.Format("2006-01-02"),
		EndDate:      hasta.AddDate(0, 0, -1).Format("2006-01-02"),
		Items:        make([]dto.GananciaProductoResponse, 0, len(ventas)),
		TotalProfit:  decimal.Zero,
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
	}

	for _, agg := range ventas {
		pid := agg.ProductID.String()
		costoJava := avgCost[pid]
		cost := decimal.NewFromFloat(costoJava * agg.TotalJavas).Round(2)
		profit := agg.Revenue.Sub(cost)

		margin := decimal.Zero
		if agg.Revenue.IsPositive() {
			margin = profit.Div(agg.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
		}

		resp.Items = append(resp.Items, dto.GananciaProductoResponse{
			ProductID:         pid,
			ProductName:       names[pid],
			VendidoKg:         round2(agg.TotalKg),
			VendidoJavas:      round2(agg.TotalJavas),
			Revenue:           agg.Revenue,
			CostoPromedioJava: round2(costoJava),
			Cost:              cost,
			Profit:            profit,
			MarginPct:         margin,
		})
		resp.TotalRevenue = resp.TotalRevenue.Add(agg.Revenue)
		resp.TotalCost = resp.TotalCost.Add(cost)
		resp.TotalProfit = resp.TotalProfit.Add(profit)
	}

	sort.Slice(resp.Items, func(i, j int) bool {
		return resp.Items[i].ProductName < resp.Items[j].ProductName
	})
	return resp, nil
}

func (s *reporteService) ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiarioResponse, error) {
	desde, hasta, err := s.rango(fecha, fecha)
	if err != nil {
		return nil, err
	}

	aggs, err := s.ventaRepo.ResumenPorTipo(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resp := &dto.ResumenDiarioResponse{
		Fecha:        desde.Format("2006-01-02"),
		TotalCaja:    decimal.Zero,
		TotalPedido:  decimal.Zero,
		TotalGeneral: decimal.Zero,
	}
	for _, agg := range aggs {
		resp.NumVentas += agg.Count
		switch agg.Type {
		case model.VentaCaja:
			resp.TotalCaja = agg.Total
		case model.VentaPedido:
			resp.TotalPedido = agg.Total
		}
		resp.TotalGeneral = resp.TotalGeneral.Add(agg.Total)
	}

	deuda, err := s.clientRepo.SumDeudas(ctx)
	if err != nil {
		return nil, err
	}
	resp.DeudaPendiente = deuda
	return resp, nil
}

// rango resolves [start, end) day bounds in the business timezone.
// Empty dates default to today.
func (s *reporteService) rango(start, end string) (time.Time, time.Time, error) {
	now := time.Now()
	loc := now.Location()
	if s.clock != nil {
		now = s.clock.Now()
		loc = now.Location()
	}

	desde := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if start != "" {
		t, err := time.ParseInLocation("2006-01-02", start, loc)
		if err != nil {
			return time.Time{}, time.Time{}, apierror.FieldError("start_date inválida, formato YYYY-MM-DD", "start_date")
		}
		desde = t
	}
	hasta := desde.AddDate(0, 0, 1)
	if end != "" {
		t, err := time.ParseInLocation("2006-01-02", end, loc)
		if err != nil {
			return time.Time{}, time.Time{}, apierror.FieldError("end_date inválida, formato YYYY-MM-DD", "end_date")
		}
		hasta = t.AddDate(0, 0, 1)
	}
	if !hasta.After(desde) {
		return time.Time{}, time.Time{}, apierror.New("El rango de fechas es inválido")
	}
	return desde, hasta, nil
}
