package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReporteFixture(product *model.Product, ingresos *stubIngresoRepo, ventas *stubVentaRepo, clients *stubClientRepo) ReporteService {
	return NewReporteService(ventas, ingresos, clients, newStubProductRepo(product), nil)
}

func TestGananciasValoraAlCostoPromedio(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}

	// Histórico de ingresos: 10 javas a S/500 en total → S/50 la java.
	ingresos := newStubIngresoRepo(repository.IngresoAgg{
		ProductID: product.ID, TotalKg: 200, TotalJavas: 10, TotalCost: 500,
	})
	// En el período se vendieron 2.5 javas por S/300.
	ventas := newStubVentaRepo()
	ventas.aggs = []repository.VentaAgg{
		{ProductID: product.ID, TotalKg: 50, TotalJavas: 2.5, Revenue: dec("300.00")},
	}

	svc := newReporteFixture(product, ingresos, ventas, newStubClientRepo())
	resp, err := svc.Ganancias(context.Background(), dto.ReporteFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-28",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", resp.StartDate)
	assert.Equal(t, "2026-08-28", resp.EndDate)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, 50.0, item.VendidoKg)
	assert.Equal(t, 2.5, item.VendidoJavas)
	assert.Equal(t, 50.0, item.CostoPromedioJava)
	assert.True(t, item.Cost.Equal(dec("125.00")), "cost = %s", item.Cost)     // 50 × 2.5
	assert.True(t, item.Profit.Equal(dec("175.00")), "profit = %s", item.Profit)
	assert.True(t, item.MarginPct.Equal(dec("58.33")), "margin = %s", item.MarginPct)

	assert.True(t, resp.TotalRevenue.Equal(dec("300.00")))
	assert.True(t, resp.TotalCost.Equal(dec("125.00")))
	assert.True(t, resp.TotalProfit.Equal(dec("175.00")))
}

func TestGananciasProductoSinIngresos(t *testing.T) {
	// Un producto vendido sin lotes registrados cuesta cero: toda la venta
	// cuenta como ganancia en lugar de romper el reporte.
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	ventas := newStubVentaRepo()
	ventas.aggs = []repository.VentaAgg{
		{ProductID: product.ID, TotalKg: 20, TotalJavas: 1, Revenue: dec("80.00")},
	}

	svc := newReporteFixture(product, newStubIngresoRepo(), ventas, newStubClientRepo())
	resp, err := svc.Ganancias(context.Background(), dto.ReporteFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-28",
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Cost.IsZero())
	assert.True(t, resp.Items[0].Profit.Equal(dec("80.00")))
}

func TestGananciasRangoInvalido(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	svc := newReporteFixture(product, newStubIngresoRepo(), newStubVentaRepo(), newStubClientRepo())

	cases := []dto.ReporteFilter{
		{StartDate: "no-es-fecha"},
		{StartDate: "2026-08-28", EndDate: "2026-08-01"},
	}
	for _, filter := range cases {
		_, err := svc.Ganancias(context.Background(), filter)
		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr), "filter %+v", filter)
	}
}

func TestResumenDiario(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	ventas := newStubVentaRepo()
	ventas.tipoAggs = []repository.TipoAgg{
		{Type: model.VentaCaja, Count: 3, Total: dec("150.00")},
		{Type: model.VentaPedido, Count: 2, Total: dec("200.00")},
	}
	clients := newStubClientRepo()
	clients.deudaTotal = dec("320.00")

	svc := newReporteFixture(product, newStubIngresoRepo(), ventas, clients)
	resp, err := svc.ResumenDiario(context.Background(), "2026-08-28")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-28", resp.Fecha)
	assert.Equal(t, int64(5), resp.NumVentas)
	assert.True(t, resp.TotalCaja.Equal(dec("150.00")))
	assert.True(t, resp.TotalPedido.Equal(dec("200.00")))
	assert.True(t, resp.TotalGeneral.Equal(dec("350.00")))
	assert.True(t, resp.DeudaPendiente.Equal(dec("320.00")))
}
