package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIngresoFixture() (IngresoService, *model.Product, *stubIngresoRepo) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	productRepo := newStubProductRepo(product)
	repo := newStubIngresoRepo()
	svc := NewIngresoService(repo, productRepo, nil, nil)
	return svc, product, repo
}

// Las cuatro combinaciones de entrada (kg|java × costo/kg|costo/java) deben
// resolver a la misma tripleta canónica: 100 kg = 5 javas a S/40 la java.
func TestCrearLoteModosDeEntrada(t *testing.T) {
	cases := []struct {
		name         string
		quantity     float64
		quantityUnit string
		cost         float64
		costUnit     string
	}{
		{"kg y costo por kg", 100, "KG", 2, "KG"},
		{"kg y costo por java", 100, "KG", 40, "JAVA"},
		{"javas y costo por kg", 5, "JAVA", 2, "KG"},
		{"javas y costo por java", 5, "JAVA", 40, "JAVA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, product, _ := newIngresoFixture()

			resp, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
				TruckID: "ABC-123",
				Items: []dto.IngresoItemRequest{{
					SupplierName: "Proveedor Uno",
					ProductID:    product.ID.String(),
					Quantity:     tc.quantity,
					QuantityUnit: tc.quantityUnit,
					CostInput:    tc.cost,
					CostUnit:     tc.costUnit,
				}},
			})
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)

			item := resp.Items[0]
			assert.Equal(t, 100.0, item.TotalKg)
			assert.Equal(t, 5.0, item.TotalJavas)
			assert.Equal(t, 40.0, item.CostPerJava)
			assert.Equal(t, 200.0, item.TotalCost)
			assert.Equal(t, 20.0, item.ConversionFactor)
		})
	}
}

func TestCrearLoteTotalesDelLote(t *testing.T) {
	svc, product, _ := newIngresoFixture()

	// Dos filas del mismo camión: 100 kg a S/40 la java y 40 kg a S/30.
	resp, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
		TruckID: "ABC-123",
		Items: []dto.IngresoItemRequest{
			{
				SupplierName: "Proveedor Uno",
				ProductID:    product.ID.String(),
				Quantity:     100,
				QuantityUnit: "KG",
				CostInput:    40,
				CostUnit:     "JAVA",
			},
			{
				SupplierName: "Proveedor Dos",
				ProductID:    product.ID.String(),
				Quantity:     40,
				QuantityUnit: "KG",
				CostInput:    30,
				CostUnit:     "JAVA",
			},
		},
	})
	require.NoError(t, err)

	// 100 kg = 5 javas (S/200) + 40 kg = 2 javas (S/60)
	assert.Equal(t, 140.0, resp.TotalKg)
	assert.Equal(t, 7.0, resp.TotalJavas)
	assert.Equal(t, 260.0, resp.TotalCost)
}

func TestCrearLoteNormalizaPlaca(t *testing.T) {
	svc, product, repo := newIngresoFixture()

	resp, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
		TruckID: "  abc-123  ",
		Items: []dto.IngresoItemRequest{{
			SupplierName: "Proveedor Uno",
			ProductID:    product.ID.String(),
			Quantity:     100,
			QuantityUnit: "KG",
			CostInput:    2,
			CostUnit:     "KG",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", resp.TruckID)
	require.Len(t, repo.lotes, 1)
}

func TestCrearLotePlacaMuyCorta(t *testing.T) {
	svc, product, _ := newIngresoFixture()

	_, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
		TruckID: " AB ",
		Items: []dto.IngresoItemRequest{{
			SupplierName: "Proveedor Uno",
			ProductID:    product.ID.String(),
			Quantity:     100,
			QuantityUnit: "KG",
			CostInput:    2,
			CostUnit:     "KG",
		}},
	})

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestCrearLoteFactorPorFila(t *testing.T) {
	svc, product, _ := newIngresoFixture()
	override := 25.0

	resp, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
		TruckID: "ABC-123",
		Items: []dto.IngresoItemRequest{{
			SupplierName:     "Proveedor Uno",
			ProductID:        product.ID.String(),
			Quantity:         100,
			QuantityUnit:     "KG",
			CostInput:        2,
			CostUnit:         "KG",
			ConversionFactor: &override,
		}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	// 100 kg a 25 kg/java = 4 javas; costo/java = 2 × 25 = 50
	assert.Equal(t, 25.0, resp.Items[0].ConversionFactor)
	assert.Equal(t, 4.0, resp.Items[0].TotalJavas)
	assert.Equal(t, 50.0, resp.Items[0].CostPerJava)
	assert.Equal(t, 200.0, resp.Items[0].TotalCost)
}

func TestCrearLoteFactorInvalido(t *testing.T) {
	svc, product, _ := newIngresoFixture()
	override := -5.0

	_, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
		TruckID: "ABC-123",
		Items: []dto.IngresoItemRequest{{
			SupplierName:     "Proveedor Uno",
			ProductID:        product.ID.String(),
			Quantity:         100,
			QuantityUnit:     "KG",
			CostInput:        2,
			CostUnit:         "KG",
			ConversionFactor: &override,
		}},
	})

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestCrearLoteProductoInexistente(t *testing.T) {
	svc, _, _ := newIngresoFixture()

	_, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
		TruckID: "ABC-123",
		Items: []dto.IngresoItemRequest{{
			SupplierName: "Proveedor Uno",
			ProductID:    uuid.NewString(),
			Quantity:     100,
			QuantityUnit: "KG",
			CostInput:    2,
			CostUnit:     "KG",
		}},
	})

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestEliminarLote(t *testing.T) {
	svc, product, repo := newIngresoFixture()

	resp, err := svc.CrearLote(context.Background(), dto.CrearIngresoLoteRequest{
		TruckID: "ABC-123",
		Items: []dto.IngresoItemRequest{{
			SupplierName: "Proveedor Uno",
			ProductID:    product.ID.String(),
			Quantity:     100,
			QuantityUnit: "KG",
			CostInput:    2,
			CostUnit:     "KG",
		}},
	})
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, svc.Eliminar(context.Background(), id))
	assert.Empty(t, repo.lotes)

	err = svc.Eliminar(context.Background(), id)
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}
