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

func TestCrearProducto(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Name:             "Kion Primera",
		Type:             "Kion",
		Quality:          "Primera",
		ConversionFactor: 22,
	})
	require.NoError(t, err)

	assert.Equal(t, "Kion Primera", resp.Name)
	assert.Equal(t, 22.0, resp.ConversionFactor)
	assert.Len(t, repo.products, 1)
}

func TestCrearProductoNombreDuplicado(t *testing.T) {
	existing := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	svc := NewProductService(newStubProductRepo(existing))

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Name: "Kion Primera", Type: "Kion", Quality: "Primera", ConversionFactor: 20,
	})

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "DUPLICATE_ERROR", apiErr.Code)
}

func TestActualizarFactorSoloAfectaFuturo(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	repo := newStubProductRepo(product)
	svc := NewProductService(repo)
	nuevo := 25.0

	resp, err := svc.Actualizar(context.Background(), product.ID, dto.ActualizarProductoRequest{
		ConversionFactor: &nuevo,
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, resp.ConversionFactor)
	assert.Equal(t, 25.0, repo.products[product.ID].ConversionFactor)
}

func TestEliminarProductoConMovimientos(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	repo := newStubProductRepo(product)
	repo.usageCount = 7
	svc := NewProductService(repo)

	err := svc.Eliminar(context.Background(), product.ID)
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BUSINESS_RULE_ERROR", apiErr.Code)
	assert.Len(t, repo.products, 1)

	count, err := svc.UsageCount(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count.Count)
}

func TestEliminarProductoSinMovimientos(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", ConversionFactor: 20}
	repo := newStubProductRepo(product)
	svc := NewProductService(repo)

	require.NoError(t, svc.Eliminar(context.Background(), product.ID))
	assert.Empty(t, repo.products)
}

func TestEliminarTipoEnUso(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", Type: "Kion", ConversionFactor: 20}
	repo := newStubProductRepo(product)
	svc := NewProductService(repo)

	tipo, err := svc.CrearTipo(context.Background(), dto.CrearCatalogoRequest{Name: "Kion"})
	require.NoError(t, err)

	err = svc.EliminarTipo(context.Background(), uuid.MustParse(tipo.ID))
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BUSINESS_RULE_ERROR", apiErr.Code)
}

func TestUsageCountTipo(t *testing.T) {
	kion := &model.Product{ID: uuid.New(), Name: "Kion Primera", Type: "Kion", ConversionFactor: 20}
	papa := &model.Product{ID: uuid.New(), Name: "Papa Blanca", Type: "Papa", ConversionFactor: 50}
	repo := newStubProductRepo(kion, papa)
	svc := NewProductService(repo)

	tipo, err := svc.CrearTipo(context.Background(), dto.CrearCatalogoRequest{Name: "Kion"})
	require.NoError(t, err)

	resp, err := svc.UsageCountTipo(context.Background(), uuid.MustParse(tipo.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)

	_, err = svc.UsageCountTipo(context.Background(), uuid.New())
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestUsageCountCalidad(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Kion Primera", Quality: "Primera", ConversionFactor: 20}
	repo := newStubProductRepo(product)
	svc := NewProductService(repo)

	calidad, err := svc.CrearCalidad(context.Background(), dto.CrearCatalogoRequest{Name: "Primera"})
	require.NoError(t, err)

	resp, err := svc.UsageCountCalidad(context.Background(), uuid.MustParse(calidad.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
}

func TestEliminarCalidadSinUso(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo)

	calidad, err := svc.CrearCalidad(context.Background(), dto.CrearCatalogoRequest{Name: "Tercera"})
	require.NoError(t, err)

	require.NoError(t, svc.EliminarCalidad(context.Background(), uuid.MustParse(calidad.ID)))
	assert.Empty(t, repo.qualities)
}

func TestCrearTipoDuplicado(t *testing.T) {
	svc := NewProductService(newStubProductRepo())
	ctx := context.Background()

	_, err := svc.CrearTipo(ctx, dto.CrearCatalogoRequest{Name: "Kion"})
	require.NoError(t, err)

	_, err = svc.CrearTipo(ctx, dto.CrearCatalogoRequest{Name: "Kion"})
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "DUPLICATE_ERROR", apiErr.Code)
}
