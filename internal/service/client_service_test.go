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

func TestRegistrarPagoReduceDeuda(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "María", CurrentDebt: dec("150.00")}
	repo := newStubClientRepo(client)
	svc := NewClientService(repo, nil)

	resp, err := svc.RegistrarPago(context.Background(), client.ID, dto.RegistrarPagoRequest{
		Amount: dec("50.00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.DeudaNueva.Equal(dec("100.00")))
	assert.True(t, repo.debts[client.ID].Equal(dec("100.00")))
	require.Len(t, repo.payments, 1)
	assert.True(t, repo.payments[0].Amount.Equal(dec("50.00")))
}

func TestRegistrarPagoSobrepagoQuedaEnCero(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "María", CurrentDebt: dec("30.00")}
	repo := newStubClientRepo(client)
	svc := NewClientService(repo, nil)

	resp, err := svc.RegistrarPago(context.Background(), client.ID, dto.RegistrarPagoRequest{
		Amount: dec("100.00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.DeudaNueva.IsZero())
}

func TestRegistrarPagoMontoInvalido(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "María", CurrentDebt: dec("30.00")}
	repo := newStubClientRepo(client)
	svc := NewClientService(repo, nil)

	for _, monto := range []string{"0", "-10"} {
		_, err := svc.RegistrarPago(context.Background(), client.ID, dto.RegistrarPagoRequest{
			Amount: dec(monto),
		})
		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	}
	assert.Empty(t, repo.payments)
}

func TestEliminarClienteConDeuda(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "María", CurrentDebt: dec("10.00")}
	svc := NewClientService(newStubClientRepo(client), nil)

	err := svc.Eliminar(context.Background(), client.ID)
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BUSINESS_RULE_ERROR", apiErr.Code)
}

func TestEliminarClienteConVentas(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "María"}
	repo := newStubClientRepo(client)
	repo.ventaCount = 3
	svc := NewClientService(repo, nil)

	err := svc.Eliminar(context.Background(), client.ID)
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BUSINESS_RULE_ERROR", apiErr.Code)
}

func TestEliminarClienteSinMovimientos(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "María"}
	repo := newStubClientRepo(client)
	svc := NewClientService(repo, nil)

	require.NoError(t, svc.Eliminar(context.Background(), client.ID))
	assert.Empty(t, repo.clients)
}

func TestCrearClienteDuplicado(t *testing.T) {
	existing := &model.Client{ID: uuid.New(), Name: "María"}
	svc := NewClientService(newStubClientRepo(existing), nil)

	_, err := svc.Crear(context.Background(), dto.CrearClienteRequest{Name: "María"})
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "DUPLICATE_ERROR", apiErr.Code)
}
