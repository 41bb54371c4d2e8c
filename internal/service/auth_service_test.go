package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/config"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "secreto-de-prueba",
		JWTExpirationMinutes: 30,
		JWTRefreshDays:       7,
	}
}

func newTestUser(username, password, rol string, activo bool) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       activo,
	}
}

func TestLogin(t *testing.T) {
	user := newTestUser("beto", "clave123", model.RolAdmin, true)
	svc := NewAuthService(newStubUserRepo(user), testAuthConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "beto", Password: "clave123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 30*60, resp.ExpiresIn)
	assert.Equal(t, "beto", resp.User.Username)
	assert.Equal(t, model.RolAdmin, resp.User.Rol)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	user := newTestUser("beto", "clave123", model.RolAdmin, true)
	svc := NewAuthService(newStubUserRepo(user), testAuthConfig())
	ctx := context.Background()

	cases := []dto.LoginRequest{
		{Username: "beto", Password: "otra-clave"},
		{Username: "no-existe", Password: "clave123"},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr), "login %q", req.Username)
		assert.Equal(t, "AUTHENTICATION_ERROR", apiErr.Code)
	}
}

func TestLoginUsuarioInactivo(t *testing.T) {
	user := newTestUser("beto", "clave123", model.RolVendedor, false)
	svc := NewAuthService(newStubUserRepo(user), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "beto", Password: "clave123"})
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "AUTHENTICATION_ERROR", apiErr.Code)
}

func TestRefresh(t *testing.T) {
	user := newTestUser("beto", "clave123", model.RolAdmin, true)
	svc := NewAuthService(newStubUserRepo(user), testAuthConfig())
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "beto", Password: "clave123"})
	require.NoError(t, err)

	resp, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "beto", resp.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "AUTHENTICATION_ERROR", apiErr.Code)
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	user := newTestUser("beto", "clave123", model.RolAdmin, true)
	svc := NewAuthService(newStubUserRepo(user), testAuthConfig())

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "beto", Password: "otra-clave", Rol: model.RolVendedor,
	})
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "DUPLICATE_ERROR", apiErr.Code)
}

func TestActualizarUsuarioUltimoAdmin(t *testing.T) {
	admin := newTestUser("beto", "clave123", model.RolAdmin, true)
	svc := NewAuthService(newStubUserRepo(admin), testAuthConfig())

	_, err := svc.ActualizarUsuario(context.Background(), admin.ID, dto.ActualizarUsuarioRequest{
		Rol: model.RolVendedor,
	})
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BUSINESS_RULE_ERROR", apiErr.Code)
}

func TestActualizarUsuarioConOtroAdminActivo(t *testing.T) {
	admin := newTestUser("beto", "clave123", model.RolAdmin, true)
	otro := newTestUser("ana", "clave123", model.RolAdmin, true)
	svc := NewAuthService(newStubUserRepo(admin, otro), testAuthConfig())

	resp, err := svc.ActualizarUsuario(context.Background(), admin.ID, dto.ActualizarUsuarioRequest{
		Rol: model.RolVendedor,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolVendedor, resp.Rol)
}

func TestDesactivarUltimoAdmin(t *testing.T) {
	admin := newTestUser("beto", "clave123", model.RolAdmin, true)
	repo := newStubUserRepo(admin)
	svc := NewAuthService(repo, testAuthConfig())

	err := svc.DesactivarUsuario(context.Background(), admin.ID)
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BUSINESS_RULE_ERROR", apiErr.Code)
	assert.True(t, admin.Activo)
}

func TestDesactivarVendedor(t *testing.T) {
	admin := newTestUser("beto", "clave123", model.RolAdmin, true)
	vendedor := newTestUser("ana", "clave123", model.RolVendedor, true)
	repo := newStubUserRepo(admin, vendedor)
	svc := NewAuthService(repo, testAuthConfig())

	require.NoError(t, svc.DesactivarUsuario(context.Background(), vendedor.ID))
	assert.False(t, vendedor.Activo)
}
