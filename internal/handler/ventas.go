package handler

import (
	"net/http"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/middleware"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/service"
	"github.com/BryanFuM/saas-gyh-sub000/internal/timeutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct {
	svc   service.VentaService
	clock *timeutil.Clock
}

func NewVentasHandler(svc service.VentaService, clock *timeutil.Clock) *VentasHandler {
	return &VentasHandler{svc: svc, clock: clock}
}

// Crear godoc
// @Summary Registrar una nueva venta
// @Description Crea una venta CAJA o PEDIDO. Valida stock disponible en kg; un PEDIDO requiere cliente y acumula deuda por el total.
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearVentaRequest true "Detalle de la venta"
// @Success 201 {object} dto.VentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/ventas [post]
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Crear(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar ventas
// @Description Lista paginada. Un VENDEDOR solo ve sus propias ventas del día.
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha YYYY-MM-DD"
// @Param type query string false "CAJA | PEDIDO"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.VentaListResponse
// @Router /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	// Vendedores only see their own sales of the current business day; admins
	// see everything. The day runs midnight to midnight in the business
	// timezone, so the bounds are resolved here instead of in SQL.
	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolVendedor {
		filter.UserID = claims.UserID
		filter.DayStart, filter.DayEnd = h.clock.DayBounds(h.clock.Now())
		filter.Fecha = ""
		filter.StartDate = ""
		filter.EndDate = ""
	}

	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	viewerID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Obtener(c.Request.Context(), id, viewerID, claims.Rol)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Eliminar venta
// @Description Elimina la venta; si era PEDIDO revierte la deuda del cliente (nunca bajo 0).
// @Tags ventas
// @Security BearerAuth
// @Param id path string true "UUID de la venta"
// @Success 204
// @Router /v1/ventas/{id} [delete]
func (h *VentasHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarcarImpresa flags the sale as printed and queues the PDF receipt job.
func (h *VentasHandler) MarcarImpresa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.MarcarImpresa(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
