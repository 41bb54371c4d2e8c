package handler

import (
	"net/http"
	"strconv"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IngresosHandler struct {
	svc   service.IngresoService
	stock service.StockService
}

func NewIngresosHandler(svc service.IngresoService, stock service.StockService) *IngresosHandler {
	return &IngresosHandler{svc: svc, stock: stock}
}

// CrearLote godoc
// @Summary Registrar ingreso de mercadería
// @Description Registra la llegada de un camión con ítems por proveedor/producto. Cada fila acepta cantidad en KG o JAVA y costo por KG o por JAVA.
// @Tags ingresos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearIngresoLoteRequest true "Lote de ingreso"
// @Success 201 {object} dto.IngresoLoteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/ingresos [post]
func (h *IngresosHandler) CrearLote(c *gin.Context) {
	var req dto.CrearIngresoLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearLote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngresosHandler) Listar(c *gin.Context) {
	var filter dto.IngresoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngresosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngresosHandler) Eliminar(c *gin.Context) {
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

// ── Stock ───────────────────────────────────────────────────────────────────

// StockDisponible godoc
// @Summary Stock disponible en javas por producto
// @Tags ingresos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StockResponse
// @Router /v1/ingresos/stock/disponible [get]
func (h *IngresosHandler) StockDisponible(c *gin.Context) {
	resp, err := h.stock.Disponible(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StockDetalle returns the full stock picture per product, with both units,
// sold quantities and the weighted average cost per java.
func (h *IngresosHandler) StockDetalle(c *gin.Context) {
	resp, err := h.stock.Detalle(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Snapshots de inventario ─────────────────────────────────────────────────

func (h *IngresosHandler) CrearSnapshot(c *gin.Context) {
	var req dto.CrearSnapshotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stock.CrearSnapshot(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngresosHandler) ListarSnapshots(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.stock.ListarSnapshots(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
