package handler

import (
	"net/http"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Ganancias godoc
// @Summary Reporte de ganancias por producto
// @Description Ganancia = ingresos por ventas menos javas vendidas valorizadas al costo promedio ponderado de ingreso.
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD (default: hoy)"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ReporteGananciasResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/ganancias [get]
func (h *ReportesHandler) Ganancias(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Ganancias(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) ResumenDiario(c *gin.Context) {
	resp, err := h.svc.ResumenDiario(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
