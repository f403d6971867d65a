package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yorbis/ferreteria-api/internal/application/dto"
	"github.com/yorbis/ferreteria-api/internal/application/settlement"
)

// SettlementHandler maneja las peticiones HTTP del cuadre de caja diario.
type SettlementHandler struct {
	uc *settlement.QueryUseCase
}

// NewSettlementHandler construye el handler.
func NewSettlementHandler(uc *settlement.QueryUseCase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

// Get godoc
// @Summary      Cuadre de caja de una sucursal y fecha
// @Description  Devuelve el resumen de venta diaria con todas las casillas;
// @Description  un día sin ventas sale con todo en cero, nunca 404.
// @Tags         settlements
// @Produce      json
// @Param        sucursal  query  string  true  "Sucursal"
// @Param        fecha     query  string  true  "Fecha YYYY-MM-DD"
// @Success      200  {object}  dto.SettlementSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settlements [get]
func (h *SettlementHandler) Get(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Query("sucursal"), c.Query("fecha"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toSummaryResponse(summary))
}

// GetRange godoc
// @Summary      Cuadres de un rango de fechas
// @Tags         settlements
// @Produce      json
// @Param        sucursal  query  string  true  "Sucursal"
// @Param        desde     query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        hasta     query  string  true  "Fecha final YYYY-MM-DD"
// @Success      200  {array}   dto.SettlementSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settlements/range [get]
func (h *SettlementHandler) GetRange(c *fiber.Ctx) error {
	list, err := h.uc.GetRange(c.Query("sucursal"), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.SettlementSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSummaryResponse(s))
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Cuadre de caja en PDF
// @Tags         settlements
// @Produce      application/pdf
// @Param        sucursal  query  string  true  "Sucursal"
// @Param        fecha     query  string  true  "Fecha YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settlements/pdf [get]
func (h *SettlementHandler) GetPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.DailyReportPDF(c.Query("sucursal"), c.Query("fecha"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cuadre-`+c.Query("fecha")+`.pdf"`)
	return c.Send(pdfBytes)
}
