package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yorbis/ferreteria-api/internal/application/dto"
	"github.com/yorbis/ferreteria-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de productos e inventario.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Alta explícita de producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecordRequest  true  "sucursal, nombre, costo; precio_venta o porcentaje_utilidad opcionales"
// @Success      201   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := h.uc.CreateRecord(c.Context(), inventory.CreateRecordInput{
		BranchID:       in.BranchID,
		Code:           in.Code,
		Name:           in.Name,
		Description:    in.Description,
		Brand:          in.Brand,
		Cost:           in.Cost,
		ExplicitPrice:  in.ExplicitPrice,
		ExplicitMargin: in.ExplicitMargin,
		ActingUser:     actingUser(c),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecordResponse(rec))
}

// Get godoc
// @Summary      Obtener producto por ID o código
// @Tags         products
// @Produce      json
// @Param        ref       path   string  true   "ID del registro o código del producto"
// @Param        sucursal  query  string  false  "Sucursal (requerida para buscar por código)"
// @Param        inactivos query  bool    false  "Incluir registros inactivos"
// @Success      200  {object}  dto.InventoryRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{ref} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	rec, err := h.uc.Get(c.Context(), c.Query("sucursal"), c.Params("ref"), c.QueryBool("inactivos"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toRecordResponse(rec))
}

// Search godoc
// @Summary      Búsqueda del punto de venta
// @Description  Busca por código, nombre, descripción o marca, parcial y sin
// @Description  distinguir mayúsculas ni acentos. Excluye inactivos.
// @Tags         products
// @Produce      json
// @Param        sucursal  query  string  true   "Sucursal"
// @Param        q         query  string  true   "Término de búsqueda"
// @Param        limit     query  int     false  "Máximo de resultados (tope 100)"
// @Success      200  {array}   dto.InventoryRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	branchID := c.Query("sucursal")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sucursal requerida"})
	}
	records, err := h.uc.Search(c.Context(), branchID, c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Activar o inactivar un producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del registro"
// @Param        body  body  dto.UpdateStatusRequest  true  "estado: activo | inactivo"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/status [patch]
func (h *InventoryHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// actingUser identifica al operador para auditoría. Sin capa de auth, sale
// del header X-Usuario que envía el punto de venta.
func actingUser(c *fiber.Ctx) string {
	return c.Get("X-Usuario")
}
