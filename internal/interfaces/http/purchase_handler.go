package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yorbis/ferreteria-api/internal/application/dto"
	"github.com/yorbis/ferreteria-api/internal/application/purchasing"
	"github.com/yorbis/ferreteria-api/internal/domain"
)

// PurchaseHandler maneja las peticiones HTTP de compras a proveedor.
type PurchaseHandler struct {
	uc *purchasing.ReceivePurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.ReceivePurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una compra a proveedor
// @Description  Persiste el documento de compra y aplica cada línea al
// @Description  inventario por separado. Las líneas con error se reportan en
// @Description  productos_con_error; las demás quedan aplicadas.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceivePurchaseRequest  true  "sucursal, proveedor_id, productos"
// @Success      201   {object}  dto.ReceivePurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}

	input := purchasing.PurchaseInput{
		BranchID:      in.BranchID,
		SupplierID:    in.SupplierID,
		SupplierName:  in.SupplierName,
		InvoiceNumber: in.InvoiceNumber,
		Date:          in.Date,
		Notes:         in.Notes,
		ActingUser:    actingUser(c),
	}
	for _, line := range in.Lines {
		li := purchasing.PurchaseLineInput{
			ProductID:      line.ProductID,
			Code:           line.Code,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitCost:       line.UnitCost,
			LineTotal:      line.LineTotal,
			IsNew:          line.IsNew,
			ExplicitPrice:  line.ExplicitPrice,
			ExplicitMargin: line.ExplicitMargin,
		}
		if line.LotExpiry != "" {
			exp, err := time.Parse("2006-01-02", line.LotExpiry)
			if err != nil {
				return errorJSON(c, domain.ErrInvalidInput)
			}
			li.LotExpiry = &exp
		}
		input.Lines = append(input.Lines, li)
	}

	result, err := h.uc.ReceivePurchase(c.Context(), input)
	if err != nil {
		return errorJSON(c, err)
	}

	out := dto.ReceivePurchaseResponse{
		PurchaseID:   result.Purchase.ID,
		AppliedLines: make([]dto.InventoryRecordResponse, 0, len(result.AppliedLines)),
		FailedLines:  make([]dto.FailedLineResponse, 0, len(result.FailedLines)),
	}
	for _, rec := range result.AppliedLines {
		out.AppliedLines = append(out.AppliedLines, toRecordResponse(rec))
	}
	for _, f := range result.FailedLines {
		out.FailedLines = append(out.FailedLines, dto.FailedLineResponse{Index: f.Index, Name: f.Name, Reason: f.Reason})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener un documento de compra por ID
// @Tags         purchases
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	purchase, err := h.uc.GetPurchase(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toPurchaseResponse(purchase, h.uc.EstimatedUtilities(purchase)))
}

// List godoc
// @Summary      Listar compras de una sucursal
// @Tags         purchases
// @Produce      json
// @Param        sucursal  query  string  true   "Sucursal"
// @Param        desde     query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta     query  string  false  "Fecha final YYYY-MM-DD"
// @Param        limit     query  int     false  "Máximo de resultados"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.ListPurchases(c.Context(), c.Query("sucursal"), c.Query("desde"), c.Query("hasta"), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p, h.uc.EstimatedUtilities(p)))
	}
	return c.JSON(out)
}
