package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/yorbis/ferreteria-api/internal/application/dto"
	"github.com/yorbis/ferreteria-api/internal/application/sales"
	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
)

// saleRetryAttempts reintentos ante conflictos de concurrencia recuperables.
const saleRetryAttempts = 3

// SaleHandler maneja las peticiones HTTP del punto de venta.
type SaleHandler struct {
	uc *sales.RecordSaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.RecordSaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una venta
// @Description  Descuenta el inventario y persiste la venta en una sola
// @Description  transacción. Si cualquier línea falla, no se escribe nada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "sucursal, productos, pagos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}

	input := sales.SaleInput{
		BranchID:   in.BranchID,
		Date:       in.Date,
		ActingUser: actingUser(c),
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, sales.SaleLineInput{Ref: item.Ref, Quantity: item.Quantity})
	}
	for _, p := range in.Payments {
		input.Payments = append(input.Payments, entity.Payment{Method: p.Method, Amount: p.Amount, BankRef: p.BankRef})
	}

	// Los conflictos de lock/serialización son transitorios: se reintenta la
	// transacción completa un número acotado de veces.
	var sale *entity.Sale
	var err error
	for attempt := 0; attempt < saleRetryAttempts; attempt++ {
		sale, err = h.uc.RecordSale(c.Context(), input)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// Get godoc
// @Summary      Obtener una venta por ID
// @Tags         sales
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}
