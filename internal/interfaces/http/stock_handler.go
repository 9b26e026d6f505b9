package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/stock"
)

// StockHandler peticiones HTTP de ajustes de stock y consultas (protegido).
type StockHandler struct {
	uc *stock.AdjustStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.AdjustStockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajuste manual y auditado de stock (cantidad absoluta)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, location, new_quantity, reason (≥10 caracteres si se envía)"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adjustment, err := h.uc.AdjustStock(c.Context(), stock.AdjustInput{
		ProductID:   in.ProductID,
		Location:    in.Location,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		UserID:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAdjustmentResponse(adjustment))
}

// GetSummary godoc
// @Summary      Resumen de stock de un producto (warehouse/store/total)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de producto"
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) GetSummary(c *fiber.Ctx) error {
	productID := c.Params("id")
	summary, err := h.uc.GetStockSummary(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockSummaryResponse{
		ProductID: productID,
		Warehouse: summary.Warehouse,
		Store:     summary.Store,
		Total:     summary.Total,
	})
}

// ListAdjustments godoc
// @Summary      Histórico de ajustes de un producto (auditoría)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de producto"
// @Param        limit   query  int     false  "Máximo de registros (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjustments [get]
func (h *StockHandler) ListAdjustments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	adjustments, err := h.uc.ListAdjustments(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, dto.ToAdjustmentResponse(a))
	}
	return c.JSON(out)
}
