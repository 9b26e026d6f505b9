package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/purchase"
)

// PurchaseHandler peticiones HTTP de órdenes de compra (protegido).
type PurchaseHandler struct {
	createUC  *purchase.CreateOrderUseCase
	receiveUC *purchase.ReceiveOrderUseCase
	cancelUC  *purchase.CancelOrderUseCase
	queryUC   *purchase.QueryUseCase
	idem      *IdempotencyGuard
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(
	createUC *purchase.CreateOrderUseCase,
	receiveUC *purchase.ReceiveOrderUseCase,
	cancelUC *purchase.CancelOrderUseCase,
	queryUC *purchase.QueryUseCase,
	idem *IdempotencyGuard,
) *PurchaseHandler {
	return &PurchaseHandler{
		createUC:  createUC,
		receiveUC: receiveUC,
		cancelUC:  cancelUC,
		queryUC:   queryUC,
		idem:      idem,
	}
}

// Create godoc
// @Summary      Crear orden de compra a proveedor (no toca stock)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "supplier_id, items[{product_id, quantity, unit_price}]"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := purchase.CreateInput{
		SupplierID:            in.SupplierID,
		EstimatedDeliveryDate: in.EstimatedDeliveryDate,
		Notes:                 in.Notes,
		UserID:                userID,
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, purchase.CreateItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	order, err := h.createUC.CreateOrder(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(order))
}

// Receive godoc
// @Summary      Recepcionar orden de compra (tolerancia 10% de sobre-entrega)
// @Description  stock_location es una sola ubicación para toda la recepción.
//               Los totales se recalculan desde lo recibido. Acepta Idempotency-Key.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de orden"
// @Param        body  body  dto.ReceiveOrderRequest  true  "lines[{item_id, received_quantity}], stock_location, invoice_number, notes"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	key, fresh, err := h.idem.Claim(c)
	if err != nil {
		return respondError(c, err)
	}
	if !fresh {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_REQUEST", Message: "recepción ya procesada para esta Idempotency-Key"})
	}

	input := purchase.ReceiveInput{
		OrderID:       c.Params("id"),
		StockLocation: in.StockLocation,
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
		UserID:        userID,
	}
	for _, line := range in.Lines {
		input.Lines = append(input.Lines, purchase.ReceiveLineInput{
			ItemID:           line.ItemID,
			ReceivedQuantity: line.ReceivedQuantity,
		})
	}
	order, err := h.receiveUC.ReceiveOrder(c.Context(), input)
	if err != nil {
		h.idem.Release(c, key)
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Cancel godoc
// @Summary      Cancelar orden de compra no terminal
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.cancelUC.CancelOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Get godoc
// @Summary      Obtener una orden de compra con sus líneas
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	order, err := h.queryUC.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de compra (más reciente primero)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de registros (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	orders, err := h.queryUC.ListOrders(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderListResponse(orders))
}
