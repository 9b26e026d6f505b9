package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/transfer"
)

// TransferHandler peticiones HTTP del ciclo de vida de traslados (protegido).
type TransferHandler struct {
	createUC *transfer.CreateTransferUseCase
	cancelUC *transfer.CancelTransferUseCase
	receiveUC *transfer.ConfirmReceiptUseCase
	queryUC  *transfer.QueryUseCase
	guideUC  *transfer.GuideUseCase
	idem     *IdempotencyGuard
}

// NewTransferHandler construye el handler.
func NewTransferHandler(
	createUC *transfer.CreateTransferUseCase,
	cancelUC *transfer.CancelTransferUseCase,
	receiveUC *transfer.ConfirmReceiptUseCase,
	queryUC *transfer.QueryUseCase,
	guideUC *transfer.GuideUseCase,
	idem *IdempotencyGuard,
) *TransferHandler {
	return &TransferHandler{
		createUC:  createUC,
		cancelUC:  cancelUC,
		receiveUC: receiveUC,
		queryUC:   queryUC,
		guideUC:   guideUC,
		idem:      idem,
	}
}

// Create godoc
// @Summary      Crear traslado entre ubicaciones (decrementa el origen)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from, to, items[{product_id, quantity}], notes"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := transfer.CreateInput{From: in.From, To: in.To, Notes: in.Notes, UserID: userID}
	for _, item := range in.Items {
		input.Items = append(input.Items, transfer.CreateItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	created, err := h.createUC.CreateTransfer(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransferResponse(created))
}

// Cancel godoc
// @Summary      Cancelar traslado no terminal (restaura el origen)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	cancelled, err := h.cancelUC.CancelTransfer(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(cancelled))
}

// Receive godoc
// @Summary      Confirmar recepción de un traslado (incrementa el destino)
// @Description  Cada línea del traslado debe venir exactamente una vez con
//               0 ≤ quantity_received ≤ solicitado. Acepta Idempotency-Key.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de traslado"
// @Param        body  body  dto.ReceiveTransferRequest  true  "lines[{item_id, quantity_received, note}]"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveTransferRequest
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

	input := transfer.ReceiveInput{TransferID: c.Params("id"), UserID: userID}
	for _, line := range in.Lines {
		input.Lines = append(input.Lines, transfer.ReceiveLineInput{
			ItemID:           line.ItemID,
			QuantityReceived: line.QuantityReceived,
			Note:             line.Note,
		})
	}
	received, err := h.receiveUC.ConfirmReceipt(c.Context(), input)
	if err != nil {
		h.idem.Release(c, key)
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(received))
}

// Get godoc
// @Summary      Obtener un traslado con sus líneas y discrepancias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	t, err := h.queryUC.GetTransfer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(t))
}

// List godoc
// @Summary      Listar traslados (más reciente primero)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de registros (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	transfers, err := h.queryUC.ListTransfers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferListResponse(transfers))
}

// Guide godoc
// @Summary      Guía de traslado en PDF
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de traslado"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/guide [get]
func (h *TransferHandler) Guide(c *fiber.Ctx) error {
	pdfBytes, err := h.guideUC.TransferGuide(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="guia-traslado.pdf"`)
	return c.Send(pdfBytes)
}
