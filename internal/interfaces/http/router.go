package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Traslados-api/internal/application/purchase"
	"github.com/jhoicas/Traslados-api/internal/application/stock"
	"github.com/jhoicas/Traslados-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustStock     *stock.AdjustStockUseCase
	CreateTransfer  *transfer.CreateTransferUseCase
	CancelTransfer  *transfer.CancelTransferUseCase
	ConfirmReceipt  *transfer.ConfirmReceiptUseCase
	TransferQueries *transfer.QueryUseCase
	TransferGuide   *transfer.GuideUseCase
	CreateOrder     *purchase.CreateOrderUseCase
	ReceiveOrder    *purchase.ReceiveOrderUseCase
	CancelOrder     *purchase.CancelOrderUseCase
	OrderQueries    *purchase.QueryUseCase
	Idempotency     *IdempotencyGuard
	JWTSecret       string
}

// Router registra las rutas de la API. Todas las operaciones del motor van
// detrás del middleware de auth: el contexto de usuario alimenta la auditoría.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Stock: ajuste manual auditado y consultas
	stockHandler := NewStockHandler(deps.AdjustStock)
	api.Post("/stock/adjustments", stockHandler.Adjust)
	api.Get("/products/:id/stock", stockHandler.GetSummary)
	api.Get("/products/:id/adjustments", stockHandler.ListAdjustments)

	// Traslados
	transferHandler := NewTransferHandler(
		deps.CreateTransfer, deps.CancelTransfer, deps.ConfirmReceipt,
		deps.TransferQueries, deps.TransferGuide, deps.Idempotency,
	)
	transfers := api.Group("/transfers")
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Post("/:id/receive", transferHandler.Receive)
	transfers.Get("/:id/guide", transferHandler.Guide)

	// Órdenes de compra
	purchaseHandler := NewPurchaseHandler(
		deps.CreateOrder, deps.ReceiveOrder, deps.CancelOrder,
		deps.OrderQueries, deps.Idempotency,
	)
	orders := api.Group("/purchase-orders")
	orders.Post("/", purchaseHandler.Create)
	orders.Get("/", purchaseHandler.List)
	orders.Get("/:id", purchaseHandler.Get)
	orders.Post("/:id/cancel", purchaseHandler.Cancel)
	orders.Post("/:id/receive", purchaseHandler.Receive)
}
