package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoicekit/invoicekit-api/internal/application/invoicing"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CountUC    *invoicing.CountUseCase
	PreviewUC  *invoicing.PreviewUseCase
	GenerateUC *invoicing.GenerateUseCase
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	h := NewInvoiceHandler(deps.CountUC, deps.PreviewUC, deps.GenerateUC)

	orders := api.Group("/orders")
	orders.Post("/count", h.Count)

	invoices := api.Group("/invoices")
	invoices.Post("/preview", h.Preview)
	invoices.Post("/generate", h.Generate)
}
