// Package http router, middlewares y handlers Fiber de la API.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reembolsos-api/internal/application/auth"
	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	IngestUC    *recovery.IngestUseCase
	ReconcileUC *recovery.ReconcileUseCase
	DetectUC    *recovery.DetectShipmentsUseCase
	QueryUC     *recovery.ClaimQueryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ingesta de reportes (protegido)
	reports := protected.Group("/reports")
	ingestHandler := NewIngestHandler(deps.IngestUC)
	reports.Post("/ledger", ingestHandler.IngestLedger)
	reports.Post("/fees", ingestHandler.IngestFees)
	reports.Post("/shipments", ingestHandler.IngestShipments)
	reports.Post("/reimbursements", ingestHandler.IngestReimbursements)

	// Catálogo de productos (protegido)
	protected.Put("/products", ingestHandler.ReplaceProducts)

	// Motor de recuperación (protegido)
	recoveryGroup := protected.Group("/recovery")
	recoveryHandler := NewRecoveryHandler(deps.ReconcileUC, deps.DetectUC, deps.QueryUC)
	recoveryGroup.Post("/reconcile", recoveryHandler.Reconcile)
	recoveryGroup.Get("/lost-inventory", recoveryHandler.ListLostInventory)
	recoveryGroup.Post("/detect-shipments", recoveryHandler.DetectShipments)
	recoveryGroup.Get("/summary", recoveryHandler.GetSummary)
	recoveryGroup.Get("/claims", recoveryHandler.GetClaims)
	recoveryGroup.Get("/claims/letter", recoveryHandler.ClaimLetter)
	recoveryGroup.Put("/claims/costs", recoveryHandler.UpdateProductCosts)
}
