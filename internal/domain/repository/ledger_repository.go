package repository

import (
	"context"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// LedgerSnapshotRepository puerto de persistencia del ledger de bodega.
// Append-only: cada fetch guarda un snapshot nuevo; GetLatest devuelve el más
// reciente o nil (ausencia no es error: es el estado normal de una cuenta
// recién conectada).
type LedgerSnapshotRepository interface {
	Save(ctx context.Context, snapshot *entity.LedgerSnapshot) error
	GetLatest(ctx context.Context, scope entity.Scope) (*entity.LedgerSnapshot, error)
}

// FeeSnapshotRepository puerto del snapshot de precios/fees por ASIN.
// Replace-on-write: cada refetch sustituye el documento completo del scope.
type FeeSnapshotRepository interface {
	Replace(ctx context.Context, snapshot *entity.FeeSnapshot) error
	GetLatest(ctx context.Context, scope entity.Scope) (*entity.FeeSnapshot, error)
}

// ShipmentRepository puerto del set de envíos entrantes cerrados del scope.
// Replace-on-write.
type ShipmentRepository interface {
	Replace(ctx context.Context, scope entity.Scope, shipments []entity.Shipment) error
	GetClosed(ctx context.Context, scope entity.Scope) ([]entity.Shipment, error)
}

// ProductRepository puerto del catálogo mínimo por scope (sku, asin, precio,
// costo) que alimenta el fallback de precio del detector.
type ProductRepository interface {
	Replace(ctx context.Context, scope entity.Scope, products []entity.Product) error
	List(ctx context.Context, scope entity.Scope) ([]entity.Product, error)
}
