package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// ClaimFilter filtros opcionales para el listado detallado de reclamos.
type ClaimFilter struct {
	Status entity.ClaimStatus
	Type   entity.ReimbursementType
	From   *time.Time
	To     *time.Time
}

// ReimbursementRepository puerto del set de reclamos de un scope.
//
// El merge es read-whole/compute-new/write-whole: ReplaceAll persiste la lista
// mergeada completa junto con el resumen recalculado en una sola transacción
// (sin visibilidad de escrituras parciales). La exclusión mutua por scope la
// garantiza el caller con un lock, no el store.
type ReimbursementRepository interface {
	GetByScope(ctx context.Context, scope entity.Scope) ([]entity.ReimbursementRecord, error)
	Query(ctx context.Context, scope entity.Scope, filter ClaimFilter) ([]entity.ReimbursementRecord, error)
	ReplaceAll(ctx context.Context, scope entity.Scope, records []entity.ReimbursementRecord, summary *entity.ClaimSummary) error
	GetSummary(ctx context.Context, scope entity.Scope) (*entity.ClaimSummary, error)
}

// LostInventoryRepository puerto del resultado de reconciliación por ASIN.
// Replace-on-write: cada corrida sustituye el set completo del scope.
type LostInventoryRepository interface {
	Replace(ctx context.Context, scope entity.Scope, items []entity.LostInventoryItem) error
	List(ctx context.Context, scope entity.Scope) ([]entity.LostInventoryItem, error)
}
