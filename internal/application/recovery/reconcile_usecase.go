package recovery

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
	"github.com/jhoicas/Reembolsos-api/pkg/config"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

// ReconcileUseCase corre la reconciliación de inventario perdido de un scope:
// agrega el último ledger, lo cruza con los reembolsos ya emitidos y el fee
// snapshot, y reemplaza el set de items de discrepancia persistido.
type ReconcileUseCase struct {
	ledgerRepo repository.LedgerSnapshotRepository
	feeRepo    repository.FeeSnapshotRepository
	reimbRepo  repository.ReimbursementRepository
	lostRepo   repository.LostInventoryRepository
	locker     ScopeLocker
	cfg        config.ClaimsConfig
	log        *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	ledgerRepo repository.LedgerSnapshotRepository,
	feeRepo repository.FeeSnapshotRepository,
	reimbRepo repository.ReimbursementRepository,
	lostRepo repository.LostInventoryRepository,
	locker ScopeLocker,
	cfg config.ClaimsConfig,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		ledgerRepo: ledgerRepo,
		feeRepo:    feeRepo,
		reimbRepo:  reimbRepo,
		lostRepo:   lostRepo,
		locker:     locker,
		cfg:        cfg,
		log:        log,
	}
}

// Reconcile ejecuta la corrida completa para el scope.
//
// Si no existe ningún snapshot de ledger devuelve MissingPreconditionError sin
// escribir nada: es el estado esperado de una cuenta que aún no fetcheó el
// reporte, no una falla. La ausencia del fee snapshot en cambio degrada a
// mapa vacío (los montos salen en cero pero las unidades sí se reportan).
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, scope entity.Scope) (*dto.ReconcileResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	release, err := uc.locker.Lock(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer release()

	ledger, err := uc.ledgerRepo.GetLatest(ctx, scope)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, &domain.MissingPreconditionError{Artifact: "ledger"}
	}
	totals := claims.AggregateLedger(ledger.Rows)
	// Un snapshot sin ASINs agregables equivale a no tener ledger todavía.
	if totals.Empty() {
		return nil, &domain.MissingPreconditionError{Artifact: "ledger"}
	}

	all, err := uc.reimbRepo.GetByScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	issued := make([]entity.ReimbursementRecord, 0, len(all))
	for _, r := range all {
		if r.Status == entity.StatusApproved || r.Status == entity.StatusPending {
			issued = append(issued, r)
		}
	}
	lostWarehouse := claims.FilterLostWarehouse(issued)

	fees, err := uc.feeRepo.GetLatest(ctx, scope)
	if err != nil {
		return nil, err
	}

	items := claims.ReconcileLostInventory(claims.ReconcileInput{
		Totals:             totals,
		Reimbursed:         lostWarehouse,
		Fees:               fees.ByASIN(),
		UnderpaidThreshold: decimal.NewFromFloat(uc.cfg.UnderpaidThreshold),
	})

	// Replace, no merge: el resultado es derivado y se recalcula entero.
	if err := uc.lostRepo.Replace(ctx, scope, items); err != nil {
		return nil, err
	}

	summary := summarizeReconcile(items)
	uc.log.Info().
		Str("scope", scope.Key()).
		Int("ledger_rows", len(ledger.Rows)).
		Int("items", len(items)).
		Int("underpaid", summary.UnderpaidCount).
		Msg("reconciliación de inventario perdido completada")

	return &dto.ReconcileResponse{Items: items, Summary: summary}, nil
}

// ListLost devuelve el resultado persistido de la última reconciliación.
// Scope sin corridas previas → lista vacía, no error.
func (uc *ReconcileUseCase) ListLost(ctx context.Context, scope entity.Scope) (*dto.ReconcileResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.lostRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.LostInventoryItem{}
	}
	return &dto.ReconcileResponse{Items: items, Summary: summarizeReconcile(items)}, nil
}

func summarizeReconcile(items []entity.LostInventoryItem) dto.ReconcileSummaryDTO {
	s := dto.ReconcileSummaryDTO{
		TotalItems:            len(items),
		TotalDiscrepancyUnits: decimal.Zero,
		TotalExpectedAmount:   decimal.Zero,
	}
	for _, it := range items {
		s.TotalDiscrepancyUnits = s.TotalDiscrepancyUnits.Add(it.DiscrepancyUnits)
		s.TotalExpectedAmount = s.TotalExpectedAmount.Add(it.ExpectedAmount)
		if it.IsUnderpaid {
			s.UnderpaidCount++
		}
	}
	return s
}
