package recovery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

// MergeClaimsUseCase funde reclamos nuevos en la lista persistida del scope.
// El ciclo es: lock del scope → leer lista completa → computar lista mergeada
// (dominio puro) → recalcular resumen → escribir todo en una transacción.
// Nunca se muta el documento cargado en sitio.
type MergeClaimsUseCase struct {
	reimbRepo repository.ReimbursementRepository
	locker    ScopeLocker
	log       *logger.Logger
}

// NewMergeClaimsUseCase construye el caso de uso.
func NewMergeClaimsUseCase(reimbRepo repository.ReimbursementRepository, locker ScopeLocker, log *logger.Logger) *MergeClaimsUseCase {
	return &MergeClaimsUseCase{reimbRepo: reimbRepo, locker: locker, log: log}
}

// Merge aplica el merge para el scope. freshApproved != nil indica que hubo
// ingesta fresca del reporte de aprobados y ese subconjunto se reemplaza
// entero (source of truth); nil significa "sin ingesta, conservar aprobados".
// Idempotente respecto a newPotential: repetir la llamada no duplica reclamos.
func (uc *MergeClaimsUseCase) Merge(
	ctx context.Context,
	scope entity.Scope,
	newPotential []entity.ReimbursementRecord,
	freshApproved []entity.ReimbursementRecord,
) ([]entity.ReimbursementRecord, *entity.ClaimSummary, error) {
	if !scope.Valid() {
		return nil, nil, domain.ErrInvalidInput
	}

	release, err := uc.locker.Lock(ctx, scope)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	existing, err := uc.reimbRepo.GetByScope(ctx, scope)
	if err != nil {
		return nil, nil, err
	}

	merged := claims.MergeClaims(existing, newPotential, freshApproved)

	// IDs para los registros recién incorporados sin identificador propio.
	for i := range merged {
		if merged[i].ReimbursementID == "" {
			merged[i].ReimbursementID = uuid.New().String()
		}
	}

	summary := claims.BuildSummary(scope, merged, time.Now())

	// Escritura atómica de lista + resumen: sin visibilidad parcial.
	if err := uc.reimbRepo.ReplaceAll(ctx, scope, merged, summary); err != nil {
		return nil, nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Int("existing", len(existing)).
		Int("new_potential", len(newPotential)).
		Int("merged", len(merged)).
		Msg("merge de reclamos persistido")

	return merged, summary, nil
}
