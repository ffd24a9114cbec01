package recovery

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

// ClaimQueryUseCase lecturas y mutaciones puntuales sobre los reclamos de un
// scope: resumen de dashboard, listado filtrado, parcheo de costos y carta de
// reclamo en PDF.
type ClaimQueryUseCase struct {
	reimbRepo repository.ReimbursementRepository
	locker    ScopeLocker
	letters   ClaimLetterGenerator
	log       *logger.Logger
}

// NewClaimQueryUseCase construye el caso de uso.
func NewClaimQueryUseCase(
	reimbRepo repository.ReimbursementRepository,
	locker ScopeLocker,
	letters ClaimLetterGenerator,
	log *logger.Logger,
) *ClaimQueryUseCase {
	return &ClaimQueryUseCase{reimbRepo: reimbRepo, locker: locker, letters: letters, log: log}
}

// GetSummary devuelve el resumen persistido del scope. Sin datos previos
// responde la estructura con ceros, nunca error: el dashboard de un usuario
// recién conectado se renderiza vacío.
func (uc *ClaimQueryUseCase) GetSummary(ctx context.Context, scope entity.Scope) (*entity.ClaimSummary, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}
	summary, err := uc.reimbRepo.GetSummary(ctx, scope)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return entity.NewClaimSummary(scope), nil
	}
	return summary, nil
}

// GetDetailedClaims lista los reclamos del scope aplicando los filtros
// opcionales. Fechas malformadas se ignoran en vez de fallar la consulta.
func (uc *ClaimQueryUseCase) GetDetailedClaims(ctx context.Context, scope entity.Scope, req dto.ClaimFilterRequest) (*dto.ClaimListResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	filter := repository.ClaimFilter{
		Status: entity.ClaimStatus(req.Status),
		Type:   entity.ReimbursementType(req.Type),
	}
	if t, ok := parseDateFilter(req.From); ok {
		filter.From = &t
	}
	if t, ok := parseDateFilter(req.To); ok {
		filter.To = &t
	}

	records, err := uc.reimbRepo.Query(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []entity.ReimbursementRecord{}
	}

	return &dto.ClaimListResponse{Total: len(records), Reimbursements: records}, nil
}

// UpdateProductCosts parchea el costo de producto por SKU sobre los reclamos
// potenciales de envío entrante (los basados en costo) y recalcula su monto
// esperado como costo × cantidad. Reclamos en otros estados o de otros tipos
// no se tocan.
func (uc *ClaimQueryUseCase) UpdateProductCosts(ctx context.Context, scope entity.Scope, req dto.UpdateProductCostsRequest) (*dto.UpdateProductCostsResponse, error) {
	if !scope.Valid() || len(req.Costs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	release, err := uc.locker.Lock(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer release()

	records, err := uc.reimbRepo.GetByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	patched := 0
	for i := range records {
		r := &records[i]
		if r.Status != entity.StatusPotential || r.ReimbursementType != entity.TypeInboundShipment {
			continue
		}
		cost, ok := req.Costs[r.SKU]
		if !ok {
			continue
		}
		r.ProductCost = cost
		r.Amount = cost.Mul(decimal.NewFromInt(r.Quantity))
		patched++
	}

	if patched == 0 {
		return &dto.UpdateProductCostsResponse{Updated: false, Patched: 0}, nil
	}

	summary := claims.BuildSummary(scope, records, time.Now())
	if err := uc.reimbRepo.ReplaceAll(ctx, scope, records, summary); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Int("patched", patched).
		Msg("costos de producto aplicados a reclamos potenciales")

	return &dto.UpdateProductCostsResponse{Updated: true, Patched: patched}, nil
}

// GenerateClaimLetter arma la carta de reclamo en PDF con los reclamos
// abiertos del scope. Exige que exista al menos un reclamo abierto.
func (uc *ClaimQueryUseCase) GenerateClaimLetter(ctx context.Context, scope entity.Scope) ([]byte, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	records, err := uc.reimbRepo.GetByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	open := make([]entity.ReimbursementRecord, 0, len(records))
	for _, r := range records {
		if r.IsOpen() {
			open = append(open, r)
		}
	}
	if len(open) == 0 {
		return nil, &domain.MissingPreconditionError{Artifact: "open claims"}
	}

	summary := claims.BuildSummary(scope, records, time.Now())
	return uc.letters.GenerateClaimLetter(ctx, scope, open, summary)
}

// parseDateFilter interpreta una fecha YYYY-MM-DD de query string.
func parseDateFilter(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
