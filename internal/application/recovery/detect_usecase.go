package recovery

import (
	"context"
	"time"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
	"github.com/jhoicas/Reembolsos-api/pkg/config"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

// DetectShipmentsUseCase corre el detector de discrepancias de envíos
// entrantes sobre los envíos cerrados del scope y funde los reclamos
// potenciales resultantes en la lista persistida.
type DetectShipmentsUseCase struct {
	shipmentRepo repository.ShipmentRepository
	productRepo  repository.ProductRepository
	feeRepo      repository.FeeSnapshotRepository
	merge        *MergeClaimsUseCase
	cfg          config.ClaimsConfig
	log          *logger.Logger
}

// NewDetectShipmentsUseCase construye el caso de uso.
func NewDetectShipmentsUseCase(
	shipmentRepo repository.ShipmentRepository,
	productRepo repository.ProductRepository,
	feeRepo repository.FeeSnapshotRepository,
	merge *MergeClaimsUseCase,
	cfg config.ClaimsConfig,
	log *logger.Logger,
) *DetectShipmentsUseCase {
	return &DetectShipmentsUseCase{
		shipmentRepo: shipmentRepo,
		productRepo:  productRepo,
		feeRepo:      feeRepo,
		merge:        merge,
		cfg:          cfg,
		log:          log,
	}
}

// Detect analiza los envíos cerrados y persiste los reclamos nuevos.
// Requiere envíos y catálogo de productos previamente ingestados; si falta
// alguno de los dos se reporta MissingPreconditionError sin escribir nada.
// El snapshot de tarifas es opcional: sin él se usa el precio de lista.
func (uc *DetectShipmentsUseCase) Detect(ctx context.Context, scope entity.Scope) (*dto.DetectShipmentsResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	shipments, err := uc.shipmentRepo.GetClosed(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(shipments) == 0 {
		return nil, &domain.MissingPreconditionError{Artifact: "shipments"}
	}

	products, err := uc.productRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &domain.MissingPreconditionError{Artifact: "products"}
	}

	fees, err := uc.feeRepo.GetLatest(ctx, scope)
	if err != nil {
		return nil, err
	}

	result := claims.DetectShipmentDiscrepancies(claims.DetectorInput{
		Shipments:       shipments,
		Products:        products,
		Fees:            fees.ByASIN(),
		Now:             time.Now(),
		ClaimWindowDays: uc.cfg.ClaimWindowDays,
	})

	// Datos parciales no abortan la corrida: se omiten y se deja rastro.
	if len(result.SkippedSKUs) > 0 || len(result.SkippedShipments) > 0 {
		uc.log.Warn().
			Str("scope", scope.Key()).
			Strs("skipped_skus", result.SkippedSKUs).
			Strs("skipped_shipments", result.SkippedShipments).
			Msg("detector: elementos omitidos por datos incompletos")
	}

	merged, summary, err := uc.merge.Merge(ctx, scope, result.Claims, nil)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Int("detected", len(result.Claims)).
		Int("total", len(merged)).
		Msg("detección de discrepancias de envíos completada")

	return &dto.DetectShipmentsResponse{
		NewClaims:   result.Claims,
		TotalClaims: len(merged),
		Summary:     summary,
	}, nil
}
