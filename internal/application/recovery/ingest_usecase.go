package recovery

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
	"github.com/jhoicas/Reembolsos-api/pkg/config"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

// IngestUseCase frontera de ingesta de reportes de Amazon. Acá se normaliza
// todo: los numéricos llegan como strings (ausente o no parseable → 0) y
// ningún dato cruza al dominio sin pasar por esta capa.
type IngestUseCase struct {
	ledgerRepo   repository.LedgerSnapshotRepository
	feeRepo      repository.FeeSnapshotRepository
	shipmentRepo repository.ShipmentRepository
	productRepo  repository.ProductRepository
	merge        *MergeClaimsUseCase
	parser       LedgerReportParser
	cfg          config.ClaimsConfig
	log          *logger.Logger
}

// NewIngestUseCase construye el caso de uso.
func NewIngestUseCase(
	ledgerRepo repository.LedgerSnapshotRepository,
	feeRepo repository.FeeSnapshotRepository,
	shipmentRepo repository.ShipmentRepository,
	productRepo repository.ProductRepository,
	merge *MergeClaimsUseCase,
	parser LedgerReportParser,
	cfg config.ClaimsConfig,
	log *logger.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		ledgerRepo:   ledgerRepo,
		feeRepo:      feeRepo,
		shipmentRepo: shipmentRepo,
		productRepo:  productRepo,
		merge:        merge,
		parser:       parser,
		cfg:          cfg,
		log:          log,
	}
}

// IngestLedger guarda un snapshot nuevo del ledger (append-only). Filas sin
// ASIN se descartan.
func (uc *IngestUseCase) IngestLedger(ctx context.Context, scope entity.Scope, req dto.IngestLedgerRequest) (*dto.IngestResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	rows := make([]entity.LedgerRow, 0, len(req.Rows))
	skipped := 0
	for _, raw := range req.Rows {
		if strings.TrimSpace(raw.ASIN) == "" {
			skipped++
			continue
		}
		rows = append(rows, normalizeLedgerRow(raw))
	}

	snapshot := &entity.LedgerSnapshot{
		ID:        uuid.New().String(),
		Scope:     scope,
		FetchedAt: time.Now(),
		Rows:      rows,
	}
	if err := uc.ledgerRepo.Save(ctx, snapshot); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Str("snapshot_id", snapshot.ID).
		Int("rows", len(rows)).
		Int("skipped", skipped).
		Msg("snapshot de ledger ingestado")

	return &dto.IngestResponse{Ingested: len(rows), Skipped: skipped}, nil
}

// IngestLedgerTSV parsea el TSV crudo del reporte (Windows-1252) y delega en
// IngestLedger.
func (uc *IngestUseCase) IngestLedgerTSV(ctx context.Context, scope entity.Scope, r io.Reader) (*dto.IngestResponse, error) {
	rows, err := uc.parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return uc.IngestLedger(ctx, scope, dto.IngestLedgerRequest{Rows: rows})
}

// IngestFees reemplaza el snapshot de precios/fees del scope completo.
func (uc *IngestUseCase) IngestFees(ctx context.Context, scope entity.Scope, req dto.IngestFeesRequest) (*dto.IngestResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	items := make([]entity.FeeSnapshotItem, 0, len(req.Items))
	skipped := 0
	for _, raw := range req.Items {
		if strings.TrimSpace(raw.ASIN) == "" {
			skipped++
			continue
		}
		items = append(items, entity.FeeSnapshotItem{
			ASIN:                 raw.ASIN,
			SKU:                  raw.SKU,
			FNSKU:                raw.FNSKU,
			SalesPrice:           parseDecimal(raw.SalesPrice),
			TotalFee:             parseDecimal(raw.TotalFee),
			ReimbursementPerUnit: parseDecimal(raw.ReimbursementPerUnit),
			Currency:             raw.Currency,
		})
	}

	snapshot := &entity.FeeSnapshot{Scope: scope, FetchedAt: time.Now(), Items: items}
	if err := uc.feeRepo.Replace(ctx, snapshot); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Int("items", len(items)).
		Msg("snapshot de fees reemplazado")

	return &dto.IngestResponse{Ingested: len(items), Skipped: skipped}, nil
}

// IngestShipments reemplaza los envíos del scope reteniendo solo los cerrados
// con fecha parseable dentro de la ventana de análisis. Lo que queda fuera de
// la ventana ya no es accionable para el detector.
func (uc *IngestUseCase) IngestShipments(ctx context.Context, scope entity.Scope, req dto.IngestShipmentsRequest) (*dto.IngestResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	cutoff := time.Now().AddDate(0, 0, -uc.cfg.AnalysisWindowDays)
	kept := make([]entity.Shipment, 0, len(req.Shipments))
	skipped := 0
	for _, raw := range req.Shipments {
		if !strings.EqualFold(raw.Status, "CLOSED") {
			skipped++
			continue
		}
		date, ok := claims.ParseShipmentDate(raw.ShipmentDate)
		if !ok || date.Before(cutoff) {
			skipped++
			continue
		}
		items := make([]entity.ShipmentItem, 0, len(raw.Items))
		for _, it := range raw.Items {
			items = append(items, entity.ShipmentItem{
				SKU:              it.SKU,
				FNSKU:            it.FNSKU,
				QuantityShipped:  parseInt64(it.QuantityShipped),
				QuantityReceived: parseInt64(it.QuantityReceived),
			})
		}
		kept = append(kept, entity.Shipment{
			ShipmentID:   raw.ShipmentID,
			ShipmentName: raw.ShipmentName,
			ShipmentDate: raw.ShipmentDate,
			Status:       raw.Status,
			Items:        items,
		})
	}

	if err := uc.shipmentRepo.Replace(ctx, scope, kept); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Int("kept", len(kept)).
		Int("skipped", skipped).
		Msg("envíos entrantes reemplazados")

	return &dto.IngestResponse{Ingested: len(kept), Skipped: skipped}, nil
}

// IngestReimbursements ingesta el reporte oficial de reembolsos aprobados y
// lo funde con los reclamos del scope: el subconjunto approved persistido se
// reemplaza entero por este reporte (es la fuente de verdad).
func (uc *IngestUseCase) IngestReimbursements(ctx context.Context, scope entity.Scope, req dto.IngestReimbursementsRequest) (*dto.IngestResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	approved := make([]entity.ReimbursementRecord, 0, len(req.Records))
	skipped := 0
	for _, raw := range req.Records {
		if strings.TrimSpace(raw.ReimbursementID) == "" {
			skipped++
			continue
		}
		rec := entity.ReimbursementRecord{
			ReimbursementID:   raw.ReimbursementID,
			ASIN:              raw.ASIN,
			SKU:               raw.SKU,
			FNSKU:             raw.FNSKU,
			ReimbursementType: claims.ClassifyReason(raw.ReasonCode, raw.ReasonDescription),
			Amount:            parseDecimal(raw.Amount),
			Currency:          raw.Currency,
			Quantity:          parseInt64(raw.Quantity),
			ReasonCode:        raw.ReasonCode,
			ReasonDescription: raw.ReasonDescription,
			CaseID:            raw.CaseID,
			Status:            entity.StatusApproved,
			IsAutomated:       true,
		}
		if t, ok := parseDate(raw.ApprovalDate); ok {
			rec.ApprovalDate = &t
			rec.ReimbursementDate = &t
		}
		approved = append(approved, rec)
	}

	merged, _, err := uc.merge.Merge(ctx, scope, nil, approved)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Int("approved", len(approved)).
		Int("total", len(merged)).
		Msg("reporte de reembolsos aprobados ingestado")

	return &dto.IngestResponse{Ingested: len(approved), Skipped: skipped}, nil
}

// ReplaceProducts sustituye el catálogo del scope. Entradas sin SKU se
// descartan.
func (uc *IngestUseCase) ReplaceProducts(ctx context.Context, scope entity.Scope, req dto.ReplaceProductsRequest) (*dto.IngestResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	products := make([]entity.Product, 0, len(req.Products))
	skipped := 0
	for _, raw := range req.Products {
		if strings.TrimSpace(raw.SKU) == "" {
			skipped++
			continue
		}
		products = append(products, entity.Product{
			SKU:       raw.SKU,
			ASIN:      raw.ASIN,
			Title:     raw.Title,
			Price:     parseDecimal(raw.Price),
			Cost:      parseDecimal(raw.Cost),
			UpdatedAt: now,
		})
	}

	if err := uc.productRepo.Replace(ctx, scope, products); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("scope", scope.Key()).
		Int("products", len(products)).
		Msg("catálogo de productos reemplazado")

	return &dto.IngestResponse{Ingested: len(products), Skipped: skipped}, nil
}

func normalizeLedgerRow(raw dto.RawLedgerRow) entity.LedgerRow {
	row := entity.LedgerRow{
		ASIN:              raw.ASIN,
		FNSKU:             raw.FNSKU,
		MSKU:              raw.MSKU,
		Disposition:       raw.Disposition,
		StartingBalance:   parseDecimal(raw.StartingBalance),
		Receipts:          parseDecimal(raw.Receipts),
		CustomerShipments: parseDecimal(raw.CustomerShipments),
		CustomerReturns:   parseDecimal(raw.CustomerReturns),
		Found:             parseDecimal(raw.Found),
		Lost:              parseDecimal(raw.Lost),
		Damaged:           parseDecimal(raw.Damaged),
		Disposed:          parseDecimal(raw.Disposed),
		UnknownEvents:     parseDecimal(raw.UnknownEvents),
		EndingBalance:     parseDecimal(raw.EndingBalance),
		Location:          raw.Location,
	}
	if t, ok := parseDate(raw.Date); ok {
		row.Date = t
	}
	return row
}

// parseDecimal normaliza un numérico de reporte: vacío o no parseable → 0.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseInt64 normaliza una cantidad entera: vacío o no parseable → 0.
func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Algunas cantidades llegan con decimales (p.ej. "3.0").
		d, derr := decimal.NewFromString(s)
		if derr != nil {
			return 0
		}
		return d.IntPart()
	}
	return n
}

// parseDate acepta los formatos de fecha que traen los reportes.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05Z07:00", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
