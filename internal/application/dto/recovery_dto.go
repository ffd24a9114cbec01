package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// ReconcileSummaryDTO sumas del resultado de reconciliación de un scope.
type ReconcileSummaryDTO struct {
	TotalItems            int             `json:"total_items"`
	TotalDiscrepancyUnits decimal.Decimal `json:"total_discrepancy_units"`
	TotalExpectedAmount   decimal.Decimal `json:"total_expected_amount"`
	UnderpaidCount        int             `json:"underpaid_count"`
}

// ReconcileResponse respuesta de POST /api/recovery/reconcile.
type ReconcileResponse struct {
	Items   []entity.LostInventoryItem `json:"items"`
	Summary ReconcileSummaryDTO        `json:"summary"`
}

// DetectShipmentsResponse respuesta de POST /api/recovery/detect-shipments.
type DetectShipmentsResponse struct {
	NewClaims   []entity.ReimbursementRecord `json:"new_claims"`
	TotalClaims int                          `json:"total_claims"`
	Summary     *entity.ClaimSummary         `json:"summary"`
}

// ClaimListResponse respuesta de GET /api/recovery/claims.
type ClaimListResponse struct {
	Total          int                          `json:"total"`
	Reimbursements []entity.ReimbursementRecord `json:"reimbursements"`
}

// ClaimFilterRequest filtros del listado detallado.
type ClaimFilterRequest struct {
	Status string `query:"status"`
	Type   string `query:"type"`
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`   // YYYY-MM-DD
}

// UpdateProductCostsRequest cuerpo de PUT /api/recovery/claims/costs:
// costo por SKU a aplicar sobre los reclamos potenciales basados en costo.
type UpdateProductCostsRequest struct {
	Costs map[string]decimal.Decimal `json:"costs"`
}

// UpdateProductCostsResponse resultado del parcheo de costos.
type UpdateProductCostsResponse struct {
	Updated bool `json:"updated"`
	Patched int  `json:"patched"`
}
