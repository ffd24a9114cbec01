package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReimbursementType categoría cerrada de reembolso. Todo reason code de Amazon
// mapea a exactamente una (ver claims.ClassifyReason).
type ReimbursementType string

const (
	TypeLost                ReimbursementType = "LOST"
	TypeDamaged             ReimbursementType = "DAMAGED"
	TypeCustomerReturn      ReimbursementType = "CUSTOMER_RETURN"
	TypeFeeCorrection       ReimbursementType = "FEE_CORRECTION"
	TypeInboundShipment     ReimbursementType = "INBOUND_SHIPMENT"
	TypeRemovalOrder        ReimbursementType = "REMOVAL_ORDER"
	TypeWarehouseDamage     ReimbursementType = "WAREHOUSE_DAMAGE"
	TypeInventoryDifference ReimbursementType = "INVENTORY_DIFFERENCE"
	TypeOther               ReimbursementType = "OTHER"
)

// ClaimStatus estado del ciclo de vida de un reclamo. Las transiciones son
// solo hacia adelante: potential → (approved | denied | expired); los tres
// últimos son terminales.
type ClaimStatus string

const (
	StatusApproved  ClaimStatus = "approved"
	StatusPending   ClaimStatus = "pending"
	StatusPotential ClaimStatus = "potential"
	StatusDenied    ClaimStatus = "denied"
	StatusExpired   ClaimStatus = "expired"
)

// ReimbursementRecord un reclamo emitido por Amazon (ingesta de reporte,
// status=approved, automatizado) o detectado por el sistema (status=potential,
// manual). Un potencial nunca se borra en el merge: queda hasta que un ciclo
// de fetch lo pruebe duplicado o lo supere.
type ReimbursementRecord struct {
	ReimbursementID   string            `json:"reimbursement_id"`
	ASIN              string            `json:"asin"`
	SKU               string            `json:"sku"`
	FNSKU             string            `json:"fnsku"`
	ReimbursementType ReimbursementType `json:"reimbursement_type"`
	Amount            decimal.Decimal   `json:"amount"`
	Currency          string            `json:"currency"`
	Quantity          int64             `json:"quantity"`
	ReasonCode        string            `json:"reason_code"`
	ReasonDescription string            `json:"reason_description"`
	CaseID            string            `json:"case_id"`
	Status            ClaimStatus       `json:"status"`
	ApprovalDate      *time.Time        `json:"approval_date,omitempty"`
	ReimbursementDate *time.Time        `json:"reimbursement_date,omitempty"`
	DiscoveryDate     *time.Time        `json:"discovery_date,omitempty"`
	ExpiryDate        *time.Time        `json:"expiry_date,omitempty"`
	DaysToDeadline    int               `json:"days_to_deadline"`
	IsAutomated       bool              `json:"is_automated"`
	ProductCost       decimal.Decimal   `json:"product_cost"`
	ShipmentID        string            `json:"shipment_id"`
	ShipmentName      string            `json:"shipment_name"`
}

// MergeKey clave de unicidad para el merge de potenciales:
// (sku, shipmentId, tipo). Solo aplica a status potential/pending.
func (r ReimbursementRecord) MergeKey() string {
	return fmt.Sprintf("%s|%s|%s", r.SKU, r.ShipmentID, r.ReimbursementType)
}

// IsOpen indica si el reclamo sigue en juego (no terminal).
func (r ReimbursementRecord) IsOpen() bool {
	return r.Status == StatusPotential || r.Status == StatusPending
}

// EffectiveDate fecha para ventanas temporales del resumen:
// reimbursementDate con fallback a discoveryDate.
func (r ReimbursementRecord) EffectiveDate() *time.Time {
	if r.ReimbursementDate != nil {
		return r.ReimbursementDate
	}
	return r.DiscoveryDate
}
