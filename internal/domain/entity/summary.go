package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypeBreakdown conteo y monto acumulado de una categoría de reembolso.
type TypeBreakdown struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// ClaimSummary proyección agregada del conjunto de reclamos de un scope.
// Enteramente derivada: se recalcula completa en cada merge, nunca se parcha
// incrementalmente (evita drift). Un scope sin datos produce un resumen en
// ceros, nunca nil.
type ClaimSummary struct {
	Scope Scope `json:"scope"`

	// Totales por estado
	TotalReceived  decimal.Decimal `json:"total_received"` // suma de aprobados
	TotalPending   decimal.Decimal `json:"total_pending"`
	TotalPotential decimal.Decimal `json:"total_potential"`
	TotalDenied    decimal.Decimal `json:"total_denied"`

	// Totales por categoría
	ByType map[ReimbursementType]TypeBreakdown `json:"by_type"`

	// Ventanas temporales (reimbursementDate con fallback a discoveryDate)
	ReceivedLast7Days  decimal.Decimal `json:"received_last_7_days"`
	ReceivedLast30Days decimal.Decimal `json:"received_last_30_days"`
	ReceivedLast90Days decimal.Decimal `json:"received_last_90_days"`

	// Buckets de expiración (potenciales cuyo expiryDate cae en la ventana)
	ClaimsExpiringIn7Days  int `json:"claims_expiring_in_7_days"`
	ClaimsExpiringIn30Days int `json:"claims_expiring_in_30_days"`

	// Split por origen
	AutomatedCount int `json:"automated_count"`
	ManualCount    int `json:"manual_count"`

	TotalClaims int       `json:"total_claims"`
	ComputedAt  time.Time `json:"computed_at"`
}

// NewClaimSummary resumen en ceros para un scope (contrato de dashboard:
// estructuras con valor cero, nunca null).
func NewClaimSummary(scope Scope) *ClaimSummary {
	return &ClaimSummary{
		Scope:              scope,
		TotalReceived:      decimal.Zero,
		TotalPending:       decimal.Zero,
		TotalPotential:     decimal.Zero,
		TotalDenied:        decimal.Zero,
		ByType:             map[ReimbursementType]TypeBreakdown{},
		ReceivedLast7Days:  decimal.Zero,
		ReceivedLast30Days: decimal.Zero,
		ReceivedLast90Days: decimal.Zero,
	}
}
