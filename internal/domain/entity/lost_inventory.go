package entity

import "github.com/shopspring/decimal"

// LostInventoryItem salida de la reconciliación por ASIN: unidades perdidas
// aún no reembolsadas ni encontradas, con el monto esperado. Se recalcula
// completo (replace, no merge) en cada corrida para un scope.
//
// Invariantes:
//   - DiscrepancyUnits = lost − found − reimbursed, y solo se emiten > 0.
//   - ExpectedAmount = DiscrepancyUnits × ReimbursementPerUnit.
//
// AmountPerUnit es lo pagado por unidad en el reembolso existente;
// UnderpaidExpectedAmount la diferencia reclamable cuando el pago fue
// insuficiente.
type LostInventoryItem struct {
	ASIN                    string          `json:"asin"`
	SKU                     string          `json:"sku"`
	FNSKU                   string          `json:"fnsku"`
	LostUnits               decimal.Decimal `json:"lost_units"`
	FoundUnits              decimal.Decimal `json:"found_units"`
	ReimbursedUnits         decimal.Decimal `json:"reimbursed_units"`
	DiscrepancyUnits        decimal.Decimal `json:"discrepancy_units"`
	SalesPrice              decimal.Decimal `json:"sales_price"`
	Fees                    decimal.Decimal `json:"fees"`
	ReimbursementPerUnit    decimal.Decimal `json:"reimbursement_per_unit"`
	ExpectedAmount          decimal.Decimal `json:"expected_amount"`
	Currency                string          `json:"currency"`
	IsUnderpaid             bool            `json:"is_underpaid"`
	AmountPerUnit           decimal.Decimal `json:"amount_per_unit"`
	UnderpaidExpectedAmount decimal.Decimal `json:"underpaid_expected_amount"`
}
