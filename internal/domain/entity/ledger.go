package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow una entrada diaria del ledger de bodega de Amazon para un
// ASIN/FNSKU/disposición. Los numéricos llegan como strings del reporte TSV;
// la ingesta los normaliza (ausente o no parseable → 0) antes de llegar aquí.
type LedgerRow struct {
	Date              time.Time       `json:"date"`
	ASIN              string          `json:"asin"`
	FNSKU             string          `json:"fnsku"`
	MSKU              string          `json:"msku"`
	Disposition       string          `json:"disposition"` // SELLABLE, DEFECTIVE, ...
	StartingBalance   decimal.Decimal `json:"starting_balance"`
	Receipts          decimal.Decimal `json:"receipts"`
	CustomerShipments decimal.Decimal `json:"customer_shipments"`
	CustomerReturns   decimal.Decimal `json:"customer_returns"`
	Found             decimal.Decimal `json:"found"`
	Lost              decimal.Decimal `json:"lost"`
	Damaged           decimal.Decimal `json:"damaged"`
	Disposed          decimal.Decimal `json:"disposed"`
	UnknownEvents     decimal.Decimal `json:"unknown_events"`
	EndingBalance     decimal.Decimal `json:"ending_balance"`
	Location          string          `json:"location"`
}

// LedgerSnapshot el resultado de un fetch del reporte ledger para un scope.
// Inmutable: cada fetch crea un snapshot nuevo (append-only por fetched_at);
// la reconciliación trabaja siempre sobre el más reciente.
type LedgerSnapshot struct {
	ID        string      `json:"id"`
	Scope     Scope       `json:"scope"`
	FetchedAt time.Time   `json:"fetched_at"`
	Rows      []LedgerRow `json:"rows"`
}
