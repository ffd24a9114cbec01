package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSnapshotItem datos comerciales por ASIN: precio de venta y fee total de
// Amazon. Es la última verdad conocida; cada refetch reemplaza el snapshot
// completo (nunca se hace merge).
type FeeSnapshotItem struct {
	ASIN                 string          `json:"asin"`
	SKU                  string          `json:"sku"`
	FNSKU                string          `json:"fnsku"`
	SalesPrice           decimal.Decimal `json:"sales_price"`
	TotalFee             decimal.Decimal `json:"total_fee"`
	ReimbursementPerUnit decimal.Decimal `json:"reimbursement_per_unit"` // cero si la fuente no lo trae precalculado
	Currency             string          `json:"currency"`
}

// PerUnit devuelve el baseline de reembolso por unidad: el valor precalculado
// del feed si existe, si no salesPrice − totalFee.
func (f FeeSnapshotItem) PerUnit() decimal.Decimal {
	if !f.ReimbursementPerUnit.IsZero() {
		return f.ReimbursementPerUnit
	}
	return f.SalesPrice.Sub(f.TotalFee)
}

// FeeSnapshot snapshot completo de fees/precios de un scope.
type FeeSnapshot struct {
	Scope     Scope             `json:"scope"`
	FetchedAt time.Time         `json:"fetched_at"`
	Items     []FeeSnapshotItem `json:"items"`
}

// ByASIN indexa los items por ASIN para lookup en detector y reconciliador.
func (f *FeeSnapshot) ByASIN() map[string]FeeSnapshotItem {
	if f == nil {
		return map[string]FeeSnapshotItem{}
	}
	m := make(map[string]FeeSnapshotItem, len(f.Items))
	for _, it := range f.Items {
		m[it.ASIN] = it
	}
	return m
}
