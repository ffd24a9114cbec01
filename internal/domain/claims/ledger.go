package claims

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// ASINMeta identificadores first-seen de un ASIN dentro del snapshot.
type ASINMeta struct {
	SKU   string
	FNSKU string
}

// LedgerTotals agregado del ledger por ASIN: unidades perdidas y encontradas
// acumuladas, más metadatos de identificación.
type LedgerTotals struct {
	Lost  map[string]decimal.Decimal
	Found map[string]decimal.Decimal
	Meta  map[string]ASINMeta
}

// Empty indica si el agregado no tiene ningún ASIN.
func (t LedgerTotals) Empty() bool {
	return len(t.Lost) == 0 && len(t.Found) == 0
}

// AggregateLedger acumula lost/found por ASIN sobre las filas del snapshot
// más reciente. La suma es conmutativa: el resultado no depende del orden de
// las filas. La normalización numérica (string ausente/no parseable → 0) ya
// ocurrió en el borde de ingesta.
func AggregateLedger(rows []entity.LedgerRow) LedgerTotals {
	totals := LedgerTotals{
		Lost:  make(map[string]decimal.Decimal),
		Found: make(map[string]decimal.Decimal),
		Meta:  make(map[string]ASINMeta),
	}
	for _, row := range rows {
		if row.ASIN == "" {
			continue
		}
		totals.Lost[row.ASIN] = totals.Lost[row.ASIN].Add(row.Lost)
		totals.Found[row.ASIN] = totals.Found[row.ASIN].Add(row.Found)
		if _, seen := totals.Meta[row.ASIN]; !seen {
			totals.Meta[row.ASIN] = ASINMeta{SKU: row.MSKU, FNSKU: row.FNSKU}
		}
	}
	return totals
}
