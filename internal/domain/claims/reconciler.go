package claims

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// ReconcileInput entradas del reconciliador, todas ya acotadas a un scope.
// Reimbursed debe venir filtrado a reembolsos de inventario perdido en bodega
// (ver IsLostWarehouse); el caller aplica el filtro sobre el set completo.
type ReconcileInput struct {
	Totals             LedgerTotals
	Reimbursed         []entity.ReimbursementRecord
	Fees               map[string]entity.FeeSnapshotItem // por ASIN; puede ser nil
	UnderpaidThreshold decimal.Decimal                   // fracción (0.4): bajo este ratio el pago se marca insuficiente
}

// ReconcileLostInventory cruza el agregado del ledger con los reembolsos ya
// emitidos y el snapshot de fees para producir, por ASIN, las unidades de
// discrepancia pendientes y el monto esperado.
//
// Para la unión de ASINs presentes en lost, found o reembolsados:
//
//	discrepancyUnits = lostUnits − foundUnits − reimbursedUnits
//
// Discrepancias ≤ 0 no se emiten nunca. Además marca pago insuficiente cuando
// el reembolso existente pagó por unidad menos que threshold × valor real.
func ReconcileLostInventory(in ReconcileInput) []entity.LostInventoryItem {
	reimbursedUnits := make(map[string]decimal.Decimal)
	recordByASIN := make(map[string]entity.ReimbursementRecord)
	for _, r := range in.Reimbursed {
		if r.ASIN == "" {
			continue
		}
		reimbursedUnits[r.ASIN] = reimbursedUnits[r.ASIN].Add(decimal.NewFromInt(r.Quantity))
		// Para el chequeo de pago insuficiente basta un registro con cantidad > 0.
		if _, ok := recordByASIN[r.ASIN]; !ok && r.Quantity > 0 {
			recordByASIN[r.ASIN] = r
		}
	}

	asins := make(map[string]struct{})
	for asin := range in.Totals.Lost {
		asins[asin] = struct{}{}
	}
	for asin := range in.Totals.Found {
		asins[asin] = struct{}{}
	}
	for asin := range reimbursedUnits {
		asins[asin] = struct{}{}
	}

	items := make([]entity.LostInventoryItem, 0, len(asins))
	for asin := range asins {
		lost := in.Totals.Lost[asin]
		found := in.Totals.Found[asin]
		reimbursed := reimbursedUnits[asin]

		discrepancy := lost.Sub(found).Sub(reimbursed)
		if discrepancy.LessThanOrEqual(decimal.Zero) {
			continue
		}

		var salesPrice, fees, perUnit decimal.Decimal
		currency := ""
		if fee, ok := in.Fees[asin]; ok {
			salesPrice = fee.SalesPrice
			fees = fee.TotalFee
			perUnit = fee.PerUnit()
			currency = fee.Currency
		}

		item := entity.LostInventoryItem{
			ASIN:                 asin,
			LostUnits:            lost,
			FoundUnits:           found,
			ReimbursedUnits:      reimbursed,
			DiscrepancyUnits:     discrepancy,
			SalesPrice:           salesPrice,
			Fees:                 fees,
			ReimbursementPerUnit: perUnit,
			ExpectedAmount:       discrepancy.Mul(perUnit),
			Currency:             currency,
		}

		if meta, ok := in.Totals.Meta[asin]; ok {
			item.SKU = meta.SKU
			item.FNSKU = meta.FNSKU
		}

		if record, ok := recordByASIN[asin]; ok {
			if item.SKU == "" {
				item.SKU = record.SKU
			}
			if item.Currency == "" {
				item.Currency = record.Currency
			}
			qty := decimal.NewFromInt(record.Quantity)
			amountPerUnit := record.Amount.Div(qty)
			item.AmountPerUnit = amountPerUnit
			if amountPerUnit.LessThan(perUnit.Mul(in.UnderpaidThreshold)) {
				item.IsUnderpaid = true
				item.UnderpaidExpectedAmount = perUnit.Sub(amountPerUnit).Mul(qty)
			}
		}

		items = append(items, item)
	}

	// Orden estable para salida determinista: mayor monto esperado primero,
	// ASIN como desempate.
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ExpectedAmount.Equal(items[j].ExpectedAmount) {
			return items[i].ExpectedAmount.GreaterThan(items[j].ExpectedAmount)
		}
		return items[i].ASIN < items[j].ASIN
	})

	return items
}

// FilterLostWarehouse extrae del set completo los reembolsos clasificados como
// inventario perdido en bodega. Entrada para ReconcileLostInventory.
func FilterLostWarehouse(records []entity.ReimbursementRecord) []entity.ReimbursementRecord {
	out := make([]entity.ReimbursementRecord, 0, len(records))
	for _, r := range records {
		if IsLostWarehouse(r) {
			out = append(out, r)
		}
	}
	return out
}
