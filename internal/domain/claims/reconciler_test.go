package claims_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

var umbralSubpago = decimal.NewFromFloat(0.4)

func totalsDe(asin string, lost, found int64) claims.LedgerTotals {
	return claims.LedgerTotals{
		Lost:  map[string]decimal.Decimal{asin: decimal.NewFromInt(lost)},
		Found: map[string]decimal.Decimal{asin: decimal.NewFromInt(found)},
		Meta:  map[string]claims.ASINMeta{asin: {SKU: "SKU-" + asin, FNSKU: "FN-" + asin}},
	}
}

// Escenario de referencia: lost=10, found=2, reembolsadas=3,
// precio=20, fees=5 → discrepancia 5, perUnit 15, esperado 75.
func TestReconcileLostInventory_EscenarioBase(t *testing.T) {
	in := claims.ReconcileInput{
		Totals: totalsDe("B001", 10, 2),
		Reimbursed: []entity.ReimbursementRecord{{
			ASIN:       "B001",
			ReasonCode: "Lost_warehouse",
			Quantity:   3,
			Amount:     decimal.NewFromInt(45), // 15 por unidad: pagado completo
			Status:     entity.StatusApproved,
		}},
		Fees: map[string]entity.FeeSnapshotItem{
			"B001": {ASIN: "B001", SalesPrice: decimal.NewFromInt(20), TotalFee: decimal.NewFromInt(5), Currency: "USD"},
		},
		UnderpaidThreshold: umbralSubpago,
	}

	items := claims.ReconcileLostInventory(in)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "B001", it.ASIN)
	assert.Equal(t, "SKU-B001", it.SKU)
	assert.True(t, decimal.NewFromInt(5).Equal(it.DiscrepancyUnits), "10-2-3")
	assert.True(t, decimal.NewFromInt(15).Equal(it.ReimbursementPerUnit))
	assert.True(t, decimal.NewFromInt(75).Equal(it.ExpectedAmount))
	assert.False(t, it.IsUnderpaid, "15/unidad no está por debajo del 40% de 15")
	assert.Equal(t, "USD", it.Currency)
}

// Invariante: discrepancias ≤ 0 nunca se emiten.
func TestReconcileLostInventory_DiscrepanciaNoPositivaSeDescarta(t *testing.T) {
	in := claims.ReconcileInput{
		Totals: totalsDe("B002", 5, 3),
		Reimbursed: []entity.ReimbursementRecord{{
			ASIN: "B002", ReasonCode: "Lost_warehouse", Quantity: 2,
			Amount: decimal.NewFromInt(10), Status: entity.StatusApproved,
		}},
		UnderpaidThreshold: umbralSubpago,
	}
	// 5 − 3 − 2 = 0 → nada que emitir
	assert.Empty(t, claims.ReconcileLostInventory(in))

	// found > lost tampoco emite
	in2 := claims.ReconcileInput{Totals: totalsDe("B003", 1, 4), UnderpaidThreshold: umbralSubpago}
	assert.Empty(t, claims.ReconcileLostInventory(in2))
}

// Regla de pago insuficiente: perUnit=10, pagado 3.9/unidad < 4.0 → subpago;
// pagado 4.0/unidad exacto → no.
func TestReconcileLostInventory_ReglaDeSubpago(t *testing.T) {
	build := func(amountPerUnit float64) claims.ReconcileInput {
		qty := int64(3)
		return claims.ReconcileInput{
			Totals: totalsDe("B004", 10, 0),
			Reimbursed: []entity.ReimbursementRecord{{
				ASIN:       "B004",
				ReasonCode: "Lost_warehouse",
				Quantity:   qty,
				Amount:     decimal.NewFromFloat(amountPerUnit).Mul(decimal.NewFromInt(qty)),
				Status:     entity.StatusApproved,
			}},
			Fees: map[string]entity.FeeSnapshotItem{
				"B004": {ASIN: "B004", SalesPrice: decimal.NewFromInt(12), TotalFee: decimal.NewFromInt(2)},
			},
			UnderpaidThreshold: umbralSubpago,
		}
	}

	items := claims.ReconcileLostInventory(build(3.9))
	require.Len(t, items, 1)
	assert.True(t, items[0].IsUnderpaid, "3.9 < 10×0.4")
	// (10 − 3.9) × 3 = 18.3
	assert.True(t, decimal.NewFromFloat(18.3).Equal(items[0].UnderpaidExpectedAmount),
		"diferencia reclamable, got %s", items[0].UnderpaidExpectedAmount)

	items = claims.ReconcileLostInventory(build(4.0))
	require.Len(t, items, 1)
	assert.False(t, items[0].IsUnderpaid, "4.0 no es menor que 10×0.4")
}

// Sin entrada en el fee snapshot el baseline es cero: el item se emite con
// unidades pero monto esperado cero (precio y fees por defecto 0).
func TestReconcileLostInventory_SinFeeSnapshot(t *testing.T) {
	in := claims.ReconcileInput{Totals: totalsDe("B005", 4, 1), UnderpaidThreshold: umbralSubpago}
	items := claims.ReconcileLostInventory(in)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(3).Equal(items[0].DiscrepancyUnits))
	assert.True(t, items[0].ExpectedAmount.IsZero())
}

// Invariante: expectedAmount = discrepancyUnits × reimbursementPerUnit, exacto.
func TestReconcileLostInventory_InvarianteMontoEsperado(t *testing.T) {
	in := claims.ReconcileInput{
		Totals: totalsDe("B006", 13, 4),
		Fees: map[string]entity.FeeSnapshotItem{
			"B006": {ASIN: "B006", SalesPrice: decimal.NewFromFloat(19.99), TotalFee: decimal.NewFromFloat(4.35)},
		},
		UnderpaidThreshold: umbralSubpago,
	}
	items := claims.ReconcileLostInventory(in)
	require.Len(t, items, 1)
	want := items[0].DiscrepancyUnits.Mul(items[0].ReimbursementPerUnit)
	assert.True(t, want.Equal(items[0].ExpectedAmount))
}

// El valor precalculado del feed tiene prioridad sobre salesPrice − fees.
func TestReconcileLostInventory_PerUnitPrecalculado(t *testing.T) {
	in := claims.ReconcileInput{
		Totals: totalsDe("B007", 2, 0),
		Fees: map[string]entity.FeeSnapshotItem{
			"B007": {
				ASIN:                 "B007",
				SalesPrice:           decimal.NewFromInt(20),
				TotalFee:             decimal.NewFromInt(5),
				ReimbursementPerUnit: decimal.NewFromInt(11),
			},
		},
		UnderpaidThreshold: umbralSubpago,
	}
	items := claims.ReconcileLostInventory(in)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(11).Equal(items[0].ReimbursementPerUnit))
	assert.True(t, decimal.NewFromInt(22).Equal(items[0].ExpectedAmount))
}

func TestFilterLostWarehouse(t *testing.T) {
	records := []entity.ReimbursementRecord{
		{ReimbursementID: "a", ReasonCode: "Lost_warehouse"},
		{ReimbursementID: "b", ReasonCode: "Damaged_warehouse"},
		{ReimbursementID: "c", ReimbursementType: entity.TypeLost},
	}
	got := claims.FilterLostWarehouse(records)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ReimbursementID)
	assert.Equal(t, "c", got[1].ReimbursementID)
}
