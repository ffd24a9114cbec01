package claims_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

var detectorNow = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

// shipmentDatedDaysAgo devuelve el campo de fecha del feed con el token
// MM/DD/YYYY correspondiente a hace n días.
func shipmentDatedDaysAgo(n int) string {
	return detectorNow.AddDate(0, 0, -n).Format("01/02/2006")
}

func TestDetectShipmentDiscrepancies_FaltanteConFallbackAPrecio(t *testing.T) {
	// Envío de hace 10 días: SKU "X" con 100 enviadas y 95 recibidas.
	// Sin entrada en el fee snapshot → fallback al precio de lista (8).
	in := claims.DetectorInput{
		Shipments: []entity.Shipment{{
			ShipmentID:   "S1",
			ShipmentName: "FBA (05/2026)",
			ShipmentDate: shipmentDatedDaysAgo(10),
			Items: []entity.ShipmentItem{
				{SKU: "X", FNSKU: "FN-X", QuantityShipped: 100, QuantityReceived: 95},
			},
		}},
		Products:        []entity.Product{{SKU: "X", ASIN: "B00X", Price: decimal.NewFromInt(8)}},
		Now:             detectorNow,
		ClaimWindowDays: 60,
	}

	res := claims.DetectShipmentDiscrepancies(in)
	require.Len(t, res.Claims, 1)

	c := res.Claims[0]
	assert.Equal(t, entity.StatusPotential, c.Status)
	assert.Equal(t, entity.TypeInboundShipment, c.ReimbursementType)
	assert.False(t, c.IsAutomated)
	assert.Equal(t, int64(5), c.Quantity)
	assert.True(t, decimal.NewFromInt(40).Equal(c.Amount), "expected = 5 × 8, got %s", c.Amount)
	assert.Equal(t, 50, c.DaysToDeadline)
	assert.Equal(t, "S1", c.ShipmentID)
	require.NotNil(t, c.ExpiryDate)
	assert.Equal(t, detectorNow.AddDate(0, 0, 50), *c.ExpiryDate, "expiry = fecha de envío + 60 días")
}

func TestDetectShipmentDiscrepancies_PrefiereFeeSnapshot(t *testing.T) {
	in := claims.DetectorInput{
		Shipments: []entity.Shipment{{
			ShipmentID:   "S2",
			ShipmentDate: shipmentDatedDaysAgo(5),
			Items:        []entity.ShipmentItem{{SKU: "Y", QuantityShipped: 10, QuantityReceived: 7}},
		}},
		Products: []entity.Product{{SKU: "Y", ASIN: "B00Y", Price: decimal.NewFromInt(99)}},
		Fees: map[string]entity.FeeSnapshotItem{
			"B00Y": {ASIN: "B00Y", SalesPrice: decimal.NewFromInt(20), TotalFee: decimal.NewFromInt(5), Currency: "USD"},
		},
		Now:             detectorNow,
		ClaimWindowDays: 60,
	}

	res := claims.DetectShipmentDiscrepancies(in)
	require.Len(t, res.Claims, 1)
	// perUnit = 20 − 5, no el precio de lista
	assert.True(t, decimal.NewFromInt(45).Equal(res.Claims[0].Amount), "3 × 15")
	assert.Equal(t, "USD", res.Claims[0].Currency)
}

// Un envío fechado exactamente en el límite de la ventana (60 días) da
// daysRemaining=0 y se excluye; uno de 59 días da daysRemaining=1 y entra.
func TestDetectShipmentDiscrepancies_BordeDeVentana(t *testing.T) {
	mk := func(id string, daysAgo int) entity.Shipment {
		return entity.Shipment{
			ShipmentID:   id,
			ShipmentDate: shipmentDatedDaysAgo(daysAgo),
			Items:        []entity.ShipmentItem{{SKU: "X", QuantityShipped: 2, QuantityReceived: 0}},
		}
	}
	in := claims.DetectorInput{
		Shipments:       []entity.Shipment{mk("VENCIDO", 60), mk("VIGENTE", 59)},
		Products:        []entity.Product{{SKU: "X", ASIN: "B00X", Price: decimal.NewFromInt(1)}},
		Now:             detectorNow,
		ClaimWindowDays: 60,
	}

	res := claims.DetectShipmentDiscrepancies(in)
	require.Len(t, res.Claims, 1)
	assert.Equal(t, "VIGENTE", res.Claims[0].ShipmentID)
	assert.Equal(t, 1, res.Claims[0].DaysToDeadline)
}

// SKU sin producto en el catálogo: se omite la fila y se reporta, el batch sigue.
func TestDetectShipmentDiscrepancies_SKUDesconocidoSeOmite(t *testing.T) {
	in := claims.DetectorInput{
		Shipments: []entity.Shipment{{
			ShipmentID:   "S3",
			ShipmentDate: shipmentDatedDaysAgo(3),
			Items: []entity.ShipmentItem{
				{SKU: "NO-EXISTE", QuantityShipped: 5, QuantityReceived: 0},
				{SKU: "X", QuantityShipped: 5, QuantityReceived: 4},
			},
		}},
		Products:        []entity.Product{{SKU: "X", ASIN: "B00X", Price: decimal.NewFromInt(2)}},
		Now:             detectorNow,
		ClaimWindowDays: 60,
	}

	res := claims.DetectShipmentDiscrepancies(in)
	require.Len(t, res.Claims, 1)
	assert.Equal(t, []string{"NO-EXISTE"}, res.SkippedSKUs)
}

// Sin faltante (recibido ≥ enviado) no hay reclamo.
func TestDetectShipmentDiscrepancies_SinFaltante(t *testing.T) {
	in := claims.DetectorInput{
		Shipments: []entity.Shipment{{
			ShipmentID:   "S4",
			ShipmentDate: shipmentDatedDaysAgo(1),
			Items:        []entity.ShipmentItem{{SKU: "X", QuantityShipped: 5, QuantityReceived: 6}},
		}},
		Products:        []entity.Product{{SKU: "X", ASIN: "B00X", Price: decimal.NewFromInt(2)}},
		Now:             detectorNow,
		ClaimWindowDays: 60,
	}
	assert.Empty(t, claims.DetectShipmentDiscrepancies(in).Claims)
}

// Fecha sin token parseable: el envío completo se omite y se reporta.
func TestDetectShipmentDiscrepancies_FechaInvalida(t *testing.T) {
	in := claims.DetectorInput{
		Shipments: []entity.Shipment{{
			ShipmentID:   "S5",
			ShipmentDate: "sin fecha",
			Items:        []entity.ShipmentItem{{SKU: "X", QuantityShipped: 5, QuantityReceived: 0}},
		}},
		Products:        []entity.Product{{SKU: "X", ASIN: "B00X", Price: decimal.NewFromInt(2)}},
		Now:             detectorNow,
		ClaimWindowDays: 60,
	}
	res := claims.DetectShipmentDiscrepancies(in)
	assert.Empty(t, res.Claims)
	assert.Equal(t, []string{"S5"}, res.SkippedShipments)
}

// El token puede venir con hora embebida en un texto más largo.
func TestDetectShipmentDiscrepancies_TokenConHora(t *testing.T) {
	raw := "Creado el " + detectorNow.AddDate(0, 0, -2).Format("01/02/2006") + " 14:30 (UTC)"
	in := claims.DetectorInput{
		Shipments: []entity.Shipment{{
			ShipmentID:   "S6",
			ShipmentDate: raw,
			Items:        []entity.ShipmentItem{{SKU: "X", QuantityShipped: 3, QuantityReceived: 1}},
		}},
		Products:        []entity.Product{{SKU: "X", ASIN: "B00X", Price: decimal.NewFromInt(2)}},
		Now:             detectorNow,
		ClaimWindowDays: 60,
	}
	res := claims.DetectShipmentDiscrepancies(in)
	require.Len(t, res.Claims, 1)
	// La edad se trunca a días completos: 2 días menos 14h30 son 1 día.
	assert.Equal(t, 59, res.Claims[0].DaysToDeadline)
}
