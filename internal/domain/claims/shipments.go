package claims

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// shipmentDateToken token de fecha embebido en el campo de fecha/nombre del
// feed de envíos: MM/DD/YYYY con hora HH:mm opcional.
var shipmentDateToken = regexp.MustCompile(`\d{2}/\d{2}/\d{4}( \d{2}:\d{2})?`)

// DetectorInput entradas del detector de faltantes de envíos entrantes.
// Los envíos ya vienen filtrados a cerrados + dentro de la ventana de análisis
// por el colaborador upstream.
type DetectorInput struct {
	Shipments       []entity.Shipment
	Products        []entity.Product
	Fees            map[string]entity.FeeSnapshotItem // por ASIN; puede ser nil
	Now             time.Time
	ClaimWindowDays int // ventana de reclamo de Amazon (60 días)
}

// DetectorResult reclamos potenciales más los descartes por fila que el caller
// debe loggear (PartialDataSkip: se omite la fila, el batch continúa).
type DetectorResult struct {
	Claims           []entity.ReimbursementRecord
	SkippedSKUs      []string // items sin producto en el catálogo
	SkippedShipments []string // envíos sin token de fecha parseable
}

// DetectShipmentDiscrepancies compara cantidad enviada vs recibida por SKU
// dentro de cada envío y emite un reclamo potencial (tipo INBOUND_SHIPMENT)
// por cada faltante aún reclamable.
//
// Resolución del reembolso por unidad, en orden de preferencia: valor
// precalculado del fee snapshot → salesPrice − fees del snapshot → precio de
// lista del producto con fees cero asumidos.
//
// Envíos cuyo deadline ya venció (daysRemaining ≤ 0) se excluyen en silencio:
// un reclamo muerto no se muestra.
func DetectShipmentDiscrepancies(in DetectorInput) DetectorResult {
	var out DetectorResult

	productBySKU := make(map[string]entity.Product, len(in.Products))
	for _, p := range in.Products {
		productBySKU[p.SKU] = p
	}

	for _, shipment := range in.Shipments {
		shipmentDate, ok := ParseShipmentDate(shipment.ShipmentDate)
		if !ok {
			out.SkippedShipments = append(out.SkippedShipments, shipment.ShipmentID)
			continue
		}

		ageInDays := int(in.Now.Sub(shipmentDate).Hours() / 24)
		daysRemaining := in.ClaimWindowDays - ageInDays
		if daysRemaining <= 0 {
			// Vencido antes de ser reclamable; se omite sin reportar.
			continue
		}
		expiry := shipmentDate.AddDate(0, 0, in.ClaimWindowDays)

		for _, item := range shipment.Items {
			discrepancy := item.QuantityShipped - item.QuantityReceived
			if discrepancy <= 0 {
				continue
			}

			product, found := productBySKU[item.SKU]
			if !found {
				out.SkippedSKUs = append(out.SkippedSKUs, item.SKU)
				continue
			}

			perUnit := product.Price
			currency := ""
			if fee, ok := in.Fees[product.ASIN]; ok {
				perUnit = fee.PerUnit()
				currency = fee.Currency
			}

			qty := decimal.NewFromInt(discrepancy)
			discovery := in.Now
			expiryDate := expiry

			out.Claims = append(out.Claims, entity.ReimbursementRecord{
				ASIN:              product.ASIN,
				SKU:               item.SKU,
				FNSKU:             item.FNSKU,
				ReimbursementType: entity.TypeInboundShipment,
				Amount:            qty.Mul(perUnit),
				Currency:          currency,
				Quantity:          discrepancy,
				ReasonCode:        "inbound_shipment_shortage",
				ReasonDescription: "Unidades enviadas no recibidas en el envío entrante",
				Status:            entity.StatusPotential,
				DiscoveryDate:     &discovery,
				ExpiryDate:        &expiryDate,
				DaysToDeadline:    daysRemaining,
				IsAutomated:       false,
				ProductCost:       product.Cost,
				ShipmentID:        shipment.ShipmentID,
				ShipmentName:      shipment.ShipmentName,
			})
		}
	}

	return out
}

// ParseShipmentDate extrae y parsea el token (MM/DD/YYYY[ HH:mm]) del campo
// de fecha del feed. La ingesta lo reutiliza para el filtro de ventana.
func ParseShipmentDate(raw string) (time.Time, bool) {
	token := shipmentDateToken.FindString(raw)
	if token == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"01/02/2006 15:04", "01/02/2006"} {
		if t, err := time.Parse(layout, token); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
