package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentItem una línea de un envío entrante a bodegas de Amazon.
type ShipmentItem struct {
	SKU              string `json:"sku"`
	FNSKU            string `json:"fnsku"`
	QuantityShipped  int64  `json:"quantity_shipped"`
	QuantityReceived int64  `json:"quantity_received"`
}

// Shipment un envío entrante (inbound). Solo se retienen envíos cerrados y
// dentro de la ventana de análisis; ese filtro lo aplica la capa de ingesta.
type Shipment struct {
	ShipmentID   string         `json:"shipment_id"`
	ShipmentName string         `json:"shipment_name"`
	ShipmentDate string         `json:"shipment_date"` // texto crudo del feed, con token (MM/DD/YYYY[ HH:mm]) embebido
	Status       string         `json:"status"`
	Items        []ShipmentItem `json:"items"`
}

// Product entrada mínima del catálogo por scope. El precio de lista es el
// fallback del detector cuando el ASIN no aparece en el fee snapshot; el costo
// alimenta updateProductCosts.
type Product struct {
	SKU       string          `json:"sku"`
	ASIN      string          `json:"asin"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	UpdatedAt time.Time       `json:"updated_at"`
}
