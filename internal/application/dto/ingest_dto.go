package dto

// DTOs de ingesta: los reportes de Amazon llegan con numéricos como string,
// posiblemente ausentes. La normalización (ausente/no parseable → 0) ocurre en
// el usecase de ingesta, antes de que el dato toque el dominio.

// RawLedgerRow una fila cruda del reporte ledger (TSV o JSON).
type RawLedgerRow struct {
	Date              string `json:"date"`
	ASIN              string `json:"asin"`
	FNSKU             string `json:"fnsku"`
	MSKU              string `json:"msku"`
	Disposition       string `json:"disposition"`
	StartingBalance   string `json:"starting_warehouse_balance"`
	Receipts          string `json:"receipts"`
	CustomerShipments string `json:"customer_shipments"`
	CustomerReturns   string `json:"customer_returns"`
	Found             string `json:"found"`
	Lost              string `json:"lost"`
	Damaged           string `json:"damaged"`
	Disposed          string `json:"disposed"`
	UnknownEvents     string `json:"unknown_events"`
	EndingBalance     string `json:"ending_warehouse_balance"`
	Location          string `json:"location"`
}

// IngestLedgerRequest cuerpo JSON de POST /api/reports/ledger.
type IngestLedgerRequest struct {
	Rows []RawLedgerRow `json:"rows"`
}

// RawFeeItem una entrada cruda del feed de precios/fees.
type RawFeeItem struct {
	ASIN                 string `json:"asin"`
	SKU                  string `json:"sku"`
	FNSKU                string `json:"fnsku"`
	SalesPrice           string `json:"sales_price"`
	TotalFee             string `json:"total_fee"`
	ReimbursementPerUnit string `json:"reimbursement_per_unit"`
	Currency             string `json:"currency"`
}

// IngestFeesRequest cuerpo de POST /api/reports/fees.
type IngestFeesRequest struct {
	Items []RawFeeItem `json:"items"`
}

// RawShipmentItem una línea cruda de envío entrante.
type RawShipmentItem struct {
	SKU              string `json:"sku"`
	FNSKU            string `json:"fnsku"`
	QuantityShipped  string `json:"quantity_shipped"`
	QuantityReceived string `json:"quantity_received"`
}

// RawShipment un envío crudo del feed de inbound shipments.
type RawShipment struct {
	ShipmentID   string            `json:"shipment_id"`
	ShipmentName string            `json:"shipment_name"`
	ShipmentDate string            `json:"shipment_date"`
	Status       string            `json:"status"`
	Items        []RawShipmentItem `json:"items"`
}

// IngestShipmentsRequest cuerpo de POST /api/reports/shipments.
type IngestShipmentsRequest struct {
	Shipments []RawShipment `json:"shipments"`
}

// RawReimbursement una fila cruda del reporte de reembolsos aprobados.
type RawReimbursement struct {
	ReimbursementID   string `json:"reimbursement_id"`
	ASIN              string `json:"asin"`
	SKU               string `json:"sku"`
	FNSKU             string `json:"fnsku"`
	Amount            string `json:"amount_total"`
	Currency          string `json:"currency_unit"`
	Quantity          string `json:"quantity_reimbursed_total"`
	ReasonCode        string `json:"reason"`
	ReasonDescription string `json:"reason_description"`
	CaseID            string `json:"case_id"`
	ApprovalDate      string `json:"approval_date"`
}

// IngestReimbursementsRequest cuerpo de POST /api/reports/reimbursements.
type IngestReimbursementsRequest struct {
	Records []RawReimbursement `json:"records"`
}

// ReplaceProductsRequest cuerpo de PUT /api/products.
type ReplaceProductsRequest struct {
	Products []RawProduct `json:"products"`
}

// RawProduct entrada cruda del catálogo.
type RawProduct struct {
	SKU   string `json:"sku"`
	ASIN  string `json:"asin"`
	Title string `json:"title"`
	Price string `json:"price"`
	Cost  string `json:"cost"`
}

// IngestResponse resultado de una ingesta.
type IngestResponse struct {
	Ingested int `json:"ingested"`
	Skipped  int `json:"skipped"`
}
