// Package reports parsers de los reportes planos que exporta Seller Central.
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
)

var _ recovery.LedgerReportParser = (*LedgerTSVParser)(nil)

// LedgerTSVParser parsea el reporte Inventory Ledger tal como lo descarga el
// seller: TSV codificado en Windows-1252 (no UTF-8), primera fila de headers.
// Las columnas se resuelven por nombre, no por posición: Amazon reordena y
// agrega columnas entre versiones del reporte.
type LedgerTSVParser struct{}

// NewLedgerTSVParser construye el parser.
func NewLedgerTSVParser() *LedgerTSVParser {
	return &LedgerTSVParser{}
}

// Parse lee el TSV completo y devuelve filas crudas (todos los campos como
// string; la normalización numérica es responsabilidad de la ingesta).
func (p *LedgerTSVParser) Parse(r io.Reader) ([]dto.RawLedgerRow, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder()))
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // filas cortas al final del reporte son normales

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("reporte vacío")
		}
		return nil, fmt.Errorf("leer header: %w", err)
	}
	idx := headerIndex(header)

	var rows []dto.RawLedgerRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila %d: %w", len(rows)+2, err)
		}
		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		rows = append(rows, dto.RawLedgerRow{
			Date:              field("date"),
			ASIN:              field("asin"),
			FNSKU:             field("fnsku"),
			MSKU:              field("msku"),
			Disposition:       field("disposition"),
			StartingBalance:   field("starting warehouse balance"),
			Receipts:          field("receipts"),
			CustomerShipments: field("customer shipments"),
			CustomerReturns:   field("customer returns"),
			Found:             field("found"),
			Lost:              field("lost"),
			Damaged:           field("damaged"),
			Disposed:          field("disposed"),
			UnknownEvents:     field("unknown events"),
			EndingBalance:     field("ending warehouse balance"),
			Location:          field("location"),
		})
	}
	return rows, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		// El primer header puede traer BOM si el reporte pasó por Excel.
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}
