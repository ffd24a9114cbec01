// Package recovery contiene los casos de uso del motor de recuperación de
// reembolsos FBA: reconciliación de inventario perdido, detección de faltantes
// de envíos, merge de reclamos, consultas de dashboard e ingesta de reportes.
package recovery

import (
	"context"
	"io"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// ScopeLocker exclusión mutua por scope alrededor del read-modify-write del
// set de reclamos. Dos corridas concurrentes del mismo scope no deben
// intercalar su lectura/escritura (el merge es write-whole-document).
type ScopeLocker interface {
	// Lock adquiere el lock del scope y devuelve la función de liberación.
	// Si otro proceso lo tiene, devuelve domain.ErrScopeLocked.
	Lock(ctx context.Context, scope entity.Scope) (release func(), err error)
}

// LedgerReportParser parser del reporte plano (TSV) de ledger de Amazon hacia
// filas crudas de ingesta. Implementado en infraestructura.
type LedgerReportParser interface {
	Parse(r io.Reader) ([]dto.RawLedgerRow, error)
}

// ClaimLetterGenerator genera la carta de reclamo en PDF para adjuntar a un
// caso de Amazon: reclamos potenciales abiertos del scope con totales.
type ClaimLetterGenerator interface {
	GenerateClaimLetter(ctx context.Context, scope entity.Scope, claims []entity.ReimbursementRecord, summary *entity.ClaimSummary) ([]byte, error)
}
