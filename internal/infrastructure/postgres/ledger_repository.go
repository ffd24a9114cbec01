package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
)

var _ repository.LedgerSnapshotRepository = (*LedgerSnapshotRepo)(nil)

// LedgerSnapshotRepo persistencia append-only de snapshots del ledger.
// Las filas van como JSONB: el snapshot es un documento inmutable que solo se
// lee entero para agregar; no hay consultas por fila.
type LedgerSnapshotRepo struct {
	q Querier
}

// NewLedgerSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerSnapshotRepository(q Querier) *LedgerSnapshotRepo {
	return &LedgerSnapshotRepo{q: q}
}

// Save inserta un snapshot nuevo. Nunca actualiza los anteriores.
func (r *LedgerSnapshotRepo) Save(ctx context.Context, snapshot *entity.LedgerSnapshot) error {
	rows, err := json.Marshal(snapshot.Rows)
	if err != nil {
		return fmt.Errorf("marshal ledger rows: %w", err)
	}
	query := `
		INSERT INTO ledger_snapshots (id, user_id, country, region, fetched_at, rows)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(ctx, query,
		snapshot.ID, snapshot.Scope.UserID, snapshot.Scope.Country, snapshot.Scope.Region,
		snapshot.FetchedAt, rows,
	)
	if err != nil {
		return fmt.Errorf("insert ledger snapshot: %w", err)
	}
	return nil
}

// GetLatest devuelve el snapshot más reciente del scope, o nil si nunca se
// ingestó el reporte.
func (r *LedgerSnapshotRepo) GetLatest(ctx context.Context, scope entity.Scope) (*entity.LedgerSnapshot, error) {
	query := `
		SELECT id, fetched_at, rows
		FROM ledger_snapshots
		WHERE user_id = $1 AND country = $2 AND region = $3
		ORDER BY fetched_at DESC LIMIT 1`
	var (
		snap entity.LedgerSnapshot
		raw  []byte
	)
	err := r.q.QueryRow(ctx, query, scope.UserID, scope.Country, scope.Region).Scan(
		&snap.ID, &snap.FetchedAt, &raw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest ledger snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap.Rows); err != nil {
		return nil, fmt.Errorf("unmarshal ledger rows: %w", err)
	}
	snap.Scope = scope
	return &snap, nil
}
