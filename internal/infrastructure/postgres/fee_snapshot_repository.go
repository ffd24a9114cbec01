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

var _ repository.FeeSnapshotRepository = (*FeeSnapshotRepo)(nil)

// FeeSnapshotRepo persistencia replace-on-write del snapshot de fees: un
// documento JSONB por scope.
type FeeSnapshotRepo struct {
	q Querier
}

// NewFeeSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeeSnapshotRepository(q Querier) *FeeSnapshotRepo {
	return &FeeSnapshotRepo{q: q}
}

// Replace sustituye el snapshot completo del scope (upsert).
func (r *FeeSnapshotRepo) Replace(ctx context.Context, snapshot *entity.FeeSnapshot) error {
	items, err := json.Marshal(snapshot.Items)
	if err != nil {
		return fmt.Errorf("marshal fee items: %w", err)
	}
	query := `
		INSERT INTO fee_snapshots (user_id, country, region, fetched_at, items)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, country, region)
		DO UPDATE SET fetched_at = EXCLUDED.fetched_at, items = EXCLUDED.items`
	_, err = r.q.Exec(ctx, query,
		snapshot.Scope.UserID, snapshot.Scope.Country, snapshot.Scope.Region,
		snapshot.FetchedAt, items,
	)
	if err != nil {
		return fmt.Errorf("upsert fee snapshot: %w", err)
	}
	return nil
}

// GetLatest devuelve el snapshot del scope, o nil si no existe.
func (r *FeeSnapshotRepo) GetLatest(ctx context.Context, scope entity.Scope) (*entity.FeeSnapshot, error) {
	query := `
		SELECT fetched_at, items
		FROM fee_snapshots
		WHERE user_id = $1 AND country = $2 AND region = $3`
	var (
		snap entity.FeeSnapshot
		raw  []byte
	)
	err := r.q.QueryRow(ctx, query, scope.UserID, scope.Country, scope.Region).Scan(
		&snap.FetchedAt, &raw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fee snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap.Items); err != nil {
		return nil, fmt.Errorf("unmarshal fee items: %w", err)
	}
	snap.Scope = scope
	return &snap, nil
}
