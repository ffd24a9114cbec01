package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo persistencia replace-on-write de envíos entrantes cerrados.
// Una fila por envío con las líneas como JSONB.
type ShipmentRepo struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository construye el adaptador.
func NewShipmentRepository(pool *pgxpool.Pool) *ShipmentRepo {
	return &ShipmentRepo{pool: pool}
}

// Replace sustituye el set completo de envíos del scope en una transacción.
func (r *ShipmentRepo) Replace(ctx context.Context, scope entity.Scope, shipments []entity.Shipment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `DELETE FROM shipments WHERE user_id = $1 AND country = $2 AND region = $3`,
		scope.UserID, scope.Country, scope.Region)
	if err != nil {
		return fmt.Errorf("delete shipments: %w", err)
	}

	query := `
		INSERT INTO shipments (shipment_id, user_id, country, region, shipment_name, shipment_date, status, items)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, s := range shipments {
		items, err := json.Marshal(s.Items)
		if err != nil {
			return fmt.Errorf("marshal shipment items: %w", err)
		}
		_, err = tx.Exec(ctx, query,
			s.ShipmentID, scope.UserID, scope.Country, scope.Region,
			s.ShipmentName, s.ShipmentDate, s.Status, items,
		)
		if err != nil {
			return fmt.Errorf("insert shipment %s: %w", s.ShipmentID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetClosed lista los envíos del scope (la ingesta ya retiene solo cerrados).
func (r *ShipmentRepo) GetClosed(ctx context.Context, scope entity.Scope) ([]entity.Shipment, error) {
	query := `
		SELECT shipment_id, shipment_name, shipment_date, status, items
		FROM shipments
		WHERE user_id = $1 AND country = $2 AND region = $3`
	rows, err := r.pool.Query(ctx, query, scope.UserID, scope.Country, scope.Region)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var list []entity.Shipment
	for rows.Next() {
		var (
			s   entity.Shipment
			raw []byte
		)
		if err := rows.Scan(&s.ShipmentID, &s.ShipmentName, &s.ShipmentDate, &s.Status, &raw); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		if err := json.Unmarshal(raw, &s.Items); err != nil {
			return nil, fmt.Errorf("unmarshal shipment items: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
