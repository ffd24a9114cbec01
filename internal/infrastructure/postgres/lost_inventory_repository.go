package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
)

var _ repository.LostInventoryRepository = (*LostInventoryRepo)(nil)

// LostInventoryRepo persistencia replace-on-write del resultado de la
// reconciliación de inventario perdido.
type LostInventoryRepo struct {
	pool *pgxpool.Pool
}

// NewLostInventoryRepository construye el adaptador.
func NewLostInventoryRepository(pool *pgxpool.Pool) *LostInventoryRepo {
	return &LostInventoryRepo{pool: pool}
}

// Replace sustituye el set completo del scope en una transacción.
func (r *LostInventoryRepo) Replace(ctx context.Context, scope entity.Scope, items []entity.LostInventoryItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `DELETE FROM lost_inventory WHERE user_id = $1 AND country = $2 AND region = $3`,
		scope.UserID, scope.Country, scope.Region)
	if err != nil {
		return fmt.Errorf("delete lost inventory: %w", err)
	}

	query := `
		INSERT INTO lost_inventory (user_id, country, region, asin, sku, fnsku,
			lost_units, found_units, reimbursed_units, discrepancy_units,
			sales_price, fees, reimbursement_per_unit, expected_amount, currency,
			is_underpaid, amount_per_unit, underpaid_expected_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	for _, it := range items {
		_, err = tx.Exec(ctx, query,
			scope.UserID, scope.Country, scope.Region,
			it.ASIN, it.SKU, it.FNSKU,
			it.LostUnits, it.FoundUnits, it.ReimbursedUnits, it.DiscrepancyUnits,
			it.SalesPrice, it.Fees, it.ReimbursementPerUnit, it.ExpectedAmount, it.Currency,
			it.IsUnderpaid, it.AmountPerUnit, it.UnderpaidExpectedAmount,
		)
		if err != nil {
			return fmt.Errorf("insert lost inventory %s: %w", it.ASIN, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// List devuelve el resultado de la última reconciliación del scope, ordenado
// por monto esperado descendente (orden de persistencia del reconciliador).
func (r *LostInventoryRepo) List(ctx context.Context, scope entity.Scope) ([]entity.LostInventoryItem, error) {
	query := `
		SELECT asin, sku, fnsku, lost_units, found_units, reimbursed_units, discrepancy_units,
			sales_price, fees, reimbursement_per_unit, expected_amount, currency,
			is_underpaid, amount_per_unit, underpaid_expected_amount
		FROM lost_inventory
		WHERE user_id = $1 AND country = $2 AND region = $3
		ORDER BY expected_amount DESC, asin`
	rows, err := r.pool.Query(ctx, query, scope.UserID, scope.Country, scope.Region)
	if err != nil {
		return nil, fmt.Errorf("list lost inventory: %w", err)
	}
	defer rows.Close()

	var list []entity.LostInventoryItem
	for rows.Next() {
		var it entity.LostInventoryItem
		err := rows.Scan(
			&it.ASIN, &it.SKU, &it.FNSKU, &it.LostUnits, &it.FoundUnits, &it.ReimbursedUnits,
			&it.DiscrepancyUnits, &it.SalesPrice, &it.Fees, &it.ReimbursementPerUnit,
			&it.ExpectedAmount, &it.Currency, &it.IsUnderpaid, &it.AmountPerUnit,
			&it.UnderpaidExpectedAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lost inventory: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
