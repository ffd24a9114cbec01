package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo persistencia del catálogo mínimo por scope.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de catálogo.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Replace sustituye el catálogo completo del scope en una transacción.
func (r *ProductRepo) Replace(ctx context.Context, scope entity.Scope, products []entity.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `DELETE FROM products WHERE user_id = $1 AND country = $2 AND region = $3`,
		scope.UserID, scope.Country, scope.Region)
	if err != nil {
		return fmt.Errorf("delete products: %w", err)
	}

	query := `
		INSERT INTO products (user_id, country, region, sku, asin, title, price, cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, p := range products {
		_, err = tx.Exec(ctx, query,
			scope.UserID, scope.Country, scope.Region,
			p.SKU, p.ASIN, p.Title, p.Price, p.Cost, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.SKU, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// List devuelve el catálogo del scope.
func (r *ProductRepo) List(ctx context.Context, scope entity.Scope) ([]entity.Product, error) {
	query := `
		SELECT sku, asin, title, price, cost, updated_at
		FROM products
		WHERE user_id = $1 AND country = $2 AND region = $3
		ORDER BY sku`
	rows, err := r.pool.Query(ctx, query, scope.UserID, scope.Country, scope.Region)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.SKU, &p.ASIN, &p.Title, &p.Price, &p.Cost, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
