package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
)

var _ repository.ReimbursementRepository = (*ReimbursementRepo)(nil)

// ReimbursementRepo persistencia del set de reclamos por scope.
//
// ReplaceAll implementa el write-whole del merge: borra el set del scope,
// inserta la lista mergeada completa y upserta el resumen, todo en una
// transacción. Un lector concurrente ve el estado anterior o el nuevo, nunca
// uno intermedio.
type ReimbursementRepo struct {
	pool *pgxpool.Pool
}

// NewReimbursementRepository construye el adaptador.
func NewReimbursementRepository(pool *pgxpool.Pool) *ReimbursementRepo {
	return &ReimbursementRepo{pool: pool}
}

const reimbursementColumns = `reimbursement_id, asin, sku, fnsku, reimbursement_type, amount, currency,
		quantity, reason_code, reason_description, case_id, status, approval_date,
		reimbursement_date, discovery_date, expiry_date, days_to_deadline, is_automated,
		product_cost, shipment_id, shipment_name`

// GetByScope devuelve todos los reclamos del scope.
func (r *ReimbursementRepo) GetByScope(ctx context.Context, scope entity.Scope) ([]entity.ReimbursementRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM reimbursements
		WHERE user_id = $1 AND country = $2 AND region = $3`, reimbursementColumns)
	return r.queryRecords(ctx, query, scope.UserID, scope.Country, scope.Region)
}

// Query devuelve los reclamos del scope aplicando filtros opcionales.
// El rango de fechas filtra por la fecha efectiva (reimbursement_date con
// fallback a discovery_date), igual que las ventanas del resumen.
func (r *ReimbursementRepo) Query(ctx context.Context, scope entity.Scope, filter repository.ClaimFilter) ([]entity.ReimbursementRecord, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT %s FROM reimbursements
		WHERE user_id = $1 AND country = $2 AND region = $3`, reimbursementColumns)
	args := []any{scope.UserID, scope.Country, scope.Region}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		fmt.Fprintf(&sb, " AND reimbursement_type = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, " AND COALESCE(reimbursement_date, discovery_date) >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, " AND COALESCE(reimbursement_date, discovery_date) <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY COALESCE(reimbursement_date, discovery_date) DESC NULLS LAST")

	return r.queryRecords(ctx, sb.String(), args...)
}

// ReplaceAll persiste la lista mergeada completa junto con el resumen.
func (r *ReimbursementRepo) ReplaceAll(ctx context.Context, scope entity.Scope, records []entity.ReimbursementRecord, summary *entity.ClaimSummary) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `DELETE FROM reimbursements WHERE user_id = $1 AND country = $2 AND region = $3`,
		scope.UserID, scope.Country, scope.Region)
	if err != nil {
		return fmt.Errorf("delete reimbursements: %w", err)
	}

	insert := fmt.Sprintf(`INSERT INTO reimbursements (user_id, country, region, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		reimbursementColumns)
	for _, rec := range records {
		_, err = tx.Exec(ctx, insert,
			scope.UserID, scope.Country, scope.Region,
			rec.ReimbursementID, rec.ASIN, rec.SKU, rec.FNSKU, string(rec.ReimbursementType),
			rec.Amount, rec.Currency, rec.Quantity, rec.ReasonCode, rec.ReasonDescription,
			rec.CaseID, string(rec.Status), rec.ApprovalDate, rec.ReimbursementDate,
			rec.DiscoveryDate, rec.ExpiryDate, rec.DaysToDeadline, rec.IsAutomated,
			rec.ProductCost, rec.ShipmentID, rec.ShipmentName,
		)
		if err != nil {
			return fmt.Errorf("insert reimbursement %s: %w", rec.ReimbursementID, err)
		}
	}

	if summary != nil {
		doc, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO claim_summaries (user_id, country, region, summary, computed_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, country, region)
			DO UPDATE SET summary = EXCLUDED.summary, computed_at = EXCLUDED.computed_at`,
			scope.UserID, scope.Country, scope.Region, doc, summary.ComputedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert summary: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetSummary devuelve el resumen persistido del scope, o nil si no existe.
func (r *ReimbursementRepo) GetSummary(ctx context.Context, scope entity.Scope) (*entity.ClaimSummary, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT summary FROM claim_summaries
		WHERE user_id = $1 AND country = $2 AND region = $3`,
		scope.UserID, scope.Country, scope.Region,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get summary: %w", err)
	}
	var summary entity.ClaimSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	return &summary, nil
}

func (r *ReimbursementRepo) queryRecords(ctx context.Context, query string, args ...any) ([]entity.ReimbursementRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reimbursements: %w", err)
	}
	defer rows.Close()

	var list []entity.ReimbursementRecord
	for rows.Next() {
		var (
			rec         entity.ReimbursementRecord
			rtype, stat string
		)
		err := rows.Scan(
			&rec.ReimbursementID, &rec.ASIN, &rec.SKU, &rec.FNSKU, &rtype,
			&rec.Amount, &rec.Currency, &rec.Quantity, &rec.ReasonCode, &rec.ReasonDescription,
			&rec.CaseID, &stat, &rec.ApprovalDate, &rec.ReimbursementDate,
			&rec.DiscoveryDate, &rec.ExpiryDate, &rec.DaysToDeadline, &rec.IsAutomated,
			&rec.ProductCost, &rec.ShipmentID, &rec.ShipmentName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reimbursement: %w", err)
		}
		rec.ReimbursementType = entity.ReimbursementType(rtype)
		rec.Status = entity.ClaimStatus(stat)
		list = append(list, rec)
	}
	return list, rows.Err()
}
