package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
	"github.com/abhi-28-key/abhimusickeys-server/internal/sqlinline"
)

// EntitlementStorePG implements domain.EntitlementStore on PostgreSQL, one
// JSONB document per user.
type EntitlementStorePG struct {
	sql infra.SQLExecutor
}

// NewEntitlementStore creates a new EntitlementStorePG.
func NewEntitlementStore(sql infra.SQLExecutor) *EntitlementStorePG {
	return &EntitlementStorePG{sql: sql}
}

// Get performs the point lookup by uid. Returns domain.ErrNotFound when the
// user has no document yet.
func (r *EntitlementStorePG) Get(ctx context.Context, uid string) (*domain.EntitlementRecord, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectEntitlement, uid)
	var (
		doc       []byte
		updatedAt time.Time
	)
	if err := row.Scan(&doc, &updatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load entitlement %s: %w", uid, err)
	}
	var rec domain.EntitlementRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("decode entitlement %s: %w", uid, err)
	}
	rec.UID = uid
	rec.UpdatedAt = updatedAt
	return &rec, nil
}

// GrantPlan merges the purchase flags for plan into the user's document.
// The SQL merge is monotonic and key-wise on purchaseStatus.
func (r *EntitlementStorePG) GrantPlan(ctx context.Context, uid string, plan domain.Plan, sub *domain.Subscription) error {
	patch := domain.GrantPatch(plan, sub)
	if patch == nil {
		return nil
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode grant patch: %w", err)
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QMergeEntitlement, uid, raw); err != nil {
		return fmt.Errorf("merge entitlement %s: %w", uid, err)
	}
	return nil
}

// ListAll streams every entitlement document, for the migration sweep.
func (r *EntitlementStorePG) ListAll(ctx context.Context) ([]domain.EntitlementRecord, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListEntitlements)
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}
	defer rows.Close()
	var records []domain.EntitlementRecord
	for rows.Next() {
		var (
			uid string
			doc []byte
		)
		if err := rows.Scan(&uid, &doc); err != nil {
			return nil, err
		}
		var rec domain.EntitlementRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			continue
		}
		rec.UID = uid
		records = append(records, rec)
	}
	return records, rows.Err()
}

var _ domain.EntitlementStore = (*EntitlementStorePG)(nil)
