package repo

import (
	"context"
	"fmt"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
	"github.com/abhi-28-key/abhimusickeys-server/internal/sqlinline"
)

// PurchaseRepositoryPG implements domain.PurchaseRepository backed by PostgreSQL.
type PurchaseRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPurchaseRepository creates a new PurchaseRepositoryPG.
func NewPurchaseRepository(sql infra.SQLExecutor) *PurchaseRepositoryPG {
	return &PurchaseRepositoryPG{sql: sql}
}

// CreateOrder records a freshly created gateway order.
func (r *PurchaseRepositoryPG) CreateOrder(ctx context.Context, o *domain.PurchaseOrder) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPurchaseOrder,
		o.OrderID, o.Receipt, o.UID, string(o.Plan), o.Amount, o.Currency)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetOrder fetches an order by gateway order id.
func (r *PurchaseRepositoryPG) GetOrder(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectPurchaseOrder, orderID)
	var (
		o      domain.PurchaseOrder
		plan   string
		status string
	)
	if err := row.Scan(&o.OrderID, &o.Receipt, &o.UID, &plan, &o.Amount, &o.Currency, &status, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load purchase order %s: %w", orderID, err)
	}
	o.Plan = domain.Plan(plan)
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

// MarkPaid transitions an order to paid exactly once.
func (r *PurchaseRepositoryPG) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkPurchaseOrderPaid, orderID, paymentID)
	if err != nil {
		return fmt.Errorf("mark order paid %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateOperation
	}
	return nil
}

var _ domain.PurchaseRepository = (*PurchaseRepositoryPG)(nil)
