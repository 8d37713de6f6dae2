package domain

import "context"

// EntitlementStore is the remote source of truth for purchase flags: one
// document per user, point lookup by uid. Get returns ErrNotFound when the
// user has no document yet.
type EntitlementStore interface {
	Get(ctx context.Context, uid string) (*EntitlementRecord, error)
	// GrantPlan merges a purchase into the user's document. The merge is
	// monotonic: it only ever flips flags to true, never back.
	GrantPlan(ctx context.Context, uid string, plan Plan, sub *Subscription) error
}

// DownloadRepository lists and resolves downloadable files.
type DownloadRepository interface {
	List(ctx context.Context, category string) ([]DownloadFile, error)
	GetByID(ctx context.Context, id string) (*DownloadFile, error)
	GetByKey(ctx context.Context, storageKey string) (*DownloadFile, error)
	Insert(ctx context.Context, f *DownloadFile) (string, error)
}

// PurchaseRepository records payment orders so verification can match an
// order back to the plan it was created for.
type PurchaseRepository interface {
	CreateOrder(ctx context.Context, o *PurchaseOrder) error
	GetOrder(ctx context.Context, orderID string) (*PurchaseOrder, error)
	MarkPaid(ctx context.Context, orderID, paymentID string) error
}
