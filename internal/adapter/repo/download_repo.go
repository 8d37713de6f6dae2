package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
	"github.com/abhi-28-key/abhimusickeys-server/internal/sqlinline"
)

// DownloadRepositoryPG implements domain.DownloadRepository backed by PostgreSQL.
type DownloadRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDownloadRepository creates a new DownloadRepositoryPG.
func NewDownloadRepository(sql infra.SQLExecutor) *DownloadRepositoryPG {
	return &DownloadRepositoryPG{sql: sql}
}

// List returns files, optionally filtered by category.
func (r *DownloadRepositoryPG) List(ctx context.Context, category string) ([]domain.DownloadFile, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDownloads, category)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()
	var files []domain.DownloadFile
	for rows.Next() {
		f, err := scanDownload(rows.Scan)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

// GetByID fetches one file by UUID.
func (r *DownloadRepositoryPG) GetByID(ctx context.Context, id string) (*domain.DownloadFile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDownloadByID, id)
	f, err := scanDownload(row.Scan)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load download %s: %w", id, err)
	}
	return f, nil
}

// GetByKey fetches one file by its storage key, for the file-serving route.
func (r *DownloadRepositoryPG) GetByKey(ctx context.Context, storageKey string) (*domain.DownloadFile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDownloadByKey, storageKey)
	f, err := scanDownload(row.Scan)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load download by key %s: %w", storageKey, err)
	}
	return f, nil
}

// Insert records an admin-uploaded file and returns its id.
func (r *DownloadRepositoryPG) Insert(ctx context.Context, f *domain.DownloadFile) (string, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDownload,
		f.Name, f.Category, f.StorageKey, f.MIME, f.SizeBytes, string(f.RequiredPlan))
	var id string
	if err := row.Scan(&id); err != nil {
		return "", fmt.Errorf("insert download: %w", err)
	}
	return id, nil
}

func scanDownload(scan func(dest ...any) error) (*domain.DownloadFile, error) {
	var (
		f            domain.DownloadFile
		requiredPlan string
		createdAt    time.Time
	)
	if err := scan(&f.ID, &f.Name, &f.Category, &f.StorageKey, &f.MIME, &f.SizeBytes, &requiredPlan, &createdAt); err != nil {
		return nil, err
	}
	f.RequiredPlan = domain.Plan(requiredPlan)
	f.CreatedAt = createdAt
	return &f, nil
}

var _ domain.DownloadRepository = (*DownloadRepositoryPG)(nil)
