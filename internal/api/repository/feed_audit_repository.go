package repository

import (
	"context"

	"tradex/internal/entity"

	"gorm.io/gorm"
)

// FeedAuditRepository covers the ingestion side of the catalog: the audit
// set of processed feed files and the batched commit of a parsed run.
type FeedAuditRepository interface {
	FindProcessedFiles(ctx context.Context, candidates []string) ([]string, error)
	CommitBatch(ctx context.Context, stocks []entity.Stock, audits []entity.FeedFileAudit) error
}

// NewFeedAuditRepository creates a new GORM-based feed audit repository.
func NewFeedAuditRepository(db *gorm.DB) FeedAuditRepository {
	return &feedAuditRepository{db: db}
}

type feedAuditRepository struct {
	db *gorm.DB
}

// FindProcessedFiles returns the subset of candidate file names that
// already have an audit record, in one batched membership query.
func (r *feedAuditRepository) FindProcessedFiles(ctx context.Context, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	var processed []string
	err := r.db.WithContext(ctx).
		Model(&entity.FeedFileAudit{}).
		Where("file_name IN ?", candidates).
		Pluck("file_name", &processed).Error
	if err != nil {
		return nil, translate(err)
	}
	return processed, nil
}

// CommitBatch inserts the price observations and their audit records in a
// single transaction. Either both land or neither does, so a committed
// observation can never be left without its audit record.
func (r *feedAuditRepository) CommitBatch(ctx context.Context, stocks []entity.Stock, audits []entity.FeedFileAudit) error {
	if len(stocks) == 0 && len(audits) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(stocks) > 0 {
			if err := tx.CreateInBatches(stocks, 1000).Error; err != nil {
				return err
			}
		}
		if len(audits) > 0 {
			if err := tx.CreateInBatches(audits, 1000).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}
