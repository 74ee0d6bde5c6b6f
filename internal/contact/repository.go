package contact

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"contact-service/common/metrics"

	"github.com/uptrace/bun"
)

const tableName = "contact_submissions"

type Repository interface {
	Create(ctx context.Context, submission *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, filter ListFilter) ([]Submission, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) Create(ctx context.Context, submission *Submission) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(submission).Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", tableName, time.Since(start), err)

	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Submission, error) {
	start := time.Now()
	submission := new(Submission)
	err := r.db.NewSelect().Model(submission).Where("submission_id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", tableName, time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Submission, error) {
	start := time.Now()
	submissions := make([]Submission, 0)
	query := r.db.NewSelect().
		Model(&submissions).
		Order("created_at DESC").
		Limit(filter.Limit)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	err := query.Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", tableName, time.Since(start), err)

	return submissions, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status string) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model((*Submission)(nil)).
		Set("status = ?", status).
		Where("submission_id = ?", id).
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", tableName, time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
