package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alx-zhu/one-task-manager/internal/board"
	"github.com/alx-zhu/one-task-manager/internal/models"
)

type BucketRepository interface {
	Store(ctx context.Context, bucket *models.Bucket) error
	FindByID(ctx context.Context, id string) (*models.Bucket, error)
	List(ctx context.Context, ownerID string) ([]models.Bucket, error)
	Update(ctx context.Context, bucket *models.Bucket) error
	UpdateLimit(ctx context.Context, id string, limit models.Limit) error
	ApplyOrderPatches(ctx context.Context, patches []board.BucketPatch) error
	Delete(ctx context.Context, id string) error
}

type bucketRepository struct {
	db *sql.DB
}

func NewBucketRepository(db *sql.DB) BucketRepository {
	return &bucketRepository{db: db}
}

const bucketColumns = `id, owner_id, name, task_limit, position, is_one_thing, created_at, updated_at`

func scanBucket(row interface{ Scan(...interface{}) error }) (*models.Bucket, error) {
	b := &models.Bucket{}
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.Limit, &b.Order, &b.IsOneThing,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bucketRepository) Store(ctx context.Context, bucket *models.Bucket) error {
	query := `
		INSERT INTO buckets (id, owner_id, name, task_limit, position, is_one_thing, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.ExecContext(ctx, query,
		bucket.ID, bucket.OwnerID, bucket.Name, bucket.Limit, bucket.Order,
		bucket.IsOneThing, bucket.CreatedAt, bucket.UpdatedAt,
	)
	return err
}

func (r *bucketRepository) FindByID(ctx context.Context, id string) (*models.Bucket, error) {
	query := `SELECT ` + bucketColumns + ` FROM buckets WHERE id = $1`
	b, err := scanBucket(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *bucketRepository) List(ctx context.Context, ownerID string) ([]models.Bucket, error) {
	query := `SELECT ` + bucketColumns + ` FROM buckets WHERE owner_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.Bucket
	for rows.Next() {
		b, err := scanBucket(rows)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, *b)
	}
	return buckets, rows.Err()
}

func (r *bucketRepository) Update(ctx context.Context, bucket *models.Bucket) error {
	query := `
		UPDATE buckets SET name=$1, task_limit=$2, position=$3, updated_at=$4
		WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query,
		bucket.Name, bucket.Limit, bucket.Order, bucket.UpdatedAt, bucket.ID,
	)
	return err
}

func (r *bucketRepository) UpdateLimit(ctx context.Context, id string, limit models.Limit) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE buckets SET task_limit=$1, updated_at=NOW() WHERE id=$2`, limit, id)
	return err
}

func (r *bucketRepository) ApplyOrderPatches(ctx context.Context, patches []board.BucketPatch) error {
	if len(patches) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, p := range patches {
		if _, err := tx.ExecContext(ctx,
			`UPDATE buckets SET position=$1, updated_at=NOW() WHERE id=$2`,
			p.Order, p.BucketID); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply order patch for bucket %s: %w", p.BucketID, err)
		}
	}
	return tx.Commit()
}

func (r *bucketRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM buckets WHERE id = $1`, id)
	return err
}
