package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/alx-zhu/one-task-manager/internal/board"
	"github.com/alx-zhu/one-task-manager/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error

	// ApplyPatches applies a full engine patch batch in one transaction,
	// in the order the engine emitted it.
	ApplyPatches(ctx context.Context, patches []board.TaskPatch) error
	UpdateStatus(ctx context.Context, id string, to models.TaskStatus) error

	ListDueForReminder(ctx context.Context, now time.Time, limit int) ([]models.Task, error)
	SetReminderSent(ctx context.Context, id string, at time.Time) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, owner_id, bucket_id, title, description, status, priority, tags,
       due_date, reminder_sent_at, order_in_bucket, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (*models.Task, error) {
	t := &models.Task{}
	var bucketID sql.NullString
	err := row.Scan(
		&t.ID, &t.OwnerID, &bucketID, &t.Title, &t.Description, &t.Status, &t.Priority,
		pq.Array(&t.Tags), &t.DueDate, &t.ReminderSentAt, &t.OrderInBucket,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.BucketID = bucketID.String
	return t, nil
}

func nullableBucketID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

// tags column is NOT NULL; a nil slice must store as an empty array.
func tagArray(tags []string) interface{} {
	if tags == nil {
		tags = []string{}
	}
	return pq.Array(tags)
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			id, owner_id, bucket_id, title, description, status, priority, tags,
			due_date, order_in_bucket, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerID, nullableBucketID(task.BucketID),
		task.Title, task.Description, task.Status, task.Priority, tagArray(task.Tags),
		task.DueDate, task.OrderInBucket, task.CreatedAt, task.UpdatedAt,
	)
	return err
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *taskRepository) List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`

	conditions := []string{}
	args := []interface{}{ownerID}
	argID := 2

	if filter.BucketID != nil {
		conditions = append(conditions, fmt.Sprintf("bucket_id = $%d", argID))
		args = append(args, *filter.BucketID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY bucket_id NULLS LAST, order_in_bucket"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			bucket_id=$1, title=$2, description=$3, status=$4, priority=$5,
			tags=$6, due_date=$7, order_in_bucket=$8, updated_at=$9
		WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query,
		nullableBucketID(task.BucketID), task.Title, task.Description, task.Status,
		task.Priority, tagArray(task.Tags), task.DueDate, task.OrderInBucket,
		task.UpdatedAt, task.ID,
	)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) ApplyPatches(ctx context.Context, patches []board.TaskPatch) error {
	if len(patches) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, p := range patches {
		if p.BucketID != nil {
			_, err = tx.ExecContext(ctx,
				`UPDATE tasks SET bucket_id=$1, order_in_bucket=$2, updated_at=NOW() WHERE id=$3`,
				nullableBucketID(*p.BucketID), p.OrderInBucket, p.TaskID)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE tasks SET order_in_bucket=$1, updated_at=NOW() WHERE id=$2`,
				p.OrderInBucket, p.TaskID)
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("apply patch for task %s: %w", p.TaskID, err)
		}
	}
	return tx.Commit()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, to models.TaskStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2`, to, id)
	return err
}

func (r *taskRepository) ListDueForReminder(ctx context.Context, now time.Time, limit int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE due_date IS NOT NULL
		  AND due_date <= $1
		  AND reminder_sent_at IS NULL
		  AND status <> $2
		ORDER BY due_date
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, now.Add(24*time.Hour), models.StatusCompleted, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) SetReminderSent(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET reminder_sent_at=$1, updated_at=NOW() WHERE id=$2`, at, id)
	return err
}
