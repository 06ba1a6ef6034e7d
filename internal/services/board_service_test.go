package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alx-zhu/one-task-manager/internal/board"
	"github.com/alx-zhu/one-task-manager/internal/models"
)

// In-memory fakes standing in for the Postgres repositories.

type fakeTaskRepo struct {
	tasks        map[string]*models.Task
	patchBatches [][]board.TaskPatch
}

func newFakeTaskRepo(tasks ...*models.Task) *fakeTaskRepo {
	m := make(map[string]*models.Task)
	for _, t := range tasks {
		m[t.ID] = t
	}
	return &fakeTaskRepo{tasks: m}
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) List(_ context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if filter.BucketID != nil && t.BucketID != *filter.BucketID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) ApplyPatches(_ context.Context, patches []board.TaskPatch) error {
	if len(patches) == 0 {
		return nil
	}
	r.patchBatches = append(r.patchBatches, patches)
	for _, p := range patches {
		t, ok := r.tasks[p.TaskID]
		if !ok {
			continue
		}
		if p.BucketID != nil {
			t.BucketID = *p.BucketID
		}
		t.OrderInBucket = p.OrderInBucket
	}
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id string, to models.TaskStatus) error {
	if t, ok := r.tasks[id]; ok {
		t.Status = to
	}
	return nil
}

func (r *fakeTaskRepo) ListDueForReminder(_ context.Context, _ time.Time, _ int) ([]models.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) SetReminderSent(_ context.Context, id string, at time.Time) error {
	if t, ok := r.tasks[id]; ok {
		t.ReminderSentAt = &at
	}
	return nil
}

type fakeBucketRepo struct {
	buckets map[string]*models.Bucket
	deleted []string
}

func newFakeBucketRepo(buckets ...*models.Bucket) *fakeBucketRepo {
	m := make(map[string]*models.Bucket)
	for _, b := range buckets {
		m[b.ID] = b
	}
	return &fakeBucketRepo{buckets: m}
}

func (r *fakeBucketRepo) Store(_ context.Context, bucket *models.Bucket) error {
	r.buckets[bucket.ID] = bucket
	return nil
}

func (r *fakeBucketRepo) FindByID(_ context.Context, id string) (*models.Bucket, error) {
	b, ok := r.buckets[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBucketRepo) List(_ context.Context, ownerID string) ([]models.Bucket, error) {
	var out []models.Bucket
	for _, b := range r.buckets {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBucketRepo) Update(_ context.Context, bucket *models.Bucket) error {
	cp := *bucket
	r.buckets[bucket.ID] = &cp
	return nil
}

func (r *fakeBucketRepo) UpdateLimit(_ context.Context, id string, limit models.Limit) error {
	if b, ok := r.buckets[id]; ok {
		b.Limit = limit
	}
	return nil
}

func (r *fakeBucketRepo) ApplyOrderPatches(_ context.Context, patches []board.BucketPatch) error {
	for _, p := range patches {
		if b, ok := r.buckets[p.BucketID]; ok {
			b.Order = p.Order
		}
	}
	return nil
}

func (r *fakeBucketRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.buckets, id)
	return nil
}

const testOwner = "owner-1"

func bucketFixture(id string, order int, limit models.Limit) *models.Bucket {
	return &models.Bucket{ID: id, OwnerID: testOwner, Name: "bucket " + id, Limit: limit, Order: order}
}

func taskFixture(id, bucketID string, order int) *models.Task {
	return &models.Task{
		ID: id, OwnerID: testOwner, BucketID: bucketID, Title: "task " + id,
		Status: models.StatusNotStarted, Priority: models.PriorityMedium, OrderInBucket: order,
	}
}

func TestBoardService_MoveTask_RejectsFullBucket(t *testing.T) {
	buckets := newFakeBucketRepo(
		bucketFixture("b1", 0, models.Unbounded()),
		bucketFixture("b2", 1, models.Capped(1)),
	)
	tasks := newFakeTaskRepo(
		taskFixture("t1", "b1", 0),
		taskFixture("t2", "b2", 0),
	)
	svc := NewBoardService(buckets, tasks)

	err := svc.MoveTask(context.Background(), testOwner, "t1", "b2", "")
	require.Error(t, err)

	var capErr *board.NoCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Empty(t, tasks.patchBatches, "a rejected move must not touch the store")
	assert.Equal(t, "b1", tasks.tasks["t1"].BucketID)
}

func TestBoardService_MoveTask_AppliesOneBatch(t *testing.T) {
	buckets := newFakeBucketRepo(
		bucketFixture("b1", 0, models.Unbounded()),
		bucketFixture("b2", 1, models.Unbounded()),
	)
	tasks := newFakeTaskRepo(
		taskFixture("t1", "b1", 0),
		taskFixture("t2", "b1", 1),
		taskFixture("t3", "b2", 0),
	)
	svc := NewBoardService(buckets, tasks)

	require.NoError(t, svc.MoveTask(context.Background(), testOwner, "t1", "b2", ""))
	require.Len(t, tasks.patchBatches, 1, "move must be a single batch")

	assert.Equal(t, "b2", tasks.tasks["t1"].BucketID)
	assert.Equal(t, 1, tasks.tasks["t1"].OrderInBucket)
	assert.Equal(t, 0, tasks.tasks["t2"].OrderInBucket)
}

func TestBoardService_ReorderTask_AcrossBucketsBecomesMove(t *testing.T) {
	buckets := newFakeBucketRepo(
		bucketFixture("b1", 0, models.Unbounded()),
		bucketFixture("b2", 1, models.Unbounded()),
	)
	tasks := newFakeTaskRepo(
		taskFixture("t1", "b1", 0),
		taskFixture("t2", "b2", 0),
	)
	svc := NewBoardService(buckets, tasks)

	require.NoError(t, svc.ReorderTask(context.Background(), testOwner, "t1", "t2"))
	assert.Equal(t, "b2", tasks.tasks["t1"].BucketID)
	assert.Equal(t, 0, tasks.tasks["t1"].OrderInBucket)
	assert.Equal(t, 1, tasks.tasks["t2"].OrderInBucket)
}

func TestBoardService_DeleteBucket_RelocatesAndCompactsOrder(t *testing.T) {
	buckets := newFakeBucketRepo(
		bucketFixture("b1", 0, models.Unbounded()),
		bucketFixture("b2", 1, models.Capped(5)),
		bucketFixture("b3", 2, models.Unbounded()),
	)
	tasks := newFakeTaskRepo(
		taskFixture("t1", "b1", 0),
		taskFixture("t2", "b2", 0),
		taskFixture("t3", "b2", 1),
	)
	svc := NewBoardService(buckets, tasks)

	target, err := svc.DeleteBucket(context.Background(), testOwner, "b2")
	require.NoError(t, err)
	assert.Equal(t, "b1", target)

	// Relocated tasks append after b1's existing task, in order.
	assert.Equal(t, "b1", tasks.tasks["t2"].BucketID)
	assert.Equal(t, 1, tasks.tasks["t2"].OrderInBucket)
	assert.Equal(t, "b1", tasks.tasks["t3"].BucketID)
	assert.Equal(t, 2, tasks.tasks["t3"].OrderInBucket)

	assert.Equal(t, []string{"b2"}, buckets.deleted)
	assert.Equal(t, 1, buckets.buckets["b3"].Order, "bucket order must stay dense after delete")
}

func TestBoardService_DeleteBucket_RejectedBeforeAnyWrite(t *testing.T) {
	buckets := newFakeBucketRepo(bucketFixture("b1", 0, models.Unbounded()))
	tasks := newFakeTaskRepo(taskFixture("t1", "b1", 0))
	svc := NewBoardService(buckets, tasks)

	_, err := svc.DeleteBucket(context.Background(), testOwner, "b1")
	require.Error(t, err)

	var ruleErr *board.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Empty(t, buckets.deleted)
	assert.Empty(t, tasks.patchBatches)
}

func TestBoardService_CompleteTask_LeavesBoardAndCompacts(t *testing.T) {
	buckets := newFakeBucketRepo(bucketFixture("b1", 0, models.Unbounded()))
	tasks := newFakeTaskRepo(
		taskFixture("t1", "b1", 0),
		taskFixture("t2", "b1", 1),
		taskFixture("t3", "b1", 2),
	)
	svc := NewBoardService(buckets, tasks)

	require.NoError(t, svc.CompleteTask(context.Background(), testOwner, "t1"))

	assert.Equal(t, models.StatusCompleted, tasks.tasks["t1"].Status)
	assert.Empty(t, tasks.tasks["t1"].BucketID)
	assert.Equal(t, 0, tasks.tasks["t2"].OrderInBucket)
	assert.Equal(t, 1, tasks.tasks["t3"].OrderInBucket)
}

func TestBoardService_UncompleteTask_ResolvesPlacement(t *testing.T) {
	buckets := newFakeBucketRepo(
		bucketFixture("b1", 0, models.Capped(1)),
		bucketFixture("b2", 1, models.Unbounded()),
	)
	done := taskFixture("t1", "", 0)
	done.Status = models.StatusCompleted
	tasks := newFakeTaskRepo(
		done,
		taskFixture("t2", "b1", 0),
		taskFixture("t3", "b2", 0),
	)
	svc := NewBoardService(buckets, tasks)

	placement, err := svc.UncompleteTask(context.Background(), testOwner, "t1")
	require.NoError(t, err)

	// b1 is full, so the resolver lands on b2 after its existing task.
	assert.Equal(t, "b2", placement.BucketID)
	assert.Equal(t, 1, placement.OrderInBucket)
	assert.Equal(t, "b2", tasks.tasks["t1"].BucketID)
	assert.Equal(t, models.StatusNotStarted, tasks.tasks["t1"].Status)
}

func TestBoardService_UncompleteTask_RequiresCompletedStatus(t *testing.T) {
	buckets := newFakeBucketRepo(bucketFixture("b1", 0, models.Unbounded()))
	tasks := newFakeTaskRepo(taskFixture("t1", "b1", 0))
	svc := NewBoardService(buckets, tasks)

	_, err := svc.UncompleteTask(context.Background(), testOwner, "t1")
	require.Error(t, err)

	var ruleErr *board.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "Task is not completed", ruleErr.Reason)
}

func TestBoardService_Board_SeedsDefaultBuckets(t *testing.T) {
	buckets := newFakeBucketRepo()
	tasks := newFakeTaskRepo()
	svc := NewBoardService(buckets, tasks)

	snap, err := svc.Board(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, snap, 2)

	assert.Equal(t, "The ONE Thing", snap[0].Name)
	assert.True(t, snap[0].IsOneThing)
	assert.Equal(t, models.Capped(1), snap[0].Limit)
	assert.Equal(t, 0, snap[0].Order)

	assert.Equal(t, "Tasks", snap[1].Name)
	assert.False(t, snap[1].Limit.IsSet())
}
