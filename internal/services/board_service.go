package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alx-zhu/one-task-manager/internal/board"
	"github.com/alx-zhu/one-task-manager/internal/models"
	"github.com/alx-zhu/one-task-manager/internal/repositories"
)

// BoardService owns every multi-record mutation on an owner's board. Each
// operation loads a fresh snapshot, runs the board rules over it, and only
// then applies the complete patch batch; a failed rule never reaches the
// store. The calling layer serializes mutations per owner.
type BoardService interface {
	Board(ctx context.Context, ownerID string) ([]models.Bucket, error)
	MoveTask(ctx context.Context, ownerID, taskID, targetBucketID, targetTaskID string) error
	ReorderTask(ctx context.Context, ownerID, activeTaskID, overTaskID string) error
	DeleteBucket(ctx context.Context, ownerID, bucketID string) (relocatedTo string, err error)
	CompleteTask(ctx context.Context, ownerID, taskID string) error
	UncompleteTask(ctx context.Context, ownerID, taskID string) (*board.Placement, error)
}

type boardService struct {
	buckets repositories.BucketRepository
	tasks   repositories.TaskRepository
}

func NewBoardService(buckets repositories.BucketRepository, tasks repositories.TaskRepository) BoardService {
	return &boardService{buckets: buckets, tasks: tasks}
}

// Default buckets seeded for an owner who has none yet.
const (
	oneThingBucketName = "The ONE Thing"
	defaultBucketName  = "Tasks"
)

func (s *boardService) snapshot(ctx context.Context, ownerID string) ([]models.Bucket, error) {
	buckets, err := s.buckets.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, ownerID, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return board.Hydrate(buckets, tasks), nil
}

func (s *boardService) Board(ctx context.Context, ownerID string) ([]models.Bucket, error) {
	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(snap) > 0 {
		return snap, nil
	}
	if err := s.seedDefaults(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, ownerID)
}

func (s *boardService) seedDefaults(ctx context.Context, ownerID string) error {
	now := time.Now()
	one := &models.Bucket{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       oneThingBucketName,
		Limit:      models.Capped(1),
		Order:      0,
		IsOneThing: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rest := &models.Bucket{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      defaultBucketName,
		Limit:     models.Unbounded(),
		Order:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.buckets.Store(ctx, one); err != nil {
		return err
	}
	return s.buckets.Store(ctx, rest)
}

func findOwnedTask(snap []models.Bucket, taskID string) (*models.Task, *models.Bucket) {
	for i := range snap {
		for j := range snap[i].Tasks {
			if snap[i].Tasks[j].ID == taskID {
				return &snap[i].Tasks[j], &snap[i]
			}
		}
	}
	return nil, nil
}

func (s *boardService) MoveTask(ctx context.Context, ownerID, taskID, targetBucketID, targetTaskID string) error {
	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return err
	}

	task, source := findOwnedTask(snap, taskID)
	if task == nil {
		return fmt.Errorf("task not found on board: %s", taskID)
	}
	target := findBucketIn(snap, targetBucketID)
	if target == nil {
		return &board.RuleError{Reason: "Bucket not found"}
	}

	if source.ID == target.ID {
		if targetTaskID == "" {
			return nil
		}
		return s.tasks.ApplyPatches(ctx, board.ReorderWithinBucket(*source, taskID, targetTaskID))
	}

	if !board.HasCapacity(*target, 1) {
		return &board.NoCapacityError{
			TaskCount: 1,
			Message:   fmt.Sprintf("%q is full", target.Name),
		}
	}

	return s.tasks.ApplyPatches(ctx, board.MoveBetweenBuckets(*source, *target, taskID, targetTaskID))
}

func (s *boardService) ReorderTask(ctx context.Context, ownerID, activeTaskID, overTaskID string) error {
	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return err
	}

	_, activeBucket := findOwnedTask(snap, activeTaskID)
	_, overBucket := findOwnedTask(snap, overTaskID)
	if activeBucket == nil || overBucket == nil {
		return fmt.Errorf("task not found on board")
	}
	if activeBucket.ID != overBucket.ID {
		// Dropping onto a task in another bucket is a move, not a reorder.
		return s.MoveTask(ctx, ownerID, activeTaskID, overBucket.ID, overTaskID)
	}

	return s.tasks.ApplyPatches(ctx, board.ReorderWithinBucket(*activeBucket, activeTaskID, overTaskID))
}

func (s *boardService) DeleteBucket(ctx context.Context, ownerID, bucketID string) (string, error) {
	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return "", err
	}

	targetID, err := board.CanDeleteBucketWithRelocation(bucketID, snap)
	if err != nil {
		return "", err
	}

	if targetID != "" {
		doomed := findBucketIn(snap, bucketID)
		target := findBucketIn(snap, targetID)
		patches := board.RelocateAll(doomed.Tasks, targetID, len(target.Tasks))
		if err := s.tasks.ApplyPatches(ctx, patches); err != nil {
			return "", err
		}
	}

	if err := s.buckets.Delete(ctx, bucketID); err != nil {
		return "", err
	}
	return targetID, s.buckets.ApplyOrderPatches(ctx, board.CompactBucketOrder(snap, bucketID))
}

func (s *boardService) CompleteTask(ctx context.Context, ownerID, taskID string) error {
	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return err
	}

	task, source := findOwnedTask(snap, taskID)
	if task == nil {
		return fmt.Errorf("task not found on board: %s", taskID)
	}

	// Completed tasks leave the board; the source bucket closes the gap.
	patches := board.CompactBucket(*source, taskID)
	offBoard := ""
	patches = append(patches, board.TaskPatch{TaskID: taskID, BucketID: &offBoard, OrderInBucket: 0})
	if err := s.tasks.ApplyPatches(ctx, patches); err != nil {
		return err
	}
	return s.tasks.UpdateStatus(ctx, taskID, models.StatusCompleted)
}

func (s *boardService) UncompleteTask(ctx context.Context, ownerID, taskID string) (*board.Placement, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.OwnerID != ownerID {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}
	if task.Status != models.StatusCompleted {
		return nil, &board.RuleError{Reason: "Task is not completed"}
	}

	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	placement, err := board.FindTargetBucketWithCapacity(1, snap, board.PlacementOptions{
		ErrMessage: "No bucket has room to bring this task back",
	})
	if err != nil {
		return nil, err
	}

	patches := board.RelocateAll([]models.Task{*task}, placement.BucketID, placement.OrderInBucket)
	if err := s.tasks.ApplyPatches(ctx, patches); err != nil {
		return nil, err
	}
	if err := s.tasks.UpdateStatus(ctx, taskID, models.StatusNotStarted); err != nil {
		return nil, err
	}
	return &placement, nil
}

func findBucketIn(buckets []models.Bucket, bucketID string) *models.Bucket {
	for i := range buckets {
		if buckets[i].ID == bucketID {
			return &buckets[i]
		}
	}
	return nil
}
