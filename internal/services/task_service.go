// internal/services/task_service.go
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

// NewTask carries the caller-supplied fields for task creation. BucketID
// is a preference: when that bucket is full the placement resolver picks
// the first bucket with room instead.
type NewTask struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Tags        []string
	DueDate     *time.Time
	BucketID    string
}

// TaskUpdate carries partial task edits; nil fields stay untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
	Tags        *[]string
	DueDate     *time.Time
	ClearDue    bool
}

// TaskService defines the interface for single-task business logic.
// Anything that renumbers more than one record goes through BoardService.
type TaskService interface {
	Create(ctx context.Context, ownerID string, req NewTask) (*models.Task, *board.Placement, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Task, error)
	List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, ownerID, id string, req TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type taskService struct {
	tasks   repositories.TaskRepository
	buckets repositories.BucketRepository
}

func NewTaskService(tasks repositories.TaskRepository, buckets repositories.BucketRepository) TaskService {
	return &taskService{tasks: tasks, buckets: buckets}
}

func (s *taskService) Create(ctx context.Context, ownerID string, req NewTask) (*models.Task, *board.Placement, error) {
	buckets, err := s.buckets.List(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	existing, err := s.tasks.List(ctx, ownerID, models.TaskFilter{})
	if err != nil {
		return nil, nil, err
	}
	snap := board.Hydrate(buckets, existing)

	placement, err := board.FindTargetBucketWithCapacity(1, snap, board.PlacementOptions{
		PreferredBucketID: req.BucketID,
	})
	if err != nil {
		return nil, nil, err
	}

	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !req.Priority.Valid() {
		return nil, nil, fmt.Errorf("invalid priority: %s", req.Priority)
	}

	now := time.Now()
	task := &models.Task{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		BucketID:      placement.BucketID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        models.StatusNotStarted,
		Priority:      req.Priority,
		Tags:          req.Tags,
		DueDate:       req.DueDate,
		OrderInBucket: placement.OrderInBucket,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.tasks.Store(ctx, task); err != nil {
		return nil, nil, err
	}
	return task, &placement, nil
}

func (s *taskService) GetByID(ctx context.Context, ownerID, id string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil || task.OwnerID != ownerID {
		return nil, nil
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	return s.tasks.List(ctx, ownerID, filter)
}

func (s *taskService) Update(ctx context.Context, ownerID, id string, req TaskUpdate) (*models.Task, error) {
	task, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, fmt.Errorf("invalid priority: %s", *req.Priority)
		}
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
		// Completing or reviving a task changes bucket membership and is
		// BoardService's job.
		if *req.Status == models.StatusCompleted || task.Status == models.StatusCompleted {
			return nil, &board.RuleError{Reason: "Use the complete/uncomplete endpoints to change completion"}
		}
		task.Status = *req.Status
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.ClearDue {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, id string) error {
	task, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	// Close the gap the task leaves behind before removing the record.
	if task.BucketID != "" {
		buckets, err := s.buckets.List(ctx, ownerID)
		if err != nil {
			return err
		}
		existing, err := s.tasks.List(ctx, ownerID, models.TaskFilter{})
		if err != nil {
			return err
		}
		snap := board.Hydrate(buckets, existing)
		if b := findBucketIn(snap, task.BucketID); b != nil {
			if err := s.tasks.ApplyPatches(ctx, board.CompactBucket(*b, id)); err != nil {
				return err
			}
		}
	}
	return s.tasks.Delete(ctx, id)
}
