package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alx-zhu/one-task-manager/internal/board"
	"github.com/alx-zhu/one-task-manager/internal/models"
	"github.com/alx-zhu/one-task-manager/internal/repositories"
)

// BucketService defines bucket management logic: creation, renaming,
// limit changes and bucket-level reordering. Deletion lives on
// BoardService because it may relocate tasks.
type BucketService interface {
	Create(ctx context.Context, ownerID, name string, limit models.Limit) (*models.Bucket, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Bucket, error)
	List(ctx context.Context, ownerID string) ([]models.Bucket, error)
	Rename(ctx context.Context, ownerID, id, name string) (*models.Bucket, error)
	UpdateLimit(ctx context.Context, ownerID, id string, limit models.Limit) error
	Reorder(ctx context.Context, ownerID, activeID, overID string) error
}

type bucketService struct {
	buckets repositories.BucketRepository
	tasks   repositories.TaskRepository
}

func NewBucketService(buckets repositories.BucketRepository, tasks repositories.TaskRepository) BucketService {
	return &bucketService{buckets: buckets, tasks: tasks}
}

func (s *bucketService) Create(ctx context.Context, ownerID, name string, limit models.Limit) (*models.Bucket, error) {
	existing, err := s.buckets.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bucket := &models.Bucket{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Limit:     limit,
		Order:     len(existing), // append to the end of the board
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.buckets.Store(ctx, bucket); err != nil {
		return nil, err
	}
	return bucket, nil
}

func (s *bucketService) GetByID(ctx context.Context, ownerID, id string) (*models.Bucket, error) {
	bucket, err := s.buckets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bucket == nil || bucket.OwnerID != ownerID {
		return nil, nil
	}
	return bucket, nil
}

func (s *bucketService) List(ctx context.Context, ownerID string) ([]models.Bucket, error) {
	return s.buckets.List(ctx, ownerID)
}

func (s *bucketService) Rename(ctx context.Context, ownerID, id, name string) (*models.Bucket, error) {
	bucket, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if bucket == nil {
		return nil, nil
	}
	bucket.Name = name
	bucket.UpdatedAt = time.Now()
	if err := s.buckets.Update(ctx, bucket); err != nil {
		return nil, err
	}
	return bucket, nil
}

func (s *bucketService) UpdateLimit(ctx context.Context, ownerID, id string, limit models.Limit) error {
	snap, err := s.hydrated(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := board.CanUpdateBucketLimit(id, limit, snap); err != nil {
		return err
	}
	return s.buckets.UpdateLimit(ctx, id, limit)
}

func (s *bucketService) Reorder(ctx context.Context, ownerID, activeID, overID string) error {
	buckets, err := s.buckets.List(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := board.CanReorderBucket(activeID, overID, buckets); err != nil {
		return err
	}
	return s.buckets.ApplyOrderPatches(ctx, board.ReorderBuckets(buckets, activeID, overID))
}

func (s *bucketService) hydrated(ctx context.Context, ownerID string) ([]models.Bucket, error) {
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
