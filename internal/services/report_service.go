package services

import (
	"context"
	"time"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

// BucketSummary is one row of the board report.
type BucketSummary struct {
	BucketID   string `json:"bucket_id"`
	Name       string `json:"name"`
	Limit      string `json:"limit"`
	TaskCount  int    `json:"task_count"`
	Blocked    int    `json:"blocked"`
	InProgress int    `json:"in_progress"`
	Overdue    int    `json:"overdue"`
}

type BoardSummary struct {
	OwnerID    string          `json:"owner_id"`
	Buckets    []BucketSummary `json:"buckets"`
	TotalTasks int             `json:"total_tasks"`
}

type ReportService struct {
	board BoardService
}

func NewReportService(board BoardService) *ReportService {
	return &ReportService{board: board}
}

func (s *ReportService) Summary(ctx context.Context, ownerID string) (*BoardSummary, error) {
	snap, err := s.board.Board(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &BoardSummary{OwnerID: ownerID}
	for _, b := range snap {
		row := BucketSummary{
			BucketID:  b.ID,
			Name:      b.Name,
			Limit:     b.Limit.String(),
			TaskCount: len(b.Tasks),
		}
		for _, t := range b.Tasks {
			switch t.Status {
			case models.StatusBlocked:
				row.Blocked++
			case models.StatusInProgress:
				row.InProgress++
			}
			if t.DueDate != nil && t.DueDate.Before(nowFunc()) {
				row.Overdue++
			}
		}
		summary.Buckets = append(summary.Buckets, row)
		summary.TotalTasks += len(b.Tasks)
	}
	return summary, nil
}

// Board returns the hydrated board for PDF rendering.
func (s *ReportService) Board(ctx context.Context, ownerID string) ([]models.Bucket, error) {
	return s.board.Board(ctx, ownerID)
}
