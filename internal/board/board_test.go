package board

import (
	"fmt"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

// Test fixtures shared by the board package tests.

func testTask(id, bucketID string, order int) models.Task {
	return models.Task{
		ID:            id,
		OwnerID:       "owner-1",
		BucketID:      bucketID,
		Title:         "task " + id,
		Status:        models.StatusNotStarted,
		Priority:      models.PriorityMedium,
		OrderInBucket: order,
	}
}

func testBucket(id string, order int, limit models.Limit, tasks ...models.Task) models.Bucket {
	return models.Bucket{
		ID:      id,
		OwnerID: "owner-1",
		Name:    "bucket " + id,
		Limit:   limit,
		Order:   order,
		Tasks:   tasks,
	}
}

func oneThingBucket(id string, tasks ...models.Task) models.Bucket {
	b := testBucket(id, 0, models.Capped(1), tasks...)
	b.IsOneThing = true
	return b
}

func fillBucket(b models.Bucket, n int) models.Bucket {
	for i := 0; i < n; i++ {
		b.Tasks = append(b.Tasks, testTask(fmt.Sprintf("%s-t%d", b.ID, i), b.ID, i))
	}
	return b
}

func ordersOf(patches []TaskPatch) map[string]int {
	m := make(map[string]int, len(patches))
	for _, p := range patches {
		m[p.TaskID] = p.OrderInBucket
	}
	return m
}
