package board

import "github.com/alx-zhu/one-task-manager/internal/models"

// TaskPatch is one record update produced by the engine. BucketID is nil
// when the task stays in its bucket. A patch list is always complete and
// internally consistent before any write happens; applying it in order as
// one batch keeps every bucket's order sequence dense and zero-based.
type TaskPatch struct {
	TaskID        string
	BucketID      *string
	OrderInBucket int
}

// BucketPatch is one bucket order update for bucket-level reordering.
type BucketPatch struct {
	BucketID string
	Order    int
}

// ReorderWithinBucket moves activeTaskID to the slot currently occupied by
// overTaskID inside one bucket and renumbers the whole list densely from
// zero. Every task in the bucket gets a patch, so reordering a task onto
// its own position yields patches that assign each task the order it
// already had. Never fails: unknown ids produce no patches.
func ReorderWithinBucket(bucket models.Bucket, activeTaskID, overTaskID string) []TaskPatch {
	activeIdx, overIdx := -1, -1
	for i, t := range bucket.Tasks {
		if t.ID == activeTaskID {
			activeIdx = i
		}
		if t.ID == overTaskID {
			overIdx = i
		}
	}
	if activeIdx < 0 || overIdx < 0 {
		return nil
	}

	working := make([]models.Task, 0, len(bucket.Tasks))
	working = append(working, bucket.Tasks[:activeIdx]...)
	working = append(working, bucket.Tasks[activeIdx+1:]...)
	// Reinsert at the slot the over task occupied before removal.
	working = append(working, models.Task{})
	copy(working[overIdx+1:], working[overIdx:])
	working[overIdx] = bucket.Tasks[activeIdx]

	patches := make([]TaskPatch, 0, len(working))
	for i, t := range working {
		patches = append(patches, TaskPatch{TaskID: t.ID, OrderInBucket: i})
	}
	return patches
}

// MoveBetweenBuckets moves draggedTaskID from the source bucket into the
// target bucket, optionally positioned at targetTaskID's slot (appended at
// the end when targetTaskID is empty or not found). The returned patches
// renumber both buckets densely from zero and are meant to be applied as
// one batch; entries whose bucket and order are already correct are
// omitted.
func MoveBetweenBuckets(source, target models.Bucket, draggedTaskID, targetTaskID string) []TaskPatch {
	var dragged *models.Task
	for i := range source.Tasks {
		if source.Tasks[i].ID == draggedTaskID {
			dragged = &source.Tasks[i]
			break
		}
	}
	if dragged == nil {
		return nil
	}

	working := make([]models.Task, 0, len(target.Tasks)+1)
	for _, t := range target.Tasks {
		if t.ID != draggedTaskID {
			working = append(working, t)
		}
	}
	working = append(working, *dragged)

	if targetTaskID != "" {
		overIdx := -1
		for i, t := range working {
			if t.ID == targetTaskID {
				overIdx = i
				break
			}
		}
		// Shift the dragged task from the end into the over task's slot;
		// not found means it stays appended.
		if last := len(working) - 1; overIdx >= 0 && overIdx < last {
			d := working[last]
			copy(working[overIdx+1:], working[overIdx:last])
			working[overIdx] = d
		}
	}

	var patches []TaskPatch
	targetID := target.ID
	for i, t := range working {
		if t.BucketID == targetID && t.OrderInBucket == i {
			continue
		}
		patches = append(patches, TaskPatch{TaskID: t.ID, BucketID: &targetID, OrderInBucket: i})
	}

	// Close the gap left in the source bucket.
	idx := 0
	for _, t := range source.Tasks {
		if t.ID == draggedTaskID {
			continue
		}
		if t.OrderInBucket != idx {
			patches = append(patches, TaskPatch{TaskID: t.ID, OrderInBucket: idx})
		}
		idx++
	}
	return patches
}

// RelocateAll reassigns an ordered batch of tasks to the target bucket,
// appending after the target's current task count. Used when a bucket is
// deleted or a completed task returns to the board; the source ordering is
// irrelevant because the source is going away.
func RelocateAll(tasks []models.Task, targetBucketID string, targetCount int) []TaskPatch {
	patches := make([]TaskPatch, 0, len(tasks))
	for i, t := range tasks {
		id := targetBucketID
		patches = append(patches, TaskPatch{
			TaskID:        t.ID,
			BucketID:      &id,
			OrderInBucket: targetCount + i,
		})
	}
	return patches
}

// CompactBucket renumbers a bucket after removedTaskID leaves it (task
// deleted or completed), closing the gap so the order sequence stays
// dense. Unchanged tasks get no patch.
func CompactBucket(bucket models.Bucket, removedTaskID string) []TaskPatch {
	var patches []TaskPatch
	idx := 0
	for _, t := range bucket.Tasks {
		if t.ID == removedTaskID {
			continue
		}
		if t.OrderInBucket != idx {
			patches = append(patches, TaskPatch{TaskID: t.ID, OrderInBucket: idx})
		}
		idx++
	}
	return patches
}

// CompactBucketOrder renumbers the owner's bucket sequence after
// removedBucketID is deleted, keeping the global order dense.
func CompactBucketOrder(buckets []models.Bucket, removedBucketID string) []BucketPatch {
	var patches []BucketPatch
	idx := 0
	for _, b := range sortedByOrder(buckets) {
		if b.ID == removedBucketID {
			continue
		}
		if b.Order != idx {
			patches = append(patches, BucketPatch{BucketID: b.ID, Order: idx})
		}
		idx++
	}
	return patches
}

// ReorderBuckets moves activeBucketID to the position of overBucketID in
// the owner's global bucket order and renumbers densely from zero.
// Validation (the "one thing" bucket stays first) is CanReorderBucket's
// job; this only computes the patches.
func ReorderBuckets(buckets []models.Bucket, activeBucketID, overBucketID string) []BucketPatch {
	ordered := sortedByOrder(buckets)
	activeIdx, overIdx := -1, -1
	for i, b := range ordered {
		if b.ID == activeBucketID {
			activeIdx = i
		}
		if b.ID == overBucketID {
			overIdx = i
		}
	}
	if activeIdx < 0 || overIdx < 0 {
		return nil
	}

	working := make([]models.Bucket, 0, len(ordered))
	working = append(working, ordered[:activeIdx]...)
	working = append(working, ordered[activeIdx+1:]...)
	working = append(working, models.Bucket{})
	copy(working[overIdx+1:], working[overIdx:])
	working[overIdx] = ordered[activeIdx]

	var patches []BucketPatch
	for i, b := range working {
		if b.Order != i {
			patches = append(patches, BucketPatch{BucketID: b.ID, Order: i})
		}
	}
	return patches
}
