package board

import (
	"sort"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

// Hydrate joins flat task records onto their owning buckets. Each bucket's
// Tasks is the subset of tasks with a matching BucketID, sorted ascending
// by OrderInBucket; the bucket list itself is sorted ascending by Order.
// Inputs are not mutated. Every capacity or ordering decision in this
// package expects hydrated buckets, never raw store results.
func Hydrate(buckets []models.Bucket, tasks []models.Task) []models.Bucket {
	byBucket := make(map[string][]models.Task, len(buckets))
	for _, t := range tasks {
		if t.BucketID == "" {
			continue
		}
		byBucket[t.BucketID] = append(byBucket[t.BucketID], t)
	}

	out := make([]models.Bucket, len(buckets))
	copy(out, buckets)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	for i := range out {
		ts := byBucket[out[i].ID]
		sorted := make([]models.Task, len(ts))
		copy(sorted, ts)
		sort.Slice(sorted, func(a, b int) bool {
			return sorted[a].OrderInBucket < sorted[b].OrderInBucket
		})
		out[i].Tasks = sorted
	}
	return out
}

// sortedByOrder returns a copy of buckets sorted ascending by global Order.
// Rules iterate this, not the caller's slice order.
func sortedByOrder(buckets []models.Bucket) []models.Bucket {
	out := make([]models.Bucket, len(buckets))
	copy(out, buckets)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func findBucket(bucketID string, buckets []models.Bucket) *models.Bucket {
	for i := range buckets {
		if buckets[i].ID == bucketID {
			return &buckets[i]
		}
	}
	return nil
}
