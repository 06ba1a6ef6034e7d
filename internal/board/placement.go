package board

import "github.com/alx-zhu/one-task-manager/internal/models"

// Placement is the resolver's decision: which bucket a batch of tasks
// lands in and the order index of the first task (append position).
// Relocated is true when a preferred bucket was requested but a different
// one had to be chosen.
type Placement struct {
	BucketID      string
	OrderInBucket int
	Relocated     bool
}

// PlacementOptions tune FindTargetBucketWithCapacity. All fields are
// optional.
type PlacementOptions struct {
	// PreferredBucketID is tried first when set.
	PreferredBucketID string
	// ExcludeBucketIDs are never chosen (e.g. a bucket being deleted).
	ExcludeBucketIDs []string
	// ErrMessage overrides the default capacity-exhaustion message.
	ErrMessage string
}

func (o PlacementOptions) excluded(bucketID string) bool {
	for _, id := range o.ExcludeBucketIDs {
		if id == bucketID {
			return true
		}
	}
	return false
}

// FindTargetBucketWithCapacity decides where a batch of taskCount tasks
// should land. The preferred bucket wins when it exists, is not excluded
// and has room; otherwise the first non-excluded bucket by ascending
// global order with room is chosen and the result is marked relocated.
// Returns *NoCapacityError when nothing qualifies. Buckets must be
// hydrated; nothing is mutated.
func FindTargetBucketWithCapacity(taskCount int, buckets []models.Bucket, opts PlacementOptions) (Placement, error) {
	if opts.PreferredBucketID != "" && !opts.excluded(opts.PreferredBucketID) {
		if b := findBucket(opts.PreferredBucketID, buckets); b != nil && HasCapacity(*b, taskCount) {
			return Placement{BucketID: b.ID, OrderInBucket: len(b.Tasks)}, nil
		}
	}

	for _, b := range sortedByOrder(buckets) {
		if opts.excluded(b.ID) {
			continue
		}
		if HasCapacity(b, taskCount) {
			return Placement{
				BucketID:      b.ID,
				OrderInBucket: len(b.Tasks),
				Relocated:     opts.PreferredBucketID != "" && b.ID != opts.PreferredBucketID,
			}, nil
		}
	}

	return Placement{}, noCapacity(taskCount, opts.ErrMessage)
}
