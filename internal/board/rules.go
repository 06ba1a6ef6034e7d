package board

import (
	"fmt"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

// Rule failure messages surfaced to the user.
const (
	msgBucketNotFound     = "Bucket not found"
	msgCannotDeleteOne    = `Cannot delete "The ONE Thing" bucket`
	msgNeedUnlimited      = "At least one bucket must have no task limit"
	msgOneThingLimit      = `"The ONE Thing" bucket must have a limit of 1`
	msgOneThingStaysFirst = `"The ONE Thing" bucket must stay first`
)

func countUnlimited(buckets []models.Bucket) int {
	n := 0
	for _, b := range buckets {
		if !b.Limit.IsSet() {
			n++
		}
	}
	return n
}

// CanDeleteBucket checks whether the bucket may be deleted at all: it must
// exist, must not be the distinguished "one thing" bucket, and must not be
// the only bucket without a task limit.
func CanDeleteBucket(bucketID string, buckets []models.Bucket) error {
	b := findBucket(bucketID, buckets)
	if b == nil {
		return &RuleError{Reason: msgBucketNotFound}
	}
	if b.IsOneThing {
		return &RuleError{Reason: msgCannotDeleteOne}
	}
	if !b.Limit.IsSet() && countUnlimited(buckets) == 1 {
		return &RuleError{Reason: msgNeedUnlimited}
	}
	return nil
}

// CanUpdateBucketLimit checks whether the bucket's limit may change to
// newLimit. The "one thing" bucket is locked to a limit of 1, and the last
// bucket without a limit cannot be capped. A cap below the bucket's
// current hydrated task count is also rejected.
func CanUpdateBucketLimit(bucketID string, newLimit models.Limit, buckets []models.Bucket) error {
	b := findBucket(bucketID, buckets)
	if b == nil {
		return &RuleError{Reason: msgBucketNotFound}
	}
	if b.IsOneThing && (!newLimit.IsSet() || newLimit.Max() != 1) {
		return &RuleError{Reason: msgOneThingLimit}
	}
	if !b.Limit.IsSet() && newLimit.IsSet() && countUnlimited(buckets) == 1 {
		return &RuleError{Reason: msgNeedUnlimited}
	}
	if newLimit.IsSet() && newLimit.Max() < len(b.Tasks) {
		return ruleErrorf("Cannot set limit to %d: bucket has %d tasks", newLimit.Max(), len(b.Tasks))
	}
	return nil
}

// CanDeleteBucketWithRelocation runs CanDeleteBucket and, when the bucket
// still holds tasks, resolves a single bucket able to take all of them at
// once. Returns the target bucket id for the relocation, or "" when the
// bucket is empty and nothing needs to move.
func CanDeleteBucketWithRelocation(bucketID string, buckets []models.Bucket) (string, error) {
	if err := CanDeleteBucket(bucketID, buckets); err != nil {
		return "", err
	}
	b := findBucket(bucketID, buckets)
	n := len(b.Tasks)
	if n == 0 {
		return "", nil
	}
	plural := ""
	if n != 1 {
		plural = "s"
	}
	placement, err := FindTargetBucketWithCapacity(n, buckets, PlacementOptions{
		ExcludeBucketIDs: []string{bucketID},
		ErrMessage:       fmt.Sprintf("No bucket has room for all %d task%s from the deleted bucket", n, plural),
	})
	if err != nil {
		return "", err
	}
	return placement.BucketID, nil
}

// FindFirstBucketWithSpace returns the first bucket by ascending global
// order, excluding the source, whose available space is at least
// taskCount. ok is false when taskCount is zero or nothing qualifies.
func FindFirstBucketWithSpace(sourceBucketID string, taskCount int, buckets []models.Bucket) (models.Bucket, bool) {
	if taskCount == 0 {
		return models.Bucket{}, false
	}
	for _, b := range sortedByOrder(buckets) {
		if b.ID == sourceBucketID {
			continue
		}
		space, bounded := AvailableSpace(b)
		if !bounded || space >= taskCount {
			return b, true
		}
	}
	return models.Bucket{}, false
}

// CanReorderBucket checks a bucket-level drag: the "one thing" bucket can
// neither leave position 0 nor be displaced from it.
func CanReorderBucket(activeBucketID, overBucketID string, buckets []models.Bucket) error {
	active := findBucket(activeBucketID, buckets)
	over := findBucket(overBucketID, buckets)
	if active == nil || over == nil {
		return &RuleError{Reason: msgBucketNotFound}
	}
	if active.ID == over.ID {
		return nil
	}
	if active.IsOneThing || over.IsOneThing {
		return &RuleError{Reason: msgOneThingStaysFirst}
	}
	return nil
}
