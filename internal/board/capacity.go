package board

import "github.com/alx-zhu/one-task-manager/internal/models"

// HasCapacity reports whether the bucket can take incoming more tasks.
// The current count is the length of the hydrated task list, so callers
// must pass buckets that went through Hydrate.
func HasCapacity(b models.Bucket, incoming int) bool {
	if !b.Limit.IsSet() {
		return true
	}
	return len(b.Tasks)+incoming <= b.Limit.Max()
}

// AvailableSpace returns how many more tasks the bucket can hold.
// bounded is false for buckets without a limit; space is meaningless then.
func AvailableSpace(b models.Bucket) (space int, bounded bool) {
	if !b.Limit.IsSet() {
		return 0, false
	}
	return b.Limit.Max() - len(b.Tasks), true
}
