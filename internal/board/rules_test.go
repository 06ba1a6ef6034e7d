package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

func TestCanDeleteBucket_OneThingBucket(t *testing.T) {
	buckets := []models.Bucket{
		oneThingBucket("b1"),
		testBucket("b2", 1, models.Unbounded()),
	}

	err := CanDeleteBucket("b1", buckets)
	require.Error(t, err)
	assert.Equal(t, `Cannot delete "The ONE Thing" bucket`, err.Error())

	var ruleErr *RuleError
	assert.ErrorAs(t, err, &ruleErr)
}

func TestCanDeleteBucket_LastUnlimitedBucket(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Unbounded()),
	}

	err := CanDeleteBucket("b1", buckets)
	require.Error(t, err)
	assert.Equal(t, "At least one bucket must have no task limit", err.Error())
}

func TestCanDeleteBucket_NotFound(t *testing.T) {
	buckets := []models.Bucket{testBucket("b1", 0, models.Unbounded())}

	err := CanDeleteBucket("nope", buckets)
	require.Error(t, err)
	assert.Equal(t, "Bucket not found", err.Error())
}

func TestCanDeleteBucket_CappedBucketWithOtherUnlimited(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Capped(3)),
		testBucket("b2", 1, models.Unbounded()),
	}

	assert.NoError(t, CanDeleteBucket("b1", buckets))
}

func TestCanDeleteBucket_UnlimitedWithAnotherUnlimited(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Unbounded()),
		testBucket("b2", 1, models.Unbounded()),
	}

	assert.NoError(t, CanDeleteBucket("b1", buckets))
}

func TestCanUpdateBucketLimit_OneThingMustKeepLimitOne(t *testing.T) {
	buckets := []models.Bucket{
		oneThingBucket("b1"),
		testBucket("b2", 1, models.Unbounded()),
	}

	err := CanUpdateBucketLimit("b1", models.Capped(3), buckets)
	require.Error(t, err)
	assert.Equal(t, `"The ONE Thing" bucket must have a limit of 1`, err.Error())

	err = CanUpdateBucketLimit("b1", models.Unbounded(), buckets)
	require.Error(t, err)

	assert.NoError(t, CanUpdateBucketLimit("b1", models.Capped(1), buckets))
}

func TestCanUpdateBucketLimit_WouldLeaveNoUnlimitedBucket(t *testing.T) {
	buckets := []models.Bucket{
		oneThingBucket("b1"),
		testBucket("b2", 1, models.Unbounded()),
	}

	err := CanUpdateBucketLimit("b2", models.Capped(5), buckets)
	require.Error(t, err)
	assert.Equal(t, "At least one bucket must have no task limit", err.Error())
}

func TestCanUpdateBucketLimit_OtherUnlimitedRemains(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Unbounded()),
		testBucket("b2", 1, models.Unbounded()),
	}

	assert.NoError(t, CanUpdateBucketLimit("b2", models.Capped(5), buckets))
}

func TestCanUpdateBucketLimit_BelowCurrentTaskCount(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Unbounded()),
		fillBucket(testBucket("b2", 1, models.Capped(5)), 4),
	}

	err := CanUpdateBucketLimit("b2", models.Capped(2), buckets)
	require.Error(t, err)
	assert.Equal(t, "Cannot set limit to 2: bucket has 4 tasks", err.Error())

	assert.NoError(t, CanUpdateBucketLimit("b2", models.Capped(4), buckets))
}

func TestCanUpdateBucketLimit_NotFound(t *testing.T) {
	err := CanUpdateBucketLimit("nope", models.Capped(1), nil)
	require.Error(t, err)
	assert.Equal(t, "Bucket not found", err.Error())
}

func TestCanDeleteBucketWithRelocation_EmptyBucket(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Unbounded()),
		testBucket("b2", 1, models.Capped(3)),
	}

	target, err := CanDeleteBucketWithRelocation("b2", buckets)
	require.NoError(t, err)
	assert.Empty(t, target)
}

func TestCanDeleteBucketWithRelocation_ResolvesTarget(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Unbounded()),
		fillBucket(testBucket("b2", 1, models.Capped(3)), 3),
	}

	target, err := CanDeleteBucketWithRelocation("b2", buckets)
	require.NoError(t, err)
	assert.Equal(t, "b1", target)
}

func TestCanDeleteBucketWithRelocation_NoRoomAnywhere(t *testing.T) {
	// Every bucket is capped (invariant already broken upstream) and full,
	// so the resolver has nowhere to put b3's tasks.
	buckets := []models.Bucket{
		fillBucket(testBucket("b1", 0, models.Capped(1)), 1),
		fillBucket(testBucket("b2", 1, models.Capped(2)), 2),
		fillBucket(testBucket("b3", 2, models.Capped(4)), 3),
	}

	_, err := CanDeleteBucketWithRelocation("b3", buckets)
	require.Error(t, err)

	var capErr *NoCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 3, capErr.TaskCount)
	assert.Equal(t, "No bucket has room for all 3 tasks from the deleted bucket", capErr.Message)
}

func TestCanDeleteBucketWithRelocation_PropagatesDeleteFailure(t *testing.T) {
	buckets := []models.Bucket{
		oneThingBucket("b1", testTask("t1", "b1", 0)),
		testBucket("b2", 1, models.Unbounded()),
	}

	_, err := CanDeleteBucketWithRelocation("b1", buckets)
	require.Error(t, err)
	assert.Equal(t, `Cannot delete "The ONE Thing" bucket`, err.Error())
}

func TestFindFirstBucketWithSpace(t *testing.T) {
	buckets := []models.Bucket{
		fillBucket(testBucket("b2", 1, models.Capped(2)), 2),
		testBucket("b3", 2, models.Capped(5)),
		testBucket("b1", 0, models.Capped(1)),
	}

	// b1 has one slot, but two tasks need the first bucket with >= 2.
	b, ok := FindFirstBucketWithSpace("src", 2, buckets)
	require.True(t, ok)
	assert.Equal(t, "b3", b.ID)

	// A single task fits into b1, which comes first by global order.
	b, ok = FindFirstBucketWithSpace("src", 1, buckets)
	require.True(t, ok)
	assert.Equal(t, "b1", b.ID)
}

func TestFindFirstBucketWithSpace_ExcludesSource(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b1", 0, models.Unbounded()),
		testBucket("b2", 1, models.Unbounded()),
	}

	b, ok := FindFirstBucketWithSpace("b1", 1, buckets)
	require.True(t, ok)
	assert.Equal(t, "b2", b.ID)
}

func TestFindFirstBucketWithSpace_ZeroCount(t *testing.T) {
	buckets := []models.Bucket{testBucket("b1", 0, models.Unbounded())}

	_, ok := FindFirstBucketWithSpace("src", 0, buckets)
	assert.False(t, ok)
}

func TestFindFirstBucketWithSpace_NothingQualifies(t *testing.T) {
	buckets := []models.Bucket{
		fillBucket(testBucket("b1", 0, models.Capped(1)), 1),
	}

	_, ok := FindFirstBucketWithSpace("src", 1, buckets)
	assert.False(t, ok)
}

func TestCanReorderBucket_OneThingPinned(t *testing.T) {
	buckets := []models.Bucket{
		oneThingBucket("b1"),
		testBucket("b2", 1, models.Unbounded()),
		testBucket("b3", 2, models.Capped(3)),
	}

	err := CanReorderBucket("b1", "b3", buckets)
	require.Error(t, err)
	assert.Equal(t, `"The ONE Thing" bucket must stay first`, err.Error())

	err = CanReorderBucket("b3", "b1", buckets)
	require.Error(t, err)

	assert.NoError(t, CanReorderBucket("b3", "b2", buckets))
	assert.NoError(t, CanReorderBucket("b1", "b1", buckets))
}
