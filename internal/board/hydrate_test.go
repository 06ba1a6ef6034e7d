package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

func TestHydrate_JoinsSortsAndOrders(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b2", 1, models.Capped(5)),
		testBucket("b1", 0, models.Unbounded()),
	}
	tasks := []models.Task{
		testTask("t3", "b1", 2),
		testTask("t1", "b1", 0),
		testTask("t4", "b2", 0),
		testTask("t2", "b1", 1),
		testTask("done", "", 7), // off-board, must not be attached anywhere
	}

	out := Hydrate(buckets, tasks)
	require.Len(t, out, 2)

	assert.Equal(t, "b1", out[0].ID)
	assert.Equal(t, "b2", out[1].ID)

	require.Len(t, out[0].Tasks, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, []string{
		out[0].Tasks[0].ID, out[0].Tasks[1].ID, out[0].Tasks[2].ID,
	})
	require.Len(t, out[1].Tasks, 1)
	assert.Equal(t, "t4", out[1].Tasks[0].ID)
}

func TestHydrate_DoesNotMutateInputs(t *testing.T) {
	buckets := []models.Bucket{
		testBucket("b2", 1, models.Unbounded()),
		testBucket("b1", 0, models.Unbounded()),
	}
	tasks := []models.Task{testTask("t1", "b1", 0)}

	_ = Hydrate(buckets, tasks)

	assert.Equal(t, "b2", buckets[0].ID, "input bucket order must survive")
	assert.Nil(t, buckets[0].Tasks)
	assert.Nil(t, buckets[1].Tasks)
}

func TestHydrate_EmptyInputs(t *testing.T) {
	assert.Empty(t, Hydrate(nil, nil))

	out := Hydrate([]models.Bucket{testBucket("b1", 0, models.Unbounded())}, nil)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Tasks)
}
