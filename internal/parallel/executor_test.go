package parallel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionNearEqualSizes(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	parts := Partition(items, 3)
	assert.Len(t, parts, 3)

	var total int
	for _, p := range parts {
		total += len(p)
		assert.LessOrEqual(t, len(p), 3)
		assert.GreaterOrEqual(t, len(p), 2)
	}
	assert.Equal(t, len(items), total)
}

func TestPartitionMoreWorkersThanItems(t *testing.T) {
	parts := Partition([]int{1, 2}, 5)
	assert.Len(t, parts, 2)
	for _, p := range parts {
		assert.Len(t, p, 1)
	}
}

func TestPartitionEmpty(t *testing.T) {
	assert.Nil(t, Partition([]int{}, 4))
}

func TestMapReturnsResultsInSubmissionOrder(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	results := Map(context.Background(), items, 4, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})
	require := assert.New(t)
	require.Len(results, len(items))
	for i, r := range results {
		require.NoError(r.Err)
		require.Equal(i*i, r.Value)
	}
}

func TestMapDoesNotAbortOnTaskError(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	failOn := 3
	results := Map(context.Background(), items, 2, func(_ context.Context, n int) (int, error) {
		if n == failOn {
			return 0, errors.New("boom")
		}
		return n, nil
	})
	require := assert.New(t)
	require.Len(results, len(items))
	for i, r := range results {
		if items[i] == failOn {
			require.Error(r.Err)
		} else {
			require.NoError(r.Err)
			require.Equal(items[i], r.Value)
		}
	}
}

func TestMapEmptyInput(t *testing.T) {
	results := Map(context.Background(), []int{}, 4, func(_ context.Context, n int) (int, error) {
		t.Fatal("fn should never be called for empty input")
		return 0, nil
	})
	assert.Empty(t, results)
}

func TestMapHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := Map(ctx, []int{1, 2, 3}, 1, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}
