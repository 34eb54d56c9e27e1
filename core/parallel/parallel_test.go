package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelize_CoversAllItems(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"zero items", 0},
		{"single item", 1},
		{"fewer items than cores", 3},
		{"many items", 10007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			covered := make([]int32, tt.items)

			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&covered[i], 1)
				}
			})

			for i, c := range covered {
				assert.Equal(t, int32(1), c, "item %d visited %d times", i, c)
			}
		})
	}
}

func TestParallelize_RangesDisjoint(t *testing.T) {
	const items = 1000

	var mu sync.Mutex
	seen := make(map[int]bool, items)

	Parallelize(items, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			assert.False(t, seen[i], "item %d assigned to two ranges", i)
			seen[i] = true
		}
	})

	assert.Len(t, seen, items)
}

func TestParallelizeWithThreshold_SequentialBelow(t *testing.T) {
	var calls int32

	// Below the threshold a single sequential call covers everything.
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})

	assert.Equal(t, int32(1), calls)
}

func TestParallelizeWithThreshold_ParallelAbove(t *testing.T) {
	const items = 5000
	var total int64

	ParallelizeWithThreshold(items, 100, func(start, end int) {
		var local int64
		for i := start; i < end; i++ {
			local += int64(i)
		}
		atomic.AddInt64(&total, local)
	})

	want := int64(items) * int64(items-1) / 2
	assert.Equal(t, want, total)
}
