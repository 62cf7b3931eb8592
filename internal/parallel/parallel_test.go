package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	For(10, cfg, func(i int) { order = append(order, i) })

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestForVisitsEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	n := 10000

	counts := make([]int32, n)
	For(n, cfg, func(i int) { atomic.AddInt32(&counts[i], 1) })

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForSmallRangeRunsSequentially(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 100}

	var sum int // no atomics needed: below MinChunkSize must stay on one goroutine
	For(50, cfg, func(i int) { sum += i })

	assert.Equal(t, 49*50/2, sum)
}

func TestForRangeCoversWholeInterval(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 16}
	n := 1000

	var total atomic.Int64
	ForRange(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			total.Add(int64(i))
		}
	})

	assert.Equal(t, int64(999*1000/2), total.Load())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Greater(t, cfg.NumWorkers, 0)
	assert.Greater(t, cfg.MinChunkSize, 0)
}
