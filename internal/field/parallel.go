package field

import (
	"runtime"
	"sync"
)

// minBatchChunk keeps goroutine overhead below the cost of the work:
// small ensembles run serially.
const minBatchChunk = 256

// parallelFor splits [0, n) into contiguous chunks across workers.
// Chunks are disjoint, so workers may write disjoint slice ranges
// without synchronization.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
