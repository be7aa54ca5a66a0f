package engine

import (
	"runtime"
	"sync"
)

// Below this many bodies the goroutine fan-out costs more than the
// force loop it parallelizes.
const minChunk = 64

// parallelFor runs fn over contiguous chunks of [0, n) on up to
// workers goroutines and returns only when every chunk has finished.
// That return is the phase barrier the integrator relies on: nothing
// scheduled after a parallelFor call can observe partial phase output.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if n <= minChunk || workers == 1 {
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
