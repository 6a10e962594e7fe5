package dsp

import "sync"

// PoolSize is the target number of worker goroutines used to parallelize
// the frames/spectral-image/Haar/raw-fingerprint stages. Overridable by
// configs.FingerprintConfig.WorkerPoolSize via SetPoolSize.
var poolSize = DefaultWorkerPoolSize

// SetPoolSize overrides the worker-pool size used by parallelRange. Not
// safe to call concurrently with a pipeline run.
func SetPoolSize(n int) {
	if n > 0 {
		poolSize = n
	}
}

// PoolSize returns the worker-pool size currently in effect.
func PoolSize() int {
	return poolSize
}

// parallelRange splits [0, n) into disjoint, contiguous ranges and runs fn
// once per range on its own goroutine, joining all of them before
// returning. Per spec.md §5, a stage falls back to running fn on the
// entire [0, n) range single-threaded when n is less than 2*PoolSize, to
// avoid goroutine-spawn overhead outweighing the parallelism gained.
func parallelRange(n int, fn func(first, last int)) {
	if n == 0 {
		return
	}

	workers := poolSize
	if n < 2*workers {
		fn(0, n-1)
		return
	}

	var wg sync.WaitGroup
	perWorker := n / workers
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker - 1
		if w == workers-1 {
			end = n - 1
		}

		wg.Add(1)
		go func(first, last int) {
			defer wg.Done()
			fn(first, last)
		}(start, end)
	}
	wg.Wait()
}
