package validate

import (
	"runtime"
	"sync"
)

// validateElementsParallel runs fn(i) for every index in [0,n) across a
// bounded worker pool sized to workers (falling back to
// runtime.GOMAXPROCS(0) when workers <= 0), and waits for all of them
// to finish before returning. Each fn(i) is responsible for recording
// its own issues (into the shared, mutex-guarded vctx.report); the
// caller only needs output order to not matter inside fn itself, since
// the pool provides no per-index slice of its own — callers that need
// an ordered result (e.g. evaluated sub-values) size their own slice
// and write element i into index i, guaranteeing determinism
// regardless of goroutine completion order, per the parallel-array
// contract.
//
// Grounded on the channel-based fan-out for "allOf" subschema
// compilation (jsonschema/v2/jsonschema.go's compileSubschemaArray),
// adapted from a result/error channel pair to a WaitGroup since this
// module's workers report through the shared vctx rather than
// returning a single aggregate value.
func validateElementsParallel(n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	indices := make(chan int, n)
	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
