package styleguide

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps per-record concurrency.
	MaxWorkers = 8
)

// ResolveWorkers determines how many records are processed concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware when the binary imports automaxprocs.
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// recordFunc transforms one record.
type recordFunc func(ctx context.Context, rec Record) (Record, error)

// mapRecords applies fn to every record over at most workers goroutines.
// Results keep input order. On failure the error of the lowest-indexed
// failing record is returned.
func mapRecords(ctx context.Context, workers int, records []Record, fn recordFunc) ([]Record, error) {
	if len(records) == 0 {
		return nil, nil
	}

	concurrency := min(ResolveWorkers(workers), len(records))

	results := make([]Record, len(records))
	errs := make([]error, len(records))
	var wg sync.WaitGroup
	jobs := make(chan int, len(records))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					continue
				}
				results[idx], errs[idx] = applyRecord(ctx, fn, records[idx])
			}
		}()
	}

	for i := range records {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// applyRecord runs fn and turns a panic into an error so one record cannot
// take down the worker set.
func applyRecord(ctx context.Context, fn recordFunc, rec Record) (out Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInternal, rec.Location(), r)
		}
	}()
	return fn(ctx, rec)
}
