package orchestrator

import "sync"

// runPool runs fn over every item in items across at most size
// concurrent workers, collecting results at their original index. size
// <= 0 is treated as 1. Grounded on bitswalk-ldf's download manager
// job-queue+waitgroup pattern (ldfd/download/manager.go), simplified to
// a fixed, pre-known item set instead of an open-ended job channel.
func runPool[T any, R any](items []T, size int, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		size = 1
	}
	if size > len(items) {
		size = len(items)
	}

	results := make([]R, len(items))
	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < size; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = fn(items[i])
			}
		}()
	}

	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
