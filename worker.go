package barnes

import (
	"sync"
)

// forEachRow calls fn once for every row in [0, rows) using up to
// workers goroutines. fn must only write state owned by its row.
func forEachRow(rows, workers int, fn func(i int)) {
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		for i := 0; i < rows; i++ {
			fn(i)
		}
		return
	}

	rowChan := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for p := 0; p < workers; p++ {
		go func() {
			defer wg.Done()
			for i := range rowChan {
				fn(i)
			}
		}()
	}
	for i := 0; i < rows; i++ {
		rowChan <- i
	}
	close(rowChan)
	wg.Wait()
}
