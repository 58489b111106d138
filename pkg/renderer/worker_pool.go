package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// columnFunc renders one image column on behalf of a worker
type columnFunc func(worker *Worker, column int)

// Worker is the state owned by a single rendering goroutine
type Worker struct {
	ID      int
	Columns int // Number of columns claimed in the last run
}

// WorkerPool hands out image columns to a fixed set of workers. Columns are
// claimed through a shared atomic cursor, so faster workers simply claim
// more of them.
type WorkerPool struct {
	workers []*Worker
	cursor  atomic.Int64
}

// NewWorkerPool creates a pool of numWorkers workers, the calling goroutine
// included. numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{workers: make([]*Worker, numWorkers)}
	for i := range wp.workers {
		wp.workers[i] = &Worker{ID: i}
	}
	return wp
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// Workers returns the pool's workers
func (wp *WorkerPool) Workers() []*Worker {
	return wp.workers
}

// Run renders columns [0, width) and returns once every column is done.
// Worker 0 runs on the calling goroutine, the others on their own. Each
// worker calls done, if set, on its own goroutine once no columns are left.
func (wp *WorkerPool) Run(width int, render columnFunc, done func(worker *Worker)) {
	wp.cursor.Store(0)
	for _, worker := range wp.workers {
		worker.Columns = 0
	}

	var wg sync.WaitGroup
	for _, worker := range wp.workers[1:] {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			wp.work(w, width, render, done)
		}(worker)
	}
	wp.work(wp.workers[0], width, render, done)
	wg.Wait()
}

// work claims columns until the cursor runs past the image
func (wp *WorkerPool) work(worker *Worker, width int, render columnFunc, done func(worker *Worker)) {
	for column := int(wp.cursor.Add(1) - 1); column < width; column = int(wp.cursor.Add(1) - 1) {
		render(worker, column)
		worker.Columns++
	}
	if done != nil {
		done(worker)
	}
}
