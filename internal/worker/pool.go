// Package worker provides a worker pool for evaluating positions in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// WorkItem is one position to evaluate. Each item owns its board, so
// workers never share one.
type WorkItem struct {
	Index  int // Original index for tracking
	Name   string
	Board  chess.Board
	ToMove chess.Colour
}

// ProcessResult is the outcome of evaluating a work item.
type ProcessResult struct {
	Index  int
	Name   string
	Passed bool
	Report interface{} // Opaque payload; typed by consumer
	Error  error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel position evaluation.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. processFunc is required; other settings
// default to 1 worker and a buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// RunAll starts the pool, processes every item and returns the results in
// item order; each item's Index must be its position in items. If ctx is
// cancelled the pool is stopped and items that were not
// processed get a result carrying ctx.Err(). The pool cannot be reused.
func (p *Pool) RunAll(ctx context.Context, items []WorkItem) []ProcessResult {
	p.Start()

	go func() {
		defer p.Close()
		for _, item := range items {
			select {
			case <-ctx.Done():
				p.Stop()
				return
			default:
			}
			p.Submit(item)
		}
	}()

	results := make([]ProcessResult, len(items))
	done := make([]bool, len(items))
	for result := range p.Results() {
		if result.Index >= 0 && result.Index < len(results) {
			results[result.Index] = result
			done[result.Index] = true
		}
	}

	for i, item := range items {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			results[i] = ProcessResult{Index: item.Index, Name: item.Name, Error: err}
		}
	}
	return results
}
