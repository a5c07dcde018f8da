// Package workers tracks background goroutines so they can be drained on shutdown.
package workers

import (
	"log/slog"
	"sync"
)

// Global is the worker group shared by the process.
var Global = NewWorker()

// Worker is a group of background goroutines.
type Worker struct {
	wg *sync.WaitGroup
}

// NewWorker creates an empty Worker.
func NewWorker() *Worker {
	return &Worker{
		wg: &sync.WaitGroup{},
	}
}

// Go runs fn in the background. A panic in fn is logged instead of crashing
// the process.
func (w *Worker) Go(fn func()) {
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("background worker panicked", "panic", r)
			}
		}()

		fn()
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}
