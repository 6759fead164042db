// Package pipeline runs pass1 over a batch of publications and assembles
// the globally ordered result list.
package pipeline

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/btraven00/pub2agents/internal/logger"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

// ErrSkipped marks a publication left out of a batch for its size.
var ErrSkipped = pass1.ErrSkipped

// Summary counts what happened to a batch.
type Summary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Results   int `json:"results"`
}

// Runner feeds publications through a Processor.
type Runner struct {
	proc       Processor
	workers    int
	request    pass1.Request
	log        *log.Logger
	onProgress func(ProgressUpdate)
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithRequest sets the request sent with every publication.
func WithRequest(req pass1.Request) Option {
	return func(r *Runner) {
		r.request = req
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithProgress registers a callback for progress updates. It runs on a
// single goroutine.
func WithProgress(fn func(ProgressUpdate)) Option {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// NewRunner creates a runner. By default it runs one worker in batch mode.
func NewRunner(proc Processor, opts ...Option) *Runner {
	r := &Runner{
		proc:    proc,
		workers: 1,
		request: pass1.Request{Batch: true},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.New("pipeline")
	}
	return r
}

// Run processes pubs and returns all results, ordered by the score of
// their best suggestion. The order does not depend on the worker count.
// Skipped and failed publications are logged and counted, not returned
// as errors. The returned error is only set when ctx ends early.
func (r *Runner) Run(ctx context.Context, pubs []*publication.Publication) ([]*pass1.Result, Summary, error) {
	summary := Summary{Total: len(pubs)}

	tasks := make([]Task, len(pubs))
	for i, pub := range pubs {
		tasks[i] = Task{Index: i, Pub: pub, Request: r.request}
	}

	pool := NewWorkerPool(ctx, r.proc, r.workers)
	pool.Start()

	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for update := range pool.Progress() {
			if r.onProgress != nil {
				r.onProgress(update)
			}
		}
	}()

	go func() {
		pool.SubmitBatch(tasks)
		pool.Wait()
	}()

	perTask := make([][]*pass1.Result, len(tasks))
	for res := range pool.Results() {
		id := res.Task.ID()
		switch {
		case res.Err == nil:
			summary.Processed++
			perTask[res.Task.Index] = res.Results
		case errors.Is(res.Err, ErrSkipped):
			summary.Skipped++
			r.log.Warn("Skipped publication", "id", id.String(), "reason", res.Err)
		default:
			summary.Failed++
			r.log.Error("Failed to process publication", "id", id.String(), "err", res.Err)
		}
	}
	<-progressDone

	if err := ctx.Err(); err != nil {
		return nil, summary, err
	}

	var all []*pass1.Result
	for _, results := range perTask {
		all = append(all, results...)
	}
	pass1.SortResults(all)
	summary.Results = len(all)

	return all, summary, nil
}
