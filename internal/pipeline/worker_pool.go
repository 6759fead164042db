package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

// Processor runs pass1 on one publication. *pass1.Engine implements it.
type Processor interface {
	Process(pub *publication.Publication, req pass1.Request) ([]*pass1.Result, error)
}

var errNilPublication = errors.New("missing publication")

// WorkerPool runs publications through a Processor in parallel.
type WorkerPool struct {
	ctx            context.Context
	proc           Processor
	tasks          chan Task
	results        chan TaskResult
	progressChan   chan ProgressUpdate
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	numWorkers     int
	totalTasks     int
	completedTasks int
	mu             sync.RWMutex
}

// Task is one publication with its position in the input.
type Task struct {
	Index   int
	Pub     *publication.Publication
	Request pass1.Request
}

// ID returns the identifiers of the task's publication, or an empty ID when
// the publication is missing.
func (t Task) ID() publication.ID {
	if t.Pub == nil {
		return publication.ID{}
	}
	return t.Pub.ID()
}

// TaskResult is the outcome of a Task.
type TaskResult struct {
	Task    Task
	Results []*pass1.Result
	Err     error
	Elapsed time.Duration
}

// ProgressUpdate provides progress information.
type ProgressUpdate struct {
	Index       int
	ID          publication.ID
	Status      TaskStatus
	Message     string
	Completed   int
	Total       int
	ElapsedTime time.Duration
}

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusSkipped    TaskStatus = "skipped"
	TaskStatusFailed     TaskStatus = "failed"
)

// NewWorkerPool creates a pool of numWorkers workers bound to ctx.
func NewWorkerPool(ctx context.Context, proc Processor, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		proc:         proc,
		numWorkers:   numWorkers,
		tasks:        make(chan Task, numWorkers*2),
		results:      make(chan TaskResult, numWorkers*2),
		progressChan: make(chan ProgressUpdate, 100),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(workerID int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}

			wp.processTask(workerID, task)
		}
	}
}

func (wp *WorkerPool) processTask(workerID int, task Task) {
	start := time.Now()

	wp.sendProgress(ProgressUpdate{
		Index:   task.Index,
		ID:      task.ID(),
		Status:  TaskStatusProcessing,
		Message: fmt.Sprintf("Worker %d started processing", workerID),
	})

	results, err := wp.run(task)
	elapsed := time.Since(start)

	wp.mu.Lock()
	wp.completedTasks++
	completed := wp.completedTasks
	total := wp.totalTasks
	wp.mu.Unlock()

	status := TaskStatusCompleted
	message := fmt.Sprintf("Worker %d completed in %v", workerID, elapsed)

	switch {
	case errors.Is(err, ErrSkipped):
		status = TaskStatusSkipped
		message = fmt.Sprintf("Worker %d skipped: %v", workerID, err)
	case err != nil:
		status = TaskStatusFailed
		message = fmt.Sprintf("Worker %d failed: %v", workerID, err)
	}

	wp.sendProgress(ProgressUpdate{
		Index:       task.Index,
		ID:          task.ID(),
		Status:      status,
		Completed:   completed,
		Total:       total,
		ElapsedTime: elapsed,
		Message:     message,
	})

	wp.results <- TaskResult{
		Task:    task,
		Results: results,
		Err:     err,
		Elapsed: elapsed,
	}
}

// run isolates one publication: a panic becomes its error.
func (wp *WorkerPool) run(task Task) (results []*pass1.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("panic processing publication %s: %v", task.ID(), r)
		}
	}()
	if task.Pub == nil {
		return nil, errNilPublication
	}
	return wp.proc.Process(task.Pub, task.Request)
}

// sendProgress drops the update when nobody keeps up with the channel.
func (wp *WorkerPool) sendProgress(update ProgressUpdate) {
	select {
	case wp.progressChan <- update:
	default:
	}
}

// SubmitTask queues a task. It returns without queueing once the pool is
// cancelled.
func (wp *WorkerPool) SubmitTask(task Task) {
	wp.mu.Lock()
	wp.totalTasks++
	wp.mu.Unlock()

	wp.sendProgress(ProgressUpdate{
		Index:   task.Index,
		ID:      task.ID(),
		Status:  TaskStatusPending,
		Message: "Task queued for processing",
	})

	select {
	case wp.tasks <- task:
	case <-wp.ctx.Done():
	}
}

// SubmitBatch submits multiple tasks at once.
func (wp *WorkerPool) SubmitBatch(tasks []Task) {
	for _, task := range tasks {
		wp.SubmitTask(task)
	}
}

// Results returns the results channel for reading results.
func (wp *WorkerPool) Results() <-chan TaskResult {
	return wp.results
}

// Progress returns the progress channel for reading progress updates.
func (wp *WorkerPool) Progress() <-chan ProgressUpdate {
	return wp.progressChan
}

// Wait closes the task queue, waits for the workers and closes the output
// channels.
func (wp *WorkerPool) Wait() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
	close(wp.progressChan)
	wp.cancel()
}

// Shutdown cancels outstanding work and waits for the workers.
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	wp.Wait()
}

// GetStats returns current processing statistics.
func (wp *WorkerPool) GetStats() WorkerPoolStats {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	return WorkerPoolStats{
		TotalTasks:     wp.totalTasks,
		CompletedTasks: wp.completedTasks,
		PendingTasks:   wp.totalTasks - wp.completedTasks,
		NumWorkers:     wp.numWorkers,
	}
}

// WorkerPoolStats provides statistics about the worker pool.
type WorkerPoolStats struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
	NumWorkers     int `json:"num_workers"`
}
