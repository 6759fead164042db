package pipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker tracks and reports progress for a batch of publications.
type ProgressTracker struct {
	startTime    time.Time
	lastUpdate   time.Time
	taskStatuses map[int]TaskStatus
	total        int
	updateCount  int
	mu           sync.RWMutex
}

// NewProgressTracker creates a tracker for total publications.
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{
		startTime:    time.Now(),
		lastUpdate:   time.Now(),
		taskStatuses: make(map[int]TaskStatus),
		total:        total,
	}
}

// Update records a progress update.
func (pt *ProgressTracker) Update(update ProgressUpdate) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.taskStatuses[update.Index] = update.Status
	pt.lastUpdate = time.Now()
	pt.updateCount++
}

// GetSummary returns a summary of the current progress.
func (pt *ProgressTracker) GetSummary() ProgressSummary {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	summary := ProgressSummary{
		StartTime:    pt.startTime,
		LastUpdate:   pt.lastUpdate,
		ElapsedTime:  time.Since(pt.startTime),
		UpdateCount:  pt.updateCount,
		StatusCounts: make(map[TaskStatus]int),
		TotalTasks:   pt.total,
	}

	for _, status := range pt.taskStatuses {
		summary.StatusCounts[status]++
	}

	return summary
}

// ProgressSummary provides a summary of progress tracking.
type ProgressSummary struct {
	StartTime    time.Time          `json:"start_time"`
	LastUpdate   time.Time          `json:"last_update"`
	StatusCounts map[TaskStatus]int `json:"status_counts"`
	ElapsedTime  time.Duration      `json:"elapsed_time"`
	UpdateCount  int                `json:"update_count"`
	TotalTasks   int                `json:"total_tasks"`
}

// Done counts publications that reached a final status.
func (s ProgressSummary) Done() int {
	return s.StatusCounts[TaskStatusCompleted] + s.StatusCounts[TaskStatusSkipped] + s.StatusCounts[TaskStatusFailed]
}

// PrintProgress writes a one-line progress report, overwriting the line.
func (pt *ProgressTracker) PrintProgress(w io.Writer) {
	summary := pt.GetSummary()

	done := summary.Done()
	fmt.Fprintf(w, "\rProgress: %d/%d publications", done, summary.TotalTasks)

	if skipped := summary.StatusCounts[TaskStatusSkipped]; skipped > 0 {
		fmt.Fprintf(w, " (%d skipped)", skipped)
	}

	if failed := summary.StatusCounts[TaskStatusFailed]; failed > 0 {
		fmt.Fprintf(w, " (%d failed)", failed)
	}

	if summary.TotalTasks > 0 {
		percentage := float64(done) / float64(summary.TotalTasks) * 100
		fmt.Fprintf(w, " [%.1f%%]", percentage)
	}

	fmt.Fprintf(w, " [%v elapsed]", summary.ElapsedTime.Round(time.Second))
}

// EstimateCompletion estimates the time left.
func (pt *ProgressTracker) EstimateCompletion() time.Duration {
	summary := pt.GetSummary()

	done := summary.Done()
	if done == 0 || summary.TotalTasks == 0 {
		return 0
	}

	avgTimePerTask := summary.ElapsedTime / time.Duration(done)
	remaining := summary.TotalTasks - done

	return avgTimePerTask * time.Duration(remaining)
}
