package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	QueueWatchlists Phase = iota
	ExportWatchlist
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case QueueWatchlists:
		return "queue_watchlists"
	case ExportWatchlist:
		return "export_watchlist"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// sendProgress sends update without blocking; a nil or full channel drops it.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func queueUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueWatchlists,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Queueing %d watchlists...", total),
	}
}

func exportCompletedUpdate(step, total int, username string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportWatchlist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d titles)", step, total, username, count),
	}
}

func exportFailedUpdate(step, total int, username, reason string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportWatchlist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, username, reason),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s", path),
	}
}
