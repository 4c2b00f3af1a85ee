package compiler

import "fmt"

// Stage identifies one step of the compilation pipeline, in execution order.
type Stage int

const (
	StageConfigure Stage = iota
	StageDetect
	StageWalk
	StageExtract
	StageKnowledge
	StageAllocate
	StageRedistribute
	StageAssemble
	StageFinalize
)

var stageNames = map[Stage]string{
	StageConfigure:    "configure",
	StageDetect:       "detect",
	StageWalk:         "walk",
	StageExtract:      "extract",
	StageKnowledge:    "knowledge",
	StageAllocate:     "allocate",
	StageRedistribute: "redistribute",
	StageAssemble:     "assemble",
	StageFinalize:     "finalize",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ProgressStatus is the state of a stage reported through ProgressEvent.
type ProgressStatus int

const (
	ProgressWorking ProgressStatus = iota
	ProgressComplete
	ProgressFailed
)

// ProgressEvent describes a stage transition during compilation.
type ProgressEvent struct {
	Stage   Stage
	Status  ProgressStatus
	Message string
}

// ProgressReporter emits progress events through a buffered channel.
type ProgressReporter struct {
	ch chan ProgressEvent
}

// NewProgressReporter creates a ProgressReporter with a buffered channel of size 64.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{
		ch: make(chan ProgressEvent, 64),
	}
}

// Emit sends a progress event in a non-blocking fashion.
// If the channel is full, the event is silently dropped.
func (pr *ProgressReporter) Emit(event ProgressEvent) {
	select {
	case pr.ch <- event:
	default:
		// Drop the event if the channel is full.
	}
}

// Subscribe returns a read-only channel for consuming progress events.
func (pr *ProgressReporter) Subscribe() <-chan ProgressEvent {
	return pr.ch
}

// Close closes the progress event channel.
func (pr *ProgressReporter) Close() {
	close(pr.ch)
}

// FormatProgress formats a ProgressEvent as a human-readable status line.
func FormatProgress(event ProgressEvent) string {
	switch event.Status {
	case ProgressWorking:
		return fmt.Sprintf("  ● %s...", event.Stage)
	case ProgressComplete:
		return fmt.Sprintf("  ✓ %s complete", event.Stage)
	case ProgressFailed:
		return fmt.Sprintf("  ✗ %s failed: %s", event.Stage, event.Message)
	default:
		return fmt.Sprintf("  ? %s (unknown status)", event.Stage)
	}
}
