package tui

import "time"

// TickMsg drives the periodic sampling loop.
type TickMsg time.Time

// MemStatsMsg carries a snapshot of runtime memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory usage sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// EvalResultMsg carries a completed evaluation back into the model.
// Generation tags the session the evaluation belongs to; results from
// a session cleared with Reset are discarded.
type EvalResultMsg struct {
	Expr       string
	Value      string // display form, already truncated if huge
	Bits       int
	Digits     int
	Elapsed    time.Duration
	Generation uint64
}

// EvalErrorMsg carries a failed evaluation back into the model.
type EvalErrorMsg struct {
	Expr       string
	Err        error
	Pos        int // caret position for syntax errors, -1 otherwise
	Elapsed    time.Duration
	Generation uint64
}

// ContextCancelledMsg signals that the session context was cancelled
// from the outside (signal, parent shutdown).
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
