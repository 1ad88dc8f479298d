package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/format"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

const (
	// TruncationLimit is the digit threshold from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
	// HexDisplayEdges specifies the number of hex characters to display at the
	// beginning and end of a truncated hexadecimal number.
	HexDisplayEdges = 40
	// SpinnerRefreshRate defines the refresh frequency of the evaluation
	// spinner and its elapsed-time suffix.
	SpinnerRefreshRate = 200 * time.Millisecond
	// spinnerLabelLimit bounds the expression length shown next to the spinner.
	spinnerLabelLimit = 48
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the progress display from a specific
// spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as SpinnerRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// spinnerLabel shortens an expression for display next to the spinner.
func spinnerLabel(expr string) string {
	if len(expr) <= spinnerLabelLimit {
		return expr
	}
	return expr[:spinnerLabelLimit] + "…"
}

// RunWithSpinner runs fn while animating a spinner on out. The suffix
// shows the label and the elapsed time, refreshed at SpinnerRefreshRate.
// It returns whatever fn returns.
func RunWithSpinner(out io.Writer, label string, fn func() error) error {
	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(" " + spinnerLabel(label))
	sp.Start()
	defer sp.Stop()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	start := time.Now()
	ticker := time.NewTicker(SpinnerRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			return err
		case <-ticker.C:
			elapsed := time.Since(start).Round(100 * time.Millisecond)
			sp.UpdateSuffix(" " + spinnerLabel(label) + " (" + elapsed.String() + ")")
		}
	}
}
