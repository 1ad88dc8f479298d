package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// MetricsModel displays runtime memory statistics and evaluation counters.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	evalCount    int
	errCount     int
	lastElapsed  time.Duration
	totalElapsed time.Duration
	lastBits     int

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// RecordEval accounts a successful evaluation.
func (m *MetricsModel) RecordEval(bits int, elapsed time.Duration) {
	m.evalCount++
	m.lastElapsed = elapsed
	m.totalElapsed += elapsed
	m.lastBits = bits
}

// RecordError accounts a failed evaluation.
func (m *MetricsModel) RecordError() {
	m.errCount++
}

// avgElapsed returns the mean duration over successful evaluations.
func (m MetricsModel) avgElapsed() time.Duration {
	if m.evalCount == 0 {
		return 0
	}
	return m.totalElapsed / time.Duration(m.evalCount)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	// Compact top line: Memory: X / Y | GC Runs: N (Xms)
	memStr := metricValueStyle.Render(formatBytes(m.alloc) + " / " + formatBytes(m.heapInuse))
	gcStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	pipe := metricLabelStyle.Render(" | ")
	topLine := fmt.Sprintf("  %s %s%s%s %s",
		metricLabelStyle.Render("Memory:"), memStr,
		pipe,
		metricLabelStyle.Render("GC Runs:"), gcStr)
	rows.WriteString(topLine)

	colWidth := (m.width - 6) / 2

	lastStr := "-"
	avgStr := "-"
	bitsStr := "-"
	if m.evalCount > 0 {
		lastStr = formatDuration(m.lastElapsed)
		avgStr = formatDuration(m.avgElapsed())
		bitsStr = fmt.Sprintf("%d", m.lastBits)
	}

	leftCol := []string{
		formatMetricCol("Evals:", fmt.Sprintf("%d", m.evalCount), colWidth),
		formatMetricCol("Last:", lastStr, colWidth),
		formatMetricCol("Heap:", formatBytes(m.heapInuse), colWidth),
	}
	rightCol := []string{
		formatMetricCol("Errors:", fmt.Sprintf("%d", m.errCount), colWidth),
		formatMetricCol("Avg:", avgStr, colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
	}
	if m.evalCount > 0 {
		leftCol = append(leftCol, formatMetricCol("Bits:", bitsStr, colWidth))
		rightCol = append(rightCol, formatMetricCol("", "", colWidth))
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
