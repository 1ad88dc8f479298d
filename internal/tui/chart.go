package tui

import (
	"fmt"
	"strings"
	"time"
)

// sparklineWidth is the horizontal space reserved for sparkline labels
// ("CPU 100.0% " and the panel padding).
const sparklineWidth = 17

// ChartModel renders the activity panel: a braille chart of recent
// evaluation latencies plus CPU and memory sparklines.
type ChartModel struct {
	latHistory *RingBuffer // latency samples in milliseconds
	cpuHistory *RingBuffer // 0..100
	memHistory *RingBuffer // 0..100

	lastElapsed time.Duration
	maxMs       float64

	width  int
	height int
}

// NewChartModel creates a new activity panel.
func NewChartModel() ChartModel {
	return ChartModel{
		latHistory: NewRingBuffer(64),
		cpuHistory: NewRingBuffer(64),
		memHistory: NewRingBuffer(64),
	}
}

// SetSize updates dimensions and resizes the sample buffers to fit.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	bufW := w - sparklineWidth
	if bufW < 8 {
		bufW = 8
	}
	c.latHistory.Resize(bufW)
	c.cpuHistory.Resize(bufW)
	c.memHistory.Resize(bufW)
}

// AddSample records one evaluation latency.
func (c *ChartModel) AddSample(elapsed time.Duration) {
	ms := float64(elapsed.Nanoseconds()) / 1e6
	c.latHistory.Push(ms)
	c.lastElapsed = elapsed
	if ms > c.maxMs {
		c.maxMs = ms
	}
}

// UpdateSysStats records one system-wide CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpuPct, memPct float64) {
	c.cpuHistory.Push(cpuPct)
	c.memHistory.Push(memPct)
}

// Reset clears all samples.
func (c *ChartModel) Reset() {
	c.latHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
	c.lastElapsed = 0
	c.maxMs = 0
}

// normalizedLatencies maps the latency samples onto 0..100 relative to
// the slowest evaluation seen so far.
func (c ChartModel) normalizedLatencies() []float64 {
	raw := c.latHistory.Slice()
	if len(raw) == 0 || c.maxMs <= 0 {
		return nil
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = v / c.maxMs * 100.0
	}
	return out
}

// View renders the activity panel.
func (c ChartModel) View() string {
	var b strings.Builder

	b.WriteString(" ")
	b.WriteString(metricLabelStyle.Render("Latency"))
	if c.latHistory.Len() > 0 {
		b.WriteString(metricLabelStyle.Render("  last "))
		b.WriteString(metricValueStyle.Render(formatDuration(c.lastElapsed)))
		b.WriteString(metricLabelStyle.Render("  max "))
		b.WriteString(metricValueStyle.Render(fmt.Sprintf("%.1fms", c.maxMs)))
	}
	b.WriteString("\n")

	chartRows := c.chartRows()
	chartWidth := c.width - 6
	if chartWidth < 8 {
		chartWidth = 8
	}
	values := c.normalizedLatencies()
	if len(values) == 0 {
		for range chartRows {
			b.WriteString(" ")
			b.WriteString(chartEmptyStyle.Render(strings.Repeat("⠀", chartWidth)))
			b.WriteString("\n")
		}
	} else {
		for _, row := range RenderBrailleChart(values, chartWidth, chartRows) {
			b.WriteString(" ")
			b.WriteString(chartBarStyle.Render(row))
			b.WriteString("\n")
		}
	}

	// CPU / MEM sparklines need vertical room; hide them on short panels.
	if c.height >= 10 {
		cpuLine := fmt.Sprintf(" %s %5.1f%% %s",
			metricLabelStyle.Render("CPU"),
			c.cpuHistory.Last(),
			cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice())))
		memLine := fmt.Sprintf(" %s %5.1f%% %s",
			metricLabelStyle.Render("MEM"),
			c.memHistory.Last(),
			memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice())))
		b.WriteString(cpuLine)
		b.WriteString("\n")
		b.WriteString(memLine)
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(strings.TrimRight(b.String(), "\n"))
}

// chartRows returns the number of text rows available for the braille chart.
func (c ChartModel) chartRows() int {
	rows := c.height - 5 // borders, title line, sparklines
	if c.height < 10 {
		rows = c.height - 3 // sparklines hidden
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}
