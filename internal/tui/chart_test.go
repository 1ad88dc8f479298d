package tui

import (
	"strings"
	"testing"
	"time"
)

func TestChartModel_AddSample(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddSample(30 * time.Millisecond)
	chart.AddSample(20 * time.Millisecond)
	chart.AddSample(10 * time.Millisecond)

	if chart.latHistory.Len() != 3 {
		t.Errorf("expected 3 latency samples, got %d", chart.latHistory.Len())
	}
	if chart.lastElapsed != 10*time.Millisecond {
		t.Errorf("expected last elapsed 10ms, got %v", chart.lastElapsed)
	}
	if chart.maxMs != 30.0 {
		t.Errorf("expected max 30.0ms, got %f", chart.maxMs)
	}
}

func TestChartModel_Reset(t *testing.T) {
	chart := NewChartModel()
	chart.AddSample(10 * time.Millisecond)
	chart.AddSample(5 * time.Millisecond)
	chart.UpdateSysStats(25.0, 60.0)

	chart.Reset()

	if chart.latHistory.Len() != 0 {
		t.Error("expected latHistory to be empty after reset")
	}
	if chart.maxMs != 0 {
		t.Errorf("expected 0 max after reset, got %f", chart.maxMs)
	}
	if chart.cpuHistory.Len() != 0 {
		t.Error("expected cpuHistory to be empty after reset")
	}
	if chart.memHistory.Len() != 0 {
		t.Error("expected memHistory to be empty after reset")
	}
}

func TestChartModel_View(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddSample(20 * time.Millisecond)
	chart.AddSample(10 * time.Millisecond)

	view := chart.View()
	if !strings.Contains(view, "Latency") {
		t.Error("expected view to contain 'Latency'")
	}
	if !strings.Contains(view, "max") {
		t.Error("expected view to contain max latency")
	}
}

func TestChartModel_NormalizedLatencies(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddSample(10 * time.Millisecond)
	chart.AddSample(40 * time.Millisecond)

	norm := chart.normalizedLatencies()
	if len(norm) != 2 {
		t.Fatalf("expected 2 normalized values, got %d", len(norm))
	}
	if norm[0] != 25.0 {
		t.Errorf("expected first value 25.0, got %f", norm[0])
	}
	if norm[1] != 100.0 {
		t.Errorf("expected second value 100.0, got %f", norm[1])
	}
}

func TestChartModel_NormalizedLatencies_Empty(t *testing.T) {
	chart := NewChartModel()
	if norm := chart.normalizedLatencies(); norm != nil {
		t.Errorf("expected nil for empty history, got %v", norm)
	}
}

func TestChartModel_UpdateSysStats(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	chart.UpdateSysStats(25.0, 60.0)
	chart.UpdateSysStats(30.0, 62.0)

	if chart.cpuHistory.Len() != 2 {
		t.Errorf("expected 2 cpu samples, got %d", chart.cpuHistory.Len())
	}
	if chart.memHistory.Len() != 2 {
		t.Errorf("expected 2 mem samples, got %d", chart.memHistory.Len())
	}
	if chart.cpuHistory.Last() != 30.0 {
		t.Errorf("expected last cpu 30.0, got %f", chart.cpuHistory.Last())
	}
	if chart.memHistory.Last() != 62.0 {
		t.Errorf("expected last mem 62.0, got %f", chart.memHistory.Last())
	}
}

func TestChartModel_View_ContainsSparklines(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15) // height >= 10, sparklines visible

	chart.UpdateSysStats(50.0, 75.0)
	chart.UpdateSysStats(60.0, 80.0)

	view := chart.View()
	if !strings.Contains(view, "CPU") {
		t.Error("expected view to contain 'CPU' sparkline label")
	}
	if !strings.Contains(view, "MEM") {
		t.Error("expected view to contain 'MEM' sparkline label")
	}
}

func TestChartModel_View_HidesSparklines_SmallHeight(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 8) // height < 10, sparklines hidden

	chart.UpdateSysStats(50.0, 75.0)

	view := chart.View()
	if strings.Contains(view, "CPU") {
		t.Error("expected sparklines to be hidden for small height")
	}
}

func TestChartModel_SetSize_ResizesBuffers(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	expectedWidth := 50 - sparklineWidth
	if chart.cpuHistory.Cap() != expectedWidth {
		t.Errorf("expected cpu buffer cap %d, got %d", expectedWidth, chart.cpuHistory.Cap())
	}
	if chart.memHistory.Cap() != expectedWidth {
		t.Errorf("expected mem buffer cap %d, got %d", expectedWidth, chart.memHistory.Cap())
	}
	if chart.latHistory.Cap() != expectedWidth {
		t.Errorf("expected latency buffer cap %d, got %d", expectedWidth, chart.latHistory.Cap())
	}
}
