package ui

import (
	"fmt"
	"testing"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

func TestAppendLogLimit(t *testing.T) {
	s := NewState()
	for i := 0; i < 250; i++ {
		s.AppendLog(fmt.Sprintf("entry %d", i))
	}

	snap := s.Snapshot()
	if len(snap.Logs) != 200 {
		t.Fatalf("Expected 200 log entries, got %d", len(snap.Logs))
	}
	if snap.Logs[0] != "entry 50" || snap.Logs[199] != "entry 249" {
		t.Errorf("Expected the oldest entries to be trimmed, got %q ... %q", snap.Logs[0], snap.Logs[199])
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewState()
	s.AppendLog("first")
	snap := s.Snapshot()
	snap.Logs[0] = "changed"

	if got := s.Snapshot().Logs[0]; got != "first" {
		t.Errorf("Snapshot must not alias state, got %q", got)
	}
}

func TestSessionCounters(t *testing.T) {
	s := NewState()
	if snap := s.Snapshot(); snap.Triggers != plot.TriggerPick || snap.Status != "Idle" {
		t.Errorf("Unexpected defaults %+v", snap)
	}

	s.SetSession(3, 12)
	s.SetVisible(2)
	s.SetTriggers(plot.TriggerBoth)
	s.SetStatus("Ready")

	snap := s.Snapshot()
	if snap.Plots != 3 || snap.Annotations != 12 || snap.Visible != 2 {
		t.Errorf("Unexpected counters %+v", snap)
	}
	if snap.Triggers != plot.TriggerBoth || snap.Status != "Ready" {
		t.Errorf("Unexpected triggers/status %+v", snap)
	}

	s.SetSession(1, 1)
	if s.Snapshot().Visible != 0 {
		t.Error("A new session must start with no visible annotations")
	}
}
