package registry

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAddTabAssignsIncreasingIDs(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "registry.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id1, err := r.AddTab("one", "/tmp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, err := r.AddTab("two", "/tmp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("expected increasing tab ids, got %d then %d", id1, id2)
	}

	tabs, active := r.Snapshot()
	if len(tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(tabs))
	}
	if active != id2 {
		t.Errorf("expected active tab to be the most recently added, got %d want %d", active, id2)
	}
}

func TestAddTabPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")

	r1, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r1.AddTab("persisted", "/work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r2, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tabs, _ := r2.Snapshot()
	if len(tabs) != 1 || tabs[0].Name != "persisted" {
		t.Fatalf("expected reopened registry to see the persisted tab, got %+v", tabs)
	}
}

func TestRemoveTabReassignsActive(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "registry.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id1, _ := r.AddTab("one", "")
	id2, _ := r.AddTab("two", "")

	if err := r.RemoveTab(id2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tabs, active := r.Snapshot()
	if len(tabs) != 1 {
		t.Fatalf("expected 1 tab remaining, got %d", len(tabs))
	}
	if active != id1 {
		t.Errorf("expected active tab to fall back to %d, got %d", id1, active)
	}
}

func TestAddPaneAndUpdateActivity(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "registry.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tabID, _ := r.AddTab("work", "")
	sessionID := NewSessionID()

	if err := r.AddPane(tabID, sessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.UpdateActivity(sessionID, ActivityNeedsInput); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tabs, _ := r.Snapshot()
	if len(tabs[0].Panes) != 1 {
		t.Fatalf("expected 1 pane, got %d", len(tabs[0].Panes))
	}
	if tabs[0].Panes[0].Activity != ActivityNeedsInput {
		t.Errorf("expected activity NeedsInput, got %v", tabs[0].Panes[0].Activity)
	}
}

func TestClassifyActivityIdleWithoutOutput(t *testing.T) {
	if got := ClassifyActivity(time.Time{}, nil); got != ActivityIdle {
		t.Errorf("expected Idle with no output, got %v", got)
	}
}

func TestClassifyActivityActiveWhileRecent(t *testing.T) {
	got := ClassifyActivity(time.Now(), []string{"some output"})
	if got != ActivityActive {
		t.Errorf("expected Active shortly after output, got %v", got)
	}
}

func TestClassifyActivityNeedsInput(t *testing.T) {
	lastOutput := time.Now().Add(-2 * time.Second)
	got := ClassifyActivity(lastOutput, []string{"Do you want to proceed? [y/N]"})
	if got != ActivityNeedsInput {
		t.Errorf("expected NeedsInput, got %v", got)
	}
}

func TestClassifyActivityDoneAtPrompt(t *testing.T) {
	lastOutput := time.Now().Add(-2 * time.Second)
	got := ClassifyActivity(lastOutput, []string{"user@host:~/project$ "})
	if got != ActivityDone {
		t.Errorf("expected Done, got %v", got)
	}
}

func TestClassifyActivityIdleOtherwise(t *testing.T) {
	lastOutput := time.Now().Add(-2 * time.Second)
	got := ClassifyActivity(lastOutput, []string{"just some trailing log line"})
	if got != ActivityIdle {
		t.Errorf("expected Idle, got %v", got)
	}
}
