package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"waypoint/internal/trip"
)

type capturedUpdate struct {
	nodeID string
	field  trip.Field
	value  string
}

func newTestBoard(updates *[]capturedUpdate) *boardView {
	itin := testItinerary()
	v := &boardView{
		app:       &App{},
		itin:      &itin,
		activeDay: 1,
		expanded:  map[string]struct{}{},
		onUpdate: func(nodeID string, field trip.Field, value string) {
			*updates = append(*updates, capturedUpdate{nodeID, field, value})
		},
	}
	v.refresh()
	return v
}

func TestCommitInvokesCallbackOnlyWhenChanged(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)

	board.startEdit(trip.FieldName)
	board.input.SetValue("大昭寺")
	board.commitEdit()
	if len(updates) != 0 {
		t.Fatalf("unchanged value must not invoke callback, got %v", updates)
	}
	if board.editing != nil {
		t.Fatal("commit must exit edit mode even when unchanged")
	}

	board.startEdit(trip.FieldName)
	board.input.SetValue("  大昭寺转经  ")
	board.commitEdit()
	if len(updates) != 1 {
		t.Fatalf("expected one update, got %v", updates)
	}
	if updates[0].value != "大昭寺转经" {
		t.Fatalf("value must be trimmed, got %q", updates[0].value)
	}
	if updates[0].nodeID != "n-jokhang" || updates[0].field != trip.FieldName {
		t.Fatalf("wrong update target: %+v", updates[0])
	}
}

func TestCommitSkipsEmptyValue(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)
	board.startEdit(trip.FieldName)
	board.input.SetValue("   ")
	board.commitEdit()
	if len(updates) != 0 {
		t.Fatalf("empty value must not invoke callback, got %v", updates)
	}
}

func TestCancelRestoresDisplayedValue(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)
	board.startEdit(trip.FieldScheduledTime)
	board.input.SetValue("23:59")
	board.cancelEdit()
	if len(updates) != 0 {
		t.Fatal("cancel must not invoke callback")
	}
	node, _ := board.currentNode()
	if node.ScheduledTime != "09:00" {
		t.Fatalf("pre-edit value must survive cancel, got %q", node.ScheduledTime)
	}
	if !strings.Contains(board.View(), "09:00") {
		t.Fatal("view must render the pre-edit value after cancel")
	}
}

func TestStartingNewEditAbandonsDraft(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)
	board.startEdit(trip.FieldName)
	board.input.SetValue("未保存草稿")
	board.startEdit(trip.FieldDescription)
	if board.editing == nil || board.editing.field != trip.FieldDescription {
		t.Fatalf("edit slot must move to the new field, got %+v", board.editing)
	}
	if len(updates) != 0 {
		t.Fatal("abandoned draft must never be saved")
	}
}

func TestExpandToggleDoesNotStartEdit(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)
	board.Update(tea.KeyMsg{Type: tea.KeyTab})
	node, _ := board.currentNode()
	if _, open := board.expanded[node.ID]; !open {
		t.Fatal("tab must expand the selected node")
	}
	if board.editing != nil {
		t.Fatal("expansion must not touch the edit slot")
	}
	board.Update(tea.KeyMsg{Type: tea.KeyTab})
	if _, open := board.expanded[node.ID]; open {
		t.Fatal("second tab must collapse the node")
	}
}

func TestDaySwitchingIsExplicitAndBounded(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)
	board.selectDay(0)
	if board.activeDay != 1 {
		t.Fatalf("day 0 must be ignored, got %d", board.activeDay)
	}
	board.selectDay(2)
	if board.activeDay != 2 || board.selection != 0 {
		t.Fatalf("day switch must reset selection, got day=%d sel=%d", board.activeDay, board.selection)
	}
	board.selectDay(3)
	if board.activeDay != 2 {
		t.Fatalf("out-of-range day must be ignored, got %d", board.activeDay)
	}
}

func TestEmptyDayRendersIndicator(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)
	board.itin.TotalDays = 3
	board.refresh()
	board.selectDay(3)
	if !strings.Contains(board.View(), "这一天还没有安排") {
		t.Fatal("empty day must render the explicit indicator")
	}
}

func TestCardShowsDurationTagsAndBadge(t *testing.T) {
	var updates []capturedUpdate
	board := newTestBoard(&updates)
	board.selection = 1 // 布达拉宫
	view := board.View()
	if !strings.Contains(view, "1h30m") {
		t.Fatal("duration missing from card")
	}
	if !strings.Contains(view, "门票200元") {
		t.Fatal("key tag missing from card")
	}
	if strings.Contains(view, trip.NotApplicable) {
		t.Fatal("sentinel tag must not render")
	}
	if !strings.Contains(view, "已变更") {
		t.Fatal("status badge missing from card")
	}
}
