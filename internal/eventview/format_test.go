package eventview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-casement/casement"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		ev   casement.Event
		want string
	}{
		{
			"new events",
			casement.NewEvents{Cause: casement.CauseWaitCancelled},
			"new-events cause=wait-cancelled",
		},
		{
			"resized",
			casement.WindowEvent{WindowID: 3, Kind: casement.Resized{Size: casement.PhysicalSize{Width: 800, Height: 600}}},
			"window-3 resized 800x600",
		},
		{
			"close requested",
			casement.WindowEvent{WindowID: 1, Kind: casement.CloseRequested{}},
			"window-1 close-requested",
		},
		{
			"keyboard",
			casement.WindowEvent{WindowID: 1, Kind: casement.KeyboardInput{
				Input: casement.KeyInput{State: casement.Pressed, Key: casement.KeyEscape, Keycode: 9},
			}},
			"window-1 key pressed escape code=9",
		},
		{
			"redraw",
			casement.RedrawRequested{WindowID: 2},
			"redraw-requested window-2",
		},
		{
			"user event",
			casement.UserEvent{Payload: "ping"},
			"user-event ping",
		},
		{
			"loop destroyed",
			casement.LoopDestroyed{},
			"loop-destroyed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.ev); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabelUnwrapsKinds(t *testing.T) {
	ev := casement.WindowEvent{WindowID: 1, Kind: casement.CursorEntered{}}
	if got := label(ev); got != "CursorEntered" {
		t.Errorf("label = %q, want CursorEntered", got)
	}
	dev := casement.DeviceEvent{Kind: casement.MotionDelta{DX: 1}}
	if got := label(dev); got != "MotionDelta" {
		t.Errorf("label = %q, want MotionDelta", got)
	}
}

func TestModelScrollbackBounded(t *testing.T) {
	m := New("headless", 4)
	m.showMarkers = true
	var model tea.Model = m
	for i := 0; i < 10; i++ {
		model, _ = model.Update(EventMsg{
			Event: casement.RedrawRequested{WindowID: casement.WindowID(i)},
			Time:  time.Now(),
		})
	}
	got := model.(Model)
	if len(got.entries) != 4 {
		t.Fatalf("scrollback holds %d entries, want 4", len(got.entries))
	}
	if got.total != 10 {
		t.Errorf("total = %d, want 10", got.total)
	}
	if !strings.Contains(got.entries[len(got.entries)-1].text, "window-9") {
		t.Errorf("last entry %q, want the newest event", got.entries[len(got.entries)-1].text)
	}
}

func TestModelPauseDropsRowsButCounts(t *testing.T) {
	m := New("headless", 16)
	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	model, _ = model.Update(EventMsg{Event: casement.RedrawRequested{WindowID: 1}, Time: time.Now()})
	got := model.(Model)
	if len(got.entries) != 0 {
		t.Errorf("paused viewer recorded %d rows, want 0", len(got.entries))
	}
	if got.total != 1 {
		t.Errorf("total = %d, want 1", got.total)
	}
}

func TestModelHidesCycleMarkersByDefault(t *testing.T) {
	m := New("headless", 16)
	var model tea.Model = m
	model, _ = model.Update(EventMsg{Event: casement.NewEvents{}, Time: time.Now()})
	model, _ = model.Update(EventMsg{Event: casement.MainEventsCleared{}, Time: time.Now()})
	model, _ = model.Update(EventMsg{Event: casement.WindowEvent{WindowID: 1, Kind: casement.Focused{Focused: true}}, Time: time.Now()})
	got := model.(Model)
	if len(got.entries) != 1 {
		t.Fatalf("viewer shows %d rows, want 1 (markers hidden)", len(got.entries))
	}
}
