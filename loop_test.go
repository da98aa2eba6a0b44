package casement

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-casement/casement/internal/headless"
	"github.com/go-casement/casement/internal/platform"
)

func newTestLoop(t *testing.T) (*EventLoop, *headless.Backend) {
	t.Helper()
	backend := headless.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newEventLoop(backend, logger), backend
}

func buildTestWindow(t *testing.T, loop *EventLoop) *Window {
	t.Helper()
	win, err := NewWindowBuilder().WithTitle("test").Build(loop)
	if err != nil {
		t.Fatalf("building window: %v", err)
	}
	return win
}

// eventName flattens an event to a comparable string for sequence checks.
func eventName(ev Event) string {
	switch e := ev.(type) {
	case NewEvents:
		return "new-events:" + e.Cause.String()
	case WindowEvent:
		return fmt.Sprintf("%s:%T", e.WindowID, e.Kind)
	case DeviceEvent:
		return fmt.Sprintf("device:%T", e.Kind)
	case UserEvent:
		return fmt.Sprintf("user:%v", e.Payload)
	case RedrawRequested:
		return "redraw:" + e.WindowID.String()
	default:
		return fmt.Sprintf("%T", ev)
	}
}

func TestRunEmptyCycleSequence(t *testing.T) {
	loop, _ := newTestLoop(t)
	buildTestWindow(t, loop)

	var seq []string
	code := loop.Run(func(ev Event, cf *ControlFlow) {
		seq = append(seq, eventName(ev))
		if _, ok := ev.(RedrawEventsCleared); ok {
			cf.SetExit()
		}
	})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	want := []string{
		"new-events:init",
		"casement.MainEventsCleared",
		"casement.RedrawEventsCleared",
		"casement.LoopDestroyed",
	}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence[%d] = %q, want %q (full: %v)", i, seq[i], want[i], seq)
		}
	}
}

func TestCloseRequestFlow(t *testing.T) {
	loop, backend := newTestLoop(t)
	win := buildTestWindow(t, loop)

	backend.Inject(
		platform.ConfiguredEvent{Window: win.handle, X: 10, Y: 20, Width: 800, Height: 600},
		platform.CloseRequestedEvent{Window: win.handle},
	)

	var seq []string
	code := loop.Run(func(ev Event, cf *ControlFlow) {
		cf.SetPoll()
		seq = append(seq, eventName(ev))
		if we, ok := ev.(WindowEvent); ok {
			switch we.Kind.(type) {
			case CloseRequested:
				if err := win.Destroy(); err != nil {
					t.Errorf("destroy: %v", err)
				}
			case Destroyed:
				cf.SetExit()
			}
		}
	})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	want := []string{
		"new-events:init",
		"window-1:casement.Resized",
		"window-1:casement.Moved",
		"window-1:casement.CloseRequested",
		"casement.MainEventsCleared",
		"casement.RedrawEventsCleared",
		"new-events:poll",
		"window-1:casement.Destroyed",
		"casement.MainEventsCleared",
		"casement.RedrawEventsCleared",
		"casement.LoopDestroyed",
	}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence[%d] = %q, want %q (full: %v)", i, seq[i], want[i], seq)
		}
	}
}

func TestNoEventsAfterDestroyed(t *testing.T) {
	loop, backend := newTestLoop(t)
	win := buildTestWindow(t, loop)

	// Input queued behind the destruction must be suppressed.
	backend.Inject(
		platform.DestroyedEvent{Window: win.handle},
		platform.PointerMovedEvent{Window: win.handle, X: 5, Y: 5},
		platform.CloseRequestedEvent{Window: win.handle},
	)

	sawDestroyed := false
	code := loop.Run(func(ev Event, cf *ControlFlow) {
		cf.SetPoll()
		we, ok := ev.(WindowEvent)
		if !ok {
			if _, cleared := ev.(RedrawEventsCleared); cleared {
				cf.SetExit()
			}
			return
		}
		if sawDestroyed {
			t.Errorf("event %s delivered after Destroyed", eventName(we))
		}
		if _, isDestroyed := we.Kind.(Destroyed); isDestroyed {
			sawDestroyed = true
		}
	})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !sawDestroyed {
		t.Fatal("Destroyed was never delivered")
	}
}

func TestExitIsIrrevocable(t *testing.T) {
	loop, _ := newTestLoop(t)

	code := loop.Run(func(ev Event, cf *ControlFlow) {
		switch ev.(type) {
		case NewEvents:
			cf.SetExitWithCode(3)
		case MainEventsCleared:
			cf.SetPoll()
			cf.SetWait()
			cf.SetExitWithCode(7)
		}
	})
	if code != 3 {
		t.Fatalf("exit code = %d, want the first code set (3)", code)
	}
}

func TestLoopDestroyedDeliveredExactlyOnce(t *testing.T) {
	loop, _ := newTestLoop(t)

	destroyed := 0
	after := 0
	loop.Run(func(ev Event, cf *ControlFlow) {
		cf.SetExit()
		if _, ok := ev.(LoopDestroyed); ok {
			destroyed++
			return
		}
		if destroyed > 0 {
			after++
		}
	})
	if destroyed != 1 {
		t.Errorf("LoopDestroyed delivered %d times, want 1", destroyed)
	}
	if after != 0 {
		t.Errorf("%d events delivered after LoopDestroyed, want 0", after)
	}
}

func TestWaitUntilResumeTimeReached(t *testing.T) {
	loop, _ := newTestLoop(t)

	var deadline time.Time
	var resumedAt time.Time
	var cause StartCause
	cycle := 0
	loop.Run(func(ev Event, cf *ControlFlow) {
		switch e := ev.(type) {
		case NewEvents:
			cycle++
			if cycle == 2 {
				cause = e.Cause
				resumedAt = time.Now()
				cf.SetExit()
			}
		case RedrawEventsCleared:
			if cycle == 1 {
				deadline = time.Now().Add(30 * time.Millisecond)
				cf.SetWaitUntil(deadline)
			}
		}
	})

	if cause != CauseResumeTimeReached {
		t.Fatalf("cause = %v, want resume-time-reached", cause)
	}
	if resumedAt.Before(deadline) {
		t.Errorf("resumed %v before the deadline %v", resumedAt, deadline)
	}
}

func TestWaitUntilPastDeadlineDoesNotBlock(t *testing.T) {
	loop, _ := newTestLoop(t)

	var cause StartCause
	cycle := 0
	start := time.Now()
	loop.Run(func(ev Event, cf *ControlFlow) {
		switch e := ev.(type) {
		case NewEvents:
			cycle++
			if cycle == 2 {
				cause = e.Cause
				cf.SetExit()
			}
		case RedrawEventsCleared:
			if cycle == 1 {
				cf.SetWaitUntil(time.Now().Add(-time.Second))
			}
		}
	})

	if cause != CauseResumeTimeReached {
		t.Fatalf("cause = %v, want resume-time-reached", cause)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("past deadline blocked for %v", elapsed)
	}
}

func TestWaitCancelledByInjectedEvent(t *testing.T) {
	loop, backend := newTestLoop(t)
	win := buildTestWindow(t, loop)

	go func() {
		time.Sleep(20 * time.Millisecond)
		backend.Inject(platform.FocusEvent{Window: win.handle, Focused: true})
	}()

	var cause StartCause
	sawFocus := false
	cycle := 0
	loop.Run(func(ev Event, cf *ControlFlow) {
		cf.SetWait()
		switch e := ev.(type) {
		case NewEvents:
			cycle++
			if cycle > 1 && cause == CauseInit {
				cause = e.Cause
			}
		case WindowEvent:
			if _, ok := e.Kind.(Focused); ok {
				sawFocus = true
				cf.SetExit()
			}
		}
	})

	if cause != CauseWaitCancelled {
		t.Errorf("cause = %v, want wait-cancelled", cause)
	}
	if !sawFocus {
		t.Error("injected focus event never delivered")
	}
}

func TestRedrawCoalescing(t *testing.T) {
	loop, _ := newTestLoop(t)
	win := buildTestWindow(t, loop)

	var seq []string
	redraws := 0
	loop.Run(func(ev Event, cf *ControlFlow) {
		seq = append(seq, eventName(ev))
		switch ev.(type) {
		case NewEvents:
			win.RequestRedraw()
			win.RequestRedraw()
			win.RequestRedraw()
		case RedrawRequested:
			redraws++
		case RedrawEventsCleared:
			cf.SetExit()
		}
	})

	if redraws != 1 {
		t.Fatalf("got %d RedrawRequested, want 1 (sequence: %v)", redraws, seq)
	}

	// The redraw phase sits between MainEventsCleared and
	// RedrawEventsCleared.
	var mainIdx, redrawIdx, clearedIdx int
	for i, name := range seq {
		switch name {
		case "casement.MainEventsCleared":
			mainIdx = i
		case "redraw:window-1":
			redrawIdx = i
		case "casement.RedrawEventsCleared":
			clearedIdx = i
		}
	}
	if !(mainIdx < redrawIdx && redrawIdx < clearedIdx) {
		t.Errorf("redraw out of phase: %v", seq)
	}
}

func TestRedrawRequestsOrderedByFirstRequest(t *testing.T) {
	loop, _ := newTestLoop(t)
	first := buildTestWindow(t, loop)
	second := buildTestWindow(t, loop)

	var order []WindowID
	loop.Run(func(ev Event, cf *ControlFlow) {
		switch e := ev.(type) {
		case NewEvents:
			second.RequestRedraw()
			first.RequestRedraw()
			second.RequestRedraw()
		case RedrawRequested:
			order = append(order, e.WindowID)
		case RedrawEventsCleared:
			cf.SetExit()
		}
	})

	if len(order) != 2 || order[0] != second.ID() || order[1] != first.ID() {
		t.Fatalf("redraw order = %v, want [%v %v]", order, second.ID(), first.ID())
	}
}

func TestRunOnDestroyedLoopPanics(t *testing.T) {
	loop, _ := newTestLoop(t)
	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })

	defer func() {
		if recover() == nil {
			t.Fatal("Run on a destroyed loop did not panic")
		}
	}()
	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestRunNilHandlerPanics(t *testing.T) {
	loop, _ := newTestLoop(t)
	defer func() {
		if recover() == nil {
			t.Fatal("Run with nil handler did not panic")
		}
		// Leave the loop usable so the thread lock is released.
		loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
	}()
	loop.Run(nil)
}

func TestRunFromWrongGoroutinePanics(t *testing.T) {
	loop, _ := newTestLoop(t)

	panicked := make(chan bool, 1)
	go func() {
		defer func() { panicked <- recover() != nil }()
		loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
	}()
	if !<-panicked {
		t.Fatal("Run from a foreign goroutine did not panic")
	}

	// The loop is still intact; unwind it properly.
	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestSingleLiveLoopPerProcess(t *testing.T) {
	loop, err := NewEventLoop(WithBackend("headless"))
	if err != nil {
		t.Fatalf("first loop: %v", err)
	}

	if _, err := NewEventLoop(WithBackend("headless")); err != ErrLoopAlive {
		t.Fatalf("second loop error = %v, want ErrLoopAlive", err)
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })

	next, err := NewEventLoop(WithBackend("headless"))
	if err != nil {
		t.Fatalf("loop after destroy: %v", err)
	}
	next.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestSourceFailureExitsNonzero(t *testing.T) {
	loop, backend := newTestLoop(t)
	backend.Inject(platform.SourceClosedEvent{Err: fmt.Errorf("connection reset")})

	code := loop.Run(func(ev Event, cf *ControlFlow) {})
	if code != 1 {
		t.Fatalf("exit code = %d, want 1 after source failure", code)
	}
}

func TestWindowIDsNeverReused(t *testing.T) {
	loop, _ := newTestLoop(t)
	first := buildTestWindow(t, loop)
	second := buildTestWindow(t, loop)

	if first.ID() == second.ID() {
		t.Fatalf("distinct windows share ID %v", first.ID())
	}

	var thirdID WindowID
	loop.Run(func(ev Event, cf *ControlFlow) {
		switch ev.(type) {
		case NewEvents:
			if err := first.Destroy(); err != nil {
				t.Errorf("destroy: %v", err)
			}
		case MainEventsCleared:
			third := buildTestWindow(t, loop)
			thirdID = third.ID()
			cf.SetExit()
		}
	})

	if thirdID == first.ID() || thirdID == second.ID() {
		t.Fatalf("window ID %v was reused", thirdID)
	}
}
