package headless

import (
	"testing"
	"time"

	"github.com/go-casement/casement/internal/platform"
)

func TestInjectPreservesOrder(t *testing.T) {
	b := New()
	h, err := b.CreateWindow(platform.WindowAttributes{Title: "t"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	b.Inject(
		platform.FocusEvent{Window: h, Focused: true},
		platform.PointerMovedEvent{Window: h, X: 1},
		platform.FocusEvent{Window: h, Focused: false},
	)

	var got []platform.NativeEvent
	if err := b.PollNativeEvents(func(ev platform.NativeEvent) {
		got = append(got, ev)
	}); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("polled %d events, want 3", len(got))
	}
	if f, ok := got[0].(platform.FocusEvent); !ok || !f.Focused {
		t.Errorf("got[0] = %v, want focus gain", got[0])
	}
	if _, ok := got[1].(platform.PointerMovedEvent); !ok {
		t.Errorf("got[1] = %T, want pointer motion", got[1])
	}

	// The queue drained; a second poll sees nothing.
	count := 0
	if err := b.PollNativeEvents(func(platform.NativeEvent) { count++ }); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if count != 0 {
		t.Errorf("second poll delivered %d events, want 0", count)
	}
}

func TestWaitReturnsImmediatelyWhenQueued(t *testing.T) {
	b := New()
	b.Inject(platform.SuspendedEvent{})

	start := time.Now()
	if err := b.WaitNativeEvents(time.Second); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("wait blocked %v with a queued event", elapsed)
	}
}

func TestWaitTimesOut(t *testing.T) {
	b := New()
	start := time.Now()
	if err := b.WaitNativeEvents(20 * time.Millisecond); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("wait returned after %v, before the timeout", elapsed)
	}
}

func TestWakeUnblocksWaiter(t *testing.T) {
	b := New()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := b.WaitNativeEvents(0); err != nil {
			t.Errorf("wait: %v", err)
		}
	}()

	time.Sleep(10 * time.Millisecond)
	b.Wake()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wake did not unblock the waiter")
	}
}

func TestRepeatedWakesCoalesce(t *testing.T) {
	b := New()
	for i := 0; i < 10; i++ {
		b.Wake()
	}

	// One wait consumes the coalesced wake...
	if err := b.WaitNativeEvents(time.Second); err != nil {
		t.Fatalf("wait: %v", err)
	}
	// ...and the next one has nothing to consume, so it times out.
	start := time.Now()
	if err := b.WaitNativeEvents(20 * time.Millisecond); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("a second wake-up survived coalescing")
	}
}

func TestSetInnerSizeClampsAndReports(t *testing.T) {
	b := New()
	h, err := b.CreateWindow(platform.WindowAttributes{
		Width: 500, Height: 500,
		MinWidth: 300, MinHeight: 200,
		MaxWidth: 800, MaxHeight: 600,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w, hgt, err := b.SetInnerSize(h, 100, 100)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if w != 300 || hgt != 200 {
		t.Errorf("clamp low = %dx%d, want 300x200", w, hgt)
	}

	w, hgt, err = b.SetInnerSize(h, 2000, 2000)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if w != 800 || hgt != 600 {
		t.Errorf("clamp high = %dx%d, want 800x600", w, hgt)
	}

	// Each accepted resize surfaces as a configure event.
	configures := 0
	if err := b.PollNativeEvents(func(ev platform.NativeEvent) {
		if _, ok := ev.(platform.ConfiguredEvent); ok {
			configures++
		}
	}); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if configures != 2 {
		t.Errorf("got %d configure events, want 2", configures)
	}
}

func TestDestroyWindowEmitsDestroyedOnce(t *testing.T) {
	b := New()
	h, err := b.CreateWindow(platform.WindowAttributes{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := b.DestroyWindow(h); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := b.DestroyWindow(h); err != platform.ErrUnknownWindow {
		t.Fatalf("second destroy = %v, want ErrUnknownWindow", err)
	}

	destroyed := 0
	if err := b.PollNativeEvents(func(ev platform.NativeEvent) {
		if _, ok := ev.(platform.DestroyedEvent); ok {
			destroyed++
		}
	}); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if destroyed != 1 {
		t.Errorf("got %d destroyed events, want 1", destroyed)
	}

	if _, _, err := b.InnerSize(h); err != platform.ErrUnknownWindow {
		t.Errorf("InnerSize on destroyed = %v, want ErrUnknownWindow", err)
	}
}

func TestShutdownInvalidatesBackend(t *testing.T) {
	b := New()
	if err := b.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := b.Shutdown(); err == nil {
		t.Error("second shutdown did not fail")
	}
	if err := b.PollNativeEvents(func(platform.NativeEvent) {}); err != platform.ErrUnavailable {
		t.Errorf("poll after shutdown = %v, want ErrUnavailable", err)
	}
	if _, err := b.CreateWindow(platform.WindowAttributes{}); err != platform.ErrUnavailable {
		t.Errorf("create after shutdown = %v, want ErrUnavailable", err)
	}
	// Injection after shutdown is dropped silently.
	b.Inject(platform.SuspendedEvent{})
}

func TestConfiguredDisplays(t *testing.T) {
	b := New(WithDisplays([]platform.Display{
		{ID: 0, Name: "left", Width: 2560, Height: 1440, Primary: true, ScaleFactor: 2.0},
		{ID: 1, Name: "right", X: 2560, Width: 1920, Height: 1080, ScaleFactor: 1.0},
	}))
	displays, err := b.Displays()
	if err != nil {
		t.Fatalf("displays: %v", err)
	}
	if len(displays) != 2 || displays[0].Name != "left" || !displays[0].Primary {
		t.Fatalf("displays = %v", displays)
	}
}
