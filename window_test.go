package casement

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestBuilderValidation(t *testing.T) {
	loop, _ := newTestLoop(t)
	defer loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })

	tests := []struct {
		name      string
		builder   *WindowBuilder
		wantField string
	}{
		{
			"zero explicit size",
			NewWindowBuilder().WithInnerSize(PhysicalSize{}),
			"inner_size",
		},
		{
			"negative explicit size",
			NewWindowBuilder().WithInnerSize(PhysicalSize{Width: -1, Height: 100}),
			"inner_size",
		},
		{
			"negative min",
			NewWindowBuilder().WithMinInnerSize(PhysicalSize{Width: -1}),
			"min_inner_size",
		},
		{
			"min exceeds max",
			NewWindowBuilder().
				WithMinInnerSize(PhysicalSize{Width: 500, Height: 500}).
				WithMaxInnerSize(PhysicalSize{Width: 400, Height: 400}),
			"min_inner_size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build(loop)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	loop, _ := newTestLoop(t)
	win := buildTestWindow(t, loop)

	size, err := win.InnerSize()
	if err != nil {
		t.Fatalf("inner size: %v", err)
	}
	if size != (PhysicalSize{Width: 1024, Height: 768}) {
		t.Fatalf("default size = %v, want 1024x768", size)
	}
	if win.ScaleFactor() != 1.0 {
		t.Errorf("scale = %v, want 1.0", win.ScaleFactor())
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestSetInnerSizeReportsAcceptedSize(t *testing.T) {
	loop, _ := newTestLoop(t)
	win, err := NewWindowBuilder().
		WithInnerSize(PhysicalSize{Width: 900, Height: 700}).
		WithMinInnerSize(PhysicalSize{Width: 800, Height: 600}).
		Build(loop)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	accepted, err := win.SetInnerSize(PhysicalSize{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("set inner size: %v", err)
	}
	if accepted != (PhysicalSize{Width: 800, Height: 600}) {
		t.Fatalf("accepted = %v, want clamp to the 800x600 minimum", accepted)
	}

	current, err := win.InnerSize()
	if err != nil {
		t.Fatalf("inner size: %v", err)
	}
	if current != accepted {
		t.Errorf("InnerSize = %v after accepting %v", current, accepted)
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestSetOuterPositionRoundTrips(t *testing.T) {
	loop, _ := newTestLoop(t)
	win := buildTestWindow(t, loop)

	accepted, err := win.SetOuterPosition(PhysicalPosition{X: 200, Y: 100})
	if err != nil {
		t.Fatalf("set position: %v", err)
	}
	got, err := win.OuterPosition()
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if got != accepted {
		t.Errorf("OuterPosition = %v, accepted was %v", got, accepted)
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestWindowIDMarshalling(t *testing.T) {
	id := WindowID(7)
	text, err := id.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(text) != "window-7" {
		t.Fatalf("text = %q, want window-7", text)
	}
	var back WindowID
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != id {
		t.Errorf("round trip = %v, want %v", back, id)
	}
}

func TestUseAfterDestroyPanics(t *testing.T) {
	loop, _ := newTestLoop(t)
	win := buildTestWindow(t, loop)

	loop.Run(func(ev Event, cf *ControlFlow) {
		cf.SetPoll()
		switch ev.(type) {
		case NewEvents:
			if err := win.Destroy(); err != nil {
				t.Errorf("destroy: %v", err)
			}
		case WindowEvent:
			cf.SetExit()
		}
	})

	defer func() {
		if recover() == nil {
			t.Fatal("SetTitle on a destroyed window did not panic")
		}
	}()
	_ = win.SetTitle("ghost")
}

func TestWindowUseAfterLoopDestroyPanics(t *testing.T) {
	loop, _ := newTestLoop(t)
	win := buildTestWindow(t, loop)
	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })

	defer func() {
		if recover() == nil {
			t.Fatal("window use after loop destruction did not panic")
		}
	}()
	_, _ = win.InnerSize()
}

func TestSetWindowIconConvertsImage(t *testing.T) {
	loop, _ := newTestLoop(t)

	// A non-RGBA source exercises the conversion path.
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	win, err := NewWindowBuilder().WithWindowIcon(src).Build(loop)
	if err != nil {
		t.Fatalf("build with icon: %v", err)
	}
	if err := win.SetWindowIcon(src); err != nil {
		t.Fatalf("set icon: %v", err)
	}
	if err := win.SetWindowIcon(nil); err != nil {
		t.Fatalf("clear icon: %v", err)
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestFullscreenAndStateSetters(t *testing.T) {
	loop, _ := newTestLoop(t)
	win := buildTestWindow(t, loop)

	if err := win.SetFullscreen(FullscreenBorderless); err != nil {
		t.Errorf("fullscreen: %v", err)
	}
	if err := win.SetFullscreen(FullscreenNone); err != nil {
		t.Errorf("windowed: %v", err)
	}
	if err := win.SetMaximized(true); err != nil {
		t.Errorf("maximize: %v", err)
	}
	if err := win.SetMinimized(true); err != nil {
		t.Errorf("minimize: %v", err)
	}
	if err := win.SetCursorIcon(CursorHand); err != nil {
		t.Errorf("cursor icon: %v", err)
	}
	if err := win.SetCursorVisible(false); err != nil {
		t.Errorf("cursor hide: %v", err)
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestNativeHandleStableUntilDestroy(t *testing.T) {
	loop, _ := newTestLoop(t)
	win := buildTestWindow(t, loop)

	h1, err := win.NativeHandle()
	if err != nil {
		t.Fatalf("native handle: %v", err)
	}
	h2, err := win.NativeHandle()
	if err != nil {
		t.Fatalf("native handle: %v", err)
	}
	if h1 != h2 || h1 == 0 {
		t.Fatalf("handle unstable: %v then %v", h1, h2)
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}

func TestMonitorsFromLoop(t *testing.T) {
	loop, _ := newTestLoop(t)

	monitors, err := loop.AvailableMonitors()
	if err != nil {
		t.Fatalf("monitors: %v", err)
	}
	if len(monitors) != 1 || monitors[0].Name() != "headless-0" {
		t.Fatalf("monitors = %v, want the single headless display", monitors)
	}
	primary, err := loop.PrimaryMonitor()
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	if !primary.Primary() || primary.Size() != (PhysicalSize{Width: 1920, Height: 1080}) {
		t.Errorf("primary = %v", primary)
	}

	loop.Run(func(ev Event, cf *ControlFlow) { cf.SetExit() })
}
