package casement

import (
	"fmt"

	"github.com/go-casement/casement/internal/platform"
)

// translate converts one native event into zero or more portable events.
// One native occurrence never yields duplicate portable events, and an
// unclassifiable native event surfaces as Unclassified rather than being
// dropped.
func (l *EventLoop) translate(native platform.NativeEvent) []Event {
	switch n := native.(type) {
	case platform.ConfiguredEvent:
		return l.translateConfigure(n)

	case platform.CloseRequestedEvent:
		return l.windowEvent(n.Window, CloseRequested{})

	case platform.DestroyedEvent:
		return l.windowEvent(n.Window, Destroyed{})

	case platform.FocusEvent:
		return l.windowEvent(n.Window, Focused{Focused: n.Focused})

	case platform.KeyEvent:
		return l.translateKey(n)

	case platform.PointerMovedEvent:
		return l.windowEvent(n.Window, CursorMoved{
			DeviceID: DeviceID(n.Device),
			Position: CursorPosition{X: n.X, Y: n.Y},
		})

	case platform.PointerCrossedEvent:
		if n.Entered {
			return l.windowEvent(n.Window, CursorEntered{DeviceID: DeviceID(n.Device)})
		}
		return l.windowEvent(n.Window, CursorLeft{DeviceID: DeviceID(n.Device)})

	case platform.PointerButtonEvent:
		return l.windowEvent(n.Window, MouseInput{
			DeviceID: DeviceID(n.Device),
			State:    elementState(n.State),
			Button:   mouseButton(n.Button),
		})

	case platform.ScrollEvent:
		return l.windowEvent(n.Window, MouseWheel{
			DeviceID: DeviceID(n.Device),
			Delta:    ScrollDelta{Unit: ScrollLines, X: n.DX, Y: n.DY},
		})

	case platform.TouchEvent:
		return l.windowEvent(n.Window, Touch{
			DeviceID: DeviceID(n.Device),
			TouchID:  n.TouchID,
			Phase:    TouchPhase(n.Phase),
			Position: CursorPosition{X: n.X, Y: n.Y},
		})

	case platform.FileDropEvent:
		switch n.Phase {
		case 0:
			return l.windowEvent(n.Window, HoveredFile{Path: n.Path})
		case 1:
			return l.windowEvent(n.Window, DroppedFile{Path: n.Path})
		default:
			return l.windowEvent(n.Window, HoveredFileCancelled{})
		}

	case platform.ScaleChangedEvent:
		return l.windowEvent(n.Window, ScaleFactorChanged{
			ScaleFactor:  n.ScaleFactor,
			NewInnerSize: PhysicalSize{Width: n.Width, Height: n.Height},
		})

	case platform.ThemeChangedEvent:
		theme := ThemeLight
		if n.Dark {
			theme = ThemeDark
		}
		return l.windowEvent(n.Window, ThemeChanged{Theme: theme})

	case platform.ExposedEvent:
		// Exposure is a redraw demand, not an input event; it joins the
		// coalesced redraw phase of this cycle.
		if id, ok := l.byHandle[n.Window]; ok {
			l.requestRedraw(id)
		}
		return nil

	case platform.RawMotionEvent:
		return []Event{DeviceEvent{
			DeviceID: DeviceID(n.Device),
			Kind:     MotionDelta{DX: n.DX, DY: n.DY},
		}}

	case platform.RawButtonEvent:
		return []Event{DeviceEvent{
			DeviceID: DeviceID(n.Device),
			Kind:     RawButton{State: elementState(n.State), Button: mouseButton(n.Button)},
		}}

	case platform.RawKeyEvent:
		return []Event{DeviceEvent{
			DeviceID: DeviceID(n.Device),
			Kind:     RawKey{State: elementState(n.State), Keycode: n.Keycode},
		}}

	case platform.SuspendedEvent:
		return []Event{Suspended{}}

	case platform.ResumedEvent:
		return []Event{Resumed{}}

	case platform.SourceClosedEvent:
		l.fatal = n.Err
		return nil

	case platform.UnknownEvent:
		return l.windowEvent(n.Window, Unclassified{Code: n.Code})

	default:
		// A backend emitted a native type this layer does not know about.
		l.logger.Warn("untranslatable native event", "backend", l.backend.Name(), "type", fmt.Sprintf("%T", native))
		return []Event{DeviceEvent{DeviceID: 0, Kind: RawKey{}}}
	}
}

// translateConfigure diffs a native configure against the cached geometry:
// a size change yields Resized, a position change yields Moved, and the
// first configure for a window bootstraps both.
func (l *EventLoop) translateConfigure(n platform.ConfiguredEvent) []Event {
	id, ok := l.byHandle[n.Window]
	if !ok {
		return nil
	}
	prev := l.geom[id]
	l.geom[id] = geometry{known: true, x: n.X, y: n.Y, width: n.Width, height: n.Height}

	var out []Event
	if !prev.known || prev.width != n.Width || prev.height != n.Height {
		out = append(out, WindowEvent{WindowID: id, Kind: Resized{
			Size: PhysicalSize{Width: n.Width, Height: n.Height},
		}})
	}
	if !prev.known || prev.x != n.X || prev.y != n.Y {
		out = append(out, WindowEvent{WindowID: id, Kind: Moved{
			Position: PhysicalPosition{X: n.X, Y: n.Y},
		}})
	}
	return out
}

// translateKey expands a key press into KeyboardInput plus, for printable
// input, a ReceivedCharacter.
func (l *EventLoop) translateKey(n platform.KeyEvent) []Event {
	id, ok := l.byHandle[n.Window]
	if !ok {
		return nil
	}
	var mods Modifiers
	if n.ModShift {
		mods |= ModShift
	}
	if n.ModCtrl {
		mods |= ModCtrl
	}
	if n.ModAlt {
		mods |= ModAlt
	}
	if n.ModSuper {
		mods |= ModSuper
	}

	key, r := resolveKeysym(n.Keysym, n.Rune)
	out := []Event{WindowEvent{WindowID: id, Kind: KeyboardInput{
		DeviceID: DeviceID(n.Device),
		Input: KeyInput{
			State:     elementState(n.State),
			Keycode:   n.Keycode,
			Key:       key,
			Rune:      r,
			Modifiers: mods,
		},
	}}}
	if n.State == platform.ButtonPressed && r != 0 {
		out = append(out, WindowEvent{WindowID: id, Kind: ReceivedCharacter{Char: r}})
	}
	return out
}

// windowEvent wraps a kind for the window owning the native handle.
// Events for handles this loop never created are discarded: they belong
// to foreign windows on a shared connection, not to this loop.
func (l *EventLoop) windowEvent(h platform.Handle, kind WindowEventKind) []Event {
	id, ok := l.byHandle[h]
	if !ok {
		return nil
	}
	return []Event{WindowEvent{WindowID: id, Kind: kind}}
}

func elementState(s platform.ButtonState) ElementState {
	if s == platform.ButtonPressed {
		return Pressed
	}
	return Released
}

func mouseButton(native uint32) MouseButton {
	switch native {
	case 1:
		return MouseButton{Kind: ButtonLeft}
	case 2:
		return MouseButton{Kind: ButtonMiddle}
	case 3:
		return MouseButton{Kind: ButtonRight}
	default:
		return MouseButton{Kind: ButtonOther, Other: uint16(native)}
	}
}
