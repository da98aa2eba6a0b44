package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/go-casement/casement/internal/platform"
)

// X core device ids: the virtual core pointer and keyboard.
const (
	corePointer  platform.DeviceID = 2
	coreKeyboard platform.DeviceID = 3
)

// translateXEvent converts a wire event into a native event. The second
// return is false for events handled entirely inside the backend (keymap
// refreshes, non-final exposures) and for windows this backend does not
// manage.
func (b *Backend) translateXEvent(ev xgb.Event) (platform.NativeEvent, bool) {
	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		h, ok := b.handleFor(uint32(e.Window))
		if !ok {
			return nil, false
		}
		b.mu.Lock()
		if w, exists := b.windows[h]; exists {
			w.curWidth, w.curHeight = int(e.Width), int(e.Height)
		}
		b.mu.Unlock()
		return platform.ConfiguredEvent{
			Window: h,
			X:      int(e.X),
			Y:      int(e.Y),
			Width:  int(e.Width),
			Height: int(e.Height),
		}, true

	case xproto.ClientMessageEvent:
		h, ok := b.handleFor(uint32(e.Window))
		if !ok {
			return nil, false
		}
		if e.Type == b.conn.atomProtocols && e.Format == 32 &&
			xproto.Atom(e.Data.Data32[0]) == b.conn.atomDeleteWindow {
			return platform.CloseRequestedEvent{Window: h}, true
		}
		return platform.UnknownEvent{Window: h, Code: e.Bytes()[0]}, true

	case xproto.DestroyNotifyEvent:
		h, ok := b.handleFor(uint32(e.Window))
		if !ok {
			return nil, false
		}
		b.mu.Lock()
		if w, exists := b.windows[h]; exists {
			w.destroyed = true
			delete(b.byXID, w.xid)
		}
		b.mu.Unlock()
		return platform.DestroyedEvent{Window: h}, true

	case xproto.FocusInEvent:
		return b.focusEvent(uint32(e.Event), e.Mode, true)

	case xproto.FocusOutEvent:
		return b.focusEvent(uint32(e.Event), e.Mode, false)

	case xproto.KeyPressEvent:
		return b.keyEvent(uint32(e.Event), e.Detail, e.State, platform.ButtonPressed)

	case xproto.KeyReleaseEvent:
		return b.keyEvent(uint32(e.Event), e.Detail, e.State, platform.ButtonReleased)

	case xproto.MotionNotifyEvent:
		h, ok := b.handleFor(uint32(e.Event))
		if !ok {
			return nil, false
		}
		return platform.PointerMovedEvent{
			Window: h,
			Device: corePointer,
			X:      float64(e.EventX),
			Y:      float64(e.EventY),
		}, true

	case xproto.EnterNotifyEvent:
		h, ok := b.handleFor(uint32(e.Event))
		if !ok {
			return nil, false
		}
		return platform.PointerCrossedEvent{Window: h, Device: corePointer, Entered: true}, true

	case xproto.LeaveNotifyEvent:
		h, ok := b.handleFor(uint32(e.Event))
		if !ok {
			return nil, false
		}
		return platform.PointerCrossedEvent{Window: h, Device: corePointer, Entered: false}, true

	case xproto.ButtonPressEvent:
		return b.buttonEvent(uint32(e.Event), e.Detail, float64(e.EventX), float64(e.EventY), platform.ButtonPressed)

	case xproto.ButtonReleaseEvent:
		return b.buttonEvent(uint32(e.Event), e.Detail, float64(e.EventX), float64(e.EventY), platform.ButtonReleased)

	case xproto.ExposeEvent:
		// Only the final expose in a series matters; earlier ones carry a
		// nonzero count of rectangles still to come.
		if e.Count != 0 {
			return nil, false
		}
		h, ok := b.handleFor(uint32(e.Window))
		if !ok {
			return nil, false
		}
		return platform.ExposedEvent{Window: h}, true

	case xproto.MappingNotifyEvent:
		// Keymap changed under us; rebuild the keysym tables.
		keybind.Initialize(b.conn.XUtil)
		return nil, false

	case xproto.MapNotifyEvent, xproto.UnmapNotifyEvent, xproto.ReparentNotifyEvent:
		// Lifecycle chatter from our own StructureNotify subscription.
		return nil, false

	default:
		raw := ev.Bytes()
		if len(raw) == 0 {
			return nil, false
		}
		return platform.UnknownEvent{Code: raw[0] & 0x7f}, true
	}
}

func (b *Backend) focusEvent(xid uint32, mode byte, focused bool) (platform.NativeEvent, bool) {
	// Grab-driven focus transitions are transient and not surfaced.
	if mode != xproto.NotifyModeNormal && mode != xproto.NotifyModeWhileGrabbed {
		return nil, false
	}
	h, ok := b.handleFor(xid)
	if !ok {
		return nil, false
	}
	return platform.FocusEvent{Window: h, Focused: focused}, true
}

func (b *Backend) keyEvent(xid uint32, keycode xproto.Keycode, state uint16, bs platform.ButtonState) (platform.NativeEvent, bool) {
	h, ok := b.handleFor(xid)
	if !ok {
		return nil, false
	}
	keysym := keybind.KeysymGet(b.conn.XUtil, keycode, 0)

	var r rune
	if s := keybind.LookupString(b.conn.XUtil, state, keycode); len(s) > 0 {
		runes := []rune(s)
		if len(runes) == 1 && runes[0] >= 0x20 {
			r = runes[0]
		}
	}

	return platform.KeyEvent{
		Window:   h,
		Device:   coreKeyboard,
		State:    bs,
		Keycode:  uint32(keycode),
		Keysym:   uint32(keysym),
		Rune:     r,
		ModShift: state&xproto.ModMaskShift != 0,
		ModCtrl:  state&xproto.ModMaskControl != 0,
		ModAlt:   state&xproto.ModMask1 != 0,
		ModSuper: state&xproto.ModMask4 != 0,
	}, true
}

// buttonEvent splits the X button space: buttons 4-7 are wheel clicks and
// become scroll events (on press only; their releases are noise), the
// rest are real buttons.
func (b *Backend) buttonEvent(xid uint32, button xproto.Button, x, y float64, bs platform.ButtonState) (platform.NativeEvent, bool) {
	h, ok := b.handleFor(xid)
	if !ok {
		return nil, false
	}
	if button >= 4 && button <= 7 {
		if bs == platform.ButtonReleased {
			return nil, false
		}
		var dx, dy float64
		switch button {
		case 4:
			dy = 1
		case 5:
			dy = -1
		case 6:
			dx = -1
		case 7:
			dx = 1
		}
		return platform.ScrollEvent{Window: h, Device: corePointer, DX: dx, DY: dy, X: x, Y: y}, true
	}
	return platform.PointerButtonEvent{
		Window: h,
		Device: corePointer,
		State:  bs,
		Button: uint32(button),
		X:      x,
		Y:      y,
	}, true
}
