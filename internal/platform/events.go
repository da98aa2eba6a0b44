package platform

// NativeEvent is a raw window-system event before translation into the
// portable event model. Backends emit exactly one NativeEvent per OS
// occurrence; the translation layer may expand one into several portable
// events but never invents duplicates.
type NativeEvent interface {
	nativeEvent()
}

// DeviceID distinguishes simultaneous input sources at the backend level.
// Backends that cannot tell devices apart report 0.
type DeviceID uint32

// ButtonState reports whether a key or button went down or up.
type ButtonState int

const (
	ButtonPressed ButtonState = iota
	ButtonReleased
)

// ConfiguredEvent reports a new window geometry (resize and/or move).
type ConfiguredEvent struct {
	Window        Handle
	X, Y          int
	Width, Height int
}

// CloseRequestedEvent reports the user asking the window to close
// (WM_DELETE_WINDOW and equivalents).
type CloseRequestedEvent struct {
	Window Handle
}

// DestroyedEvent is the final event for a window; nothing for the same
// handle follows it.
type DestroyedEvent struct {
	Window Handle
}

// FocusEvent reports keyboard focus entering or leaving a window.
type FocusEvent struct {
	Window  Handle
	Focused bool
}

// KeyEvent is a raw keyboard press or release aimed at a window.
type KeyEvent struct {
	Window   Handle
	Device   DeviceID
	State    ButtonState
	Keycode  uint32
	Keysym   uint32
	Rune     rune
	ModShift bool
	ModCtrl  bool
	ModAlt   bool
	ModSuper bool
}

// PointerMovedEvent reports cursor motion in window coordinates.
type PointerMovedEvent struct {
	Window Handle
	Device DeviceID
	X, Y   float64
}

// PointerCrossedEvent reports the cursor entering or leaving a window.
type PointerCrossedEvent struct {
	Window  Handle
	Device  DeviceID
	Entered bool
}

// PointerButtonEvent reports a mouse button press or release.
type PointerButtonEvent struct {
	Window Handle
	Device DeviceID
	State  ButtonState
	Button uint32
	X, Y   float64
}

// ScrollEvent reports mouse wheel or touchpad scrolling.
type ScrollEvent struct {
	Window Handle
	Device DeviceID
	DX, DY float64
	X, Y   float64
}

// TouchEvent reports one touch point transition.
type TouchEvent struct {
	Window  Handle
	Device  DeviceID
	TouchID uint64
	Phase   int // 0 started, 1 moved, 2 ended, 3 cancelled
	X, Y    float64
}

// FileDropEvent reports drag-and-drop file activity over a window.
type FileDropEvent struct {
	Window Handle
	Path   string
	Phase  int // 0 hovered, 1 dropped, 2 cancelled
}

// ScaleChangedEvent reports a DPI scale change for a window, together with
// the inner size the window system suggests after the change.
type ScaleChangedEvent struct {
	Window        Handle
	ScaleFactor   float64
	Width, Height int
}

// ThemeChangedEvent reports a system light/dark theme switch.
type ThemeChangedEvent struct {
	Window Handle
	Dark   bool
}

// ExposedEvent reports that a window region needs repainting.
type ExposedEvent struct {
	Window Handle
}

// RawMotionEvent is a window-independent relative pointer delta.
type RawMotionEvent struct {
	Device DeviceID
	DX, DY float64
}

// RawButtonEvent is a window-independent button transition.
type RawButtonEvent struct {
	Device DeviceID
	State  ButtonState
	Button uint32
}

// RawKeyEvent is a window-independent key transition.
type RawKeyEvent struct {
	Device  DeviceID
	State   ButtonState
	Keycode uint32
}

// SuspendedEvent and ResumedEvent bracket periods during which the native
// event source is paused (mobile-style lifecycle; never emitted by the
// desktop backends).
type SuspendedEvent struct{}
type ResumedEvent struct{}

// SourceClosedEvent reports that the native event source died underneath
// the backend. The loop treats it as fatal and unwinds cleanly.
type SourceClosedEvent struct {
	Err error
}

// UnknownEvent wraps a native event the backend could not classify. It is
// surfaced rather than dropped so no OS occurrence is silently lost.
type UnknownEvent struct {
	Window Handle
	Code   uint8
}

func (ConfiguredEvent) nativeEvent()     {}
func (CloseRequestedEvent) nativeEvent() {}
func (DestroyedEvent) nativeEvent()      {}
func (FocusEvent) nativeEvent()          {}
func (KeyEvent) nativeEvent()            {}
func (PointerMovedEvent) nativeEvent()   {}
func (PointerCrossedEvent) nativeEvent() {}
func (PointerButtonEvent) nativeEvent()  {}
func (ScrollEvent) nativeEvent()         {}
func (TouchEvent) nativeEvent()          {}
func (FileDropEvent) nativeEvent()       {}
func (ScaleChangedEvent) nativeEvent()   {}
func (ThemeChangedEvent) nativeEvent()   {}
func (ExposedEvent) nativeEvent()        {}
func (RawMotionEvent) nativeEvent()      {}
func (RawButtonEvent) nativeEvent()      {}
func (RawKeyEvent) nativeEvent()         {}
func (SuspendedEvent) nativeEvent()      {}
func (ResumedEvent) nativeEvent()        {}
func (SourceClosedEvent) nativeEvent()   {}
func (UnknownEvent) nativeEvent()        {}
