package casement

import "fmt"

// Event is the portable representation of everything the loop can deliver
// to a handler. It is a closed union: the concrete types below are the
// only implementations.
type Event interface {
	isEvent()
}

// StartCause tells the handler why a new cycle began.
type StartCause int

const (
	// CauseInit marks the very first cycle of a loop.
	CauseInit StartCause = iota
	// CausePoll marks a cycle entered immediately after the previous one
	// because ControlFlow was Poll.
	CausePoll
	// CauseWaitCancelled marks a wait interrupted by a native event or a
	// proxy wake before any deadline.
	CauseWaitCancelled
	// CauseResumeTimeReached marks a WaitUntil deadline expiring.
	CauseResumeTimeReached
)

func (c StartCause) String() string {
	switch c {
	case CauseInit:
		return "init"
	case CausePoll:
		return "poll"
	case CauseWaitCancelled:
		return "wait-cancelled"
	case CauseResumeTimeReached:
		return "resume-time-reached"
	default:
		return fmt.Sprintf("start-cause(%d)", int(c))
	}
}

// NewEvents opens every cycle.
type NewEvents struct {
	Cause StartCause
}

// WindowEvent scopes a window-level occurrence to the window it happened
// on. The carried ID was live at emission time; no WindowEvent follows the
// Destroyed kind for the same ID.
type WindowEvent struct {
	WindowID WindowID
	Kind     WindowEventKind
}

// DeviceEvent is raw, window-independent input from one device.
type DeviceEvent struct {
	DeviceID DeviceID
	Kind     DeviceEventKind
}

// UserEvent carries an application payload injected through an
// EventLoopProxy.
type UserEvent struct {
	Payload any
}

// MainEventsCleared marks the end of the input-delivery phase of a cycle.
type MainEventsCleared struct{}

// RedrawRequested asks the application to repaint one window. Multiple
// redraw requests within a cycle coalesce into one of these.
type RedrawRequested struct {
	WindowID WindowID
}

// RedrawEventsCleared marks the end of the redraw phase of a cycle.
type RedrawEventsCleared struct{}

// LoopDestroyed is the final event a handler ever sees.
type LoopDestroyed struct{}

// Suspended and Resumed bracket periods during which the native event
// source is paused. Desktop backends never emit them.
type Suspended struct{}
type Resumed struct{}

func (NewEvents) isEvent()           {}
func (WindowEvent) isEvent()         {}
func (DeviceEvent) isEvent()         {}
func (UserEvent) isEvent()           {}
func (MainEventsCleared) isEvent()   {}
func (RedrawRequested) isEvent()     {}
func (RedrawEventsCleared) isEvent() {}
func (LoopDestroyed) isEvent()       {}
func (Suspended) isEvent()           {}
func (Resumed) isEvent()             {}

// WindowEventKind is the closed union of window-level occurrences.
type WindowEventKind interface {
	isWindowEventKind()
}

// Resized reports the window's new inner size in physical pixels.
type Resized struct {
	Size PhysicalSize
}

// Moved reports the window's new outer position in screen coordinates.
type Moved struct {
	Position PhysicalPosition
}

// CloseRequested reports the user asking the window to close. The window
// stays alive until the application destroys it.
type CloseRequested struct{}

// Destroyed is the last event delivered for a window.
type Destroyed struct{}

// DroppedFile reports a file dropped onto the window.
type DroppedFile struct {
	Path string
}

// HoveredFile reports a file dragged over the window.
type HoveredFile struct {
	Path string
}

// HoveredFileCancelled reports the drag leaving without a drop.
type HoveredFileCancelled struct{}

// Focused reports keyboard focus entering (true) or leaving (false).
type Focused struct {
	Focused bool
}

// KeyboardInput is a key press or release aimed at the focused window.
type KeyboardInput struct {
	DeviceID DeviceID
	Input    KeyInput
}

// ReceivedCharacter is the text produced by a key press, after keymap and
// modifier resolution.
type ReceivedCharacter struct {
	Char rune
}

// CursorMoved reports the cursor position in window coordinates.
type CursorMoved struct {
	DeviceID DeviceID
	Position CursorPosition
}

// CursorEntered and CursorLeft report the cursor crossing the window edge.
type CursorEntered struct {
	DeviceID DeviceID
}
type CursorLeft struct {
	DeviceID DeviceID
}

// MouseWheel reports scrolling over the window.
type MouseWheel struct {
	DeviceID DeviceID
	Delta    ScrollDelta
}

// MouseInput reports a mouse button transition over the window.
type MouseInput struct {
	DeviceID DeviceID
	State    ElementState
	Button   MouseButton
}

// TouchpadPressure reports force-touch style pressure.
type TouchpadPressure struct {
	DeviceID DeviceID
	Pressure float64
	Stage    int
}

// AxisMotion reports motion on an arbitrary analog axis.
type AxisMotion struct {
	DeviceID DeviceID
	Axis     uint32
	Value    float64
}

// Touch reports one touch-point transition.
type Touch struct {
	DeviceID DeviceID
	TouchID  uint64
	Phase    TouchPhase
	Position CursorPosition
}

// ScaleFactorChanged reports a DPI change together with the inner size the
// window system suggests after the change.
type ScaleFactorChanged struct {
	ScaleFactor  float64
	NewInnerSize PhysicalSize
}

// ThemeChanged reports a system light/dark switch.
type ThemeChanged struct {
	Theme Theme
}

// Unclassified wraps a native occurrence the translation layer could not
// classify. It is delivered rather than dropped, so no native event is
// ever silently lost.
type Unclassified struct {
	Code uint8
}

func (Resized) isWindowEventKind()              {}
func (Moved) isWindowEventKind()                {}
func (CloseRequested) isWindowEventKind()       {}
func (Destroyed) isWindowEventKind()            {}
func (DroppedFile) isWindowEventKind()          {}
func (HoveredFile) isWindowEventKind()          {}
func (HoveredFileCancelled) isWindowEventKind() {}
func (Focused) isWindowEventKind()              {}
func (KeyboardInput) isWindowEventKind()        {}
func (ReceivedCharacter) isWindowEventKind()    {}
func (CursorMoved) isWindowEventKind()          {}
func (CursorEntered) isWindowEventKind()        {}
func (CursorLeft) isWindowEventKind()           {}
func (MouseWheel) isWindowEventKind()           {}
func (MouseInput) isWindowEventKind()           {}
func (TouchpadPressure) isWindowEventKind()     {}
func (AxisMotion) isWindowEventKind()           {}
func (Touch) isWindowEventKind()                {}
func (ScaleFactorChanged) isWindowEventKind()   {}
func (ThemeChanged) isWindowEventKind()         {}
func (Unclassified) isWindowEventKind()         {}

// DeviceEventKind is the closed union of window-independent raw input.
type DeviceEventKind interface {
	isDeviceEventKind()
}

// MotionDelta is a relative pointer movement.
type MotionDelta struct {
	DX, DY float64
}

// RawButton is a button transition independent of any window.
type RawButton struct {
	State  ElementState
	Button MouseButton
}

// RawKey is a key transition independent of any window.
type RawKey struct {
	State   ElementState
	Keycode uint32
}

// RawText is text input independent of any window.
type RawText struct {
	Char rune
}

func (MotionDelta) isDeviceEventKind() {}
func (RawButton) isDeviceEventKind()   {}
func (RawKey) isDeviceEventKind()      {}
func (RawText) isDeviceEventKind()     {}
