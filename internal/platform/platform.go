// Package platform defines the seam between the portable event loop and the
// OS-specific backends. A backend owns the native event source, creates and
// destroys native windows, and reports everything that happens as a stream
// of NativeEvent values in OS arrival order.
package platform

import (
	"errors"
	"image"
	"time"
)

// Handle identifies a native window inside a backend. Handles are assigned
// by the backend on CreateWindow and are never reused for the lifetime of
// the backend, so a stale handle can never alias a newer window.
type Handle uint64

// Display describes a physical display and its geometry in screen
// coordinates.
type Display struct {
	ID          int
	Name        string
	X           int
	Y           int
	Width       int
	Height      int
	ScaleFactor float64
	Primary     bool
}

// CursorIcon selects one of the standard cursor shapes.
type CursorIcon int

const (
	CursorDefault CursorIcon = iota
	CursorCrosshair
	CursorHand
	CursorArrow
	CursorMove
	CursorText
	CursorWait
	CursorHelp
	CursorProgress
	CursorNotAllowed
	CursorEWResize
	CursorNSResize
)

// FullscreenMode selects how a window goes fullscreen.
type FullscreenMode int

const (
	// FullscreenNone leaves or keeps the window in windowed mode.
	FullscreenNone FullscreenMode = iota
	// FullscreenBorderless covers the current display without a mode switch.
	FullscreenBorderless
)

// Icon is a decoded window icon. Backends rescale it to whatever sizes the
// window system advertises.
type Icon struct {
	Image *image.RGBA
}

// WindowAttributes carries every recognized window option at creation time.
// Zero values mean "backend default" except where a field is a pointer, in
// which case nil means "unconstrained".
type WindowAttributes struct {
	Title       string
	Width       int
	Height      int
	MinWidth    int
	MinHeight   int
	MaxWidth    int
	MaxHeight   int
	Resizable   bool
	Decorations bool
	Transparent bool
	AlwaysOnTop bool
	Visible     bool
	Fullscreen  FullscreenMode
	Icon        *Icon
}

// ErrUnavailable is returned by backend constructors when the underlying
// window system cannot be reached.
var ErrUnavailable = errors.New("platform: window system unavailable")

// ErrUnknownWindow is returned by window operations whose handle does not
// name a live window.
var ErrUnknownWindow = errors.New("platform: unknown window handle")

// Backend abstracts native window and event-source operations. All methods
// except Wake must be called from the thread that owns the backend; Wake is
// safe from any goroutine at any time.
//
// Event-order contract: PollNativeEvents and WaitNativeEvents surface
// native events in the order the OS produced them, and an event reported by
// the OS is never dropped; events the backend cannot classify are emitted
// as UnknownEvent.
type Backend interface {
	// Name identifies the backend ("x11", "headless").
	Name() string

	// CreateWindow creates a native window and returns its handle.
	CreateWindow(attrs WindowAttributes) (Handle, error)
	// DestroyWindow releases the native window. Further events for the
	// handle stop after the backend reports its DestroyedEvent.
	DestroyWindow(h Handle) error

	// Geometry. Setters return the geometry the OS actually accepted.
	InnerSize(h Handle) (w, hgt int, err error)
	SetInnerSize(h Handle, w, hgt int) (int, int, error)
	OuterSize(h Handle) (w, hgt int, err error)
	Position(h Handle) (x, y int, err error)
	SetPosition(h Handle, x, y int) (int, int, error)
	SetMinInnerSize(h Handle, w, hgt int) error
	SetMaxInnerSize(h Handle, w, hgt int) error

	SetTitle(h Handle, title string) error
	SetVisible(h Handle, visible bool) error
	SetResizable(h Handle, resizable bool) error
	SetDecorations(h Handle, decorations bool) error
	SetAlwaysOnTop(h Handle, onTop bool) error
	SetFullscreen(h Handle, mode FullscreenMode) error
	SetMinimized(h Handle, minimized bool) error
	SetMaximized(h Handle, maximized bool) error
	SetIcon(h Handle, icon *Icon) error

	SetCursorIcon(h Handle, icon CursorIcon) error
	SetCursorVisible(h Handle, visible bool) error
	SetCursorGrab(h Handle, grab bool) error
	SetCursorPosition(h Handle, x, y int) error

	// ScaleFactor reports the DPI scale of the display the window sits on.
	ScaleFactor(h Handle) float64

	// NativeHandle exposes the raw OS window identifier for surface
	// creation by an external graphics library.
	NativeHandle(h Handle) (uintptr, error)

	// PollNativeEvents drains every currently available native event
	// without blocking, invoking fn once per event in arrival order.
	PollNativeEvents(fn func(NativeEvent)) error
	// WaitNativeEvents blocks until at least one native event is pending,
	// Wake is called, or the timeout elapses. A timeout <= 0 means wait
	// forever. Pending events are not consumed; call PollNativeEvents
	// afterwards.
	WaitNativeEvents(timeout time.Duration) error
	// Wake unblocks a concurrent WaitNativeEvents promptly. Wakes are
	// level-triggered: multiple calls before the waiter observes them
	// coalesce into one wake-up, never zero.
	Wake()

	// Displays enumerates the connected displays.
	Displays() ([]Display, error)

	// Shutdown stops the event source and releases the native connection.
	// No method other than Wake may be called afterwards.
	Shutdown() error
}
