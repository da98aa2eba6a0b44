package casement

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/go-casement/casement/internal/platform"
)

// ValidationError reports an invalid builder or configuration field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CursorIcon selects a standard cursor shape for a window.
type CursorIcon = platform.CursorIcon

// Cursor shapes.
const (
	CursorDefault    = platform.CursorDefault
	CursorCrosshair  = platform.CursorCrosshair
	CursorHand       = platform.CursorHand
	CursorArrow      = platform.CursorArrow
	CursorMove       = platform.CursorMove
	CursorText       = platform.CursorText
	CursorWait       = platform.CursorWait
	CursorHelp       = platform.CursorHelp
	CursorProgress   = platform.CursorProgress
	CursorNotAllowed = platform.CursorNotAllowed
	CursorEWResize   = platform.CursorEWResize
	CursorNSResize   = platform.CursorNSResize
)

// Fullscreen selects the window's fullscreen target.
type Fullscreen = platform.FullscreenMode

const (
	// FullscreenNone is windowed mode.
	FullscreenNone = platform.FullscreenNone
	// FullscreenBorderless covers the current display without a video
	// mode switch.
	FullscreenBorderless = platform.FullscreenBorderless
)

// WindowBuilder accumulates window options and is consumed by Build.
// A built window is bound to the loop it was built against and cannot
// outlive it.
type WindowBuilder struct {
	attrs   platform.WindowAttributes
	icon    image.Image
	sizeSet bool
}

// NewWindowBuilder returns a builder with the defaults: 1024x768, visible,
// resizable, decorated, windowed.
func NewWindowBuilder() *WindowBuilder {
	return &WindowBuilder{
		attrs: platform.WindowAttributes{
			Title:       "casement window",
			Resizable:   true,
			Decorations: true,
			Visible:     true,
		},
	}
}

// WithTitle sets the window title.
func (b *WindowBuilder) WithTitle(title string) *WindowBuilder {
	b.attrs.Title = title
	return b
}

// WithInnerSize requests an initial inner size in physical pixels.
func (b *WindowBuilder) WithInnerSize(size PhysicalSize) *WindowBuilder {
	b.attrs.Width = size.Width
	b.attrs.Height = size.Height
	b.sizeSet = true
	return b
}

// WithMinInnerSize constrains the smallest inner size the user can resize
// to.
func (b *WindowBuilder) WithMinInnerSize(size PhysicalSize) *WindowBuilder {
	b.attrs.MinWidth = size.Width
	b.attrs.MinHeight = size.Height
	return b
}

// WithMaxInnerSize constrains the largest inner size the user can resize
// to.
func (b *WindowBuilder) WithMaxInnerSize(size PhysicalSize) *WindowBuilder {
	b.attrs.MaxWidth = size.Width
	b.attrs.MaxHeight = size.Height
	return b
}

// WithResizable controls whether the user can resize the window.
func (b *WindowBuilder) WithResizable(resizable bool) *WindowBuilder {
	b.attrs.Resizable = resizable
	return b
}

// WithDecorations controls the title bar and borders.
func (b *WindowBuilder) WithDecorations(decorations bool) *WindowBuilder {
	b.attrs.Decorations = decorations
	return b
}

// WithTransparent requests an alpha channel for the window surface.
func (b *WindowBuilder) WithTransparent(transparent bool) *WindowBuilder {
	b.attrs.Transparent = transparent
	return b
}

// WithAlwaysOnTop keeps the window above normal windows.
func (b *WindowBuilder) WithAlwaysOnTop(onTop bool) *WindowBuilder {
	b.attrs.AlwaysOnTop = onTop
	return b
}

// WithVisible controls whether the window is shown on creation.
func (b *WindowBuilder) WithVisible(visible bool) *WindowBuilder {
	b.attrs.Visible = visible
	return b
}

// WithFullscreen selects the initial fullscreen mode.
func (b *WindowBuilder) WithFullscreen(mode Fullscreen) *WindowBuilder {
	b.attrs.Fullscreen = mode
	return b
}

// WithWindowIcon sets the icon shown by the window manager. The image is
// rescaled to whatever sizes the window system wants.
func (b *WindowBuilder) WithWindowIcon(icon image.Image) *WindowBuilder {
	b.icon = icon
	return b
}

func (b *WindowBuilder) validate() error {
	if b.sizeSet && (b.attrs.Width <= 0 || b.attrs.Height <= 0) {
		return &ValidationError{
			Field: "inner_size",
			Err:   fmt.Errorf("must be positive, got %dx%d", b.attrs.Width, b.attrs.Height),
		}
	}
	if b.attrs.MinWidth < 0 || b.attrs.MinHeight < 0 {
		return &ValidationError{
			Field: "min_inner_size",
			Err:   fmt.Errorf("must not be negative, got %dx%d", b.attrs.MinWidth, b.attrs.MinHeight),
		}
	}
	if b.attrs.MaxWidth < 0 || b.attrs.MaxHeight < 0 {
		return &ValidationError{
			Field: "max_inner_size",
			Err:   fmt.Errorf("must not be negative, got %dx%d", b.attrs.MaxWidth, b.attrs.MaxHeight),
		}
	}
	if b.attrs.MaxWidth > 0 && b.attrs.MinWidth > b.attrs.MaxWidth {
		return &ValidationError{
			Field: "min_inner_size",
			Err:   fmt.Errorf("exceeds max_inner_size"),
		}
	}
	return nil
}

// Build creates the native window on the given loop. The builder is
// consumed: reusing it is a programming error.
func (b *WindowBuilder) Build(loop *EventLoop) (*Window, error) {
	if loop == nil {
		panic("casement: Build with nil event loop")
	}
	if loop.destroyed() {
		panic("casement: Build on a destroyed event loop")
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	if !b.sizeSet {
		b.attrs.Width, b.attrs.Height = 1024, 768
	}
	if b.icon != nil {
		b.attrs.Icon = &platform.Icon{Image: toRGBA(b.icon)}
	}

	handle, err := loop.backend.CreateWindow(b.attrs)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	w := &Window{loop: loop, handle: handle}
	loop.registerWindow(w)
	return w, nil
}

// Window wraps one native window. All methods must be called on the loop
// thread; the only cross-thread surface of this package is the proxy.
type Window struct {
	loop   *EventLoop
	id     WindowID
	handle platform.Handle
	dead   atomic.Bool
}

// ID returns the loop-scoped identifier carried by this window's events.
func (w *Window) ID() WindowID { return w.id }

// check panics on use-after-destroy. Operating on a window after its
// Destroyed event, or after the loop unwound, is a contract violation.
func (w *Window) check() {
	if w.dead.Load() {
		panic(fmt.Sprintf("casement: %s used after destruction", w.id))
	}
	if w.loop.destroyed() {
		panic(fmt.Sprintf("casement: %s used after its event loop was destroyed", w.id))
	}
}

// InnerSize reports the current size of the window's content area in
// physical pixels.
func (w *Window) InnerSize() (PhysicalSize, error) {
	w.check()
	width, height, err := w.loop.backend.InnerSize(w.handle)
	if err != nil {
		return PhysicalSize{}, err
	}
	return PhysicalSize{Width: width, Height: height}, nil
}

// SetInnerSize requests a new content size and reports the size the
// window system accepted, which may be clamped. On denial the window
// keeps its previous geometry and the error describes the refusal.
func (w *Window) SetInnerSize(size PhysicalSize) (PhysicalSize, error) {
	w.check()
	width, height, err := w.loop.backend.SetInnerSize(w.handle, size.Width, size.Height)
	if err != nil {
		return PhysicalSize{}, fmt.Errorf("resize %s: %w", w.id, err)
	}
	return PhysicalSize{Width: width, Height: height}, nil
}

// OuterSize reports the window size including frame decorations.
func (w *Window) OuterSize() (PhysicalSize, error) {
	w.check()
	width, height, err := w.loop.backend.OuterSize(w.handle)
	if err != nil {
		return PhysicalSize{}, err
	}
	return PhysicalSize{Width: width, Height: height}, nil
}

// OuterPosition reports the top-left corner of the window frame in screen
// coordinates.
func (w *Window) OuterPosition() (PhysicalPosition, error) {
	w.check()
	x, y, err := w.loop.backend.Position(w.handle)
	if err != nil {
		return PhysicalPosition{}, err
	}
	return PhysicalPosition{X: x, Y: y}, nil
}

// SetOuterPosition moves the window and reports the accepted position.
func (w *Window) SetOuterPosition(pos PhysicalPosition) (PhysicalPosition, error) {
	w.check()
	x, y, err := w.loop.backend.SetPosition(w.handle, pos.X, pos.Y)
	if err != nil {
		return PhysicalPosition{}, fmt.Errorf("move %s: %w", w.id, err)
	}
	return PhysicalPosition{X: x, Y: y}, nil
}

// SetMinInnerSize updates the minimum size constraint.
func (w *Window) SetMinInnerSize(size PhysicalSize) error {
	w.check()
	return w.loop.backend.SetMinInnerSize(w.handle, size.Width, size.Height)
}

// SetMaxInnerSize updates the maximum size constraint.
func (w *Window) SetMaxInnerSize(size PhysicalSize) error {
	w.check()
	return w.loop.backend.SetMaxInnerSize(w.handle, size.Width, size.Height)
}

// SetTitle updates the window title.
func (w *Window) SetTitle(title string) error {
	w.check()
	return w.loop.backend.SetTitle(w.handle, title)
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) error {
	w.check()
	return w.loop.backend.SetVisible(w.handle, visible)
}

// SetResizable toggles user resizing.
func (w *Window) SetResizable(resizable bool) error {
	w.check()
	return w.loop.backend.SetResizable(w.handle, resizable)
}

// SetDecorations toggles the frame decorations.
func (w *Window) SetDecorations(decorations bool) error {
	w.check()
	return w.loop.backend.SetDecorations(w.handle, decorations)
}

// SetAlwaysOnTop toggles the above-normal-windows hint.
func (w *Window) SetAlwaysOnTop(onTop bool) error {
	w.check()
	return w.loop.backend.SetAlwaysOnTop(w.handle, onTop)
}

// SetFullscreen enters or leaves fullscreen. Setting the current mode
// again is a no-op.
func (w *Window) SetFullscreen(mode Fullscreen) error {
	w.check()
	return w.loop.backend.SetFullscreen(w.handle, mode)
}

// SetMinimized minimizes or restores the window.
func (w *Window) SetMinimized(minimized bool) error {
	w.check()
	return w.loop.backend.SetMinimized(w.handle, minimized)
}

// SetMaximized maximizes or restores the window.
func (w *Window) SetMaximized(maximized bool) error {
	w.check()
	return w.loop.backend.SetMaximized(w.handle, maximized)
}

// SetWindowIcon replaces the window manager icon. A decode or set failure
// leaves the previous icon in place.
func (w *Window) SetWindowIcon(icon image.Image) error {
	w.check()
	if icon == nil {
		return w.loop.backend.SetIcon(w.handle, nil)
	}
	return w.loop.backend.SetIcon(w.handle, &platform.Icon{Image: toRGBA(icon)})
}

// SetCursorIcon changes the cursor shape over this window.
func (w *Window) SetCursorIcon(icon CursorIcon) error {
	w.check()
	return w.loop.backend.SetCursorIcon(w.handle, icon)
}

// SetCursorVisible hides or shows the cursor over this window.
func (w *Window) SetCursorVisible(visible bool) error {
	w.check()
	return w.loop.backend.SetCursorVisible(w.handle, visible)
}

// SetCursorGrab confines the cursor to the window.
func (w *Window) SetCursorGrab(grab bool) error {
	w.check()
	return w.loop.backend.SetCursorGrab(w.handle, grab)
}

// SetCursorPosition warps the cursor to window coordinates.
func (w *Window) SetCursorPosition(pos PhysicalPosition) error {
	w.check()
	return w.loop.backend.SetCursorPosition(w.handle, pos.X, pos.Y)
}

// ScaleFactor reports the DPI scale of the display the window is on. It
// changes only through ScaleFactorChanged events.
func (w *Window) ScaleFactor() float64 {
	w.check()
	return w.loop.backend.ScaleFactor(w.handle)
}

// RequestRedraw schedules a RedrawRequested for the next redraw phase.
// Requests made before that phase coalesce into exactly one event.
func (w *Window) RequestRedraw() {
	w.check()
	w.loop.requestRedraw(w.id)
}

// NativeHandle exposes the raw window-system handle for an external
// surface-creation library. The handle stays valid until the window is
// destroyed and is never reused afterwards.
func (w *Window) NativeHandle() (uintptr, error) {
	w.check()
	return w.loop.backend.NativeHandle(w.handle)
}

// Destroy releases the native window. The loop delivers the remaining
// queued events for it, then its Destroyed event, then nothing more.
func (w *Window) Destroy() error {
	w.check()
	return w.loop.backend.DestroyWindow(w.handle)
}
