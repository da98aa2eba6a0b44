// Package headless implements the platform backend contract without any
// window system. Windows are plain records, native events are injected by
// callers, and waiting is implemented with channels. It backs the event
// loop in tests and on hosts without a display.
package headless

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-casement/casement/internal/platform"
)

type window struct {
	attrs      platform.WindowAttributes
	x, y       int
	width      int
	height     int
	minimized  bool
	maximized  bool
	fullscreen platform.FullscreenMode
	destroyed  bool
}

// Backend is an in-memory platform backend. The zero value is not usable;
// call New.
type Backend struct {
	mu      sync.Mutex
	queue   []platform.NativeEvent
	windows map[platform.Handle]*window
	next    platform.Handle
	closed  bool

	scale    float64
	displays []platform.Display

	// notify is signaled (coalesced) whenever the queue goes non-empty;
	// wake is the level-triggered cross-thread wake flag.
	notify chan struct{}
	wake   chan struct{}
}

// Option adjusts a Backend at construction time.
type Option func(*Backend)

// WithScaleFactor overrides the reported display scale (default 1.0).
func WithScaleFactor(scale float64) Option {
	return func(b *Backend) { b.scale = scale }
}

// WithDisplays overrides the display list reported by Displays.
func WithDisplays(displays []platform.Display) Option {
	return func(b *Backend) { b.displays = displays }
}

// New creates a headless backend with a single 1920x1080 display.
func New(opts ...Option) *Backend {
	b := &Backend{
		windows: make(map[platform.Handle]*window),
		scale:   1.0,
		notify:  make(chan struct{}, 1),
		wake:    make(chan struct{}, 1),
	}
	b.displays = []platform.Display{{
		ID:          0,
		Name:        "headless-0",
		Width:       1920,
		Height:      1080,
		ScaleFactor: b.scale,
		Primary:     true,
	}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Name() string { return "headless" }

// Inject appends native events to the pending queue, as if the OS had
// produced them, and signals any blocked waiter. Safe from any goroutine.
func (b *Backend) Inject(events ...platform.NativeEvent) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, events...)
	b.mu.Unlock()
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// CreateWindow records a window. No events are emitted; tests inject the
// initial ConfiguredEvent themselves when they want the bootstrap
// Resized/Moved pair a real window system would produce.
func (b *Backend) CreateWindow(attrs platform.WindowAttributes) (platform.Handle, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0, platform.ErrUnavailable
	}
	b.next++
	h := b.next
	w := &window{
		attrs:      attrs,
		width:      attrs.Width,
		height:     attrs.Height,
		fullscreen: attrs.Fullscreen,
	}
	if w.width <= 0 {
		w.width = 1024
	}
	if w.height <= 0 {
		w.height = 768
	}
	b.windows[h] = w
	b.mu.Unlock()
	return h, nil
}

func (b *Backend) DestroyWindow(h platform.Handle) error {
	b.mu.Lock()
	w, ok := b.windows[h]
	if !ok || w.destroyed {
		b.mu.Unlock()
		return platform.ErrUnknownWindow
	}
	w.destroyed = true
	b.mu.Unlock()

	b.Inject(platform.DestroyedEvent{Window: h})
	return nil
}

func (b *Backend) window(h platform.Handle) (*window, error) {
	w, ok := b.windows[h]
	if !ok || w.destroyed {
		return nil, platform.ErrUnknownWindow
	}
	return w, nil
}

func (b *Backend) InnerSize(h platform.Handle) (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.window(h)
	if err != nil {
		return 0, 0, err
	}
	return w.width, w.height, nil
}

// SetInnerSize clamps the request to the window's min/max constraints, the
// way a window manager would, and reports the accepted size.
func (b *Backend) SetInnerSize(h platform.Handle, width, height int) (int, int, error) {
	b.mu.Lock()
	w, err := b.window(h)
	if err != nil {
		b.mu.Unlock()
		return 0, 0, err
	}
	width, height = clampSize(w.attrs, width, height)
	w.width, w.height = width, height
	x, y := w.x, w.y
	b.mu.Unlock()

	b.Inject(platform.ConfiguredEvent{Window: h, X: x, Y: y, Width: width, Height: height})
	return width, height, nil
}

func clampSize(attrs platform.WindowAttributes, width, height int) (int, int) {
	if attrs.MinWidth > 0 && width < attrs.MinWidth {
		width = attrs.MinWidth
	}
	if attrs.MinHeight > 0 && height < attrs.MinHeight {
		height = attrs.MinHeight
	}
	if attrs.MaxWidth > 0 && width > attrs.MaxWidth {
		width = attrs.MaxWidth
	}
	if attrs.MaxHeight > 0 && height > attrs.MaxHeight {
		height = attrs.MaxHeight
	}
	return width, height
}

// OuterSize equals the inner size: headless windows have no frame.
func (b *Backend) OuterSize(h platform.Handle) (int, int, error) {
	return b.InnerSize(h)
}

func (b *Backend) Position(h platform.Handle) (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.window(h)
	if err != nil {
		return 0, 0, err
	}
	return w.x, w.y, nil
}

func (b *Backend) SetPosition(h platform.Handle, x, y int) (int, int, error) {
	b.mu.Lock()
	w, err := b.window(h)
	if err != nil {
		b.mu.Unlock()
		return 0, 0, err
	}
	w.x, w.y = x, y
	width, height := w.width, w.height
	b.mu.Unlock()

	b.Inject(platform.ConfiguredEvent{Window: h, X: x, Y: y, Width: width, Height: height})
	return x, y, nil
}

func (b *Backend) SetMinInnerSize(h platform.Handle, width, height int) error {
	return b.mutate(h, func(w *window) {
		w.attrs.MinWidth, w.attrs.MinHeight = width, height
	})
}

func (b *Backend) SetMaxInnerSize(h platform.Handle, width, height int) error {
	return b.mutate(h, func(w *window) {
		w.attrs.MaxWidth, w.attrs.MaxHeight = width, height
	})
}

func (b *Backend) SetTitle(h platform.Handle, title string) error {
	return b.mutate(h, func(w *window) { w.attrs.Title = title })
}

func (b *Backend) SetVisible(h platform.Handle, visible bool) error {
	return b.mutate(h, func(w *window) { w.attrs.Visible = visible })
}

func (b *Backend) SetResizable(h platform.Handle, resizable bool) error {
	return b.mutate(h, func(w *window) { w.attrs.Resizable = resizable })
}

func (b *Backend) SetDecorations(h platform.Handle, decorations bool) error {
	return b.mutate(h, func(w *window) { w.attrs.Decorations = decorations })
}

func (b *Backend) SetAlwaysOnTop(h platform.Handle, onTop bool) error {
	return b.mutate(h, func(w *window) { w.attrs.AlwaysOnTop = onTop })
}

func (b *Backend) SetFullscreen(h platform.Handle, mode platform.FullscreenMode) error {
	return b.mutate(h, func(w *window) { w.fullscreen = mode })
}

func (b *Backend) SetMinimized(h platform.Handle, minimized bool) error {
	return b.mutate(h, func(w *window) { w.minimized = minimized })
}

func (b *Backend) SetMaximized(h platform.Handle, maximized bool) error {
	return b.mutate(h, func(w *window) { w.maximized = maximized })
}

func (b *Backend) SetIcon(h platform.Handle, icon *platform.Icon) error {
	return b.mutate(h, func(w *window) { w.attrs.Icon = icon })
}

func (b *Backend) SetCursorIcon(h platform.Handle, _ platform.CursorIcon) error {
	return b.mutate(h, func(*window) {})
}

func (b *Backend) SetCursorVisible(h platform.Handle, _ bool) error {
	return b.mutate(h, func(*window) {})
}

func (b *Backend) SetCursorGrab(h platform.Handle, _ bool) error {
	return b.mutate(h, func(*window) {})
}

func (b *Backend) SetCursorPosition(h platform.Handle, _, _ int) error {
	return b.mutate(h, func(*window) {})
}

func (b *Backend) mutate(h platform.Handle, fn func(*window)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.window(h)
	if err != nil {
		return err
	}
	fn(w)
	return nil
}

func (b *Backend) ScaleFactor(platform.Handle) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scale
}

// NativeHandle returns the synthetic handle itself; there is no OS object
// behind it.
func (b *Backend) NativeHandle(h platform.Handle) (uintptr, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.window(h); err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func (b *Backend) PollNativeEvents(fn func(platform.NativeEvent)) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return platform.ErrUnavailable
	}
	pending := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, ev := range pending {
		fn(ev)
	}
	return nil
}

func (b *Backend) WaitNativeEvents(timeout time.Duration) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return platform.ErrUnavailable
	}
	ready := len(b.queue) > 0
	b.mu.Unlock()
	if ready {
		return nil
	}

	var timer *time.Timer
	var expire <-chan time.Time
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		expire = timer.C
		defer timer.Stop()
	}

	select {
	case <-b.notify:
	case <-b.wake:
	case <-expire:
	}
	return nil
}

// Wake sets the level-triggered wake flag. Repeated calls before a waiter
// observes the flag coalesce into a single wake-up.
func (b *Backend) Wake() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Backend) Displays() ([]platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, platform.ErrUnavailable
	}
	out := make([]platform.Display, len(b.displays))
	copy(out, b.displays)
	return out, nil
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("headless: already shut down")
	}
	b.closed = true
	b.queue = nil
	return nil
}

var _ platform.Backend = (*Backend)(nil)
