// Package x11 implements the platform backend contract against an X
// server, speaking the wire protocol through BurntSushi/xgb with xgbutil
// for the EWMH/ICCCM conventions.
//
// Thread rule: a dedicated reader goroutine owns the socket read side and
// feeds a queue; every other method must be called from the loop thread.
// Wake is safe from any goroutine.
package x11

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-casement/casement/internal/platform"
)

type managed struct {
	xid       uint32
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int
	resizable bool
	curWidth  int
	curHeight int
	destroyed bool
}

// Backend is the X11 platform backend.
type Backend struct {
	conn *Connection

	mu       sync.Mutex
	windows  map[platform.Handle]*managed
	byXID    map[uint32]platform.Handle
	next     platform.Handle
	queue    []platform.NativeEvent
	shutdown bool

	// notify coalesces "queue went non-empty"; wake is the level-triggered
	// cross-thread wake flag.
	notify chan struct{}
	wake   chan struct{}

	hiddenCursor uint32
	hasHidden    bool
}

// New connects to the X server named by DISPLAY and starts the event
// reader.
func New() (*Backend, error) {
	conn, err := NewConnection()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrUnavailable, err)
	}
	b := &Backend{
		conn:    conn,
		windows: make(map[platform.Handle]*managed),
		byXID:   make(map[uint32]platform.Handle),
		notify:  make(chan struct{}, 1),
		wake:    make(chan struct{}, 1),
	}
	go b.readEvents()
	return b, nil
}

func (b *Backend) Name() string { return "x11" }

// readEvents owns the socket read side. It translates every X event into
// a native event and appends it to the queue in wire order.
func (b *Backend) readEvents() {
	for {
		ev, xerr := b.conn.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			// Connection gone. During an orderly shutdown that is
			// expected; otherwise the event source died underneath us.
			b.mu.Lock()
			orderly := b.shutdown
			if !orderly {
				b.queue = append(b.queue, platform.SourceClosedEvent{
					Err: fmt.Errorf("x11: connection to display lost"),
				})
			}
			b.mu.Unlock()
			if !orderly {
				b.signal()
			}
			return
		}
		if xerr != nil {
			// Protocol errors are asynchronous responses to requests that
			// already returned; nothing to deliver.
			continue
		}
		if native, ok := b.translateXEvent(ev); ok {
			b.enqueue(native)
		}
	}
}

func (b *Backend) enqueue(ev platform.NativeEvent) {
	b.mu.Lock()
	if b.shutdown {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, ev)
	b.mu.Unlock()
	b.signal()
}

func (b *Backend) signal() {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *Backend) PollNativeEvents(fn func(platform.NativeEvent)) error {
	b.mu.Lock()
	if b.shutdown {
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
	if b.shutdown {
		b.mu.Unlock()
		return platform.ErrUnavailable
	}
	ready := len(b.queue) > 0
	b.mu.Unlock()
	if ready {
		return nil
	}

	var expire <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expire = timer.C
	}

	select {
	case <-b.notify:
	case <-b.wake:
	case <-expire:
	}
	return nil
}

// Wake unblocks a concurrent WaitNativeEvents. Level-triggered: calls
// before the waiter observes the flag coalesce into one wake-up.
func (b *Backend) Wake() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	if b.shutdown {
		b.mu.Unlock()
		return fmt.Errorf("x11: backend already shut down")
	}
	b.shutdown = true
	b.queue = nil
	b.mu.Unlock()

	// Closing the socket unblocks the reader goroutine.
	b.conn.Close()
	return nil
}

// window resolves a handle under the lock.
func (b *Backend) window(h platform.Handle) (*managed, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.windows[h]
	if !ok || w.destroyed {
		return nil, platform.ErrUnknownWindow
	}
	return w, nil
}

func (b *Backend) handleFor(xid uint32) (platform.Handle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.byXID[xid]
	return h, ok
}

var _ platform.Backend = (*Backend)(nil)

// checked wraps xgb checked-request errors with an operation name.
func checked(op string, err error) error {
	if err != nil {
		return fmt.Errorf("x11: %s: %w", op, err)
	}
	return nil
}
