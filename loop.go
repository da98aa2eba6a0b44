package casement

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-casement/casement/internal/platform"
)

// Handler is the application callback invoked once per delivered event.
// It runs on the loop's thread, never concurrently with itself, and
// directs the loop by mutating cf.
type Handler func(ev Event, cf *ControlFlow)

// ErrLoopClosed is returned by EventLoopProxy.SendEvent after the owning
// loop has been destroyed.
var ErrLoopClosed = errors.New("casement: event loop closed")

// ErrLoopAlive is returned by NewEventLoop while another loop in this
// process has not yet been destroyed. The native event source is a
// process-wide singleton on every supported backend.
var ErrLoopAlive = errors.New("casement: another event loop is alive in this process")

type loopState int32

const (
	stateIdle loopState = iota
	stateRunning
	stateDestroyed
)

// liveLoop enforces the one-live-loop-per-process rule at construction
// time rather than through hidden global state at run time.
var liveLoop atomic.Bool

// EventLoop owns a platform backend's native event source and drives the
// run-until-exit protocol. Create one with NewEventLoop, build windows
// against it, then call Run exactly once from the goroutine that created
// it.
type EventLoop struct {
	backend platform.Backend
	logger  *slog.Logger

	state atomic.Int32
	// gid pins Run to the constructing goroutine, which NewEventLoop has
	// locked to its OS thread for backends with thread-bound event pumps.
	gid uint64

	// userMu guards the proxy-fed user event queue and the closed flag.
	// Single consumer (the loop thread), many producers.
	userMu    sync.Mutex
	userQueue []any
	closed    bool

	windows   map[WindowID]*Window
	byHandle  map[platform.Handle]WindowID
	delivered map[WindowID]bool // Destroyed already delivered; suppress the rest
	nextID    WindowID

	// geom caches the last reported geometry per window so one native
	// configure expands into Resized and/or Moved exactly as needed.
	geom map[WindowID]geometry

	// redraw is the coalesced dirty set, kept in request order.
	redrawMu    sync.Mutex
	redrawSet   map[WindowID]bool
	redrawOrder []WindowID

	fatal    error
	exitCode int
}

type geometry struct {
	known         bool
	x, y          int
	width, height int
}

// Option adjusts loop construction.
type Option func(*loopOptions)

type loopOptions struct {
	backendName string
	logger      *slog.Logger
}

// WithBackend forces a specific backend by name ("x11", "headless")
// instead of the platform default.
func WithBackend(name string) Option {
	return func(o *loopOptions) { o.backendName = name }
}

// WithLogger sets the logger used for loop diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *loopOptions) { o.logger = logger }
}

// NewEventLoop connects to the platform's window system and claims the
// process-wide event source. The calling goroutine is locked to its OS
// thread for the lifetime of the loop; Run must be called from this same
// goroutine.
//
// Construction fails with ErrLoopAlive if another loop exists and has not
// been destroyed, and with a backend error if the window system is
// unreachable.
func NewEventLoop(opts ...Option) (*EventLoop, error) {
	var o loopOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !liveLoop.CompareAndSwap(false, true) {
		return nil, ErrLoopAlive
	}

	backend, err := selectBackend(o.backendName)
	if err != nil {
		liveLoop.Store(false)
		return nil, err
	}
	return newEventLoop(backend, o.logger), nil
}

// newEventLoop wires a loop to an already constructed backend. Called by
// NewEventLoop and directly by tests that hold a headless backend.
func newEventLoop(backend platform.Backend, logger *slog.Logger) *EventLoop {
	if logger == nil {
		logger = slog.Default()
	}
	runtime.LockOSThread()
	return &EventLoop{
		backend:   backend,
		logger:    logger,
		gid:       goroutineID(),
		windows:   make(map[WindowID]*Window),
		byHandle:  make(map[platform.Handle]WindowID),
		delivered: make(map[WindowID]bool),
		geom:      make(map[WindowID]geometry),
		redrawSet: make(map[WindowID]bool),
	}
}

// Backend reports which backend the loop is driving.
func (l *EventLoop) Backend() string {
	return l.backend.Name()
}

// Run executes the event-loop protocol until a handler requests exit, then
// returns the exit code. Calling Run twice, or from a goroutine other than
// the one that constructed the loop, panics: both are contract violations,
// not runtime conditions.
func (l *EventLoop) Run(handler Handler) int {
	if handler == nil {
		panic("casement: Run called with nil handler")
	}
	if gid := goroutineID(); gid != l.gid {
		panic(fmt.Sprintf("casement: Run called from goroutine %d, but the loop belongs to goroutine %d", gid, l.gid))
	}
	switch loopState(l.state.Load()) {
	case stateRunning:
		panic("casement: Run called reentrantly")
	case stateDestroyed:
		panic("casement: Run called on a destroyed event loop")
	}
	l.state.Store(int32(stateRunning))

	var cf ControlFlow
	cause := CauseInit

	for {
		handler(NewEvents{Cause: cause}, &cf)

		l.deliverNativeEvents(handler, &cf)
		l.deliverUserEvents(handler, &cf)

		handler(MainEventsCleared{}, &cf)

		for _, id := range l.takeRedraws() {
			handler(RedrawRequested{WindowID: id}, &cf)
		}
		handler(RedrawEventsCleared{}, &cf)

		if l.fatal != nil && !cf.WillExit() {
			l.logger.Error("native event source failed, exiting", "err", l.fatal)
			cf.SetExitWithCode(1)
		}

		switch cf.kind {
		case flowExit:
			l.exitCode = cf.exitCode
			l.destroy(handler, &cf)
			return l.exitCode

		case flowPoll:
			cause = CausePoll

		case flowWait:
			if l.workPending() {
				cause = CauseWaitCancelled
				continue
			}
			if err := l.backend.WaitNativeEvents(0); err != nil {
				l.fatal = err
			}
			cause = CauseWaitCancelled

		case flowWaitUntil:
			cause = l.waitUntil(cf.deadline)
		}
	}
}

// waitUntil blocks until the deadline, a native event, or a wake, and
// reports the reason the next cycle starts. A deadline at or in the past
// resumes immediately without blocking.
func (l *EventLoop) waitUntil(deadline time.Time) StartCause {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return CauseResumeTimeReached
	}
	if l.workPending() {
		return CauseWaitCancelled
	}
	if err := l.backend.WaitNativeEvents(remaining); err != nil {
		l.fatal = err
	}
	if !time.Now().Before(deadline) {
		return CauseResumeTimeReached
	}
	return CauseWaitCancelled
}

// workPending reports whether user events or redraw requests are already
// queued, in which case the loop must not block.
func (l *EventLoop) workPending() bool {
	l.userMu.Lock()
	users := len(l.userQueue)
	l.userMu.Unlock()
	if users > 0 {
		return true
	}
	l.redrawMu.Lock()
	redraws := len(l.redrawOrder)
	l.redrawMu.Unlock()
	return redraws > 0
}

// deliverNativeEvents drains the backend without blocking and hands every
// translated event to the handler in native arrival order.
func (l *EventLoop) deliverNativeEvents(handler Handler, cf *ControlFlow) {
	var pending []platform.NativeEvent
	if err := l.backend.PollNativeEvents(func(ev platform.NativeEvent) {
		pending = append(pending, ev)
	}); err != nil {
		l.fatal = err
		return
	}
	for _, native := range pending {
		for _, ev := range l.translate(native) {
			if we, ok := ev.(WindowEvent); ok {
				if l.delivered[we.WindowID] {
					continue
				}
				if _, isDestroyed := we.Kind.(Destroyed); isDestroyed {
					l.delivered[we.WindowID] = true
					l.forgetWindow(we.WindowID)
				}
			}
			handler(ev, cf)
		}
	}
}

// deliverUserEvents drains the proxy queue, preserving per-proxy FIFO
// order. The snapshot keeps a handler that sends to its own loop from
// spinning this cycle forever.
func (l *EventLoop) deliverUserEvents(handler Handler, cf *ControlFlow) {
	l.userMu.Lock()
	pending := l.userQueue
	l.userQueue = nil
	l.userMu.Unlock()

	for _, payload := range pending {
		handler(UserEvent{Payload: payload}, cf)
	}
}

// takeRedraws returns the coalesced dirty windows in request order and
// clears the set. Requests made while draining land in the next cycle.
func (l *EventLoop) takeRedraws() []WindowID {
	l.redrawMu.Lock()
	order := l.redrawOrder
	l.redrawOrder = nil
	l.redrawSet = make(map[WindowID]bool)
	l.redrawMu.Unlock()

	live := order[:0]
	for _, id := range order {
		if !l.delivered[id] {
			live = append(live, id)
		}
	}
	return live
}

func (l *EventLoop) requestRedraw(id WindowID) {
	l.redrawMu.Lock()
	if !l.redrawSet[id] {
		l.redrawSet[id] = true
		l.redrawOrder = append(l.redrawOrder, id)
	}
	l.redrawMu.Unlock()
	l.backend.Wake()
}

// destroy finishes the protocol: one LoopDestroyed, backend shutdown,
// terminal state. Nothing is delivered afterwards, ever.
func (l *EventLoop) destroy(handler Handler, cf *ControlFlow) {
	handler(LoopDestroyed{}, cf)

	l.userMu.Lock()
	l.closed = true
	l.userQueue = nil
	l.userMu.Unlock()

	if err := l.backend.Shutdown(); err != nil {
		l.logger.Warn("backend shutdown", "backend", l.backend.Name(), "err", err)
	}
	l.state.Store(int32(stateDestroyed))
	liveLoop.Store(false)
	runtime.UnlockOSThread()
}

func (l *EventLoop) forgetWindow(id WindowID) {
	if w, ok := l.windows[id]; ok {
		w.dead.Store(true)
		delete(l.byHandle, w.handle)
	}
	delete(l.windows, id)
	delete(l.geom, id)
}

// registerWindow is called by WindowBuilder.Build. Creation from inside a
// handler is synchronous, so it takes effect before the next cycle.
func (l *EventLoop) registerWindow(w *Window) WindowID {
	l.nextID++
	id := l.nextID
	w.id = id
	l.windows[id] = w
	l.byHandle[w.handle] = id
	return id
}

func (l *EventLoop) destroyed() bool {
	return loopState(l.state.Load()) == stateDestroyed
}
