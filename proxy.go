package casement

// EventLoopProxy injects application events into a running loop from any
// goroutine. Proxies are cheap values: copy them, hand them to other
// goroutines, keep them after the loop dies. Sends within one proxy are
// delivered in FIFO order; ordering across distinct proxies is
// unspecified.
type EventLoopProxy struct {
	loop *EventLoop
}

// CreateProxy returns a new proxy for this loop. Safe to call before Run.
func (l *EventLoop) CreateProxy() EventLoopProxy {
	return EventLoopProxy{loop: l}
}

// SendEvent queues payload for delivery as a UserEvent in the next loop
// cycle and wakes the loop if it is blocked waiting. It returns
// ErrLoopClosed once the owning loop has been destroyed; the payload is
// then dropped, never delivered as a phantom event.
func (p EventLoopProxy) SendEvent(payload any) error {
	l := p.loop
	if l == nil {
		return ErrLoopClosed
	}
	l.userMu.Lock()
	if l.closed {
		l.userMu.Unlock()
		return ErrLoopClosed
	}
	l.userQueue = append(l.userQueue, payload)
	l.userMu.Unlock()

	l.backend.Wake()
	return nil
}
