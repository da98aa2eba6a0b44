package casement

import (
	"fmt"
	"time"
)

type controlFlowKind int

const (
	flowPoll controlFlowKind = iota
	flowWait
	flowWaitUntil
	flowExit
)

// ControlFlow is the handler's directive for what the loop does after the
// current cycle. The loop passes one ControlFlow to every handler
// invocation; the handler mutates it through the setters and the loop
// reads it back after each call.
//
// Exit is sticky: once SetExit or SetExitWithCode has been called, every
// later setter is a no-op.
type ControlFlow struct {
	kind     controlFlowKind
	deadline time.Time
	exitCode int
}

// SetPoll makes the loop start the next cycle immediately.
func (cf *ControlFlow) SetPoll() {
	if cf.kind == flowExit {
		return
	}
	cf.kind = flowPoll
}

// SetWait makes the loop block until a native event or a proxy wake.
func (cf *ControlFlow) SetWait() {
	if cf.kind == flowExit {
		return
	}
	cf.kind = flowWait
	cf.deadline = time.Time{}
}

// SetWaitUntil makes the loop block until a native event, a proxy wake, or
// the deadline, whichever comes first.
func (cf *ControlFlow) SetWaitUntil(deadline time.Time) {
	if cf.kind == flowExit {
		return
	}
	cf.kind = flowWaitUntil
	cf.deadline = deadline
}

// SetExit is SetExitWithCode(0).
func (cf *ControlFlow) SetExit() {
	cf.SetExitWithCode(0)
}

// SetExitWithCode makes the loop unwind after the current cycle and return
// code from Run. The first exit code set wins.
func (cf *ControlFlow) SetExitWithCode(code int) {
	if cf.kind == flowExit {
		return
	}
	cf.kind = flowExit
	cf.exitCode = code
}

// WillExit reports whether an exit has been requested.
func (cf *ControlFlow) WillExit() bool {
	return cf.kind == flowExit
}

func (cf *ControlFlow) String() string {
	switch cf.kind {
	case flowPoll:
		return "poll"
	case flowWait:
		return "wait"
	case flowWaitUntil:
		return fmt.Sprintf("wait-until(%s)", cf.deadline.Format(time.RFC3339Nano))
	default:
		return fmt.Sprintf("exit(%d)", cf.exitCode)
	}
}
