package casement

import (
	"testing"
	"time"
)

func TestControlFlowDefaultsToPoll(t *testing.T) {
	var cf ControlFlow
	if cf.kind != flowPoll {
		t.Fatalf("zero ControlFlow kind = %v, want poll", cf.kind)
	}
	if cf.WillExit() {
		t.Fatal("zero ControlFlow reports WillExit")
	}
}

func TestControlFlowExitIsSticky(t *testing.T) {
	var cf ControlFlow
	cf.SetExitWithCode(2)

	cf.SetPoll()
	cf.SetWait()
	cf.SetWaitUntil(time.Now().Add(time.Hour))
	if !cf.WillExit() {
		t.Fatal("a later setter cancelled exit")
	}
	if cf.exitCode != 2 {
		t.Fatalf("exit code = %d, want 2", cf.exitCode)
	}
}

func TestControlFlowFirstExitCodeWins(t *testing.T) {
	var cf ControlFlow
	cf.SetExitWithCode(5)
	cf.SetExitWithCode(9)
	cf.SetExit()
	if cf.exitCode != 5 {
		t.Fatalf("exit code = %d, want the first one (5)", cf.exitCode)
	}
}

func TestControlFlowWaitClearsDeadline(t *testing.T) {
	var cf ControlFlow
	cf.SetWaitUntil(time.Now().Add(time.Minute))
	cf.SetWait()
	if cf.kind != flowWait || !cf.deadline.IsZero() {
		t.Fatalf("SetWait left kind=%v deadline=%v", cf.kind, cf.deadline)
	}
}

func TestControlFlowString(t *testing.T) {
	var cf ControlFlow
	if got := cf.String(); got != "poll" {
		t.Errorf("String() = %q, want poll", got)
	}
	cf.SetWait()
	if got := cf.String(); got != "wait" {
		t.Errorf("String() = %q, want wait", got)
	}
	cf.SetExitWithCode(4)
	if got := cf.String(); got != "exit(4)" {
		t.Errorf("String() = %q, want exit(4)", got)
	}
}
