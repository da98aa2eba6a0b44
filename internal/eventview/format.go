package eventview

import (
	"fmt"

	"github.com/go-casement/casement"
)

// Describe renders an event as one compact line for the viewer. Cycle
// markers get short fixed labels; input events carry their interesting
// fields inline.
func Describe(ev casement.Event) string {
	switch e := ev.(type) {
	case casement.NewEvents:
		return fmt.Sprintf("new-events cause=%s", e.Cause)
	case casement.WindowEvent:
		return fmt.Sprintf("%s %s", e.WindowID, describeKind(e.Kind))
	case casement.DeviceEvent:
		return fmt.Sprintf("device-%d %s", e.DeviceID, describeDeviceKind(e.Kind))
	case casement.UserEvent:
		return fmt.Sprintf("user-event %v", e.Payload)
	case casement.MainEventsCleared:
		return "main-events-cleared"
	case casement.RedrawRequested:
		return fmt.Sprintf("redraw-requested %s", e.WindowID)
	case casement.RedrawEventsCleared:
		return "redraw-events-cleared"
	case casement.LoopDestroyed:
		return "loop-destroyed"
	case casement.Suspended:
		return "suspended"
	case casement.Resumed:
		return "resumed"
	default:
		return fmt.Sprintf("%T", ev)
	}
}

func describeKind(kind casement.WindowEventKind) string {
	switch k := kind.(type) {
	case casement.Resized:
		return fmt.Sprintf("resized %s", k.Size)
	case casement.Moved:
		return fmt.Sprintf("moved %s", k.Position)
	case casement.CloseRequested:
		return "close-requested"
	case casement.Destroyed:
		return "destroyed"
	case casement.DroppedFile:
		return fmt.Sprintf("dropped-file %s", k.Path)
	case casement.HoveredFile:
		return fmt.Sprintf("hovered-file %s", k.Path)
	case casement.HoveredFileCancelled:
		return "hovered-file-cancelled"
	case casement.Focused:
		if k.Focused {
			return "focused"
		}
		return "unfocused"
	case casement.KeyboardInput:
		if k.Input.Key == casement.KeyCharacter {
			return fmt.Sprintf("key %s %q code=%d", k.Input.State, k.Input.Rune, k.Input.Keycode)
		}
		return fmt.Sprintf("key %s %s code=%d", k.Input.State, k.Input.Key, k.Input.Keycode)
	case casement.ReceivedCharacter:
		return fmt.Sprintf("char %q", k.Char)
	case casement.CursorMoved:
		return fmt.Sprintf("cursor (%.0f,%.0f)", k.Position.X, k.Position.Y)
	case casement.CursorEntered:
		return "cursor-entered"
	case casement.CursorLeft:
		return "cursor-left"
	case casement.MouseWheel:
		return fmt.Sprintf("wheel (%.1f,%.1f)", k.Delta.X, k.Delta.Y)
	case casement.MouseInput:
		return fmt.Sprintf("mouse %s %s", k.State, k.Button)
	case casement.TouchpadPressure:
		return fmt.Sprintf("pressure %.2f stage=%d", k.Pressure, k.Stage)
	case casement.AxisMotion:
		return fmt.Sprintf("axis %d value=%.2f", k.Axis, k.Value)
	case casement.Touch:
		return fmt.Sprintf("touch %d %s (%.0f,%.0f)", k.TouchID, k.Phase, k.Position.X, k.Position.Y)
	case casement.ScaleFactorChanged:
		return fmt.Sprintf("scale-changed %.2f inner=%s", k.ScaleFactor, k.NewInnerSize)
	case casement.ThemeChanged:
		return fmt.Sprintf("theme %s", k.Theme)
	case casement.Unclassified:
		return fmt.Sprintf("unclassified code=%d", k.Code)
	default:
		return fmt.Sprintf("%T", kind)
	}
}

func describeDeviceKind(kind casement.DeviceEventKind) string {
	switch k := kind.(type) {
	case casement.MotionDelta:
		return fmt.Sprintf("motion (%.1f,%.1f)", k.DX, k.DY)
	case casement.RawButton:
		return fmt.Sprintf("raw-button %s %s", k.State, k.Button)
	case casement.RawKey:
		return fmt.Sprintf("raw-key %s code=%d", k.State, k.Keycode)
	case casement.RawText:
		return fmt.Sprintf("raw-text %q", k.Char)
	default:
		return fmt.Sprintf("%T", kind)
	}
}

// label buckets an event for the per-type counters shown in the status
// bar. Window and device events count under their kind, not the wrapper.
func label(ev casement.Event) string {
	switch e := ev.(type) {
	case casement.NewEvents:
		return "new-events"
	case casement.WindowEvent:
		return fmt.Sprintf("%T", e.Kind)[len("casement."):]
	case casement.DeviceEvent:
		return fmt.Sprintf("%T", e.Kind)[len("casement."):]
	case casement.UserEvent:
		return "UserEvent"
	case casement.RedrawRequested:
		return "RedrawRequested"
	default:
		return fmt.Sprintf("%T", ev)[len("casement."):]
	}
}
