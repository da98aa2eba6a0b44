package casement

import "fmt"

// PhysicalSize is a size in physical (device) pixels.
type PhysicalSize struct {
	Width  int
	Height int
}

func (s PhysicalSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ToLogical divides by a scale factor into logical units.
func (s PhysicalSize) ToLogical(scale float64) LogicalSize {
	if scale <= 0 {
		scale = 1
	}
	return LogicalSize{
		Width:  float64(s.Width) / scale,
		Height: float64(s.Height) / scale,
	}
}

// LogicalSize is a size in scale-independent units.
type LogicalSize struct {
	Width  float64
	Height float64
}

// ToPhysical multiplies by a scale factor into device pixels.
func (s LogicalSize) ToPhysical(scale float64) PhysicalSize {
	if scale <= 0 {
		scale = 1
	}
	return PhysicalSize{
		Width:  int(s.Width*scale + 0.5),
		Height: int(s.Height*scale + 0.5),
	}
}

// PhysicalPosition is a position in physical pixels, relative to the
// top-left of the desktop. Coordinates can be negative on multi-monitor
// setups.
type PhysicalPosition struct {
	X int
	Y int
}

func (p PhysicalPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// CursorPosition is a sub-pixel position in window coordinates.
type CursorPosition struct {
	X float64
	Y float64
}

// ElementState reports a press or release transition.
type ElementState int

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a pointer button. Buttons beyond the first three
// are carried as Other with the native button number.
type MouseButton struct {
	// Kind is one of ButtonLeft, ButtonRight, ButtonMiddle, ButtonOther.
	Kind  MouseButtonKind
	Other uint16
}

type MouseButtonKind int

const (
	ButtonLeft MouseButtonKind = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

func (b MouseButton) String() string {
	switch b.Kind {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("button-%d", b.Other)
	}
}

// ScrollUnit distinguishes line-based wheel clicks from pixel-precise
// touchpad deltas.
type ScrollUnit int

const (
	ScrollLines ScrollUnit = iota
	ScrollPixels
)

// ScrollDelta is a scroll amount in the given unit. Positive Y scrolls
// away from the user.
type ScrollDelta struct {
	Unit ScrollUnit
	X    float64
	Y    float64
}

// TouchPhase is the lifecycle stage of a touch point.
type TouchPhase int

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchStarted:
		return "started"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	default:
		return "cancelled"
	}
}

// Theme is the system-wide light/dark preference.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Modifiers is the set of modifier keys held during an input event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether every modifier in m is held.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// Key is a layout-resolved logical key. Printable keys keep their rune in
// KeyInput.Rune; Key covers the named non-printable keys.
type Key int

const (
	KeyUnknown Key = iota
	KeyCharacter
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyShiftLeft
	KeyShiftRight
	KeyCtrlLeft
	KeyCtrlRight
	KeyAltLeft
	KeyAltRight
	KeySuperLeft
	KeySuperRight
	KeyCapsLock
	KeyNumLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

func (k Key) String() string {
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	}
	switch k {
	case KeyCharacter:
		return "character"
	case KeySpace:
		return "space"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyEscape:
		return "escape"
	case KeyDelete:
		return "delete"
	case KeyInsert:
		return "insert"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "page-up"
	case KeyPageDown:
		return "page-down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyShiftLeft:
		return "shift-left"
	case KeyShiftRight:
		return "shift-right"
	case KeyCtrlLeft:
		return "ctrl-left"
	case KeyCtrlRight:
		return "ctrl-right"
	case KeyAltLeft:
		return "alt-left"
	case KeyAltRight:
		return "alt-right"
	case KeySuperLeft:
		return "super-left"
	case KeySuperRight:
		return "super-right"
	case KeyCapsLock:
		return "caps-lock"
	case KeyNumLock:
		return "num-lock"
	default:
		return "unknown"
	}
}

// KeyInput carries one keyboard transition.
type KeyInput struct {
	State ElementState
	// Keycode is the raw hardware scancode.
	Keycode uint32
	// Key is the resolved logical key, KeyCharacter for printable input.
	Key Key
	// Rune is the printable character, 0 for non-printable keys.
	Rune      rune
	Modifiers Modifiers
}
