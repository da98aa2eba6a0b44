package casement

import (
	"fmt"

	"github.com/go-casement/casement/internal/platform"
)

// Monitor describes one connected display.
type Monitor struct {
	display platform.Display
}

// Name returns the display's human-readable name (output connector name
// on X11).
func (m Monitor) Name() string { return m.display.Name }

// Size returns the display resolution in physical pixels.
func (m Monitor) Size() PhysicalSize {
	return PhysicalSize{Width: m.display.Width, Height: m.display.Height}
}

// Position returns the display's offset in the virtual desktop.
func (m Monitor) Position() PhysicalPosition {
	return PhysicalPosition{X: m.display.X, Y: m.display.Y}
}

// ScaleFactor returns the display's DPI scale.
func (m Monitor) ScaleFactor() float64 { return m.display.ScaleFactor }

// Primary reports whether the window system considers this the primary
// display.
func (m Monitor) Primary() bool { return m.display.Primary }

func (m Monitor) String() string {
	return fmt.Sprintf("%s %dx%d+%d+%d scale=%.2f",
		m.display.Name, m.display.Width, m.display.Height,
		m.display.X, m.display.Y, m.display.ScaleFactor)
}

// AvailableMonitors enumerates the connected displays.
func (l *EventLoop) AvailableMonitors() ([]Monitor, error) {
	displays, err := l.backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("enumerate displays: %w", err)
	}
	monitors := make([]Monitor, 0, len(displays))
	for _, d := range displays {
		monitors = append(monitors, Monitor{display: d})
	}
	return monitors, nil
}

// PrimaryMonitor returns the primary display, falling back to the first
// one when the window system does not mark a primary.
func (l *EventLoop) PrimaryMonitor() (Monitor, error) {
	monitors, err := l.AvailableMonitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no displays connected")
	}
	for _, m := range monitors {
		if m.Primary() {
			return m, nil
		}
	}
	return monitors[0], nil
}
