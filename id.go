package casement

import (
	"fmt"
	"strconv"
	"strings"
)

// WindowID is an opaque identifier for a window created on an event loop.
// IDs are unique among all windows ever created on one loop and are never
// reused, so an ID held after its window is destroyed can never alias a
// newer window.
type WindowID uint64

func (id WindowID) String() string {
	return fmt.Sprintf("window-%d", uint64(id))
}

// MarshalText implements encoding.TextMarshaler so IDs can be carried in
// logs or handed to other processes. Events themselves are not
// serializable.
func (id WindowID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *WindowID) UnmarshalText(text []byte) error {
	s, ok := strings.CutPrefix(string(text), "window-")
	if !ok {
		return fmt.Errorf("malformed window id %q", text)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed window id %q: %w", text, err)
	}
	*id = WindowID(n)
	return nil
}

// DeviceID is an opaque identifier for a physical input source. Backends
// that cannot tell devices apart report DeviceID(0) for everything.
type DeviceID uint32

func (id DeviceID) String() string {
	return fmt.Sprintf("device-%d", uint32(id))
}
