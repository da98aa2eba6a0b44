//go:build !linux

package casement

import (
	"fmt"

	"github.com/go-casement/casement/internal/headless"
	"github.com/go-casement/casement/internal/platform"
)

// selectBackend picks the platform backend. Only the headless backend is
// compiled on this platform.
func selectBackend(name string) (platform.Backend, error) {
	switch name {
	case "", "headless":
		return headless.New(), nil
	default:
		return nil, fmt.Errorf("backend %q is not supported on this platform", name)
	}
}
