//go:build linux

package casement

import (
	"fmt"
	"os"

	"github.com/go-casement/casement/internal/headless"
	"github.com/go-casement/casement/internal/platform"
	"github.com/go-casement/casement/internal/x11"
)

// selectBackend picks the platform backend. The supported set is closed
// and chosen at build time; the name only selects among backends compiled
// for this platform.
func selectBackend(name string) (platform.Backend, error) {
	switch name {
	case "":
		if os.Getenv("DISPLAY") == "" {
			return headless.New(), nil
		}
		return x11.New()
	case "x11":
		return x11.New()
	case "headless":
		return headless.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (supported: x11, headless)", name)
	}
}
