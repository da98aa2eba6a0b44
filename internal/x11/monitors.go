package x11

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/randr"
	"github.com/go-casement/casement/internal/platform"
)

var randrInit sync.Once

// Displays enumerates active monitors through XRandR. Disabled CRTCs are
// skipped. The scale factor is derived from the output's physical size
// and rounded to the nearest quarter; outputs that do not report
// millimeter dimensions (projectors, some virtual outputs) get 1.0.
func (b *Backend) Displays() ([]platform.Display, error) {
	var initErr error
	randrInit.Do(func() {
		initErr = randr.Init(b.conn.XUtil.Conn())
	})
	if initErr != nil {
		return nil, fmt.Errorf("randr init failed: %w", initErr)
	}

	resources, err := randr.GetScreenResources(b.conn.XUtil.Conn(), b.conn.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(b.conn.XUtil.Conn(), b.conn.Root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	var displays []platform.Display
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(b.conn.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		scale := 1.0
		primary := false
		for _, output := range crtcInfo.Outputs {
			if output == primaryOutput {
				primary = true
			}
		}
		if outputInfo, err := randr.GetOutputInfo(b.conn.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = strings.TrimRight(string(outputInfo.Name), "\x00")
			scale = outputScale(int(crtcInfo.Width), int(outputInfo.MmWidth))
		}

		displays = append(displays, platform.Display{
			ID:          i,
			Name:        name,
			X:           int(crtcInfo.X),
			Y:           int(crtcInfo.Y),
			Width:       int(crtcInfo.Width),
			Height:      int(crtcInfo.Height),
			ScaleFactor: scale,
			Primary:     primary,
		})
	}

	if len(displays) == 0 {
		return nil, fmt.Errorf("no active monitors found")
	}
	return displays, nil
}

// outputScale estimates a UI scale from pixel and physical width,
// assuming 96dpi per scale unit. Snapped to quarters so 94dpi panels do
// not yield 0.98-style noise.
func outputScale(pixels, mm int) float64 {
	if pixels <= 0 || mm <= 0 {
		return 1.0
	}
	dpi := float64(pixels) * 25.4 / float64(mm)
	scale := math.Round(dpi/96.0*4) / 4
	if scale < 1.0 {
		return 1.0
	}
	return scale
}
