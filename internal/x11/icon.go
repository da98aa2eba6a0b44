package x11

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/go-casement/casement/internal/platform"
	"golang.org/x/image/draw"
)

// iconSizes are the square sizes published via _NET_WM_ICON. Window
// managers pick whichever fits their taskbar and decoration rendering.
var iconSizes = []int{16, 32, 48}

// setIcon publishes the icon in every advertised size, scaling with
// bilinear interpolation.
func setIcon(c *Connection, win xproto.Window, icon *platform.Icon) error {
	if icon == nil || icon.Image == nil {
		return checked("clear icon", ewmh.WmIconSet(c.XUtil, win, nil))
	}

	icons := make([]ewmh.WmIcon, 0, len(iconSizes))
	for _, size := range iconSizes {
		icons = append(icons, scaleIcon(icon.Image, size))
	}
	return checked("set icon", ewmh.WmIconSet(c.XUtil, win, icons))
}

func scaleIcon(src *image.RGBA, size int) ewmh.WmIcon {
	scaled := src
	if src.Bounds().Dx() != size || src.Bounds().Dy() != size {
		scaled = image.NewRGBA(image.Rect(0, 0, size, size))
		draw.BiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	// _NET_WM_ICON wants rows of packed ARGB values.
	data := make([]uint, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := scaled.PixOffset(x, y)
			r := uint(scaled.Pix[i])
			g := uint(scaled.Pix[i+1])
			b := uint(scaled.Pix[i+2])
			a := uint(scaled.Pix[i+3])
			data = append(data, a<<24|r<<16|g<<8|b)
		}
	}
	return ewmh.WmIcon{
		Width:  uint(size),
		Height: uint(size),
		Data:   data,
	}
}
