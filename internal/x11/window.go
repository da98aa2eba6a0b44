package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/go-casement/casement/internal/platform"
)

const listenMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskFocusChange |
	xproto.EventMaskExposure

// CreateWindow creates and maps an X window configured per attrs.
func (b *Backend) CreateWindow(attrs platform.WindowAttributes) (platform.Handle, error) {
	win, err := xwindow.Generate(b.conn.XUtil)
	if err != nil {
		return 0, fmt.Errorf("x11: allocate window id: %w", err)
	}

	width, height := attrs.Width, attrs.Height
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 768
	}

	err = win.CreateChecked(b.conn.Root, 0, 0, width, height,
		xproto.CwBackPixel|xproto.CwEventMask,
		0x000000, uint32(listenMask))
	if err != nil {
		return 0, fmt.Errorf("x11: create window: %w", err)
	}

	// Opt in to the WM close handshake so closes arrive as events instead
	// of the server killing the client.
	if err := icccm.WmProtocolsSet(b.conn.XUtil, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		win.Destroy()
		return 0, fmt.Errorf("x11: set WM_PROTOCOLS: %w", err)
	}

	if err := setTitle(b.conn, win.Id, attrs.Title); err != nil {
		win.Destroy()
		return 0, err
	}
	if attrs.MinWidth > 0 || attrs.MinHeight > 0 || attrs.MaxWidth > 0 || attrs.MaxHeight > 0 || !attrs.Resizable {
		if err := setNormalHints(b.conn, win.Id, attrs, width, height); err != nil {
			win.Destroy()
			return 0, err
		}
	}
	if !attrs.Decorations {
		if err := setDecorations(b.conn, win.Id, false); err != nil {
			win.Destroy()
			return 0, err
		}
	}
	if attrs.Icon != nil {
		// Icon failures are cosmetic; the window is still usable.
		_ = setIcon(b.conn, win.Id, attrs.Icon)
	}

	b.mu.Lock()
	b.next++
	h := b.next
	b.windows[h] = &managed{
		xid:       uint32(win.Id),
		minWidth:  attrs.MinWidth,
		minHeight: attrs.MinHeight,
		maxWidth:  attrs.MaxWidth,
		maxHeight: attrs.MaxHeight,
		resizable: attrs.Resizable,
		curWidth:  width,
		curHeight: height,
	}
	b.byXID[uint32(win.Id)] = h
	b.mu.Unlock()

	if attrs.Visible {
		win.Map()
	}
	if attrs.AlwaysOnTop {
		ewmh.WmStateReq(b.conn.XUtil, win.Id, ewmhStateAdd, "_NET_WM_STATE_ABOVE")
	}
	if attrs.Fullscreen == platform.FullscreenBorderless {
		ewmh.WmStateReq(b.conn.XUtil, win.Id, ewmhStateAdd, "_NET_WM_STATE_FULLSCREEN")
	}
	b.conn.XUtil.Sync()
	return h, nil
}

const (
	ewmhStateRemove = 0
	ewmhStateAdd    = 1
)

// DestroyWindow destroys the X window. The DestroyNotify the server sends
// back becomes the window's final native event.
func (b *Backend) DestroyWindow(h platform.Handle) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	b.mu.Lock()
	w.destroyed = true
	b.mu.Unlock()
	return checked("destroy window",
		xproto.DestroyWindowChecked(b.conn.XUtil.Conn(), xproto.Window(w.xid)).Check())
}

func (b *Backend) InnerSize(h platform.Handle) (int, int, error) {
	w, err := b.window(h)
	if err != nil {
		return 0, 0, err
	}
	geom, err := xproto.GetGeometry(b.conn.XUtil.Conn(), xproto.Drawable(w.xid)).Reply()
	if err != nil {
		return 0, 0, checked("get geometry", err)
	}
	return int(geom.Width), int(geom.Height), nil
}

// SetInnerSize requests a resize and reports the geometry the server
// accepted, which the WM may have clamped.
func (b *Backend) SetInnerSize(h platform.Handle, width, height int) (int, int, error) {
	w, err := b.window(h)
	if err != nil {
		return 0, 0, err
	}
	err = xproto.ConfigureWindowChecked(b.conn.XUtil.Conn(), xproto.Window(w.xid),
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)}).Check()
	if err != nil {
		return 0, 0, checked("configure window", err)
	}
	geom, err := xproto.GetGeometry(b.conn.XUtil.Conn(), xproto.Drawable(w.xid)).Reply()
	if err != nil {
		return width, height, nil
	}
	return int(geom.Width), int(geom.Height), nil
}

// OuterSize adds the WM frame extents to the inner size.
func (b *Backend) OuterSize(h platform.Handle) (int, int, error) {
	w, err := b.window(h)
	if err != nil {
		return 0, 0, err
	}
	width, height, err := b.InnerSize(h)
	if err != nil {
		return 0, 0, err
	}
	extents, err := ewmh.FrameExtentsGet(b.conn.XUtil, xproto.Window(w.xid))
	if err != nil {
		// No extents property; the window is undecorated or unmapped.
		return width, height, nil
	}
	return width + int(extents.Left) + int(extents.Right), height + int(extents.Top) + int(extents.Bottom), nil
}

func (b *Backend) Position(h platform.Handle) (int, int, error) {
	w, err := b.window(h)
	if err != nil {
		return 0, 0, err
	}
	translate, err := xproto.TranslateCoordinates(b.conn.XUtil.Conn(),
		xproto.Window(w.xid), b.conn.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, checked("translate coordinates", err)
	}
	return int(translate.DstX), int(translate.DstY), nil
}

func (b *Backend) SetPosition(h platform.Handle, x, y int) (int, int, error) {
	w, err := b.window(h)
	if err != nil {
		return 0, 0, err
	}
	err = xproto.ConfigureWindowChecked(b.conn.XUtil.Conn(), xproto.Window(w.xid),
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))}).Check()
	if err != nil {
		return 0, 0, checked("configure window", err)
	}
	return b.Position(h)
}

func (b *Backend) SetMinInnerSize(h platform.Handle, width, height int) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	b.mu.Lock()
	w.minWidth, w.minHeight = width, height
	b.mu.Unlock()
	return b.applyNormalHints(w)
}

func (b *Backend) SetMaxInnerSize(h platform.Handle, width, height int) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	b.mu.Lock()
	w.maxWidth, w.maxHeight = width, height
	b.mu.Unlock()
	return b.applyNormalHints(w)
}

func (b *Backend) SetResizable(h platform.Handle, resizable bool) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	b.mu.Lock()
	w.resizable = resizable
	b.mu.Unlock()
	return b.applyNormalHints(w)
}

// applyNormalHints pushes the current constraints as WM_NORMAL_HINTS.
// A non-resizable window pins min and max to the current size, the
// standard X idiom.
func (b *Backend) applyNormalHints(w *managed) error {
	b.mu.Lock()
	hints := icccm.NormalHints{}
	if !w.resizable {
		hints.Flags = icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		hints.MinWidth, hints.MinHeight = uint(w.curWidth), uint(w.curHeight)
		hints.MaxWidth, hints.MaxHeight = uint(w.curWidth), uint(w.curHeight)
	} else {
		if w.minWidth > 0 || w.minHeight > 0 {
			hints.Flags |= icccm.SizeHintPMinSize
			hints.MinWidth, hints.MinHeight = uint(w.minWidth), uint(w.minHeight)
		}
		if w.maxWidth > 0 || w.maxHeight > 0 {
			hints.Flags |= icccm.SizeHintPMaxSize
			hints.MaxWidth, hints.MaxHeight = uint(w.maxWidth), uint(w.maxHeight)
		}
	}
	xid := xproto.Window(w.xid)
	b.mu.Unlock()
	return checked("set normal hints", icccm.WmNormalHintsSet(b.conn.XUtil, xid, &hints))
}

func setNormalHints(c *Connection, win xproto.Window, attrs platform.WindowAttributes, width, height int) error {
	hints := icccm.NormalHints{}
	if !attrs.Resizable {
		hints.Flags = icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		hints.MinWidth, hints.MinHeight = uint(width), uint(height)
		hints.MaxWidth, hints.MaxHeight = uint(width), uint(height)
	} else {
		if attrs.MinWidth > 0 || attrs.MinHeight > 0 {
			hints.Flags |= icccm.SizeHintPMinSize
			hints.MinWidth, hints.MinHeight = uint(attrs.MinWidth), uint(attrs.MinHeight)
		}
		if attrs.MaxWidth > 0 || attrs.MaxHeight > 0 {
			hints.Flags |= icccm.SizeHintPMaxSize
			hints.MaxWidth, hints.MaxHeight = uint(attrs.MaxWidth), uint(attrs.MaxHeight)
		}
	}
	return checked("set normal hints", icccm.WmNormalHintsSet(c.XUtil, win, &hints))
}

func setTitle(c *Connection, win xproto.Window, title string) error {
	if err := ewmh.WmNameSet(c.XUtil, win, title); err != nil {
		return checked("set _NET_WM_NAME", err)
	}
	// Legacy WMs read the ICCCM property instead.
	return checked("set WM_NAME", icccm.WmNameSet(c.XUtil, win, title))
}

func (b *Backend) SetTitle(h platform.Handle, title string) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	return setTitle(b.conn, xproto.Window(w.xid), title)
}

func (b *Backend) SetVisible(h platform.Handle, visible bool) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	win := xwindow.New(b.conn.XUtil, xproto.Window(w.xid))
	if visible {
		win.Map()
	} else {
		win.Unmap()
	}
	b.conn.XUtil.Sync()
	return nil
}

func setDecorations(c *Connection, win xproto.Window, decorations bool) error {
	hints := motif.Hints{Flags: motif.HintDecorations}
	if decorations {
		hints.Decoration = motif.DecorationAll
	} else {
		hints.Decoration = motif.DecorationNone
	}
	return checked("set motif hints", motif.WmHintsSet(c.XUtil, win, &hints))
}

func (b *Backend) SetDecorations(h platform.Handle, decorations bool) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	return setDecorations(b.conn, xproto.Window(w.xid), decorations)
}

func (b *Backend) SetAlwaysOnTop(h platform.Handle, onTop bool) error {
	return b.stateReq(h, onTop, "_NET_WM_STATE_ABOVE")
}

// SetFullscreen toggles _NET_WM_STATE_FULLSCREEN. Requesting the current
// state is harmless: the WM treats add/remove of a held state as a no-op.
func (b *Backend) SetFullscreen(h platform.Handle, mode platform.FullscreenMode) error {
	return b.stateReq(h, mode == platform.FullscreenBorderless, "_NET_WM_STATE_FULLSCREEN")
}

func (b *Backend) SetMaximized(h platform.Handle, maximized bool) error {
	if err := b.stateReq(h, maximized, "_NET_WM_STATE_MAXIMIZED_VERT"); err != nil {
		return err
	}
	return b.stateReq(h, maximized, "_NET_WM_STATE_MAXIMIZED_HORZ")
}

func (b *Backend) stateReq(h platform.Handle, set bool, atom string) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	action := ewmhStateRemove
	if set {
		action = ewmhStateAdd
	}
	return checked("wm state request",
		ewmh.WmStateReq(b.conn.XUtil, xproto.Window(w.xid), action, atom))
}

// SetMinimized iconifies via the ICCCM WM_CHANGE_STATE handshake; restore
// is a plain re-map.
func (b *Backend) SetMinimized(h platform.Handle, minimized bool) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	if !minimized {
		xwindow.New(b.conn.XUtil, xproto.Window(w.xid)).Map()
		b.conn.XUtil.Sync()
		return nil
	}

	const iconicState = 3
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w.xid),
		Type:   b.conn.atomChangeState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}
	return checked("iconify", xproto.SendEventChecked(
		b.conn.XUtil.Conn(),
		false,
		b.conn.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check())
}

func (b *Backend) SetIcon(h platform.Handle, icon *platform.Icon) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	return setIcon(b.conn, xproto.Window(w.xid), icon)
}

// NativeHandle returns the X window id for surface creation.
func (b *Backend) NativeHandle(h platform.Handle) (uintptr, error) {
	w, err := b.window(h)
	if err != nil {
		return 0, err
	}
	return uintptr(w.xid), nil
}

// ScaleFactor reports the scale of the display containing the window's
// center, 1.0 when it cannot be determined.
func (b *Backend) ScaleFactor(h platform.Handle) float64 {
	w, err := b.window(h)
	if err != nil {
		return 1.0
	}
	displays, err := b.Displays()
	if err != nil || len(displays) == 0 {
		return 1.0
	}
	cx, cy := windowCenter(b.conn, xproto.Window(w.xid))
	for _, d := range displays {
		if cx >= d.X && cx < d.X+d.Width && cy >= d.Y && cy < d.Y+d.Height {
			return d.ScaleFactor
		}
	}
	return displays[0].ScaleFactor
}

func windowCenter(c *Connection, win xproto.Window) (int, int) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0
	}
	return int(translate.DstX) + int(geom.Width)/2, int(translate.DstY) + int(geom.Height)/2
}
