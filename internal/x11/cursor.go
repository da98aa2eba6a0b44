package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/go-casement/casement/internal/platform"
)

// cursorShape maps the portable cursor set onto the X core cursor font.
func cursorShape(icon platform.CursorIcon) uint16 {
	switch icon {
	case platform.CursorCrosshair:
		return xcursor.Crosshair
	case platform.CursorHand:
		return xcursor.Hand2
	case platform.CursorArrow:
		return xcursor.Arrow
	case platform.CursorMove:
		return xcursor.Fleur
	case platform.CursorText:
		return xcursor.XTerm
	case platform.CursorWait, platform.CursorProgress:
		return xcursor.Watch
	case platform.CursorHelp:
		return xcursor.QuestionArrow
	case platform.CursorNotAllowed:
		return xcursor.Circle
	case platform.CursorEWResize:
		return xcursor.SBHDoubleArrow
	case platform.CursorNSResize:
		return xcursor.SBVDoubleArrow
	default:
		return xcursor.LeftPtr
	}
}

func (b *Backend) SetCursorIcon(h platform.Handle, icon platform.CursorIcon) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	cursor, err := xcursor.CreateCursor(b.conn.XUtil, cursorShape(icon))
	if err != nil {
		return checked("create cursor", err)
	}
	return checked("set cursor", xproto.ChangeWindowAttributesChecked(
		b.conn.XUtil.Conn(), xproto.Window(w.xid),
		xproto.CwCursor, []uint32{uint32(cursor)}).Check())
}

// SetCursorVisible hides the cursor by installing a fully transparent
// 1x1 cursor, the standard X trick; showing restores the default shape.
func (b *Backend) SetCursorVisible(h platform.Handle, visible bool) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	if visible {
		return checked("restore cursor", xproto.ChangeWindowAttributesChecked(
			b.conn.XUtil.Conn(), xproto.Window(w.xid),
			xproto.CwCursor, []uint32{0}).Check())
	}
	cursor, err := b.blankCursor()
	if err != nil {
		return err
	}
	return checked("hide cursor", xproto.ChangeWindowAttributesChecked(
		b.conn.XUtil.Conn(), xproto.Window(w.xid),
		xproto.CwCursor, []uint32{cursor}).Check())
}

func (b *Backend) blankCursor() (uint32, error) {
	b.mu.Lock()
	if b.hasHidden {
		cursor := b.hiddenCursor
		b.mu.Unlock()
		return cursor, nil
	}
	b.mu.Unlock()

	conn := b.conn.XUtil.Conn()
	pixmap, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, checked("allocate pixmap id", err)
	}
	err = xproto.CreatePixmapChecked(conn, 1, pixmap, xproto.Drawable(b.conn.Root), 1, 1).Check()
	if err != nil {
		return 0, checked("create pixmap", err)
	}
	cursorID, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, checked("allocate cursor id", err)
	}
	err = xproto.CreateCursorChecked(conn, cursorID, pixmap, pixmap, 0, 0, 0, 0, 0, 0, 0, 0).Check()
	xproto.FreePixmap(conn, pixmap)
	if err != nil {
		return 0, checked("create blank cursor", err)
	}

	b.mu.Lock()
	b.hiddenCursor = uint32(cursorID)
	b.hasHidden = true
	b.mu.Unlock()
	return uint32(cursorID), nil
}

// SetCursorGrab confines the pointer to the window.
func (b *Backend) SetCursorGrab(h platform.Handle, grab bool) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	conn := b.conn.XUtil.Conn()
	if !grab {
		xproto.UngrabPointer(conn, xproto.TimeCurrentTime)
		b.conn.XUtil.Sync()
		return nil
	}
	reply, err := xproto.GrabPointer(conn, true, xproto.Window(w.xid),
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.Window(w.xid), xproto.CursorNone, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return checked("grab pointer", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return checked("grab pointer", errGrabDenied(reply.Status))
	}
	return nil
}

type grabDenied uint8

func errGrabDenied(status byte) error { return grabDenied(status) }

func (g grabDenied) Error() string {
	switch byte(g) {
	case xproto.GrabStatusAlreadyGrabbed:
		return "pointer already grabbed"
	case xproto.GrabStatusFrozen:
		return "pointer frozen by another client"
	case xproto.GrabStatusInvalidTime:
		return "invalid grab timestamp"
	case xproto.GrabStatusNotViewable:
		return "window not viewable"
	default:
		return "grab failed"
	}
}

// SetCursorPosition warps the pointer to window coordinates.
func (b *Backend) SetCursorPosition(h platform.Handle, x, y int) error {
	w, err := b.window(h)
	if err != nil {
		return err
	}
	return checked("warp pointer", xproto.WarpPointerChecked(
		b.conn.XUtil.Conn(), xproto.WindowNone, xproto.Window(w.xid),
		0, 0, 0, 0, int16(x), int16(y)).Check())
}
