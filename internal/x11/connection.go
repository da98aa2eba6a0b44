package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Connection manages the X11 connection, core X resources, and the interned
// atoms the backend needs for WM protocol handling.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	atomProtocols    xproto.Atom
	atomDeleteWindow xproto.Atom
	atomChangeState  xproto.Atom
}

// NewConnection establishes a connection to the X server and initializes
// the keysym tables used to resolve key events.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	if err := c.internAtoms(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	return c, nil
}

func (c *Connection) internAtoms() error {
	atoms := []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &c.atomProtocols},
		{"WM_DELETE_WINDOW", &c.atomDeleteWindow},
		{"WM_CHANGE_STATE", &c.atomChangeState},
	}
	for _, a := range atoms {
		reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			return fmt.Errorf("intern atom %s: %w", a.name, err)
		}
		*a.dst = reply.Atom
	}
	return nil
}

// Close cleanly disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
