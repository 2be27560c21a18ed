package xwin

import (
	"image"

	"github.com/BurntSushi/xgb/screensaver"
	"github.com/BurntSushi/xgb/xproto"
)

// Window introspection queries. All of them cost one round-trip to the
// server.

// QueryPointer returns the pointer position in window coordinates.
func (w *Window) QueryPointer() (image.Point, error) {
	r, err := xproto.QueryPointer(w.tk.Conn, w.Win).Reply()
	if err != nil {
		return image.Point{}, err
	}
	return image.Point{int(r.WinX), int(r.WinY)}, nil
}

// RootCoords returns the window's upper-left corner in screen
// coordinates.
func (w *Window) RootCoords() (image.Point, error) {
	r, err := xproto.TranslateCoordinates(
		w.tk.Conn, w.Win, w.tk.Screen.Root, 0, 0).Reply()
	if err != nil {
		return image.Point{}, err
	}
	return image.Point{int(r.DstX), int(r.DstY)}, nil
}

// Geometry returns the window rectangle as the server reports it.
func (w *Window) Geometry() (image.Rectangle, error) {
	g, err := xproto.GetGeometry(w.tk.Conn, xproto.Drawable(w.Win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	x, y := int(g.X), int(g.Y)
	return image.Rect(x, y, x+int(g.Width), y+int(g.Height)), nil
}

//----------

// UserInactiveTime returns milliseconds since the last user input,
// via the MIT screensaver extension. Returns -1 when the display does
// not support the query.
func (tk *Toolkit) UserInactiveTime() int64 {
	if !tk.ssaverOK {
		if err := screensaver.Init(tk.Conn); err != nil {
			return -1
		}
		tk.ssaverOK = true
	}
	r, err := screensaver.QueryInfo(tk.Conn, xproto.Drawable(tk.Screen.Root)).Reply()
	if err != nil {
		return -1
	}
	return int64(r.MsSinceUserInput)
}
