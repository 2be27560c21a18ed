// Package xwin is a minimal X11 windowing host: it owns the
// connection, creates named top-level windows, and runs the event
// loop, dispatching protocol events to per-window hooks. It is the
// window-lookup side of drop-target registration.
package xwin

import (
	"encoding/binary"
	"fmt"
	"image"
	"log"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/fmigueis/filedrop/xutil"
	"github.com/pkg/errors"
)

type Toolkit struct {
	XU     *xgbutil.XUtil
	Conn   *xgb.Conn
	Screen *xproto.ScreenInfo

	atoms    toolkitAtoms
	wins     map[xproto.Window]*Window
	names    map[string]*Window
	ssaverOK bool
}

type toolkitAtoms struct {
	WmProtocols    xproto.Atom `loadAtoms:"WM_PROTOCOLS"`
	WmDeleteWindow xproto.Atom `loadAtoms:"WM_DELETE_WINDOW"`
}

// NewToolkit connects to the display named by $DISPLAY.
func NewToolkit() (*Toolkit, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "x conn")
	}
	tk := &Toolkit{
		XU:    xu,
		Conn:  xu.Conn(),
		wins:  map[xproto.Window]*Window{},
		names: map[string]*Window{},
	}
	tk.Screen = xproto.Setup(tk.Conn).DefaultScreen(tk.Conn)
	if err := xutil.LoadAtoms(tk.Conn, &tk.atoms, false); err != nil {
		return nil, errors.Wrap(err, "toolkit atoms")
	}
	return tk, nil
}

func (tk *Toolkit) Close() {
	tk.Conn.Close()
}

//----------

// Window is one toolkit-owned top-level window, addressable by name.
type Window struct {
	tk   *Toolkit
	Win  xproto.Window
	Name string
	GCtx xproto.Gcontext

	size image.Rectangle

	cmHooks  []func(*xproto.ClientMessageEvent) bool
	snHooks  []func(*xproto.SelectionNotifyEvent)
	onExpose func()
	onClose  func()
}

func (tk *Toolkit) NewWindow(name string, width, height int) (*Window, error) {
	if _, ok := tk.names[name]; ok {
		return nil, fmt.Errorf("xwin: window name taken: %q", name)
	}

	id, err := xproto.NewWindowId(tk.Conn)
	if err != nil {
		return nil, err
	}
	evMask := uint32(0 |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskExposure)
	err = xproto.CreateWindowChecked(
		tk.Conn,
		tk.Screen.RootDepth,
		id,
		tk.Screen.Root,
		0, 0, uint16(width), uint16(height),
		0, // border width
		xproto.WindowClassInputOutput,
		tk.Screen.RootVisual,
		xproto.CwEventMask,
		[]uint32{evMask}).Check()
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}

	// participate in WM_DELETE_WINDOW
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(tk.atoms.WmDeleteWindow))
	err = xproto.ChangePropertyChecked(
		tk.Conn,
		xproto.PropModeAppend,
		id,
		tk.atoms.WmProtocols,
		xproto.AtomAtom,
		32, // format
		1,
		data).Check()
	if err != nil {
		return nil, err
	}

	if err := ewmh.WmNameSet(tk.XU, id, name); err != nil {
		return nil, errors.Wrap(err, "wm name")
	}

	gc, err := xproto.NewGcontextId(tk.Conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateGCChecked(tk.Conn, gc, xproto.Drawable(id), 0, nil).Check()
	if err != nil {
		return nil, err
	}

	_ = xproto.MapWindow(tk.Conn, id)

	w := &Window{
		tk:   tk,
		Win:  id,
		Name: name,
		GCtx: gc,
		size: image.Rect(0, 0, width, height),
	}
	tk.wins[id] = w
	tk.names[name] = w
	return w, nil
}

// LookupWindow resolves a logical window name to a toolkit window.
func (tk *Toolkit) LookupWindow(name string) (*Window, bool) {
	w, ok := tk.names[name]
	return w, ok
}

// Title reads the _NET_WM_NAME of any window on the display, not just
// toolkit-owned ones.
func (tk *Toolkit) Title(win xproto.Window) (string, error) {
	return ewmh.WmNameGet(tk.XU, win)
}

//----------

// Size is the current window rectangle, origin (0,0), tracked from
// ConfigureNotify.
func (w *Window) Size() image.Rectangle {
	return w.size
}

// OnClientMessage adds a protocol hook; a hook returning true consumed
// the event.
func (w *Window) OnClientMessage(h func(*xproto.ClientMessageEvent) bool) {
	w.cmHooks = append(w.cmHooks, h)
}

func (w *Window) OnSelectionNotify(h func(*xproto.SelectionNotifyEvent)) {
	w.snHooks = append(w.snHooks, h)
}

func (w *Window) OnExpose(h func()) {
	w.onExpose = h
}

func (w *Window) OnClose(h func()) {
	w.onClose = h
}

//----------

// Run processes display events on the calling goroutine until the last
// toolkit window is gone or the connection drops. Every hook runs on
// this thread.
func (tk *Toolkit) Run() error {
	for len(tk.wins) > 0 {
		ev, xerr := tk.Conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return fmt.Errorf("xwin: connection closed")
		}
		if xerr != nil {
			log.Printf("xwin: %v", xerr)
			continue
		}
		tk.dispatch(ev)
	}
	return nil
}

func (tk *Toolkit) dispatch(ev xgb.Event) {
	switch t := ev.(type) {
	case xproto.ClientMessageEvent:
		w, ok := tk.wins[t.Window]
		if !ok {
			return
		}
		for _, h := range w.cmHooks {
			if h(&t) {
				return
			}
		}
		if tk.isDeleteWindow(&t) {
			tk.destroyWindow(w)
		}
	case xproto.SelectionNotifyEvent:
		w, ok := tk.wins[t.Requestor]
		if !ok {
			return
		}
		for _, h := range w.snHooks {
			h(&t)
		}
	case xproto.ExposeEvent:
		w, ok := tk.wins[t.Window]
		// count>0 means more expose rectangles follow; paint once at the end
		if ok && t.Count == 0 && w.onExpose != nil {
			w.onExpose()
		}
	case xproto.ConfigureNotifyEvent:
		if w, ok := tk.wins[t.Window]; ok {
			w.size = image.Rect(0, 0, int(t.Width), int(t.Height))
		}
	case xproto.DestroyNotifyEvent:
		if w, ok := tk.wins[t.Window]; ok {
			tk.forget(w)
		}
	case xproto.MapNotifyEvent, xproto.UnmapNotifyEvent, xproto.ReparentNotifyEvent:
		// structure notifications with nothing to track
	}
}

func (tk *Toolkit) isDeleteWindow(ev *xproto.ClientMessageEvent) bool {
	if ev.Type != tk.atoms.WmProtocols || ev.Format != 32 {
		return false
	}
	return xproto.Atom(ev.Data.Data32[0]) == tk.atoms.WmDeleteWindow
}

func (tk *Toolkit) destroyWindow(w *Window) {
	if w.onClose != nil {
		w.onClose()
	}
	_ = xproto.DestroyWindow(tk.Conn, w.Win)
	tk.forget(w)
}

func (tk *Toolkit) forget(w *Window) {
	delete(tk.wins, w.Win)
	delete(tk.names, w.Name)
}
