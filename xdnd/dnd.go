// Package xdnd implements the drop-target half of the XDND protocol
// (version 5) over the X protocol bindings.
//
// protocol: https://www.freedesktop.org/wiki/Specifications/XDND/
package xdnd

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/fmigueis/filedrop/uri"
	"github.com/fmigueis/filedrop/xutil"
)

// Target makes one window an XDND drop target. The host event loop
// feeds it ClientMessage and SelectionNotify events; a completed drop
// surfaces through the emit callback, exactly once per gesture, with
// the dropped paths in source order. All methods run on the event loop
// thread and none of them block on the drag source.
type Target struct {
	conn   *xgb.Conn
	win    xproto.Window
	atoms  Atoms
	sess   *Session
	emitFn func(paths []string)
}

func NewTarget(conn *xgb.Conn, win xproto.Window, emit func(paths []string)) (*Target, error) {
	t := &Target{conn: conn, win: win, emitFn: emit}
	if err := xutil.LoadAtoms(conn, &t.atoms, false); err != nil {
		return nil, err
	}
	t.sess = NewSession(win, &t.atoms)
	if err := t.advertise(); err != nil {
		return nil, err
	}
	return t, nil
}

// advertise sets XdndAware on the window so drag sources initiate the
// protocol with it.
func (t *Target) advertise() error {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, Version)
	return xproto.ChangePropertyChecked(
		t.conn,
		xproto.PropModeReplace,
		t.win,
		t.atoms.XdndAware,
		xproto.AtomAtom,
		32, // format
		1,
		data).Check()
}

//----------

// OnClientMessage handles the XDND client messages directed at the
// window. Reports whether the event belonged to this protocol.
func (t *Target) OnClientMessage(ev *xproto.ClientMessageEvent) bool {
	if ev.Format != 32 {
		return false
	}
	data := ev.Data.Data32
	switch ev.Type {
	case t.atoms.XdndEnter:
		t.onEnter(DecodeEnter(data))
	case t.atoms.XdndPosition:
		t.onPosition(data)
	case t.atoms.XdndDrop:
		t.onDropMessage(data)
	case t.atoms.XdndLeave:
		t.sess.Leave()
	default:
		return false
	}
	return true
}

func (t *Target) onEnter(m EnterMessage) {
	if m.Version > Version {
		// resets any stale session and stays idle, without paying
		// for the type list fetch below
		t.sess.Enter(m.Source, m.Version, false)
		return
	}
	types := m.Types[:]
	if m.MoreTypes {
		var err error
		types, err = t.sourceTypeList(m.Source)
		if err != nil {
			log.Printf("xdnd: type list from source %v: %v", m.Source, err)
		}
	}
	accept := containsAtom(types, t.atoms.TextURIList)
	if !accept {
		log.Printf("xdnd: rejecting source %v, offered types: %v",
			m.Source, typeNames(t.atomName, types))
	}
	t.sess.Enter(m.Source, m.Version, accept)
}

func (t *Target) atomName(a xproto.Atom) (string, error) {
	return xutil.GetAtomName(t.conn, a)
}

func (t *Target) onPosition(data []uint32) {
	st := t.sess.Position(xproto.Window(data[0]))
	if st == nil {
		return
	}
	t.sendClientMessage(t.sess.Source(), t.atoms.XdndStatus, st.Data32())
}

func (t *Target) onDropMessage(data []uint32) {
	src := xproto.Window(data[0])
	convert, fin := t.sess.Drop(src, xproto.Timestamp(data[2]))
	if fin != nil {
		t.sendClientMessage(src, t.atoms.XdndFinished, fin.Data32())
		return
	}
	if convert {
		t.requestSelection()
	}
}

// requestSelection asks the source to write the uri list to a property
// on this window; completion arrives as a SelectionNotify event.
func (t *Target) requestSelection() {
	_ = xproto.ConvertSelection(
		t.conn,
		t.win,
		t.atoms.XdndSelection,
		t.atoms.TextURIList,
		t.atoms.DropData,
		t.sess.dropTime)
}

//----------

// OnSelectionNotify completes a pending drop: reads (and deletes) the
// transfer property, decodes the uri list and emits the drop event. A
// transfer that produced no data ends the gesture as failed instead.
func (t *Target) OnSelectionNotify(ev *xproto.SelectionNotifyEvent) {
	if !t.sess.AwaitingSelection(ev.Time) {
		return
	}
	var value []byte
	if ev.Property != xproto.AtomNone {
		b, err := t.readDropData(ev.Property)
		if err != nil {
			log.Printf("xdnd: read drop data: %v", err)
		}
		value = b
	}
	src := t.sess.Source()
	ok := len(value) > 0
	fin := t.sess.Finish(ok)
	if ok {
		t.emit(uri.DecodeList(value))
	}
	t.sendClientMessage(src, t.atoms.XdndFinished, fin.Data32())
}

func (t *Target) readDropData(prop xproto.Atom) ([]byte, error) {
	reply, err := xproto.GetProperty(
		t.conn,
		true, // delete after read
		t.win,
		prop,
		xproto.GetPropertyTypeAny,
		0,              // long offset
		math.MaxUint32, // long length
	).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// sourceTypeList fetches XdndTypeList from the source window. Bounded
// read: the first 1024 atoms are plenty for any real source.
func (t *Target) sourceTypeList(src xproto.Window) ([]xproto.Atom, error) {
	reply, err := xproto.GetProperty(
		t.conn,
		false,
		src,
		t.atoms.XdndTypeList,
		xproto.AtomAtom,
		0,
		1024).Reply()
	if err != nil {
		return nil, err
	}
	if reply.Format != 32 {
		return nil, fmt.Errorf("xdnd: bad type list format: %d", reply.Format)
	}
	atoms := make([]xproto.Atom, 0, reply.ValueLen)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		atoms = append(atoms, xproto.Atom(binary.LittleEndian.Uint32(reply.Value[i:])))
	}
	return atoms, nil
}

// typeNames resolves atoms to their names for log output, skipping
// None entries and falling back to the numeric value when the lookup
// fails.
func typeNames(lookup func(xproto.Atom) (string, error), atoms []xproto.Atom) []string {
	names := make([]string, 0, len(atoms))
	for _, a := range atoms {
		if a == xproto.AtomNone {
			continue
		}
		s, err := lookup(a)
		if err != nil {
			s = fmt.Sprintf("#%d", a)
		}
		names = append(names, s)
	}
	return names
}

//----------

func (t *Target) sendClientMessage(win xproto.Window, typ xproto.Atom, data32 []uint32) {
	cme := &xproto.ClientMessageEvent{
		Type:   typ,
		Window: win,
		Format: 32,
		Data:   xproto.ClientMessageDataUnionData32New(data32),
	}
	_ = xproto.SendEvent(
		t.conn,
		false, // propagate
		cme.Window,
		xproto.EventMaskNoEvent,
		string(cme.Bytes()))
}

func (t *Target) emit(paths []string) {
	if t.emitFn != nil {
		t.emitFn(paths)
	}
}
