package xdnd

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/davecgh/go-spew/spew"
	"github.com/fmigueis/filedrop/uri"
)

var testAtoms = Atoms{
	XdndAware:      300,
	XdndEnter:      301,
	XdndLeave:      302,
	XdndPosition:   303,
	XdndStatus:     304,
	XdndDrop:       305,
	XdndFinished:   306,
	XdndSelection:  307,
	XdndTypeList:   308,
	XdndActionCopy: 309,
	TextURIList:    310,
	DropData:       311,
}

const (
	testWin    = xproto.Window(100)
	testSource = xproto.Window(200)
)

func newTestSession() *Session {
	a := testAtoms
	return NewSession(testWin, &a)
}

func TestEnterVersionGate(t *testing.T) {
	s := newTestSession()
	if s.Enter(testSource, Version+1, true) {
		t.Fatal()
	}
	if s.State() != StateIdle {
		t.Fatal(spew.Sdump(s))
	}
	// no status reply owed to a source that was never admitted
	if st := s.Position(testSource); st != nil {
		t.Fatal(spew.Sdump(st))
	}
}

func TestPositionReply(t *testing.T) {
	s := newTestSession()
	if !s.Enter(testSource, Version, true) {
		t.Fatal()
	}
	st := s.Position(testSource)
	if st == nil || !st.Accept || st.Action != testAtoms.XdndActionCopy {
		t.Fatal(spew.Sdump(st))
	}
	data := st.Data32()
	if data[0] != uint32(testWin) {
		t.Fatal(data)
	}
	if data[1]&statusAcceptFlag == 0 {
		t.Fatal(data)
	}
	if data[2] != 0 || data[3] != 0 { // empty rectangle
		t.Fatal(data)
	}
}

func TestPositionNotAccepting(t *testing.T) {
	s := newTestSession()
	s.Enter(testSource, Version, false)
	st := s.Position(testSource)
	if st == nil || st.Accept {
		t.Fatal(spew.Sdump(st))
	}
	if data := st.Data32(); data[4] != uint32(xproto.AtomNone) {
		t.Fatal(data)
	}
}

func TestPositionWrongSource(t *testing.T) {
	s := newTestSession()
	s.Enter(testSource, Version, true)
	if st := s.Position(testSource + 1); st != nil {
		t.Fatal(spew.Sdump(st))
	}
}

func TestDropNotAccepting(t *testing.T) {
	s := newTestSession()
	s.Enter(testSource, Version, false)
	convert, fin := s.Drop(testSource, 111)
	if convert {
		t.Fatal()
	}
	if fin == nil || fin.Accepted {
		t.Fatal(spew.Sdump(fin))
	}
	if data := fin.Data32(); data[1] != 0 || data[2] != uint32(xproto.AtomNone) {
		t.Fatal(data)
	}
	if s.State() != StateIdle {
		t.Fatal(s.State())
	}
}

func TestDropWhileIdle(t *testing.T) {
	s := newTestSession()
	convert, fin := s.Drop(testSource, 111)
	if convert || fin != nil {
		t.Fatal()
	}
}

func TestLeaveResets(t *testing.T) {
	s := newTestSession()
	s.Enter(testSource, Version, true)
	s.Leave()
	if s.State() != StateIdle {
		t.Fatal(s.State())
	}
	if st := s.Position(testSource); st != nil {
		t.Fatal(spew.Sdump(st))
	}
}

func TestEnterTerminatesPreviousSession(t *testing.T) {
	s := newTestSession()
	s.Enter(testSource, Version, true)
	if convert, _ := s.Drop(testSource, 111); !convert {
		t.Fatal()
	}
	// session stuck in awaiting-selection; a new enter reclaims it
	if !s.Enter(testSource+1, Version, true) {
		t.Fatal()
	}
	if s.State() != StateEntered || s.Source() != testSource+1 {
		t.Fatal(spew.Sdump(s))
	}
	if s.AwaitingSelection(111) {
		t.Fatal()
	}
}

func TestDropGesture(t *testing.T) {
	// enter -> position -> drop -> selection data, one event's worth of
	// paths in source order
	s := newTestSession()
	if !s.Enter(testSource, 4, true) { // older source version is fine
		t.Fatal()
	}
	if st := s.Position(testSource); st == nil || !st.Accept {
		t.Fatal(spew.Sdump(st))
	}
	convert, fin := s.Drop(testSource, 222)
	if !convert || fin != nil {
		t.Fatal()
	}
	if s.State() != StateAwaitingSelection {
		t.Fatal(s.State())
	}
	if s.AwaitingSelection(221) { // stale timestamp
		t.Fatal()
	}
	if !s.AwaitingSelection(222) {
		t.Fatal()
	}

	payload := []byte("file:///tmp/one.txt\r\nfile:///tmp/two%20b.txt\r\n")
	paths := uri.DecodeList(payload)
	if len(paths) != 2 || paths[0] != "/tmp/one.txt" || paths[1] != "/tmp/two b.txt" {
		t.Fatal(paths)
	}

	fin = s.Finish(true)
	if !fin.Accepted || fin.Action != testAtoms.XdndActionCopy {
		t.Fatal(spew.Sdump(fin))
	}
	if s.State() != StateIdle {
		t.Fatal(s.State())
	}
}

func TestFinishEmptyTransferFails(t *testing.T) {
	s := newTestSession()
	s.Enter(testSource, Version, true)
	s.Drop(testSource, 333)
	fin := s.Finish(false)
	if fin.Accepted {
		t.Fatal(spew.Sdump(fin))
	}
	if data := fin.Data32(); data[2] != uint32(xproto.AtomNone) {
		t.Fatal(data)
	}
}

func TestDecodeEnter(t *testing.T) {
	data := []uint32{
		uint32(testSource),
		uint32(Version)<<24 | 1,
		310, 0, 0,
	}
	m := DecodeEnter(data)
	if m.Source != testSource || m.Version != Version || !m.MoreTypes {
		t.Fatal(spew.Sdump(m))
	}
	if !containsAtom(m.Types[:], 310) {
		t.Fatal(m.Types)
	}
}
