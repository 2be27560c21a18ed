package xdnd

import "github.com/BurntSushi/xgb/xproto"

// Atoms caches the XDND protocol atoms for one connection. Interned
// once at registration, so no message handler pays a server round-trip.
// Untagged fields intern under their own field name.
type Atoms struct {
	XdndAware    xproto.Atom
	XdndEnter    xproto.Atom
	XdndLeave    xproto.Atom
	XdndPosition xproto.Atom
	XdndStatus   xproto.Atom
	XdndDrop     xproto.Atom
	XdndFinished xproto.Atom

	XdndSelection  xproto.Atom
	XdndTypeList   xproto.Atom
	XdndActionCopy xproto.Atom

	TextURIList xproto.Atom `loadAtoms:"text/uri-list"`
	DropData    xproto.Atom `loadAtoms:"FILEDROP_DATA"`
}

//----------

// EnterMessage is a decoded XdndEnter payload.
type EnterMessage struct {
	Source    xproto.Window
	Version   int
	MoreTypes bool            // source offers >3 types via XdndTypeList
	Types     [3]xproto.Atom  // inline type list, unused entries are None
}

func DecodeEnter(data []uint32) EnterMessage {
	return EnterMessage{
		Source:    xproto.Window(data[0]),
		Version:   int(data[1] >> 24),
		MoreTypes: data[1]&1 == 1,
		Types: [3]xproto.Atom{
			xproto.Atom(data[2]),
			xproto.Atom(data[3]),
			xproto.Atom(data[4]),
		},
	}
}

//----------

// StatusEvent is the XdndStatus reply sent to the source while the
// pointer is over the target window.
type StatusEvent struct {
	Window xproto.Window // target window
	Accept bool
	Action xproto.Atom
}

const (
	statusAcceptFlag        = 1 << 0
	statusSendPositionsFlag = 1 << 1 // empty rectangle: keep sending positions
)

func (st *StatusEvent) Data32() []uint32 {
	flags := uint32(statusSendPositionsFlag)
	action := xproto.Atom(xproto.AtomNone)
	if st.Accept {
		flags |= statusAcceptFlag
		action = st.Action
	}
	return []uint32{
		uint32(st.Window),
		flags,
		0, // x,y
		0, // w,h
		uint32(action),
	}
}

//----------

// FinishedEvent is the XdndFinished reply that ends the gesture.
type FinishedEvent struct {
	Window   xproto.Window // target window
	Accepted bool
	Action   xproto.Atom
}

func (f *FinishedEvent) Data32() []uint32 {
	acc := uint32(0)
	action := xproto.Atom(xproto.AtomNone)
	if f.Accepted {
		acc = 1
		action = f.Action
	}
	return []uint32{
		uint32(f.Window),
		acc,
		uint32(action),
		0, // pad
		0, // pad
	}
}

//----------

func containsAtom(atoms []xproto.Atom, a xproto.Atom) bool {
	for _, u := range atoms {
		if u == a {
			return true
		}
	}
	return false
}
