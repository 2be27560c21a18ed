package xdnd

import "github.com/BurntSushi/xgb/xproto"

// Version is the highest XDND protocol version this target speaks.
const Version = 5

// State of the per-window drag session.
type State int

const (
	StateIdle              State = iota
	StateEntered                 // source entered, acceptance decided
	StateAwaitingSelection       // drop seen, selection transfer pending
)

// Session tracks the drag gesture over one registered window. At most
// one session is live per window: a drop, leave or finished reply ends
// it, and a new enter terminates whatever came before (which is also
// how a session stuck in StateAwaitingSelection gets reclaimed, since
// there is no timeout). All methods run on the event loop thread.
type Session struct {
	win   xproto.Window
	atoms *Atoms

	state    State
	source   xproto.Window
	accept   bool
	dropTime xproto.Timestamp
}

func NewSession(win xproto.Window, atoms *Atoms) *Session {
	return &Session{win: win, atoms: atoms}
}

func (s *Session) State() State {
	return s.state
}

// Source is the drag source window of the live session.
func (s *Session) Source() xproto.Window {
	return s.source
}

//----------

// Enter starts a new session, terminating any previous one. It reports
// whether a session started: a source advertising a protocol version
// newer than Version is ignored entirely and the session stays idle.
func (s *Session) Enter(source xproto.Window, version int, accept bool) bool {
	s.reset()
	if version > Version {
		return false
	}
	s.state = StateEntered
	s.source = source
	s.accept = accept
	return true
}

// Position yields the XdndStatus reply: acceptance flag, empty
// rectangle, and the copy action only when accepting. Nil when no
// session is live or the message names the wrong source window, in
// which case no reply is owed.
func (s *Session) Position(source xproto.Window) *StatusEvent {
	if s.state != StateEntered || source != s.source {
		return nil
	}
	st := &StatusEvent{Window: s.win, Accept: s.accept}
	if s.accept {
		st.Action = s.atoms.XdndActionCopy
	}
	return st
}

// Drop either moves the session to StateAwaitingSelection (the caller
// must issue the selection conversion with the drop timestamp) or, for
// a non-accepting session, ends the gesture with a failure reply.
func (s *Session) Drop(source xproto.Window, t xproto.Timestamp) (convert bool, fin *FinishedEvent) {
	if s.state != StateEntered || source != s.source {
		return false, nil
	}
	if !s.accept {
		fin = &FinishedEvent{Window: s.win, Accepted: false}
		s.reset()
		return false, fin
	}
	s.state = StateAwaitingSelection
	s.dropTime = t
	return true, nil
}

// AwaitingSelection reports whether a selection notify with timestamp t
// completes this session's conversion request.
func (s *Session) AwaitingSelection(t xproto.Timestamp) bool {
	return s.state == StateAwaitingSelection && t == s.dropTime
}

// Finish ends the session after the selection transfer. ok=false when
// the transfer yielded no data, so the source learns the drop failed.
func (s *Session) Finish(ok bool) *FinishedEvent {
	fin := &FinishedEvent{Window: s.win, Accepted: ok}
	if ok {
		fin.Action = s.atoms.XdndActionCopy
	}
	s.reset()
	return fin
}

// Leave cancels the gesture without a reply.
func (s *Session) Leave() {
	s.reset()
}

func (s *Session) reset() {
	*s = Session{win: s.win, atoms: s.atoms}
}
