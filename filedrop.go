// Package filedrop registers native windows as file drag-and-drop
// targets. A registered window receives one Event per completed drop,
// carrying the ordered list of dropped absolute file paths.
//
// Windows are addressed by a logical identifier that the platform
// resolves to a native handle: the toolkit window name on X11, the
// top-level window title on Windows. Registration lasts for the
// window's lifetime; there is no unregister call.
package filedrop

import "errors"

// Event is the drop-completion notification: exactly one per completed
// drop, regardless of how many files were dragged.
type Event struct {
	WindowID string
	Paths    []string // absolute paths, in source order
}

// Handler receives drop events on the platform's event loop thread.
type Handler func(Event)

// Registration failure reasons. Registering an already-registered
// window is not a failure.
var (
	ErrToolkitNotInitialized = errors.New("filedrop: toolkit not initialized")
	ErrWindowNotFound        = errors.New("filedrop: window not found")
	ErrNoNativeHandle        = errors.New("filedrop: window has no native handle")
	ErrPlatformInit          = errors.New("filedrop: platform drag-and-drop init failed")
	ErrUnsupported           = errors.New("filedrop: file drop not supported on this platform")
)

//----------

// backend is the platform adapter behind a Registrar.
type backend interface {
	// register resolves id to a native window and wires the platform
	// drop protocol to emit.
	register(id string, emit func(paths []string)) error
}

// Registrar registers windows as drop targets and routes their drop
// events to a single handler. Methods must run on the event loop
// thread (or before the loop starts); none of the protocol paths lock.
type Registrar struct {
	backend backend
	handler Handler
	regs    map[string]bool
}

func newRegistrar(b backend, h Handler) *Registrar {
	return &Registrar{backend: b, handler: h, regs: map[string]bool{}}
}

// Register makes the identified window a drop target. Success is
// idempotent: re-registering a window returns nil and keeps the single
// live adapter. A failed registration leaves no partial state behind.
func (r *Registrar) Register(windowID string) error {
	if r.regs[windowID] {
		return nil
	}
	emit := func(paths []string) {
		if r.handler != nil {
			r.handler(Event{WindowID: windowID, Paths: paths})
		}
	}
	if err := r.backend.register(windowID, emit); err != nil {
		return err
	}
	r.regs[windowID] = true
	return nil
}
