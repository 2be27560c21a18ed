//go:build windows

// Package windrop registers windows as OLE drop targets (IDropTarget)
// and surfaces dropped file paths through a callback, one call per
// completed drop.
package windrop

import (
	"fmt"
	"sync"
	"unsafe"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init performs the process-wide OLE drag-and-drop initialization.
// Idempotent: safe to call once per registration regardless of how
// many windows register. There is no matching teardown; the OLE
// apartment lives for the process.
func Init() error {
	initOnce.Do(func() {
		// S_FALSE means already initialized on this thread, which is fine
		hr, _, _ := procOleInitialize.Call(0)
		if hr != _S_OK && hr != _S_FALSE {
			initErr = fmt.Errorf("OleInitialize: %#x", hr)
		}
	})
	return initErr
}

//----------

// Registered targets, pinned so the GC cannot collect an object the
// OLE runtime still holds references to. A target is registered for
// the lifetime of its window; there is no unregister call.
var (
	pinMu      sync.Mutex
	pinned     = map[*dropTarget]struct{}{}
	registered = map[uintptr]*dropTarget{}
)

func pin(dt *dropTarget) {
	pinMu.Lock()
	defer pinMu.Unlock()
	pinned[dt] = struct{}{}
}

func unpin(dt *dropTarget) {
	pinMu.Lock()
	defer pinMu.Unlock()
	delete(pinned, dt)
}

//----------

// Register makes hwnd a file drop target. Registering a window twice
// is success, with a single live target. Init must have succeeded.
func Register(hwnd uintptr, onDrop func(paths []string)) error {
	if hwnd == 0 {
		return fmt.Errorf("windrop: zero hwnd")
	}
	pinMu.Lock()
	_, ok := registered[hwnd]
	pinMu.Unlock()
	if ok {
		return nil
	}

	dt := newDropTarget(hwnd, onDrop)
	hr, _, _ := procRegisterDragDrop.Call(hwnd, uintptr(unsafe.Pointer(dt)))
	switch hr {
	case _S_OK:
	case _DRAGDROP_E_ALREADYREGISTERED:
		// someone else's target is live on this window; treat as success
		dt.release()
		return nil
	default:
		dt.release()
		return fmt.Errorf("windrop: RegisterDragDrop: %#x", hr)
	}

	pinMu.Lock()
	registered[hwnd] = dt
	pinMu.Unlock()
	return nil
}

// FindWindow resolves a top-level window by title, for callers that
// identify windows the way the host toolkit names them.
func FindWindow(title string) (uintptr, error) {
	return findWindow(title)
}
