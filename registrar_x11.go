//go:build linux || freebsd || openbsd || netbsd || dragonfly || solaris

package filedrop

import (
	"fmt"

	"github.com/fmigueis/filedrop/xdnd"
	"github.com/fmigueis/filedrop/xwin"
)

// NewRegistrar returns a Registrar backed by the XDND protocol.
// Windows are identified by their xwin toolkit name.
func NewRegistrar(tk *xwin.Toolkit, h Handler) (*Registrar, error) {
	if tk == nil {
		return nil, ErrToolkitNotInitialized
	}
	return newRegistrar(&x11Backend{tk: tk}, h), nil
}

type x11Backend struct {
	tk *xwin.Toolkit
}

func (b *x11Backend) register(id string, emit func([]string)) error {
	w, ok := b.tk.LookupWindow(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrWindowNotFound, id)
	}
	if w.Win == 0 {
		return fmt.Errorf("%w: %q", ErrNoNativeHandle, id)
	}
	t, err := xdnd.NewTarget(b.tk.Conn, w.Win, emit)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlatformInit, err)
	}
	w.OnClientMessage(t.OnClientMessage)
	w.OnSelectionNotify(t.OnSelectionNotify)
	return nil
}
