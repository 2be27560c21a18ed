//go:build !windows && !linux && !freebsd && !openbsd && !netbsd && !dragonfly && !solaris

package filedrop

import "github.com/fmigueis/filedrop/xwin"

// NewRegistrar fails on platforms without a wired drop protocol.
func NewRegistrar(tk *xwin.Toolkit, h Handler) (*Registrar, error) {
	return nil, ErrUnsupported
}
