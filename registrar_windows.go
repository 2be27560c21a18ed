//go:build windows

package filedrop

import (
	"fmt"

	"github.com/fmigueis/filedrop/windrop"
)

// NewRegistrar returns a Registrar backed by OLE drag and drop.
// Windows are identified by their top-level title and must belong to
// the calling process: RegisterDragDrop rejects foreign windows.
func NewRegistrar(h Handler) (*Registrar, error) {
	if err := windrop.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformInit, err)
	}
	return newRegistrar(&winBackend{}, h), nil
}

type winBackend struct{}

func (b *winBackend) register(id string, emit func([]string)) error {
	hwnd, err := windrop.FindWindow(id)
	if err != nil || hwnd == 0 {
		return fmt.Errorf("%w: %q", ErrWindowNotFound, id)
	}
	if err := windrop.Register(hwnd, emit); err != nil {
		return fmt.Errorf("%w: %v", ErrPlatformInit, err)
	}
	return nil
}
