//go:build linux || freebsd || openbsd || netbsd || dragonfly || solaris

package filedrop

import (
	"errors"
	"testing"
)

func TestNewRegistrarNilToolkit(t *testing.T) {
	if _, err := NewRegistrar(nil, nil); !errors.Is(err, ErrToolkitNotInitialized) {
		t.Fatal(err)
	}
}
