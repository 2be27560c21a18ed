package xdnd

import (
	"fmt"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestTypeNames(t *testing.T) {
	lookup := func(a xproto.Atom) (string, error) {
		if a == 310 {
			return "text/uri-list", nil
		}
		return "", fmt.Errorf("no such atom")
	}
	names := typeNames(lookup, []xproto.Atom{310, xproto.AtomNone, 99})
	if len(names) != 2 {
		t.Fatal(names)
	}
	if names[0] != "text/uri-list" || names[1] != "#99" {
		t.Fatal(names)
	}
}
