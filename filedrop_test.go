package filedrop

import (
	"errors"
	"testing"
)

type fakeBackend struct {
	emits map[string]func([]string)
	err   error
}

func (b *fakeBackend) register(id string, emit func([]string)) error {
	if b.err != nil {
		return b.err
	}
	if b.emits == nil {
		b.emits = map[string]func([]string){}
	}
	b.emits[id] = emit
	return nil
}

func TestRegisterIdempotent(t *testing.T) {
	b := &fakeBackend{}
	r := newRegistrar(b, nil)
	if err := r.Register("w1"); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("w1"); err != nil {
		t.Fatal(err)
	}
	if len(b.emits) != 1 {
		t.Fatalf("expected one live adapter, got %d", len(b.emits))
	}
}

func TestRegisterFailureLeavesNoState(t *testing.T) {
	b := &fakeBackend{err: ErrWindowNotFound}
	r := newRegistrar(b, nil)
	if err := r.Register("nope"); !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("expected ErrWindowNotFound, got %v", err)
	}
	// a later successful attempt must still wire the adapter
	b.err = nil
	if err := r.Register("nope"); err != nil {
		t.Fatal(err)
	}
	if b.emits["nope"] == nil {
		t.Fatal("adapter not wired after retry")
	}
}

func TestEventCarriesWindowID(t *testing.T) {
	var got []Event
	b := &fakeBackend{}
	r := newRegistrar(b, func(ev Event) { got = append(got, ev) })
	if err := r.Register("w1"); err != nil {
		t.Fatal(err)
	}
	b.emits["w1"]([]string{"/a.txt", "/b.txt"})
	if len(got) != 1 {
		t.Fatalf("expected one event, got %d", len(got))
	}
	if got[0].WindowID != "w1" {
		t.Fatalf("window id %q", got[0].WindowID)
	}
	if len(got[0].Paths) != 2 || got[0].Paths[0] != "/a.txt" || got[0].Paths[1] != "/b.txt" {
		t.Fatalf("paths %v", got[0].Paths)
	}
}
