package uri

import (
	"math/rand"
	"testing"
)

func TestToPath(t *testing.T) {
	p, ok := ToPath("file:///tmp/a%20b.txt")
	if !ok || p != "/tmp/a b.txt" {
		t.Fatal(p)
	}
	p, ok = ToPath("file:///tmp/a b.txt")
	if !ok || p != "/tmp/a b.txt" {
		t.Fatal(p)
	}
	p, ok = ToPath("file://localhost/etc/hosts")
	if !ok || p != "/etc/hosts" {
		t.Fatal(p)
	}
	if _, ok := ToPath("http://example.com/a.txt"); ok {
		t.Fatal()
	}
	if _, ok := ToPath("/tmp/a.txt"); ok {
		t.Fatal()
	}
}

func TestDecodeList(t *testing.T) {
	b := []byte("file:///a.txt\r\n#comment\r\n\r\nfile:///b.txt\r\n")
	paths := DecodeList(b)
	if len(paths) != 2 {
		t.Fatal(paths)
	}
	if paths[0] != "/a.txt" || paths[1] != "/b.txt" {
		t.Fatal(paths)
	}
}

func TestDecodeListSkipsOtherSchemes(t *testing.T) {
	b := []byte("http://example.com/x\r\nfile:///y\r\n")
	paths := DecodeList(b)
	if len(paths) != 1 || paths[0] != "/y" {
		t.Fatal(paths)
	}
}

func TestDecodeListLoneLF(t *testing.T) {
	b := []byte("file:///a\nfile:///b\n")
	paths := DecodeList(b)
	if len(paths) != 2 {
		t.Fatal(paths)
	}
}

func TestUnescapeMalformed(t *testing.T) {
	// non-hex digit and truncated escapes pass through literally
	if s := Unescape("a%zz%4"); s != "a%zz%4" {
		t.Fatal(s)
	}
	if s := Unescape("%"); s != "%" {
		t.Fatal(s)
	}
	if s := Unescape("%2fx"); s != "/x" {
		t.Fatal(s)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		b := make([]byte, rnd.Intn(40))
		for j := range b {
			b[j] = byte(rnd.Intn(256))
		}
		s := string(b)
		if s2 := Unescape(Escape(s)); s2 != s {
			t.Fatalf("%q -> %q -> %q", s, Escape(s), s2)
		}
	}
}

func TestEscapeCanonicalRoundTrip(t *testing.T) {
	// re-encoding a decoded canonical URI reproduces the original
	u := "file:///tmp/a%20b%25c.txt"
	if u2 := "file://" + Escape(Unescape("/tmp/a%20b%25c.txt")); u2 != u {
		t.Fatal(u2)
	}
}
