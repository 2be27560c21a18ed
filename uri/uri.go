// Package uri decodes text/uri-list payloads into filesystem paths.
//
// text/uri-list (RFC 2483): one URI per line, lines separated by CRLF,
// lines starting with '#' are comments. Drag sources commonly emit
// file:// URIs with %XX percent-escapes.
package uri

import "strings"

const filePrefix = "file://"

// DecodeList extracts filesystem paths from a text/uri-list payload.
// Comment and empty lines are skipped, and only file:// URIs are kept;
// lines with other schemes are dropped. Paths come out in source order.
func DecodeList(b []byte) []string {
	paths := []string{}
	for _, line := range splitLines(string(b)) {
		if line == "" || line[0] == '#' {
			continue
		}
		p, ok := ToPath(line)
		if !ok || p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}

// ToPath converts a file:// URI to a filesystem path. An optional
// "localhost" host component is stripped (file://localhost/a -> /a).
// Returns false for any other scheme. The result is a raw byte
// sequence: not canonicalized, not checked for existence.
func ToPath(u string) (string, bool) {
	s, ok := strings.CutPrefix(u, filePrefix)
	if !ok {
		return "", false
	}
	if !strings.HasPrefix(s, "/") {
		if s2, ok := strings.CutPrefix(s, "localhost"); ok {
			s = s2
		}
	}
	return Unescape(s), true
}

// Unescape decodes %XX escapes byte-for-byte. A malformed escape (short
// or with a non-hex digit) is passed through literally rather than
// dropped, so decoding never fails.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, ok1 := hexVal(s[i+1])
			lo, ok2 := hexVal(s[i+2])
			if ok1 && ok2 {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Escape percent-escapes the bytes that Unescape would not leave intact
// in a uri-list line: '%', controls, space, DEL and all non-ASCII
// bytes. Unescape(Escape(s)) == s for every byte string s.
func Escape(s string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c >= 0x7f || c == '%' {
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xf])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitLines splits on CRLF; a lone LF is tolerated since some sources
// are sloppy about the terminator.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
