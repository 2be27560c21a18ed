// Package xutil has small helpers shared by the X11 packages.
package xutil

import (
	"reflect"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// LoadAtoms interns one atom per field of *st, which must be a pointer
// to a struct of xproto.Atom fields. The atom name is the field name,
// or the `loadAtoms:"name"` tag when present. All intern requests are
// issued before the first reply is read, so the whole struct costs one
// round-trip to the server.
func LoadAtoms(conn *xgb.Conn, st any, onlyIfExists bool) error {
	typ := reflect.Indirect(reflect.ValueOf(st)).Type()
	cookies := make([]xproto.InternAtomCookie, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		name := sf.Name
		if tag := sf.Tag.Get("loadAtoms"); tag != "" {
			name = tag
		}
		cookies = append(cookies, xproto.InternAtom(conn, onlyIfExists, uint16(len(name)), name))
	}
	val := reflect.Indirect(reflect.ValueOf(st))
	for i := 0; i < val.NumField(); i++ {
		reply, err := cookies[i].Reply()
		if err != nil {
			return err
		}
		val.Field(i).Set(reflect.ValueOf(reply.Atom))
	}
	return nil
}

func GetAtomName(conn *xgb.Conn, atom xproto.Atom) (string, error) {
	reply, err := xproto.GetAtomName(conn, atom).Reply()
	if err != nil {
		return "", err
	}
	return reply.Name, nil
}
