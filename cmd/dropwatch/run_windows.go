//go:build windows

package main

import "errors"

// The demo window is built on X11. On Windows the library registers
// drop targets for windows owned by the calling process (see
// filedrop.NewRegistrar); there is no standalone demo window here.
func run(cfg *Config) error {
	return errors.New("dropwatch demo requires an X11 display; use the filedrop package in-process on Windows")
}
