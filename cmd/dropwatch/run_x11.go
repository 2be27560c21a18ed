//go:build !windows

package main

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fmigueis/filedrop"
	"github.com/fmigueis/filedrop/internal/drophist"
	"github.com/fmigueis/filedrop/xwin"
)

func run(cfg *Config) error {
	tk, err := xwin.NewToolkit()
	if err != nil {
		return err
	}
	defer tk.Close()

	w, err := tk.NewWindow(cfg.WindowTitle, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	banner, err := xwin.NewBanner("drop files here")
	if err != nil {
		return err
	}
	w.OnExpose(func() {
		if err := banner.Draw(w); err != nil {
			slog.Debug("banner", "err", err)
		}
	})
	w.OnClose(func() {
		slog.Info("window closed", "window", w.Name)
	})

	var hist *drophist.Store
	if cfg.HistoryDB != "" {
		hist, err = drophist.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	var watcher *fsnotify.Watcher
	if cfg.WatchFiles {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		go watchLoop(watcher)
	}

	handler := func(ev filedrop.Event) {
		slog.Info("drop", "window", ev.WindowID, "files", len(ev.Paths))
		for _, p := range ev.Paths {
			slog.Info("file", "path", p)
		}
		if p, err := w.QueryPointer(); err == nil {
			slog.Debug("pointer", "x", p.X, "y", p.Y)
		}
		if g, err := w.Geometry(); err == nil {
			slog.Debug("geometry", "w", g.Dx(), "h", g.Dy())
		}
		if ms := tk.UserInactiveTime(); ms >= 0 {
			slog.Debug("user idle", "ms", ms)
		}
		if hist != nil {
			if err := hist.Add(ev.WindowID, ev.Paths, time.Now()); err != nil {
				slog.Error("history", "err", err)
			}
		}
		if watcher != nil {
			for _, p := range ev.Paths {
				if err := watcher.Add(p); err != nil {
					slog.Debug("watch", "path", p, "err", err)
				}
			}
		}
	}

	reg, err := filedrop.NewRegistrar(tk, handler)
	if err != nil {
		return err
	}
	if err := reg.Register(cfg.WindowTitle); err != nil {
		return err
	}

	if title, err := tk.Title(w.Win); err == nil {
		slog.Debug("wm title", "title", title)
	}
	if p, err := w.RootCoords(); err == nil {
		slog.Debug("window origin", "x", p.X, "y", p.Y)
	}
	slog.Info("ready", "window", cfg.WindowTitle)
	return tk.Run()
}

func watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			slog.Info("dropped file changed", "path", ev.Name, "op", ev.Op.String())
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("watcher", "err", err)
		}
	}
}
