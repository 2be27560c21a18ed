// Dropwatch opens a window, makes it a file drop target and logs
// every drop it receives. Dropped paths are recorded to a local
// history database and optionally watched for later modification.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fmigueis/filedrop/internal/drophist"
)

var logLevelVar slog.LevelVar

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	title := flag.String("title", cfg.WindowTitle, "window title")
	historyDB := flag.String("history", cfg.HistoryDB, "history database path (empty disables)")
	watch := flag.Bool("watch", cfg.WatchFiles, "watch dropped files for changes")
	logLevel := flag.String("loglevel", cfg.LogLevel, "error, info or debug")
	list := flag.Int("list", 0, "print the N most recent drops and exit")
	flag.Parse()

	setLogLevel(*logLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: &logLevelVar})))

	cfg.WindowTitle = *title
	cfg.HistoryDB = *historyDB
	cfg.WatchFiles = *watch

	if *list > 0 {
		if err := listHistory(cfg.HistoryDB, *list); err != nil {
			slog.Error("history", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		slog.Error("dropwatch", "err", err)
		os.Exit(1)
	}
}

// listHistory prints the most recent drops, newest first.
func listHistory(dbPath string, n int) error {
	if dbPath == "" {
		return errors.New("no history database configured")
	}
	s, err := drophist.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	drops, err := s.Recent(n)
	if err != nil {
		return err
	}
	for _, d := range drops {
		fmt.Printf("%s %s\n", d.DroppedAt.Local().Format(time.RFC3339), d.WindowID)
		for _, p := range d.Paths {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logLevelVar.Set(slog.LevelDebug)
	case "info":
		logLevelVar.Set(slog.LevelInfo)
	default:
		logLevelVar.Set(slog.LevelError)
	}
}
