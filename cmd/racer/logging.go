package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "racer.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging installs the default slog logger. Without debug everything is
// discarded; with it, records go to dir/racer.log, and a log past maxLogSize
// is moved aside to racer.log.old first. The caller closes the returned file.
func setupLogging(dir string, debug bool) (*os.File, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, path+".old"); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return f, nil
}
