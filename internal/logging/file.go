// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits of the log file.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 5
	fileMaxAgeDays = 7
)

// Output returns the log destination. With a path, records go to a rotating
// file; the terminal UI owns stdout, so it logs only there (or nowhere when
// path is empty). The server logs to stdout and also to the file if one is set.
// The returned closer must be called on shutdown.
func Output(path string, terminal bool) (io.Writer, io.Closer) {
	if path == "" {
		if terminal {
			return io.Discard, nopCloser{}
		}
		return os.Stdout, nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	}
	if terminal {
		return file, file
	}
	return io.MultiWriter(os.Stdout, file), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
