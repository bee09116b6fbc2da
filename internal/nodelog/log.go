// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nodelog provides the process-wide logging backend shared by every
// subsystem, along with a rotating log file writer.
package nodelog

import (
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate"
)

// rotator is nil until InitLogRotator runs, in which case logWriter also
// copies every write to the active log file.
var rotator *logrotate.Rotator

// logWriter is the backend's sole output: always stdout, plus the rotating
// log file once InitLogRotator has been called.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if rotator != nil {
		rotator.Write(p)
	}
	return len(p), nil
}

// backendLog is the logging backend used to create all subsystem loggers.
var backendLog = slog.NewBackend(logWriter{})

var (
	disclog = backendLog.Logger("DISC")
	ldgrlog = backendLog.Logger("LDGR")
	procLog = backendLog.Logger("PROC")
	elctlog = backendLog.Logger("ELCT")
	cmntlog = backendLog.Logger("CMNT")
	bootlog = backendLog.Logger("BOOT")
	peerlog = backendLog.Logger("PEER")
	srvrlog = backendLog.Logger("SRVR")
	strelog = backendLog.Logger("STOR")
)

// subsystemLoggers maps each subsystem identifier to its logger so
// SetLogLevel/SetLogLevels can address them by name (e.g. from a config
// file's debuglevel option).
var subsystemLoggers = map[string]slog.Logger{
	"DISC": disclog,
	"LDGR": ldgrlog,
	"PROC": procLog,
	"ELCT": elctlog,
	"CMNT": cmntlog,
	"BOOT": bootlog,
	"PEER": peerlog,
	"SRVR": srvrlog,
	"STOR": strelog,
}

// Logger returns the named subsystem's logger, creating a discard logger if
// the name is unknown so callers never need a nil check.
func Logger(subsystem string) slog.Logger {
	if l, ok := subsystemLoggers[subsystem]; ok {
		return l
	}
	return slog.Disabled
}

// SetLogLevel sets the logging level for the named subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystem, level string) {
	l, ok := subsystemLoggers[subsystem]
	if !ok {
		return
	}
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return
	}
	l.SetLevel(lvl)
}

// SetLogLevels sets every subsystem's logger to the given level, used to
// apply a single global --debuglevel=trace style override.
func SetLogLevels(level string) {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return
	}
	for _, l := range subsystemLoggers {
		l.SetLevel(lvl)
	}
}

// InitLogRotator creates a rotating file logger at logFile and redirects the
// backend's output to both standard output and that file. It must be called
// before the logging subsystem is used if file logging is desired.
func InitLogRotator(logFile string) error {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}
	r, err := logrotate.New(logFile)
	if err != nil {
		return err
	}
	rotator = r
	return nil
}

// Close flushes and closes the log rotator, if one was initialized.
func Close() {
	if rotator != nil {
		rotator.Close()
	}
}
