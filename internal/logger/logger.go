/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger is the CLI's stderr logger. It is silenced for the MCP
// server, where stdout and stderr belong to the protocol client.
package logger

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	output  io.Writer = os.Stderr
	logger  *log.Logger
	verbose atomic.Bool
)

func init() {
	logger = log.New(output, "", 0)
}

// SetOutput sets where log lines go. Use io.Discard to silence logging.
func SetOutput(w io.Writer) {
	output = w
	logger = log.New(output, "", 0)
}

// SetVerbose turns Debug output on or off.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	logger.Printf("warning: "+format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logger.Printf(format, args...)
}

// Debug logs a message when verbose output is on.
func Debug(format string, args ...any) {
	if verbose.Load() {
		logger.Printf("debug: "+format, args...)
	}
}
