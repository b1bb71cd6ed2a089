// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log provides the leveled logging used throughout the dime
// module. Loggers receive key/value pairs; the Helper type offers the
// printf-style front end the parser uses.
package log

import (
	"fmt"
	"io"
	"sync"
)

// Level is a logger severity level.
type Level int8

const (
	// LevelDebug is logger debug level.
	LevelDebug Level = iota - 1
	// LevelInfo is logger info level.
	LevelInfo
	// LevelWarn is logger warn level.
	LevelWarn
	// LevelError is logger error level.
	LevelError
	// LevelFatal is logger fatal level.
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

// Logger is a logger interface.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

type stdLogger struct {
	w    io.Writer
	mu   sync.Mutex
	pool *sync.Pool
}

// NewStdLogger returns a logger that writes key/value pairs to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{
		w: w,
		pool: &sync.Pool{
			New: func() interface{} {
				return new([]byte)
			},
		},
	}
}

// Log prints the keyvals to the underlying writer, one line per call.
func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	if len(keyvals) == 0 {
		return nil
	}
	if (len(keyvals) & 1) == 1 {
		keyvals = append(keyvals, "KEYVALS UNPAIRED")
	}
	buf := l.pool.Get().(*[]byte)
	*buf = append(*buf, level.String()...)
	for i := 0; i < len(keyvals); i += 2 {
		*buf = append(*buf, ' ')
		*buf = append(*buf, fmt.Sprint(keyvals[i])...)
		*buf = append(*buf, '=')
		*buf = append(*buf, fmt.Sprint(keyvals[i+1])...)
	}
	*buf = append(*buf, '\n')
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.w.Write(*buf)
	*buf = (*buf)[:0]
	l.pool.Put(buf)
	return err
}
