/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package log implements the pluggable logging sink that the print/stderr
built-ins write to (via builtin.Logger). The evaluator itself does not log.
*/
package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/krotik/common/datautil"
)

/*
Logger is the external object to which the interpreter releases its log
messages.
*/
type Logger interface {
	LogError(v ...interface{})
	LogInfo(v ...interface{})
	LogDebug(v ...interface{})
}

/*
Level is a logging level.
*/
type Level string

/*
Known logging levels.
*/
const (
	Debug Level = "debug"
	Info  Level = "info"
	Error Level = "error"
)

/*
LevelLogger wraps a Logger and filters messages by level.
*/
type LevelLogger struct {
	logger Logger
	level  Level
}

/*
NewLevelLogger wraps logger with level-based filtering.
*/
func NewLevelLogger(logger Logger, level string) (*LevelLogger, error) {
	l := Level(strings.ToLower(level))
	if l != Debug && l != Info && l != Error {
		return nil, fmt.Errorf("invalid log level: %v", l)
	}
	return &LevelLogger{logger, l}, nil
}

/*
Level returns the current log level.
*/
func (ll *LevelLogger) Level() Level {
	return ll.level
}

/*
LogError adds a new error log message.
*/
func (ll *LevelLogger) LogError(m ...interface{}) {
	ll.logger.LogError(m...)
}

/*
LogInfo adds a new info log message.
*/
func (ll *LevelLogger) LogInfo(m ...interface{}) {
	if ll.level == Info || ll.level == Debug {
		ll.logger.LogInfo(m...)
	}
}

/*
LogDebug adds a new debug log message.
*/
func (ll *LevelLogger) LogDebug(m ...interface{}) {
	if ll.level == Debug {
		ll.logger.LogDebug(m...)
	}
}

/*
MemoryLogger collects log messages in a RingBuffer in memory, used for
embedding tests and REPL history.
*/
type MemoryLogger struct {
	*datautil.RingBuffer
}

/*
NewMemoryLogger returns a new memory logger instance.
*/
func NewMemoryLogger(size int) *MemoryLogger {
	return &MemoryLogger{datautil.NewRingBuffer(size)}
}

/*
LogError adds a new error log message.
*/
func (ml *MemoryLogger) LogError(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

/*
LogInfo adds a new info log message.
*/
func (ml *MemoryLogger) LogInfo(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprint(m...))
}

/*
LogDebug adds a new debug log message.
*/
func (ml *MemoryLogger) LogDebug(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}

/*
Slice returns the contents of the current log as a slice.
*/
func (ml *MemoryLogger) Slice() []string {
	sl := ml.RingBuffer.Slice()
	ret := make([]string, len(sl))
	for i, lm := range sl {
		ret[i] = lm.(string)
	}
	return ret
}

/*
NullLogger discards log messages - the default when no logger is configured.
*/
type NullLogger struct{}

func (nl *NullLogger) LogError(m ...interface{}) {}
func (nl *NullLogger) LogInfo(m ...interface{})  {}
func (nl *NullLogger) LogDebug(m ...interface{}) {}

/*
WriterLogger logs into an io.Writer (e.g. os.Stdout/os.Stderr).
*/
type WriterLogger struct {
	w io.Writer
}

/*
NewWriterLogger returns a logger instance writing to w.
*/
func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{w}
}

func (wl *WriterLogger) LogError(m ...interface{}) {
	fmt.Fprintln(wl.w, fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

func (wl *WriterLogger) LogInfo(m ...interface{}) {
	fmt.Fprintln(wl.w, fmt.Sprint(m...))
}

func (wl *WriterLogger) LogDebug(m ...interface{}) {
	fmt.Fprintln(wl.w, fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}
