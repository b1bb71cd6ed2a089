// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

// FilterOption is a filter option.
type FilterOption func(*Filter)

// FilterLevel drops log entries below level.
func FilterLevel(level Level) FilterOption {
	return func(f *Filter) {
		f.level = level
	}
}

// FilterFunc drops log entries for which f returns true.
func FilterFunc(fn func(level Level, keyvals ...interface{}) bool) FilterOption {
	return func(f *Filter) {
		f.filter = fn
	}
}

// Filter is a logger that drops entries below a severity threshold.
type Filter struct {
	logger Logger
	level  Level
	filter func(level Level, keyvals ...interface{}) bool
}

// NewFilter wraps logger with the given filter options.
func NewFilter(logger Logger, opts ...FilterOption) *Filter {
	f := Filter{logger: logger}
	for _, o := range opts {
		o(&f)
	}
	return &f
}

// Log forwards to the wrapped logger unless the entry is filtered out.
func (f *Filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	if f.filter != nil && f.filter(level, keyvals...) {
		return nil
	}
	return f.logger.Log(level, keyvals...)
}
