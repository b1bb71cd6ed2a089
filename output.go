// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
)

// Output serializes group codes and typed values as ASCII DXF.
// Binary output is reserved and not produced.
type Output struct {
	w *bufio.Writer
	f *os.File

	records  int
	total    int
	progress ProgressCallback
	aborted  bool
}

// NewOutput wraps w for serialization.
func NewOutput(w io.Writer) *Output {
	return &Output{w: bufio.NewWriter(w)}
}

// NewOutputFile creates path and prepares it for serialization.
func NewOutputFile(path string) (*Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	out := NewOutput(f)
	out.f = f
	return out, nil
}

// Close flushes buffered output and closes the underlying file, if
// any.
func (out *Output) Close() error {
	err := out.Flush()
	if out.f != nil {
		if cerr := out.f.Close(); err == nil {
			err = cerr
		}
		out.f = nil
	}
	return err
}

// Flush writes buffered output to the underlying writer.
func (out *Output) Flush() error {
	return out.w.Flush()
}

// Aborted reports whether the progress callback stopped the write.
func (out *Output) Aborted() bool { return out.aborted }

// SetProgressCallback installs cb, invoked about every 256 record
// writes with the fraction of totalRecords written so far.
func (out *Output) SetProgressCallback(cb ProgressCallback, totalRecords int) {
	out.progress = cb
	out.total = totalRecords
}

// RecordCount returns the number of records written so far.
func (out *Output) RecordCount() int { return out.records }

// WriteGroupCode begins a record by writing its group code, right
// justified to three columns.
func (out *Output) WriteGroupCode(code int32) error {
	out.records++
	if out.progress != nil && out.records%256 == 0 {
		p := float32(1)
		if out.total > 0 {
			p = float32(out.records) / float32(out.total)
		}
		if !out.progress(p) {
			out.aborted = true
			return ErrAborted
		}
	}
	return out.writePadded(strconv.FormatInt(int64(code), 10), 3)
}

// WriteString writes a string value.
func (out *Output) WriteString(s string) error {
	if _, err := out.w.WriteString(s); err != nil {
		return err
	}
	return out.w.WriteByte('\n')
}

// WriteHex writes a hex string value.
func (out *Output) WriteHex(h Hex) error {
	return out.WriteString(string(h))
}

// WriteInt8 writes an integer value, right justified to six columns.
func (out *Output) WriteInt8(v int8) error {
	return out.writePadded(strconv.FormatInt(int64(v), 10), 6)
}

// WriteInt16 writes an integer value, right justified to six columns.
func (out *Output) WriteInt16(v int16) error {
	return out.writePadded(strconv.FormatInt(int64(v), 10), 6)
}

// WriteInt32 writes an integer value, right justified to six columns.
func (out *Output) WriteInt32(v int32) error {
	return out.writePadded(strconv.FormatInt(int64(v), 10), 6)
}

// WriteFloat writes a single precision value.
func (out *Output) WriteFloat(v float32) error {
	return out.WriteString(formatDouble(float64(v)))
}

// WriteDouble writes a double precision value.
func (out *Output) WriteDouble(v float64) error {
	return out.WriteString(formatDouble(v))
}

func (out *Output) writePadded(s string, width int) error {
	for n := width - len(s); n > 0; n-- {
		if err := out.w.WriteByte(' '); err != nil {
			return err
		}
	}
	if _, err := out.w.WriteString(s); err != nil {
		return err
	}
	return out.w.WriteByte('\n')
}

// formatDouble renders a double the way AutoCAD tooling expects:
// integral values below 1e6 keep one explicit decimal, everything
// else uses the shortest representation that round-trips.
func formatDouble(v float64) string {
	if math.Abs(v) < 1e6 && v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
