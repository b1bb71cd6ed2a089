// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"strconv"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/text/encoding/charmap"
)

// ProgressCallback reports progress in [0,1]. Returning false aborts
// the running read or write.
type ProgressCallback func(progress float32) bool

// binarySentinel opens every binary DXF file. It is followed by
// CR, LF, SUB and NUL, for a 22 byte preamble.
const binarySentinel = "AutoCAD Binary DXF"

// binaryPreambleSize is the number of bytes before the first binary
// group code.
const binaryPreambleSize = len(binarySentinel) + 4

// Input lexes a DXF byte stream into group codes and typed values.
// It autodetects the ASCII and binary dialects and keeps a single
// put-back slot for the group code that terminates a record set.
type Input struct {
	data []byte
	mm   mmap.MMap
	f    *os.File

	pos  int
	line int

	binary   bool
	binary16 bool

	putBack    int32
	hasPutBack bool

	aborted   bool
	progress  ProgressCallback
	readCount int

	// model, when set, receives every handle seen on group code 5.
	model         *Model
	handlePending bool

	codepage  *charmap.Charmap
	onComment func(comment string)
}

// NewInput memory-maps the file at path and prepares it for reading.
func NewInput(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	in := &Input{data: mm, mm: mm, f: f}
	in.init()
	return in, nil
}

// NewInputBytes prepares an in-memory buffer for reading.
func NewInputBytes(data []byte) *Input {
	in := &Input{data: data}
	in.init()
	return in
}

// Close unmaps and closes the underlying file, if any.
func (in *Input) Close() error {
	if in.mm != nil {
		if err := in.mm.Unmap(); err != nil {
			in.f.Close()
			return err
		}
		in.mm = nil
	}
	if in.f != nil {
		err := in.f.Close()
		in.f = nil
		return err
	}
	return nil
}

// init runs format detection. A stream whose first 18 bytes equal the
// binary sentinel is binary; the two bytes after the preamble decide
// between the 8-bit and 16-bit group code dialects. Anything else is
// ASCII, read from offset 0.
func (in *Input) init() {
	in.pos = 0
	in.line = 1
	if len(in.data) >= binaryPreambleSize &&
		bytes.Equal(in.data[:len(binarySentinel)], []byte(binarySentinel)) {
		in.binary = true
		in.pos = binaryPreambleSize
		if len(in.data) >= in.pos+2 &&
			in.data[in.pos] == 0 && in.data[in.pos+1] == 0 {
			in.binary16 = true
		}
	}
}

// IsBinary reports whether the stream is a binary DXF file.
func (in *Input) IsBinary() bool { return in.binary }

// Aborted reports whether the progress callback stopped the read.
func (in *Input) Aborted() bool { return in.aborted }

// SetProgressCallback installs cb. It is invoked about every 100
// group code reads.
func (in *Input) SetProgressCallback(cb ProgressCallback) {
	in.progress = cb
}

// SetCodePage selects the code page raw strings are decoded with.
// Drawings before AC1021 name it in the $DWGCODEPAGE header variable.
func (in *Input) SetCodePage(name string) error {
	cm := codePageByName(name)
	if cm == nil {
		return ErrUnknownCodePage
	}
	in.codepage = cm
	return nil
}

// RelativePosition returns the read position as a fraction in [0,1].
func (in *Input) RelativePosition() float32 {
	if len(in.data) == 0 {
		return 0
	}
	return float32(in.pos) / float32(len(in.data))
}

// FilePosition returns the current line number for ASCII streams and
// the byte offset for binary streams, for error reporting.
func (in *Input) FilePosition() int {
	if in.binary {
		return in.pos
	}
	return in.line
}

// ReadGroupCode returns the next group code. Comment records (group
// code 999) are consumed transparently; their text goes to the
// comment sink when one is installed. Seeing group code 5 arms the
// handle registration of the next string read.
func (in *Input) ReadGroupCode() (int32, error) {
	if in.hasPutBack {
		in.hasPutBack = false
		return in.putBack, nil
	}
	for {
		in.readCount++
		if in.progress != nil && in.readCount%100 == 0 {
			if !in.progress(in.RelativePosition()) {
				in.aborted = true
				return 0, ErrAborted
			}
		}
		var code int32
		var err error
		if in.binary {
			code, err = in.readBinaryGroupCode()
		} else {
			var v int64
			v, err = in.readIntLiteral()
			code = int32(v)
		}
		if err != nil {
			return 0, err
		}
		if code == 999 {
			comment, err := in.ReadString()
			if err != nil {
				return 0, err
			}
			if in.onComment != nil {
				in.onComment(comment)
			}
			continue
		}
		if code == 5 {
			in.handlePending = true
		}
		return code, nil
	}
}

// PutBackGroupCode pushes code back so the next ReadGroupCode returns
// it. At most one code can be pending.
func (in *Input) PutBackGroupCode(code int32) error {
	if in.hasPutBack {
		return ErrPutBackFull
	}
	in.putBack = code
	in.hasPutBack = true
	return nil
}

func (in *Input) readBinaryGroupCode() (int32, error) {
	if in.binary16 {
		if in.pos+2 > len(in.data) {
			return 0, ErrTruncated
		}
		code := int32(binary.LittleEndian.Uint16(in.data[in.pos:]))
		in.pos += 2
		return code, nil
	}
	if in.pos >= len(in.data) {
		return 0, ErrTruncated
	}
	b := in.data[in.pos]
	in.pos++
	// 255 marks an extended group code stored as a 16-bit word.
	if b == 255 {
		if in.pos+2 > len(in.data) {
			return 0, ErrTruncated
		}
		code := int32(int16(binary.LittleEndian.Uint16(in.data[in.pos:])))
		in.pos += 2
		return code, nil
	}
	return int32(b), nil
}

// ReadInt8 reads an 8-bit integer value.
func (in *Input) ReadInt8() (int8, error) {
	if in.binary {
		if in.pos >= len(in.data) {
			return 0, ErrTruncated
		}
		v := int8(in.data[in.pos])
		in.pos++
		return v, nil
	}
	v, err := in.readIntLiteral()
	return int8(v), err
}

// ReadInt16 reads a 16-bit integer value.
func (in *Input) ReadInt16() (int16, error) {
	if in.binary {
		if in.pos+2 > len(in.data) {
			return 0, ErrTruncated
		}
		v := int16(binary.LittleEndian.Uint16(in.data[in.pos:]))
		in.pos += 2
		return v, nil
	}
	v, err := in.readIntLiteral()
	return int16(v), err
}

// ReadInt32 reads a 32-bit integer value.
func (in *Input) ReadInt32() (int32, error) {
	if in.binary {
		if in.pos+4 > len(in.data) {
			return 0, ErrTruncated
		}
		v := int32(binary.LittleEndian.Uint32(in.data[in.pos:]))
		in.pos += 4
		return v, nil
	}
	v, err := in.readIntLiteral()
	return int32(v), err
}

// ReadFloat reads a single precision value. Binary files store all
// floats as doubles.
func (in *Input) ReadFloat() (float32, error) {
	v, err := in.ReadDouble()
	if err != nil {
		return 0, err
	}
	if v > math.MaxFloat32 {
		v = math.MaxFloat32
	} else if v < -math.MaxFloat32 {
		v = -math.MaxFloat32
	}
	return float32(v), nil
}

// ReadDouble reads a double precision value.
func (in *Input) ReadDouble() (float64, error) {
	if in.binary {
		if in.pos+8 > len(in.data) {
			return 0, ErrTruncated
		}
		v := math.Float64frombits(binary.LittleEndian.Uint64(in.data[in.pos:]))
		in.pos += 8
		return v, nil
	}
	return in.readFloatLiteral()
}

// ReadString reads a string value, skipping leading blanks.
func (in *Input) ReadString() (string, error) {
	if in.binary {
		return in.readBinaryString()
	}
	in.skipBlanks()
	return in.readLine()
}

// ReadStringNoSkip reads a string value without skipping leading
// blanks. Used for the primary text value of TEXT entities, where
// leading blanks are significant.
func (in *Input) ReadStringNoSkip() (string, error) {
	if in.binary {
		return in.readBinaryString()
	}
	return in.readLine()
}

func (in *Input) readBinaryString() (string, error) {
	end := bytes.IndexByte(in.data[in.pos:], 0)
	if end < 0 {
		return "", ErrTruncated
	}
	s := string(in.data[in.pos : in.pos+end])
	in.pos += end + 1
	return in.finishString(s), nil
}

// readLine consumes through the next LF and returns the text before
// it, tolerating a CR before the LF. EOF terminates the final line.
func (in *Input) readLine() (string, error) {
	if in.pos >= len(in.data) {
		return "", ErrTruncated
	}
	start := in.pos
	for in.pos < len(in.data) && in.data[in.pos] != '\n' {
		in.pos++
	}
	end := in.pos
	if end > start && in.data[end-1] == '\r' {
		end--
	}
	if in.pos < len(in.data) {
		in.pos++
		in.line++
	}
	return in.finishString(string(in.data[start:end])), nil
}

// finishString applies code page decoding and the handle registration
// side effect armed by group code 5.
func (in *Input) finishString(s string) string {
	if in.codepage != nil && !isASCII(s) {
		if decoded, err := in.codepage.NewDecoder().String(s); err == nil {
			s = decoded
		}
	}
	if in.handlePending {
		in.handlePending = false
		if in.model != nil {
			in.model.RegisterHandle(s)
		}
	}
	return s
}

// skipWhitespace skips blanks and line breaks.
func (in *Input) skipWhitespace() {
	for in.pos < len(in.data) {
		switch in.data[in.pos] {
		case ' ', '\t', '\r':
			in.pos++
		case '\n':
			in.pos++
			in.line++
		default:
			return
		}
	}
}

// skipBlanks skips blanks within the current line.
func (in *Input) skipBlanks() {
	for in.pos < len(in.data) {
		c := in.data[in.pos]
		if c != ' ' && c != '\t' {
			return
		}
		in.pos++
	}
}

// consumeLineTail discards the remainder of the current line.
func (in *Input) consumeLineTail() {
	for in.pos < len(in.data) {
		c := in.data[in.pos]
		in.pos++
		if c == '\n' {
			in.line++
			return
		}
	}
}

// readIntLiteral parses an optionally signed decimal or 0x-prefixed
// hexadecimal integer and consumes the rest of the line.
func (in *Input) readIntLiteral() (int64, error) {
	in.skipWhitespace()
	if in.pos >= len(in.data) {
		return 0, ErrTruncated
	}
	start := in.pos
	neg := false
	if c := in.data[in.pos]; c == '+' || c == '-' {
		neg = c == '-'
		in.pos++
	}
	hex := false
	if in.pos+1 < len(in.data) && in.data[in.pos] == '0' &&
		(in.data[in.pos+1] == 'x' || in.data[in.pos+1] == 'X') {
		hex = true
		in.pos += 2
	}
	digits := in.pos
	for in.pos < len(in.data) && isDigit(in.data[in.pos], hex) {
		in.pos++
	}
	if in.pos == digits {
		in.pos = start
		return 0, ErrMalformedNumber
	}
	tok := string(in.data[digits:in.pos])
	in.consumeLineTail()

	base := 10
	if hex {
		base = 16
	}
	v, err := strconv.ParseUint(tok, base, 64)
	if err != nil {
		return 0, ErrMalformedNumber
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}

// readFloatLiteral parses an optionally signed float with optional
// fraction and exponent, and consumes the rest of the line.
// Out-of-range values clamp to the largest finite double.
func (in *Input) readFloatLiteral() (float64, error) {
	in.skipWhitespace()
	if in.pos >= len(in.data) {
		return 0, ErrTruncated
	}
	start := in.pos
	if c := in.data[in.pos]; c == '+' || c == '-' {
		in.pos++
	}
	digits := in.pos
	for in.pos < len(in.data) && isDigit(in.data[in.pos], false) {
		in.pos++
	}
	if in.pos < len(in.data) && in.data[in.pos] == '.' {
		in.pos++
		for in.pos < len(in.data) && isDigit(in.data[in.pos], false) {
			in.pos++
		}
	}
	if in.pos == digits {
		in.pos = start
		return 0, ErrMalformedNumber
	}
	if in.pos < len(in.data) && (in.data[in.pos] == 'e' || in.data[in.pos] == 'E') {
		mark := in.pos
		in.pos++
		if in.pos < len(in.data) && (in.data[in.pos] == '+' || in.data[in.pos] == '-') {
			in.pos++
		}
		expDigits := in.pos
		for in.pos < len(in.data) && isDigit(in.data[in.pos], false) {
			in.pos++
		}
		if in.pos == expDigits {
			in.pos = mark
		}
	}
	tok := string(in.data[start:in.pos])
	in.consumeLineTail()

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			// Clamp overflowed literals instead of failing.
			if math.IsInf(v, 1) {
				return math.MaxFloat64, nil
			}
			if math.IsInf(v, -1) {
				return -math.MaxFloat64, nil
			}
			return v, nil
		}
		return 0, ErrMalformedNumber
	}
	return v, nil
}

func isDigit(c byte, hex bool) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if !hex {
		return false
	}
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
