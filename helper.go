// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// Errors
var (

	// ErrTruncated is returned when the stream ends where a record
	// was expected.
	ErrTruncated = errors.New("unexpected end of stream")

	// ErrMalformedNumber is returned when a numeric literal does not
	// parse.
	ErrMalformedNumber = errors.New("malformed numeric literal")

	// ErrUnexpectedGroupCode is returned when a structural boundary
	// expected one group code but found another.
	ErrUnexpectedGroupCode = errors.New("unexpected group code")

	// ErrUnexpectedRecord is returned when a section or composite
	// entity contains a record it cannot place.
	ErrUnexpectedRecord = errors.New("unexpected record")

	// ErrUnterminatedSection is returned when a SECTION has no ENDSEC.
	ErrUnterminatedSection = errors.New("unterminated section")

	// ErrAborted is returned when the progress callback requested an
	// abort by returning false.
	ErrAborted = errors.New("aborted by progress callback")

	// ErrPutBackFull is returned when a group code is pushed back
	// while another one is still pending. The put-back slot holds at
	// most one code.
	ErrPutBackFull = errors.New("put back slot already occupied")

	// ErrReservedGroupCode is returned by the generic record setter
	// for group codes the object serializes itself. Callers must use
	// the typed setter (e.g. SetLayer for group code 8).
	ErrReservedGroupCode = errors.New("group code reserved, use the typed setter")

	// ErrBadRecordValue is returned when a record carries a value of
	// a type no group code can produce.
	ErrBadRecordValue = errors.New("record value has an unsupported type")

	// ErrBinaryOutputUnsupported is returned by Model.Write when
	// Options.BinaryOutput is set. Binary DXF is readable only.
	ErrBinaryOutputUnsupported = errors.New("binary DXF output is not implemented")

	// ErrUnknownCodePage is returned when a $DWGCODEPAGE value does
	// not name a supported code page.
	ErrUnknownCodePage = errors.New("unknown drawing code page")
)

// EscapeUnicode converts non-ASCII characters, and non-printable ASCII
// characters other than space, to the \U+XXXX escape format older DXF
// releases use for text values.
func EscapeUnicode(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r > 127 || !unicode.IsPrint(r) && r != ' ' {
			sb.WriteString(fmt.Sprintf("\\U+%04X", r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// UnescapeUnicode expands \U+XXXX escape sequences to their runes.
// Malformed escapes are kept verbatim.
func UnescapeUnicode(s string) string {
	if !strings.Contains(s, "\\U+") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], "\\U+") && i+7 <= len(s) {
			if v, err := strconv.ParseUint(s[i+3:i+7], 16, 32); err == nil {
				sb.WriteRune(rune(v))
				i += 7
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// codePageByName maps $DWGCODEPAGE values to their charmap. Drawings
// older than AC1021 store strings in the code page named here.
func codePageByName(name string) *charmap.Charmap {
	switch strings.ToUpper(name) {
	case "ANSI_1250":
		return charmap.Windows1250
	case "ANSI_1251":
		return charmap.Windows1251
	case "ANSI_1252":
		return charmap.Windows1252
	case "ANSI_1253":
		return charmap.Windows1253
	case "ANSI_1254":
		return charmap.Windows1254
	case "ANSI_1255":
		return charmap.Windows1255
	case "ANSI_1256":
		return charmap.Windows1256
	case "ANSI_1257":
		return charmap.Windows1257
	case "ANSI_1258":
		return charmap.Windows1258
	case "ANSI_874":
		return charmap.Windows874
	default:
		return nil
	}
}

// DecodeCodePageString decodes a raw string read from a drawing with
// the given $DWGCODEPAGE value into UTF-8.
func DecodeCodePageString(codepage, s string) (string, error) {
	cm := codePageByName(codepage)
	if cm == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodePage, codepage)
	}
	out, err := cm.NewDecoder().String(s)
	if err != nil {
		return "", err
	}
	return out, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func getAbsoluteFilePath(testfile string) string {
	_, p, _, _ := runtime.Caller(0)
	return path.Join(filepath.Dir(p), testfile)
}
