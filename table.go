// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "fmt"

// Table is a TABLE/ENDTAB block inside the TABLES section: a named
// kind, optional maximum-entries hint, leading metadata records and
// an ordered list of entries.
type Table struct {
	RecordHolder
	name       string
	maxEntries int16
	hasMax     bool
	entries    []TableEntry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Name returns the table kind (LAYER, LTYPE, ...).
func (t *Table) Name() string { return t.name }

// SetName sets the table kind.
func (t *Table) SetName(name string) { t.name = name }

// Entries returns the table entries.
func (t *Table) Entries() []TableEntry { return t.entries }

// AppendEntry adds an entry.
func (t *Table) AppendEntry(e TableEntry) {
	t.entries = append(t.entries, e)
}

// HandleRecord stores the table kind (2) and the maximum-entries
// hint (70).
func (t *Table) HandleRecord(code int32, param Param) bool {
	switch code {
	case 2:
		t.name = paramString(param)
	case 70:
		t.maxEntries = paramInt16(param)
		t.hasMax = true
	default:
		return false
	}
	return true
}

// Read parses the table's leading records and its entries up to
// ENDTAB.
func (t *Table) Read(in *Input) error {
	for {
		code, err := in.ReadGroupCode()
		if err != nil {
			return err
		}
		if code != 0 {
			r, err := ReadRecord(in, code)
			if err != nil {
				return err
			}
			if !t.HandleRecord(code, r.Param) {
				t.records = append(t.records, r)
			}
			continue
		}
		name, err := in.ReadString()
		if err != nil {
			return err
		}
		if name == "ENDTAB" {
			return nil
		}
		entry := createTableEntry(name)
		if err := entry.Read(in); err != nil {
			return fmt.Errorf("%s entry: %w", name, err)
		}
		t.entries = append(t.entries, entry)
	}
}

// Write serializes the TABLE block including its ENDTAB terminator.
func (t *Table) Write(out *Output) error {
	if err := writeStringRecord(out, 0, "TABLE"); err != nil {
		return err
	}
	if err := writeStringRecord(out, 2, t.name); err != nil {
		return err
	}
	if t.hasMax {
		if err := writeInt16Record(out, 70, t.maxEntries); err != nil {
			return err
		}
	}
	if err := t.writeRecords(out, t); err != nil {
		return err
	}
	for _, e := range t.entries {
		if err := e.Write(out); err != nil {
			return err
		}
	}
	return writeStringRecord(out, 0, "ENDTAB")
}

// CountRecords returns the exact number of records Write emits.
func (t *Table) CountRecords() int {
	cnt := 3 + len(t.records)
	if t.hasMax {
		cnt++
	}
	for _, e := range t.entries {
		cnt += e.CountRecords()
	}
	return cnt
}
