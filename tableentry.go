// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// TableEntry is one entry of a TABLE block. LAYER entries are
// decoded; anything else falls back to an unknown entry retaining
// its records.
type TableEntry interface {
	recordHandler

	// EntryName returns the table entry name (LAYER, LTYPE, ...).
	EntryName() string
	// Read parses the entry's records.
	Read(in *Input) error
	// Write serializes the entry.
	Write(out *Output) error
	// CountRecords returns the exact number of records Write emits.
	CountRecords() int
}

type tableEntryBase struct {
	RecordHolder
	self  recordHandler
	name  string
	model *Model
}

func (t *tableEntryBase) EntryName() string { return t.name }

func (t *tableEntryBase) Read(in *Input) error {
	t.model = in.model
	return t.readRecords(in, t.self)
}

func (t *tableEntryBase) writeEntry(out *Output) error {
	if err := out.WriteGroupCode(0); err != nil {
		return err
	}
	return out.WriteString(t.name)
}

// createTableEntry builds the entry variant for a table entry name.
func createTableEntry(name string) TableEntry {
	switch name {
	case "LAYER":
		return NewLayerTableEntry()
	default:
		return NewUnknownTableEntry(name)
	}
}

// LayerTableEntry is a LAYER table entry. Reading one registers the
// layer with the model.
type LayerTableEntry struct {
	tableEntryBase
	layerName   string
	colorNumber int16
	flags       int16
	linetype    string
	hasLinetype bool
}

// NewLayerTableEntry returns an empty LAYER entry.
func NewLayerTableEntry() *LayerTableEntry {
	e := &LayerTableEntry{}
	e.self = e
	e.name = "LAYER"
	return e
}

// LayerName returns the layer name.
func (e *LayerTableEntry) LayerName() string { return e.layerName }

// SetLayerName sets the layer name.
func (e *LayerTableEntry) SetLayerName(name string) { e.layerName = name }

// ColorNumber returns the layer color.
func (e *LayerTableEntry) ColorNumber() int16 { return e.colorNumber }

// SetColorNumber sets the layer color.
func (e *LayerTableEntry) SetColorNumber(c int16) { e.colorNumber = c }

// Flags returns the layer flags.
func (e *LayerTableEntry) Flags() int16 { return e.flags }

// HandleRecord stores name (2), color (62) and flags (70).
func (e *LayerTableEntry) HandleRecord(code int32, param Param) bool {
	switch code {
	case 2:
		e.layerName = paramString(param)
	case 62:
		e.colorNumber = paramInt16(param)
	case 70:
		e.flags = paramInt16(param)
	case 6:
		e.linetype = paramString(param)
		e.hasLinetype = true
	default:
		return false
	}
	return true
}

// Read parses the entry and registers the layer with the model.
func (e *LayerTableEntry) Read(in *Input) error {
	if err := e.tableEntryBase.Read(in); err != nil {
		return err
	}
	if e.model != nil && e.layerName != "" {
		e.model.AddLayer(e.layerName, e.colorNumber, e.flags)
	}
	return nil
}

// Write serializes the entry.
func (e *LayerTableEntry) Write(out *Output) error {
	if err := e.writeEntry(out); err != nil {
		return err
	}
	if err := writeStringRecord(out, 2, e.layerName); err != nil {
		return err
	}
	if err := writeInt16Record(out, 70, e.flags); err != nil {
		return err
	}
	if err := writeInt16Record(out, 62, e.colorNumber); err != nil {
		return err
	}
	if e.hasLinetype {
		if err := writeStringRecord(out, 6, e.linetype); err != nil {
			return err
		}
	}
	return e.writeRecords(out, e)
}

// CountRecords returns the exact number of records Write emits.
func (e *LayerTableEntry) CountRecords() int {
	cnt := 4 + e.countWrittenRecords(e)
	if e.hasLinetype {
		cnt++
	}
	return cnt
}

// UnknownTableEntry preserves a table entry the library has no
// variant for.
type UnknownTableEntry struct {
	tableEntryBase
}

// NewUnknownTableEntry returns an empty entry for the given name.
func NewUnknownTableEntry(name string) *UnknownTableEntry {
	e := &UnknownTableEntry{}
	e.self = e
	e.name = name
	return e
}

// Write echoes the entry name and the retained records.
func (e *UnknownTableEntry) Write(out *Output) error {
	if err := e.writeEntry(out); err != nil {
		return err
	}
	return e.writeRecords(out, e)
}

// CountRecords returns the exact number of records Write emits.
func (e *UnknownTableEntry) CountRecords() int {
	return 1 + len(e.records)
}
