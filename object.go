// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Object is one named object of the OBJECTS section, kept as a plain
// record holder.
type Object struct {
	RecordHolder
	name string
}

// NewObject returns an empty object with the given DXF name.
func NewObject(name string) *Object {
	return &Object{name: name}
}

// ObjectName returns the DXF object name (DICTIONARY, MLINESTYLE, ...).
func (o *Object) ObjectName() string { return o.name }

// Read parses the object records.
func (o *Object) Read(in *Input) error {
	return o.readRecords(in, o)
}

// Write serializes the object.
func (o *Object) Write(out *Output) error {
	if err := writeStringRecord(out, 0, o.name); err != nil {
		return err
	}
	return o.writeRecords(out, o)
}

// CountRecords returns the exact number of records Write emits.
func (o *Object) CountRecords() int {
	return 1 + len(o.records)
}
