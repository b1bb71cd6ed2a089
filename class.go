// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Class is one CLASS group of the CLASSES section, keyed by the DXF
// class name record.
type Class struct {
	RecordHolder
	className string
}

// NewClass returns an empty CLASS group.
func NewClass() *Class {
	return &Class{}
}

// ClassName returns the DXF class name.
func (c *Class) ClassName() string { return c.className }

// SetClassName sets the DXF class name.
func (c *Class) SetClassName(name string) { c.className = name }

// HandleRecord stores the DXF class name (1).
func (c *Class) HandleRecord(code int32, param Param) bool {
	if code == 1 {
		c.className = paramString(param)
		return true
	}
	return false
}

// Read parses the class records.
func (c *Class) Read(in *Input) error {
	return c.readRecords(in, c)
}

// Write serializes the class group.
func (c *Class) Write(out *Output) error {
	if err := writeStringRecord(out, 0, "CLASS"); err != nil {
		return err
	}
	if err := writeStringRecord(out, 1, c.className); err != nil {
		return err
	}
	return c.writeRecords(out, c)
}

// CountRecords returns the exact number of records Write emits.
func (c *Class) CountRecords() int {
	return 2 + len(c.records)
}
