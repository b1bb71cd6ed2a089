// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// UnknownEntity preserves an entity the library has no variant for.
// Every record is retained verbatim and echoed on write, so unknown
// entities survive a round trip untouched.
type UnknownEntity struct {
	EntityBase
}

// NewUnknownEntity returns an empty entity for the given DXF name.
func NewUnknownEntity(name string) *UnknownEntity {
	u := &UnknownEntity{}
	u.init(u, name)
	return u
}

// HandleRecord retains everything.
func (u *UnknownEntity) HandleRecord(code int32, param Param) bool {
	return false
}

// ShouldWriteRecord writes everything.
func (u *UnknownEntity) ShouldWriteRecord(code int32) bool {
	return true
}

// Write echoes the entity name and the retained records.
func (u *UnknownEntity) Write(out *Output) error {
	if err := out.WriteGroupCode(0); err != nil {
		return err
	}
	if err := out.WriteString(u.entityName); err != nil {
		return err
	}
	return u.writeRecords(out, u)
}

// CountRecords returns the exact number of records Write emits.
func (u *UnknownEntity) CountRecords() int {
	return 1 + len(u.records)
}

// Clone copies the entity.
func (u *UnknownEntity) Clone(model *Model) Entity {
	c := &UnknownEntity{}
	u.cloneBase(&c.EntityBase, c, model)
	return c
}
