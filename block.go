// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Block is the BLOCK entity: a named, ordered list of child entities
// terminated by an ENDBLK marker. Blocks live in the BLOCKS section
// and are instanced by INSERT.
type Block struct {
	EntityBase
	name      string
	name2     string
	hasName2  bool
	flags     int16
	hasFlags  bool
	basePoint Vec3
	entities  []Entity
	endblk    Entity
}

// NewBlock returns an empty BLOCK entity.
func NewBlock() *Block {
	b := &Block{}
	b.init(b, "BLOCK")
	return b
}

// Name returns the block name.
func (b *Block) Name() string { return b.name }

// SetName sets the block name.
func (b *Block) SetName(name string) { b.name = name }

// BasePoint returns the block base point.
func (b *Block) BasePoint() Vec3 { return b.basePoint }

// SetBasePoint sets the block base point.
func (b *Block) SetBasePoint(v Vec3) { b.basePoint = v }

// Entities returns the child entities, excluding the ENDBLK marker.
func (b *Block) Entities() []Entity { return b.entities }

// NumEntities returns the number of child entities.
func (b *Block) NumEntities() int { return len(b.entities) }

// EntityAt returns child entity idx.
func (b *Block) EntityAt(idx int) Entity { return b.entities[idx] }

// InsertEntity inserts e at idx, keeping order.
func (b *Block) InsertEntity(e Entity, idx int) {
	if idx < 0 || idx >= len(b.entities) {
		b.entities = append(b.entities, e)
		return
	}
	b.entities = append(b.entities[:idx], append([]Entity{e}, b.entities[idx:]...)...)
}

// RemoveEntity removes the child entity at idx.
func (b *Block) RemoveEntity(idx int) {
	b.entities = append(b.entities[:idx], b.entities[idx+1:]...)
}

// HandleRecord stores the block name (2), the secondary name (3),
// the flags (70) and the base point (10/20/30).
func (b *Block) HandleRecord(code int32, param Param) bool {
	switch code {
	case 2:
		b.name = paramString(param)
	case 3:
		b.name2 = paramString(param)
		b.hasName2 = true
	case 70:
		b.flags = paramInt16(param)
		b.hasFlags = true
	case 10:
		b.basePoint.X = paramFloat(param)
	case 20:
		b.basePoint.Y = paramFloat(param)
	case 30:
		b.basePoint.Z = paramFloat(param)
	default:
		return b.handleCommonRecord(code, param)
	}
	return true
}

func (b *Block) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 2:
		return b.name, true
	case 3:
		if b.hasName2 {
			return b.name2, true
		}
	case 70:
		if b.hasFlags {
			return b.flags, true
		}
	case 10:
		return b.basePoint.X, true
	case 20:
		return b.basePoint.Y, true
	case 30:
		return b.basePoint.Z, true
	}
	return nil, false
}

// Read parses the block records and the child entities up to ENDBLK.
// The ENDBLK marker is kept so its attributes round-trip.
func (b *Block) Read(in *Input) error {
	if err := b.EntityBase.Read(in); err != nil {
		return err
	}
	entities, endblk, err := readEntities(in, "ENDBLK")
	if err != nil {
		return err
	}
	b.entities = entities
	b.endblk = endblk
	return nil
}

// Write serializes the block, its children and the ENDBLK marker.
func (b *Block) Write(out *Output) error {
	if err := b.preWrite(out); err != nil {
		return err
	}
	if err := writeStringRecord(out, 2, b.name); err != nil {
		return err
	}
	if b.hasFlags {
		if err := writeInt16Record(out, 70, b.flags); err != nil {
			return err
		}
	}
	if err := writeDoubleRecord(out, 10, b.basePoint.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, b.basePoint.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, b.basePoint.Z); err != nil {
		return err
	}
	if b.hasName2 {
		if err := writeStringRecord(out, 3, b.name2); err != nil {
			return err
		}
	}
	if err := b.writeRecords(out, b); err != nil {
		return err
	}
	for _, e := range b.entities {
		if e.IsDeleted() {
			continue
		}
		if err := e.Write(out); err != nil {
			return err
		}
	}
	if b.endblk != nil {
		return b.endblk.Write(out)
	}
	return writeStringRecord(out, 0, "ENDBLK")
}

// CountRecords returns the exact number of records Write emits.
func (b *Block) CountRecords() int {
	cnt := b.countCommonRecords() + 4 + b.countWrittenRecords(b)
	if b.hasFlags {
		cnt++
	}
	if b.hasName2 {
		cnt++
	}
	for _, e := range b.entities {
		if !e.IsDeleted() {
			cnt += e.CountRecords()
		}
	}
	if b.endblk != nil {
		cnt += b.endblk.CountRecords()
	} else {
		cnt++
	}
	return cnt
}

// fixReferences resolves INSERT children against the model.
func (b *Block) fixReferences(model *Model) {
	for _, e := range b.entities {
		if ins, ok := e.(*Insert); ok {
			ins.fixReferences(model)
		}
	}
}

// Traverse delivers the block, its children and the ENDBLK marker.
func (b *Block) Traverse(state *State, cb TraverseCallback) bool {
	if !cb(state, b) {
		return false
	}
	for _, e := range b.entities {
		if e.IsDeleted() {
			continue
		}
		if !e.Traverse(state, cb) {
			return false
		}
	}
	if b.endblk != nil {
		return cb(state, b.endblk)
	}
	return true
}

// Clone copies the block and its children, rebinding layers into
// model. The clone is not registered in the model's block dictionary.
func (b *Block) Clone(model *Model) Entity {
	c := &Block{
		name:      b.name,
		name2:     b.name2,
		hasName2:  b.hasName2,
		flags:     b.flags,
		hasFlags:  b.hasFlags,
		basePoint: b.basePoint,
	}
	b.cloneBase(&c.EntityBase, c, model)
	for _, e := range b.entities {
		c.entities = append(c.entities, e.Clone(model))
	}
	if b.endblk != nil {
		c.endblk = b.endblk.Clone(model)
	}
	return c
}
