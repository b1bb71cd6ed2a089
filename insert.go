// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Insert optional-field presence bits.
const (
	insFlagScale uint16 = 1 << iota
	insFlagRotation
	insFlagColCount
	insFlagRowCount
	insFlagColSpacing
	insFlagRowSpacing
	insFlagAttributes
)

// Insert is the INSERT entity, placing a named block under a
// transform. The block reference is resolved after the model has
// loaded; until then only the name is known.
type Insert struct {
	extrusionEntity
	blockName  string
	block      *Block
	insertion  Vec3
	scale      Vec3
	rotAngle   float64
	colCount   int16
	rowCount   int16
	colSpacing float64
	rowSpacing float64
	iflags     uint16

	attributesFollow int16
	attributes       []Entity
	seqend           Entity
}

// NewInsert returns an empty INSERT entity.
func NewInsert() *Insert {
	i := &Insert{scale: Vec3{1, 1, 1}, colCount: 1, rowCount: 1}
	i.initExtrusion(i, "INSERT")
	return i
}

// BlockName returns the referenced block name.
func (i *Insert) BlockName() string { return i.blockName }

// Block returns the resolved block, or nil before resolution.
func (i *Insert) Block() *Block { return i.block }

// SetBlock binds the insert to a block, adopting its name.
func (i *Insert) SetBlock(b *Block) {
	i.block = b
	if b != nil {
		i.blockName = b.Name()
	}
}

// InsertionPoint returns the insertion point.
func (i *Insert) InsertionPoint() Vec3 { return i.insertion }

// SetInsertionPoint sets the insertion point.
func (i *Insert) SetInsertionPoint(v Vec3) { i.insertion = v }

// Scale returns the per-axis scale, (1,1,1) by default.
func (i *Insert) Scale() Vec3 { return i.scale }

// SetScale sets the per-axis scale.
func (i *Insert) SetScale(s Vec3) {
	i.scale = s
	i.iflags |= insFlagScale
}

// RotAngle returns the rotation angle in degrees.
func (i *Insert) RotAngle() float64 { return i.rotAngle }

// SetRotAngle sets the rotation angle in degrees.
func (i *Insert) SetRotAngle(deg float64) {
	i.rotAngle = deg
	i.iflags |= insFlagRotation
}

// Attributes returns the attribute sub-entities.
func (i *Insert) Attributes() []Entity { return i.attributes }

// HandleRecord stores the insert fields.
func (i *Insert) HandleRecord(code int32, param Param) bool {
	switch code {
	case 2:
		i.blockName = paramString(param)
	case 66:
		i.attributesFollow = paramInt16(param)
		i.iflags |= insFlagAttributes
	case 10:
		i.insertion.X = paramFloat(param)
	case 20:
		i.insertion.Y = paramFloat(param)
	case 30:
		i.insertion.Z = paramFloat(param)
	case 41:
		i.scale.X = paramFloat(param)
		i.iflags |= insFlagScale
	case 42:
		i.scale.Y = paramFloat(param)
		i.iflags |= insFlagScale
	case 43:
		i.scale.Z = paramFloat(param)
		i.iflags |= insFlagScale
	case 50:
		i.rotAngle = paramFloat(param)
		i.iflags |= insFlagRotation
	case 70:
		i.colCount = paramInt16(param)
		i.iflags |= insFlagColCount
	case 71:
		i.rowCount = paramInt16(param)
		i.iflags |= insFlagRowCount
	case 44:
		i.colSpacing = paramFloat(param)
		i.iflags |= insFlagColSpacing
	case 45:
		i.rowSpacing = paramFloat(param)
		i.iflags |= insFlagRowSpacing
	default:
		if i.handleExtrusionRecord(code, param) {
			return true
		}
		return i.handleCommonRecord(code, param)
	}
	return true
}

func (i *Insert) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 2:
		return i.blockName, true
	case 66:
		if i.iflags&insFlagAttributes != 0 {
			return i.attributesFollow, true
		}
	case 10:
		return i.insertion.X, true
	case 20:
		return i.insertion.Y, true
	case 30:
		return i.insertion.Z, true
	case 41:
		if i.iflags&insFlagScale != 0 {
			return i.scale.X, true
		}
	case 42:
		if i.iflags&insFlagScale != 0 {
			return i.scale.Y, true
		}
	case 43:
		if i.iflags&insFlagScale != 0 {
			return i.scale.Z, true
		}
	case 50:
		if i.iflags&insFlagRotation != 0 {
			return i.rotAngle, true
		}
	case 70:
		if i.iflags&insFlagColCount != 0 {
			return i.colCount, true
		}
	case 71:
		if i.iflags&insFlagRowCount != 0 {
			return i.rowCount, true
		}
	case 44:
		if i.iflags&insFlagColSpacing != 0 {
			return i.colSpacing, true
		}
	case 45:
		if i.iflags&insFlagRowSpacing != 0 {
			return i.rowSpacing, true
		}
	}
	return i.extrusionRecord(code)
}

// Read parses the insert records and, when the attributes-follow
// record is set, the attribute entities up to SEQEND.
func (i *Insert) Read(in *Input) error {
	if err := i.EntityBase.Read(in); err != nil {
		return err
	}
	if i.attributesFollow != 1 {
		return nil
	}
	attributes, seqend, err := readEntities(in, "SEQEND")
	if err != nil {
		return err
	}
	i.attributes = attributes
	i.seqend = seqend
	return nil
}

// fixReferences resolves the block name against the model's block
// dictionary. An unresolved name is reported but not fatal; only the
// name is serialized anyway.
func (i *Insert) fixReferences(model *Model) {
	if i.block != nil || i.blockName == "" {
		return
	}
	i.block = model.FindBlock(i.blockName)
	if i.block == nil {
		model.logger.Warnf("INSERT references unknown block %q", i.blockName)
	}
}

// Write serializes the entity and its attribute sub-entities.
func (i *Insert) Write(out *Output) error {
	if err := i.preWrite(out); err != nil {
		return err
	}
	if i.iflags&insFlagAttributes != 0 {
		if err := writeInt16Record(out, 66, i.attributesFollow); err != nil {
			return err
		}
	}
	if err := writeStringRecord(out, 2, i.blockName); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, i.insertion.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, i.insertion.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, i.insertion.Z); err != nil {
		return err
	}
	if i.iflags&insFlagScale != 0 {
		if err := writeDoubleRecord(out, 41, i.scale.X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 42, i.scale.Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 43, i.scale.Z); err != nil {
			return err
		}
	}
	if i.iflags&insFlagRotation != 0 {
		if err := writeDoubleRecord(out, 50, i.rotAngle); err != nil {
			return err
		}
	}
	if i.iflags&insFlagColCount != 0 {
		if err := writeInt16Record(out, 70, i.colCount); err != nil {
			return err
		}
	}
	if i.iflags&insFlagRowCount != 0 {
		if err := writeInt16Record(out, 71, i.rowCount); err != nil {
			return err
		}
	}
	if i.iflags&insFlagColSpacing != 0 {
		if err := writeDoubleRecord(out, 44, i.colSpacing); err != nil {
			return err
		}
	}
	if i.iflags&insFlagRowSpacing != 0 {
		if err := writeDoubleRecord(out, 45, i.rowSpacing); err != nil {
			return err
		}
	}
	if err := i.writeExtrusion(out); err != nil {
		return err
	}
	if err := i.writeRecords(out, i); err != nil {
		return err
	}
	for _, a := range i.attributes {
		if a.IsDeleted() {
			continue
		}
		if err := a.Write(out); err != nil {
			return err
		}
	}
	if i.seqend != nil {
		return i.seqend.Write(out)
	}
	return nil
}

// CountRecords returns the exact number of records Write emits.
func (i *Insert) CountRecords() int {
	cnt := i.countCommonRecords() + 4 + i.countExtrusion() + i.countWrittenRecords(i)
	if i.iflags&insFlagAttributes != 0 {
		cnt++
	}
	if i.iflags&insFlagScale != 0 {
		cnt += 3
	}
	for _, f := range []uint16{
		insFlagRotation, insFlagColCount, insFlagRowCount,
		insFlagColSpacing, insFlagRowSpacing,
	} {
		if i.iflags&f != 0 {
			cnt++
		}
	}
	for _, a := range i.attributes {
		if !a.IsDeleted() {
			cnt += a.CountRecords()
		}
	}
	if i.seqend != nil {
		cnt += i.seqend.CountRecords()
	}
	return cnt
}

// matrix builds the placement transform for one row/column instance.
func (i *Insert) matrix(parent Matrix4, row, col int) Matrix4 {
	m := parent
	if i.extrusion != defaultExtrusion {
		m = m.Mult(GenerateUCS(i.extrusion))
	}
	offset := Vec3{
		float64(col) * i.colSpacing,
		float64(row) * i.rowSpacing,
		0,
	}
	m = m.Translate(i.insertion.Add(offset))
	m = m.RotateZ(i.rotAngle)
	m = m.Scale(i.scale)
	if i.block != nil {
		m = m.Translate(i.block.BasePoint().Neg())
	}
	return m
}

// Traverse explodes the referenced block under each row/column
// transform when the state asks for it, and otherwise delivers the
// INSERT itself.
func (i *Insert) Traverse(state *State, cb TraverseCallback) bool {
	if state.flags&ExplodeInserts == 0 || i.block == nil {
		return cb(state, i)
	}
	rows := int(i.rowCount)
	if rows < 1 {
		rows = 1
	}
	cols := int(i.colCount)
	if cols < 1 {
		cols = 1
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sub := state.push(i.matrix(state.matrix, r, c))
			sub.currentInsert = i
			for _, child := range i.block.Entities() {
				if child.IsDeleted() {
					continue
				}
				if !child.Traverse(sub, cb) {
					return false
				}
			}
		}
	}
	return true
}

// Clone copies the entity and its attributes, rebinding the block
// reference into model.
func (i *Insert) Clone(model *Model) Entity {
	c := &Insert{
		blockName:        i.blockName,
		insertion:        i.insertion,
		scale:            i.scale,
		rotAngle:         i.rotAngle,
		colCount:         i.colCount,
		rowCount:         i.rowCount,
		colSpacing:       i.colSpacing,
		rowSpacing:       i.rowSpacing,
		iflags:           i.iflags,
		attributesFollow: i.attributesFollow,
	}
	i.cloneBase(&c.EntityBase, c, model)
	c.extrusion = i.extrusion
	c.thickness = i.thickness
	c.exFlags = i.exFlags
	for _, a := range i.attributes {
		c.attributes = append(c.attributes, a.Clone(model))
	}
	if i.seqend != nil {
		c.seqend = i.seqend.Clone(model)
	}
	if model != nil {
		c.block = model.FindBlock(i.blockName)
	}
	return c
}
