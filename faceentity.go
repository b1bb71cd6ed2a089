// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// faceEntity carries the four corner points shared by 3DFACE, SOLID
// and TRACE (codes 10..13 / 20..23 / 30..33). Triangles repeat the
// third corner as the fourth.
type faceEntity struct {
	extrusionEntity
	corners [4]Vec3
}

// Corner returns corner idx (0..3).
func (f *faceEntity) Corner(idx int) Vec3 { return f.corners[idx] }

// SetCorner sets corner idx (0..3).
func (f *faceEntity) SetCorner(idx int, v Vec3) { f.corners[idx] = v }

// IsQuad reports whether the third and fourth corners differ.
func (f *faceEntity) IsQuad() bool { return f.corners[2] != f.corners[3] }

func (f *faceEntity) handleFaceRecord(code int32, param Param) bool {
	if code >= 10 && code <= 13 {
		f.corners[code-10].X = paramFloat(param)
		return true
	}
	if code >= 20 && code <= 23 {
		f.corners[code-20].Y = paramFloat(param)
		return true
	}
	if code >= 30 && code <= 33 {
		f.corners[code-30].Z = paramFloat(param)
		return true
	}
	return false
}

func (f *faceEntity) faceRecord(code int32) (Param, bool) {
	if code >= 10 && code <= 13 {
		return f.corners[code-10].X, true
	}
	if code >= 20 && code <= 23 {
		return f.corners[code-20].Y, true
	}
	if code >= 30 && code <= 33 {
		return f.corners[code-30].Z, true
	}
	return f.extrusionRecord(code)
}

func (f *faceEntity) writeFace(out *Output) error {
	for i := int32(0); i < 4; i++ {
		if err := writeDoubleRecord(out, 10+i, f.corners[i].X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 20+i, f.corners[i].Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 30+i, f.corners[i].Z); err != nil {
			return err
		}
	}
	return nil
}

const faceRecordCount = 12

// extractFace fills geom with the corners. Solid and Trace swap the
// last two corners, a quirk of their record layout.
func (f *faceEntity) extractFace(geom *Geometry, swapLast bool) GeometryType {
	geom.reset()
	geom.Extrusion = f.extrusion
	geom.Thickness = f.thickness
	if f.IsQuad() {
		order := [4]int{0, 1, 2, 3}
		if swapLast {
			order = [4]int{0, 1, 3, 2}
		}
		for i, o := range order {
			geom.Vertices = append(geom.Vertices, f.corners[o])
			geom.Indices = append(geom.Indices, i)
		}
	} else {
		for i := 0; i < 3; i++ {
			geom.Vertices = append(geom.Vertices, f.corners[i])
			geom.Indices = append(geom.Indices, i)
		}
	}
	geom.Indices = append(geom.Indices, -1)
	return GeometryPolygons
}

// Face3D is the 3DFACE entity. The flags field controls per-edge
// visibility.
type Face3D struct {
	faceEntity
	flags    int16
	hasFlags bool
}

// New3DFace returns an empty 3DFACE entity.
func New3DFace() *Face3D {
	f := &Face3D{}
	f.initExtrusion(f, "3DFACE")
	return f
}

// Flags returns the edge visibility flags.
func (f *Face3D) Flags() int16 { return f.flags }

// SetFlags sets the edge visibility flags.
func (f *Face3D) SetFlags(v int16) {
	f.flags = v
	f.hasFlags = true
}

// HandleRecord stores the corners and the edge visibility flags (70).
func (f *Face3D) HandleRecord(code int32, param Param) bool {
	if code == 70 {
		f.flags = paramInt16(param)
		f.hasFlags = true
		return true
	}
	if f.handleFaceRecord(code, param) {
		return true
	}
	if f.handleExtrusionRecord(code, param) {
		return true
	}
	return f.handleCommonRecord(code, param)
}

func (f *Face3D) typedRecord(code int32, index int) (Param, bool) {
	if code == 70 && f.hasFlags {
		return f.flags, true
	}
	return f.faceRecord(code)
}

// Write serializes the entity.
func (f *Face3D) Write(out *Output) error {
	if err := f.preWrite(out); err != nil {
		return err
	}
	if err := f.writeFace(out); err != nil {
		return err
	}
	if f.hasFlags {
		if err := writeInt16Record(out, 70, f.flags); err != nil {
			return err
		}
	}
	if err := f.writeExtrusion(out); err != nil {
		return err
	}
	return f.writeRecords(out, f)
}

// CountRecords returns the exact number of records Write emits.
func (f *Face3D) CountRecords() int {
	cnt := f.countCommonRecords() + faceRecordCount + f.countExtrusion() + f.countWrittenRecords(f)
	if f.hasFlags {
		cnt++
	}
	return cnt
}

// ExtractGeometry produces the face corners as one polygon.
func (f *Face3D) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	return f.extractFace(geom, false)
}

// Clone copies the entity, rebinding its layer into model.
func (f *Face3D) Clone(model *Model) Entity {
	c := &Face3D{flags: f.flags, hasFlags: f.hasFlags}
	c.corners = f.corners
	f.cloneBase(&c.EntityBase, c, model)
	c.extrusion = f.extrusion
	c.thickness = f.thickness
	c.exFlags = f.exFlags
	return c
}

// Solid is the SOLID entity, a filled quad or triangle.
type Solid struct {
	faceEntity
}

// NewSolid returns an empty SOLID entity.
func NewSolid() *Solid {
	s := &Solid{}
	s.initExtrusion(s, "SOLID")
	return s
}

// HandleRecord stores the corners.
func (s *Solid) HandleRecord(code int32, param Param) bool {
	if s.handleFaceRecord(code, param) {
		return true
	}
	if s.handleExtrusionRecord(code, param) {
		return true
	}
	return s.handleCommonRecord(code, param)
}

func (s *Solid) typedRecord(code int32, index int) (Param, bool) {
	return s.faceRecord(code)
}

// Write serializes the entity.
func (s *Solid) Write(out *Output) error {
	if err := s.preWrite(out); err != nil {
		return err
	}
	if err := s.writeFace(out); err != nil {
		return err
	}
	if err := s.writeExtrusion(out); err != nil {
		return err
	}
	return s.writeRecords(out, s)
}

// CountRecords returns the exact number of records Write emits.
func (s *Solid) CountRecords() int {
	return s.countCommonRecords() + faceRecordCount + s.countExtrusion() + s.countWrittenRecords(s)
}

// ExtractGeometry produces the corners as one polygon, with the last
// two corners swapped.
func (s *Solid) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	return s.extractFace(geom, true)
}

// Clone copies the entity, rebinding its layer into model.
func (s *Solid) Clone(model *Model) Entity {
	c := &Solid{}
	c.corners = s.corners
	s.cloneBase(&c.EntityBase, c, model)
	c.extrusion = s.extrusion
	c.thickness = s.thickness
	c.exFlags = s.exFlags
	return c
}

// Trace is the TRACE entity. It shares the SOLID record layout.
type Trace struct {
	faceEntity
}

// NewTrace returns an empty TRACE entity.
func NewTrace() *Trace {
	t := &Trace{}
	t.initExtrusion(t, "TRACE")
	return t
}

// HandleRecord stores the corners.
func (t *Trace) HandleRecord(code int32, param Param) bool {
	if t.handleFaceRecord(code, param) {
		return true
	}
	if t.handleExtrusionRecord(code, param) {
		return true
	}
	return t.handleCommonRecord(code, param)
}

func (t *Trace) typedRecord(code int32, index int) (Param, bool) {
	return t.faceRecord(code)
}

// Write serializes the entity.
func (t *Trace) Write(out *Output) error {
	if err := t.preWrite(out); err != nil {
		return err
	}
	if err := t.writeFace(out); err != nil {
		return err
	}
	if err := t.writeExtrusion(out); err != nil {
		return err
	}
	return t.writeRecords(out, t)
}

// CountRecords returns the exact number of records Write emits.
func (t *Trace) CountRecords() int {
	return t.countCommonRecords() + faceRecordCount + t.countExtrusion() + t.countWrittenRecords(t)
}

// ExtractGeometry produces the corners as one polygon, with the last
// two corners swapped.
func (t *Trace) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	return t.extractFace(geom, true)
}

// Clone copies the entity, rebinding its layer into model.
func (t *Trace) Clone(model *Model) Entity {
	c := &Trace{}
	c.corners = t.corners
	t.cloneBase(&c.EntityBase, c, model)
	c.extrusion = t.extrusion
	c.thickness = t.thickness
	c.exFlags = t.exFlags
	return c
}
