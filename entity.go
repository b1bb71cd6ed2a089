// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "fmt"

// Color number semantics: 256 means BYLAYER, 0 means BYBLOCK and a
// negative number means the layer is off.
const (
	ColorByBlock int16 = 0
	ColorByLayer int16 = 256
)

// Entity is a drawing entity from the ENTITIES or BLOCKS section.
type Entity interface {
	recordHandler

	// EntityName returns the DXF entity name (LINE, CIRCLE, ...).
	EntityName() string
	// Read parses the entity's records from in.
	Read(in *Input) error
	// Write serializes the entity.
	Write(out *Output) error
	// CountRecords returns the exact number of records Write emits.
	CountRecords() int
	// Traverse walks the entity under the accumulated transform.
	Traverse(state *State, cb TraverseCallback) bool
	// ExtractGeometry fills geom with the entity's tessellation and
	// reports what the vertices describe.
	ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType
	// Clone copies the entity, rebinding its layer into model.
	Clone(model *Model) Entity

	// SetRecord writes a record through the entity. Reserved group
	// codes (8, and 2 on INSERT) fail with ErrReservedGroupCode.
	SetRecord(code int32, param Param) error
	// SetIndexedRecord is SetRecord addressing the index'th record
	// with the same group code.
	SetIndexedRecord(code int32, param Param, index int) error
	// GetRecord returns the value last stored for a group code,
	// whether held in a typed field or retained verbatim.
	GetRecord(code int32, index int) (Param, bool)

	Layer() *Layer
	SetLayer(l *Layer)
	ColorNumber() int16
	SetColorNumber(c int16)
	Handle() string
	SetHandle(h string)
	IsDeleted() bool
	SetDeleted(deleted bool)

	base() *EntityBase
}

// typedRecorder is implemented by variants whose GetRecord consults
// typed fields before the retained records.
type typedRecorder interface {
	typedRecord(code int32, index int) (Param, bool)
}

// Presence flags for the optional common fields, kept so a round trip
// reproduces exactly the records the input had.
const (
	flagHandle uint32 = 1 << iota
	flagLinetype
	flagSubclassMarker
	flagPaperspace
	flagReactors
	flagXDict
	flagColor
	flagLayer
)

// EntityBase carries the fields and record plumbing shared by every
// entity variant.
type EntityBase struct {
	RecordHolder
	self Entity

	entityName string
	model      *Model

	layer     *Layer
	layerName string

	colorNumber     int16
	linetype        string
	handle          string
	reactorsHandle  Hex
	xdictHandle     Hex
	subclassMarkers []string
	paperspace      int16

	flags   uint32
	deleted bool
}

func (e *EntityBase) init(self Entity, name string) {
	e.self = self
	e.entityName = name
	e.colorNumber = ColorByLayer
	e.layer = defaultLayer
}

func (e *EntityBase) base() *EntityBase { return e }

// EntityName returns the DXF entity name.
func (e *EntityBase) EntityName() string { return e.entityName }

// Layer returns the entity's layer. Never nil after a read.
func (e *EntityBase) Layer() *Layer { return e.layer }

// SetLayer binds the entity to l.
func (e *EntityBase) SetLayer(l *Layer) {
	e.layer = l
	e.layerName = l.Name()
	e.flags |= flagLayer
}

// ColorNumber returns the entity color.
func (e *EntityBase) ColorNumber() int16 { return e.colorNumber }

// SetColorNumber sets the entity color.
func (e *EntityBase) SetColorNumber(c int16) {
	e.colorNumber = c
	e.flags |= flagColor
}

// Handle returns the entity's hex handle, if any.
func (e *EntityBase) Handle() string { return e.handle }

// SetHandle stores a hex handle for the entity.
func (e *EntityBase) SetHandle(h string) {
	e.handle = h
	e.flags |= flagHandle
}

// Linetype returns the entity linetype name.
func (e *EntityBase) Linetype() string { return e.linetype }

// SetLinetype sets the entity linetype name.
func (e *EntityBase) SetLinetype(lt string) {
	e.linetype = lt
	e.flags |= flagLinetype
}

// IsDeleted reports whether the entity is logically removed. Writers
// skip deleted entities.
func (e *EntityBase) IsDeleted() bool { return e.deleted }

// SetDeleted marks the entity logically removed without invalidating
// iterators held across a traversal.
func (e *EntityBase) SetDeleted(deleted bool) { e.deleted = deleted }

// handleCommonRecord stores the common entity fields: handle (5),
// linetype (6), layer (8), color (62), paperspace (67), subclass
// markers (100), reactors (330) and xdictionary (360). Application
// groups (102) are dropped; the reactors and xdictionary braces are
// rebuilt on write.
func (e *EntityBase) handleCommonRecord(code int32, param Param) bool {
	switch code {
	case 5:
		e.handle = paramString(param)
		e.flags |= flagHandle
	case 6:
		e.linetype = paramString(param)
		e.flags |= flagLinetype
	case 8:
		e.layerName = paramString(param)
		e.flags |= flagLayer
		if e.model != nil {
			e.layer = e.model.AddLayer(e.layerName, 7, 0)
		}
	case 62:
		e.colorNumber = paramInt16(param)
		e.flags |= flagColor
	case 67:
		e.paperspace = paramInt16(param)
		e.flags |= flagPaperspace
	case 100:
		e.subclassMarkers = append(e.subclassMarkers, paramString(param))
		e.flags |= flagSubclassMarker
	case 102:
	case 330:
		e.reactorsHandle = paramHex(param)
		e.flags |= flagReactors
	case 360:
		e.xdictHandle = paramHex(param)
		e.flags |= flagXDict
	default:
		return false
	}
	return true
}

// HandleRecord handles the common entity fields.
func (e *EntityBase) HandleRecord(code int32, param Param) bool {
	return e.handleCommonRecord(code, param)
}

// ShouldWriteRecord suppresses the retained records preWrite emits
// itself.
func (e *EntityBase) ShouldWriteRecord(code int32) bool {
	switch code {
	case 5, 6, 100, 330, 360:
		return false
	}
	return true
}

// Read parses records until the next entity and resolves the layer
// reference.
func (e *EntityBase) Read(in *Input) error {
	e.model = in.model
	if err := e.readRecords(in, e.self); err != nil {
		return err
	}
	e.resolveLayer()
	return nil
}

func (e *EntityBase) resolveLayer() {
	if e.layerName != "" && e.model != nil {
		e.layer = e.model.AddLayer(e.layerName, 7, 0)
	}
}

// preWrite emits the entity name and the common fields in the fixed
// order the subclass serialization relies on.
func (e *EntityBase) preWrite(out *Output) error {
	if err := out.WriteGroupCode(0); err != nil {
		return err
	}
	if err := out.WriteString(e.entityName); err != nil {
		return err
	}
	if e.flags&flagHandle != 0 {
		if err := writeStringRecord(out, 5, e.handle); err != nil {
			return err
		}
	}
	if e.flags&flagReactors != 0 {
		if err := writeStringRecord(out, 102, "{ACAD_REACTORS"); err != nil {
			return err
		}
		if err := writeHexRecord(out, 330, e.reactorsHandle); err != nil {
			return err
		}
		if err := writeStringRecord(out, 102, "}"); err != nil {
			return err
		}
	}
	if e.flags&flagXDict != 0 {
		if err := writeStringRecord(out, 102, "{ACAD_XDICTIONARY"); err != nil {
			return err
		}
		if err := writeHexRecord(out, 360, e.xdictHandle); err != nil {
			return err
		}
		if err := writeStringRecord(out, 102, "}"); err != nil {
			return err
		}
	}
	if len(e.subclassMarkers) > 0 {
		if err := writeStringRecord(out, 100, e.subclassMarkers[0]); err != nil {
			return err
		}
	}
	if e.flags&flagPaperspace != 0 {
		if err := writeInt16Record(out, 67, e.paperspace); err != nil {
			return err
		}
	}
	if e.flags&flagLayer != 0 {
		if err := writeStringRecord(out, 8, e.layer.Name()); err != nil {
			return err
		}
	}
	if e.flags&flagLinetype != 0 {
		if err := writeStringRecord(out, 6, e.linetype); err != nil {
			return err
		}
	}
	if e.flags&flagColor != 0 {
		if err := writeInt16Record(out, 62, e.colorNumber); err != nil {
			return err
		}
	}
	for _, m := range e.subclassMarkers[min(1, len(e.subclassMarkers)):] {
		if err := writeStringRecord(out, 100, m); err != nil {
			return err
		}
	}
	return nil
}

// countCommonRecords mirrors preWrite.
func (e *EntityBase) countCommonRecords() int {
	cnt := 1 // entity name
	if e.flags&flagHandle != 0 {
		cnt++
	}
	if e.flags&flagReactors != 0 {
		cnt += 3
	}
	if e.flags&flagXDict != 0 {
		cnt += 3
	}
	cnt += len(e.subclassMarkers)
	if e.flags&flagPaperspace != 0 {
		cnt++
	}
	if e.flags&flagLayer != 0 {
		cnt++
	}
	if e.flags&flagLinetype != 0 {
		cnt++
	}
	if e.flags&flagColor != 0 {
		cnt++
	}
	return cnt
}

// Write serializes the common fields followed by the retained
// records. Variants with typed fields override this.
func (e *EntityBase) Write(out *Output) error {
	if err := e.preWrite(out); err != nil {
		return err
	}
	return e.writeRecords(out, e.self)
}

// CountRecords counts the records Write emits.
func (e *EntityBase) CountRecords() int {
	return e.countCommonRecords() + e.countWrittenRecords(e.self)
}

// Traverse delivers the entity itself. Composites override this.
func (e *EntityBase) Traverse(state *State, cb TraverseCallback) bool {
	return cb(state, e.self)
}

// ExtractGeometry reports no geometry. Geometry-bearing variants
// override this.
func (e *EntityBase) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	return GeometryNone
}

// SetRecord writes one record through the entity. Group code 8 is
// reserved; use SetLayer.
func (e *EntityBase) SetRecord(code int32, param Param) error {
	return e.SetIndexedRecord(code, param, 0)
}

// SetIndexedRecord is SetRecord with a duplicate index.
func (e *EntityBase) SetIndexedRecord(code int32, param Param, index int) error {
	if code == 8 {
		return fmt.Errorf("%w: 8 (layer)", ErrReservedGroupCode)
	}
	if _, ok := e.self.(*Insert); ok && code == 2 {
		return fmt.Errorf("%w: 2 (block name)", ErrReservedGroupCode)
	}
	e.RecordHolder.setRecord(code, param, index, e.self)
	return nil
}

// SetRecords writes several records through the entity at once, with
// the same reserved-code checks as SetRecord.
func (e *EntityBase) SetRecords(records []Record) error {
	for _, r := range records {
		if err := e.SetIndexedRecord(r.Code, r.Param, 0); err != nil {
			return err
		}
	}
	return nil
}

// GetRecord returns the value last stored for a group code. Typed
// fields are consulted before the retained records.
func (e *EntityBase) GetRecord(code int32, index int) (Param, bool) {
	if v, ok := e.commonRecord(code); ok {
		return v, true
	}
	if tr, ok := e.self.(typedRecorder); ok {
		if v, ok := tr.typedRecord(code, index); ok {
			return v, true
		}
	}
	return e.RecordHolder.GetRecord(code, index)
}

func (e *EntityBase) commonRecord(code int32) (Param, bool) {
	switch code {
	case 5:
		if e.flags&flagHandle != 0 {
			return e.handle, true
		}
	case 6:
		if e.flags&flagLinetype != 0 {
			return e.linetype, true
		}
	case 8:
		if e.flags&flagLayer != 0 {
			return e.layer.Name(), true
		}
	case 62:
		if e.flags&flagColor != 0 {
			return e.colorNumber, true
		}
	case 67:
		if e.flags&flagPaperspace != 0 {
			return e.paperspace, true
		}
	case 100:
		if len(e.subclassMarkers) > 0 {
			return e.subclassMarkers[0], true
		}
	case 330:
		if e.flags&flagReactors != 0 {
			return e.reactorsHandle, true
		}
	case 360:
		if e.flags&flagXDict != 0 {
			return e.xdictHandle, true
		}
	}
	return nil, false
}

// cloneBase copies the common fields into dst, rebinding the layer
// into model.
func (e *EntityBase) cloneBase(dst *EntityBase, self Entity, model *Model) {
	*dst = *e
	dst.self = self
	dst.model = model
	dst.records = append([]Record(nil), e.records...)
	dst.subclassMarkers = append([]string(nil), e.subclassMarkers...)
	if model != nil && e.flags&flagLayer != 0 {
		dst.layer = model.AddLayer(e.layerName, 7, 0)
	}
}

// CreateEntity builds the entity variant for a DXF entity name.
// Unrecognized names produce an UnknownEntity that retains its
// records verbatim.
func CreateEntity(name string) Entity {
	switch name {
	case "LINE":
		return NewLine()
	case "POINT":
		return NewPoint()
	case "CIRCLE":
		return NewCircle()
	case "ARC":
		return NewArc()
	case "ELLIPSE":
		return NewEllipse()
	case "3DFACE":
		return New3DFace()
	case "SOLID":
		return NewSolid()
	case "TRACE":
		return NewTrace()
	case "TEXT":
		return NewText()
	case "MTEXT":
		return NewMText()
	case "LWPOLYLINE":
		return NewLWPolyline()
	case "POLYLINE":
		return NewPolyline()
	case "VERTEX":
		return NewVertex()
	case "SPLINE":
		return NewSpline()
	case "INSERT":
		return NewInsert()
	case "BLOCK":
		return NewBlock()
	default:
		return NewUnknownEntity(name)
	}
}

// readEntities reads entities until the named terminator entity,
// which is returned separately with its records so its attributes
// survive a round trip.
func readEntities(in *Input, terminator string) ([]Entity, Entity, error) {
	var list []Entity
	for {
		code, err := in.ReadGroupCode()
		if err != nil {
			return nil, nil, err
		}
		if code != 0 {
			return nil, nil, fmt.Errorf("%w: expected 0, got %d", ErrUnexpectedGroupCode, code)
		}
		name, err := in.ReadString()
		if err != nil {
			return nil, nil, err
		}
		e := CreateEntity(name)
		if err := e.Read(in); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		if name == terminator {
			return list, e, nil
		}
		list = append(list, e)
	}
}

func writeStringRecord(out *Output, code int32, s string) error {
	if err := out.WriteGroupCode(code); err != nil {
		return err
	}
	return out.WriteString(s)
}

func writeHexRecord(out *Output, code int32, h Hex) error {
	if err := out.WriteGroupCode(code); err != nil {
		return err
	}
	return out.WriteHex(h)
}

func writeInt16Record(out *Output, code int32, v int16) error {
	if err := out.WriteGroupCode(code); err != nil {
		return err
	}
	return out.WriteInt16(v)
}

func writeInt32Record(out *Output, code int32, v int32) error {
	if err := out.WriteGroupCode(code); err != nil {
		return err
	}
	return out.WriteInt32(v)
}

func writeDoubleRecord(out *Output, code int32, v float64) error {
	if err := out.WriteGroupCode(code); err != nil {
		return err
	}
	return out.WriteDouble(v)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
