// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "fmt"

// Polyline flag bits (group code 70).
const (
	PolylineClosedM      = 0x1
	PolylineCurveFit     = 0x2
	PolylineSplineFit    = 0x4
	Polyline3D           = 0x8
	PolylinePolygonMesh  = 0x10
	PolylineClosedN      = 0x20
	PolylinePolyfaceMesh = 0x40
)

// Vertex flag bits (group code 70).
const (
	VertexCurveFit    = 0x1
	VertexTangent     = 0x2
	VertexSplineFit   = 0x8
	VertexSplineFrame = 0x10
	Vertex3D          = 0x20
	VertexMesh        = 0x40
	VertexFaceRecord  = 0x80
)

// PolylineType classifies a POLYLINE by its flags.
type PolylineType int

// Polyline classifications.
const (
	Polyline2DType PolylineType = iota
	Polyline3DType
	PolygonMeshType
	PolyfaceMeshType
)

// Vertex is the VERTEX sub-entity of a POLYLINE.
type Vertex struct {
	EntityBase
	coord      Vec3
	flags      int16
	hasFlags   bool
	startWidth float64
	endWidth   float64
	bulge      float64
	vflags     uint8
	indices    [4]int16
	hasIndex   uint8
}

const (
	vertexHasStartWidth uint8 = 1 << iota
	vertexHasEndWidth
	vertexHasBulge
)

// NewVertex returns an empty VERTEX entity.
func NewVertex() *Vertex {
	v := &Vertex{}
	v.init(v, "VERTEX")
	return v
}

// Coords returns the vertex coordinate.
func (v *Vertex) Coords() Vec3 { return v.coord }

// SetCoords sets the vertex coordinate.
func (v *Vertex) SetCoords(c Vec3) { v.coord = c }

// Flags returns the vertex flags.
func (v *Vertex) Flags() int16 { return v.flags }

// SetFlags sets the vertex flags.
func (v *Vertex) SetFlags(f int16) {
	v.flags = f
	v.hasFlags = true
}

// Bulge returns the vertex bulge.
func (v *Vertex) Bulge() float64 { return v.bulge }

// Index returns face index idx (0..3). Negative values mark hidden
// edges.
func (v *Vertex) Index(idx int) int16 { return v.indices[idx] }

// SetIndex sets face index idx (0..3).
func (v *Vertex) SetIndex(idx int, value int16) {
	v.indices[idx] = value
	v.hasIndex |= 1 << idx
}

// NumIndices returns how many face indices the vertex carries.
func (v *Vertex) NumIndices() int {
	n := 0
	for i := uint8(0); i < 4; i++ {
		if v.hasIndex&(1<<i) != 0 {
			n++
		}
	}
	return n
}

// hasIndices reports whether any face index field was present.
func (v *Vertex) hasIndices() bool { return v.hasIndex != 0 }

// isSplineFrame reports whether the vertex is a spline frame control
// point.
func (v *Vertex) isSplineFrame() bool { return v.flags&VertexSplineFrame != 0 }

// isFaceRecord reports whether the vertex defines a polyface mesh
// face.
func (v *Vertex) isFaceRecord() bool {
	if v.hasIndices() {
		return true
	}
	return v.flags&VertexFaceRecord != 0 && v.flags&VertexMesh == 0
}

// HandleRecord stores the vertex fields.
func (v *Vertex) HandleRecord(code int32, param Param) bool {
	switch code {
	case 10:
		v.coord.X = paramFloat(param)
	case 20:
		v.coord.Y = paramFloat(param)
	case 30:
		v.coord.Z = paramFloat(param)
	case 40:
		v.startWidth = paramFloat(param)
		v.vflags |= vertexHasStartWidth
	case 41:
		v.endWidth = paramFloat(param)
		v.vflags |= vertexHasEndWidth
	case 42:
		v.bulge = paramFloat(param)
		v.vflags |= vertexHasBulge
	case 70:
		v.flags = paramInt16(param)
		v.hasFlags = true
	case 71, 72, 73, 74:
		v.indices[code-71] = paramInt16(param)
		v.hasIndex |= 1 << (code - 71)
	default:
		return v.handleCommonRecord(code, param)
	}
	return true
}

func (v *Vertex) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 10:
		return v.coord.X, true
	case 20:
		return v.coord.Y, true
	case 30:
		return v.coord.Z, true
	case 40:
		if v.vflags&vertexHasStartWidth != 0 {
			return v.startWidth, true
		}
	case 41:
		if v.vflags&vertexHasEndWidth != 0 {
			return v.endWidth, true
		}
	case 42:
		if v.vflags&vertexHasBulge != 0 {
			return v.bulge, true
		}
	case 70:
		if v.hasFlags {
			return v.flags, true
		}
	case 71, 72, 73, 74:
		if v.hasIndex&(1<<(code-71)) != 0 {
			return v.indices[code-71], true
		}
	}
	return nil, false
}

// Write serializes the entity.
func (v *Vertex) Write(out *Output) error {
	if err := v.preWrite(out); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, v.coord.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, v.coord.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, v.coord.Z); err != nil {
		return err
	}
	if v.vflags&vertexHasStartWidth != 0 {
		if err := writeDoubleRecord(out, 40, v.startWidth); err != nil {
			return err
		}
	}
	if v.vflags&vertexHasEndWidth != 0 {
		if err := writeDoubleRecord(out, 41, v.endWidth); err != nil {
			return err
		}
	}
	if v.vflags&vertexHasBulge != 0 {
		if err := writeDoubleRecord(out, 42, v.bulge); err != nil {
			return err
		}
	}
	if v.hasFlags {
		if err := writeInt16Record(out, 70, v.flags); err != nil {
			return err
		}
	}
	for i := int32(0); i < 4; i++ {
		if v.hasIndex&(1<<i) != 0 {
			if err := writeInt16Record(out, 71+i, v.indices[i]); err != nil {
				return err
			}
		}
	}
	return v.writeRecords(out, v)
}

// CountRecords returns the exact number of records Write emits.
func (v *Vertex) CountRecords() int {
	cnt := v.countCommonRecords() + 3 + v.countWrittenRecords(v)
	for _, f := range []uint8{vertexHasStartWidth, vertexHasEndWidth, vertexHasBulge} {
		if v.vflags&f != 0 {
			cnt++
		}
	}
	if v.hasFlags {
		cnt++
	}
	cnt += v.NumIndices()
	return cnt
}

// ExtractGeometry produces the vertex coordinate as a point.
func (v *Vertex) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Vertices = append(geom.Vertices, v.coord)
	geom.Indices = append(geom.Indices, 0)
	return GeometryPoints
}

// Clone copies the entity, rebinding its layer into model.
func (v *Vertex) Clone(model *Model) Entity {
	c := &Vertex{
		coord:      v.coord,
		flags:      v.flags,
		hasFlags:   v.hasFlags,
		startWidth: v.startWidth,
		endWidth:   v.endWidth,
		bulge:      v.bulge,
		vflags:     v.vflags,
		indices:    v.indices,
		hasIndex:   v.hasIndex,
	}
	v.cloneBase(&c.EntityBase, c, model)
	return c
}

// Polyline is the POLYLINE entity. Its vertices follow as VERTEX
// sub-entities terminated by SEQEND, partitioned into coordinate,
// face index and spline frame lists.
type Polyline struct {
	extrusionEntity
	flags       int16
	hasFlags    bool
	elevation   Vec3
	countM      int16
	countN      int16
	smoothM     int16
	smoothN     int16
	surfaceType int16
	startWidth  float64
	endWidth    float64
	pflags      uint16

	verticesFollow int16

	coordVertices []*Vertex
	indexVertices []*Vertex
	frameVertices []*Vertex
	seqend        Entity
}

const (
	polyHasElevation uint16 = 1 << iota
	polyHasCountM
	polyHasCountN
	polyHasSmoothM
	polyHasSmoothN
	polyHasSurfaceType
	polyHasStartWidth
	polyHasEndWidth
	polyHasVerticesFollow
)

// NewPolyline returns an empty POLYLINE entity.
func NewPolyline() *Polyline {
	p := &Polyline{}
	p.initExtrusion(p, "POLYLINE")
	return p
}

// Flags returns the polyline flags.
func (p *Polyline) Flags() int16 { return p.flags }

// SetFlags sets the polyline flags.
func (p *Polyline) SetFlags(f int16) {
	p.flags = f
	p.hasFlags = true
}

// Type classifies the polyline by its flags.
func (p *Polyline) Type() PolylineType {
	switch {
	case p.flags&PolylinePolyfaceMesh != 0:
		return PolyfaceMeshType
	case p.flags&PolylinePolygonMesh != 0:
		return PolygonMeshType
	case p.flags&Polyline3D != 0:
		return Polyline3DType
	default:
		return Polyline2DType
	}
}

// Elevation returns the polyline elevation point.
func (p *Polyline) Elevation() Vec3 { return p.elevation }

// CoordVertices returns the geometric vertices.
func (p *Polyline) CoordVertices() []*Vertex { return p.coordVertices }

// IndexVertices returns the polyface mesh face records.
func (p *Polyline) IndexVertices() []*Vertex { return p.indexVertices }

// FrameVertices returns the spline frame control points.
func (p *Polyline) FrameVertices() []*Vertex { return p.frameVertices }

// AppendVertex adds a vertex, partitioning it like the reader does,
// and makes sure the vertices-follow record is present.
func (p *Polyline) AppendVertex(v *Vertex) {
	p.verticesFollow = 1
	p.pflags |= polyHasVerticesFollow
	switch {
	case v.isSplineFrame():
		p.frameVertices = append(p.frameVertices, v)
	case v.isFaceRecord():
		p.indexVertices = append(p.indexVertices, v)
	default:
		p.coordVertices = append(p.coordVertices, v)
	}
	if p.seqend == nil {
		p.seqend = NewUnknownEntity("SEQEND")
	}
}

// HandleRecord stores the polyline fields.
func (p *Polyline) HandleRecord(code int32, param Param) bool {
	switch code {
	case 66:
		p.verticesFollow = paramInt16(param)
		p.pflags |= polyHasVerticesFollow
	case 70:
		p.flags = paramInt16(param)
		p.hasFlags = true
	case 10:
		p.elevation.X = paramFloat(param)
		p.pflags |= polyHasElevation
	case 20:
		p.elevation.Y = paramFloat(param)
		p.pflags |= polyHasElevation
	case 30:
		p.elevation.Z = paramFloat(param)
		p.pflags |= polyHasElevation
	case 40:
		p.startWidth = paramFloat(param)
		p.pflags |= polyHasStartWidth
	case 41:
		p.endWidth = paramFloat(param)
		p.pflags |= polyHasEndWidth
	case 71:
		p.countM = paramInt16(param)
		p.pflags |= polyHasCountM
	case 72:
		p.countN = paramInt16(param)
		p.pflags |= polyHasCountN
	case 73:
		p.smoothM = paramInt16(param)
		p.pflags |= polyHasSmoothM
	case 74:
		p.smoothN = paramInt16(param)
		p.pflags |= polyHasSmoothN
	case 75:
		p.surfaceType = paramInt16(param)
		p.pflags |= polyHasSurfaceType
	default:
		if p.handleExtrusionRecord(code, param) {
			return true
		}
		return p.handleCommonRecord(code, param)
	}
	return true
}

func (p *Polyline) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 66:
		if p.pflags&polyHasVerticesFollow != 0 {
			return p.verticesFollow, true
		}
	case 70:
		if p.hasFlags {
			return p.flags, true
		}
	case 10:
		return p.elevation.X, true
	case 20:
		return p.elevation.Y, true
	case 30:
		return p.elevation.Z, true
	case 40:
		if p.pflags&polyHasStartWidth != 0 {
			return p.startWidth, true
		}
	case 41:
		if p.pflags&polyHasEndWidth != 0 {
			return p.endWidth, true
		}
	case 71:
		if p.pflags&polyHasCountM != 0 {
			return p.countM, true
		}
	case 72:
		if p.pflags&polyHasCountN != 0 {
			return p.countN, true
		}
	case 73:
		if p.pflags&polyHasSmoothM != 0 {
			return p.smoothM, true
		}
	case 74:
		if p.pflags&polyHasSmoothN != 0 {
			return p.smoothN, true
		}
	case 75:
		if p.pflags&polyHasSurfaceType != 0 {
			return p.surfaceType, true
		}
	}
	return p.extrusionRecord(code)
}

// Read parses the polyline records and, when the vertices-follow
// record is set, the VERTEX entities up to SEQEND.
func (p *Polyline) Read(in *Input) error {
	if err := p.EntityBase.Read(in); err != nil {
		return err
	}
	if p.verticesFollow != 1 {
		return nil
	}
	entities, seqend, err := readEntities(in, "SEQEND")
	if err != nil {
		return err
	}
	for _, e := range entities {
		v, ok := e.(*Vertex)
		if !ok {
			return fmt.Errorf("%w: %s inside POLYLINE", ErrUnexpectedRecord, e.EntityName())
		}
		switch {
		case v.isSplineFrame():
			p.frameVertices = append(p.frameVertices, v)
		case v.isFaceRecord():
			p.indexVertices = append(p.indexVertices, v)
		default:
			p.coordVertices = append(p.coordVertices, v)
		}
	}
	p.seqend = seqend
	return nil
}

// Write serializes the entity, its vertices and the SEQEND marker.
func (p *Polyline) Write(out *Output) error {
	if err := p.preWrite(out); err != nil {
		return err
	}
	if p.pflags&polyHasVerticesFollow != 0 {
		if err := writeInt16Record(out, 66, p.verticesFollow); err != nil {
			return err
		}
	}
	if p.pflags&polyHasElevation != 0 {
		if err := writeDoubleRecord(out, 10, p.elevation.X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 20, p.elevation.Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 30, p.elevation.Z); err != nil {
			return err
		}
	}
	if p.hasFlags {
		if err := writeInt16Record(out, 70, p.flags); err != nil {
			return err
		}
	}
	if p.pflags&polyHasStartWidth != 0 {
		if err := writeDoubleRecord(out, 40, p.startWidth); err != nil {
			return err
		}
	}
	if p.pflags&polyHasEndWidth != 0 {
		if err := writeDoubleRecord(out, 41, p.endWidth); err != nil {
			return err
		}
	}
	if p.pflags&polyHasCountM != 0 {
		if err := writeInt16Record(out, 71, p.countM); err != nil {
			return err
		}
	}
	if p.pflags&polyHasCountN != 0 {
		if err := writeInt16Record(out, 72, p.countN); err != nil {
			return err
		}
	}
	if p.pflags&polyHasSmoothM != 0 {
		if err := writeInt16Record(out, 73, p.smoothM); err != nil {
			return err
		}
	}
	if p.pflags&polyHasSmoothN != 0 {
		if err := writeInt16Record(out, 74, p.smoothN); err != nil {
			return err
		}
	}
	if p.pflags&polyHasSurfaceType != 0 {
		if err := writeInt16Record(out, 75, p.surfaceType); err != nil {
			return err
		}
	}
	if err := p.writeExtrusion(out); err != nil {
		return err
	}
	if err := p.writeRecords(out, p); err != nil {
		return err
	}
	for _, list := range [][]*Vertex{p.coordVertices, p.indexVertices, p.frameVertices} {
		for _, v := range list {
			if v.IsDeleted() {
				continue
			}
			if err := v.Write(out); err != nil {
				return err
			}
		}
	}
	if p.seqend != nil {
		return p.seqend.Write(out)
	}
	return nil
}

// CountRecords returns the exact number of records Write emits.
func (p *Polyline) CountRecords() int {
	cnt := p.countCommonRecords() + p.countExtrusion() + p.countWrittenRecords(p)
	if p.pflags&polyHasVerticesFollow != 0 {
		cnt++
	}
	if p.pflags&polyHasElevation != 0 {
		cnt += 3
	}
	if p.hasFlags {
		cnt++
	}
	for _, f := range []uint16{
		polyHasStartWidth, polyHasEndWidth, polyHasCountM, polyHasCountN,
		polyHasSmoothM, polyHasSmoothN, polyHasSurfaceType,
	} {
		if p.pflags&f != 0 {
			cnt++
		}
	}
	for _, list := range [][]*Vertex{p.coordVertices, p.indexVertices, p.frameVertices} {
		for _, v := range list {
			if !v.IsDeleted() {
				cnt += v.CountRecords()
			}
		}
	}
	if p.seqend != nil {
		cnt += p.seqend.CountRecords()
	}
	return cnt
}

// Traverse delivers the polyline and, when requested, its coordinate
// vertices.
func (p *Polyline) Traverse(state *State, cb TraverseCallback) bool {
	if !cb(state, p) {
		return false
	}
	if state.flags&TraversePolylineVertices != 0 {
		for _, v := range p.coordVertices {
			if !cb(state, v) {
				return false
			}
		}
	}
	return true
}

// ExtractGeometry produces lines for plain polylines, grid quads for
// polygon meshes and explicit faces for polyface meshes.
func (p *Polyline) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Extrusion = p.extrusion
	geom.Thickness = p.thickness
	for _, v := range p.coordVertices {
		geom.Vertices = append(geom.Vertices, v.coord)
	}
	switch p.Type() {
	case PolyfaceMeshType:
		for _, fv := range p.indexVertices {
			wrote := false
			for k := 0; k < 4; k++ {
				if fv.hasIndex&(1<<k) == 0 || fv.indices[k] == 0 {
					continue
				}
				idx := int(fv.indices[k])
				if idx < 0 {
					idx = -idx
				}
				geom.Indices = append(geom.Indices, idx-1)
				wrote = true
			}
			if wrote {
				geom.Indices = append(geom.Indices, -1)
			}
		}
		return GeometryPolygons
	case PolygonMeshType:
		return p.extractPolygonMesh(geom)
	default:
		for i := range p.coordVertices {
			geom.Indices = append(geom.Indices, i)
		}
		if p.flags&PolylineClosedM != 0 && len(p.coordVertices) > 2 {
			geom.Indices = append(geom.Indices, 0)
		}
		return GeometryLines
	}
}

// extractPolygonMesh builds quads for an m x n vertex grid. The mesh
// counters are validated against the vertex count; when only the
// smooth surface counters fit, they take over.
func (p *Polyline) extractPolygonMesh(geom *Geometry) GeometryType {
	cnt := len(p.coordVertices)
	m, n := int(p.countM), int(p.countN)
	m2, n2 := int(p.smoothM), int(p.smoothN)
	switch {
	case m*n == cnt:
	case m2*n2 == cnt:
		m, n = m2, n2
	case m*n+m2*n2 == cnt:
		// Grid plus smooth surface points; the grid comes first.
	default:
		if p.model != nil {
			p.model.logger.Warnf("polygon mesh counters %dx%d + %dx%d do not match %d vertices",
				m, n, m2, n2, cnt)
		}
		for i := 0; i < cnt; i++ {
			geom.Indices = append(geom.Indices, i)
		}
		return GeometryLines
	}
	if m < 1 || n < 1 {
		return GeometryPolygons
	}
	rows := m - 1
	if p.flags&PolylineClosedM != 0 {
		rows = m
	}
	cols := n - 1
	if p.flags&PolylineClosedN != 0 {
		cols = n
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			i1 := (i + 1) % m
			j1 := (j + 1) % n
			geom.Indices = append(geom.Indices,
				i*n+j, i1*n+j, i1*n+j1, i*n+j1, -1)
		}
	}
	return GeometryPolygons
}

// Clone copies the entity and its vertices, rebinding layers into
// model.
func (p *Polyline) Clone(model *Model) Entity {
	c := &Polyline{
		flags:          p.flags,
		hasFlags:       p.hasFlags,
		elevation:      p.elevation,
		countM:         p.countM,
		countN:         p.countN,
		smoothM:        p.smoothM,
		smoothN:        p.smoothN,
		surfaceType:    p.surfaceType,
		startWidth:     p.startWidth,
		endWidth:       p.endWidth,
		pflags:         p.pflags,
		verticesFollow: p.verticesFollow,
	}
	p.cloneBase(&c.EntityBase, c, model)
	c.extrusion = p.extrusion
	c.thickness = p.thickness
	c.exFlags = p.exFlags
	cloneList := func(src []*Vertex) []*Vertex {
		if src == nil {
			return nil
		}
		dst := make([]*Vertex, len(src))
		for i, v := range src {
			dst[i] = v.Clone(model).(*Vertex)
		}
		return dst
	}
	c.coordVertices = cloneList(p.coordVertices)
	c.indexVertices = cloneList(p.indexVertices)
	c.frameVertices = cloneList(p.frameVertices)
	if p.seqend != nil {
		c.seqend = p.seqend.Clone(model)
	}
	return c
}
