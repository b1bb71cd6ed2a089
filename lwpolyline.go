// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// lwSeen bits track which vertex-scoped codes the current vertex has
// consumed; a repeat starts the next vertex.
const (
	lwSeenX uint8 = 1 << iota
	lwSeenY
	lwSeenStartWidth
	lwSeenEndWidth
	lwSeenBulge
)

type lwVertex struct {
	x, y       float64
	startWidth float64
	endWidth   float64
	bulge      float64
	seen       uint8
}

// LWPolyline is the LWPOLYLINE entity, a 2-D polyline compactly
// encoded as parallel coordinate arrays.
type LWPolyline struct {
	extrusionEntity
	numVertices   int32
	flags         int16
	hasFlags      bool
	constantWidth float64
	hasConstWidth bool
	elevation     float64
	hasElevation  bool
	verts         []lwVertex
	hasWidths     bool
	hasBulges     bool
}

// NewLWPolyline returns an empty LWPOLYLINE entity.
func NewLWPolyline() *LWPolyline {
	p := &LWPolyline{}
	p.initExtrusion(p, "LWPOLYLINE")
	return p
}

// NumVertices returns the number of vertices.
func (p *LWPolyline) NumVertices() int { return len(p.verts) }

// Flags returns the polyline flags; bit 0x1 closes the polyline.
func (p *LWPolyline) Flags() int16 { return p.flags }

// SetFlags sets the polyline flags.
func (p *LWPolyline) SetFlags(f int16) {
	p.flags = f
	p.hasFlags = true
}

// IsClosed reports whether the polyline is closed.
func (p *LWPolyline) IsClosed() bool { return p.flags&0x1 != 0 }

// Elevation returns the polyline elevation.
func (p *LWPolyline) Elevation() float64 { return p.elevation }

// Vertex returns the coordinates of vertex idx.
func (p *LWPolyline) Vertex(idx int) (x, y float64) {
	return p.verts[idx].x, p.verts[idx].y
}

// Bulge returns the bulge of vertex idx.
func (p *LWPolyline) Bulge(idx int) float64 { return p.verts[idx].bulge }

// Widths returns the start and end widths of vertex idx.
func (p *LWPolyline) Widths(idx int) (start, end float64) {
	return p.verts[idx].startWidth, p.verts[idx].endWidth
}

// AppendVertex adds a vertex.
func (p *LWPolyline) AppendVertex(x, y float64) {
	p.verts = append(p.verts, lwVertex{x: x, y: y, seen: lwSeenX | lwSeenY})
	p.numVertices = int32(len(p.verts))
}

// handleVertexScoped routes a vertex-scoped record into the current
// vertex, opening a new one when the code repeats.
func (p *LWPolyline) handleVertexScoped(bit uint8, set func(v *lwVertex)) {
	if len(p.verts) == 0 || p.verts[len(p.verts)-1].seen&bit != 0 {
		p.verts = append(p.verts, lwVertex{})
	}
	cur := &p.verts[len(p.verts)-1]
	cur.seen |= bit
	set(cur)
}

// HandleRecord stores the polyline fields and the per-vertex
// coordinate, width and bulge streams.
func (p *LWPolyline) HandleRecord(code int32, param Param) bool {
	switch code {
	case 90:
		p.numVertices = paramInt32(param)
		if p.verts == nil && p.numVertices > 0 && p.numVertices < 1<<20 {
			p.verts = make([]lwVertex, 0, p.numVertices)
		}
	case 70:
		p.flags = paramInt16(param)
		p.hasFlags = true
	case 43:
		p.constantWidth = paramFloat(param)
		p.hasConstWidth = true
	case 38:
		p.elevation = paramFloat(param)
		p.hasElevation = true
	case 10:
		p.handleVertexScoped(lwSeenX, func(v *lwVertex) { v.x = paramFloat(param) })
	case 20:
		p.handleVertexScoped(lwSeenY, func(v *lwVertex) { v.y = paramFloat(param) })
	case 40:
		p.hasWidths = true
		p.handleVertexScoped(lwSeenStartWidth, func(v *lwVertex) { v.startWidth = paramFloat(param) })
	case 41:
		p.hasWidths = true
		p.handleVertexScoped(lwSeenEndWidth, func(v *lwVertex) { v.endWidth = paramFloat(param) })
	case 42:
		p.hasBulges = true
		p.handleVertexScoped(lwSeenBulge, func(v *lwVertex) { v.bulge = paramFloat(param) })
	default:
		if p.handleExtrusionRecord(code, param) {
			return true
		}
		return p.handleCommonRecord(code, param)
	}
	return true
}

func (p *LWPolyline) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 90:
		return int32(len(p.verts)), true
	case 70:
		if p.hasFlags {
			return p.flags, true
		}
	case 43:
		if p.hasConstWidth {
			return p.constantWidth, true
		}
	case 38:
		if p.hasElevation {
			return p.elevation, true
		}
	case 10, 20, 40, 41, 42:
		if index >= 0 && index < len(p.verts) {
			v := p.verts[index]
			switch code {
			case 10:
				return v.x, true
			case 20:
				return v.y, true
			case 40:
				return v.startWidth, true
			case 41:
				return v.endWidth, true
			default:
				return v.bulge, true
			}
		}
	}
	return p.extrusionRecord(code)
}

// Write serializes the entity.
func (p *LWPolyline) Write(out *Output) error {
	if err := p.preWrite(out); err != nil {
		return err
	}
	if err := writeInt32Record(out, 90, int32(len(p.verts))); err != nil {
		return err
	}
	if p.hasFlags {
		if err := writeInt16Record(out, 70, p.flags); err != nil {
			return err
		}
	}
	if p.hasConstWidth {
		if err := writeDoubleRecord(out, 43, p.constantWidth); err != nil {
			return err
		}
	}
	if p.hasElevation {
		if err := writeDoubleRecord(out, 38, p.elevation); err != nil {
			return err
		}
	}
	for i := range p.verts {
		v := &p.verts[i]
		if err := writeDoubleRecord(out, 10, v.x); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 20, v.y); err != nil {
			return err
		}
		if p.hasWidths {
			if err := writeDoubleRecord(out, 40, v.startWidth); err != nil {
				return err
			}
			if err := writeDoubleRecord(out, 41, v.endWidth); err != nil {
				return err
			}
		}
		if p.hasBulges {
			if err := writeDoubleRecord(out, 42, v.bulge); err != nil {
				return err
			}
		}
	}
	if err := p.writeExtrusion(out); err != nil {
		return err
	}
	return p.writeRecords(out, p)
}

// CountRecords returns the exact number of records Write emits.
func (p *LWPolyline) CountRecords() int {
	cnt := p.countCommonRecords() + 1 + p.countExtrusion() + p.countWrittenRecords(p)
	if p.hasFlags {
		cnt++
	}
	if p.hasConstWidth {
		cnt++
	}
	if p.hasElevation {
		cnt++
	}
	per := 2
	if p.hasWidths {
		per += 2
	}
	if p.hasBulges {
		per++
	}
	return cnt + per*len(p.verts)
}

// ExtractGeometry produces the vertices as a polyline, closed when
// the closed flag is set.
func (p *LWPolyline) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Extrusion = p.extrusion
	geom.Thickness = p.thickness
	for i := range p.verts {
		geom.Vertices = append(geom.Vertices, Vec3{p.verts[i].x, p.verts[i].y, p.elevation})
		geom.Indices = append(geom.Indices, i)
	}
	if p.IsClosed() && len(p.verts) > 2 {
		geom.Indices = append(geom.Indices, 0)
	}
	return GeometryLines
}

// Clone copies the entity, rebinding its layer into model.
func (p *LWPolyline) Clone(model *Model) Entity {
	c := &LWPolyline{
		numVertices:   p.numVertices,
		flags:         p.flags,
		hasFlags:      p.hasFlags,
		constantWidth: p.constantWidth,
		hasConstWidth: p.hasConstWidth,
		elevation:     p.elevation,
		hasElevation:  p.hasElevation,
		verts:         append([]lwVertex(nil), p.verts...),
		hasWidths:     p.hasWidths,
		hasBulges:     p.hasBulges,
	}
	p.cloneBase(&c.EntityBase, c, model)
	c.extrusion = p.extrusion
	c.thickness = p.thickness
	c.exFlags = p.exFlags
	return c
}
