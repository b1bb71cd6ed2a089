// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// MText attachment points (group code 71).
const (
	MTextAttachmentNone int16 = iota
	MTextAttachmentTopLeft
	MTextAttachmentTopCenter
	MTextAttachmentTopRight
	MTextAttachmentMiddleLeft
	MTextAttachmentMiddleCenter
	MTextAttachmentMiddleRight
	MTextAttachmentBottomLeft
	MTextAttachmentBottomCenter
	MTextAttachmentBottomRight
)

// mtextChunkSize is the payload size of one group code 3 record; the
// remainder goes on the final group code 1 record.
const mtextChunkSize = 250

// MText optional-field presence bits.
const (
	mtextFlagAttachment uint16 = 1 << iota
	mtextFlagDirection
	mtextFlagStyle
	mtextFlagXDir
	mtextFlagCharWidth
	mtextFlagCharHeight
	mtextFlagRotation
	mtextFlagSpacingStyle
	mtextFlagSpacingFactor
)

// MText is the MTEXT entity, a multi-line text block.
type MText struct {
	extrusionEntity
	origin        Vec3
	boxHeight     float64
	boxWidth      float64
	attachment    int16
	direction     int16
	style         string
	xdir          Vec3
	charWidth     float64
	charHeight    float64
	rotation      float64 // radians
	spacingStyle  int16
	spacingFactor float64
	text          string
	mflags        uint16
}

// NewMText returns an empty MTEXT entity.
func NewMText() *MText {
	m := &MText{}
	m.initExtrusion(m, "MTEXT")
	return m
}

// Origin returns the insertion point.
func (m *MText) Origin() Vec3 { return m.origin }

// SetOrigin sets the insertion point.
func (m *MText) SetOrigin(v Vec3) { m.origin = v }

// BoxHeight returns the nominal text height.
func (m *MText) BoxHeight() float64 { return m.boxHeight }

// SetBoxHeight sets the nominal text height.
func (m *MText) SetBoxHeight(h float64) { m.boxHeight = h }

// BoxWidth returns the reference column width.
func (m *MText) BoxWidth() float64 { return m.boxWidth }

// SetBoxWidth sets the reference column width.
func (m *MText) SetBoxWidth(w float64) { m.boxWidth = w }

// Attachment returns the attachment point.
func (m *MText) Attachment() int16 { return m.attachment }

// SetAttachment sets the attachment point.
func (m *MText) SetAttachment(a int16) {
	m.attachment = a
	m.mflags |= mtextFlagAttachment
}

// DrawingDirection returns the drawing direction.
func (m *MText) DrawingDirection() int16 { return m.direction }

// Style returns the text style name.
func (m *MText) Style() string { return m.style }

// XDirection returns the x-axis direction vector.
func (m *MText) XDirection() Vec3 { return m.xdir }

// Rotation returns the rotation angle in radians.
func (m *MText) Rotation() float64 { return m.rotation }

// SetRotation sets the rotation angle in radians.
func (m *MText) SetRotation(rad float64) {
	m.rotation = rad
	m.mflags |= mtextFlagRotation
}

// LineSpacingFactor returns the line spacing factor.
func (m *MText) LineSpacingFactor() float64 { return m.spacingFactor }

// TextString returns the full text payload, reassembled from its
// chunk records.
func (m *MText) TextString() string { return m.text }

// SetTextString sets the text payload.
func (m *MText) SetTextString(s string) { m.text = s }

// HandleRecord stores the mtext fields. Group code 3 records carry
// leading 250-byte chunks of the text; group code 1 carries the final
// chunk.
func (m *MText) HandleRecord(code int32, param Param) bool {
	switch code {
	case 1:
		m.text += paramString(param)
	case 3:
		m.text += paramString(param)
	case 10:
		m.origin.X = paramFloat(param)
	case 20:
		m.origin.Y = paramFloat(param)
	case 30:
		m.origin.Z = paramFloat(param)
	case 40:
		m.boxHeight = paramFloat(param)
	case 41:
		m.boxWidth = paramFloat(param)
	case 71:
		m.attachment = paramInt16(param)
		m.mflags |= mtextFlagAttachment
	case 72:
		m.direction = paramInt16(param)
		m.mflags |= mtextFlagDirection
	case 7:
		m.style = paramString(param)
		m.mflags |= mtextFlagStyle
	case 11:
		m.xdir.X = paramFloat(param)
		m.mflags |= mtextFlagXDir
	case 21:
		m.xdir.Y = paramFloat(param)
		m.mflags |= mtextFlagXDir
	case 31:
		m.xdir.Z = paramFloat(param)
		m.mflags |= mtextFlagXDir
	case 42:
		m.charWidth = paramFloat(param)
		m.mflags |= mtextFlagCharWidth
	case 43:
		m.charHeight = paramFloat(param)
		m.mflags |= mtextFlagCharHeight
	case 50:
		m.rotation = paramFloat(param)
		m.mflags |= mtextFlagRotation
	case 73:
		m.spacingStyle = paramInt16(param)
		m.mflags |= mtextFlagSpacingStyle
	case 44:
		m.spacingFactor = paramFloat(param)
		m.mflags |= mtextFlagSpacingFactor
	default:
		if m.handleExtrusionRecord(code, param) {
			return true
		}
		return m.handleCommonRecord(code, param)
	}
	return true
}

func (m *MText) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 1:
		_, final := m.textChunks()
		return final, true
	case 3:
		chunks, _ := m.textChunks()
		if index < len(chunks) {
			return chunks[index], true
		}
	case 10:
		return m.origin.X, true
	case 20:
		return m.origin.Y, true
	case 30:
		return m.origin.Z, true
	case 40:
		return m.boxHeight, true
	case 41:
		return m.boxWidth, true
	case 71:
		if m.mflags&mtextFlagAttachment != 0 {
			return m.attachment, true
		}
	case 72:
		if m.mflags&mtextFlagDirection != 0 {
			return m.direction, true
		}
	case 7:
		if m.mflags&mtextFlagStyle != 0 {
			return m.style, true
		}
	case 11:
		if m.mflags&mtextFlagXDir != 0 {
			return m.xdir.X, true
		}
	case 21:
		if m.mflags&mtextFlagXDir != 0 {
			return m.xdir.Y, true
		}
	case 31:
		if m.mflags&mtextFlagXDir != 0 {
			return m.xdir.Z, true
		}
	case 42:
		if m.mflags&mtextFlagCharWidth != 0 {
			return m.charWidth, true
		}
	case 43:
		if m.mflags&mtextFlagCharHeight != 0 {
			return m.charHeight, true
		}
	case 50:
		if m.mflags&mtextFlagRotation != 0 {
			return m.rotation, true
		}
	case 73:
		if m.mflags&mtextFlagSpacingStyle != 0 {
			return m.spacingStyle, true
		}
	case 44:
		if m.mflags&mtextFlagSpacingFactor != 0 {
			return m.spacingFactor, true
		}
	}
	return m.extrusionRecord(code)
}

// textChunks splits the payload into its leading group code 3 chunks
// and the final group code 1 chunk.
func (m *MText) textChunks() (chunks []string, final string) {
	s := m.text
	for len(s) > mtextChunkSize {
		chunks = append(chunks, s[:mtextChunkSize])
		s = s[mtextChunkSize:]
	}
	return chunks, s
}

// Write serializes the entity.
func (m *MText) Write(out *Output) error {
	if err := m.preWrite(out); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, m.origin.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, m.origin.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, m.origin.Z); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 40, m.boxHeight); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 41, m.boxWidth); err != nil {
		return err
	}
	if m.mflags&mtextFlagAttachment != 0 {
		if err := writeInt16Record(out, 71, m.attachment); err != nil {
			return err
		}
	}
	if m.mflags&mtextFlagDirection != 0 {
		if err := writeInt16Record(out, 72, m.direction); err != nil {
			return err
		}
	}
	chunks, final := m.textChunks()
	for _, c := range chunks {
		if err := writeStringRecord(out, 3, c); err != nil {
			return err
		}
	}
	if err := writeStringRecord(out, 1, final); err != nil {
		return err
	}
	if m.mflags&mtextFlagStyle != 0 {
		if err := writeStringRecord(out, 7, m.style); err != nil {
			return err
		}
	}
	if m.mflags&mtextFlagXDir != 0 {
		if err := writeDoubleRecord(out, 11, m.xdir.X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 21, m.xdir.Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 31, m.xdir.Z); err != nil {
			return err
		}
	}
	if m.mflags&mtextFlagCharWidth != 0 {
		if err := writeDoubleRecord(out, 42, m.charWidth); err != nil {
			return err
		}
	}
	if m.mflags&mtextFlagCharHeight != 0 {
		if err := writeDoubleRecord(out, 43, m.charHeight); err != nil {
			return err
		}
	}
	if m.mflags&mtextFlagRotation != 0 {
		if err := writeDoubleRecord(out, 50, m.rotation); err != nil {
			return err
		}
	}
	if m.mflags&mtextFlagSpacingStyle != 0 {
		if err := writeInt16Record(out, 73, m.spacingStyle); err != nil {
			return err
		}
	}
	if m.mflags&mtextFlagSpacingFactor != 0 {
		if err := writeDoubleRecord(out, 44, m.spacingFactor); err != nil {
			return err
		}
	}
	if err := m.writeExtrusion(out); err != nil {
		return err
	}
	return m.writeRecords(out, m)
}

// CountRecords returns the exact number of records Write emits.
func (m *MText) CountRecords() int {
	chunks, _ := m.textChunks()
	cnt := m.countCommonRecords() + 5 + 1 + len(chunks) +
		m.countExtrusion() + m.countWrittenRecords(m)
	for _, f := range []uint16{
		mtextFlagAttachment, mtextFlagDirection, mtextFlagStyle,
		mtextFlagCharWidth, mtextFlagCharHeight, mtextFlagRotation,
		mtextFlagSpacingStyle, mtextFlagSpacingFactor,
	} {
		if m.mflags&f != 0 {
			cnt++
		}
	}
	if m.mflags&mtextFlagXDir != 0 {
		cnt += 3
	}
	return cnt
}

// Clone copies the entity, rebinding its layer into model.
func (m *MText) Clone(model *Model) Entity {
	c := &MText{
		origin:        m.origin,
		boxHeight:     m.boxHeight,
		boxWidth:      m.boxWidth,
		attachment:    m.attachment,
		direction:     m.direction,
		style:         m.style,
		xdir:          m.xdir,
		charWidth:     m.charWidth,
		charHeight:    m.charHeight,
		rotation:      m.rotation,
		spacingStyle:  m.spacingStyle,
		spacingFactor: m.spacingFactor,
		text:          m.text,
		mflags:        m.mflags,
	}
	m.cloneBase(&c.EntityBase, c, model)
	c.extrusion = m.extrusion
	c.thickness = m.thickness
	c.exFlags = m.exFlags
	return c
}
