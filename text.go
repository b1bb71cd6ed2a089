// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Text generation flag bits (group code 71).
const (
	TextFlipX = 0x2
	TextFlipY = 0x4
)

// Text optional-field presence bits.
const (
	textFlagSecond uint8 = 1 << iota
	textFlagWScale
	textFlagRotation
	textFlagGeneration
	textFlagHJust
	textFlagVJust
)

// Text is the TEXT entity, a single line of text.
type Text struct {
	extrusionEntity
	origin     Vec3
	second     Vec3
	height     float64
	width      float64
	wScale     float64
	rotation   float64
	generation int16
	hJust      int16
	vJust      int16
	text       string
	tflags     uint8
}

// NewText returns an empty TEXT entity.
func NewText() *Text {
	t := &Text{}
	t.initExtrusion(t, "TEXT")
	return t
}

// Origin returns the first alignment point.
func (t *Text) Origin() Vec3 { return t.origin }

// SetOrigin sets the first alignment point.
func (t *Text) SetOrigin(v Vec3) { t.origin = v }

// SecondAlignmentPoint returns the optional second alignment point.
func (t *Text) SecondAlignmentPoint() (Vec3, bool) {
	return t.second, t.tflags&textFlagSecond != 0
}

// SetSecondAlignmentPoint sets the second alignment point.
func (t *Text) SetSecondAlignmentPoint(v Vec3) {
	t.second = v
	t.tflags |= textFlagSecond
}

// Height returns the text height.
func (t *Text) Height() float64 { return t.height }

// SetHeight sets the text height and recomputes the effective width.
func (t *Text) SetHeight(h float64) {
	t.height = h
	t.recomputeWidth()
}

// Width returns the effective text width.
func (t *Text) Width() float64 { return t.width }

// WidthScale returns the relative width scale factor, 1 by default.
func (t *Text) WidthScale() float64 {
	if t.wScale == 0 {
		return 1
	}
	return t.wScale
}

// SetWidthScale sets the relative width scale factor.
func (t *Text) SetWidthScale(s float64) {
	t.wScale = s
	t.tflags |= textFlagWScale
	t.recomputeWidth()
}

// Rotation returns the rotation angle in degrees.
func (t *Text) Rotation() float64 { return t.rotation }

// SetRotation sets the rotation angle in degrees.
func (t *Text) SetRotation(deg float64) {
	t.rotation = deg
	t.tflags |= textFlagRotation
}

// Generation returns the text generation flags (TextFlipX, TextFlipY).
func (t *Text) Generation() int16 { return t.generation }

// HorizontalJustification returns the horizontal justification.
func (t *Text) HorizontalJustification() int16 { return t.hJust }

// VerticalJustification returns the vertical justification.
func (t *Text) VerticalJustification() int16 { return t.vJust }

// TextString returns the text payload.
func (t *Text) TextString() string { return t.text }

// SetTextString sets the text payload and recomputes the effective
// width.
func (t *Text) SetTextString(s string) {
	t.text = s
	t.recomputeWidth()
}

// recomputeWidth applies the 0.82 average glyph aspect heuristic.
func (t *Text) recomputeWidth() {
	t.width = t.height * 0.82 * float64(len(t.text)) * t.WidthScale()
}

// HandleRecord stores the text fields.
func (t *Text) HandleRecord(code int32, param Param) bool {
	switch code {
	case 1:
		t.text = paramString(param)
		t.recomputeWidth()
	case 10:
		t.origin.X = paramFloat(param)
	case 20:
		t.origin.Y = paramFloat(param)
	case 30:
		t.origin.Z = paramFloat(param)
	case 11:
		t.second.X = paramFloat(param)
		t.tflags |= textFlagSecond
	case 21:
		t.second.Y = paramFloat(param)
		t.tflags |= textFlagSecond
	case 31:
		t.second.Z = paramFloat(param)
		t.tflags |= textFlagSecond
	case 40:
		t.height = paramFloat(param)
		t.recomputeWidth()
	case 41:
		t.wScale = paramFloat(param)
		t.tflags |= textFlagWScale
		t.recomputeWidth()
	case 50:
		t.rotation = paramFloat(param)
		t.tflags |= textFlagRotation
	case 71:
		t.generation = paramInt16(param)
		t.tflags |= textFlagGeneration
	case 72:
		t.hJust = paramInt16(param)
		t.tflags |= textFlagHJust
	case 73:
		t.vJust = paramInt16(param)
		t.tflags |= textFlagVJust
	default:
		if t.handleExtrusionRecord(code, param) {
			return true
		}
		return t.handleCommonRecord(code, param)
	}
	return true
}

func (t *Text) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 1:
		return t.text, true
	case 10:
		return t.origin.X, true
	case 20:
		return t.origin.Y, true
	case 30:
		return t.origin.Z, true
	case 11:
		if t.tflags&textFlagSecond != 0 {
			return t.second.X, true
		}
	case 21:
		if t.tflags&textFlagSecond != 0 {
			return t.second.Y, true
		}
	case 31:
		if t.tflags&textFlagSecond != 0 {
			return t.second.Z, true
		}
	case 40:
		return t.height, true
	case 41:
		if t.tflags&textFlagWScale != 0 {
			return t.wScale, true
		}
	case 50:
		if t.tflags&textFlagRotation != 0 {
			return t.rotation, true
		}
	case 71:
		if t.tflags&textFlagGeneration != 0 {
			return t.generation, true
		}
	case 72:
		if t.tflags&textFlagHJust != 0 {
			return t.hJust, true
		}
	case 73:
		if t.tflags&textFlagVJust != 0 {
			return t.vJust, true
		}
	}
	return t.extrusionRecord(code)
}

// Write serializes the entity.
func (t *Text) Write(out *Output) error {
	if err := t.preWrite(out); err != nil {
		return err
	}
	if err := writeStringRecord(out, 1, t.text); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, t.origin.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, t.origin.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, t.origin.Z); err != nil {
		return err
	}
	if t.tflags&textFlagSecond != 0 {
		if err := writeDoubleRecord(out, 11, t.second.X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 21, t.second.Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 31, t.second.Z); err != nil {
			return err
		}
	}
	if err := writeDoubleRecord(out, 40, t.height); err != nil {
		return err
	}
	if t.tflags&textFlagWScale != 0 {
		if err := writeDoubleRecord(out, 41, t.wScale); err != nil {
			return err
		}
	}
	if t.tflags&textFlagRotation != 0 {
		if err := writeDoubleRecord(out, 50, t.rotation); err != nil {
			return err
		}
	}
	if t.tflags&textFlagGeneration != 0 {
		if err := writeInt16Record(out, 71, t.generation); err != nil {
			return err
		}
	}
	if t.tflags&textFlagHJust != 0 {
		if err := writeInt16Record(out, 72, t.hJust); err != nil {
			return err
		}
	}
	if t.tflags&textFlagVJust != 0 {
		if err := writeInt16Record(out, 73, t.vJust); err != nil {
			return err
		}
	}
	if err := t.writeExtrusion(out); err != nil {
		return err
	}
	return t.writeRecords(out, t)
}

// CountRecords returns the exact number of records Write emits.
func (t *Text) CountRecords() int {
	cnt := t.countCommonRecords() + 4 + t.countExtrusion() + t.countWrittenRecords(t)
	if t.tflags&textFlagSecond != 0 {
		cnt += 3
	}
	if t.tflags&textFlagWScale != 0 {
		cnt++
	}
	if t.tflags&textFlagRotation != 0 {
		cnt++
	}
	if t.tflags&textFlagGeneration != 0 {
		cnt++
	}
	if t.tflags&textFlagHJust != 0 {
		cnt++
	}
	if t.tflags&textFlagVJust != 0 {
		cnt++
	}
	return cnt
}

// Clone copies the entity, rebinding its layer into model.
func (t *Text) Clone(model *Model) Entity {
	c := &Text{
		origin:     t.origin,
		second:     t.second,
		height:     t.height,
		width:      t.width,
		wScale:     t.wScale,
		rotation:   t.rotation,
		generation: t.generation,
		hJust:      t.hJust,
		vJust:      t.vJust,
		text:       t.text,
		tflags:     t.tflags,
	}
	t.cloneBase(&c.EntityBase, c, model)
	c.extrusion = t.extrusion
	c.thickness = t.thickness
	c.exFlags = t.exFlags
	return c
}
