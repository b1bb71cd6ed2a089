// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Spline flag bits (group code 70).
const (
	SplineClosed   = 0x1
	SplinePeriodic = 0x2
	SplineRational = 0x4
	SplinePlanar   = 0x8
	SplineLinear   = 0x10
)

// Spline is the SPLINE entity, a NURBS curve defined by knots,
// weighted control points and optional fit points.
type Spline struct {
	extrusionEntity
	flags  int16
	degree int16

	knotTol  float64
	cpTol    float64
	fitTol   float64
	hasTols  uint8
	knots    []float64
	weights  []float64
	controls []Vec3
	fits     []Vec3
}

const (
	splineHasKnotTol uint8 = 1 << iota
	splineHasCpTol
	splineHasFitTol
)

// NewSpline returns an empty SPLINE entity.
func NewSpline() *Spline {
	s := &Spline{degree: 3}
	s.initExtrusion(s, "SPLINE")
	return s
}

// Flags returns the spline flags.
func (s *Spline) Flags() int16 { return s.flags }

// SetFlags sets the spline flags.
func (s *Spline) SetFlags(f int16) { s.flags = f }

// Degree returns the curve degree.
func (s *Spline) Degree() int16 { return s.degree }

// SetDegree sets the curve degree.
func (s *Spline) SetDegree(d int16) { s.degree = d }

// Knots returns the knot vector.
func (s *Spline) Knots() []float64 { return s.knots }

// SetKnots replaces the knot vector.
func (s *Spline) SetKnots(k []float64) { s.knots = append(s.knots[:0], k...) }

// Weights returns the control point weights. An empty slice means
// every weight is 1.
func (s *Spline) Weights() []float64 { return s.weights }

// ControlPoints returns the control points.
func (s *Spline) ControlPoints() []Vec3 { return s.controls }

// FitPoints returns the fit points.
func (s *Spline) FitPoints() []Vec3 { return s.fits }

// AppendControlPoint adds a control point with weight 1.
func (s *Spline) AppendControlPoint(p Vec3) {
	if len(s.weights) > 0 {
		s.weights = append(s.weights, 1)
	}
	s.controls = append(s.controls, p)
}

// hasWeights reports whether any weight differs from 1; an all-1
// weight stream is elided on write.
func (s *Spline) hasWeights() bool {
	for _, w := range s.weights {
		if w != 1 {
			return true
		}
	}
	return false
}

// HandleRecord stores the spline fields. The counter records (72/73/
// 74) only size the streams; the streams themselves arrive as
// repeated 40 (knots), 41 (weights), 10/20/30 (control points) and
// 11/21/31 (fit points) records.
func (s *Spline) HandleRecord(code int32, param Param) bool {
	switch code {
	case 70:
		s.flags = paramInt16(param)
	case 71:
		s.degree = paramInt16(param)
	case 72:
		if n := int(paramInt16(param)); n > 0 && n < 1<<20 && s.knots == nil {
			s.knots = make([]float64, 0, n)
		}
	case 73:
		if n := int(paramInt16(param)); n > 0 && n < 1<<20 && s.controls == nil {
			s.controls = make([]Vec3, 0, n)
		}
	case 74:
		if n := int(paramInt16(param)); n > 0 && n < 1<<20 && s.fits == nil {
			s.fits = make([]Vec3, 0, n)
		}
	case 42:
		s.knotTol = paramFloat(param)
		s.hasTols |= splineHasKnotTol
	case 43:
		s.cpTol = paramFloat(param)
		s.hasTols |= splineHasCpTol
	case 44:
		s.fitTol = paramFloat(param)
		s.hasTols |= splineHasFitTol
	case 40:
		s.knots = append(s.knots, paramFloat(param))
	case 41:
		s.weights = append(s.weights, paramFloat(param))
	case 10:
		s.controls = append(s.controls, Vec3{X: paramFloat(param)})
	case 20:
		if n := len(s.controls); n > 0 {
			s.controls[n-1].Y = paramFloat(param)
		}
	case 30:
		if n := len(s.controls); n > 0 {
			s.controls[n-1].Z = paramFloat(param)
		}
	case 11:
		s.fits = append(s.fits, Vec3{X: paramFloat(param)})
	case 21:
		if n := len(s.fits); n > 0 {
			s.fits[n-1].Y = paramFloat(param)
		}
	case 31:
		if n := len(s.fits); n > 0 {
			s.fits[n-1].Z = paramFloat(param)
		}
	default:
		if s.handleExtrusionRecord(code, param) {
			return true
		}
		return s.handleCommonRecord(code, param)
	}
	return true
}

func (s *Spline) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 70:
		return s.flags, true
	case 71:
		return s.degree, true
	case 72:
		return int16(len(s.knots)), true
	case 73:
		return int16(len(s.controls)), true
	case 74:
		return int16(len(s.fits)), true
	case 42:
		if s.hasTols&splineHasKnotTol != 0 {
			return s.knotTol, true
		}
	case 43:
		if s.hasTols&splineHasCpTol != 0 {
			return s.cpTol, true
		}
	case 44:
		if s.hasTols&splineHasFitTol != 0 {
			return s.fitTol, true
		}
	case 40:
		if index >= 0 && index < len(s.knots) {
			return s.knots[index], true
		}
	case 41:
		if index >= 0 && index < len(s.weights) {
			return s.weights[index], true
		}
	case 10:
		if index >= 0 && index < len(s.controls) {
			return s.controls[index].X, true
		}
	case 20:
		if index >= 0 && index < len(s.controls) {
			return s.controls[index].Y, true
		}
	case 30:
		if index >= 0 && index < len(s.controls) {
			return s.controls[index].Z, true
		}
	case 11:
		if index >= 0 && index < len(s.fits) {
			return s.fits[index].X, true
		}
	case 21:
		if index >= 0 && index < len(s.fits) {
			return s.fits[index].Y, true
		}
	case 31:
		if index >= 0 && index < len(s.fits) {
			return s.fits[index].Z, true
		}
	}
	return s.extrusionRecord(code)
}

// Write serializes the entity.
func (s *Spline) Write(out *Output) error {
	if err := s.preWrite(out); err != nil {
		return err
	}
	if err := writeInt16Record(out, 70, s.flags); err != nil {
		return err
	}
	if err := writeInt16Record(out, 71, s.degree); err != nil {
		return err
	}
	if err := writeInt16Record(out, 72, int16(len(s.knots))); err != nil {
		return err
	}
	if err := writeInt16Record(out, 73, int16(len(s.controls))); err != nil {
		return err
	}
	if err := writeInt16Record(out, 74, int16(len(s.fits))); err != nil {
		return err
	}
	if s.hasTols&splineHasKnotTol != 0 {
		if err := writeDoubleRecord(out, 42, s.knotTol); err != nil {
			return err
		}
	}
	if s.hasTols&splineHasCpTol != 0 {
		if err := writeDoubleRecord(out, 43, s.cpTol); err != nil {
			return err
		}
	}
	if s.hasTols&splineHasFitTol != 0 {
		if err := writeDoubleRecord(out, 44, s.fitTol); err != nil {
			return err
		}
	}
	for _, k := range s.knots {
		if err := writeDoubleRecord(out, 40, k); err != nil {
			return err
		}
	}
	if s.hasWeights() {
		for _, w := range s.weights {
			if err := writeDoubleRecord(out, 41, w); err != nil {
				return err
			}
		}
	}
	for _, c := range s.controls {
		if err := writeDoubleRecord(out, 10, c.X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 20, c.Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 30, c.Z); err != nil {
			return err
		}
	}
	for _, f := range s.fits {
		if err := writeDoubleRecord(out, 11, f.X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 21, f.Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 31, f.Z); err != nil {
			return err
		}
	}
	if err := s.writeExtrusion(out); err != nil {
		return err
	}
	return s.writeRecords(out, s)
}

// CountRecords returns the exact number of records Write emits.
func (s *Spline) CountRecords() int {
	cnt := s.countCommonRecords() + 5 + s.countExtrusion() + s.countWrittenRecords(s)
	if s.hasTols&splineHasKnotTol != 0 {
		cnt++
	}
	if s.hasTols&splineHasCpTol != 0 {
		cnt++
	}
	if s.hasTols&splineHasFitTol != 0 {
		cnt++
	}
	cnt += len(s.knots)
	if s.hasWeights() {
		cnt += len(s.weights)
	}
	cnt += 3 * len(s.controls)
	cnt += 3 * len(s.fits)
	return cnt
}

// Clone copies the entity, rebinding its layer into model.
func (s *Spline) Clone(model *Model) Entity {
	c := &Spline{
		flags:    s.flags,
		degree:   s.degree,
		knotTol:  s.knotTol,
		cpTol:    s.cpTol,
		fitTol:   s.fitTol,
		hasTols:  s.hasTols,
		knots:    append([]float64(nil), s.knots...),
		weights:  append([]float64(nil), s.weights...),
		controls: append([]Vec3(nil), s.controls...),
		fits:     append([]Vec3(nil), s.fits...),
	}
	s.cloneBase(&c.EntityBase, c, model)
	c.extrusion = s.extrusion
	c.thickness = s.thickness
	c.exFlags = s.exFlags
	return c
}
