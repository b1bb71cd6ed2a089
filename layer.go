// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// DefaultLayerName names the sentinel layer entities fall back to
// when the file never mentions one.
const DefaultLayerName = "Default DIME layer"

// Layer is a drawing layer. Layers are owned by the Model; entities
// hold non-owning references.
type Layer struct {
	name        string
	num         int
	colorNumber int16
	flags       int16
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Number returns the layer id. The sentinel default layer has id 0;
// real layers are numbered from 1 in registration order.
func (l *Layer) Number() int { return l.num }

// ColorNumber returns the layer color.
func (l *Layer) ColorNumber() int16 { return l.colorNumber }

// SetColorNumber sets the layer color.
func (l *Layer) SetColorNumber(c int16) { l.colorNumber = c }

// Flags returns the layer flags.
func (l *Layer) Flags() int16 { return l.flags }

// SetFlags sets the layer flags.
func (l *Layer) SetFlags(f int16) { l.flags = f }

var defaultLayer = &Layer{name: DefaultLayerName, num: 0, colorNumber: 7}

// DefaultLayer returns the sentinel layer with id 0.
func DefaultLayer() *Layer { return defaultLayer }
