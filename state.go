// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Traversal flags carried by State.
const (
	// TraversePolylineVertices also delivers the vertices of every
	// POLYLINE to the callback.
	TraversePolylineVertices = 0x1
	// ExplodeInserts delivers the children of the referenced block,
	// transformed per row and column, instead of the INSERT itself.
	ExplodeInserts = 0x2
)

// State accumulates the world transform and flags while walking the
// entity tree through nested INSERTs.
type State struct {
	matrix Matrix4
	flags  int

	// currentInsert is the INSERT being exploded, if any. Callbacks
	// can use it to recover the instance being expanded.
	currentInsert *Insert
}

// NewState returns a State with the identity transform and the given
// flags.
func NewState(flags int) *State {
	return &State{matrix: IdentityMatrix(), flags: flags}
}

// Matrix returns the accumulated transform.
func (s *State) Matrix() Matrix4 { return s.matrix }

// Flags returns the traversal flags.
func (s *State) Flags() int { return s.flags }

// CurrentInsert returns the INSERT currently being exploded, or nil.
func (s *State) CurrentInsert() *Insert { return s.currentInsert }

// push returns a copy of s with the transform replaced.
func (s *State) push(m Matrix4) *State {
	c := *s
	c.matrix = m
	return &c
}

// TraverseCallback visits one entity under the accumulated transform.
// Returning false stops the traversal.
type TraverseCallback func(state *State, e Entity) bool
