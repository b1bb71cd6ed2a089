// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "testing"

const insertDXF = `0
SECTION
2
BLOCKS
0
BLOCK
2
B1
10
1.0
20
2.0
30
3.0
0
POINT
10
0.0
20
0.0
30
0.0
0
ENDBLK
0
ENDSEC
0
SECTION
2
ENTITIES
0
INSERT
2
B1
10
10.0
20
10.0
30
0.0
41
1.0
42
1.0
43
1.0
50
0.0
0
ENDSEC
0
EOF
`

func TestInsertResolution(t *testing.T) {
	m := readModel(t, insertDXF)

	ins, ok := m.Entities()[0].(*Insert)
	if !ok {
		t.Fatalf("entity is %T, want *Insert", m.Entities()[0])
	}
	if ins.BlockName() != "B1" {
		t.Errorf("BlockName() = %q", ins.BlockName())
	}
	b := m.FindBlock("B1")
	if b == nil {
		t.Fatalf("FindBlock(B1) = nil")
	}
	if ins.Block() != b {
		t.Errorf("Insert block reference not resolved into the model's block map")
	}
	if got := b.BasePoint(); got != (Vec3{1, 2, 3}) {
		t.Errorf("BasePoint() = %v", got)
	}
}

func TestInsertExplodeTransform(t *testing.T) {
	m := readModel(t, insertDXF)

	var visited []Vec3
	ok := m.TraverseEntities(func(state *State, e Entity) bool {
		p, isPoint := e.(*Point)
		if !isPoint {
			t.Errorf("callback got %s, want POINT", e.EntityName())
			return false
		}
		visited = append(visited, state.Matrix().Transform(p.Coords()))
		return true
	}, false, true, false)
	if !ok {
		t.Fatalf("traversal stopped early")
	}
	if len(visited) != 1 {
		t.Fatalf("callback invoked %d times, want 1", len(visited))
	}
	// T(10,10,0) . T(-1,-2,-3) maps the origin to (9,8,-3).
	if !vecNear(visited[0], Vec3{9, 8, -3}) {
		t.Errorf("exploded point at %v, want (9,8,-3)", visited[0])
	}
}

func TestInsertWholeWhenNotExploding(t *testing.T) {
	m := readModel(t, insertDXF)

	var names []string
	m.TraverseEntities(func(state *State, e Entity) bool {
		names = append(names, e.EntityName())
		return true
	}, false, false, false)
	if len(names) != 1 || names[0] != "INSERT" {
		t.Errorf("visited %v, want [INSERT]", names)
	}
}

func TestInsertRowsAndColumns(t *testing.T) {
	b := NewBlock()
	b.SetName("GRID")
	p := NewPoint()
	b.InsertEntity(p, -1)

	ins := NewInsert()
	ins.SetBlock(b)
	ins.SetInsertionPoint(Vec3{0, 0, 0})
	ins.rowCount = 2
	ins.colCount = 3
	ins.rowSpacing = 10
	ins.colSpacing = 5

	var visited []Vec3
	state := NewState(ExplodeInserts)
	ins.Traverse(state, func(s *State, e Entity) bool {
		visited = append(visited, s.Matrix().Transform(Vec3{}))
		return true
	})
	if len(visited) != 6 {
		t.Fatalf("visited %d instances, want 6", len(visited))
	}
	if !vecNear(visited[0], Vec3{0, 0, 0}) {
		t.Errorf("first instance at %v", visited[0])
	}
	if !vecNear(visited[len(visited)-1], Vec3{10, 10, 0}) {
		t.Errorf("last instance at %v, want (10,10,0)", visited[len(visited)-1])
	}
}

func TestInsertUnresolvedBlockStillWrites(t *testing.T) {
	src := `0
SECTION
2
ENTITIES
0
INSERT
2
MISSING
10
0.0
20
0.0
30
0.0
0
ENDSEC
0
EOF
`
	m := readModel(t, src)
	ins := m.Entities()[0].(*Insert)
	if ins.Block() != nil {
		t.Errorf("Block() = %v for a missing block, want nil", ins.Block())
	}
	// Resolution affects traversal only; the serialized form is the
	// same either way.
	s := writeModel(t, m)
	m2 := readModel(t, s)
	if s2 := writeModel(t, m2); s2 != s {
		t.Errorf("unresolved insert round trip not stable")
	}
}

func TestBlockTraversalOrder(t *testing.T) {
	m := readModel(t, insertDXF)

	var names []string
	m.TraverseEntities(func(state *State, e Entity) bool {
		names = append(names, e.EntityName())
		return true
	}, true, false, false)
	want := []string{"BLOCK", "POINT", "ENDBLK", "INSERT"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("visited %v, want %v", names, want)
		}
	}
}
