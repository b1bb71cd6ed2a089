// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dime "github.com/whpark/dime"
)

var (
	explodeInserts   bool
	traverseBlocks   bool
	traverseVertices bool
)

var entitiesCmd = &cobra.Command{
	Use:   "entities <dxf-file>",
	Short: "List the entities of a DXF file",
	Long:  `Walk the entity tree and print one line per entity, with its layer, color and extracted geometry type.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEntities,
}

func init() {
	entitiesCmd.Flags().BoolVar(&explodeInserts, "explode", false, "expand INSERT entities through their blocks")
	entitiesCmd.Flags().BoolVar(&traverseBlocks, "blocks", false, "also walk the BLOCKS section")
	entitiesCmd.Flags().BoolVar(&traverseVertices, "vertices", false, "also deliver POLYLINE vertices")
}

func runEntities(cmd *cobra.Command, args []string) error {
	model, err := loadModel(args[0])
	if err != nil {
		return err
	}

	params := model.TessellationParams()
	count := 0
	var geom dime.Geometry
	model.TraverseEntities(func(state *dime.State, e dime.Entity) bool {
		count++
		kind := e.ExtractGeometry(&geom, params)
		fmt.Fprintf(output, "%-12s layer=%-16q color=%4d geometry=%-8s %s\n",
			e.EntityName(), e.Layer().Name(), e.ColorNumber(), kind, describeEntity(e))
		return true
	}, traverseBlocks, explodeInserts, traverseVertices)
	fmt.Fprintf(output, "%d entities\n", count)
	return nil
}

// describeEntity returns a short per-variant summary.
func describeEntity(e dime.Entity) string {
	switch v := e.(type) {
	case *dime.Line:
		return fmt.Sprintf("from=%v to=%v", v.Vertex(0), v.Vertex(1))
	case *dime.Point:
		return fmt.Sprintf("at=%v", v.Coords())
	case *dime.Circle:
		return fmt.Sprintf("center=%v r=%g", v.Center(), v.Radius())
	case *dime.Arc:
		return fmt.Sprintf("center=%v r=%g sweep=%g", v.Center(), v.Radius(), v.Sweep())
	case *dime.Text:
		return fmt.Sprintf("text=%q", dime.UnescapeUnicode(v.TextString()))
	case *dime.MText:
		return fmt.Sprintf("text=%q", dime.UnescapeUnicode(v.TextString()))
	case *dime.Insert:
		resolved := v.Block() != nil
		return fmt.Sprintf("block=%q resolved=%t at=%v", v.BlockName(), resolved, v.InsertionPoint())
	case *dime.Polyline:
		return fmt.Sprintf("vertices=%d", len(v.CoordVertices()))
	case *dime.LWPolyline:
		return fmt.Sprintf("vertices=%d closed=%t", v.NumVertices(), v.IsClosed())
	case *dime.Block:
		return fmt.Sprintf("name=%q entities=%d", v.Name(), v.NumEntities())
	default:
		if h := e.Handle(); h != "" {
			return "handle=" + h
		}
		return ""
	}
}

func loadModel(path string) (*dime.Model, error) {
	in, err := dime.NewInput(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DXF: %w", err)
	}
	defer in.Close()

	model := dime.NewModel(&dime.Options{})
	if err := model.Read(in); err != nil {
		return nil, err
	}
	return model, nil
}
