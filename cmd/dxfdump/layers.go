// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dime "github.com/whpark/dime"
)

var layersCmd = &cobra.Command{
	Use:   "layers <dxf-file>",
	Short: "List the layers of a DXF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayers,
}

func runLayers(cmd *cobra.Command, args []string) error {
	model, err := loadModel(args[0])
	if err != nil {
		return err
	}
	for i := 0; i < model.NumLayers(); i++ {
		l := model.GetLayerByIndex(i)
		fmt.Fprintf(output, "%3d %-24q color=%4d flags=%d\n",
			l.Number(), l.Name(), l.ColorNumber(), l.Flags())
	}
	return nil
}

var blocksCmd = &cobra.Command{
	Use:   "blocks <dxf-file>",
	Short: "List the block definitions of a DXF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) error {
	model, err := loadModel(args[0])
	if err != nil {
		return err
	}
	bs, _ := model.FindSection(dime.SectionBlocks).(*dime.BlocksSection)
	if bs == nil {
		fmt.Fprintln(output, "no BLOCKS section")
		return nil
	}
	for _, b := range bs.Blocks() {
		fmt.Fprintf(output, "%-24q base=%v entities=%d\n",
			b.Name(), b.BasePoint(), b.NumEntities())
	}
	return nil
}
