// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	dime "github.com/whpark/dime"
)

var infoCmd = &cobra.Command{
	Use:   "info <dxf-file>",
	Short: "Display DXF file information",
	Long:  `Display general information about a DXF file: dialect, detected MIME type, drawing version, sections and record counts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to sniff %s: %w", path, err)
	}

	in, err := dime.NewInput(path)
	if err != nil {
		return fmt.Errorf("failed to open DXF: %w", err)
	}
	defer in.Close()

	model := dime.NewModel(&dime.Options{})
	if err := model.Read(in); err != nil {
		return err
	}

	dialect := "ASCII"
	if in.IsBinary() {
		dialect = "binary"
	}
	fmt.Fprintf(output, "DXF File: %s\n", path)
	fmt.Fprintf(output, "MIME Type: %s\n", mtype.String())
	fmt.Fprintf(output, "Dialect: %s\n", dialect)
	if v := model.DxfVersion(); v != "" {
		fmt.Fprintf(output, "Drawing Version: %s\n", v)
	}
	fmt.Fprintf(output, "Library: %s\n", dime.GetVersionString())
	fmt.Fprintf(output, "Records: %d\n", model.CountRecords())
	fmt.Fprintf(output, "Layers: %d\n", model.NumLayers())
	for _, c := range model.HeaderComments() {
		fmt.Fprintf(output, "Comment: %s\n", c)
	}
	fmt.Fprintf(output, "Sections:\n")
	for _, s := range model.Sections() {
		fmt.Fprintf(output, "  %-10s %6d records\n", s.SectionName(), s.CountRecords())
	}
	return nil
}
