// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	dime "github.com/whpark/dime"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <in.dxf> <out.dxf>",
	Short: "Round-trip a DXF file through the model",
	Long: `Parse a drawing and serialize it again. Binary input becomes ASCII
output; record order and unknown records are preserved.`,
	Args: cobra.ExactArgs(2),
	RunE: runRewrite,
}

func runRewrite(cmd *cobra.Command, args []string) error {
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	phase := " reading " + args[0]
	spin.Suffix = phase
	spin.Start()
	defer spin.Stop()

	progress := func(p float32) bool {
		spin.Suffix = fmt.Sprintf("%s %3.0f%%", phase, p*100)
		return true
	}

	in, err := dime.NewInput(args[0])
	if err != nil {
		return fmt.Errorf("failed to open DXF: %w", err)
	}
	defer in.Close()

	model := dime.NewModel(&dime.Options{Progress: progress})
	if err := model.Read(in); err != nil {
		return err
	}

	phase = " writing " + args[1]
	spin.Suffix = phase
	out, err := dime.NewOutputFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := model.Write(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	spin.Stop()
	fmt.Fprintf(output, "%s: %d records written\n", args[1], out.RecordCount())
	return nil
}
