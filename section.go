// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "fmt"

// Section names.
const (
	SectionHeader   = "HEADER"
	SectionClasses  = "CLASSES"
	SectionTables   = "TABLES"
	SectionBlocks   = "BLOCKS"
	SectionEntities = "ENTITIES"
	SectionObjects  = "OBJECTS"
)

// Section is one SECTION/ENDSEC block of a drawing. The Model writes
// the opening 0/SECTION record; the section writes its name record,
// its body and the closing 0/ENDSEC record.
type Section interface {
	// SectionName returns the section name.
	SectionName() string
	// Read parses the section body up to and including ENDSEC.
	Read(in *Input) error
	// Write serializes the name record, the body and ENDSEC.
	Write(out *Output) error
	// CountRecords returns the exact number of records Write emits.
	CountRecords() int
}

// createSection builds the section parser for a section name.
// Unrecognized names produce an UnknownSection retaining the raw
// records.
func createSection(name string) Section {
	switch name {
	case SectionHeader:
		return NewHeaderSection()
	case SectionClasses:
		return NewClassesSection()
	case SectionTables:
		return NewTablesSection()
	case SectionBlocks:
		return NewBlocksSection()
	case SectionEntities:
		return NewEntitiesSection()
	case SectionObjects:
		return NewObjectsSection()
	default:
		return NewUnknownSection(name)
	}
}

// readSectionItems loops over the 0/<name> groups of a section body
// and hands each name to item until ENDSEC.
func readSectionItems(in *Input, item func(name string) error) error {
	for {
		code, err := in.ReadGroupCode()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnterminatedSection, err)
		}
		if code != 0 {
			return fmt.Errorf("%w: expected 0, got %d", ErrUnexpectedGroupCode, code)
		}
		name, err := in.ReadString()
		if err != nil {
			return err
		}
		if name == "ENDSEC" {
			return nil
		}
		if err := item(name); err != nil {
			return err
		}
	}
}

func writeSectionHead(out *Output, name string) error {
	return writeStringRecord(out, 2, name)
}

func writeSectionTail(out *Output) error {
	return writeStringRecord(out, 0, "ENDSEC")
}
