// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "fmt"

// ClassesSection is the CLASSES section, a list of CLASS groups.
type ClassesSection struct {
	classes []*Class
}

// NewClassesSection returns an empty CLASSES section.
func NewClassesSection() *ClassesSection {
	return &ClassesSection{}
}

// SectionName returns "CLASSES".
func (s *ClassesSection) SectionName() string { return SectionClasses }

// Classes returns the class groups.
func (s *ClassesSection) Classes() []*Class { return s.classes }

// Read parses the section body up to ENDSEC.
func (s *ClassesSection) Read(in *Input) error {
	return readSectionItems(in, func(name string) error {
		if name != "CLASS" {
			return fmt.Errorf("%w: 0 %s in CLASSES", ErrUnexpectedRecord, name)
		}
		c := NewClass()
		if err := c.Read(in); err != nil {
			return err
		}
		s.classes = append(s.classes, c)
		return nil
	})
}

// Write serializes the section.
func (s *ClassesSection) Write(out *Output) error {
	if err := writeSectionHead(out, SectionClasses); err != nil {
		return err
	}
	for _, c := range s.classes {
		if err := c.Write(out); err != nil {
			return err
		}
	}
	return writeSectionTail(out)
}

// CountRecords returns the exact number of records Write emits.
func (s *ClassesSection) CountRecords() int {
	cnt := 2
	for _, c := range s.classes {
		cnt += c.CountRecords()
	}
	return cnt
}

// TablesSection is the TABLES section, a list of TABLE blocks.
type TablesSection struct {
	tables []*Table
}

// NewTablesSection returns an empty TABLES section.
func NewTablesSection() *TablesSection {
	return &TablesSection{}
}

// SectionName returns "TABLES".
func (s *TablesSection) SectionName() string { return SectionTables }

// Tables returns the tables.
func (s *TablesSection) Tables() []*Table { return s.tables }

// Table returns the table of the given kind, or nil.
func (s *TablesSection) Table(name string) *Table {
	for _, t := range s.tables {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Read parses the section body up to ENDSEC.
func (s *TablesSection) Read(in *Input) error {
	return readSectionItems(in, func(name string) error {
		if name != "TABLE" {
			return fmt.Errorf("%w: 0 %s in TABLES", ErrUnexpectedRecord, name)
		}
		t := NewTable()
		if err := t.Read(in); err != nil {
			return err
		}
		s.tables = append(s.tables, t)
		return nil
	})
}

// Write serializes the section.
func (s *TablesSection) Write(out *Output) error {
	if err := writeSectionHead(out, SectionTables); err != nil {
		return err
	}
	for _, t := range s.tables {
		if err := t.Write(out); err != nil {
			return err
		}
	}
	return writeSectionTail(out)
}

// CountRecords returns the exact number of records Write emits.
func (s *TablesSection) CountRecords() int {
	cnt := 2
	for _, t := range s.tables {
		cnt += t.CountRecords()
	}
	return cnt
}

// BlocksSection is the BLOCKS section, a list of BLOCK definitions.
// Blocks register themselves in the model's block dictionary as they
// are read.
type BlocksSection struct {
	blocks []*Block
}

// NewBlocksSection returns an empty BLOCKS section.
func NewBlocksSection() *BlocksSection {
	return &BlocksSection{}
}

// SectionName returns "BLOCKS".
func (s *BlocksSection) SectionName() string { return SectionBlocks }

// Blocks returns the block definitions.
func (s *BlocksSection) Blocks() []*Block { return s.blocks }

// AppendBlock adds a block definition.
func (s *BlocksSection) AppendBlock(b *Block) {
	s.blocks = append(s.blocks, b)
}

// Read parses the section body up to ENDSEC.
func (s *BlocksSection) Read(in *Input) error {
	return readSectionItems(in, func(name string) error {
		if name != "BLOCK" {
			return fmt.Errorf("%w: 0 %s in BLOCKS", ErrUnexpectedRecord, name)
		}
		b := NewBlock()
		if err := b.Read(in); err != nil {
			return err
		}
		s.blocks = append(s.blocks, b)
		if in.model != nil {
			if !in.model.AddBlock(b) {
				in.model.logger.Warnf("duplicate block name %q", b.Name())
			}
		}
		return nil
	})
}

// fixReferences resolves INSERTs inside block bodies.
func (s *BlocksSection) fixReferences(model *Model) {
	for _, b := range s.blocks {
		b.fixReferences(model)
	}
}

// Write serializes the section.
func (s *BlocksSection) Write(out *Output) error {
	if err := writeSectionHead(out, SectionBlocks); err != nil {
		return err
	}
	for _, b := range s.blocks {
		if b.IsDeleted() {
			continue
		}
		if err := b.Write(out); err != nil {
			return err
		}
	}
	return writeSectionTail(out)
}

// CountRecords returns the exact number of records Write emits.
func (s *BlocksSection) CountRecords() int {
	cnt := 2
	for _, b := range s.blocks {
		if !b.IsDeleted() {
			cnt += b.CountRecords()
		}
	}
	return cnt
}

// EntitiesSection is the ENTITIES section, the drawing's top level
// entity list.
type EntitiesSection struct {
	entities []Entity
}

// NewEntitiesSection returns an empty ENTITIES section.
func NewEntitiesSection() *EntitiesSection {
	return &EntitiesSection{}
}

// SectionName returns "ENTITIES".
func (s *EntitiesSection) SectionName() string { return SectionEntities }

// Entities returns the entity list.
func (s *EntitiesSection) Entities() []Entity { return s.entities }

// AppendEntity adds an entity.
func (s *EntitiesSection) AppendEntity(e Entity) {
	s.entities = append(s.entities, e)
}

// Read parses the section body up to ENDSEC.
func (s *EntitiesSection) Read(in *Input) error {
	return readSectionItems(in, func(name string) error {
		e := CreateEntity(name)
		if err := e.Read(in); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.entities = append(s.entities, e)
		return nil
	})
}

// fixReferences resolves the section's INSERTs.
func (s *EntitiesSection) fixReferences(model *Model) {
	for _, e := range s.entities {
		if ins, ok := e.(*Insert); ok {
			ins.fixReferences(model)
		}
	}
}

// Write serializes the section, skipping deleted entities.
func (s *EntitiesSection) Write(out *Output) error {
	if err := writeSectionHead(out, SectionEntities); err != nil {
		return err
	}
	for _, e := range s.entities {
		if e.IsDeleted() {
			continue
		}
		if err := e.Write(out); err != nil {
			return err
		}
	}
	return writeSectionTail(out)
}

// CountRecords returns the exact number of records Write emits.
func (s *EntitiesSection) CountRecords() int {
	cnt := 2
	for _, e := range s.entities {
		if !e.IsDeleted() {
			cnt += e.CountRecords()
		}
	}
	return cnt
}

// ObjectsSection is the OBJECTS section, a list of named objects
// kept as record holders.
type ObjectsSection struct {
	objects []*Object
}

// NewObjectsSection returns an empty OBJECTS section.
func NewObjectsSection() *ObjectsSection {
	return &ObjectsSection{}
}

// SectionName returns "OBJECTS".
func (s *ObjectsSection) SectionName() string { return SectionObjects }

// Objects returns the objects.
func (s *ObjectsSection) Objects() []*Object { return s.objects }

// Read parses the section body up to ENDSEC.
func (s *ObjectsSection) Read(in *Input) error {
	return readSectionItems(in, func(name string) error {
		o := NewObject(name)
		if err := o.Read(in); err != nil {
			return err
		}
		s.objects = append(s.objects, o)
		return nil
	})
}

// Write serializes the section.
func (s *ObjectsSection) Write(out *Output) error {
	if err := writeSectionHead(out, SectionObjects); err != nil {
		return err
	}
	for _, o := range s.objects {
		if err := o.Write(out); err != nil {
			return err
		}
	}
	return writeSectionTail(out)
}

// CountRecords returns the exact number of records Write emits.
func (s *ObjectsSection) CountRecords() int {
	cnt := 2
	for _, o := range s.objects {
		cnt += o.CountRecords()
	}
	return cnt
}

// UnknownSection preserves a section the library has no parser for.
// The body is kept as the raw record list up to ENDSEC, including
// any group code 0 records.
type UnknownSection struct {
	name    string
	records []Record
}

// NewUnknownSection returns an empty section with the given name.
func NewUnknownSection(name string) *UnknownSection {
	return &UnknownSection{name: name}
}

// SectionName returns the section name.
func (s *UnknownSection) SectionName() string { return s.name }

// Records returns the raw section body.
func (s *UnknownSection) Records() []Record { return s.records }

// Read stores the raw records up to ENDSEC.
func (s *UnknownSection) Read(in *Input) error {
	for {
		code, err := in.ReadGroupCode()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnterminatedSection, err)
		}
		if code == 0 {
			name, err := in.ReadString()
			if err != nil {
				return err
			}
			if name == "ENDSEC" {
				return nil
			}
			s.records = append(s.records, Record{Code: 0, Param: name})
			continue
		}
		r, err := ReadRecord(in, code)
		if err != nil {
			return err
		}
		s.records = append(s.records, r)
	}
}

// Write echoes the section verbatim.
func (s *UnknownSection) Write(out *Output) error {
	if err := writeSectionHead(out, s.name); err != nil {
		return err
	}
	for _, r := range s.records {
		if err := r.Write(out); err != nil {
			return err
		}
	}
	return writeSectionTail(out)
}

// CountRecords returns the exact number of records Write emits.
func (s *UnknownSection) CountRecords() int {
	return 2 + len(s.records)
}
