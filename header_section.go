// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "fmt"

// HeaderSection is the HEADER section: an ordered record list where
// group code 9 records mark the start of a header variable.
type HeaderSection struct {
	records []Record
}

// NewHeaderSection returns an empty HEADER section.
func NewHeaderSection() *HeaderSection {
	return &HeaderSection{}
}

// SectionName returns "HEADER".
func (s *HeaderSection) SectionName() string { return SectionHeader }

// Read parses the section body up to ENDSEC.
func (s *HeaderSection) Read(in *Input) error {
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
			if name != "ENDSEC" {
				return fmt.Errorf("%w: 0 %s in HEADER", ErrUnexpectedRecord, name)
			}
			return nil
		}
		r, err := ReadRecord(in, code)
		if err != nil {
			return err
		}
		s.records = append(s.records, r)
	}
}

// GetVariable returns up to maxRecords records following the group
// code 9 marker with the given variable name. Nil means the variable
// is absent.
func (s *HeaderSection) GetVariable(name string, maxRecords int) []Record {
	i := s.variableIndex(name)
	if i < 0 {
		return nil
	}
	var recs []Record
	for j := i + 1; j < len(s.records) && len(recs) < maxRecords; j++ {
		if s.records[j].Code == 9 {
			break
		}
		recs = append(recs, s.records[j])
	}
	return recs
}

// SetVariable replaces the records of a header variable, creating
// the variable if it is absent.
func (s *HeaderSection) SetVariable(name string, records []Record) {
	i := s.variableIndex(name)
	if i < 0 {
		s.records = append(s.records, Record{Code: 9, Param: name})
		s.records = append(s.records, records...)
		return
	}
	end := i + 1
	for end < len(s.records) && s.records[end].Code != 9 {
		end++
	}
	tail := append([]Record(nil), s.records[end:]...)
	s.records = append(s.records[:i+1], records...)
	s.records = append(s.records, tail...)
}

func (s *HeaderSection) variableIndex(name string) int {
	for i, r := range s.records {
		if r.Code == 9 && paramString(r.Param) == name {
			return i
		}
	}
	return -1
}

// Write serializes the section.
func (s *HeaderSection) Write(out *Output) error {
	if err := writeSectionHead(out, SectionHeader); err != nil {
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
func (s *HeaderSection) CountRecords() int {
	return 2 + len(s.records)
}
