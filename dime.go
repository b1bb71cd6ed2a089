// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dime reads, edits and writes AutoCAD DXF drawings. Both
// the ASCII dialect and the two binary dialects are parsed into a
// model that preserves every record, known or unknown, so a loaded
// drawing survives a round trip.
package dime

import (
	"fmt"
	"os"
	"strconv"

	"github.com/whpark/dime/log"
)

// Options configures a Model.
type Options struct {

	// Progress is invoked periodically during Read and Write with a
	// fraction in [0,1]; returning false aborts the operation.
	Progress ProgressCallback

	// CircleSegments, when positive, overrides the computed segment
	// count for circle and arc tessellation.
	CircleSegments int

	// MaxChordError bounds the tessellation error for curved
	// entities, by default (DefaultChordError).
	MaxChordError float64

	// BinaryOutput selects binary DXF output. Reserved; Write fails
	// with ErrBinaryOutputUnsupported while it is set.
	BinaryOutput bool

	// A custom logger.
	Logger log.Logger
}

// Model organizes a drawing: its sections in file order, the layer
// and block dictionaries, the handle high-water mark and the header
// comments.
type Model struct {
	sections       []Section
	layers         []*Layer
	layersByName   map[string]*Layer
	blocks         map[string]*Block
	headerComments []Record
	largestHandle  uint64

	opts   *Options
	logger *log.Helper
}

// NewModel returns an empty model.
func NewModel(opts *Options) *Model {
	m := &Model{}
	if opts != nil {
		m.opts = opts
	} else {
		m.opts = &Options{}
	}

	var logger log.Logger
	if m.opts.Logger == nil {
		logger = log.NewStdLogger(os.Stdout)
		m.logger = log.NewHelper(log.NewFilter(logger,
			log.FilterLevel(log.LevelError)))
	} else {
		m.logger = log.NewHelper(m.opts.Logger)
	}

	m.Init()
	return m
}

// Init discards the model contents. Read calls it, so models read
// from a stream need no explicit initialization.
func (m *Model) Init() {
	m.sections = nil
	m.layers = nil
	m.layersByName = make(map[string]*Layer)
	m.blocks = make(map[string]*Block)
	m.headerComments = nil
	m.largestHandle = 0
}

// TessellationParams returns the tessellation configuration for
// ExtractGeometry calls against this model's entities.
func (m *Model) TessellationParams() *TessellationParams {
	return &TessellationParams{
		CircleSegments: m.opts.CircleSegments,
		MaxChordError:  m.opts.MaxChordError,
	}
}

// Read parses a drawing. On failure the model is cleared; partial
// models are not exposed.
func (m *Model) Read(in *Input) error {
	m.Init()
	in.model = m
	if in.progress == nil {
		in.progress = m.opts.Progress
	}

	collecting := true
	in.onComment = func(comment string) {
		if collecting {
			m.headerComments = append(m.headerComments, Record{Code: 999, Param: comment})
		}
	}
	defer func() { in.onComment = nil }()

	err := func() error {
		for {
			code, err := in.ReadGroupCode()
			if err != nil {
				return err
			}
			if code != 0 {
				return fmt.Errorf("%w: expected 0, got %d", ErrUnexpectedGroupCode, code)
			}
			name, err := in.ReadString()
			if err != nil {
				return err
			}
			switch name {
			case "EOF":
				return nil
			case "SECTION":
				code, err = in.ReadGroupCode()
				if err != nil {
					return err
				}
				if code != 2 {
					return fmt.Errorf("%w: expected 2 after SECTION, got %d", ErrUnexpectedGroupCode, code)
				}
				secName, err := in.ReadString()
				if err != nil {
					return err
				}
				collecting = false
				sec := createSection(secName)
				if _, ok := sec.(*UnknownSection); ok {
					m.logger.Warnf("unknown section %q kept verbatim", secName)
				}
				if err := sec.Read(in); err != nil {
					return fmt.Errorf("section %s: %w", secName, err)
				}
				m.sections = append(m.sections, sec)
				if hs, ok := sec.(*HeaderSection); ok {
					m.applyCodePage(in, hs)
				}
			default:
				return fmt.Errorf("%w: 0 %s at top level", ErrUnexpectedRecord, name)
			}
		}
	}()
	if err != nil {
		pos := "line"
		if in.IsBinary() {
			pos = "offset"
		}
		if in.Aborted() {
			m.logger.Debugf("DXF read aborted by user at %s %d", pos, in.FilePosition())
		} else {
			m.logger.Errorf("DXF loading failed at %s %d: %v", pos, in.FilePosition(), err)
		}
		m.Init()
		return fmt.Errorf("dxf: load failed at %s %d: %w", pos, in.FilePosition(), err)
	}

	if bs := m.blocksSection(); bs != nil {
		bs.fixReferences(m)
	}
	if es := m.entitiesSection(); es != nil {
		es.fixReferences(m)
	}
	return nil
}

// applyCodePage arms the input's string decoder from $DWGCODEPAGE.
// Drawings from AC1021 on are UTF-8 and need none.
func (m *Model) applyCodePage(in *Input, hs *HeaderSection) {
	recs := hs.GetVariable("$DWGCODEPAGE", 1)
	if len(recs) == 0 {
		return
	}
	name := paramString(recs[0].Param)
	if name == "" {
		return
	}
	if err := in.SetCodePage(name); err != nil {
		m.logger.Debugf("unsupported $DWGCODEPAGE %q", name)
	}
}

// Write serializes the model. When any handle was registered, the
// $HANDSEED header variable is first bumped past the largest handle.
func (m *Model) Write(out *Output) error {
	if m.opts.BinaryOutput {
		return ErrBinaryOutputUnsupported
	}
	if m.largestHandle > 0 {
		if hs := m.headerSection(); hs != nil {
			if recs := hs.GetVariable("$HANDSEED", 1); len(recs) >= 1 {
				h := m.GetUniqueHandleHexString()
				m.largestHandle-- // ok to use this handle next time
				switch recs[0].Param.(type) {
				case Hex:
					recs[0].Param = Hex(h)
				default:
					recs[0].Param = h
				}
				hs.SetVariable("$HANDSEED", recs)
			}
		}
	}
	if out.progress == nil && m.opts.Progress != nil {
		out.SetProgressCallback(m.opts.Progress, m.CountRecords())
	}
	for _, c := range m.headerComments {
		if err := c.Write(out); err != nil {
			return err
		}
	}
	for _, s := range m.sections {
		if err := writeStringRecord(out, 0, "SECTION"); err != nil {
			return err
		}
		if err := s.Write(out); err != nil {
			return err
		}
	}
	if err := writeStringRecord(out, 0, "EOF"); err != nil {
		return err
	}
	return out.Flush()
}

// CountRecords returns the number of records Write emits. Useful for
// progress pacing.
func (m *Model) CountRecords() int {
	cnt := len(m.headerComments)
	for _, s := range m.sections {
		cnt += 1 + s.CountRecords()
	}
	cnt++ // EOF
	return cnt
}

// Sections returns the sections in file order.
func (m *Model) Sections() []Section { return m.sections }

// AppendSection adds a section at the end of the file order.
func (m *Model) AppendSection(s Section) {
	m.sections = append(m.sections, s)
}

// FindSection returns the section with the given name, or nil.
func (m *Model) FindSection(name string) Section {
	for _, s := range m.sections {
		if s.SectionName() == name {
			return s
		}
	}
	return nil
}

func (m *Model) headerSection() *HeaderSection {
	s, _ := m.FindSection(SectionHeader).(*HeaderSection)
	return s
}

func (m *Model) blocksSection() *BlocksSection {
	s, _ := m.FindSection(SectionBlocks).(*BlocksSection)
	return s
}

func (m *Model) entitiesSection() *EntitiesSection {
	s, _ := m.FindSection(SectionEntities).(*EntitiesSection)
	return s
}

// Header returns the HEADER section, or nil.
func (m *Model) Header() *HeaderSection { return m.headerSection() }

// Entities returns the top level entity list.
func (m *Model) Entities() []Entity {
	if es := m.entitiesSection(); es != nil {
		return es.Entities()
	}
	return nil
}

// AddEntity appends an entity to the ENTITIES section, creating the
// section when the model has none.
func (m *Model) AddEntity(e Entity) {
	es := m.entitiesSection()
	if es == nil {
		es = NewEntitiesSection()
		m.sections = append(m.sections, es)
	}
	es.AppendEntity(e)
}

// AddLayer registers a layer. When a layer with the same name exists
// it is returned unchanged; otherwise a new layer gets the next id,
// counting from 1. Id 0 is reserved for the default layer.
func (m *Model) AddLayer(name string, colorNumber, flags int16) *Layer {
	if l, ok := m.layersByName[name]; ok {
		return l
	}
	l := &Layer{
		name:        name,
		num:         len(m.layers) + 1,
		colorNumber: colorNumber,
		flags:       flags,
	}
	m.layers = append(m.layers, l)
	m.layersByName[name] = l
	return l
}

// GetLayer returns the layer with the given name, or nil. The
// default layer is found under its own name.
func (m *Model) GetLayer(name string) *Layer {
	if l, ok := m.layersByName[name]; ok {
		return l
	}
	if name == DefaultLayerName {
		return defaultLayer
	}
	return nil
}

// GetLayerByIndex returns the idx'th registered layer.
func (m *Model) GetLayerByIndex(idx int) *Layer {
	return m.layers[idx]
}

// NumLayers returns the number of registered layers.
func (m *Model) NumLayers() int { return len(m.layers) }

// AddBlock registers a block in the block dictionary. It returns
// false when the name is taken. The block must also live in the
// BLOCKS section to be written.
func (m *Model) AddBlock(b *Block) bool {
	if _, ok := m.blocks[b.Name()]; ok {
		return false
	}
	m.blocks[b.Name()] = b
	return true
}

// FindBlock returns the block with the given name, or nil.
func (m *Model) FindBlock(name string) *Block {
	return m.blocks[name]
}

// RegisterHandle raises the handle high-water mark to cover a hex
// handle seen on input.
func (m *Model) RegisterHandle(handle string) {
	v, err := strconv.ParseUint(handle, 16, 64)
	if err != nil {
		return
	}
	m.RegisterHandleValue(v)
}

// RegisterHandleValue raises the handle high-water mark.
func (m *Model) RegisterHandleValue(handle uint64) {
	if handle > m.largestHandle {
		m.largestHandle = handle
	}
}

// GetUniqueHandle returns a handle strictly greater than every
// handle registered or returned before.
func (m *Model) GetUniqueHandle() uint64 {
	m.largestHandle++
	return m.largestHandle
}

// GetUniqueHandleHexString returns GetUniqueHandle formatted as
// lowercase hex.
func (m *Model) GetUniqueHandleHexString() string {
	return strconv.FormatUint(m.GetUniqueHandle(), 16)
}

// TraverseEntities walks the drawing. Block bodies are walked when
// traverseBlocks is set; INSERTs are expanded in place when
// explodeInserts is set; POLYLINE vertices are delivered when
// traverseVertices is set. The callback returning false stops the
// walk and makes TraverseEntities return false.
func (m *Model) TraverseEntities(cb TraverseCallback, traverseBlocks, explodeInserts, traverseVertices bool) bool {
	flags := 0
	if explodeInserts {
		flags |= ExplodeInserts
	}
	if traverseVertices {
		flags |= TraversePolylineVertices
	}
	state := NewState(flags)
	if traverseBlocks {
		if bs := m.blocksSection(); bs != nil {
			for _, b := range bs.Blocks() {
				if b.IsDeleted() {
					continue
				}
				if !b.Traverse(state, cb) {
					return false
				}
			}
		}
	}
	if es := m.entitiesSection(); es != nil {
		for _, e := range es.Entities() {
			if e.IsDeleted() {
				continue
			}
			if !e.Traverse(state, cb) {
				return false
			}
		}
	}
	return true
}

// DxfVersion returns the drawing database version from $ACADVER, or
// the empty string when the drawing does not carry one.
func (m *Model) DxfVersion() string {
	hs := m.headerSection()
	if hs == nil {
		return ""
	}
	recs := hs.GetVariable("$ACADVER", 1)
	if len(recs) != 1 || recs[0].Code != 1 {
		return ""
	}
	switch paramString(recs[0].Param) {
	case "AC1006":
		return "r10"
	case "AC1009":
		return "r11/r12"
	case "AC1012":
		return "r13"
	case "AC1013":
		return "r14"
	case "AC1015":
		return "AutoCAD 2000"
	case "AC1018":
		return "AutoCAD 2004"
	case "AC1021":
		return "AutoCAD 2007"
	case "AC1024":
		return "AutoCAD 2010"
	}
	return ""
}

// HeaderComments returns the comment records found before the first
// SECTION.
func (m *Model) HeaderComments() []string {
	var comments []string
	for _, r := range m.headerComments {
		comments = append(comments, paramString(r.Param))
	}
	return comments
}

// AddHeaderComment adds a comment written before the first section.
func (m *Model) AddHeaderComment(comment string) {
	m.headerComments = append(m.headerComments, Record{Code: 999, Param: comment})
}
