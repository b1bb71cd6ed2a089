// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// recordHandler is the hook every record-owning object implements.
// HandleRecord inspects a record and returns true when the object
// stores it in a typed field; returning false retains it verbatim.
// ShouldWriteRecord lets an object suppress retained records it
// serializes itself.
type recordHandler interface {
	HandleRecord(code int32, param Param) bool
	ShouldWriteRecord(code int32) bool
}

// RecordHolder stores the records an object chose not to interpret,
// in input order. Duplicate group codes are allowed and addressed by
// (code, index).
type RecordHolder struct {
	records []Record
}

// HandleRecord is the default hook: nothing is interpreted.
func (rh *RecordHolder) HandleRecord(code int32, param Param) bool {
	return false
}

// ShouldWriteRecord is the default filter: everything retained is
// written.
func (rh *RecordHolder) ShouldWriteRecord(code int32) bool {
	return true
}

// readRecords reads records until the record-set terminator (group
// code 0), which is pushed back for the caller. Each record is
// offered to h before being retained.
func (rh *RecordHolder) readRecords(in *Input, h recordHandler) error {
	var kept []Record
	for {
		code, err := in.ReadGroupCode()
		if err != nil {
			return err
		}
		if code == 0 {
			if err := in.PutBackGroupCode(code); err != nil {
				return err
			}
			break
		}
		r, err := ReadRecord(in, code)
		if err != nil {
			return err
		}
		if !h.HandleRecord(code, r.Param) {
			kept = append(kept, r)
		}
	}
	rh.records = kept
	return nil
}

// writeRecords writes the retained records in order, filtered by h's
// ShouldWriteRecord.
func (rh *RecordHolder) writeRecords(out *Output, h recordHandler) error {
	for _, r := range rh.records {
		if !h.ShouldWriteRecord(r.Code) {
			continue
		}
		if err := r.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// countWrittenRecords returns the number of retained records the
// serializer will emit under h's filter.
func (rh *RecordHolder) countWrittenRecords(h recordHandler) int {
	cnt := 0
	for _, r := range rh.records {
		if h.ShouldWriteRecord(r.Code) {
			cnt++
		}
	}
	return cnt
}

// findRecord returns the index'th retained record with the given
// group code, or nil.
func (rh *RecordHolder) findRecord(code int32, index int) *Record {
	for i := range rh.records {
		if rh.records[i].Code == code {
			if index == 0 {
				return &rh.records[i]
			}
			index--
		}
	}
	return nil
}

// setRecord writes through h; unhandled records overwrite the
// retained record at (code, index) or append a new one.
func (rh *RecordHolder) setRecord(code int32, param Param, index int, h recordHandler) {
	if h.HandleRecord(code, param) {
		return
	}
	if r := rh.findRecord(code, index); r != nil {
		r.Param = param
		return
	}
	rh.records = append(rh.records, Record{Code: code, Param: param})
}

// GetRecord returns the value of the index'th retained record with
// the given group code.
func (rh *RecordHolder) GetRecord(code int32, index int) (Param, bool) {
	if r := rh.findRecord(code, index); r != nil {
		return r.Param, true
	}
	return nil, false
}

// NumRecordsInHolder returns the number of retained records.
func (rh *RecordHolder) NumRecordsInHolder() int {
	return len(rh.records)
}

// RecordInHolder returns the idx'th retained record.
func (rh *RecordHolder) RecordInHolder(idx int) Record {
	return rh.records[idx]
}
