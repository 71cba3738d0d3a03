// Package save reads and writes puzzle save files.
//
// A save file is an indented JSON object holding the six marker coordinates
// and the undo/redo move stacks:
//
//	{
//	  "positions": [5, 1, 5, 2, 7, 6],
//	  "undo": [{"target_row": 6, "target_col": 4, "piece": "knight", "source_row": 5, "source_col": 2}],
//	  "redo": []
//	}
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kingknight/types"
)

var ErrMalformedSave = errors.New("malformed save file")

// file mirrors the on-disk layout. Pointers and a slice for positions let
// Decode tell a missing field apart from a zero value.
type file struct {
	Positions []int     `json:"positions"`
	Undo      *[]record `json:"undo"`
	Redo      *[]record `json:"redo"`
}

// record is the on-disk form of a types.MoveRecord. Every field is required.
type record struct {
	TargetRow *int             `json:"target_row"`
	TargetCol *int             `json:"target_col"`
	Piece     *types.CellState `json:"piece"`
	SourceRow *int             `json:"source_row"`
	SourceCol *int             `json:"source_col"`
}

func toRecords(moves []types.MoveRecord) []record {
	out := make([]record, len(moves))
	for i := range moves {
		m := moves[i]
		out[i] = record{&m.TargetRow, &m.TargetCol, &m.Piece, &m.SourceRow, &m.SourceCol}
	}
	return out
}

func fromRecords(name string, recs []record) ([]types.MoveRecord, error) {
	out := make([]types.MoveRecord, len(recs))
	for i, r := range recs {
		if r.TargetRow == nil || r.TargetCol == nil || r.Piece == nil || r.SourceRow == nil || r.SourceCol == nil {
			return nil, malformed("%s move %d: incomplete record", name, i)
		}
		out[i] = types.MoveRecord{
			TargetRow: *r.TargetRow,
			TargetCol: *r.TargetCol,
			Piece:     *r.Piece,
			SourceRow: *r.SourceRow,
			SourceCol: *r.SourceCol,
		}
	}
	return out, nil
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedSave, fmt.Sprintf(format, args...))
}

// Encode writes snap to w as indented JSON.
func Encode(w io.Writer, snap *types.Snapshot) error {
	undo := toRecords(snap.Undo)
	redo := toRecords(snap.Redo)
	f := file{
		Positions: snap.Positions[:],
		Undo:      &undo,
		Redo:      &redo,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Decode reads a complete save from r. Any structural problem is reported
// as an error wrapping ErrMalformedSave.
func Decode(r io.Reader) (*types.Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, malformed("%v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed("trailing data after save record")
	}
	if len(f.Positions) != 6 {
		return nil, malformed("want 6 positions, got %d", len(f.Positions))
	}
	if f.Undo == nil || f.Redo == nil {
		return nil, malformed("missing undo or redo history")
	}

	undo, err := fromRecords("undo", *f.Undo)
	if err != nil {
		return nil, err
	}
	redo, err := fromRecords("redo", *f.Redo)
	if err != nil {
		return nil, err
	}
	snap := &types.Snapshot{Undo: undo, Redo: redo}
	copy(snap.Positions[:], f.Positions)
	return snap, nil
}

// Validate checks that snap describes a playable position on a size x size
// board. A piece may share the goal square (a won game).
func Validate(snap *types.Snapshot, size int) error {
	inBounds := func(row, col int) bool {
		return row >= 0 && row < size && col >= 0 && col < size
	}
	for i := 0; i < 6; i += 2 {
		if !inBounds(snap.Positions[i], snap.Positions[i+1]) {
			return malformed("position (%d,%d) outside %dx%d board", snap.Positions[i], snap.Positions[i+1], size, size)
		}
	}
	if snap.King() == snap.Knight() {
		return malformed("king and knight share square (%d,%d)", snap.King().Row, snap.King().Col)
	}
	for name, moves := range map[string][]types.MoveRecord{"undo": snap.Undo, "redo": snap.Redo} {
		for i, m := range moves {
			if !m.Piece.IsPiece() {
				return malformed("%s move %d: %s is not a movable piece", name, i, m.Piece)
			}
			if !inBounds(m.SourceRow, m.SourceCol) || !inBounds(m.TargetRow, m.TargetCol) {
				return malformed("%s move %d: coordinate outside %dx%d board", name, i, size, size)
			}
		}
	}
	return nil
}

// WriteFile saves snap to path. The previous file is replaced only once
// the new content has been fully written.
func WriteFile(path string, snap *types.Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, err = tmpFile.Write(buf.Bytes())
	if cerr := tmpFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write save: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// ReadFile loads and decodes the save at path.
func ReadFile(path string) (*types.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return snap, nil
}
