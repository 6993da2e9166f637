// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace writes and reads per-operation records of a script replay.
package trace

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ugorji/go/codec"
)

// A Format selects the trace encoding.
type Format int

const (
	FormatMsgpack Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFor returns the format for a trace file name:
// JSON for a ".json" extension, msgpack otherwise.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatMsgpack
}

// version is written at the head of every trace.
const version = 1

var (
	// ErrVersion is returned by Decode for a trace written by an unknown version.
	ErrVersion = errors.New("trace: unsupported version")

	// ErrMismatch is returned by Compare when two traces disagree.
	ErrMismatch = errors.New("trace: mismatch")
)

// A Record describes one replayed operation and the tree it left behind.
type Record struct {
	Seq      int    `codec:"seq"`
	Op       string `codec:"op"`
	Key      int    `codec:"key"`
	Steps    int    `codec:"steps"`
	Size     int    `codec:"size"`
	RootRank int    `codec:"root_rank"`
	Height   int    `codec:"height"`
	Err      string `codec:"err,omitempty"`
}

type file struct {
	Version int      `codec:"version"`
	Records []Record `codec:"records"`
}

func handle(f Format) (codec.Handle, error) {
	switch f {
	case FormatMsgpack:
		return &codec.MsgpackHandle{}, nil
	case FormatJSON:
		var h codec.JsonHandle
		h.Indent = 2
		return &h, nil
	}
	return nil, fmt.Errorf("trace: unknown format %v", f)
}

// Encode writes recs to w in format f.
func Encode(w io.Writer, f Format, recs []Record) error {
	h, err := handle(f)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []Record{}
	}
	enc := codec.NewEncoder(w, h)
	if err := enc.Encode(file{Version: version, Records: recs}); err != nil {
		return fmt.Errorf("trace: encode: %w", err)
	}
	return nil
}

// Decode reads the records written by Encode in format f.
func Decode(r io.Reader, f Format) ([]Record, error) {
	h, err := handle(f)
	if err != nil {
		return nil, err
	}
	var tf file
	dec := codec.NewDecoder(r, h)
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("trace: decode: %w", err)
	}
	if tf.Version != version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, tf.Version)
	}
	return tf.Records, nil
}

// Compare reports the first record where got differs from want,
// wrapped in ErrMismatch. Records match when every field is equal.
func Compare(want, got []Record) error {
	for i := range min(len(want), len(got)) {
		if want[i] != got[i] {
			return fmt.Errorf("%w: op %d (%s %d): got %+v, want %+v", ErrMismatch, i, want[i].Op, want[i].Key, got[i], want[i])
		}
	}
	if len(want) != len(got) {
		return fmt.Errorf("%w: got %d records, want %d", ErrMismatch, len(got), len(want))
	}
	return nil
}
