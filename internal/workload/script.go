// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workload

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jba/wavl"
)

// Operation kinds.
const (
	OpInsert = "insert"
	OpDelete = "delete"
	OpGet    = "get"
	OpSelect = "select"
	OpMin    = "min"
	OpMax    = "max"
	OpKeys   = "keys"
	OpIndex  = "index"
)

// ErrInvalidOp is returned for a script operation that cannot be replayed.
var ErrInvalidOp = errors.New("workload: invalid operation")

// An Op is one step of a script.
// Key is used by insert, delete, get and index; Value by insert;
// Index by select.
type Op struct {
	Op    string `yaml:"op"`
	Key   int    `yaml:"key,omitempty"`
	Value string `yaml:"value,omitempty"`
	Index int    `yaml:"index,omitempty"`
}

func (o Op) String() string {
	switch o.Op {
	case OpInsert:
		return fmt.Sprintf("insert %d %q", o.Key, o.Value)
	case OpDelete, OpGet, OpIndex:
		return fmt.Sprintf("%s %d", o.Op, o.Key)
	case OpSelect:
		return fmt.Sprintf("select %d", o.Index)
	}
	return o.Op
}

// A Script is a named list of operations, as read from YAML:
//
//	name: example
//	ops:
//	  - {op: insert, key: 1, value: a}
//	  - {op: delete, key: 1}
type Script struct {
	Name string `yaml:"name"`
	Ops  []Op   `yaml:"ops"`
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads and parses the script in the named file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

// Validate reports the first operation with an unknown kind.
func (s *Script) Validate() error {
	for i, o := range s.Ops {
		switch o.Op {
		case OpInsert, OpDelete, OpGet, OpSelect, OpMin, OpMax, OpKeys, OpIndex:
		default:
			return fmt.Errorf("%w: op %d: %q", ErrInvalidOp, i, o.Op)
		}
	}
	return nil
}

// A Result is the outcome of replaying one Op.
type Result struct {
	Seq   int // position of the op in the script
	Op    Op
	Steps int    // rebalancing steps, for insert and delete
	Found bool   // whether a value or index was produced
	Value string // for get, select, min and max
	Index int    // for index
	Keys  []int  // for keys
	Size  int    // tree size after the op
	Err   error  // error reported by the tree
}

// Replay applies ops to t in order and yields the result of each.
// Errors reported by the tree, such as a duplicate insert, are recorded
// in the Result and do not stop the replay.
func Replay(t *wavl.Tree[string], ops []Op) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for i, o := range ops {
			if !yield(apply(t, i, o)) {
				return
			}
		}
	}
}

func apply(t *wavl.Tree[string], seq int, o Op) Result {
	r := Result{Seq: seq, Op: o}
	switch o.Op {
	case OpInsert:
		r.Steps, r.Err = t.Insert(o.Key, o.Value)
	case OpDelete:
		r.Steps, r.Err = t.Delete(o.Key)
	case OpGet:
		r.Value, r.Found = t.Get(o.Key)
	case OpSelect:
		r.Value, r.Err = t.Select(o.Index)
		r.Found = r.Err == nil
	case OpMin:
		r.Value, r.Found = t.Min()
	case OpMax:
		r.Value, r.Found = t.Max()
	case OpKeys:
		r.Keys = t.Keys()
		r.Found = true
	case OpIndex:
		r.Index, r.Found = t.IndexOf(o.Key)
	default:
		r.Err = fmt.Errorf("%w: %q", ErrInvalidOp, o.Op)
	}
	r.Size = t.Len()
	return r
}
