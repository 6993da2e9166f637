// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jba/wavl"
	"github.com/jba/wavl/internal/invariant"
	"github.com/jba/wavl/internal/trace"
	"github.com/jba/wavl/internal/workload"
)

const (
	runCmdUse   = "run <script.yaml>"
	runCmdShort = "Replay an operation script against a tree"
	runArgCount = 1
	checkFlag   = "check"
	traceFlag   = "trace"
	compareFlag = "compare"
	traceMode   = 0o644
)

// NewRunCommand creates the run subcommand.
func NewRunCommand() *cobra.Command {
	var (
		check     bool
		tracePath string
		against   string
	)

	cmd := &cobra.Command{
		Use:   runCmdUse,
		Short: runCmdShort,
		Long: `Run replays the operations of a YAML script against an empty tree
and prints the outcome and rebalancing steps of each.

A script looks like:

  name: example
  ops:
    - {op: insert, key: 1, value: a}
    - {op: select, index: 1}
    - {op: delete, key: 1}

Supported ops are insert, delete, get, select, min, max, keys and index.

With --compare, the run fails unless every op matches the record of
an earlier trace, including its rebalancing steps.`,
		Args: cobra.ExactArgs(runArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], check, tracePath, against)
		},
	}

	cmd.Flags().BoolVar(&check, checkFlag, false, "verify tree invariants after every op")
	cmd.Flags().StringVar(&tracePath, traceFlag, "", "write per-op records to this file (msgpack, or JSON for .json)")
	cmd.Flags().StringVar(&against, compareFlag, "", "compare per-op records with this earlier trace")

	return cmd
}

func runScript(cmd *cobra.Command, path string, check bool, tracePath, against string) error {
	_, log, err := setup(cmd)
	if err != nil {
		return err
	}

	script, err := workload.LoadScript(path)
	if err != nil {
		return err
	}
	log.Info().Str("script", script.Name).Int("ops", len(script.Ops)).Msg("replaying")

	tree := wavl.New[string]()
	var (
		results []workload.Result
		records []trace.Record
	)
	for r := range workload.Replay(tree, script.Ops) {
		results = append(results, r)
		log.Debug().Int("seq", r.Seq).Str("op", r.Op.String()).Int("steps", r.Steps).Err(r.Err).Msg("op")
		if check {
			if err := invariant.Check(tree); err != nil {
				log.Error().Err(err).Int("seq", r.Seq).Msg("invariant violated")
				renderResults(cmd.OutOrStdout(), script.Name, results)
				return fmt.Errorf("after op %d (%s): %w", r.Seq+1, r.Op, err)
			}
		}
		if tracePath != "" || against != "" {
			records = append(records, record(tree, r))
		}
	}
	renderResults(cmd.OutOrStdout(), script.Name, results)

	if tracePath != "" {
		if err := writeTrace(tracePath, records); err != nil {
			return err
		}
		log.Info().Str("file", tracePath).Int("records", len(records)).Msg("trace written")
	}
	if against != "" {
		want, err := readTrace(against)
		if err != nil {
			return err
		}
		if err := trace.Compare(want, records); err != nil {
			log.Error().Err(err).Str("file", against).Msg("trace differs")
			return err
		}
		log.Info().Str("file", against).Int("records", len(want)).Msg("trace matches")
	}
	return nil
}

// record describes r and the tree it left behind.
func record(tree *wavl.Tree[string], r workload.Result) trace.Record {
	rec := trace.Record{
		Seq:      r.Seq,
		Op:       r.Op.Op,
		Key:      r.Op.Key,
		Steps:    r.Steps,
		Size:     r.Size,
		RootRank: -1,
		Height:   invariant.Height(tree),
	}
	if r.Op.Op == workload.OpSelect {
		rec.Key = r.Op.Index
	}
	if root, ok := tree.Root(); ok {
		rec.RootRank = root.Rank()
	}
	if r.Err != nil {
		rec.Err = r.Err.Error()
	}
	return rec
}

func writeTrace(path string, records []trace.Record) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, traceMode)
	if err != nil {
		return fmt.Errorf("create trace: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close trace: %w", cerr)
		}
	}()
	return trace.Encode(f, trace.FormatFor(path), records)
}

func readTrace(path string) ([]trace.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return trace.Decode(f, trace.FormatFor(path))
}
