// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jba/wavl"
	"github.com/jba/wavl/internal/config"
	"github.com/jba/wavl/internal/invariant"
	"github.com/jba/wavl/internal/workload"
)

const (
	checkCmdUse   = "check"
	checkCmdShort = "Stress a tree with random inserts and deletes, verifying it after every op"
	opsFlag       = "ops"
	keySpaceFlag  = "key-space"
)

// ErrCheckFailed is returned by the check command when the tree misbehaves.
var ErrCheckFailed = errors.New("check failed")

// NewCheckCommand creates the check subcommand.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   checkCmdUse,
		Short: checkCmdShort,
		Long: `Check applies a random mix of inserts and deletes over a bounded key
space, comparing every result with a plain map and verifying the order,
rank and size rules of the tree after each operation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), cfg.Check, log)
		},
	}

	cmd.Flags().Int(opsFlag, config.DefaultCheckOps, "number of operations")
	cmd.Flags().Int(keySpaceFlag, config.DefaultCheckKeySpace, "keys are drawn from [0, key-space)")
	cmd.Flags().Uint64(seedFlag, config.DefaultCheckSeed, "random seed")
	config.BindFlag(cmd.Flags(), opsFlag, "check.ops")
	config.BindFlag(cmd.Flags(), keySpaceFlag, "check.key_space")
	config.BindFlag(cmd.Flags(), seedFlag, "check.seed")

	return cmd
}

func runCheck(w io.Writer, cfg config.CheckConfig, log zerolog.Logger) error {
	keySpace := cfg.KeySpace
	if keySpace == 0 {
		keySpace = config.DefaultCheckKeySpace
	}
	log.Info().Int("ops", cfg.Ops).Int("key_space", keySpace).Uint64("seed", cfg.Seed).Msg("checking")

	if err := stress(cfg.Ops, keySpace, cfg.Seed, log); err != nil {
		fail(w, "%v", err)
		return fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	pass(w, "%s ops over %s keys (seed %d)", humanize.Comma(int64(cfg.Ops)), humanize.Comma(int64(keySpace)), cfg.Seed)
	return nil
}

// stress runs the randomized check and returns the first discrepancy.
func stress(ops, keySpace int, seed uint64, log zerolog.Logger) error {
	r := workload.NewRand(seed)
	tree := wavl.New[int]()
	model := map[int]int{}
	// owner maps each stored value back to its key.
	// Values are the op numbers of the inserts, so they are distinct.
	owner := map[int]int{}
	maxSteps := map[string]int{}

	for i := range ops {
		k := r.IntN(keySpace)
		_, present := model[k]
		var (
			op    string
			steps int
			err   error
		)
		if r.IntN(3) == 0 {
			op = workload.OpDelete
			steps, err = tree.Delete(k)
			switch {
			case present && err != nil:
				return fmt.Errorf("op %d: delete %d: %w", i, k, err)
			case !present && !errors.Is(err, wavl.ErrKeyNotFound):
				return fmt.Errorf("op %d: delete of absent %d returned %v", i, k, err)
			}
			if present {
				delete(owner, model[k])
				delete(model, k)
			}
		} else {
			op = workload.OpInsert
			steps, err = tree.Insert(k, i)
			switch {
			case !present && err != nil:
				return fmt.Errorf("op %d: insert %d: %w", i, k, err)
			case present && !errors.Is(err, wavl.ErrDuplicateKey):
				return fmt.Errorf("op %d: duplicate insert of %d returned %v", i, k, err)
			}
			if !present {
				model[k] = i
				owner[i] = k
			}
		}
		maxSteps[op] = max(maxSteps[op], steps)

		if err := invariant.Check(tree); err != nil {
			return fmt.Errorf("op %d: %s %d: %w", i, op, k, err)
		}
		if tree.Len() != len(model) {
			return fmt.Errorf("op %d: Len is %d, want %d", i, tree.Len(), len(model))
		}
		if n := tree.Len(); n > 0 {
			j := r.IntN(n) + 1
			v, err := tree.Select(j)
			if err != nil {
				return fmt.Errorf("op %d: select %d: %w", i, j, err)
			}
			sk, ok := owner[v]
			if !ok {
				return fmt.Errorf("op %d: select %d returned unknown value %d", i, j, v)
			}
			if idx, ok := tree.IndexOf(sk); !ok || idx != j {
				return fmt.Errorf("op %d: select %d returned value %d at index %d", i, j, v, idx)
			}
		}
		log.Trace().Int("op", i).Str("kind", op).Int("key", k).Int("steps", steps).Msg("ok")
	}

	want := slices.Sorted(maps.Keys(model))
	if got := tree.Keys(); !slices.Equal(got, want) {
		return fmt.Errorf("final keys differ: got %d keys, want %d", len(got), len(want))
	}
	for i, k := range want {
		if j, ok := tree.IndexOf(k); !ok || j != i+1 {
			return fmt.Errorf("index of %d is %d, want %d", k, j, i+1)
		}
	}
	log.Info().
		Int("size", tree.Len()).
		Int("max_insert_steps", maxSteps[workload.OpInsert]).
		Int("max_delete_steps", maxSteps[workload.OpDelete]).
		Msg("done")
	return nil
}
