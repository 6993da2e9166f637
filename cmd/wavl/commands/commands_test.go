// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jba/wavl/internal/trace"
	"github.com/jba/wavl/internal/workload"
)

// execute runs a root command carrying every subcommand with args,
// isolated from any config file of the user.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	root := &cobra.Command{Use: "wavl", SilenceUsage: true, SilenceErrors: true}
	AddPersistentFlags(root)
	root.AddCommand(NewRunCommand(), NewBenchCommand(), NewCheckCommand())

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

const testScript = `
name: scenario
ops:
  - {op: insert, key: 10, value: a}
  - {op: insert, key: 20, value: b}
  - {op: insert, key: 30, value: c}
  - {op: insert, key: 20, value: d}
  - {op: select, index: 2}
  - {op: delete, key: 10}
  - {op: keys}
`

func writeScript(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScript), 0o600))
	return path
}

func TestRun(t *testing.T) {
	script := writeScript(t)
	tracePath := filepath.Join(t.TempDir(), "trace.json")

	out, _, err := execute(t, "run", "--check", "--trace", tracePath, "--log-format", "json", script)
	require.NoError(t, err)
	assert.Contains(t, out, "scenario")
	assert.Contains(t, out, "duplicate key")
	assert.Contains(t, out, `"b"`)
	assert.Contains(t, out, "[20 30]")

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()
	recs, err := trace.Decode(f, trace.FormatJSON)
	require.NoError(t, err)
	require.Len(t, recs, 7)

	// The third insert promotes 20 and then rotates the chain 10-20-30.
	assert.Equal(t, 1, recs[1].Steps)
	assert.Equal(t, 2, recs[2].Steps)
	assert.Equal(t, 1, recs[2].RootRank)
	assert.Equal(t, 1, recs[2].Height)
	assert.Equal(t, "wavl: duplicate key", recs[3].Err)
	assert.Equal(t, 2, recs[4].Key)
	assert.Equal(t, workload.OpDelete, recs[5].Op)
	assert.Equal(t, 2, recs[6].Size)
}

func TestRunMsgpackTrace(t *testing.T) {
	script := writeScript(t)
	tracePath := filepath.Join(t.TempDir(), "trace.bin")

	_, _, err := execute(t, "run", "--trace", tracePath, script)
	require.NoError(t, err)

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	recs, err := trace.Decode(bytes.NewReader(data), trace.FormatMsgpack)
	require.NoError(t, err)
	assert.Len(t, recs, 7)
}

func TestRunCompare(t *testing.T) {
	script := writeScript(t)
	tracePath := filepath.Join(t.TempDir(), "trace.json")

	_, _, err := execute(t, "run", "--trace", tracePath, script)
	require.NoError(t, err)
	_, _, err = execute(t, "run", "--compare", tracePath, script)
	require.NoError(t, err)

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	recs, err := trace.Decode(f, trace.FormatJSON)
	f.Close()
	require.NoError(t, err)
	recs[2].Steps = 0
	tampered := filepath.Join(t.TempDir(), "tampered.json")
	var buf bytes.Buffer
	require.NoError(t, trace.Encode(&buf, trace.FormatJSON, recs))
	require.NoError(t, os.WriteFile(tampered, buf.Bytes(), 0o600))

	_, _, err = execute(t, "run", "--compare", tampered, script)
	require.ErrorIs(t, err, trace.ErrMismatch)
}

func TestRunMissingScript(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestBench(t *testing.T) {
	out, _, err := execute(t, "bench", "--size", "500", "--pattern", "sequential")
	require.NoError(t, err)
	assert.Contains(t, out, "insert")
	assert.Contains(t, out, "delete")
	assert.Contains(t, out, "500")
}

func TestBenchBadPattern(t *testing.T) {
	_, _, err := execute(t, "bench", "--pattern", "zigzag")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "check", "--ops", "2000", "--key-space", "64", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "2,000 ops")
}

func TestStressWideKeySpace(t *testing.T) {
	// Few repeats, so the tree grows large and most selects
	// land on values inserted long before.
	require.NoError(t, stress(3000, 1_000_000, 7, zerolog.Nop()))
	require.NoError(t, stress(3000, 8, 7, zerolog.Nop()))
}
