// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jba/wavl/internal/metrics"
	"github.com/jba/wavl/internal/workload"
)

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	return tbl
}

// renderResults writes one table row per replayed operation.
func renderResults(w io.Writer, title string, results []workload.Result) {
	tbl := newTable(w)
	if title != "" {
		tbl.SetTitle(title)
	}
	tbl.AppendHeader(table.Row{"#", "op", "result", "steps", "size"})
	steps := 0
	for _, r := range results {
		tbl.AppendRow(table.Row{r.Seq + 1, r.Op.String(), describe(r), r.Steps, r.Size})
		steps += r.Steps
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d ops", len(results)), "", steps, ""})
	tbl.Render()
}

// describe formats the outcome of r for display.
func describe(r workload.Result) string {
	if r.Err != nil {
		return "error: " + r.Err.Error()
	}
	switch r.Op.Op {
	case workload.OpInsert, workload.OpDelete:
		return "ok"
	case workload.OpKeys:
		keys := make([]string, len(r.Keys))
		for i, k := range r.Keys {
			keys[i] = fmt.Sprint(k)
		}
		return "[" + strings.Join(keys, " ") + "]"
	case workload.OpIndex:
		if !r.Found {
			return "absent"
		}
		return fmt.Sprint(r.Index)
	}
	if !r.Found {
		return "absent"
	}
	return fmt.Sprintf("%q", r.Value)
}

// renderSummary writes the per-operation totals of a benchmark.
func renderSummary(w io.Writer, sums []metrics.OpSummary, opsPerSec map[string]float64) {
	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"op", "count", "failed", "steps", "steps/op", "max steps", "ops/sec"})
	for _, s := range sums {
		tbl.AppendRow(table.Row{
			s.Op,
			humanize.Comma(int64(s.OK)),
			humanize.Comma(int64(s.Failed)),
			humanize.Comma(int64(s.Steps)),
			fmt.Sprintf("%.3f", s.Amortized()),
			fmt.Sprintf("≤ %g", s.Max),
			humanize.CommafWithDigits(opsPerSec[s.Op], 0),
		})
	}
	tbl.Render()
}

// pass and fail print a colored verdict line.
func pass(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen, color.Bold).Fprint(w, "PASS ")
	fmt.Fprintf(w, format+"\n", args...)
}

func fail(w io.Writer, format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprint(w, "FAIL ")
	fmt.Fprintf(w, format+"\n", args...)
}
