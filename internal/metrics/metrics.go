// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics records rebalancing work in Prometheus collectors.
package metrics

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "wavl"

// Label values of the result label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// stepBuckets covers the constant amortized insert cost
// and the logarithmic worst case of a delete.
var stepBuckets = []float64{0, 1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48}

// A Recorder counts tree operations and their rebalancing steps.
// Each Recorder has its own registry.
type Recorder struct {
	reg   *prometheus.Registry
	ops   *prometheus.CounterVec
	steps *prometheus.HistogramVec
	size  prometheus.Gauge
}

// NewRecorder returns a Recorder with freshly registered collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Tree operations by kind and result.",
		}, []string{"op", "result"}),
		steps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebalance_steps",
			Help:      "Rebalancing steps per successful insert or delete.",
			Buckets:   stepBuckets,
		}, []string{"op"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_size",
			Help:      "Number of entries in the tree.",
		}),
	}
	r.reg.MustRegister(r.ops, r.steps, r.size)
	return r
}

// Observe records one operation of kind op that performed steps
// rebalancing steps and left the tree with size entries.
// Failed operations are counted but contribute no steps.
func (r *Recorder) Observe(op string, steps int, err error, size int) {
	if err != nil {
		r.ops.WithLabelValues(op, ResultError).Inc()
	} else {
		r.ops.WithLabelValues(op, ResultOK).Inc()
		r.steps.WithLabelValues(op).Observe(float64(steps))
	}
	r.size.Set(float64(size))
}

// Registry returns the registry holding r's collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler returns an http.Handler serving r's metrics for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// An OpSummary totals the recorded work of one operation kind.
type OpSummary struct {
	Op     string
	OK     uint64
	Failed uint64
	Steps  uint64
	Max    float64 // upper bound of the highest non-empty step bucket
}

// Amortized returns the mean number of steps per successful operation.
func (s OpSummary) Amortized() float64 {
	if s.OK == 0 {
		return 0
	}
	return float64(s.Steps) / float64(s.OK)
}

// Summary gathers r's collectors and totals them per operation kind,
// sorted by kind.
func (r *Recorder) Summary() ([]OpSummary, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	byOp := map[string]*OpSummary{}
	get := func(op string) *OpSummary {
		s, ok := byOp[op]
		if !ok {
			s = &OpSummary{Op: op}
			byOp[op] = s
		}
		return s
	}
	for _, mf := range families {
		switch mf.GetName() {
		case namespace + "_operations_total":
			for _, m := range mf.GetMetric() {
				s := get(label(m, "op"))
				n := uint64(m.GetCounter().GetValue())
				if label(m, "result") == ResultError {
					s.Failed += n
				} else {
					s.OK += n
				}
			}
		case namespace + "_rebalance_steps":
			for _, m := range mf.GetMetric() {
				s := get(label(m, "op"))
				h := m.GetHistogram()
				s.Steps += uint64(h.GetSampleSum())
				s.Max = maxBucket(h)
			}
		}
	}
	sums := make([]OpSummary, 0, len(byOp))
	for _, s := range byOp {
		sums = append(sums, *s)
	}
	slices.SortFunc(sums, func(a, b OpSummary) int {
		switch {
		case a.Op < b.Op:
			return -1
		case a.Op > b.Op:
			return 1
		}
		return 0
	})
	return sums, nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// maxBucket returns the smallest bucket bound holding every observation.
func maxBucket(h *dto.Histogram) float64 {
	for _, b := range h.GetBucket() {
		if b.GetCumulativeCount() == h.GetSampleCount() {
			return b.GetUpperBound()
		}
	}
	return stepBuckets[len(stepBuckets)-1]
}
