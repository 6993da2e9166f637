// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Observe("insert", 1, nil, 1)
	r.Observe("insert", 3, nil, 2)
	r.Observe("insert", 0, errors.New("dup"), 2)
	r.Observe("delete", 2, nil, 1)

	assert.InDelta(t, 2, testutil.ToFloat64(r.ops.WithLabelValues("insert", ResultOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ops.WithLabelValues("insert", ResultError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.size), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(r.steps))

	want := `
# HELP wavl_tree_size Number of entries in the tree.
# TYPE wavl_tree_size gauge
wavl_tree_size 1
`
	require.NoError(t, testutil.CollectAndCompare(r.size, strings.NewReader(want)))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	for _, s := range []int{1, 0, 2, 5} {
		r.Observe("insert", s, nil, 0)
	}
	r.Observe("insert", 0, errors.New("dup"), 0)
	r.Observe("delete", 3, nil, 0)

	sums, err := r.Summary()
	require.NoError(t, err)
	require.Len(t, sums, 2)

	assert.Equal(t, OpSummary{Op: "delete", OK: 1, Steps: 3, Max: 3}, sums[0])
	assert.Equal(t, OpSummary{Op: "insert", OK: 4, Failed: 1, Steps: 8, Max: 6}, sums[1])
	assert.InDelta(t, 2.0, sums[1].Amortized(), 1e-9)
	assert.Zero(t, OpSummary{}.Amortized())
}

func TestHandler(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Observe("insert", 1, nil, 1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), `wavl_operations_total{op="insert",result="ok"} 1`)
}
