// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recs = []Record{
	{Seq: 0, Op: "insert", Key: 3, Steps: 0, Size: 1, RootRank: 0, Height: 0},
	{Seq: 1, Op: "insert", Key: 3, Size: 1, Err: "wavl: duplicate key"},
	{Seq: 2, Op: "delete", Key: 3, Steps: 0, Size: 0, RootRank: -1, Height: -1},
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{FormatMsgpack, FormatJSON} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, f, recs))
			got, err := Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, recs, got)
		})
	}
}

func TestJSONFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, recs[:1]))
	s := buf.String()
	assert.Contains(t, s, `"root_rank"`)
	assert.Contains(t, s, `"version"`)
	assert.NotContains(t, s, `"err"`)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"version": 99, "records": []}`), FormatJSON)
	require.ErrorIs(t, err, ErrVersion)
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatJSON, FormatFor("out.json"))
	assert.Equal(t, FormatJSON, FormatFor("OUT.JSON"))
	assert.Equal(t, FormatMsgpack, FormatFor("out.msgpack"))
	assert.Equal(t, FormatMsgpack, FormatFor("out"))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	require.NoError(t, Compare(recs, recs))
	require.NoError(t, Compare(nil, nil))

	changed := append([]Record(nil), recs...)
	changed[2].Steps = 1
	err := Compare(recs, changed)
	require.ErrorIs(t, err, ErrMismatch)
	assert.Contains(t, err.Error(), "op 2")

	require.ErrorIs(t, Compare(recs, recs[:2]), ErrMismatch)
}
