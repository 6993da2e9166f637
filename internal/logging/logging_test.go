// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jba/wavl/internal/config"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)

	log.Debug().Int("steps", 3).Msg("insert")
	log.Trace().Msg("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "debug", rec["level"])
	assert.Equal(t, "insert", rec["message"])
	assert.InDelta(t, 3, rec["steps"], 0)
	assert.Contains(t, rec, "time")
}

func TestConsoleDefaults(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, config.LogConfig{})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	log.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestInvalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, config.LogConfig{Level: "loud"})
	require.Error(t, err)
	_, err = New(&bytes.Buffer{}, config.LogConfig{Format: "xml"})
	require.ErrorIs(t, err, config.ErrInvalidLogFormat)
}
