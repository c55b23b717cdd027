package cmd_art

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBench(t *testing.T) {
	res, err := runBench(2000)
	require.NoError(t, err)
	assert.Equal(t, 2000, res.Stats.Keys)
	assert.Equal(t, 2000, res.Stats.Leaves)

	var buf bytes.Buffer
	res.print(&buf)
	assert.Contains(t, buf.String(), "keys:    2000")
}
