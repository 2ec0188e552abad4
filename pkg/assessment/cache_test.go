package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache_RoundTrip(t *testing.T) {
	c := newReportCache()

	_, ok := c.get("missing")
	assert.False(t, ok)

	payload := []byte(`{"framework":"custom","seed":7}`)
	c.put("key", payload)

	got, ok := c.get("key")
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestReportCache_Overwrite(t *testing.T) {
	c := newReportCache()
	c.put("key", []byte("first"))
	c.put("key", []byte("second"))

	got, ok := c.get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got)
	assert.Equal(t, 1, c.len())
}

func TestReportCache_CorruptEntryIsMiss(t *testing.T) {
	c := newReportCache()
	c.entries["key"] = []byte{0xff, 0xff, 0xff}

	_, ok := c.get("key")
	assert.False(t, ok)
}
