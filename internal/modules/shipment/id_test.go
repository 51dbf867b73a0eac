package shipment

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^\d{8}[A-Z]+[A-Z0-9]{4}$`)

func TestNewID_Format(t *testing.T) {
	// 17:00 UTC is already the next day in Manila.
	now := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)

	id, err := NewID(now, "")
	require.NoError(t, err)
	assert.Regexp(t, idPattern, string(id))
	assert.Equal(t, "20260302NAIA", string(id)[:12])
	assert.Len(t, string(id), 16)

	id, err = NewID(now, "MCIA")
	require.NoError(t, err)
	assert.Equal(t, "20260302MCIA", string(id)[:12])
}

func TestNewID_RejectsBiasedBytes(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// 252..255 are skipped; 0 -> 'A', 35 -> '9', 36 -> 'A', 71 -> '9'.
	r := bytes.NewReader([]byte{255, 0, 252, 35, 36, 253, 71})

	id, err := newID(now, "NAIA", r)
	require.NoError(t, err)
	assert.Equal(t, "20260301NAIAA9A9", string(id))
}

func TestNewID_ShortRead(t *testing.T) {
	_, err := newID(time.Now(), "NAIA", bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err)
}
