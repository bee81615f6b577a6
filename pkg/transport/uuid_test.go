package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUUID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ff51", "0000ff51-0000-1000-8000-00805f9b34fb"},
		{"0xFF51", "0000ff51-0000-1000-8000-00805f9b34fb"},
		{"2901", "00002901-0000-1000-8000-00805f9b34fb"},
		{"0000ff52", "0000ff52-0000-1000-8000-00805f9b34fb"},
		{"1775244D-6B43-439B-877C-060F2D9BED07", "1775244d-6b43-439b-877c-060f2d9bed07"},
		{"1775244d6b43439b877c060f2d9bed07", "1775244d-6b43-439b-877c-060f2d9bed07"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeUUID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeUUIDRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "xyz", "ff5", "not-a-uuid-at-all"} {
		_, err := NormalizeUUID(in)
		assert.Error(t, err, in)
	}
}

func TestSameUUID(t *testing.T) {
	assert.True(t, SameUUID("2901", "00002901-0000-1000-8000-00805F9B34FB"))
	assert.False(t, SameUUID("2901", "2902"))
	assert.False(t, SameUUID("bad", "bad"))
}
