package codepage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zicsv-go/zicsv/codepage"
)

func TestDecodeWindows1251_ASCII(t *testing.T) {
	t.Parallel()

	out, err := codepage.DecodeWindows1251([]byte("example.com"))
	require.NoError(t, err)
	assert.Equal(t, "example.com", out)
}

func TestDecodeWindows1251_Cyrillic(t *testing.T) {
	t.Parallel()

	// 0xF2 0xE5 0xF1 0xF2 is "тест" in Windows-1251.
	out, err := codepage.DecodeWindows1251([]byte{0xF2, 0xE5, 0xF1, 0xF2})
	require.NoError(t, err)
	assert.Equal(t, "тест", out)
}

func TestDecodeWindows1251_Unassigned(t *testing.T) {
	t.Parallel()

	_, err := codepage.DecodeWindows1251([]byte{0x98})
	require.Error(t, err)
}
