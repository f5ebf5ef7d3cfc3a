package qrcode_test

import (
	"strings"
	"testing"

	goqrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrdata/pkg/qrcode"
)

// The default encoder detects capacity overflow by the library's error text.
func TestGoQRCode_TooLongMessage(t *testing.T) {
	t.Parallel()

	_, err := goqrcode.New(strings.Repeat("a", 3000), goqrcode.Medium)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestDefaultEncoder_CapacityBoundary(t *testing.T) {
	t.Parallel()

	// Version 40 at level M holds 2331 bytes in byte mode.
	fits := strings.Repeat("a", 2331)
	m, err := qrcode.DefaultEncoder().Encode(fits)
	require.NoError(t, err)
	assert.Equal(t, 177, m.Size())

	_, err = qrcode.DefaultEncoder().Encode(fits + "a")
	assert.ErrorIs(t, err, qrcode.ErrCapacityExceeded)
	assert.NotErrorIs(t, err, qrcode.ErrFailedToEncode)
}
