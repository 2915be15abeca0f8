package dlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger(t *testing.T) {
	for _, level := range LogLevels() {
		l, err := GetLogger(level)
		require.NoError(t, err)
		require.NotNil(t, l)
	}

	_, err := GetLogger("noise")
	require.Error(t, err)

	assert.NotPanics(t, func() {
		MustGetLogger(LogLevelNone).Info("discarded")
	})
	assert.Panics(t, func() {
		MustGetLogger("noise")
	})
}
