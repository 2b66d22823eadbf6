package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		_, err := New("", "", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrNoName)
	})

	t.Run("prefixes name and level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("BOARD", "", &buf)
		require.NoError(t, err)

		l.Info("generated")
		l.Warning("unverified")
		l.Error("broken")

		out := buf.String()
		assert.Contains(t, out, "[BOARD]")
		assert.Contains(t, out, "[INFO]\033[0m generated")
		assert.Contains(t, out, "[WARNING]\033[0m unverified")
		assert.Contains(t, out, "[ERROR]\033[0m broken")
	})
}
