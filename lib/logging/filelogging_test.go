package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampedPath(t *testing.T) {
	startedAt := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "/var/log/invoicehub-2024-03-05T09-30-00.log", timestampedPath("/var/log/invoicehub.log", startedAt))
	assert.Equal(t, "/var/log/invoicehub-2024-03-05T09-30-00", timestampedPath("/var/log/invoicehub", startedAt))
}

func TestLoggerWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger := Logger(filepath.Join(dir, "server.log"))
	logger.Info("started")

	matches, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
