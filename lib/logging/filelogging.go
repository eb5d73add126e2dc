package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

const fileTimestampLayout = "2006-01-02T15-04-05"

// Logger writes to STDOUT, or to a timestamped file when logFilePath is set.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout,
		lecho.WithLevel(log.DEBUG),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := GetLoggingFile(logFilePath, time.Now())
		if err != nil {
			logger.Errorf("failed to create logging file, logging to STDOUT: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}

// GetLoggingFile creates path with the start time inserted before its
// extension, so every run gets its own file.
func GetLoggingFile(path string, startedAt time.Time) (*os.File, error) {
	return os.Create(timestampedPath(path, startedAt))
}

func timestampedPath(path string, startedAt time.Time) string {
	stamp := startedAt.Format(fileTimestampLayout)
	extension := filepath.Ext(path)
	if extension == "" {
		return path + "-" + stamp
	}
	return strings.TrimSuffix(path, extension) + "-" + stamp + extension
}
