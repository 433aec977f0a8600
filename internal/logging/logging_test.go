package logging

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleipnirhttp/sleipnir/internal/config"
)

func TestInitStdout(t *testing.T) {
	logger, err := Init(&config.Config{LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, err := Init(&config.Config{LogLevel: "chatty"})
	require.Error(t, err)
}

func TestInitWithLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		LogLevel:     "info",
		LogFilePath:  filepath.Join(dir, "logs", "sleipnir.log"),
		LogMaxSizeMB: 1,
	}

	logger, err := Init(cfg)
	require.NoError(t, err)

	logger.Info("hello")
	assert.FileExists(t, cfg.LogFilePath)
}
