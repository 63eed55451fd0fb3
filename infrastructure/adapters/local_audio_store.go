package adapters

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/config"
)

type localAudioStore struct {
	logger      outbound.LoggerPort
	storeConfig *config.AudioStoreConfig
}

// NewLocalAudioStore writes audio clips to the uploads directory, which the
// server exposes under the configured public path.
func NewLocalAudioStore(storeConfig *config.AudioStoreConfig, logger outbound.LoggerPort) (outbound.AudioStorePort, error) {
	if err := os.MkdirAll(storeConfig.UploadsDir, 0o755); err != nil {
		logger.Error(err, "Failed to create the uploads directory")
		return nil, err
	}

	return &localAudioStore{
		logger:      logger,
		storeConfig: storeConfig,
	}, nil
}

func (l *localAudioStore) Save(_ context.Context, audio []byte, name string) (string, error) {
	filePath := filepath.Join(l.storeConfig.UploadsDir, name)
	if err := os.WriteFile(filePath, audio, 0o644); err != nil {
		l.logger.ErrorWithFields(err, "Failed to write the audio file", map[string]interface{}{
			"path": filePath,
		})
		return "", err
	}

	return path.Join(l.storeConfig.PublicPath, name), nil
}
