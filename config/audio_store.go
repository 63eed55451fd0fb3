package config

import (
	"fmt"
	"os"
)

const (
	AudioStoreLocal = "local"
	AudioStoreS3    = "s3"
)

type AudioStoreConfig struct {
	Backend    string
	UploadsDir string
	PublicPath string
}

func GetAudioStoreConfig() (*AudioStoreConfig, error) {
	backend := os.Getenv("AUDIO_STORE_BACKEND")
	if backend == "" {
		backend = AudioStoreLocal
	}
	if backend != AudioStoreLocal && backend != AudioStoreS3 {
		return nil, fmt.Errorf("AUDIO_STORE_BACKEND must be %q or %q", AudioStoreLocal, AudioStoreS3)
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}

	publicPath := os.Getenv("UPLOADS_PUBLIC_PATH")
	if publicPath == "" {
		publicPath = "/uploads"
	}

	return &AudioStoreConfig{
		Backend:    backend,
		UploadsDir: uploadsDir,
		PublicPath: publicPath,
	}, nil
}
