package controllers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// readAudioUpload pulls the "audio_file" part out of a multipart request and
// validates that it looks like audio.
func readAudioUpload(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		return nil, fmt.Errorf("audio_file is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, fmt.Errorf("file must be an audio file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return audio, nil
}
