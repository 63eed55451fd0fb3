package controllers

import (
	"net/http"
	"os"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

type STTController interface {
	Transcribe(c *gin.Context)
	TranscribePath(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type sttController struct {
	logger      outbound.LoggerPort
	transcriber outbound.TranscriberPort
}

func NewSTTController(logger outbound.LoggerPort, transcriber outbound.TranscriberPort) STTController {
	return &sttController{
		logger:      logger,
		transcriber: transcriber,
	}
}

func (s *sttController) Transcribe(c *gin.Context) {
	audio, err := readAudioUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transcription, err := s.transcriber.Transcribe(c.Request.Context(), outbound.TranscribeParams{Audio: audio})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.TranscriptionResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionResponse{
		Success:       true,
		Message:       "Audio transcribed successfully",
		Transcript:    transcription.Text,
		Confidence:    transcription.Confidence,
		AudioDuration: transcription.Duration.Seconds(),
	})
}

// TranscribePath transcribes an audio file already on the server's disk, a
// convenience for files produced by earlier uploads.
func (s *sttController) TranscribePath(c *gin.Context) {
	var request dto.TranscribePathRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := os.ReadFile(request.FilePath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read audio file: " + err.Error()})
		return
	}

	transcription, err := s.transcriber.Transcribe(c.Request.Context(), outbound.TranscribeParams{Audio: audio})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.TranscriptionResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionResponse{
		Success:       true,
		Message:       "Audio transcribed successfully",
		Transcript:    transcription.Text,
		Confidence:    transcription.Confidence,
		AudioDuration: transcription.Duration.Seconds(),
	})
}

func (s *sttController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/stt/transcribe", s.Transcribe)
	g.POST("/api/stt/transcribe-path", s.TranscribePath)
}
