package controllers

import (
	"net/http"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

// availableVoices is the static catalog exposed by the voices endpoint.
var availableVoices = []string{
	"en-US-natalie",
	"en-US-terrell",
	"en-US-miles",
	"en-UK-ruby",
	"en-AU-kylie",
}

type TTSController interface {
	GenerateSpeech(c *gin.Context)
	ListVoices(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type ttsController struct {
	logger      outbound.LoggerPort
	synthesizer outbound.SpeechSynthesizerPort
}

func NewTTSController(logger outbound.LoggerPort, synthesizer outbound.SpeechSynthesizerPort) TTSController {
	return &ttsController{
		logger:      logger,
		synthesizer: synthesizer,
	}
}

func (t *ttsController) GenerateSpeech(c *gin.Context) {
	var generateRequest dto.GenerateSpeechRequest
	if err := c.ShouldBindJSON(&generateRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audioUrl, err := t.synthesizer.Synthesize(c.Request.Context(), outbound.SynthesizeParams{
		Text:    generateRequest.Text,
		VoiceID: generateRequest.VoiceID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.GenerateSpeechResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateSpeechResponse{
		Success:  true,
		Message:  "Text converted to speech successfully",
		AudioURL: audioUrl,
	})
}

func (t *ttsController) ListVoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"voices":  availableVoices,
		"count":   len(availableVoices),
	})
}

func (t *ttsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/tts/generate", t.GenerateSpeech)
	g.GET("/api/tts/voices", t.ListVoices)
}
