package controllers

import (
	"fmt"
	"net/http"
	"time"
	"voice-agent-api/application/ports/inbound"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/domain"
	"voice-agent-api/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AgentController interface {
	Chat(c *gin.Context)
	Echo(c *gin.Context)
	AudioQuery(c *gin.Context)
	GetSession(c *gin.Context)
	ListSessions(c *gin.Context)
	DeleteSession(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type agentController struct {
	logger       outbound.LoggerPort
	orchestrator inbound.ChatPipelineOrchestratorPort
	echoBot      inbound.EchoBotPort
	voiceQuery   inbound.VoiceQueryPort
}

func NewAgentController(logger outbound.LoggerPort, orchestrator inbound.ChatPipelineOrchestratorPort,
	echoBot inbound.EchoBotPort, voiceQuery inbound.VoiceQueryPort) AgentController {
	return &agentController{
		logger:       logger,
		orchestrator: orchestrator,
		echoBot:      echoBot,
		voiceQuery:   voiceQuery,
	}
}

// Chat runs one voice turn. Degraded turns still answer 200; only structural
// problems with the request produce an error status.
func (a *agentController) Chat(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	audio, err := readAudioUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := a.orchestrator.ProcessTurn(c.Request.Context(), inbound.ProcessTurnParams{
		SessionID: sessionID,
		Audio:     audio,
		VoiceID:   c.PostForm("voice_id"),
		Model:     c.PostForm("model"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messages, _ := a.orchestrator.GetHistory(sessionID, 0)

	message := "Chat completed successfully"
	if !outcome.Succeeded {
		message = fmt.Sprintf("Chat completed with a degraded %s stage", outcome.FailedStage)
	}

	c.JSON(http.StatusOK, dto.ChatResponse{
		Success:         outcome.Succeeded,
		Message:         message,
		SessionID:       sessionID,
		TranscribedText: outcome.TranscribedText,
		LLMResponse:     outcome.ResponseText,
		AudioURL:        outcome.AudioRef,
		FailedStage:     string(outcome.FailedStage),
		ProcessingTime:  outcome.ProcessingTime.Seconds(),
		MessageCount:    len(messages),
	})
}

func (a *agentController) Echo(c *gin.Context) {
	audio, err := readAudioUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := a.echoBot.Echo(c.Request.Context(), inbound.EchoParams{
		Audio:   audio,
		VoiceID: c.PostForm("voice_id"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.EchoResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.EchoResponse{
		Success:    true,
		Message:    "Echo completed successfully",
		Transcript: result.Transcript,
		AudioURL:   result.AudioRef,
		Confidence: result.Confidence,
	})
}

// AudioQuery answers one spoken question without touching any session. It
// fails fast: any stage error is a 500, there is no degradation here.
func (a *agentController) AudioQuery(c *gin.Context) {
	audio, err := readAudioUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := c.PostForm("model")

	result, err := a.voiceQuery.Query(c.Request.Context(), inbound.VoiceQueryParams{
		Audio:   audio,
		VoiceID: c.PostForm("voice_id"),
		Model:   model,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.AudioQueryResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.AudioQueryResponse{
		Success:         true,
		Message:         "Audio query completed successfully",
		TranscribedText: result.Transcript,
		LLMResponse:     result.Response,
		AudioURL:        result.AudioRef,
		ModelUsed:       model,
		ProcessingTime:  result.ProcessingTime.Seconds(),
	})
}

func (a *agentController) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
	}

	messages, ok := a.orchestrator.GetHistory(sessionID, limit)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Success:      true,
		SessionID:    sessionID,
		Messages:     toSessionMessages(messages),
		MessageCount: len(messages),
	})
}

func (a *agentController) ListSessions(c *gin.Context) {
	summaries := a.orchestrator.ListSessions()

	items := make([]dto.SessionSummaryItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.SessionSummaryItem{
			SessionID:    summary.SessionID,
			MessageCount: summary.MessageCount,
			CreatedAt:    summary.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    summary.UpdatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, dto.SessionListResponse{
		Success:       true,
		Sessions:      items,
		TotalSessions: len(items),
	})
}

func (a *agentController) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	if !a.orchestrator.DeleteSession(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}

	a.logger.InfoWithFields("Chat session deleted", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Chat session %s deleted successfully", sessionID),
	})
}

func (a *agentController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/agent/chat", a.Chat)
	g.POST("/api/agent/chat/:session_id", a.Chat)
	g.POST("/api/agent/echo", a.Echo)
	g.POST("/api/agent/audio-query", a.AudioQuery)
	g.GET("/api/agent/sessions", a.ListSessions)
	g.GET("/api/agent/sessions/:session_id", a.GetSession)
	g.DELETE("/api/agent/sessions/:session_id", a.DeleteSession)
}

func toSessionMessages(messages []domain.ChatMessage) []dto.SessionMessage {
	out := make([]dto.SessionMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, dto.SessionMessage{
			Role:      string(msg.Role),
			Content:   msg.Content,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		})
	}
	return out
}
