package controllers

import (
	"encoding/json"
	"net/http"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/infrastructure/gin_interface/dto"
	"voice-agent-api/middleware"

	"github.com/gin-gonic/gin"
)

const defaultModel = "gemini-1.5-flash"

var availableModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-2.0-flash",
}

type LLMController interface {
	Query(c *gin.Context)
	Stream(c *gin.Context)
	ListModels(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type llmController struct {
	logger          outbound.LoggerPort
	generator       outbound.ResponseGeneratorPort
	streamGenerator outbound.StreamGeneratorPort
	workerPool      outbound.TaskDispatcher
}

func NewLLMController(logger outbound.LoggerPort, generator outbound.ResponseGeneratorPort,
	streamGenerator outbound.StreamGeneratorPort, workerPool outbound.TaskDispatcher) LLMController {
	return &llmController{
		logger:          logger,
		generator:       generator,
		streamGenerator: streamGenerator,
		workerPool:      workerPool,
	}
}

func (l *llmController) Query(c *gin.Context) {
	var queryRequest dto.QueryRequest
	if err := c.ShouldBindJSON(&queryRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := l.generator.Generate(c.Request.Context(), outbound.GenerateParams{
		Prompt: queryRequest.Text,
		Model:  queryRequest.Model,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.QueryResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.QueryResponse{
		Success:   true,
		Message:   "Query processed successfully",
		Response:  response,
		ModelUsed: queryRequest.Model,
	})
}

// Stream emits generation chunks as server-sent events, one data line per
// chunk, closing the stream with a done event.
func (l *llmController) Stream(c *gin.Context) {
	var queryRequest dto.QueryRequest
	if err := c.ShouldBindJSON(&queryRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outCh, errCh := l.streamGenerator.Generate(c.Request.Context(), outbound.GenerateParams{
		Prompt: queryRequest.Text,
		Model:  queryRequest.Model,
	})

	events, err := mergeStreamEvents(l.workerPool, outCh, errCh)
	if err != nil {
		l.logger.Error(err, "Failed to merge generation stream channels")
		l.writeEvent(c, gin.H{"type": "error", "message": err.Error()})
		return
	}

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				l.writeEvent(c, gin.H{"type": "done"})
				return
			}
			if ev.err != nil {
				l.writeEvent(c, gin.H{"type": "error", "message": ev.err.Error()})
				return
			}
			l.writeEvent(c, gin.H{"type": "chunk", "text": ev.chunk})
		}
	}
}

func (l *llmController) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ModelListResponse{
		Success:      true,
		Models:       availableModels,
		Count:        len(availableModels),
		DefaultModel: defaultModel,
	})
}

func (l *llmController) writeEvent(c *gin.Context, payload gin.H) {
	data, err := json.Marshal(payload)
	if err != nil {
		l.logger.Error(err, "Failed to marshal SSE event payload")
		return
	}
	if _, err := c.Writer.WriteString("data: " + string(data) + "\n\n"); err != nil {
		l.logger.Error(err, "Failed to write SSE event")
		return
	}
	c.Writer.Flush()
}

func (l *llmController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/llm/query", l.Query)
	g.POST("/api/llm/stream", middleware.SSEMiddleware(), l.Stream)
	g.GET("/api/llm/models", l.ListModels)
}
