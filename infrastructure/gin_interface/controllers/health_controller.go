package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

// providerKeys maps the service name reported by the detailed health check to
// the env var its provider is configured through.
var providerKeys = map[string]string{
	"assembly_ai": "ASSEMBLY_AI_API_KEY",
	"gemini_llm":  "GEMINI_API_KEY",
	"murf_tts":    "MURF_API_KEY",
}

type HealthController interface {
	Health(c *gin.Context)
	DetailedHealth(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type healthController struct {
	logger outbound.LoggerPort
}

func NewHealthController(logger outbound.LoggerPort) HealthController {
	return &healthController{logger: logger}
}

func (h *healthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Message: "Voice agent backend is running",
	})
}

// DetailedHealth reports per-provider configuration status and a rollup:
// healthy when all providers carry a key, degraded when some do, unhealthy
// when none do.
func (h *healthController) DetailedHealth(c *gin.Context) {
	services := make(map[string]dto.ServiceStatus, len(providerKeys))
	errorCount := 0

	for name, envKey := range providerKeys {
		if os.Getenv(envKey) == "" {
			services[name] = dto.ServiceStatus{
				Status:  "error",
				Message: fmt.Sprintf("%s is not configured", envKey),
			}
			errorCount++
			continue
		}
		services[name] = dto.ServiceStatus{
			Status:  "configured",
			Message: "API key configured",
		}
	}

	overallStatus := "healthy"
	if errorCount == len(providerKeys) {
		overallStatus = "unhealthy"
	} else if errorCount > 0 {
		overallStatus = "degraded"
	}

	h.logger.InfoWithFields("Health check completed", map[string]interface{}{
		"overall_status": overallStatus,
	})

	c.JSON(http.StatusOK, dto.DetailedHealthResponse{
		OverallStatus: overallStatus,
		Timestamp:     float64(time.Now().UnixMilli()) / 1000,
		Services:      services,
	})
}

func (h *healthController) RegisterRoutes(g *gin.Engine) {
	g.GET("/api/health", h.Health)
	g.GET("/api/health/detailed", h.DetailedHealth)
}
