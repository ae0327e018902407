package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labsimplify/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	generator config.GeneratorConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(generator config.GeneratorConfig) *HealthHandler {
	return &HealthHandler{generator: generator}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz. It reports the active provider and fails when the
// generator configuration is unusable.
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Provider: h.generator.Provider, Model: h.generator.Model}
	if err := h.generator.Validate(); err != nil {
		resp.Status = "unavailable"
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
