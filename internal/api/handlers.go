package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/logger"
	"github.com/jonesrussell/north-cloud/listening/internal/service"
)

// Handler holds HTTP request handlers.
type Handler struct {
	analytics *service.AnalyticsService
	logger    logger.Logger
	metrics   *Metrics
}

// NewHandler creates a new handler instance.
func NewHandler(analytics *service.AnalyticsService, log logger.Logger, metrics *Metrics) *Handler {
	return &Handler{
		analytics: analytics,
		logger:    log,
		metrics:   metrics,
	}
}

// Emotions handles the emotion-mix time series view.
func (h *Handler) Emotions(c *gin.Context) {
	runView(h, c, "emotions", h.analytics.Emotions)
}

// Leaderboard handles the category sentiment leaderboard view.
func (h *Handler) Leaderboard(c *gin.Context) {
	runView(h, c, "leaderboard", h.analytics.Leaderboard)
}

// Inflation handles the inflation narrative view.
func (h *Handler) Inflation(c *gin.Context) {
	runView(h, c, "inflation", h.analytics.Inflation)
}

// Trust handles the institutional trust-dimension view.
func (h *Handler) Trust(c *gin.Context) {
	runView(h, c, "trust", h.analytics.Trust)
}

// Sectors handles the sector distribution view.
func (h *Handler) Sectors(c *gin.Context) {
	runView(h, c, "sectors", h.analytics.Sectors)
}

// runView binds the common request body, executes one analytic view and maps
// errors: validation failures surface as 400 with their message, anything
// else as a generic 500 with the detail kept in the logs.
func runView[T any](
	h *Handler,
	c *gin.Context,
	view string,
	fn func(ctx context.Context, req *domain.InsightsRequest) (T, error),
) {
	var req domain.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body",
			logger.String("view", view),
			logger.Error(err),
		)
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Success:   false,
			Error:     "Invalid request body: " + err.Error(),
			Timestamp: time.Now(),
		})
		return
	}

	result, err := fn(c.Request.Context(), &req)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, domain.ErrorResponse{
				Success:   false,
				Error:     validationErr.Message,
				Timestamp: time.Now(),
			})
			return
		}

		h.metrics.SearchErrors.WithLabelValues(view).Inc()
		h.logger.Error("analytic view failed",
			logger.String("view", view),
			logger.Int("topic_id", req.TopicID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Success:   false,
			Error:     "Internal server error",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(c *gin.Context) {
	status := h.analytics.HealthCheck(c.Request.Context())

	if status.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ReadinessCheck handles readiness check requests.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	h.HealthCheck(c)
}
