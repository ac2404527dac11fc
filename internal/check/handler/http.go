package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linkguard/go-url-guard/internal/check/domain"
	"github.com/linkguard/go-url-guard/internal/check/service"
)

type HTTPHandler struct {
	service *service.CheckService
	logger  *zap.Logger
}

func NewHTTPHandler(service *service.CheckService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		logger:  logger,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/checks", h.CreateCheck)
		api.GET("/checks/recent", h.RecentChecks)
		api.GET("/checks/stats", h.CheckStats)
		api.GET("/prechecks", h.Precheck)
	}
}

// CreateCheck runs the full validation pipeline. A URL that fails
// validation still gets a 200: rejection is an expected outcome and the
// body carries the reason.
func (h *HTTPHandler) CreateCheck(c *gin.Context) {
	var req domain.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.CheckURL(c.Request.Context(), req.URL)
	if err != nil {
		h.logger.Error("Failed to check URL",
			zap.Error(err), zap.String("url", req.URL))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Precheck is the cheap format check backing per-keystroke UI feedback.
func (h *HTTPHandler) Precheck(c *gin.Context) {
	input := c.Query("input")
	c.JSON(http.StatusOK, h.service.Precheck(input))
}

func (h *HTTPHandler) RecentChecks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	recs, err := h.service.RecentChecks(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to get recent checks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checks": recs,
		"limit":  limit,
		"offset": offset,
	})
}

// CheckStats reports how many checks ended in each verdict.
func (h *HTTPHandler) CheckStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get check stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
