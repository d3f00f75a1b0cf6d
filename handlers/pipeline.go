package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"voyago/models"
	"voyago/services/pipeline"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PipelineHandler exposes the resolution pipeline over HTTP, with a short
// Redis cache in front keyed on the full request payload.
type PipelineHandler struct {
	Service     *pipeline.Service
	CacheClient *redis.Client
	Logger      *zap.Logger
}

func NewPipelineHandler(svc *pipeline.Service, cacheClient *redis.Client) *PipelineHandler {
	return &PipelineHandler{
		Service:     svc,
		CacheClient: cacheClient,
		Logger:      utils.GetLogger().Named("pipeline-handler"),
	}
}

// Run handles POST /api/pipeline/run.
func (h *PipelineHandler) Run(c *gin.Context) {
	var req models.PipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if req.Query == "" && req.Text == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", "either query or text must be provided")
		return
	}

	// Cache key is the hex of the canonical JSON request, same payload
	// same key.
	reqBytes, err := json.Marshal(req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process request", err.Error())
		return
	}
	cacheKey := fmt.Sprintf("%s%x", utils.PipelineCachePrefix, reqBytes)

	if h.CacheClient != nil {
		cached, err := h.CacheClient.Get(c.Request.Context(), cacheKey).Result()
		if err == nil && cached != "" {
			var result models.PipelineResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				c.JSON(http.StatusOK, result)
				return
			}
			// Corrupt entry, fall through to recompute.
		}
	}

	result, err := h.Service.Run(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("pipeline run failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Pipeline run failed", err.Error())
		return
	}

	if h.CacheClient != nil {
		if resBytes, err := json.Marshal(result); err == nil {
			if err := h.CacheClient.Set(c.Request.Context(), cacheKey, resBytes, utils.PipelineCacheTTL).Err(); err != nil {
				h.Logger.Warn("failed to cache pipeline result", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

// Tag handles POST /api/pipeline/tag: tagging plus resolution on caller
// supplied text, skipping content generation even when a query is present.
func (h *PipelineHandler) Tag(c *gin.Context) {
	var req models.PipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if req.Text == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", "text must be provided")
		return
	}
	req.Query = ""

	result, err := h.Service.Run(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("pipeline tag failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Pipeline run failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health handles GET /health with the latest dependency snapshot.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}
