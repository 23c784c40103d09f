package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/oakmoss/platon/internal/config"
	"github.com/oakmoss/platon/internal/models"
	"github.com/oakmoss/platon/internal/repository"
	"github.com/oakmoss/platon/internal/syntactic"
)

// Handler holds dependencies for the detection API.
type Handler struct {
	cfg         *config.Config
	engine      *syntactic.Engine
	reportsRepo *repository.ReportsRepository
	redisClient *redis.Client
}

func NewHandler(
	cfg *config.Config,
	engine *syntactic.Engine,
	reportsRepo *repository.ReportsRepository,
	redisClient *redis.Client,
) *Handler {
	return &Handler{
		cfg:         cfg,
		engine:      engine,
		reportsRepo: reportsRepo,
		redisClient: redisClient,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// Config reports the engine parameters the server was started with, so a
// client can tell how thresholds and fragment boundaries will be derived.
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"kGramSize":        h.cfg.KGramSize,
		"windowSize":       h.cfg.WindowSize,
		"syntacticWeight":  h.cfg.SyntacticWeight,
		"inlineBatchLimit": h.cfg.InlineBatchLimit,
		"maxFileSizeBytes": h.cfg.MaxFileSize,
	})
}

func (h *Handler) Detect(c *gin.Context) {
	var req models.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	opts := syntactic.DetectOptions{
		Threshold:      req.Threshold,
		MinOccurrences: req.MinOccurrences,
	}

	result, err := h.engine.Detect(req.File1.Name, req.File1.Text, req.File2.Name, req.File2.Text, opts)
	if err != nil {
		log.Warn().Err(err).Str("file1", req.File1.Name).Str("file2", req.File2.Name).Msg("detect degraded to empty result")
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) DetectBatch(c *gin.Context) {
	var req models.BatchDetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if len(req.Files) <= h.cfg.InlineBatchLimit {
		h.detectBatchInline(c, req)
		return
	}

	h.detectBatchQueued(c, req)
}

func (h *Handler) detectBatchInline(c *gin.Context, req models.BatchDetectRequest) {
	ctx := c.Request.Context()

	files := make([]syntactic.SourceFile, len(req.Files))
	for i, f := range req.Files {
		files[i] = syntactic.SourceFile{Name: f.Name, Text: f.Text}
	}

	opts := syntactic.DetectOptions{
		Threshold:      req.Threshold,
		MinOccurrences: req.MinOccurrences,
	}

	result, err := h.engine.DetectBatch(ctx, files, opts)
	if err != nil {
		log.Error().Err(err).Msg("inline batch detect failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to run batch detection",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) detectBatchQueued(c *gin.Context, req models.BatchDetectRequest) {
	ctx := c.Request.Context()
	reportID := uuid.New().String()

	if err := h.reportsRepo.InsertQueued(ctx, reportID); err != nil {
		log.Error().Err(err).Str("reportId", reportID).Msg("failed to queue report")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to queue batch",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	job := models.BatchJob{
		ReportID:       reportID,
		Files:          req.Files,
		Threshold:      req.Threshold,
		MinOccurrences: req.MinOccurrences,
	}

	payload, err := json.Marshal(job)
	if err != nil {
		log.Error().Err(err).Str("reportId", reportID).Msg("failed to marshal batch job")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to queue batch",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	err = h.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: h.cfg.RedisStreamKey,
		Values: map[string]interface{}{"payload": string(payload)},
	}).Err()
	if err != nil {
		log.Error().Err(err).Str("reportId", reportID).Msg("failed to enqueue batch job")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to queue batch",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusAccepted, models.BatchDetectAccepted{
		ReportID: reportID,
		Status:   models.StatusQueued,
	})
}

func (h *Handler) Report(c *gin.Context) {
	reportID := c.Param("id")

	report, err := h.reportsRepo.GetByID(c.Request.Context(), reportID)
	if err != nil {
		log.Error().Err(err).Str("reportId", reportID).Msg("failed to load report")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load report",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Report not found",
			Code:  "REPORT_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
