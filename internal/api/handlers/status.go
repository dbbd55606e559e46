package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"overnight-analyzer/internal/data"
	"overnight-analyzer/internal/model"
	"overnight-analyzer/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON error envelope all handlers use.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusHandler serves the analyzer report over HTTP. Reports are
// recomputed lazily and held for a short TTL so a dashboard polling the
// endpoint does not hammer the data gateway.
type StatusHandler struct {
	runner     *pipeline.Runner
	reportPath string
	log        zerolog.Logger

	mu       sync.Mutex
	cached   *model.Report
	cachedAt time.Time
	ttl      time.Duration
}

// NewStatusHandler creates a status handler. reportPath, when set, is
// where refreshed reports are persisted.
func NewStatusHandler(runner *pipeline.Runner, reportPath string, log zerolog.Logger) *StatusHandler {
	return &StatusHandler{
		runner:     runner,
		reportPath: reportPath,
		log:        log.With().Str("component", "api").Logger(),
		ttl:        15 * time.Minute,
	}
}

// GetStatus handles GET /api/v1/status.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	rep, err := h.report(false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetMetrics handles GET /api/v1/metrics: the summary block only.
func (h *StatusHandler) GetMetrics(c *gin.Context) {
	rep, err := h.report(false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep.Metrics)
}

// Refresh handles POST /api/v1/refresh: force a recompute and persist
// the report.
func (h *StatusHandler) Refresh(c *gin.Context) {
	rep, err := h.report(true)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.reportPath != "" {
		if err := pipeline.WriteReport(h.reportPath, rep); err != nil {
			h.log.Error().Err(err).Str("path", h.reportPath).Msg("report not persisted")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: ErrorDetail{Code: "WRITE_ERROR", Message: err.Error()},
			})
			return
		}
	}
	c.JSON(http.StatusOK, rep)
}

func (h *StatusHandler) report(force bool) (*model.Report, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !force && h.cached != nil && time.Since(h.cachedAt) < h.ttl {
		return h.cached, nil
	}
	rep, err := h.runner.Run()
	if err != nil {
		return nil, err
	}
	h.cached = rep
	h.cachedAt = time.Now()
	return rep, nil
}

func (h *StatusHandler) fail(c *gin.Context, err error) {
	h.log.Error().Err(err).Msg("pipeline run failed")
	var provErr *data.ProviderError
	if errors.As(err, &provErr) {
		status := http.StatusBadGateway
		if provErr.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, ErrorResponse{
			Error: ErrorDetail{Code: provErr.Code, Message: provErr.Message},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "PIPELINE_ERROR", Message: err.Error()},
	})
}
