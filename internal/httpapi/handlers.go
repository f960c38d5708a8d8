package httpapi

import (
	"net/http"

	foodex2 "github.com/openfoodex/foodex2validator"
	foodex2errors "github.com/openfoodex/foodex2validator/errors"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/openfoodex/foodex2validator/internal/obslog"
)

// Handlers serves the validator's HTTP API against a loaded engine.
type Handlers struct {
	engine            *foodex2.Engine
	logger            *zap.Logger
	defaultConcurrent int
}

// NewHandlers builds Handlers backed by engine. defaultConcurrency is used
// by /v1/validate/batch when the caller omits an explicit concurrency.
func NewHandlers(engine *foodex2.Engine, logger *zap.Logger, defaultConcurrency int) *Handlers {
	return &Handlers{engine: engine, logger: logger, defaultConcurrent: defaultConcurrency}
}

// HandleValidate handles POST /v1/validate.
func (h *Handlers) HandleValidate(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := obslog.WithRequest(h.logger, requestID)

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	logger = obslog.WithExpression(logger, req.Expression)

	var opts []foodex2.ValidateOption
	if req.HighNonBlocking {
		opts = append(opts, foodex2.WithHighNonBlocking())
	}

	result, err := h.engine.Validate(req.Expression, opts...)
	if err != nil {
		h.writeEngineError(c, logger, err)
		return
	}

	observeWarnings(result.Severity, result.WarningCounts.Total)
	logger.Info("validated expression", zap.Bool("valid", result.Valid), zap.String("severity", result.Severity))
	c.JSON(http.StatusOK, result)
}

// HandleValidateBatch handles POST /v1/validate/batch.
func (h *Handlers) HandleValidateBatch(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := obslog.WithRequest(h.logger, requestID)

	var req ValidateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = h.defaultConcurrent
	}

	results, err := h.engine.ValidateBatch(c.Request.Context(), req.Expressions, concurrency)
	if err != nil {
		h.writeEngineError(c, logger, err)
		return
	}

	for _, r := range results {
		observeWarnings(r.Severity, r.WarningCounts.Total)
	}
	logger.Info("validated batch", zap.Int("count", len(results)))
	c.JSON(http.StatusOK, ValidateBatchResponse{Results: results})
}

// HandleSearchTerms handles GET /v1/terms/search.
func (h *Handlers) HandleSearchTerms(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query", Code: "INVALID_REQUEST"})
		return
	}
	terms := h.engine.SearchTerms(req.Query, req.Limit)
	c.JSON(http.StatusOK, SearchResponse{Terms: terms})
}

// HandleHierarchyPath handles GET /v1/hierarchy/:hierarchy/:code/path.
func (h *Handlers) HandleHierarchyPath(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := obslog.WithRequest(h.logger, requestID)

	code := c.Param("code")
	hierarchyName := c.Param("hierarchy")
	if code == "" || hierarchyName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "code and hierarchy are required", Code: "MISSING_PARAMETER"})
		return
	}

	path, err := h.engine.HierarchyPath(code, hierarchyName)
	if err != nil {
		h.writeEngineError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, HierarchyPathResponse{Path: path})
}

// HandleHealthz handles GET /healthz.
func (h *Handlers) HandleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) writeEngineError(c *gin.Context, logger *zap.Logger, err error) {
	statusCode := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	if infra, ok := foodex2errors.AsInfra(err); ok {
		switch infra.Code {
		case foodex2errors.ErrCatalogueNotLoaded, foodex2errors.ErrNilExpression:
			statusCode = http.StatusBadRequest
			code = "BAD_REQUEST"
		case foodex2errors.ErrReferenceTableMissing:
			statusCode = http.StatusServiceUnavailable
			code = "REFERENCE_TABLE_MISSING"
		case foodex2errors.ErrHierarchyCycle:
			statusCode = http.StatusUnprocessableEntity
			code = "HIERARCHY_CYCLE"
		case foodex2errors.ErrCatalogueUnreadable:
			statusCode = http.StatusServiceUnavailable
			code = "CATALOGUE_UNREADABLE"
		}
	}

	logger.Error("engine error", zap.Error(err), zap.String("code", code))
	c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: code})
}
