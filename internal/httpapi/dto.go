package httpapi

import foodex2 "github.com/openfoodex/foodex2validator"

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Expression string `json:"expression" binding:"required"`
	// HighNonBlocking overrides the engine's default HIGH-severity
	// blocking behavior for this call only (spec.md §9).
	HighNonBlocking bool `json:"high_non_blocking"`
}

// ValidateBatchRequest is the body of POST /v1/validate/batch.
type ValidateBatchRequest struct {
	Expressions []string `json:"expressions" binding:"required,min=1,dive,required"`
	Concurrency int      `json:"concurrency"`
}

// ValidateBatchResponse wraps the per-expression results of a batch call.
type ValidateBatchResponse struct {
	Results []*foodex2.Result `json:"results"`
}

// SearchRequest is the query for GET /v1/terms/search.
type SearchRequest struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit"`
}

// SearchResponse wraps free-text catalogue search hits.
type SearchResponse struct {
	Terms []foodex2.TermSummary `json:"terms"`
}

// HierarchyPathResponse wraps a single hierarchy breadcrumb.
type HierarchyPathResponse struct {
	Path []string `json:"path"`
}

// ErrorResponse is the uniform error body for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
