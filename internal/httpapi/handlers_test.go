package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	foodex2 "github.com/openfoodex/foodex2validator"
	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/model"
	"github.com/openfoodex/foodex2validator/internal/rules"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	engine := newSeededEngine(t)
	logger := zap.NewNop()
	return NewRouter(engine, logger, 4)
}

func newSeededEngine(t *testing.T) *foodex2.Engine {
	t.Helper()
	store := catalogue.New()
	for _, def := range rules.DefaultDefinitions() {
		store.AddRule(def)
	}
	store.AddTerm(&model.Term{Code: "A0B9Z", ExtendedName: "Apple", TermType: model.TermTypeRaw})
	store.AddHierarchyLink(catalogue.ReportingHierarchy, "A0B9Z", "")
	store.BuildSearchIndex()
	return foodex2.NewEngineForTesting(store)
}

func TestHandleValidateReturnsOK(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(ValidateRequest{Expression: "A0B9Z"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get(requestIDHeader))

	var result foodex2.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.True(t, result.Valid)
}

func TestHandleValidateRejectsMissingExpression(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleValidateBatchPreservesOrder(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(ValidateBatchRequest{Expressions: []string{"A0B9Z", "ZZZZZ"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp ValidateBatchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A0B9Z", resp.Results[0].OriginalCode)
	assert.Equal(t, "ZZZZZ", resp.Results[1].OriginalCode)
}

func TestHandleSearchTerms(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/terms/search?q=apple", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Terms, 1)
	assert.Equal(t, "A0B9Z", resp.Terms[0].Code)
}

func TestHandleHierarchyPath(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/hierarchy/"+catalogue.ReportingHierarchy+"/A0B9Z/path", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp HierarchyPathResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, []string{"A0B9Z"}, resp.Path)
}

func TestHandleHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestMetricsEndpointExposesFoodex2Metrics(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(ValidateRequest{Expression: "A0B9Z"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRecorder := httptest.NewRecorder()
	router.ServeHTTP(metricsRecorder, metricsReq)

	assert.Equal(t, http.StatusOK, metricsRecorder.Code)
	assert.Contains(t, metricsRecorder.Body.String(), "foodex2_http_requests_total")
}
