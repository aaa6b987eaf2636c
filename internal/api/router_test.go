package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/box-bench/internal/apperr"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/in_mem"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(opts ...EvalRouterOption) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewEvalRouter(e, opts...).Bind()
	return e
}

func postEvaluation(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validRequest = `{
  "classes": ["cabinet", "chair"],
  "iou_thresholds": [0.25, 0.5],
  "samples": [
    {
      "predictions": [
        {"box": [0, 0, 0, 2, 2, 2, 0], "score": 0.9, "label": 0}
      ],
      "ground_truth": [
        {"box": [0, 0, 0, 2, 2, 2, 0], "label": 0}
      ]
    }
  ]
}`

func TestEvaluateHandler(t *testing.T) {
	e := newTestServer()

	rec := postEvaluation(e, validRequest)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Scores)
	assert.InDelta(t, 1.0, resp.Scores.Metrics["AP_0.25"], 1e-9)
	assert.InDelta(t, 1.0, resp.Scores.Metrics["AR_0.50"], 1e-9)
	assert.Empty(t, resp.RunID)
}

func TestEvaluateHandler_StoresRun(t *testing.T) {
	storer := in_mem.NewInMemStorer()
	e := newTestServer(WithRunStorer(storer))

	rec := postEvaluation(e, validRequest)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 1, storer.Len())
}

func TestEvaluateHandler_Validation(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{`},
		{"missing classes", `{"samples": [{"predictions": [], "ground_truth": []}]}`},
		{"missing samples", `{"classes": ["chair"]}`},
		{"bad AP mode", `{"classes": ["chair"], "ap_mode": "steps", "samples": [{"predictions": [], "ground_truth": []}]}`},
		{"short box", `{"classes": ["chair"], "samples": [{"predictions": [{"box": [1, 2], "score": 0.5, "label": 0}], "ground_truth": []}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEvaluation(e, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
