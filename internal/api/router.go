package api

import (
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/box-bench/internal/apperr"
	"github.com/DjordjeVuckovic/box-bench/internal/eval"
	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/labstack/echo/v4"
)

type EvalRouter struct {
	e      *echo.Echo
	storer storage.RunStorer
}

type EvalRouterOption func(*EvalRouter)

// WithRunStorer persists every evaluation result after scoring.
func WithRunStorer(s storage.RunStorer) EvalRouterOption {
	return func(r *EvalRouter) {
		r.storer = s
	}
}

func NewEvalRouter(e *echo.Echo, opts ...EvalRouterOption) *EvalRouter {
	r := &EvalRouter{e: e}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *EvalRouter) Bind() {
	r.e.POST("/v1/evaluations", r.evaluateHandler)
}

func (r *EvalRouter) evaluateHandler(c echo.Context) error {
	var req EvaluationRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("malformed request body", err)
	}

	if len(req.Classes) == 0 {
		return apperr.NewValidation("classes is required")
	}
	if len(req.Samples) == 0 {
		return apperr.NewValidation("samples is required")
	}

	ev, err := eval.New(eval.Config{
		IoUThresholds: req.IoUThresholds,
		APMode:        req.APMode,
		ClassNames:    req.Classes,
	})
	if err != nil {
		return err
	}

	preds, gts, err := req.toPairs()
	if err != nil {
		return apperr.NewValidationWrap("invalid sample", err)
	}
	if err := ev.Add(preds, gts); err != nil {
		return apperr.NewValidationWrap("invalid sample", err)
	}

	scores, err := ev.Compute()
	if err != nil {
		return err
	}

	resp := EvaluationResponse{Scores: scores}

	if r.storer != nil {
		mode := req.APMode
		if mode == "" {
			mode = eval.APModeArea
		}
		run := storage.Run{
			SuiteName:   "api",
			APMode:      mode,
			Thresholds:  scores.Thresholds,
			SampleCount: len(req.Samples),
			Metrics:     scores.Metrics,
			PerClass:    scores.PerClass,
		}
		id, err := r.storer.Save(c.Request().Context(), run)
		if err != nil {
			slog.Error("failed to store evaluation run", "error", err)
		} else {
			resp.RunID = id.String()
		}
	}

	return c.JSON(http.StatusOK, resp)
}
