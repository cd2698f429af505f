// Package http provides http transport for analyze
package http

import (
	stdhttp "net/http"

	"ideaguard/internal/modkit/httpkit"
	"ideaguard/internal/services/analyze/domain"
)

// maxBody caps a submission, existing_texts included
const maxBody = 1 << 20

// decode ignores unknown fields so older clients keep working
var decode = httpkit.JSONOptions{MaxBytes: maxBody}

// Register mounts the enveloped analyze endpoint on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/", h.analyze, decode)
}

// RegisterBare mounts POST /analyze answering with the bare result object
func RegisterBare(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/analyze", h.analyzeBare, decode)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /api/v1/analyze Analyze analyze
// @Summary Score an idea against existing ideas
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.Submission true "Idea"
// @Success 200 {object} domain.Result "ok"
// @Router /api/v1/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.Submission) (any, error) {
	res, err := h.svc.Analyze(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// swagger:route POST /analyze Analyze analyzeBare
// @Summary Score an idea, unwrapped response
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.Submission true "Idea"
// @Success 200 {object} domain.Result "ok"
// @Router /analyze [post]
func (h *handlers) analyzeBare(r *stdhttp.Request, in domain.Submission) (any, error) {
	res, err := h.svc.Analyze(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(res), nil
}
