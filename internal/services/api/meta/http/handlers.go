// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"ideaguard/internal/core/version"
	"ideaguard/internal/modkit/httpkit"
)

// CorpusCounter reports how many first ideas were recorded
type CorpusCounter interface {
	Len() int
}

// EmbedderInfo is the subset of an embedder meta reports on
type EmbedderInfo interface {
	Name() string
	Dims() int
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Embedder    EmbedderInfo  // optional
	Corpus      CorpusCounter // optional
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"ideaguard-api"`
	Started string `json:"started"  example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-01T13:05:00Z"`
}

// EmbedderResponse describes the active embedding provider
type EmbedderResponse struct {
	Name string `json:"name" example:"onnx:model.onnx"`
	Dims int    `json:"dims" example:"384"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name       string            `json:"name"        example:"ideaguard-api"`
	Started    string            `json:"started"     example:"2026-10-01T13:00:00Z"`
	Uptime     int64             `json:"uptime"      example:"300"`
	Embedder   *EmbedderResponse `json:"embedder,omitempty"`
	CorpusSize int               `json:"corpus_size" example:"12"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info, uptime, embedder and corpus size
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}
	if e := h.deps.Embedder; e != nil {
		out.Embedder = &EmbedderResponse{Name: e.Name(), Dims: e.Dims()}
	}
	if c := h.deps.Corpus; c != nil {
		out.CorpusSize = c.Len()
	}
	return out, nil
}
