// Package http writes handler results as JSON, success bodies wrapped in a request scoped envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "ideaguard/internal/platform/errors"
	"ideaguard/internal/platform/logger"
	pnet "ideaguard/internal/platform/net"
)

// Envelope is the body shape for every /api route and for every error
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(r *stdhttp.Request, status int) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
	}
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Debug().Err(err).Msg("response encode failed")
	}
}

// RespondError writes err as an envelope, 5xx causes go to the request log only
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := perr.HTTP(err)
	if status >= stdhttp.StatusInternalServerError {
		logFailure(r, status, err)
	}
	env := envelope(r, status)
	env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	JSON(w, status, env)
}

func logFailure(r *stdhttp.Request, status int, err error) {
	ev := logger.C(r.Context()).Error().Int("status", status)
	if e, ok := perr.As(err); ok {
		ev = ev.Object("error", e)
	} else {
		ev = ev.Err(err)
	}
	ev.Msg("request failed")
}

// Response is what return-style handlers hand back
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header // merged into the response headers
	Bare   bool           // write a success Body as is, without the envelope
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).writeTo(w, r)
	}
}

func (resp Response) writeTo(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	// errors always go out enveloped, status comes from the code
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	switch {
	case status == 0:
		status = stdhttp.StatusOK
	case status == stdhttp.StatusNoContent:
		w.WriteHeader(status)
		return
	}

	if resp.Bare {
		JSON(w, status, resp.Body)
		return
	}
	env := envelope(r, status)
	env.Data = resp.Body
	JSON(w, status, env)
}

// OK is a 200 with data in the envelope
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Bare is a 200 whose body is data itself
func Bare(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data, Bare: true} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error maps err to its status and envelope
func Error(err error) Response { return Response{Body: err} }
