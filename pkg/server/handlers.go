package server

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/matzehuels/hobohm/pkg/cache"
	"github.com/matzehuels/hobohm/pkg/errors"
	"github.com/matzehuels/hobohm/pkg/neighbor"
	"github.com/matzehuels/hobohm/pkg/pipeline"
)

// ReduceRequest is the body of POST /v1/reduce.
type ReduceRequest struct {
	Triples  []neighbor.Triple `json:"triples"`
	Relation string            `json:"relation"`
	Cutoff   *float64          `json:"cutoff"`
	Keep     []string          `json:"keep,omitempty"`
	Refresh  bool              `json:"refresh,omitempty"`
}

// ReduceResponse is the body of a successful reduce.
type ReduceResponse struct {
	RequestID string `json:"request_id"`
	CacheHit  bool   `json:"cache_hit"`
	*pipeline.Result
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReduce(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if goerrors.As(err, &tooLarge) {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodyBytes))
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	var req ReduceRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Relation == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidRelation, "relation is required (sim or dist)"))
		return
	}
	if req.Cutoff == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidCutoff, "cutoff is required"))
		return
	}
	if req.Triples == nil {
		req.Triples = []neighbor.Triple{}
	}

	opts := pipeline.Options{
		Triples:  req.Triples,
		Relation: req.Relation,
		Cutoff:   *req.Cutoff,
		Keep:     req.Keep,
		Refresh:  req.Refresh,
		Logger:   s.logger.With("request_id", RequestIDFromContext(r.Context())),
	}

	// Requests with identical bodies share one run. The run is detached
	// from any single caller's cancellation.
	ctx := r.Context()
	v, err, shared := s.flight.Do(cache.Hash(body), func() (any, error) {
		return s.runner.Execute(context.WithoutCancel(ctx), opts)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	res, ok := v.(*pipeline.Result)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeInternal, "unexpected result type %T", v))
		return
	}
	if shared {
		s.logger.Debug("coalesced reduce request", "request_id", RequestIDFromContext(ctx))
	}

	writeJSON(w, http.StatusOK, ReduceResponse{
		RequestID: RequestIDFromContext(ctx),
		CacheHit:  res.CacheHit,
		Result:    res,
	})
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"INTERNAL_ERROR","message":%q}}`, err.Error()), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
