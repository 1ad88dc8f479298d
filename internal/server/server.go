// Package server exposes the expression evaluator over HTTP: a JSON
// evaluation endpoint, a health probe, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/eval"
	"github.com/agbru/bigcalc/internal/logging"
)

// tracerName identifies this instrumentation scope to OpenTelemetry.
const tracerName = "github.com/agbru/bigcalc/internal/server"

// ShutdownGrace bounds how long a draining server waits for in-flight
// requests after the run context is canceled.
const ShutdownGrace = 10 * time.Second

// Server serves the evaluation API.
type Server struct {
	addr     string
	ev       eval.Evaluator
	logger   logging.Logger
	metrics  *Metrics
	security SecurityConfig
	tracer   trace.Tracer
	timeout  time.Duration

	httpServer *http.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithSecurityConfig overrides the default security configuration.
func WithSecurityConfig(sc SecurityConfig) Option {
	return func(s *Server) { s.security = sc }
}

// WithEvalTimeout bounds each evaluation request.
func WithEvalTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// NewServer builds a Server listening on addr, evaluating with ev.
func NewServer(addr string, ev eval.Evaluator, logger logging.Logger, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		ev:       ev,
		logger:   logger,
		metrics:  NewMetrics(),
		security: DefaultSecurityConfig(),
		tracer:   otel.Tracer(tracerName),
		timeout:  time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/eval", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleEval)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server draining")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

// evalRequest is the JSON body accepted by /v1/eval.
type evalRequest struct {
	// Expr is a single expression to evaluate.
	Expr string `json:"expr,omitempty"`
	// Exprs evaluates a batch; mutually exclusive with Expr.
	Exprs []string `json:"exprs,omitempty"`
	// Hex adds the grouped hexadecimal rendering to each result.
	Hex bool `json:"hex,omitempty"`
}

// evalResult is the JSON outcome for one expression.
type evalResult struct {
	Expr      string `json:"expr"`
	Result    string `json:"result,omitempty"`
	Hex       string `json:"hex,omitempty"`
	Bits      int    `json:"bits,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// evalResponse is the JSON body returned by /v1/eval.
type evalResponse struct {
	Results []evalResult `json:"results"`
}

// errorResponse is the JSON body for request-level failures.
type errorResponse struct {
	Error string `json:"error"`
}

// handleEval evaluates one or more expressions from a JSON request.
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "only POST is allowed")
		return
	}

	var req evalRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, int64(s.security.MaxExprLen)*2)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	exprs := req.Exprs
	if req.Expr != "" {
		if len(exprs) > 0 {
			s.writeError(w, http.StatusBadRequest, `"expr" and "exprs" are mutually exclusive`)
			return
		}
		exprs = []string{req.Expr}
	}
	if len(exprs) == 0 {
		s.writeError(w, http.StatusBadRequest, "no expression provided")
		return
	}
	if len(exprs) > s.security.MaxBatchSize {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("batch of %d exceeds the limit of %d expressions", len(exprs), s.security.MaxBatchSize))
		return
	}
	for _, expr := range exprs {
		if len(expr) > s.security.MaxExprLen {
			s.writeError(w, http.StatusBadRequest,
				fmt.Sprintf("expression of %d bytes exceeds the limit of %d", len(expr), s.security.MaxExprLen))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "eval.batch",
		trace.WithAttributes(attribute.Int("eval.batch_size", len(exprs))))
	defer span.End()

	resp := evalResponse{Results: make([]evalResult, 0, len(exprs))}
	for _, expr := range exprs {
		resp.Results = append(resp.Results, s.evalOne(ctx, expr, req.Hex))
	}

	status := http.StatusOK
	for _, res := range resp.Results {
		if res.Error != "" {
			// Partial failures keep 200 for batches; a single failed
			// expression reports 422.
			if len(resp.Results) == 1 {
				status = http.StatusUnprocessableEntity
			}
			span.SetStatus(codes.Error, res.Error)
			break
		}
	}

	s.writeJSON(w, status, resp)
}

// evalOne runs a single expression inside its own span.
func (s *Server) evalOne(ctx context.Context, expr string, hex bool) evalResult {
	ctx, span := s.tracer.Start(ctx, "eval.expression",
		trace.WithAttributes(attribute.Int("eval.expr_len", len(expr))))
	defer span.End()

	start := time.Now()
	value, err := s.ev.Evaluate(ctx, expr)
	elapsed := time.Since(start)

	res := evalResult{Expr: expr, ElapsedMs: elapsed.Milliseconds()}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.ObserveEvalError(evalErrorKind(err))
		s.logger.Error("evaluation failed", err, logging.String("expr", expr))
		res.Error = err.Error()
		return res
	}

	bits := value.BitLen()
	span.SetAttributes(attribute.Int("eval.result_bits", bits))
	s.metrics.ObserveEvaluation(bits, elapsed)

	res.Result = value.String()
	res.Bits = bits
	if hex {
		res.Hex = value.Hex()
	}
	return res
}

// evalErrorKind buckets evaluation failures for the error counter.
func evalErrorKind(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case apperrors.IsContextError(err):
		return "canceled"
	default:
		var synErr *eval.SyntaxError
		if errors.As(err, &synErr) {
			return "syntax"
		}
		return "eval"
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves Prometheus metrics on GET.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("metrics endpoint rejected method", logging.String("method", r.Method))
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// metricsMiddleware tracks in-flight requests and request outcomes.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, strconv.Itoa(rec.status), time.Since(start))
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// writeJSON serializes v with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", err)
	}
}

// writeError serializes a request-level error.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
