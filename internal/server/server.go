// Package server exposes the billing calculations over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/billing-calc/internal/billing"
	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/iwvelando/billing-calc/pkg/datetime"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Options tunes the handler. Zero values select defaults.
type Options struct {
	MaxRequestSize int64
	Version        string
	// Now supplies the evaluation instant for overdue billing.
	Now      func() time.Time
	Registry *prometheus.Registry
}

type handler struct {
	logger         *zap.Logger
	catalog        catalog.Catalog
	maxRequestSize int64
	version        string
	now            func() time.Time
	metrics        *Metrics
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, cat catalog.Catalog, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	h := &handler{
		logger:         logger,
		catalog:        cat,
		maxRequestSize: opts.MaxRequestSize,
		version:        trimmedVersion,
		now:            opts.Now,
		metrics:        NewMetrics(opts.Registry),
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.handleMethodNotAllowed)

	// Calculations
	router.HandleFunc("/calculate-overdue-billing", h.handleOverdueBilling).Methods(http.MethodPost)
	router.HandleFunc("/calculate-termination-penalty", h.handleTerminationPenalty).Methods(http.MethodPost)

	// Form support
	router.HandleFunc("/api/catalog", h.handleCatalog).Methods(http.MethodGet)
	router.HandleFunc("/api/calendar/next-due-date", h.handleNextDueDate).Methods(http.MethodGet)
	router.HandleFunc("/api/calendar/next-reference-month", h.handleNextReferenceMonth).Methods(http.MethodGet)

	// Operations
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)

	return requestIDMiddleware(h.loggingMiddleware(h.metrics.Instrument(router, h.recoveryMiddleware(router))))
}

func (h *handler) handleOverdueBilling(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOverdueBilling"

	var req billing.OverdueBillingRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	evaluation := h.now()
	result, err := billing.ComputeOverdueBilling(req, h.catalog.Plans, evaluation)
	if err != nil {
		h.respondCalculationError(w, r, constants.CalculationOverdue, err, op)
		return
	}

	h.metrics.RecordCalculation(constants.CalculationOverdue, resultSuccess, result.GrandTotal.InexactFloat64())
	h.logger.Debug("overdue billing calculated",
		zap.String("op", op),
		zap.String("plan", req.PlanName),
		zap.Time("evaluation", evaluation),
		zap.String("grand_total", result.GrandTotal.StringFixed(constants.DecimalPlaces)),
	)
	h.writeJSON(w, http.StatusOK, newOverdueBillingResponse(result))
}

func (h *handler) handleTerminationPenalty(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTerminationPenalty"

	var req billing.TerminationRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, err := billing.ComputeTerminationPenalty(req, h.catalog.FineSchedule, h.catalog.Equipment)
	if err != nil {
		h.respondCalculationError(w, r, constants.CalculationTermination, err, op)
		return
	}

	h.metrics.RecordCalculation(constants.CalculationTermination, resultSuccess, result.GrandTotal.InexactFloat64())
	h.logger.Debug("termination penalty calculated",
		zap.String("op", op),
		zap.String("lookup_method", result.LookupMethod),
		zap.Bool("exempt", result.ExemptFromFine),
		zap.String("grand_total", result.GrandTotal.StringFixed(constants.DecimalPlaces)),
	)
	h.writeJSON(w, http.StatusOK, newTerminationResponse(result))
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newCatalogResponse(h.catalog))
}

func (h *handler) handleNextDueDate(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	next, err := datetime.NextDueDate(from)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest,
			fmt.Sprintf("invalid from %q: expected YYYY-MM-DD", from), "server.handleNextDueDate")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"from": from, "next": next})
}

func (h *handler) handleNextReferenceMonth(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	next, err := datetime.NextReferenceMonth(from)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest,
			fmt.Sprintf("invalid from %q: expected YYYY-MM", from), "server.handleNextReferenceMonth")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"from": from, "next": next})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
}

func (h *handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}

// decodeJSON reads a size-limited JSON body into dst. It writes the error
// response itself and reports whether the caller may proceed.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxRequestSize), op)
			return false
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondCalculationError(w http.ResponseWriter, r *http.Request, calculation string, err error, op string) {
	if billing.IsValidationError(err) {
		h.metrics.RecordCalculation(calculation, resultValidationError, 0)
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.metrics.RecordCalculation(calculation, resultError, 0)
	h.logger.Error("calculation failed",
		zap.String("op", op),
		zap.String("calculation", calculation),
		zap.Error(err),
	)
	h.respondErrorWithOp(w, r, http.StatusInternalServerError, constants.GenericFailureMessage, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
		zap.String("request_id", RequestIDFromContext(r.Context())),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
