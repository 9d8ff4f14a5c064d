package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/roi-calculator/internal/report"
	"github.com/iwvelando/roi-calculator/internal/savings"
	"github.com/iwvelando/roi-calculator/pkg/adapters"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	engine         *savings.Engine
	assembler      *report.Assembler
	maxRequestSize int64
	version        string
	metrics        *metrics
}

// NewHandler constructs the HTTP handler that serves the savings API. A nil
// engine or assembler is replaced with one using the built-in calibration and
// block library.
func NewHandler(logger *zap.Logger, engine *savings.Engine, assembler *report.Assembler, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = savings.NewEngine(logger, nil)
	}
	if assembler == nil {
		assembler = report.NewAssembler(logger, nil, engine.Tables())
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		engine:         engine,
		assembler:      assembler,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		metrics:        newMetrics(),
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.handleMethodNotAllowed)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(h.metrics.instrument)

	// Savings projection for one company profile
	api.HandleFunc("/calculate", h.handleCalculate).Methods(http.MethodPost)

	// Markdown report for one company profile
	api.HandleFunc("/report", h.handleReport).Methods(http.MethodPost)

	// Keys and display names for building requests
	api.HandleFunc("/catalog", h.handleCatalog).Methods(http.MethodGet)

	// Version endpoint for client metadata
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router
}

type calculateRequest struct {
	Revenue       float64            `json:"revenue"`
	Industry      string             `json:"industry"`
	RiskTolerance string             `json:"riskTolerance"`
	Expenses      map[string]float64 `json:"expenses,omitempty"`
	Solutions     []string           `json:"solutions"`
}

type reportRequest struct {
	calculateRequest
	CompanyName string `json:"companyName"`
	Variation   int    `json:"variation"`
}

type calculateResponse struct {
	ID          string              `json:"id"`
	CompanySize savings.CompanySize `json:"companySize"`
	Complexity  savings.Complexity  `json:"complexity"`
	Synergies   []savings.Synergy   `json:"synergies,omitempty"`
	Result      *savings.Result     `json:"result"`
	Warnings    []string            `json:"warnings,omitempty"`
	Duration    string              `json:"duration"`
}

type reportResponse struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Markdown string   `json:"markdown"`
	Missing  []string `json:"missing,omitempty"`
	Duration string   `json:"duration"`
}

type namedKey struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type catalogResponse struct {
	Categories      []savings.CategoryInfo    `json:"categories"`
	Solutions       []savings.SolutionInfo    `json:"solutions"`
	Industries      []savings.IndustryInfo    `json:"industries"`
	RiskTolerances  []namedKey                `json:"riskTolerances"`
	DefaultExpenses savings.ExpenseAllocation `json:"defaultExpenses"`
	Synergies       []savings.Synergy         `json:"synergies"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	var req calculateRequest
	if !h.decodeRequest(w, r, &req, op) {
		return
	}

	in, result, ok := h.calculate(w, req, op)
	if !ok {
		return
	}

	validator := validation.ConfigValidator{
		Company: validation.CompanyConfig{Expenses: req.Expenses},
	}
	warnings := validator.ValidateAll()
	if req.Expenses == nil {
		warnings = append(warnings, "expense profile not set, typical distributor profile used")
	}

	elapsed := time.Since(start)
	response := calculateResponse{
		ID:          uuid.NewString(),
		CompanySize: result.CompanySize,
		Complexity:  savings.ComplexityFor(in.Solutions),
		Synergies:   savings.SynergiesFor(in.Solutions),
		Result:      result,
		Warnings:    warnings,
		Duration:    elapsed.String(),
	}

	h.logger.Info("savings calculated",
		zap.String("op", op),
		zap.String("id", response.ID),
		zap.String("industry", string(in.Industry)),
		zap.String("riskTolerance", string(in.RiskTolerance)),
		zap.Int("solutions", in.Solutions.Count()),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	start := time.Now()

	var req reportRequest
	if !h.decodeRequest(w, r, &req, op) {
		return
	}
	if req.Variation < 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "variation must not be negative", op)
		return
	}

	in, result, ok := h.calculate(w, req.calculateRequest, op)
	if !ok {
		return
	}

	variation := req.Variation
	if variation == 0 {
		variation = constants.DefaultReportVariation
	}
	rep := h.assembler.Assemble(in, result, report.Options{
		CompanyName: strings.TrimSpace(req.CompanyName),
		Variation:   variation,
	})
	h.metrics.missingBlocks.Add(float64(len(rep.Missing)))

	elapsed := time.Since(start)
	h.logger.Info("report assembled",
		zap.String("op", op),
		zap.String("id", rep.ID),
		zap.Int("sections", len(rep.Sections)),
		zap.Int("missing", len(rep.Missing)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, reportResponse{
		ID:       rep.ID,
		Title:    rep.Title,
		Markdown: rep.Markdown(),
		Missing:  rep.Missing,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	risks := make([]namedKey, 0, len(savings.AllRiskTolerances))
	for _, risk := range savings.AllRiskTolerances {
		risks = append(risks, namedKey{Key: string(risk), Name: savings.RiskToleranceName(risk)})
	}

	all := savings.NewSolutionSelection(savings.AllSolutions...)
	h.writeJSON(w, http.StatusOK, catalogResponse{
		Categories:      savings.Categories(),
		Solutions:       savings.Solutions(),
		Industries:      savings.Industries(),
		RiskTolerances:  risks,
		DefaultExpenses: savings.DefaultExpenseAllocation(),
		Synergies:       savings.SynergiesFor(all),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path), "server.handleNotFound")
}

func (h *handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path), "server.handleMethodNotAllowed")
}

// decodeRequest reads a size-limited JSON body into dst. It writes the error
// response itself and reports whether decoding succeeded.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
		case errors.Is(err, io.EOF):
			h.respondErrorWithOp(w, http.StatusBadRequest, "request body is empty", op)
		default:
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err), op)
		}
		return false
	}
	return true
}

func (h *handler) calculate(w http.ResponseWriter, req calculateRequest, op string) (savings.Input, *savings.Result, bool) {
	in, err := adapters.NewInput(req.Revenue, req.Industry, req.RiskTolerance, req.Expenses, req.Solutions)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return savings.Input{}, nil, false
	}

	result, err := h.engine.Calculate(in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, savings.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return savings.Input{}, nil, false
	}

	h.metrics.calculations.WithLabelValues(string(in.RiskTolerance), string(in.Industry)).Inc()
	h.metrics.projected.Observe(result.TotalCostReductionTarget)
	return in, result, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
