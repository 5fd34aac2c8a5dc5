package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/internal/pipeline"
	"github.com/brfin/fiiradar/internal/scoring"
	"github.com/brfin/fiiradar/internal/similarity"
	"github.com/brfin/fiiradar/pkg/logger"
)

// respCacheTTL is short on purpose: the pipeline cache already bounds
// upstream traffic, this one only absorbs bursts on the screener endpoint.
const respCacheTTL = 30 * time.Second

// FundsHandler handles fund data API endpoints
type FundsHandler struct {
	pipeline  *pipeline.Pipeline
	engine    *similarity.Engine
	respCache *gocache.Cache
	logger    *logger.Logger
}

// NewFundsHandler creates a new funds handler
func NewFundsHandler(p *pipeline.Pipeline, engine *similarity.Engine, log *logger.Logger) *FundsHandler {
	return &FundsHandler{
		pipeline:  p,
		engine:    engine,
		respCache: gocache.New(respCacheTTL, time.Minute),
		logger:    log,
	}
}

// ListResponse is the screener payload
type ListResponse struct {
	Success       bool                     `json:"success"`
	SchemaVersion string                   `json:"schema_version"`
	FetchedAt     time.Time                `json:"fetched_at"`
	Count         int                      `json:"count"`
	Data          []contracts.ScoredRecord `json:"data"`
}

// List returns the scored fund table
// GET /api/funds?refresh=1&min_score=4
func (h *FundsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refresh := r.URL.Query().Get("refresh") == "1"

	minScore := 0
	if s := r.URL.Query().Get("min_score"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > 5 {
			respondError(w, http.StatusBadRequest, "min_score must be an integer between 0 and 5")
			return
		}
		minScore = v
	}

	cacheKey := fmt.Sprintf("funds:min_score=%d", minScore)
	if !refresh {
		if cached, ok := h.respCache.Get(cacheKey); ok {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	table, err := h.pipeline.GetTable(ctx, refresh)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get fund table")
		status, msg := statusForError(err)
		respondError(w, status, msg)
		return
	}

	funds := scoring.FilterByScore(table, minScore)

	resp := ListResponse{
		Success:       true,
		SchemaVersion: table.SchemaVersion,
		FetchedAt:     table.FetchedAt,
		Count:         len(funds),
		Data:          funds,
	}

	h.respCache.Set(cacheKey, resp, gocache.DefaultExpiration)
	respondJSON(w, http.StatusOK, resp)
}

// Get returns a single fund by ticker
// GET /api/funds/{ticker}
func (h *FundsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	table, err := h.pipeline.GetTable(ctx, false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get fund table")
		status, msg := statusForError(err)
		respondError(w, status, msg)
		return
	}

	fund := table.Find(ticker)
	if fund == nil {
		respondError(w, http.StatusNotFound, "fund not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    fund,
	})
}

// Similar returns funds ranked by closeness to a target
// GET /api/funds/{ticker}/similar?tol_dy=0.02&tol_pvp=0.1&min_liq=50000&same_segment=1&limit=10
func (h *FundsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	query := contracts.SimilarityQuery{
		Ticker:      ticker,
		SameSegment: r.URL.Query().Get("same_segment") == "1",
	}

	var parseErr error
	query.DYTolerance = parseFloatParam(r, "tol_dy", &parseErr)
	query.PVPTolerance = parseFloatParam(r, "tol_pvp", &parseErr)
	query.MinLiquidity = parseFloatParam(r, "min_liq", &parseErr)
	if parseErr != nil {
		respondError(w, http.StatusBadRequest, parseErr.Error())
		return
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		query.MaxResults = v
	}

	table, err := h.pipeline.GetTable(ctx, false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get fund table")
		status, msg := statusForError(err)
		respondError(w, status, msg)
		return
	}

	result, err := h.engine.FindSimilar(table, query)
	if err != nil {
		status, msg := statusForError(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

func parseFloatParam(r *http.Request, name string, parseErr *error) *float64 {
	s := r.URL.Query().Get(name)
	if s == "" || *parseErr != nil {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		*parseErr = fmt.Errorf("%s must be a non-negative number", name)
		return nil
	}
	return &v
}
