package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/internal/normalize"
	"github.com/brfin/fiiradar/internal/pipeline"
	"github.com/brfin/fiiradar/internal/similarity"
	"github.com/brfin/fiiradar/pkg/config"
	"github.com/brfin/fiiradar/pkg/logger"
)

type stubSource struct {
	err error
}

func (s *stubSource) FetchRaw(ctx context.Context) ([]contracts.RawRecord, []string, error) {
	if s.err != nil {
		return nil, nil, s.err
	}

	columns := []string{
		normalize.ColTicker,
		normalize.ColSegment,
		normalize.ColPrice,
		normalize.ColDividendYield,
		normalize.ColPVP,
		normalize.ColLiquidity,
		normalize.ColMarketValue,
	}

	raws := make([]contracts.RawRecord, 0, 12)
	for i := 0; i < 12; i++ {
		dy := "8,50%"
		if i >= 6 {
			dy = "2,00%" // below the yield threshold, scores lower
		}
		raws = append(raws, contracts.RawRecord{
			normalize.ColTicker:        fmt.Sprintf("FII%02d11", i),
			normalize.ColSegment:       "Logística",
			normalize.ColPrice:         "100,00",
			normalize.ColDividendYield: dy,
			normalize.ColPVP:           "0,95",
			normalize.ColLiquidity:     "1.200.000,00",
			normalize.ColMarketValue:   "500.000.000,00",
		})
	}
	return raws, columns, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:       "test",
		LogLevel:  "error",
		LogFormat: "json",
		Cache:     config.CacheConfig{TTL: time.Hour, Scope: "fii_resultado"},
		Score: config.ScoreConfig{
			MinDividendYield: 0.08,
			MaxPVP:           1.2,
			MinLiquidity:     500_000,
			MaxVacancy:       0.15,
			MinMarketValue:   1e8,
		},
		Similarity: config.SimilarityConfig{
			ToleranceFraction:    0.20,
			LiquidityFraction:    0.25,
			FallbackDYTolerance:  0.04,
			FallbackPVPTolerance: 0.20,
			FallbackMinLiquidity: 30_000,
		},
		Validation: config.ValidationConfig{MinRows: 10, MaxMissingRowFraction: 0.5},
	}
}

func newTestRouter(source pipeline.Source) http.Handler {
	cfg := testConfig()
	log := logger.New(cfg)
	p := pipeline.New(source, cfg, nil, log)
	h := NewFundsHandler(p, similarity.New(cfg.Similarity, log), log)

	r := mux.NewRouter()
	r.HandleFunc("/api/funds", h.List).Methods("GET")
	r.HandleFunc("/api/funds/{ticker}", h.Get).Methods("GET")
	r.HandleFunc("/api/funds/{ticker}/similar", h.Similar).Methods("GET")
	return r
}

func doRequest(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := doRequest(t, router, "/api/funds")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, contracts.SchemaVersion, resp.SchemaVersion)
	assert.Equal(t, 12, resp.Count)
}

func TestList_MinScoreFilter(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := doRequest(t, router, "/api/funds?min_score=4")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Count, "only the high-yield half passes min_score=4")
	for _, f := range resp.Data {
		assert.GreaterOrEqual(t, f.Score, 4)
	}
}

func TestList_BadMinScore(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := doRequest(t, router, "/api/funds?min_score=7")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGet(t *testing.T) {
	router := newTestRouter(&stubSource{})

	// Lowercase path parameter still resolves
	rec := doRequest(t, router, "/api/funds/fii0011")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "/api/funds/NOPE11")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimilar(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := doRequest(t, router, "/api/funds/FII0011/similar?tol_dy=0.02&tol_pvp=0.1&min_liq=100000&limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                        `json:"success"`
		Data    *contracts.SimilarityResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "FII0011", resp.Data.Target.Ticker)
	require.Len(t, resp.Data.Matches, 3)
	for _, m := range resp.Data.Matches {
		assert.NotEqual(t, "FII0011", m.Fund.Ticker)
	}
}

func TestSimilar_BadTolerance(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := doRequest(t, router, "/api/funds/FII0011/similar?tol_dy=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimilar_UnknownTicker(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := doRequest(t, router, "/api/funds/NOPE11/similar")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "timeout maps to gateway timeout",
			err:        contracts.NewFetchError(contracts.FetchTimeout, 3, errors.New("deadline")),
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "connection failure maps to bad gateway",
			err:        contracts.NewFetchError(contracts.FetchConnection, 3, errors.New("refused")),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "validation failure maps to bad gateway",
			err:        &contracts.ValidationError{Reasons: []contracts.ValidationReason{{Code: contracts.InsufficientRows}}},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubSource{err: tt.err})
			rec := doRequest(t, router, "/api/funds")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
