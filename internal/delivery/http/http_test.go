package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantlab/internal/dto"
	"quantlab/internal/service"
)

type stubAnalysisService struct {
	resp *dto.CalculateResponse
	err  error
}

func (s *stubAnalysisService) Calculate(ctx context.Context, req dto.CalculateRequest) (*dto.CalculateResponse, error) {
	return s.resp, s.err
}

type stubFinancialsService struct {
	resp *dto.FinancialsResponse
	err  error
}

func (s *stubFinancialsService) GetFinancials(ctx context.Context, ticker string) (*dto.FinancialsResponse, error) {
	return s.resp, s.err
}

func newTestHandler(analysis *stubAnalysisService, financials *stubFinancialsService) (*HttpAPIHandler, *echo.Echo) {
	e := echo.New()
	svc := &service.Service{
		AnalysisService:   analysis,
		FinancialsService: financials,
	}
	h := NewHttpAPIHandler(context.Background(), e, goValidator.New(), svc)
	h.SetupRoutes()
	return h, e
}

func validCalculateBody() string {
	return `{
		"ticker": "AAPL",
		"market": "SPY",
		"start": "2024-01-02",
		"end": "2024-12-31",
		"risk_free": 4.5,
		"window": 20,
		"days": 30
	}`
}

func TestCalculateHandlerSuccess(t *testing.T) {
	analysis := &stubAnalysisService{resp: &dto.CalculateResponse{
		CAPMSummary: dto.CAPMSummary{Ticker: "AAPL", Beta: 1.12},
	}}
	_, e := newTestHandler(analysis, &stubFinancialsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(validCalculateBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.CAPMSummary.Ticker)
	assert.InDelta(t, 1.12, resp.CAPMSummary.Beta, 1e-9)
}

func TestCalculateHandlerRejectsMalformedBody(t *testing.T) {
	_, e := newTestHandler(&stubAnalysisService{}, &stubFinancialsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{"ticker": `))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid request body", resp.Message)
}

func TestCalculateHandlerRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing ticker",
			body: `{"market": "SPY", "start": "2024-01-02", "risk_free": 4.5, "window": 20, "days": 30}`,
		},
		{
			name: "bad start date",
			body: `{"ticker": "AAPL", "market": "SPY", "start": "02/01/2024", "risk_free": 4.5, "window": 20, "days": 30}`,
		},
		{
			name: "window too small",
			body: `{"ticker": "AAPL", "market": "SPY", "start": "2024-01-02", "risk_free": 4.5, "window": 1, "days": 30}`,
		},
		{
			name: "negative strike",
			body: `{"ticker": "AAPL", "market": "SPY", "start": "2024-01-02", "risk_free": 4.5, "window": 20, "days": 30, "strike": -5}`,
		},
	}

	_, e := newTestHandler(&stubAnalysisService{}, &stubFinancialsService{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCalculateHandlerSurfacesServiceError(t *testing.T) {
	analysis := &stubAnalysisService{err: assert.AnError}
	_, e := newTestHandler(analysis, &stubFinancialsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(validCalculateBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, assert.AnError.Error(), resp.Message)
}

func TestFinancialsHandlerSuccess(t *testing.T) {
	financials := &stubFinancialsService{resp: &dto.FinancialsResponse{
		Ticker:      "AAPL",
		CompanyName: "Apple Inc.",
		Cached:      true,
	}}
	_, e := newTestHandler(&stubAnalysisService{}, financials)

	req := httptest.NewRequest(http.MethodGet, "/api/financials/AAPL?_=1717320000", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FinancialsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Ticker)
	assert.True(t, resp.Cached)
}

func TestFinancialsHandlerSurfacesServiceError(t *testing.T) {
	financials := &stubFinancialsService{err: assert.AnError}
	_, e := newTestHandler(&stubAnalysisService{}, financials)

	req := httptest.NewRequest(http.MethodGet, "/api/financials/ZZZZ", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, assert.AnError.Error(), resp.Message)
}
