package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthlens/wealthlens/internal/models"
)

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v), rec.Body.String())
}

func TestHandleProperties_CreateThenList(t *testing.T) {
	srv := newTestServer(t)

	body := jsonBody(t, map[string]interface{}{
		"nickname":       "Pune 2BHK",
		"city":           "Pune",
		"property_type":  "apartment",
		"purchase_price": 8000000,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
	rec := httptest.NewRecorder()
	srv.handleProperties(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.PropertyAsset
	decodeJSONBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "default", created.UserID)
	assert.Equal(t, "Pune 2BHK", created.Nickname)
	assert.False(t, created.CreatedAt.IsZero())

	req = httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	rec = httptest.NewRecorder()
	srv.handleProperties(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Properties []models.PropertyAsset `json:"properties"`
		Count      int                    `json:"count"`
	}
	decodeJSONBody(t, rec, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Properties[0].ID)
}

func TestHandleProperties_ListEmpty(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	rec := httptest.NewRecorder()
	srv.handleProperties(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Properties []models.PropertyAsset `json:"properties"`
		Count      int                    `json:"count"`
	}
	decodeJSONBody(t, rec, &list)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Properties)
}

func TestCreateProperty_Validation(t *testing.T) {
	ownership := 150.0
	low, high := 100.0, 50.0

	tests := []struct {
		name    string
		payload models.PropertyAsset
	}{
		{
			name:    "missing nickname",
			payload: models.PropertyAsset{PurchasePrice: 100},
		},
		{
			name:    "negative purchase price",
			payload: models.PropertyAsset{Nickname: "x", PurchasePrice: -1},
		},
		{
			name:    "ownership above 100",
			payload: models.PropertyAsset{Nickname: "x", OwnershipPct: &ownership},
		},
		{
			name:    "estimate range inverted",
			payload: models.PropertyAsset{Nickname: "x", EstimateMin: &low, EstimateMax: &high},
		},
		{
			name: "loan outstanding above principal",
			payload: models.PropertyAsset{
				Nickname: "x",
				Loan:     &models.PropertyLoan{LoanAmount: 100, OutstandingBalance: 200},
			},
		},
		{
			name: "rented with zero rent",
			payload: models.PropertyAsset{
				Nickname: "x",
				Cashflow: &models.PropertyCashflow{Status: models.RentalStatusRented},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			req := httptest.NewRequest(http.MethodPost, "/api/properties", jsonBody(t, tt.payload))
			rec := httptest.NewRecorder()
			srv.handleProperties(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func seedProperty(t *testing.T, srv *Server, userID, nickname string) *models.PropertyAsset {
	t.Helper()
	now := time.Now().UTC()
	asset := &models.PropertyAsset{
		ID:            nickname + "-id",
		UserID:        userID,
		Nickname:      nickname,
		PurchasePrice: 5000000,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, srv.app.Storage.AssetStore().Save(context.Background(), asset))
	return asset
}

func TestHandlePropertyByID_Get(t *testing.T) {
	srv := newTestServer(t)
	asset := seedProperty(t, srv, "default", "flat")

	req := httptest.NewRequest(http.MethodGet, "/api/properties/"+asset.ID, nil)
	rec := httptest.NewRecorder()
	srv.handlePropertyByID(rec, req, asset.ID)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.PropertyAsset
	decodeJSONBody(t, rec, &got)
	assert.Equal(t, asset.ID, got.ID)
}

func TestHandlePropertyByID_NotFound(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/properties/missing", nil)
	rec := httptest.NewRecorder()
	srv.handlePropertyByID(rec, req, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePropertyByID_OtherUsersAssetHidden(t *testing.T) {
	srv := newTestServer(t)
	asset := seedProperty(t, srv, "someone-else", "hidden")

	req := httptest.NewRequest(http.MethodGet, "/api/properties/"+asset.ID, nil)
	rec := httptest.NewRecorder()
	srv.handlePropertyByID(rec, req, asset.ID)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePropertyByID_UpdatePreservesIdentity(t *testing.T) {
	srv := newTestServer(t)
	asset := seedProperty(t, srv, "default", "flat")

	body := jsonBody(t, map[string]interface{}{
		"nickname":       "renamed",
		"purchase_price": 6000000,
		"user_id":        "attacker",
		"id":             "forged",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/properties/"+asset.ID, body)
	rec := httptest.NewRecorder()
	srv.handlePropertyByID(rec, req, asset.ID)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.PropertyAsset
	decodeJSONBody(t, rec, &updated)
	assert.Equal(t, asset.ID, updated.ID)
	assert.Equal(t, "default", updated.UserID)
	assert.Equal(t, "renamed", updated.Nickname)
	assert.Equal(t, asset.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestHandlePropertyByID_Delete(t *testing.T) {
	srv := newTestServer(t)
	asset := seedProperty(t, srv, "default", "flat")

	req := httptest.NewRequest(http.MethodDelete, "/api/properties/"+asset.ID, nil)
	rec := httptest.NewRecorder()
	srv.handlePropertyByID(rec, req, asset.ID)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/properties/"+asset.ID, nil)
	rec = httptest.NewRecorder()
	srv.handlePropertyByID(rec, req, asset.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePropertyAnalytics(t *testing.T) {
	srv := newTestServer(t)
	srv.app.AnalyticsService = &mockAnalyticsService{
		computePortfolio: func(ctx context.Context, userID string) (*models.AnalyticsResult, error) {
			return &models.AnalyticsResult{
				Portfolio: models.PortfolioAnalytics{TotalValue: 12000000},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/properties/analytics", nil)
	rec := httptest.NewRecorder()
	srv.handlePropertyAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.AnalyticsResult
	decodeJSONBody(t, rec, &got)
	assert.Equal(t, 12000000.0, got.Portfolio.TotalValue)
}

func TestHandlePropertySimulate(t *testing.T) {
	srv := newTestServer(t)
	srv.app.SimulationService = &mockSimulationService{
		simulate: func(ctx context.Context, userID, assetID string, assumptions models.SimulationAssumptions) (*models.SellVsHoldResult, error) {
			return &models.SellVsHoldResult{
				AssetID:      assetID,
				Assumptions:  assumptions,
				BetterOption: models.RecommendHold,
			}, nil
		},
	}

	body := jsonBody(t, models.SimulationAssumptions{
		ExitCostPct:         2,
		CapitalGainsTaxPct:  20,
		HoldingPeriodYears:  5,
		AppreciationRatePct: 6,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/properties/abc/simulate", body)
	rec := httptest.NewRecorder()
	srv.handlePropertySimulate(rec, req, "abc")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got models.SellVsHoldResult
	decodeJSONBody(t, rec, &got)
	assert.Equal(t, "abc", got.AssetID)
	assert.Equal(t, models.RecommendHold, got.BetterOption)
	assert.Equal(t, 5, got.Assumptions.HoldingPeriodYears)
}

func TestHandlePropertySimulate_NotSimulatable(t *testing.T) {
	srv := newTestServer(t)
	// The default mock returns (nil, nil): property exists but has no value.

	body := jsonBody(t, models.SimulationAssumptions{HoldingPeriodYears: 5})
	req := httptest.NewRequest(http.MethodPost, "/api/properties/abc/simulate", body)
	rec := httptest.NewRecorder()
	srv.handlePropertySimulate(rec, req, "abc")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlePropertySimulate_AssumptionValidation(t *testing.T) {
	tests := []struct {
		name        string
		assumptions models.SimulationAssumptions
	}{
		{"negative years", models.SimulationAssumptions{HoldingPeriodYears: -1}},
		{"years above cap", models.SimulationAssumptions{HoldingPeriodYears: 51}},
		{"exit cost above 100", models.SimulationAssumptions{HoldingPeriodYears: 5, ExitCostPct: 101}},
		{"negative tax", models.SimulationAssumptions{HoldingPeriodYears: 5, CapitalGainsTaxPct: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			req := httptest.NewRequest(http.MethodPost, "/api/properties/abc/simulate", jsonBody(t, tt.assumptions))
			rec := httptest.NewRecorder()
			srv.handlePropertySimulate(rec, req, "abc")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlePropertyAlerts(t *testing.T) {
	srv := newTestServer(t)
	srv.app.InsightService = &mockInsightService{
		propertyAlerts: func(ctx context.Context, userID, assetID string) ([]models.Insight, error) {
			return []models.Insight{
				{ID: "negative_cash_flow", Severity: models.SeverityCritical},
				{ID: "low_rental_yield", Severity: models.SeverityWarning},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/properties/abc/alerts", nil)
	rec := httptest.NewRecorder()
	srv.handlePropertyAlerts(rec, req, "abc")

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		AssetID string           `json:"asset_id"`
		Alerts  []models.Insight `json:"alerts"`
		Count   int              `json:"count"`
	}
	decodeJSONBody(t, rec, &got)
	assert.Equal(t, "abc", got.AssetID)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "negative_cash_flow", got.Alerts[0].ID)
}

func TestHandlePropertyAlerts_Empty(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/properties/abc/alerts", nil)
	rec := httptest.NewRecorder()
	srv.handlePropertyAlerts(rec, req, "abc")

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Alerts []models.Insight `json:"alerts"`
		Count  int              `json:"count"`
	}
	decodeJSONBody(t, rec, &got)
	assert.Equal(t, 0, got.Count)
	assert.NotNil(t, got.Alerts)
}
