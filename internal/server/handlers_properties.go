package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/models"
	surrealstore "github.com/wealthlens/wealthlens/internal/storage/surrealdb"
)

// handleProperties handles GET (list) and POST (create) on /api/properties.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listProperties(w, r)
	case http.MethodPost:
		s.createProperty(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())

	assets, err := s.app.Storage.AssetStore().List(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list properties")
		WriteError(w, http.StatusInternalServerError, "Failed to list properties")
		return
	}

	if assets == nil {
		assets = []*models.PropertyAsset{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": assets,
		"count":      len(assets),
	})
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())

	var asset models.PropertyAsset
	if !DecodeJSON(w, r, &asset) {
		return
	}

	if msg := validateProperty(&asset); msg != "" {
		WriteError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now().UTC()
	asset.ID = uuid.New().String()
	asset.UserID = userID
	asset.CreatedAt = now
	asset.UpdatedAt = now

	if err := s.app.Storage.AssetStore().Save(r.Context(), &asset); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save property")
		WriteError(w, http.StatusInternalServerError, "Failed to save property")
		return
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("asset_id", asset.ID).
		Str("nickname", asset.Nickname).
		Msg("Property created")

	WriteJSON(w, http.StatusCreated, &asset)
}

// handlePropertyByID handles GET, PUT and DELETE on /api/properties/{id}.
func (s *Server) handlePropertyByID(w http.ResponseWriter, r *http.Request, assetID string) {
	userID := common.ResolveUserID(r.Context())
	store := s.app.Storage.AssetStore()

	switch r.Method {
	case http.MethodGet:
		asset, err := store.Get(r.Context(), userID, assetID)
		if err != nil {
			writeAssetError(w, s, err, userID, assetID)
			return
		}
		WriteJSON(w, http.StatusOK, asset)

	case http.MethodPut:
		existing, err := store.Get(r.Context(), userID, assetID)
		if err != nil {
			writeAssetError(w, s, err, userID, assetID)
			return
		}

		var updated models.PropertyAsset
		if !DecodeJSON(w, r, &updated) {
			return
		}
		if msg := validateProperty(&updated); msg != "" {
			WriteError(w, http.StatusBadRequest, msg)
			return
		}

		updated.ID = existing.ID
		updated.UserID = existing.UserID
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		if err := store.Save(r.Context(), &updated); err != nil {
			s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Failed to update property")
			WriteError(w, http.StatusInternalServerError, "Failed to update property")
			return
		}
		WriteJSON(w, http.StatusOK, &updated)

	case http.MethodDelete:
		if err := store.Delete(r.Context(), userID, assetID); err != nil {
			writeAssetError(w, s, err, userID, assetID)
			return
		}
		s.logger.Info().Str("user_id", userID).Str("asset_id", assetID).Msg("Property deleted")
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handlePropertyAnalytics handles GET /api/properties/analytics.
func (s *Server) handlePropertyAnalytics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	result, err := s.app.AnalyticsService.ComputePortfolio(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to compute analytics")
		WriteError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// handlePropertySimulate handles POST /api/properties/{id}/simulate.
func (s *Server) handlePropertySimulate(w http.ResponseWriter, r *http.Request, assetID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	var assumptions models.SimulationAssumptions
	if !DecodeJSON(w, r, &assumptions) {
		return
	}
	if msg := validateAssumptions(assumptions); msg != "" {
		WriteError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := s.app.SimulationService.Simulate(r.Context(), userID, assetID, assumptions)
	if err != nil {
		writeAssetError(w, s, err, userID, assetID)
		return
	}
	if result == nil {
		WriteError(w, http.StatusUnprocessableEntity, "Property has no usable current value")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// handlePropertyAlerts handles GET /api/properties/{id}/alerts.
func (s *Server) handlePropertyAlerts(w http.ResponseWriter, r *http.Request, assetID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	alerts, err := s.app.InsightService.PropertyAlerts(r.Context(), userID, assetID)
	if err != nil {
		writeAssetError(w, s, err, userID, assetID)
		return
	}
	if alerts == nil {
		alerts = []models.Insight{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"asset_id": assetID,
		"alerts":   alerts,
		"count":    len(alerts),
	})
}

// validateProperty checks creation and update payloads. Returns an empty
// string when the payload is acceptable.
func validateProperty(a *models.PropertyAsset) string {
	if strings.TrimSpace(a.Nickname) == "" {
		return "nickname is required"
	}
	if a.PurchasePrice < 0 {
		return "purchase_price cannot be negative"
	}
	if a.OwnershipPct != nil && (*a.OwnershipPct <= 0 || *a.OwnershipPct > 100) {
		return "ownership_pct must be in (0, 100]"
	}
	if a.EstimateMin != nil && a.EstimateMax != nil && *a.EstimateMin > *a.EstimateMax {
		return "estimate_min cannot exceed estimate_max"
	}
	if a.Loan != nil && a.Loan.OutstandingBalance > a.Loan.LoanAmount {
		return "loan outstanding_balance cannot exceed loan_amount"
	}
	if a.Cashflow != nil && a.Cashflow.Status == models.RentalStatusRented && a.Cashflow.MonthlyRent <= 0 {
		return "monthly_rent must be positive for a rented property"
	}
	return ""
}

func validateAssumptions(a models.SimulationAssumptions) string {
	if a.HoldingPeriodYears < 0 {
		return "holding_period_years cannot be negative"
	}
	if a.HoldingPeriodYears > 50 {
		return "holding_period_years cannot exceed 50"
	}
	if a.ExitCostPct < 0 || a.ExitCostPct > 100 {
		return "exit_cost_pct must be in [0, 100]"
	}
	if a.CapitalGainsTaxPct < 0 || a.CapitalGainsTaxPct > 100 {
		return "capital_gains_tax_pct must be in [0, 100]"
	}
	return ""
}

// writeAssetError maps storage errors onto HTTP status codes.
func writeAssetError(w http.ResponseWriter, s *Server, err error, userID, assetID string) {
	if errors.Is(err, surrealstore.ErrAssetNotFound) {
		WriteError(w, http.StatusNotFound, "Property not found")
		return
	}
	s.logger.Error().Err(err).
		Str("user_id", userID).
		Str("asset_id", assetID).
		Msg("Property request failed")
	WriteError(w, http.StatusInternalServerError, "Internal error")
}
