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

// handleHoldings handles GET (list) and POST (create) on /api/holdings.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listHoldings(w, r)
	case http.MethodPost:
		s.createHolding(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) listHoldings(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())

	holdings, err := s.app.Storage.HoldingStore().List(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list holdings")
		WriteError(w, http.StatusInternalServerError, "Failed to list holdings")
		return
	}
	if holdings == nil {
		holdings = []*models.HoldingRecord{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": holdings,
		"count":    len(holdings),
	})
}

func (s *Server) createHolding(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())

	var holding models.HoldingRecord
	if !DecodeJSON(w, r, &holding) {
		return
	}
	if strings.TrimSpace(holding.Name) == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(holding.AssetClass) == "" {
		WriteError(w, http.StatusBadRequest, "asset_class is required")
		return
	}
	if holding.Value < 0 {
		WriteError(w, http.StatusBadRequest, "value cannot be negative")
		return
	}

	now := time.Now().UTC()
	holding.ID = uuid.New().String()
	holding.UserID = userID
	holding.CreatedAt = now
	holding.UpdatedAt = now

	if err := s.app.Storage.HoldingStore().Save(r.Context(), &holding); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save holding")
		WriteError(w, http.StatusInternalServerError, "Failed to save holding")
		return
	}
	WriteJSON(w, http.StatusCreated, &holding)
}

// handleHoldingByID handles DELETE on /api/holdings/{id}.
func (s *Server) handleHoldingByID(w http.ResponseWriter, r *http.Request, holdingID string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	if err := s.app.Storage.HoldingStore().Delete(r.Context(), userID, holdingID); err != nil {
		if errors.Is(err, surrealstore.ErrHoldingNotFound) {
			WriteError(w, http.StatusNotFound, "Holding not found")
			return
		}
		s.logger.Error().Err(err).Str("holding_id", holdingID).Msg("Failed to delete holding")
		WriteError(w, http.StatusInternalServerError, "Failed to delete holding")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
