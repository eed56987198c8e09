package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/services/copilot"
)

// CopilotQueryRequest is the POST /api/copilot/query payload.
type CopilotQueryRequest struct {
	Query string `json:"query"`
}

// handleCopilotQuery handles POST /api/copilot/query.
func (s *Server) handleCopilotQuery(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	var req CopilotQueryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		WriteError(w, http.StatusBadRequest, "query is required")
		return
	}
	if len(query) > 4000 {
		WriteError(w, http.StatusBadRequest, "query exceeds 4000 characters")
		return
	}

	response, err := s.app.CopilotService.Query(r.Context(), userID, query)
	if err != nil {
		if errors.Is(err, copilot.ErrNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, "Copilot is not configured")
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Copilot query failed")
		WriteError(w, http.StatusBadGateway, "Copilot query failed")
		return
	}
	WriteJSON(w, http.StatusOK, response)
}
