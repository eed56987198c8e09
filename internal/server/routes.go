package server

import (
	"net/http"
	"strings"

	"github.com/wealthlens/wealthlens/internal/common"
)

// registerRoutes wires all API routes onto the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	mux.HandleFunc("/api/properties", s.handleProperties)
	mux.HandleFunc("/api/properties/analytics", s.handlePropertyAnalytics)
	mux.HandleFunc("/api/properties/", s.routeProperties)

	mux.HandleFunc("/api/holdings", s.handleHoldings)
	mux.HandleFunc("/api/holdings/", s.routeHoldings)

	mux.HandleFunc("/api/portfolio/networth", s.handleNetWorth)
	mux.HandleFunc("/api/portfolio/networth/chart", s.handleNetWorthChart)
	mux.HandleFunc("/api/portfolio/insights", s.handlePortfolioInsights)

	mux.HandleFunc("/api/copilot/query", s.handleCopilotQuery)
}

// routeProperties dispatches /api/properties/{id} and its sub-resources.
func (s *Server) routeProperties(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/properties/")
	if rest == "" {
		WriteError(w, http.StatusNotFound, "property id required")
		return
	}

	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1:
		s.handlePropertyByID(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "simulate":
		s.handlePropertySimulate(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "alerts":
		s.handlePropertyAlerts(w, r, parts[0])
	default:
		WriteError(w, http.StatusNotFound, "unknown property resource")
	}
}

// routeHoldings dispatches /api/holdings/{id}.
func (s *Server) routeHoldings(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/holdings/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "holding id required")
		return
	}
	s.handleHoldingByID(w, r, id)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
