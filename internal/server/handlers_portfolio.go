package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/models"
)

// handleNetWorth handles GET /api/portfolio/networth.
func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	summary, err := s.app.NetWorthService.Summary(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to compute net worth")
		WriteError(w, http.StatusInternalServerError, "Failed to compute net worth")
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// handleNetWorthChart handles GET /api/portfolio/networth/chart. It renders
// the allocation breakdown as a donut chart PNG and also persists the latest
// render under the data directory.
func (s *Server) handleNetWorthChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	summary, err := s.app.NetWorthService.Summary(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to compute net worth")
		WriteError(w, http.StatusInternalServerError, "Failed to compute net worth")
		return
	}
	if len(summary.Allocation) == 0 || summary.TotalNetWorth <= 0 {
		WriteError(w, http.StatusNotFound, "No holdings to chart")
		return
	}

	png, err := renderAllocationChart(summary.Allocation)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to render allocation chart")
		WriteError(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	if err := s.app.Storage.WriteRaw("charts", userID+"-allocation.png", png); err != nil {
		// Persistence is best effort, the response still carries the image.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to persist allocation chart")
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// renderAllocationChart draws the ranked allocation as a donut chart.
func renderAllocationChart(allocation []models.AllocationEntry) ([]byte, error) {
	values := make([]chart.Value, 0, len(allocation))
	for _, entry := range allocation {
		if entry.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: entry.Value,
			Label: fmt.Sprintf("%s %.1f%%", entry.AssetClass, entry.Percent),
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no positive allocation entries")
	}

	donut := chart.DonutChart{
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render donut chart: %w", err)
	}
	return buf.Bytes(), nil
}

// handlePortfolioInsights handles GET /api/portfolio/insights.
func (s *Server) handlePortfolioInsights(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())

	insights, err := s.app.InsightService.PortfolioInsights(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to evaluate portfolio insights")
		WriteError(w, http.StatusInternalServerError, "Failed to evaluate insights")
		return
	}
	if insights == nil {
		insights = []models.Insight{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"insights": insights,
		"count":    len(insights),
	})
}
