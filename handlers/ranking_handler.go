package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/beachpoint/tournament-system/services"
)

type RankingHandler struct {
	service services.RankingService
	logger  *slog.Logger
}

func NewRankingHandler(service services.RankingService, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{service: service, logger: logger}
}

// Global serves the full ranking, or the top N rows when ?top=N is given.
func (h *RankingHandler) Global(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errorResponse(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		ranking, err := h.service.Top(r.Context(), n)
		if err != nil {
			mapServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking})
		return
	}

	ranking, err := h.service.GlobalRanking(r.Context())
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking})
}

// Reapply recomputes a finalized tournament's phase points.
func (h *RankingHandler) Reapply(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.service.ApplyTournamentPoints(r.Context(), tournamentID); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "points reapplied"})
}
