package handlers

import (
	"log/slog"
	"net/http"

	"github.com/beachpoint/tournament-system/services"
)

type GroupHandler struct {
	service services.GroupService
	logger  *slog.Logger
}

func NewGroupHandler(service services.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{service: service, logger: logger}
}

type groupResultsRequest struct {
	Results []services.GroupResultInput `json:"results"`
}

// RecordResults accepts one or more confrontation results for a group.
func (h *GroupHandler) RecordResults(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	groupIndex, err := idParam(r, "groupIdx")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var req groupResultsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	tc, err := h.service.RecordAll(r.Context(), tournamentID, groupIndex, req.Results)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newTournamentView(tc))
}

func (h *GroupHandler) SwapPlayers(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.SwapInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	tc, err := h.service.SwapPlayers(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newTournamentView(tc))
}
