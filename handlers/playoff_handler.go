package handlers

import (
	"log/slog"
	"net/http"

	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/services"
	"github.com/go-chi/chi/v5"
)

type PlayoffHandler struct {
	service services.PlayoffService
	logger  *slog.Logger
}

func NewPlayoffHandler(service services.PlayoffService, logger *slog.Logger) *PlayoffHandler {
	return &PlayoffHandler{service: service, logger: logger}
}

func (h *PlayoffHandler) Bracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	bracket, err := h.service.Bracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket})
}

func (h *PlayoffHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	game, err := idParam(r, "game")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	phase := models.Phase(chi.URLParam(r, "phase"))

	var input services.BracketResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	bracket, err := h.service.RecordResult(r.Context(), tournamentID, phase, game, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket})
}

func (h *PlayoffHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	tc, err := h.service.Finalize(r.Context(), tournamentID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newTournamentView(tc))
}
