package handlers

import (
	"log/slog"
	"net/http"

	"github.com/beachpoint/tournament-system/services"
	"github.com/go-chi/chi/v5"
)

type PlayerHandler struct {
	service services.PlayerService
	logger  *slog.Logger
}

func NewPlayerHandler(service services.PlayerService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{service: service, logger: logger}
}

func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"players": players})
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.List(r.Context())
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"players": players})
}

func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	profile, err := h.service.Profile(r.Context(), name)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"profile": profile})
}
