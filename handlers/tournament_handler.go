package handlers

import (
	"log/slog"
	"net/http"

	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/services"
)

// groupView is one rendered group: standings in ranked order plus the
// fixtures with whatever scores exist.
type groupView struct {
	Index          int                    `json:"index"`
	Standings      []models.Participation `json:"standings"`
	Confrontations []models.Confrontation `json:"confrontations"`
}

type tournamentView struct {
	Tournament *models.Tournament `json:"tournament"`
	Groups     []groupView        `json:"groups"`
}

func newTournamentView(tc *services.TournamentContext) tournamentView {
	view := tournamentView{Tournament: tc.Tournament}
	for groupIndex := 0; groupIndex < tc.Tournament.Mode.Groups(); groupIndex++ {
		group := groupView{
			Index:          groupIndex,
			Standings:      make([]models.Participation, 0, 4),
			Confrontations: tc.GroupConfrontations(groupIndex),
		}
		for _, p := range tc.Group(groupIndex) {
			group.Standings = append(group.Standings, *p)
		}
		view.Groups = append(view.Groups, group)
	}
	return view
}

type TournamentHandler struct {
	service services.TournamentService
	logger  *slog.Logger
}

func NewTournamentHandler(service services.TournamentService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{service: service, logger: logger}
}

func (h *TournamentHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var input services.DrawInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	tc, err := h.service.Draw(r.Context(), input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTournamentView(tc))
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.service.List(r.Context())
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments})
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	tc, err := h.service.Get(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newTournamentView(tc))
}

func (h *TournamentHandler) Current(w http.ResponseWriter, r *http.Request) {
	tc, err := h.service.GetInProgress(r.Context())
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newTournamentView(tc))
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "tournament cancelled"})
}

func (h *TournamentHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		badRequestResponse(w, err)
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	defer file.Close()

	tournament, err := h.service.UploadLogo(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament})
}
