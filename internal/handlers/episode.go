package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pka-index-backend/internal/apierror"
	"pka-index-backend/internal/models"
	"pka-index-backend/internal/services"
)

type EpisodeHandler struct {
	episodes *services.EpisodeService
}

func NewEpisodeHandler(episodes *services.EpisodeService) *EpisodeHandler {
	return &EpisodeHandler{episodes: episodes}
}

// Watch serves GET /episode/watch/{number}.
func (h *EpisodeHandler) Watch(w http.ResponseWriter, r *http.Request) {
	number, err := episodeNumberParam(r, "number")
	if err != nil {
		apierror.Write(w, r, err)
		return
	}
	h.watch(w, r, number)
}

func (h *EpisodeHandler) WatchLatest(w http.ResponseWriter, r *http.Request) {
	number, err := h.episodes.LatestNumber(r.Context())
	if err != nil {
		apierror.Write(w, r, err)
		return
	}
	h.watch(w, r, number)
}

func (h *EpisodeHandler) WatchRandom(w http.ResponseWriter, r *http.Request) {
	number, err := h.episodes.RandomNumber(r.Context())
	if err != nil {
		apierror.Write(w, r, err)
		return
	}
	h.watch(w, r, number)
}

// YoutubeLink serves GET /episode/youtube_link/{number}, the one endpoint that
// returns an episode's raw video link.
func (h *EpisodeHandler) YoutubeLink(w http.ResponseWriter, r *http.Request) {
	number, err := episodeNumberParam(r, "number")
	if err != nil {
		apierror.Write(w, r, err)
		return
	}

	link, err := h.episodes.VideoLink(r.Context(), number)
	if err != nil {
		apierror.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.Success(link))
}

func (h *EpisodeHandler) watch(w http.ResponseWriter, r *http.Request, number models.EpisodeNumber) {
	episode, err := h.episodes.FindWithAll(r.Context(), number)
	if err != nil {
		apierror.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.Success(episode))
}

func episodeNumberParam(r *http.Request, name string) (models.EpisodeNumber, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, apierror.UnsupportedPathParam(name)
	}

	number, err := models.ParseEpisodeNumber(raw)
	if err != nil {
		return 0, apierror.BadPathParam(name, raw, err)
	}
	return number, nil
}
