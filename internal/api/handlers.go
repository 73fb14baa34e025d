package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/service"
	"github.com/yourusername/sports-companion/internal/sport"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SportInfo describes a supported sport
type SportInfo struct {
	Sport    string `json:"sport"`
	League   string `json:"league"`
	Provider string `json:"provider,omitempty"`
	Enabled  bool   `json:"enabled"`
	Default  bool   `json:"default"`
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	scores  ScoresService
	details DetailsService
	logger  *logrus.Logger
}

// NewHandler creates a new handler with dependencies
func NewHandler(scores ScoresService, details DetailsService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Handler{scores: scores, details: details, logger: logger}
}

// GetScores returns the live score batch for a sport.
// The sport comes from the path, else the "sport" query parameter, else the default.
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		h.respondError(w, http.StatusServiceUnavailable, "scores are not configured")
		return
	}

	name := chi.URLParam(r, "sport")
	if name == "" {
		name = r.URL.Query().Get("sport")
	}

	batch := h.scores.FetchLiveScores(r.Context(), name)
	h.respondJSON(w, http.StatusOK, batch)
}

// GetMatchDetails returns the drill-down record for a match
func (h *Handler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	if h.details == nil {
		h.respondError(w, http.StatusServiceUnavailable, "match details are not configured")
		return
	}

	matchID := strings.TrimSpace(chi.URLParam(r, "matchID"))
	details := h.details.FetchMatchDetails(r.Context(), matchID)
	if details == nil {
		h.respondError(w, http.StatusNotFound, service.MsgDetailsFailed)
		return
	}

	h.respondJSON(w, http.StatusOK, details)
}

// GetSports lists the supported sports with their provider status
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	var statuses []service.ProviderStatus
	if h.scores != nil {
		statuses = h.scores.Providers()
	}
	bySport := lo.KeyBy(statuses, func(p service.ProviderStatus) string { return p.Sport })

	sports := lo.Map(sport.All(), func(k sport.Key, _ int) SportInfo {
		info := SportInfo{Sport: k.String(), League: k.League(), Default: k == sport.Default}
		if p, ok := bySport[k.String()]; ok {
			info.Provider = p.Provider
			info.Enabled = p.Enabled
		}
		return info
	})

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"sports": sports,
		"count":  len(sports),
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Warn("error encoding response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
