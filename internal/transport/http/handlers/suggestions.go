package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/suggestion"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/response"
)

type SuggestionsHandler struct {
	svc *suggestion.Service
}

func NewSuggestionsHandler(svc *suggestion.Service) *SuggestionsHandler {
	return &SuggestionsHandler{svc: svc}
}

// List returns the full stored list, or one type of it with ?type=.
func (h *SuggestionsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	if t := strings.TrimSpace(r.URL.Query().Get("type")); t != "" {
		items, err := h.svc.ByType(r.Context(), uid, domain.SuggestionType(t))
		if err != nil {
			response.Err(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, h.resp(items, nil))
		return
	}

	l, err := h.svc.List(r.Context(), uid)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, h.resp(l.Items, l))
}

func (h *SuggestionsHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Regenerate(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, h.resp(l.Items, l))
}

func (h *SuggestionsHandler) Top(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Top(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.SuggestionsResp{
		Items: d.Items,
		Stats: dto.ToSuggestionStatsResp(d.Stats),
	})
}

func (h *SuggestionsHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "suggestion_id"))
	if err != nil || id == "" {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"suggestion_id": "is required",
		}))
		return
	}
	if err := h.svc.MarkViewed(r.Context(), middleware.UserID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *SuggestionsHandler) resp(items []domain.Suggestion, l *domain.SuggestionList) dto.SuggestionsResp {
	if items == nil {
		items = []domain.Suggestion{}
	}
	out := dto.SuggestionsResp{
		Items: items,
		Stats: dto.ToSuggestionStatsResp(domain.ComputeSuggestionStats(items, h.svc.DisplayLimit())),
	}
	if l != nil {
		at := l.GeneratedAt
		out.GeneratedAt = &at
	}
	return out
}
