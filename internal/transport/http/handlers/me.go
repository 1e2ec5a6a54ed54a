package handlers

import (
	"net/http"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/exchange"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/response"
)

// MeHandler serves the caller's favorites, history, preferences and stats.
type MeHandler struct {
	svc *exchange.Service
}

func NewMeHandler(svc *exchange.Service) *MeHandler {
	return &MeHandler{svc: svc}
}

func (h *MeHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Favorites(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewList(items))
}

func (h *MeHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	on, err := h.svc.IsFavorite(r.Context(), middleware.UserID(r), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.FavoriteStateResp{ListingID: id, IsFavorite: on})
}

func (h *MeHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.AddFavorite(r.Context(), middleware.UserID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.FavoriteStateResp{ListingID: id, IsFavorite: true})
}

func (h *MeHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveFavorite(r.Context(), middleware.UserID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.FavoriteStateResp{ListingID: id, IsFavorite: false})
}

func (h *MeHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	on, err := h.svc.ToggleFavorite(r.Context(), middleware.UserID(r), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.FavoriteStateResp{ListingID: id, IsFavorite: on})
}

func (h *MeHandler) SearchHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.SearchHistory(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewList(items))
}

func (h *MeHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Preferences(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.PreferencesResp{Categories: p.Categories, Interests: p.Interests})
}

func (h *MeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToStatsResp(domain.UserStats{
		TotalExchanges:     st.TotalExchanges,
		CompletedExchanges: st.CompletedExchanges,
		ActiveExchanges:    st.ActiveExchanges,
	}, false))
}

func (h *MeHandler) AdvancedStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.AdvancedStats(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToStatsResp(st, true))
}
