package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/exchange"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/validate"
)

type RatingsHandler struct {
	svc *exchange.Service
}

func NewRatingsHandler(svc *exchange.Service) *RatingsHandler {
	return &RatingsHandler{svc: svc}
}

func (h *RatingsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req dto.RateReq
	if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	rt, err := h.svc.Rate(r.Context(), exchange.RateCmd{
		ExchangeID:  req.ExchangeID,
		RatedUserID: req.RatedUserID,
		RaterUserID: middleware.UserID(r),
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToRatingResp(*rt))
}

func (h *RatingsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "rating_id")
	if !ok {
		return
	}
	if err := h.svc.RemoveRating(r.Context(), middleware.UserID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *RatingsHandler) UserRatings(w http.ResponseWriter, r *http.Request) {
	uid, ok := userIDParam(w, r)
	if !ok {
		return
	}
	rs, err := h.svc.Ratings(r.Context(), uid)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewList(dto.ToRatingResps(rs)))
}

func (h *RatingsHandler) UserAverage(w http.ResponseWriter, r *http.Request) {
	uid, ok := userIDParam(w, r)
	if !ok {
		return
	}
	avg, n, err := h.svc.AverageRating(r.Context(), uid)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.AverageRatingResp{UserID: uid, Average: avg, Count: n})
}

func (h *RatingsHandler) UserBadges(w http.ResponseWriter, r *http.Request) {
	uid, ok := userIDParam(w, r)
	if !ok {
		return
	}
	bs, err := h.svc.Badges(r.Context(), uid)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewList(dto.ToBadgeResps(bs)))
}

func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := strings.TrimSpace(chi.URLParam(r, "user_id"))
	if uid == "" {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"user_id": "is required",
		}))
		return "", false
	}
	return uid, true
}
