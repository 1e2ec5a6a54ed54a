package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/entitlement"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/subscription"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/validate"
)

type SubscriptionHandler struct {
	svc   *subscription.Service
	clock Clock
}

func NewSubscriptionHandler(svc *subscription.Service, clock Clock) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, clock: clock}
}

func (h *SubscriptionHandler) Plans(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, dto.NewList(entitlement.Plans()))
}

func (h *SubscriptionHandler) Plan(w http.ResponseWriter, r *http.Request) {
	p, ok := entitlement.Lookup(domain.PlanID(chi.URLParam(r, "plan_id")))
	if !ok {
		response.Err(w, r, domain.ErrNotFound("plan not found"))
		return
	}
	response.Data(w, http.StatusOK, p)
}

// Current applies lazy expiry before answering.
func (h *SubscriptionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc.Current(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToSubscriptionResp(sub, h.clock.Now()))
}

func (h *SubscriptionHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	var req dto.UpgradeReq
	if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	sub, err := h.svc.Upgrade(r.Context(), middleware.UserID(r), domain.PlanID(req.Plan))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToSubscriptionResp(sub, h.clock.Now()))
}

func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc.Cancel(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToSubscriptionResp(sub, h.clock.Now()))
}

// Entitlement answers whether the caller may perform action at ?count=; unknown actions are denied.
func (h *SubscriptionHandler) Entitlement(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	count := 0
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"count": "must be a non-negative integer",
			}))
			return
		}
		count = n
	}

	ok, plan, err := h.svc.CanPerform(r.Context(), middleware.UserID(r), action, count)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.EntitlementResp{
		Action:  action,
		Plan:    string(plan),
		Count:   count,
		Allowed: ok,
	})
}
