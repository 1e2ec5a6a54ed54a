package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/exchange"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/validate"
)

type ListingsHandler struct {
	svc *exchange.Service
}

func NewListingsHandler(svc *exchange.Service) *ListingsHandler {
	return &ListingsHandler{svc: svc}
}

// Search is public; an authenticated caller's query is recorded in their history.
func (h *ListingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.ListingFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		Status:   domain.ListingStatus(q.Get("status")),
	}
	items, err := h.svc.Search(r.Context(), middleware.UserID(r), f)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewList(items))
}

func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, l)
}

func (h *ListingsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewList(items))
}

func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateListingReq
	if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	l, err := h.svc.Create(r.Context(), exchange.CreateCmd{
		ActorID:     middleware.UserID(r),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, l)
}

func (h *ListingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	var req dto.UpdateListingReq
	if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	l, err := h.svc.Update(r.Context(), exchange.UpdateCmd{
		ActorID:   middleware.UserID(r),
		ListingID: id,
		Patch:     dto.ToListingPatch(req),
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, l)
}

func (h *ListingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.UserID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *ListingsHandler) ShowInterest(w http.ResponseWriter, r *http.Request) {
	id, ok := listingIDParam(w, r)
	if !ok {
		return
	}
	l, err := h.svc.ShowInterest(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, l)
}

func (h *ListingsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.MyListings(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewList(items))
}

func listingIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	return uuidParam(w, r, "listing_id")
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be uuid",
		}))
		return "", false
	}
	return id, true
}
