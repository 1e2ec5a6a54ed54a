package handlers

import (
	"net/http"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/messaging"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/validate"
)

type ConversationsHandler struct {
	svc *messaging.Service
}

func NewConversationsHandler(svc *messaging.Service) *ConversationsHandler {
	return &ConversationsHandler{svc: svc}
}

// Start opens (or returns the existing) conversation between the caller and the listing owner.
func (h *ConversationsHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartConversationReq
	if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	uid := middleware.UserID(r)
	c, err := h.svc.Start(r.Context(), uid, req.ListingID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToConversationResp(*c, uid))
}

func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	cs, err := h.svc.List(r.Context(), uid)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.ConversationResp, 0, len(cs))
	for _, c := range cs {
		out = append(out, dto.ToConversationResp(c, uid))
	}
	response.Data(w, http.StatusOK, dto.NewList(out))
}

func (h *ConversationsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "conversation_id")
	if !ok {
		return
	}
	ms, err := h.svc.Messages(r.Context(), middleware.UserID(r), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.MessageResp, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.ToMessageResp(m))
	}
	response.Data(w, http.StatusOK, dto.NewList(out))
}

func (h *ConversationsHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "conversation_id")
	if !ok {
		return
	}
	var req dto.SendMessageReq
	if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	m, err := h.svc.Send(r.Context(), middleware.UserID(r), id, req.Text)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToMessageResp(*m))
}

func (h *ConversationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "conversation_id")
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), middleware.UserID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *ConversationsHandler) ValidateExchange(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "conversation_id")
	if !ok {
		return
	}
	uid := middleware.UserID(r)
	c, err := h.svc.ValidateExchange(r.Context(), uid, id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToConversationResp(*c, uid))
}
