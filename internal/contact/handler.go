package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mindgraphix/platform/internal"
	"github.com/mindgraphix/platform/internal/transport"
)

type ServiceAPI interface {
	GetAll(skip, limit int) ([]*Message, error)
	GetByID(id int64) (*Message, error)
	Submit(ctx context.Context, dto SubmitMessageDTO) (*Message, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.Service.GetAll(skip, limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}

	h.WriteJSON(w, http.StatusOK, messages)
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	m, err := h.Service.GetByID(id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			status, body := appErr.ToHTTPResponse()
			h.WriteJSON(w, status, body)
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to get contact")
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

// SubmitMessage is the public contact form endpoint. No authentication.
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var dto SubmitMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Submit(r.Context(), dto)
	if err != nil {
		var vErr ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to submit message")
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}
