package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mindgraphix/platform/internal"
	"github.com/mindgraphix/platform/internal/transport"
)

type ServiceAPI interface {
	GetAll(category string, skip, limit int) ([]*Offering, error)
	GetByID(id int64) (*Offering, error)
	Create(dto CreateOfferingDTO) (*Offering, error)
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

func (h *Handler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	category := r.URL.Query().Get("category")

	offerings, err := h.Service.GetAll(category, skip, limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list services")
		return
	}

	h.WriteJSON(w, http.StatusOK, offerings)
}

func (h *Handler) GetOffering(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	o, err := h.Service.GetByID(id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			status, body := appErr.ToHTTPResponse()
			h.WriteJSON(w, status, body)
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to get service")
		return
	}

	h.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	var dto CreateOfferingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.Service.Create(dto)
	if err != nil {
		var vErr ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to create service")
		return
	}

	h.WriteJSON(w, http.StatusCreated, o)
}
