package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mindgraphix/platform/pkg/logger"
)

// BaseHandler carries the helpers shared by every HTTP handler. Domain
// handlers embed it and get consistent JSON and error writing.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes data as a JSON response with the given status.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteError writes an ad-hoc error in the standard envelope. Handlers that
// have an AppError in hand should prefer its ToHTTPResponse instead.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "message", message)
	} else {
		h.Logger.Warn("http error", "status", status, "message", message)
	}

	h.WriteJSON(w, status, map[string]errorBody{
		"error": {Code: status, Message: message},
	})
}
