// Package response writes JSON bodies and maps service errors to HTTP statuses.
package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the status/message/data body used by most endpoints.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Message is a body with a single message.
type Message struct {
	Message string `json:"message"`
}

// ErrorBody is the body of validation failures.
type ErrorBody struct {
	Error string `json:"error"`
}

// UnavailableBody lists items that could not be reserved.
type UnavailableBody struct {
	Message          string  `json:"message"`
	UnavailableItems []int64 `json:"unavailableItems"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Success writes a 200 envelope.
func Success(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Error maps err to a status and body. Unclassified errors are logged with
// their stack and hidden from the caller.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr  *errs.ValidationError
		unavailableErr *errs.UnavailableItemsError
	)

	switch {
	case errors.As(err, &validationErr):
		JSON(w, http.StatusBadRequest, ErrorBody{Error: validationErr.Reason})
	case errors.As(err, &unavailableErr):
		slog.InfoContext(r.Context(), "Order rejected", "reason", unavailableErr.Details())
		JSON(w, http.StatusBadRequest, UnavailableBody{
			Message:          unavailableErr.Error(),
			UnavailableItems: unavailableErr.ItemIDs,
		})
	case errors.Is(err, errs.ErrDuplicateName):
		JSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error()})
	case errors.Is(err, errs.ErrNoItemsFound), errors.Is(err, errs.ErrNoAvailableItemsFound):
		JSON(w, http.StatusNotFound, Envelope{Status: StatusError, Message: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		JSON(w, http.StatusNotFound, Message{Message: err.Error()})
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidOperation):
		JSON(w, http.StatusBadRequest, Message{Message: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "Internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", fmt.Sprintf("%+v", err))
		JSON(w, http.StatusInternalServerError, Message{Message: "Internal server error"})
	}
}
