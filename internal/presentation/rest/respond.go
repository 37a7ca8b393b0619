package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Limit     *int   `json:"limit,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// readJSON decodes the body into v. Unknown fields are ignored.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &model.ValidationError{Field: "body", Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return nil
}

// writeError maps err onto a status code. Rejections are logged at Warn and
// unexpected failures at Error; internal details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, body := classify(err)
	switch {
	case status >= http.StatusInternalServerError:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	case status == http.StatusUnprocessableEntity:
		logger.WarnContext(r.Context(), "request rejected", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

func classify(err error) (int, errorBody) {
	var (
		exceeded *model.PercentageExceededError
		invalid  *model.ValidationError
	)
	switch {
	case errors.As(err, &exceeded):
		return http.StatusUnprocessableEntity, errorBody{
			Error:     exceeded.Error(),
			Limit:     &exceeded.Limit,
			Requested: &exceeded.Requested,
		}
	case errors.As(err, &invalid):
		return http.StatusBadRequest, errorBody{Error: invalid.Error(), Field: invalid.Field}
	case errors.Is(err, model.ErrInvalidCountryCode), errors.Is(err, model.ErrInvalidPercentage):
		return http.StatusBadRequest, errorBody{Error: err.Error()}
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{Error: model.ErrInvalidCredentials.Error()}
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, errorBody{Error: model.ErrForbidden.Error()}
	case errors.Is(err, model.ErrOfferNotFound):
		return http.StatusNotFound, errorBody{Error: model.ErrOfferNotFound.Error()}
	case errors.Is(err, model.ErrUsernameTaken):
		return http.StatusConflict, errorBody{Error: model.ErrUsernameTaken.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal error"}
	}
}
