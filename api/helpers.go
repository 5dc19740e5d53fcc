package api

import (
	"net/http"
	"strconv"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var validate = validator.New()

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

// respondError maps a domain error to its HTTP status. Unexpected errors
// become opaque 500s; the detail stays in the log.
func respondError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	status := code.HTTPStatus()
	message := err.Error()
	if code == apperrors.CodeInternal {
		logger.Error("Request failed", zap.Error(err))
		message = "internal error"
	}
	respondJSON(w, status, errorResponse{Error: errorBody{Code: string(code), Message: message}})
}

func respondValidationError(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{Code: string(apperrors.CodeValidation), Message: message},
	})
}

// decodeJSON parses and validates a request body DTO.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if len(raw) == 0 {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// getPageParams reads 1-based page and a capped limit.
func getPageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page = getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = getIntParam(r, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
