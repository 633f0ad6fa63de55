package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

type errorBody struct {
	Error string `json:"error"`
}

// ErrorResponse отправляет ошибку в формате JSON
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message})
}

// JSONResponse отправляет ответ в формате JSON
func JSONResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// StatusFor сопоставляет доменную ошибку HTTP статусу
func StatusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DomainError отвечает статусом, соответствующим ошибке. Детали внутренних ошибок
// не раскрываются клиенту, а пишутся в лог.
func DomainError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Printf("internal error: %v", err)
		ErrorResponse(w, status, "Internal server error")
		return
	}
	ErrorResponse(w, status, http.StatusText(status))
}
