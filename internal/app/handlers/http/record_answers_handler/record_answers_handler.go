package record_answers_handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// RecordAnswersHandler сохраняет ответы попытки или отправляет ее на проверку
type RecordAnswersHandler struct {
	attemptService *progressService.AttemptService
	validate       *validator.Validate
	logger         *log.Logger
}

// NewRecordAnswersHandler создает новый экземпляр обработчика
func NewRecordAnswersHandler(attemptService *progressService.AttemptService, validate *validator.Validate, logger *log.Logger) *RecordAnswersHandler {
	return &RecordAnswersHandler{attemptService: attemptService, validate: validate, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *RecordAnswersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	attemptID, err := httpError.IntVar(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req RecordAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.attemptService.RecordAnswers(r.Context(), identity, attemptID, req.Answers, model.Action(req.Action))
	if err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, result)
}
