package begin_attempt_handler

import (
	"log"
	"net/http"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// BeginAttemptHandler открывает модуль: начинает новую попытку или продолжает активную
type BeginAttemptHandler struct {
	attemptService *progressService.AttemptService
	logger         *log.Logger
}

// NewBeginAttemptHandler создает новый экземпляр обработчика
func NewBeginAttemptHandler(attemptService *progressService.AttemptService, logger *log.Logger) *BeginAttemptHandler {
	return &BeginAttemptHandler{attemptService: attemptService, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *BeginAttemptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	moduleID, err := httpError.IntVar(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.attemptService.BeginOrResume(r.Context(), identity, moduleID)
	if err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, session)
}
