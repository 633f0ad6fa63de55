package user_dashboard_handler

import (
	"log"
	"net/http"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// UserDashboardHandler дашборд сотрудника для его руководителя или администратора
type UserDashboardHandler struct {
	classifier *progressService.Classifier
	logger     *log.Logger
}

// NewUserDashboardHandler создает новый экземпляр обработчика
func NewUserDashboardHandler(classifier *progressService.Classifier, logger *log.Logger) *UserDashboardHandler {
	return &UserDashboardHandler{classifier: classifier, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *UserDashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	subjectID, err := httpError.IntVar(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	dashboard, err := h.classifier.Classify(r.Context(), identity, subjectID)
	if err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dashboard)
}
