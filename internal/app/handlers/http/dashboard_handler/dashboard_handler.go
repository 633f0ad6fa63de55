package dashboard_handler

import (
	"log"
	"net/http"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// DashboardHandler дашборд обучения текущего сотрудника
type DashboardHandler struct {
	classifier *progressService.Classifier
	logger     *log.Logger
}

// NewDashboardHandler создает новый экземпляр обработчика
func NewDashboardHandler(classifier *progressService.Classifier, logger *log.Logger) *DashboardHandler {
	return &DashboardHandler{classifier: classifier, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dashboard, err := h.classifier.Classify(r.Context(), identity, identity.UserID)
	if err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dashboard)
}
