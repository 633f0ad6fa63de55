package team_overview_handler

import (
	"log"
	"net/http"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	reportsService "github.com/IT-Nick/visionhub/internal/domain/reports/service"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// TeamOverviewHandler сводка прохождения модулей по видимым сотрудникам
type TeamOverviewHandler struct {
	reportService *reportsService.ReportService
	logger        *log.Logger
}

// NewTeamOverviewHandler создает новый экземпляр обработчика
func NewTeamOverviewHandler(reportService *reportsService.ReportService, logger *log.Logger) *TeamOverviewHandler {
	return &TeamOverviewHandler{reportService: reportService, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *TeamOverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	overview, err := h.reportService.TeamOverview(r.Context(), identity)
	if err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, overview)
}
