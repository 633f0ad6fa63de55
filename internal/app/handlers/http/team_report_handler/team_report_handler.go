package team_report_handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	reportsService "github.com/IT-Nick/visionhub/internal/domain/reports/service"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// TeamReportHandler выгружает отчет о прохождении обучения в PDF
type TeamReportHandler struct {
	reportService *reportsService.ReportService
	logger        *log.Logger
}

// NewTeamReportHandler создает новый экземпляр обработчика
func NewTeamReportHandler(reportService *reportsService.ReportService, logger *log.Logger) *TeamReportHandler {
	return &TeamReportHandler{reportService: reportService, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *TeamReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Собираем документ в буфер, чтобы при ошибке успеть ответить JSON
	var buf bytes.Buffer
	if err := h.reportService.CompletionPDF(r.Context(), identity, &buf); err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("training_report_%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Printf("failed to write report: %v", err)
	}
}
