package list_modules_handler

import (
	"log"
	"net/http"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	catalogService "github.com/IT-Nick/visionhub/internal/domain/catalog/service"
	"github.com/IT-Nick/visionhub/internal/domain/dto"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// ListModulesHandler список активных модулей каталога
type ListModulesHandler struct {
	catalogService *catalogService.CatalogService
	logger         *log.Logger
}

// NewListModulesHandler создает новый экземпляр обработчика
func NewListModulesHandler(catalogService *catalogService.CatalogService, logger *log.Logger) *ListModulesHandler {
	return &ListModulesHandler{catalogService: catalogService, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *ListModulesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	modules, err := h.catalogService.ActiveModules(r.Context(), identity)
	if err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	response := make([]dto.ModuleSummary, 0, len(modules))
	for _, m := range modules {
		response = append(response, dto.ModuleSummary{
			ModuleID:    m.ID,
			Title:       m.Title,
			Description: m.Description,
			VideoURL:    m.VideoURL,
		})
	}

	httpError.JSONResponse(w, http.StatusOK, response)
}
