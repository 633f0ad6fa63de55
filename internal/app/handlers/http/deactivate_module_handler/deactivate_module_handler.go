package deactivate_module_handler

import (
	"log"
	"net/http"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	catalogService "github.com/IT-Nick/visionhub/internal/domain/catalog/service"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// DeactivateModuleHandler снимает модуль с публикации
type DeactivateModuleHandler struct {
	catalogService *catalogService.CatalogService
	logger         *log.Logger
}

// NewDeactivateModuleHandler создает новый экземпляр обработчика
func NewDeactivateModuleHandler(catalogService *catalogService.CatalogService, logger *log.Logger) *DeactivateModuleHandler {
	return &DeactivateModuleHandler{catalogService: catalogService, logger: logger}
}

// ServeHTTP метод для обработки запроса
func (h *DeactivateModuleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	if err := h.catalogService.Deactivate(r.Context(), identity, moduleID); err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
