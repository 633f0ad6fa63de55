package module_link_handler

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/http"

	"github.com/skip2/go-qrcode"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	catalogService "github.com/IT-Nick/visionhub/internal/domain/catalog/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

// ModuleLinkHandler формирует ссылку на модуль в боте и QR-код к ней
type ModuleLinkHandler struct {
	catalogService *catalogService.CatalogService
	botUsername    string
	logger         *log.Logger
}

// NewModuleLinkHandler создает новый экземпляр обработчика
func NewModuleLinkHandler(catalogService *catalogService.CatalogService, botUsername string, logger *log.Logger) *ModuleLinkHandler {
	return &ModuleLinkHandler{
		catalogService: catalogService,
		botUsername:    botUsername,
		logger:         logger,
	}
}

// ModuleLink ссылка, открывающая модуль в боте
func ModuleLink(botUsername string, moduleID int) string {
	return fmt.Sprintf("https://t.me/%s?start=module_%d", botUsername, moduleID)
}

// ServeHTTP метод для обработки запроса
func (h *ModuleLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Ссылки раздают только администраторы каталога
	if !identity.Role.Can(model.PermissionManageCatalog) {
		httpError.ErrorResponse(w, http.StatusForbidden, http.StatusText(http.StatusForbidden))
		return
	}

	if h.botUsername == "" {
		httpError.ErrorResponse(w, http.StatusServiceUnavailable, "Telegram bot is not configured")
		return
	}

	moduleID, err := httpError.IntVar(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	module, err := h.catalogService.GetModule(r.Context(), moduleID)
	if err != nil {
		httpError.DomainError(w, h.logger, err)
		return
	}

	link := ModuleLink(h.botUsername, module.ID)

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		h.logger.Printf("failed to generate QR code for module %d: %v", module.ID, err)
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	// Отправляем успешный ответ
	httpError.JSONResponse(w, http.StatusOK, ModuleLinkResponse{
		ModuleID: module.ID,
		Title:    module.Title,
		Link:     link,
		QRCode:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}
