package module_link_handler

// ModuleLinkResponse структура для ответа
type ModuleLinkResponse struct {
	ModuleID int    `json:"module_id"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	QRCode   string `json:"qr_code"`
}
