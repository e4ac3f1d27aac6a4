package handler

import (
	"net/http"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/service"
	"go.uber.org/zap"
)

// LogHandler serves the audit log page and its CSV export
type LogHandler struct {
	auditService *service.AuditLogService
	views        *Views
	logger       *zap.Logger
}

func NewLogHandler(auditService *service.AuditLogService, views *Views, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		auditService: auditService,
		views:        views,
		logger:       logger,
	}
}

// ExportResponse is the JSON body returned by ExportLog
type ExportResponse struct {
	FileName string `json:"fileName"`
	Rows     int    `json:"rows"`
	Bytes    int    `json:"bytes"`
	Archived bool   `json:"archived"`
	Error    string `json:"error,omitempty"`
}

// Log godoc
// @Summary List audit messages
// @Description Lists the queued audit messages in queue order without removing them.
// @Tags Log
// @Produce json,html
// @Success 200 {array} domain.LogMessage
// @Failure 500 {object} domain.APIError
// @Router /customers/log [get]
func (h *LogHandler) Log(w http.ResponseWriter, r *http.Request) {
	messages, err := h.auditService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list audit messages", zap.Error(err))
		respondError(w, r, h.views, http.StatusInternalServerError, "Failed to read the log")
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, messages)
		return
	}
	h.views.Render(w, http.StatusOK, "log", "Customer log", messages)
}

// ExportLog godoc
// @Summary Export audit log
// @Description Archives the log as CSV. Browsers are redirected to the customer
// @Description list whether or not the archive accepted the file.
// @Tags Log
// @Produce json,html
// @Success 200 {object} handler.ExportResponse
// @Success 303 "Redirect to /customers"
// @Failure 500 {object} domain.APIError
// @Router /customers/log/export [post]
func (h *LogHandler) ExportLog(w http.ResponseWriter, r *http.Request) {
	result, err := h.auditService.ExportLog(r.Context())
	if err != nil {
		h.logger.Error("failed to export log", zap.Error(err))
		respondError(w, r, h.views, http.StatusInternalServerError, "Failed to read the log")
		return
	}

	if wantsJSON(r) {
		resp := ExportResponse{
			FileName: result.FileName,
			Rows:     result.Rows,
			Bytes:    result.Bytes,
			Archived: result.Err == nil,
		}
		if result.Err != nil {
			resp.Error = "Failed to upload log file"
		}
		respondJSON(w, http.StatusOK, resp)
		return
	}
	redirect(w, r, "/customers")
}
