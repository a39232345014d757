package handler

import (
	"net/http"

	"tripdesk/internal/policy/service"
	httputil "tripdesk/pkg/http"
	"tripdesk/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// ApprovalHandler exposes the manager-facing approval queue.
type ApprovalHandler struct {
	service service.PolicyService
	log     *logger.Logger
}

func NewApprovalHandler(svc service.PolicyService, log *logger.Logger) *ApprovalHandler {
	return &ApprovalHandler{service: svc, log: log}
}

func (h *ApprovalHandler) Pending(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Pending", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	requests, total, err := h.service.PendingApprovals(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Pending", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, requests, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Pending", "operation", "WritePaginated", "error", err)
	}
}

func (h *ApprovalHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/approvals/pending", h.Pending)
}
