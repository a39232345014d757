package handler

import (
	"net/http"

	"tripdesk/internal/wallet/service"
	apperrors "tripdesk/pkg/errors"
	httputil "tripdesk/pkg/http"
	"tripdesk/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const userIDHeader = "X-User-ID"

type WalletHandler struct {
	service service.WalletService
	log     *logger.Logger
}

func NewWalletHandler(svc service.WalletService, log *logger.Logger) *WalletHandler {
	return &WalletHandler{service: svc, log: log}
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		h.writeError(w, "Balance", apperrors.InvalidInput("X-User-ID header is required"))
		return
	}

	balance, err := h.service.Balance(r.Context(), userID)
	if err != nil {
		h.writeError(w, "Balance", err)
		return
	}

	if err := httputil.WriteSuccess(w, balanceResponse{Balance: balance}); err != nil {
		h.log.Error("failed to write success response", "handler", "Balance", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) Entries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		h.writeError(w, "Entries", apperrors.InvalidInput("X-User-ID header is required"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "Entries", err)
		return
	}

	entries, err := h.service.Entries(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(w, "Entries", err)
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "Entries", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *WalletHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/wallet", h.Balance)
	router.GET("/api/v1/wallet/entries", h.Entries)
}
