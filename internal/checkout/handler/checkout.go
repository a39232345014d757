package handler

import (
	"encoding/json"
	"net/http"

	"tripdesk/internal/checkout/service"
	apperrors "tripdesk/pkg/errors"
	httputil "tripdesk/pkg/http"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/model"
	"tripdesk/pkg/sealer"

	"github.com/julienschmidt/httprouter"
)

const userIDHeader = "X-User-ID"

type CheckoutHandler struct {
	service service.CheckoutService
	sealer  *sealer.Sealer
	log     *logger.Logger
}

func NewCheckoutHandler(svc service.CheckoutService, seal *sealer.Sealer, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		sealer:  seal,
		log:     log,
	}
}

type startCheckoutRequest struct {
	Option        model.TravelOption  `json:"option"`
	Passengers    []model.Passenger   `json:"passengers"`
	BillingMode   model.BillingMode   `json:"billing_mode"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
}

type applyCodeRequest struct {
	Code string `json:"code"`
}

// bookingResponse wraps a booking with an opaque shareable reference.
type bookingResponse struct {
	*model.Booking
	Ref string `json:"ref,omitempty"`
}

func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Start")
	if !ok {
		return
	}

	var req startCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "Start")
		return
	}

	session := &model.CheckoutSession{
		UserID:        userID,
		Option:        req.Option,
		Passengers:    req.Passengers,
		BillingMode:   req.BillingMode,
		PaymentMethod: req.PaymentMethod,
	}

	session, err := h.service.Start(r.Context(), session)
	if err != nil {
		h.writeError(w, "Start", err)
		return
	}

	if err := httputil.WriteCreated(w, session); err != nil {
		h.log.Error("failed to write created response", "handler", "Start", "operation", "WriteCreated", "error", err)
	}
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Get")
	if !ok {
		return
	}

	session, err := h.service.Get(r.Context(), ps.ByName("id"), userID)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) ConfirmStep(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "ConfirmStep")
	if !ok {
		return
	}

	var payload service.StepPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeBadBody(w, "ConfirmStep")
		return
	}

	session, err := h.service.ConfirmStep(r.Context(), ps.ByName("id"), userID,
		model.CheckoutStep(ps.ByName("step")), payload)
	if err != nil {
		h.writeError(w, "ConfirmStep", err)
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "ConfirmStep", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) SkipStep(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "SkipStep")
	if !ok {
		return
	}

	session, err := h.service.SkipStep(r.Context(), ps.ByName("id"), userID,
		model.CheckoutStep(ps.ByName("step")))
	if err != nil {
		h.writeError(w, "SkipStep", err)
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "SkipStep", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) ApplyPromo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "ApplyPromo")
	if !ok {
		return
	}

	var req applyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "ApplyPromo")
		return
	}

	session, err := h.service.ApplyPromo(r.Context(), ps.ByName("id"), userID, req.Code)
	if err != nil {
		h.writeError(w, "ApplyPromo", err)
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "ApplyPromo", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) ApplyGiftCard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "ApplyGiftCard")
	if !ok {
		return
	}

	var req applyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "ApplyGiftCard")
		return
	}

	session, err := h.service.ApplyGiftCard(r.Context(), ps.ByName("id"), userID, req.Code)
	if err != nil {
		h.writeError(w, "ApplyGiftCard", err)
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "ApplyGiftCard", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Pay")
	if !ok {
		return
	}

	booking, err := h.service.Pay(r.Context(), ps.ByName("id"), userID, r.Header.Get("Idempotency-Key"))
	if err != nil {
		h.writeError(w, "Pay", err)
		return
	}

	if err := httputil.WriteSuccess(w, h.withRef(booking)); err != nil {
		h.log.Error("failed to write success response", "handler", "Pay", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Cancel")
	if !ok {
		return
	}

	booking, err := h.service.Cancel(r.Context(), ps.ByName("id"), userID)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, h.withRef(booking)); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "GetBooking")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), ps.ByName("id"), userID)
	if err != nil {
		h.writeError(w, "GetBooking", err)
		return
	}

	if err := httputil.WriteSuccess(w, h.withRef(booking)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBooking", "operation", "WriteSuccess", "error", err)
	}
}

// GetBookingByRef resolves a sealed booking reference. The token binds the
// booking to its owner, so no user header is needed.
func (h *CheckoutHandler) GetBookingByRef(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID, userID, err := h.sealer.Open(ps.ByName("ref"))
	if err != nil {
		h.writeError(w, "GetBookingByRef", apperrors.NotFound("Booking"))
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID, userID)
	if err != nil {
		h.writeError(w, "GetBookingByRef", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBookingByRef", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CheckoutHandler) History(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := h.requireUser(w, r, "History")
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "History", err)
		return
	}

	bookings, total, err := h.service.History(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(w, "History", err)
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		responses = append(responses, h.withRef(booking))
	}

	if err := httputil.WritePaginated(w, responses, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "History", "operation", "WritePaginated", "error", err)
	}
}

func (h *CheckoutHandler) withRef(booking *model.Booking) bookingResponse {
	resp := bookingResponse{Booking: booking}
	ref, err := h.sealer.Seal(booking.ID, booking.UserID)
	if err != nil {
		h.log.Error("failed to seal booking reference", "booking_id", booking.ID, "error", err)
		return resp
	}
	resp.Ref = ref
	return resp
}

func (h *CheckoutHandler) requireUser(w http.ResponseWriter, r *http.Request, handlerName string) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		h.writeError(w, handlerName, apperrors.InvalidInput("X-User-ID header is required"))
		return "", false
	}
	return userID, true
}

func (h *CheckoutHandler) writeBadBody(w http.ResponseWriter, handlerName string) {
	if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); writeErr != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "operation", "WriteJSON", "error", writeErr)
	}
}

func (h *CheckoutHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *CheckoutHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/checkouts", h.Start)
	router.GET("/api/v1/checkouts/:id", h.Get)
	router.POST("/api/v1/checkouts/:id/steps/:step/confirm", h.ConfirmStep)
	router.POST("/api/v1/checkouts/:id/steps/:step/skip", h.SkipStep)
	router.POST("/api/v1/checkouts/:id/promo", h.ApplyPromo)
	router.POST("/api/v1/checkouts/:id/gift-card", h.ApplyGiftCard)
	router.POST("/api/v1/checkouts/:id/pay", h.Pay)
	router.GET("/api/v1/bookings", h.History)
	router.GET("/api/v1/bookings/id/:id", h.GetBooking)
	router.GET("/api/v1/bookings/ref/:ref", h.GetBookingByRef)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
}
