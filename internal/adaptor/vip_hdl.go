package adaptor

import (
	"fmt"
	"net/http"
	"strconv"

	"clubops/internal/dto/request"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"go.uber.org/zap"
)

type VipHandler struct {
	service usecase.VipService
	log     *zap.Logger
}

func NewVipHandler(service usecase.VipService, log *zap.Logger) *VipHandler {
	return &VipHandler{
		service: service,
		log:     log.With(zap.String("handler", "vip")),
	}
}

// ListRooms handles GET /api/vip-rooms
func (h *VipHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}

	rooms, err := h.service.ListRooms(r.Context(), clubID)
	if err != nil {
		handleServiceError(w, h.log, err, "list VIP rooms")
		return
	}

	utils.ResponseSuccess(w, "VIP rooms retrieved successfully", rooms)
}

// Book handles POST /api/vip-rooms/{id}/book
func (h *VipHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	roomID, ok := pathUUID(w, r, "id", "room ID")
	if !ok {
		return
	}

	var req request.BookVipRoomRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Book(r.Context(), clubID, userID, roomID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "book VIP room")
		return
	}

	audit(h.log, r, "VIP room booked", zap.String("room_id", roomID.String()))
	utils.ResponseCreated(w, "VIP room booked", booking)
}

// Checkout handles PUT /api/vip-rooms/{id}/checkout. The body is optional.
func (h *VipHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	roomID, ok := pathUUID(w, r, "id", "room ID")
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Checkout(r.Context(), clubID, userID, roomID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "checkout VIP room")
		return
	}

	audit(h.log, r, "VIP room checked out", zap.String("room_id", roomID.String()))
	utils.ResponseSuccess(w, "VIP room checked out", booking)
}

// Receipt handles GET /api/vip-rooms/bookings/{bookingId}/receipt
func (h *VipHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(w, r, "bookingId", "booking ID")
	if !ok {
		return
	}

	pdf, reference, err := h.service.Receipt(r.Context(), clubID, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "render VIP receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "receipt-"+reference+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.log.Warn("Failed to write receipt", zap.Error(err))
	}
}
