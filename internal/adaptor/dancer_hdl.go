package adaptor

import (
	"net/http"

	"clubops/internal/dto/request"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"go.uber.org/zap"
)

type DancerHandler struct {
	service usecase.DancerService
	log     *zap.Logger
}

func NewDancerHandler(service usecase.DancerService, log *zap.Logger) *DancerHandler {
	return &DancerHandler{
		service: service,
		log:     log.With(zap.String("handler", "dancer")),
	}
}

// List handles GET /api/dancers?page=&limit=&search=
func (h *DancerHandler) List(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.ListDancersRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("limit"), request.DefaultPageSize),
		},
		Search: query.Get("search"),
	}

	dancers, err := h.service.List(r.Context(), clubID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list dancers")
		return
	}

	utils.ResponseSuccess(w, "Dancers retrieved successfully", dancers)
}

// Create handles POST /api/dancers
func (h *DancerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, clubID, ok := scope(w, r)
	if !ok {
		return
	}

	var req request.CreateDancerRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	dancer, err := h.service.Create(r.Context(), clubID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create dancer")
		return
	}

	utils.ResponseCreated(w, "Dancer created successfully", dancer)
}

// Alerts handles GET /api/dancers/alerts
func (h *DancerHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}

	alerts, err := h.service.Alerts(r.Context(), clubID)
	if err != nil {
		handleServiceError(w, h.log, err, "list license alerts")
		return
	}

	utils.ResponseSuccess(w, "License alerts retrieved successfully", alerts)
}

// CheckIn handles POST /api/dancers/{id}/check-in
func (h *DancerHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	dancerID, ok := pathUUID(w, r, "id", "dancer ID")
	if !ok {
		return
	}

	session, err := h.service.CheckIn(r.Context(), clubID, dancerID)
	if err != nil {
		handleServiceError(w, h.log, err, "check in dancer")
		return
	}

	utils.ResponseCreated(w, "Dancer checked in", session)
}

// CheckOut handles PUT /api/dancers/{id}/check-out
func (h *DancerHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	dancerID, ok := pathUUID(w, r, "id", "dancer ID")
	if !ok {
		return
	}

	session, err := h.service.CheckOut(r.Context(), clubID, dancerID)
	if err != nil {
		handleServiceError(w, h.log, err, "check out dancer")
		return
	}

	utils.ResponseSuccess(w, "Dancer checked out", session)
}
