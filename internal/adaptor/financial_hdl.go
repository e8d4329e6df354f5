package adaptor

import (
	"net/http"

	"clubops/internal/dto/request"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"go.uber.org/zap"
)

type FinancialHandler struct {
	service usecase.FinancialService
	log     *zap.Logger
}

func NewFinancialHandler(service usecase.FinancialService, log *zap.Logger) *FinancialHandler {
	return &FinancialHandler{
		service: service,
		log:     log.With(zap.String("handler", "financial")),
	}
}

// Dashboard handles GET /api/financial/dashboard
func (h *FinancialHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), clubID)
	if err != nil {
		handleServiceError(w, h.log, err, "load financial dashboard")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved successfully", dashboard)
}

// BarFee handles POST /api/financial/bar-fee
func (h *FinancialHandler) BarFee(w http.ResponseWriter, r *http.Request) {
	userID, clubID, ok := scope(w, r)
	if !ok {
		return
	}

	var req request.BarFeeRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tx, err := h.service.CollectBarFee(r.Context(), clubID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "collect bar fee")
		return
	}

	audit(h.log, r, "Bar fee collected", zap.String("dancer_id", req.DancerID))
	utils.ResponseCreated(w, "Bar fee collected", tx)
}
