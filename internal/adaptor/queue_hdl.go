package adaptor

import (
	"net/http"

	"clubops/internal/dto/request"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"go.uber.org/zap"
)

type QueueHandler struct {
	service usecase.QueueService
	log     *zap.Logger
}

func NewQueueHandler(service usecase.QueueService, log *zap.Logger) *QueueHandler {
	return &QueueHandler{
		service: service,
		log:     log.With(zap.String("handler", "queue")),
	}
}

// Read handles GET /api/queue/{stageId}
func (h *QueueHandler) Read(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	stageID, ok := pathUUID(w, r, "stageId", "stage ID")
	if !ok {
		return
	}

	queue, err := h.service.Read(r.Context(), clubID, stageID)
	if err != nil {
		handleServiceError(w, h.log, err, "read queue")
		return
	}

	utils.ResponseSuccess(w, "Queue retrieved successfully", queue)
}

// Add handles POST /api/queue/{stageId}/add
func (h *QueueHandler) Add(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	stageID, ok := pathUUID(w, r, "stageId", "stage ID")
	if !ok {
		return
	}

	var req request.EnqueueRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	entry, err := h.service.Enqueue(r.Context(), clubID, stageID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to queue")
		return
	}

	utils.ResponseCreated(w, "Dancer added to queue", entry)
}

// Reorder handles PUT /api/queue/{stageId}/reorder
func (h *QueueHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	stageID, ok := pathUUID(w, r, "stageId", "stage ID")
	if !ok {
		return
	}

	var req request.ReorderRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Reorder(r.Context(), clubID, stageID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reorder queue")
		return
	}

	audit(h.log, r, "Queue reordered",
		zap.String("stage_id", stageID.String()),
		zap.Int("entries", len(req.Entries)))
	utils.ResponseSuccess(w, "Queue reordered", result)
}

// Cancel handles PUT /api/queue/{stageId}/entries/{entryId}/cancel
func (h *QueueHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	_, clubID, ok := scope(w, r)
	if !ok {
		return
	}
	stageID, ok := pathUUID(w, r, "stageId", "stage ID")
	if !ok {
		return
	}
	entryID, ok := pathUUID(w, r, "entryId", "entry ID")
	if !ok {
		return
	}

	entry, err := h.service.Cancel(r.Context(), clubID, stageID, entryID)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel queue entry")
		return
	}

	audit(h.log, r, "Queue entry cancelled", zap.String("entry_id", entryID.String()))
	utils.ResponseSuccess(w, "Queue entry cancelled", entry)
}
