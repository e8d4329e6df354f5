package adaptor

import (
	"context"
	"net/http"
	"time"

	"clubops/pkg/utils"

	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthHandler struct {
	db  Pinger
	log *zap.Logger
	now func() time.Time
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log.With(zap.String("handler", "health")),
		now: time.Now,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status := HealthStatus{Status: "ok", Database: "connected", Timestamp: h.now().UTC()}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Database ping failed", zap.Error(err))
		status.Status = "degraded"
		status.Database = "disconnected"
		utils.ResponseServiceUnavailable(w, "Database unavailable", status)
		return
	}

	utils.ResponseSuccess(w, "Service healthy", status)
}
