package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"clubops/internal/realtime"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Dancer    *DancerHandler
	Queue     *QueueHandler
	Vip       *VipHandler
	Financial *FinancialHandler
	Health    *HealthHandler
	Realtime  *RealtimeHandler
}

func NewHandler(service *usecase.Service, db Pinger, hub *realtime.Hub, allowedOrigins []string, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Dancer:    NewDancerHandler(service.Dancer, log),
		Queue:     NewQueueHandler(service.Queue, log),
		Vip:       NewVipHandler(service.Vip, log),
		Financial: NewFinancialHandler(service.Financial, log),
		Health:    NewHealthHandler(db, log),
		Realtime:  NewRealtimeHandler(service.Auth, hub, allowedOrigins, log),
	}
}

// decodeBody reads a JSON body into dst. An empty body is accepted when
// allowEmpty is set, leaving dst at its zero value.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

// pathUUID parses a chi URL parameter and answers 400 when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+label, map[string]string{name: "Must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// scope returns the authenticated user and the club the request acts on.
// Both are set by the auth middleware chain.
func scope(w http.ResponseWriter, r *http.Request) (userID, clubID uuid.UUID, ok bool) {
	userID, ok = utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	clubID, ok = utils.GetClubIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Club ID required", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, clubID, true
}

// audit records a committed mutation with the caller's club role.
func audit(log *zap.Logger, r *http.Request, action string, fields ...zap.Field) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	clubID, _ := utils.GetClubIDFromContext(ctx)
	role, _ := utils.GetRoleFromContext(ctx)

	log.Info(action, append(fields,
		zap.String("user_id", userID.String()),
		zap.String("club_id", clubID.String()),
		zap.String("role", role),
	)...)
}

// handleServiceError maps service error kinds to HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	message := err.Error()
	var fields map[string]string
	var detail *usecase.DetailError
	if errors.As(err, &detail) {
		message = detail.Message
		fields = detail.Fields
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Debug(operation+" validation failed", zap.String("fields", utils.FormatValidationErrors(fields)))
		utils.ResponseBadRequest(w, message, fields)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, message)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, message)

	case errors.Is(err, usecase.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, message)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, message)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
