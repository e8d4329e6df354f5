package adaptor

import (
	"context"
	"net/http"
	"slices"

	"clubops/internal/realtime"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type RealtimeHandler struct {
	auth     usecase.AuthService
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewRealtimeHandler(auth usecase.AuthService, hub *realtime.Hub, allowedOrigins []string, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		auth: auth,
		hub:  hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log.With(zap.String("handler", "realtime")),
	}
}

// Serve handles GET /ws?token=&clubId=. The handshake is authenticated
// before upgrading so failures still get a JSON envelope.
func (h *RealtimeHandler) Serve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	accessToken := query.Get("token")
	if accessToken == "" {
		utils.ResponseUnauthorized(w, "Access token required")
		return
	}

	clubID, err := uuid.Parse(query.Get("clubId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid club ID", nil)
		return
	}

	identity, err := h.auth.Authenticate(r.Context(), accessToken)
	if err != nil {
		handleServiceError(w, h.log, err, "authenticate websocket")
		return
	}
	if !h.authorize(r.Context(), identity.UserID, clubID) {
		utils.ResponseForbidden(w, "Not a member of this club")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := realtime.NewClient(h.hub, conn, identity.UserID, h.authorize, h.log)
	client.Serve(r.Context(), clubID)
}

func (h *RealtimeHandler) authorize(ctx context.Context, userID, clubID uuid.UUID) bool {
	_, err := h.auth.Membership(ctx, userID, clubID)
	if err != nil {
		h.log.Debug("Club subscription refused",
			zap.String("user_id", userID.String()),
			zap.String("club_id", clubID.String()),
			zap.Error(err))
		return false
	}
	return true
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}
