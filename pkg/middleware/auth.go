package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clubops/internal/data/entity"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClubHeader carries the club a request acts on.
const ClubHeader = "Club-ID"

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*usecase.Identity, error)
}

type MembershipResolver interface {
	Membership(ctx context.Context, userID, clubID uuid.UUID) (*entity.Membership, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthSession validates the bearer JWT and its backing session, then puts
// the user and session token into the request context.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken, ok := BearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Access token required")
				return
			}

			identity, err := auth.Authenticate(r.Context(), accessToken)
			if err != nil {
				denied(w, r, err, logger)
				return
			}

			ctx := utils.SetUserContext(r.Context(), identity.UserID)
			ctx = utils.SetTokenContext(ctx, identity.SessionToken.String())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireClub scopes the request to the club named by the Club-ID header
// (or the clubId URL parameter) and checks the caller belongs to it.
// Must run after AuthSession.
func RequireClub(members MembershipResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			raw := r.Header.Get(ClubHeader)
			if raw == "" {
				raw = chi.URLParam(r, "clubId")
			}
			if raw == "" {
				utils.ResponseBadRequest(w, "Club ID required", nil)
				return
			}

			clubID, err := uuid.Parse(raw)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid club ID", nil)
				return
			}

			membership, err := members.Membership(r.Context(), userID, clubID)
			if err != nil {
				denied(w, r, err, logger)
				return
			}

			ctx := utils.SetClubContext(r.Context(), clubID, string(membership.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denied(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	var detail *usecase.DetailError
	message := ""
	if errors.As(err, &detail) {
		message = detail.Message
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		utils.ResponseUnauthorized(w, message)
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, message)
	default:
		logger.Error("Failed to authorize request",
			zap.Error(err),
			zap.String("path", r.URL.Path))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
