package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	TokenKey  contextKey = "token"
	ClubIDKey contextKey = "club_id"
	RoleKey   contextKey = "club_role"
)

func SetUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// SetTokenContext stores the session token (JWT id) of the current request.
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}

// SetClubContext stores the club the request is scoped to and the caller's role in it.
func SetClubContext(ctx context.Context, clubID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, ClubIDKey, clubID)
	return context.WithValue(ctx, RoleKey, role)
}

func GetClubIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	clubID, ok := ctx.Value(ClubIDKey).(uuid.UUID)
	if !ok || clubID == uuid.Nil {
		return uuid.Nil, false
	}
	return clubID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
