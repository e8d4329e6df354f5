package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubops/internal/data/entity"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuth struct {
	identity *usecase.Identity
	err      error
}

func (s stubAuth) Authenticate(context.Context, string) (*usecase.Identity, error) {
	return s.identity, s.err
}

type stubMembers map[uuid.UUID]entity.ClubRole

func (s stubMembers) Membership(_ context.Context, _ uuid.UUID, clubID uuid.UUID) (*entity.Membership, error) {
	role, ok := s[clubID]
	if !ok {
		return nil, &usecase.DetailError{Kind: usecase.ErrForbidden, Message: "Access denied to this club"}
	}
	return &entity.Membership{ClubID: clubID, Role: role}, nil
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc.def", "abc.def", true},
		{"Bearer ", "", false},
		{"Token abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		got, ok := BearerToken(r)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestAuthSession(t *testing.T) {
	identity := &usecase.Identity{UserID: uuid.New(), SessionToken: uuid.New()}

	tests := []struct {
		name   string
		header string
		auth   stubAuth
		want   int
	}{
		{"missing token", "", stubAuth{}, http.StatusUnauthorized},
		{"bad signature", "Bearer forged", stubAuth{err: &usecase.DetailError{Kind: usecase.ErrForbidden}}, http.StatusForbidden},
		{"revoked session", "Bearer old", stubAuth{err: &usecase.DetailError{Kind: usecase.ErrUnauthorized}}, http.StatusUnauthorized},
		{"store failure", "Bearer ok", stubAuth{err: errors.New("connection reset")}, http.StatusInternalServerError},
		{"valid", "Bearer ok", stubAuth{identity: identity}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			AuthSession(tt.auth, zap.NewNop())(okHandler(t)).ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireClub(t *testing.T) {
	member := uuid.New()
	members := stubMembers{member: entity.RoleDJ}

	tests := []struct {
		name   string
		clubID string
		want   int
	}{
		{"missing club", "", http.StatusBadRequest},
		{"malformed club", "club-1", http.StatusBadRequest},
		{"not a member", uuid.NewString(), http.StatusForbidden},
		{"member", member.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/vip-rooms", nil)
			r = r.WithContext(utils.SetUserContext(r.Context(), uuid.New()))
			if tt.clubID != "" {
				r.Header.Set(ClubHeader, tt.clubID)
			}
			w := httptest.NewRecorder()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				clubID, ok := utils.GetClubIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, member, clubID)
				role, _ := utils.GetRoleFromContext(r.Context())
				assert.Equal(t, string(entity.RoleDJ), role)
				w.WriteHeader(http.StatusNoContent)
			})
			RequireClub(members, zap.NewNop())(next).ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireClubWithoutUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/vip-rooms", nil)
	r.Header.Set(ClubHeader, uuid.NewString())
	w := httptest.NewRecorder()

	RequireClub(stubMembers{}, zap.NewNop())(okHandler(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
