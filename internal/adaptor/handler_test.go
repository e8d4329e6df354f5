package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubops/internal/dto/request"
	"clubops/internal/dto/response"
	"clubops/internal/usecase"
	"clubops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	testUser = uuid.MustParse("8a0f3c52-6a44-4f43-9d36-3c2b2d0b9e11")
	testClub = uuid.MustParse("1f6f2d1e-5b7a-4bb0-8d2e-0c7a7f3f1a22")
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// scoped mimics the auth middleware chain.
func scoped(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := utils.SetUserContext(r.Context(), testUser)
		ctx = utils.SetClubContext(ctx, testClub, "OWNER")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type stubQueue struct {
	usecase.QueueService
	reorderErr error
	got        *request.ReorderRequest
}

func (s *stubQueue) Reorder(_ context.Context, clubID, stageID uuid.UUID, req *request.ReorderRequest) (*response.ReorderResponse, error) {
	s.got = req
	if s.reorderErr != nil {
		return nil, s.reorderErr
	}
	return &response.ReorderResponse{Success: true}, nil
}

type stubVip struct {
	usecase.VipService
	checkout *request.CheckoutRequest
	pdf      []byte
	err      error
}

func (s *stubVip) Checkout(_ context.Context, _, _, roomID uuid.UUID, req *request.CheckoutRequest) (*response.VipBookingResponse, error) {
	s.checkout = req
	return &response.VipBookingResponse{RoomID: roomID.String(), Status: "COMPLETED"}, s.err
}

func (s *stubVip) Receipt(context.Context, uuid.UUID, uuid.UUID) ([]byte, string, error) {
	return s.pdf, "VIP-20260314-ABCD1234", s.err
}

type stubDancer struct {
	usecase.DancerService
	list *request.ListDancersRequest
}

func (s *stubDancer) List(_ context.Context, _ uuid.UUID, req *request.ListDancersRequest) (*response.DancerListResponse, error) {
	s.list = req
	return &response.DancerListResponse{Dancers: []response.DancerResponse{}}, nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", &usecase.DetailError{Kind: usecase.ErrValidation, Message: "Validation failed", Fields: map[string]string{"duration": "Must be greater than 0"}}, http.StatusBadRequest, "Validation failed"},
		{"unauthorized", &usecase.DetailError{Kind: usecase.ErrUnauthorized, Message: "Invalid credentials"}, http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", &usecase.DetailError{Kind: usecase.ErrForbidden, Message: "Access denied to this club"}, http.StatusForbidden, "Access denied to this club"},
		{"not found", fmt.Errorf("load room: %w", &usecase.DetailError{Kind: usecase.ErrNotFound, Message: "VIP room not found"}), http.StatusNotFound, "VIP room not found"},
		{"conflict", &usecase.DetailError{Kind: usecase.ErrConflict, Message: "VIP room is already occupied"}, http.StatusConflict, "VIP room is already occupied"},
		{"plain sentinel", usecase.ErrNotFound, http.StatusNotFound, "not found"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.code, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Status)
			assert.Equal(t, tt.msg, env.Message)
		})
	}
}

func TestHandleServiceErrorCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &usecase.DetailError{Kind: usecase.ErrValidation, Message: "Validation failed", Fields: map[string]string{"entries": "This field is required"}}
	handleServiceError(rec, zap.NewNop(), err, "reorder queue")

	env := decode(t, rec)
	assert.Equal(t, "This field is required", env.Errors["entries"])
}

func TestQueueReorderHandler(t *testing.T) {
	stageID := uuid.New()

	tests := []struct {
		name string
		path string
		body string
		err  error
		code int
	}{
		{"success", "/api/queue/" + stageID.String() + "/reorder", `{"entries":[{"id":"` + uuid.NewString() + `","position":1}]}`, nil, http.StatusOK},
		{"malformed stage", "/api/queue/not-a-uuid/reorder", `{"entries":[]}`, nil, http.StatusBadRequest},
		{"malformed body", "/api/queue/" + stageID.String() + "/reorder", `{"entries":`, nil, http.StatusBadRequest},
		{"unknown entry", "/api/queue/" + stageID.String() + "/reorder", `{"entries":[{"id":"` + uuid.NewString() + `","position":1}]}`, &usecase.DetailError{Kind: usecase.ErrNotFound, Message: "Queue entry not found"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubQueue{reorderErr: tt.err}
			h := NewQueueHandler(svc, zap.NewNop())

			r := chi.NewRouter()
			r.With(scoped).Put("/api/queue/{stageId}/reorder", h.Reorder)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.JSONEq(t, `{"success":true}`, string(decode(t, rec).Data))
			}
		})
	}
}

func TestVipCheckoutAcceptsEmptyBody(t *testing.T) {
	svc := &stubVip{}
	h := NewVipHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.With(scoped).Put("/api/vip-rooms/{id}/checkout", h.Checkout)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/vip-rooms/"+uuid.NewString()+"/checkout", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.checkout)
	assert.Empty(t, svc.checkout.PaymentMethod)
}

func TestCheckoutAuditsCallerRole(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewVipHandler(&stubVip{}, zap.New(core))

	r := chi.NewRouter()
	r.With(scoped).Put("/api/vip-rooms/{id}/checkout", h.Checkout)

	roomID := uuid.NewString()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/vip-rooms/"+roomID+"/checkout", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	entries := logs.FilterMessage("VIP room checked out").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "OWNER", fields["role"])
	assert.Equal(t, testUser.String(), fields["user_id"])
	assert.Equal(t, testClub.String(), fields["club_id"])
	assert.Equal(t, roomID, fields["room_id"])
}

func TestVipReceiptWritesPDF(t *testing.T) {
	svc := &stubVip{pdf: []byte("%PDF-1.3 test")}
	h := NewVipHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.With(scoped).Get("/api/vip-rooms/bookings/{bookingId}/receipt", h.Receipt)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vip-rooms/bookings/"+uuid.NewString()+"/receipt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "receipt-VIP-20260314-ABCD1234.pdf")
	assert.Equal(t, "%PDF-1.3 test", rec.Body.String())
}

func TestVipReceiptForActiveBooking(t *testing.T) {
	svc := &stubVip{err: &usecase.DetailError{Kind: usecase.ErrConflict, Message: "Booking is still active"}}
	h := NewVipHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.With(scoped).Get("/api/vip-rooms/bookings/{bookingId}/receipt", h.Receipt)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vip-rooms/bookings/"+uuid.NewString()+"/receipt", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestDancerListParsesQuery(t *testing.T) {
	svc := &stubDancer{}
	h := NewDancerHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	scoped(http.HandlerFunc(h.List)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dancers?page=3&limit=20&search=roxy", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.list)
	assert.Equal(t, 3, svc.list.Page)
	assert.Equal(t, 20, svc.list.Limit())
	assert.Equal(t, "roxy", svc.list.Search)
}

func TestScopeRequiresClub(t *testing.T) {
	h := NewDancerHandler(&stubDancer{}, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/dancers", nil)
	r = r.WithContext(utils.SetUserContext(r.Context(), testUser))

	rec := httptest.NewRecorder()
	h.List(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealthHandler(stubPinger{}, zap.NewNop()).Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var status HealthStatus
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &status))
		assert.Equal(t, "connected", status.Database)
	})

	t.Run("database down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealthHandler(stubPinger{err: errors.New("dial tcp: refused")}, zap.NewNop()).Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var status HealthStatus
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &status))
		assert.Equal(t, "disconnected", status.Database)
	})
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://ops.example.com"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://ops.example.com")
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(r))

	r.Header.Set("Origin", "https://anything.example.com")
	assert.True(t, originChecker([]string{"*"})(r))
}
