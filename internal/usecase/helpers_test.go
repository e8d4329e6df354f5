package usecase

import (
	"sync"
	"testing"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/data/repository"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *repository.Repository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, repository.NewRepository(mock, zap.NewNop())
}

type emitted struct {
	ClubID uuid.UUID
	Event  string
	Data   any
}

// eventRecorder captures events instead of broadcasting them.
type eventRecorder struct {
	mu     sync.Mutex
	events []emitted
}

func (r *eventRecorder) Emit(clubID uuid.UUID, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, emitted{ClubID: clubID, Event: event, Data: data})
}

func (r *eventRecorder) Events() []emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]emitted(nil), r.events...)
}

// decimalArg matches a decimal argument by value rather than representation.
type decimalArg struct{ want decimal.Decimal }

func (a decimalArg) Match(v any) bool {
	d, ok := v.(decimal.Decimal)
	return ok && d.Equal(a.want)
}

type timeArg struct{ want time.Time }

func (a timeArg) Match(v any) bool {
	t, ok := v.(time.Time)
	return ok && t.Equal(a.want)
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func queueRows(q *entity.DJQueue) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "club_id", "stage_id", "name", "created_at", "updated_at"}).
		AddRow(q.ID, q.ClubID, q.StageID, q.Name, fixedNow, fixedNow)
}

func dancerRows(d *entity.Dancer) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "club_id", "stage_name", "first_name", "last_name", "phone", "email",
		"date_of_birth", "notes", "is_active", "created_by", "created_at", "updated_at",
	}).AddRow(d.ID, d.ClubID, d.StageName, nil, nil, nil, nil, nil, nil, true, nil, fixedNow, fixedNow)
}

func vipRoomRows(room *entity.VipRoom) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "club_id", "name", "description", "hourly_rate", "capacity", "amenities",
		"is_active", "created_at", "updated_at",
	}).AddRow(room.ID, room.ClubID, room.Name, nil, room.HourlyRate, room.Capacity,
		[]string{"Private Bar"}, true, fixedNow, fixedNow)
}

func vipBookingRows(b *entity.VipBooking) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "room_id", "dancer_id", "customer_name", "start_time", "end_time",
		"total_amount", "status", "created_by", "created_at", "updated_at",
	}).AddRow(b.ID, b.RoomID, nil, nil, b.StartTime, b.EndTime,
		b.TotalAmount, b.Status, nil, b.StartTime, b.StartTime)
}
