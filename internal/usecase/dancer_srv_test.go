package usecase

import (
	"context"
	"testing"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/dto/request"
	"clubops/internal/realtime"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDancerFixture(t *testing.T) (pgxmock.PgxPoolIface, *dancerService, *eventRecorder) {
	mock, repo := newMockRepo(t)
	events := &eventRecorder{}

	svc := NewDancerService(repo, events, zap.NewNop()).(*dancerService)
	svc.now = func() time.Time { return fixedNow }

	return mock, svc, events
}

func TestCreateDancer(t *testing.T) {
	mock, svc, events := newDancerFixture(t)
	clubID := uuid.New()

	mock.ExpectExec("INSERT INTO dancers").
		WithArgs(anyArgs(13)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dob := "1998-04-02"
	resp, err := svc.Create(context.Background(), clubID, uuid.New(), &request.CreateDancerRequest{
		StageName:   "  Aria ",
		DateOfBirth: &dob,
	})

	require.NoError(t, err)
	assert.Equal(t, "Aria", resp.StageName)
	require.NotNil(t, resp.DateOfBirth)
	assert.Equal(t, dob, *resp.DateOfBirth)
	require.Len(t, events.Events(), 1)
	assert.Equal(t, realtime.EventDancerCreated, events.Events()[0].Event)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDancerDuplicateStageName(t *testing.T) {
	mock, svc, events := newDancerFixture(t)

	mock.ExpectExec("INSERT INTO dancers").
		WithArgs(anyArgs(13)...).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &request.CreateDancerRequest{StageName: "Aria"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, events.Events())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDancerBadDate(t *testing.T) {
	_, svc, _ := newDancerFixture(t)

	dob := "02/04/1998"
	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &request.CreateDancerRequest{
		StageName:   "Aria",
		DateOfBirth: &dob,
	})

	var detail *DetailError
	require.ErrorAs(t, err, &detail)
	assert.Contains(t, detail.Fields, "dateOfBirth")
}

func TestCheckInTwiceConflicts(t *testing.T) {
	mock, svc, _ := newDancerFixture(t)
	clubID := uuid.New()
	dancer := &entity.Dancer{Base: entity.Base{ID: uuid.New()}, ClubID: clubID, StageName: "Bella"}

	mock.ExpectQuery("FROM dancers").WithArgs(dancer.ID, clubID).WillReturnRows(dancerRows(dancer))
	mock.ExpectExec("INSERT INTO dancer_sessions").
		WithArgs(anyArgs(5)...).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.CheckIn(context.Background(), clubID, dancer.ID)

	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutWithoutSession(t *testing.T) {
	mock, svc, _ := newDancerFixture(t)
	clubID := uuid.New()
	dancer := &entity.Dancer{Base: entity.Base{ID: uuid.New()}, ClubID: clubID, StageName: "Bella"}

	mock.ExpectQuery("FROM dancers").WithArgs(dancer.ID, clubID).WillReturnRows(dancerRows(dancer))
	mock.ExpectQuery("UPDATE dancer_sessions").
		WithArgs(dancer.ID, timeArg{fixedNow}).
		WillReturnRows(pgxmock.NewRows([]string{
		"id", "dancer_id", "check_in_time", "check_out_time", "bar_fee_paid", "bar_fee_amount", "created_at",
	}))

	_, err := svc.CheckOut(context.Background(), clubID, dancer.ID)

	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertsGroupLicensesByDancer(t *testing.T) {
	mock, svc, _ := newDancerFixture(t)
	clubID := uuid.New()
	dancer := &entity.Dancer{Base: entity.Base{ID: uuid.New()}, ClubID: clubID, StageName: "Crystal"}

	licenseCols := []string{
		"id", "dancer_id", "license_type", "license_number", "issue_date",
		"expiration_date", "issuing_authority", "is_active", "created_at",
	}
	mock.ExpectQuery("FROM dancer_licenses").
		WithArgs(clubID, timeArg{fixedNow.Add(licenseAlertWindow)}).
		WillReturnRows(pgxmock.NewRows(licenseCols).
			AddRow(uuid.New(), dancer.ID, "ENTERTAINMENT", "ENT-003", fixedNow.AddDate(-1, 0, 0), fixedNow.AddDate(0, 0, 3), nil, true, fixedNow).
			AddRow(uuid.New(), dancer.ID, "HEALTH", "HLT-003", fixedNow.AddDate(-1, 0, 0), fixedNow.AddDate(0, 0, 10), nil, true, fixedNow))
	mock.ExpectQuery("FROM dancers").WithArgs(dancer.ID, clubID).WillReturnRows(dancerRows(dancer))

	resp, err := svc.Alerts(context.Background(), clubID)

	require.NoError(t, err)
	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, "Crystal", resp.Alerts[0].StageName)
	assert.Len(t, resp.Alerts[0].Licenses, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
