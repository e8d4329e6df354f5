package usecase

import (
	"context"
	"testing"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/dto/request"
	"clubops/internal/realtime"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFinancialFixture(t *testing.T) (pgxmock.PgxPoolIface, *financialService, *eventRecorder) {
	mock, repo := newMockRepo(t)
	events := &eventRecorder{}

	svc := NewFinancialService(repo, events, zap.NewNop()).(*financialService)
	svc.now = func() time.Time { return fixedNow }

	return mock, svc, events
}

func TestCollectBarFeeMarksOpenSessionPaid(t *testing.T) {
	mock, svc, events := newFinancialFixture(t)

	clubID := uuid.New()
	dancer := &entity.Dancer{Base: entity.Base{ID: uuid.New()}, ClubID: clubID, StageName: "Crystal"}
	fee := decimal.NewFromInt(25)

	txnArgs := anyArgs(11)
	txnArgs[2] = entity.TransactionRevenue
	txnArgs[3] = entity.CategoryBarFee
	txnArgs[4] = decimalArg{fee}
	txnArgs[5] = entity.PaymentCash
	txnArgs[6] = "Bar fee - Crystal"

	mock.ExpectBegin()
	mock.ExpectQuery("FROM dancers").
		WithArgs(dancer.ID, clubID).
		WillReturnRows(dancerRows(dancer))
	mock.ExpectExec("INSERT INTO financial_transactions").
		WithArgs(txnArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE dancer_sessions").
		WithArgs(dancer.ID, decimalArg{fee}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	resp, err := svc.CollectBarFee(context.Background(), clubID, uuid.New(), &request.BarFeeRequest{
		DancerID:      dancer.ID.String(),
		Amount:        fee,
		PaymentMethod: "CASH",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.CategoryBarFee, resp.Category)
	assert.True(t, resp.Amount.Equal(fee))
	require.NotNil(t, resp.Reference)
	assert.Equal(t, dancer.ID.String(), *resp.Reference)

	recorded := events.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, realtime.EventBarFee, recorded[0].Event)
	assert.Equal(t, barFeeEvent{Dancer: "Crystal", Amount: fee}, recorded[0].Data)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectBarFeeAppendsNotes(t *testing.T) {
	mock, svc, _ := newFinancialFixture(t)

	clubID := uuid.New()
	dancer := &entity.Dancer{Base: entity.Base{ID: uuid.New()}, ClubID: clubID, StageName: "Bella"}
	notes := "late arrival"

	txnArgs := anyArgs(11)
	txnArgs[6] = "Bar fee - Bella (late arrival)"

	mock.ExpectBegin()
	mock.ExpectQuery("FROM dancers").
		WithArgs(dancer.ID, clubID).
		WillReturnRows(dancerRows(dancer))
	mock.ExpectExec("INSERT INTO financial_transactions").
		WithArgs(txnArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE dancer_sessions").
		WithArgs(dancer.ID, decimalArg{decimal.NewFromInt(40)}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectCommit()

	_, err := svc.CollectBarFee(context.Background(), clubID, uuid.New(), &request.BarFeeRequest{
		DancerID:      dancer.ID.String(),
		Amount:        decimal.NewFromInt(40),
		PaymentMethod: "DEBIT_CARD",
		Notes:         &notes,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectBarFeeUnknownDancer(t *testing.T) {
	mock, svc, events := newFinancialFixture(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM dancers").
		WithArgs(anyArgs(2)...).
		WillReturnRows(pgxmock.NewRows([]string{
		"id", "club_id", "stage_name", "first_name", "last_name", "phone", "email",
		"date_of_birth", "notes", "is_active", "created_by", "created_at", "updated_at",
	}))
	mock.ExpectRollback()

	_, err := svc.CollectBarFee(context.Background(), uuid.New(), uuid.New(), &request.BarFeeRequest{
		DancerID:      uuid.NewString(),
		Amount:        decimal.NewFromInt(25),
		PaymentMethod: "CASH",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, events.Events())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectBarFeeValidation(t *testing.T) {
	_, svc, _ := newFinancialFixture(t)

	_, err := svc.CollectBarFee(context.Background(), uuid.New(), uuid.New(), &request.BarFeeRequest{
		DancerID:      uuid.NewString(),
		Amount:        decimal.Zero,
		PaymentMethod: "BITCOIN",
	})

	var detail *DetailError
	require.ErrorAs(t, err, &detail)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, detail.Fields, "amount")
	assert.Contains(t, detail.Fields, "paymentMethod")
}

func TestCollectBarFeeRejectsAmountsOutsideColumn(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		message string
	}{
		{"above column precision", "1000000000", "Must be at most 99999999.99"},
		{"sub-cent amount", "25.005", "Must have at most 2 decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, svc, events := newFinancialFixture(t)

			_, err := svc.CollectBarFee(context.Background(), uuid.New(), uuid.New(), &request.BarFeeRequest{
				DancerID:      uuid.NewString(),
				Amount:        decimal.RequireFromString(tt.amount),
				PaymentMethod: "CASH",
			})

			var detail *DetailError
			require.ErrorAs(t, err, &detail)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.message, detail.Fields["amount"])
			assert.Empty(t, events.Events())
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPeriodStarts(t *testing.T) {
	// Saturday
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	day, week, month := periodStarts(now)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), week)
	assert.Equal(t, time.Sunday, week.Weekday())
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), month)
}

func TestDashboardSumsRevenueWindows(t *testing.T) {
	mock, svc, _ := newFinancialFixture(t)
	clubID := uuid.New()
	day, week, month := periodStarts(fixedNow)
	first, last := "Club", "Manager"

	mock.ExpectQuery("SUM").
		WithArgs(clubID, timeArg{day}).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.NewFromInt(175)))
	mock.ExpectQuery("SUM").
		WithArgs(clubID, timeArg{week}).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.NewFromInt(900)))
	mock.ExpectQuery("SUM").
		WithArgs(clubID, timeArg{month}).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.NewFromInt(4200)))
	mock.ExpectQuery("FROM financial_transactions t").
		WithArgs(clubID, recentTransactionsLimit).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "club_id", "transaction_type", "category", "amount", "payment_method",
			"description", "reference", "created_by", "processed_at", "created_at",
			"first_name", "last_name",
		}).AddRow(uuid.New(), clubID, entity.TransactionRevenue, entity.CategoryBarFee,
			decimal.NewFromInt(25), entity.PaymentCash, "Bar fee - Crystal", nil, nil,
			fixedNow, fixedNow, &first, &last))

	resp, err := svc.Dashboard(context.Background(), clubID)

	require.NoError(t, err)
	assert.True(t, resp.Revenue.Daily.Equal(decimal.NewFromInt(175)))
	assert.True(t, resp.Revenue.Weekly.Equal(decimal.NewFromInt(900)))
	assert.True(t, resp.Revenue.Monthly.Equal(decimal.NewFromInt(4200)))
	require.Len(t, resp.RecentTransactions, 1)
	require.NotNil(t, resp.RecentTransactions[0].CreatedBy)
	assert.Equal(t, "Club Manager", *resp.RecentTransactions[0].CreatedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}
