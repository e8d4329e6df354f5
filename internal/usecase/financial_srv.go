package usecase

import (
	"context"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/data/repository"
	"clubops/internal/dto/request"
	"clubops/internal/dto/response"
	"clubops/internal/realtime"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recentTransactionsLimit = 10

type FinancialService interface {
	CollectBarFee(ctx context.Context, clubID, userID uuid.UUID, req *request.BarFeeRequest) (*response.TransactionResponse, error)
	Dashboard(ctx context.Context, clubID uuid.UUID) (*response.DashboardResponse, error)
}

type barFeeEvent struct {
	Dancer string          `json:"dancer"`
	Amount decimal.Decimal `json:"amount"`
}

type financialService struct {
	repo   *repository.Repository
	events realtime.Broadcaster
	log    *zap.Logger
	now    func() time.Time
}

func NewFinancialService(repo *repository.Repository, events realtime.Broadcaster, log *zap.Logger) FinancialService {
	return &financialService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "financial")),
		now:    time.Now,
	}
}

// CollectBarFee records the fee as revenue and marks every open session of
// the dancer as paid, atomically.
func (s *financialService) CollectBarFee(ctx context.Context, clubID, userID uuid.UUID, req *request.BarFeeRequest) (*response.TransactionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Bar fee validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	dancerID := uuid.MustParse(req.DancerID)

	var (
		txn       *entity.FinancialTransaction
		stageName string
	)
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		dancer, err := tx.Dancer.FindByID(ctx, clubID, dancerID)
		if err != nil {
			return err
		}
		if dancer == nil {
			return newError(ErrNotFound, "Dancer not found")
		}
		stageName = dancer.StageName

		description := "Bar fee - " + dancer.StageName
		if req.Notes != nil && *req.Notes != "" {
			description += " (" + *req.Notes + ")"
		}

		now := s.now()
		reference := dancer.ID.String()
		txn = &entity.FinancialTransaction{
			BaseSimple:      entity.NewBaseSimple(now),
			ClubID:          clubID,
			TransactionType: entity.TransactionRevenue,
			Category:        entity.CategoryBarFee,
			Amount:          req.Amount,
			PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
			Description:     description,
			Reference:       &reference,
			CreatedBy:       &userID,
			ProcessedAt:     now,
		}
		if err := tx.Transaction.Create(ctx, txn); err != nil {
			return err
		}

		_, err = tx.DancerSession.MarkBarFeePaid(ctx, dancer.ID, req.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Bar fee collected",
		zap.String("dancer", stageName),
		zap.String("amount", req.Amount.String()),
		zap.String("payment_method", req.PaymentMethod))

	s.events.Emit(clubID, realtime.EventBarFee, barFeeEvent{Dancer: stageName, Amount: req.Amount})

	resp := response.TransactionToResponse(txn)
	return &resp, nil
}

func (s *financialService) Dashboard(ctx context.Context, clubID uuid.UUID) (*response.DashboardResponse, error) {
	day, week, month := periodStarts(s.now())

	daily, err := s.repo.Transaction.SumRevenueSince(ctx, clubID, day)
	if err != nil {
		return nil, err
	}
	weekly, err := s.repo.Transaction.SumRevenueSince(ctx, clubID, week)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.Transaction.SumRevenueSince(ctx, clubID, month)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.Transaction.ListRecent(ctx, clubID, recentTransactionsLimit)
	if err != nil {
		return nil, err
	}

	resp := &response.DashboardResponse{
		Revenue: response.RevenueSummary{
			Daily:   daily,
			Weekly:  weekly,
			Monthly: monthly,
		},
		RecentTransactions: make([]response.TransactionResponse, 0, len(recent)),
	}
	for _, t := range recent {
		resp.RecentTransactions = append(resp.RecentTransactions, response.TransactionWithCreatorToResponse(t))
	}

	return resp, nil
}

// periodStarts returns midnight of today, of the last Sunday and of the
// first of the month, in now's location.
func periodStarts(now time.Time) (day, week, month time.Time) {
	day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week = day.AddDate(0, 0, -int(day.Weekday()))
	month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return day, week, month
}
