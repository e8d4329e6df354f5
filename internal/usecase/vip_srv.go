package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/data/repository"
	"clubops/internal/dto/request"
	"clubops/internal/dto/response"
	"clubops/internal/realtime"
	"clubops/pkg/receipt"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type VipService interface {
	ListRooms(ctx context.Context, clubID uuid.UUID) (*response.VipRoomListResponse, error)
	Book(ctx context.Context, clubID, userID, roomID uuid.UUID, req *request.BookVipRoomRequest) (*response.VipBookingResponse, error)
	Checkout(ctx context.Context, clubID, userID, roomID uuid.UUID, req *request.CheckoutRequest) (*response.VipBookingResponse, error)
	Receipt(ctx context.Context, clubID, bookingID uuid.UUID) ([]byte, string, error)
}

type vipEvent struct {
	Booking response.VipBookingResponse `json:"booking"`
}

type vipService struct {
	repo   *repository.Repository
	events realtime.Broadcaster
	log    *zap.Logger
	now    func() time.Time
}

func NewVipService(repo *repository.Repository, events realtime.Broadcaster, log *zap.Logger) VipService {
	return &vipService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "vip")),
		now:    time.Now,
	}
}

// billedHours rounds the occupied time up to whole hours, never below one.
func billedHours(start, end time.Time) int64 {
	const hourMs = int64(time.Hour / time.Millisecond)

	elapsed := end.Sub(start).Milliseconds()
	hours := (elapsed + hourMs - 1) / hourMs
	if hours < 1 {
		return 1
	}
	return hours
}

func hoursLabel(hours int64) string {
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

func (s *vipService) ListRooms(ctx context.Context, clubID uuid.UUID) (*response.VipRoomListResponse, error) {
	rooms, err := s.repo.VipRoom.ListActive(ctx, clubID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}

	bookings, err := s.repo.VipBooking.ListActiveByRooms(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[uuid.UUID][]*entity.VipBookingDetail, len(rooms))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	resp := &response.VipRoomListResponse{Rooms: make([]response.VipRoomResponse, 0, len(rooms))}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, response.VipRoomToResponse(room, byRoom[room.ID]))
	}

	return resp, nil
}

// Book opens an ACTIVE booking on a free room. The provisional end time and
// amount follow from the requested duration; checkout replaces both.
func (s *vipService) Book(ctx context.Context, clubID, userID, roomID uuid.UUID, req *request.BookVipRoomRequest) (*response.VipBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book VIP room validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	var dancerID *uuid.UUID
	if req.DancerID != nil {
		id := uuid.MustParse(*req.DancerID)
		dancerID = &id
	}

	var detail *entity.VipBookingDetail
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		room, err := tx.VipRoom.LockByID(ctx, clubID, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return newError(ErrNotFound, "VIP room not found")
		}

		active, err := tx.VipBooking.CountActiveByRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return newError(ErrConflict, "VIP room is already occupied")
		}

		var dancerName *string
		if dancerID != nil {
			dancer, err := tx.Dancer.FindByID(ctx, clubID, *dancerID)
			if err != nil {
				return err
			}
			if dancer == nil {
				return newError(ErrNotFound, "Dancer not found")
			}
			dancerName = &dancer.StageName
		}

		now := s.now()
		span := time.Duration(req.Duration.Mul(decimal.NewFromInt(int64(time.Hour))).IntPart())
		booking := entity.VipBooking{
			Base:         entity.NewBase(now),
			RoomID:       room.ID,
			DancerID:     dancerID,
			CustomerName: req.CustomerName,
			StartTime:    now,
			EndTime:      now.Add(span),
			TotalAmount:  room.HourlyRate.Mul(req.Duration),
			Status:       entity.VipBookingActive,
			CreatedBy:    &userID,
		}
		if err := tx.VipBooking.Create(ctx, &booking); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return newError(ErrConflict, "VIP room is already occupied")
			}
			return err
		}

		detail = &entity.VipBookingDetail{
			VipBooking:      booking,
			RoomName:        room.Name,
			ClubID:          room.ClubID,
			HourlyRate:      room.HourlyRate,
			DancerStageName: dancerName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("VIP room booked",
		zap.String("room", detail.RoomName),
		zap.String("booking_id", detail.ID.String()),
		zap.String("duration_hours", req.Duration.String()))

	resp := response.VipBookingToResponse(detail, 0)
	s.events.Emit(clubID, realtime.EventVipBooked, vipEvent{Booking: resp})

	return &resp, nil
}

// Checkout bills the room's ACTIVE booking by elapsed time, closes it and
// records the revenue in the same transaction.
func (s *vipService) Checkout(ctx context.Context, clubID, userID, roomID uuid.UUID, req *request.CheckoutRequest) (*response.VipBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	method := entity.PaymentCash
	if req.PaymentMethod != "" {
		method = entity.PaymentMethod(req.PaymentMethod)
	}

	var (
		detail *entity.VipBookingDetail
		hours  int64
	)
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		room, err := tx.VipRoom.LockByID(ctx, clubID, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return newError(ErrNotFound, "VIP room not found")
		}

		booking, err := tx.VipBooking.FindActiveByRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		if booking == nil {
			return newError(ErrNotFound, "No active booking found for this room")
		}

		now := s.now()
		hours = billedHours(booking.StartTime, now)
		amount := room.HourlyRate.Mul(decimal.NewFromInt(hours))

		if err := tx.VipBooking.Complete(ctx, booking.ID, now, amount); err != nil {
			if errors.Is(err, repository.ErrBookingNotActive) {
				return newError(ErrNotFound, "No active booking found for this room")
			}
			return err
		}

		reference := booking.ID.String()
		if err := tx.Transaction.Create(ctx, &entity.FinancialTransaction{
			BaseSimple:      entity.NewBaseSimple(now),
			ClubID:          clubID,
			TransactionType: entity.TransactionRevenue,
			Category:        entity.CategoryVipRoom,
			Amount:          amount,
			PaymentMethod:   method,
			Description:     fmt.Sprintf("%s - %s", room.Name, hoursLabel(hours)),
			Reference:       &reference,
			CreatedBy:       &userID,
			ProcessedAt:     now,
		}); err != nil {
			return err
		}

		booking.EndTime = now
		booking.TotalAmount = amount
		booking.Status = entity.VipBookingCompleted
		booking.UpdatedAt = now
		detail = &entity.VipBookingDetail{
			VipBooking: *booking,
			RoomName:   room.Name,
			ClubID:     room.ClubID,
			HourlyRate: room.HourlyRate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("VIP room checked out",
		zap.String("room", detail.RoomName),
		zap.String("booking_id", detail.ID.String()),
		zap.Int64("billed_hours", hours),
		zap.String("amount", detail.TotalAmount.String()))

	resp := response.VipBookingToResponse(detail, hours)
	s.events.Emit(clubID, realtime.EventVipCheckout, vipEvent{Booking: resp})

	return &resp, nil
}

// Receipt renders the PDF receipt of a completed booking and returns it
// with the booking reference.
func (s *vipService) Receipt(ctx context.Context, clubID, bookingID uuid.UUID) ([]byte, string, error) {
	detail, err := s.repo.VipBooking.FindDetail(ctx, clubID, bookingID)
	if err != nil {
		return nil, "", err
	}
	if detail == nil {
		return nil, "", newError(ErrNotFound, "Booking not found")
	}
	if detail.Status != entity.VipBookingCompleted {
		return nil, "", newError(ErrConflict, "Booking is still active")
	}

	club, err := s.repo.Club.FindByID(ctx, clubID)
	if err != nil {
		return nil, "", err
	}
	clubName := ""
	if club != nil {
		clubName = club.Name
	}

	guest := "-"
	switch {
	case detail.CustomerName != nil && *detail.CustomerName != "":
		guest = *detail.CustomerName
	case detail.DancerStageName != nil:
		guest = *detail.DancerStageName
	}

	reference := utils.BookingReference(detail.ID, detail.StartTime)
	pdf, err := receipt.Render(receipt.VipReceipt{
		Reference:   reference,
		ClubName:    clubName,
		RoomName:    detail.RoomName,
		Guest:       guest,
		StartTime:   detail.StartTime,
		EndTime:     detail.EndTime,
		BilledHours: billedHours(detail.StartTime, detail.EndTime),
		HourlyRate:  detail.HourlyRate,
		Amount:      detail.TotalAmount,
	})
	if err != nil {
		s.log.Error("Failed to render receipt", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, "", err
	}

	return pdf, reference, nil
}
