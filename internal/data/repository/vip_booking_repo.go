package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubops/internal/data/entity"
	"clubops/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrBookingNotActive is returned by Complete when the booking was already
// completed or does not exist.
var ErrBookingNotActive = errors.New("booking is not active")

type VipBookingRepository interface {
	Create(ctx context.Context, booking *entity.VipBooking) error
	CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int, error)
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) (*entity.VipBooking, error)
	ListActiveByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]*entity.VipBookingDetail, error)
	FindDetail(ctx context.Context, clubID, id uuid.UUID) (*entity.VipBookingDetail, error)
	Complete(ctx context.Context, id uuid.UUID, endTime time.Time, amount decimal.Decimal) error
}

type vipBookingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewVipBookingRepository(db database.DBTX, log *zap.Logger) VipBookingRepository {
	return &vipBookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "vip_booking")),
	}
}

const vipBookingColumns = `b.id, b.room_id, b.dancer_id, b.customer_name, b.start_time, b.end_time,
		       b.total_amount, b.status, b.created_by, b.created_at, b.updated_at`

// Create inserts a booking; a second ACTIVE booking for the room yields ErrDuplicate.
func (r *vipBookingRepository) Create(ctx context.Context, booking *entity.VipBooking) error {
	query := `
		INSERT INTO vip_bookings (id, room_id, dancer_id, customer_name, start_time, end_time,
		                          total_amount, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.DancerID,
		booking.CustomerName,
		booking.StartTime,
		booking.EndTime,
		booking.TotalAmount,
		booking.Status,
		booking.CreatedBy,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create booking for room %s: %w", booking.RoomID, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create VIP booking",
			zap.Error(err),
			zap.String("room_id", booking.RoomID.String()),
		)
		return fmt.Errorf("create booking for room %s: %w", booking.RoomID, err)
	}

	return nil
}

func (r *vipBookingRepository) CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM vip_bookings WHERE room_id = $1 AND status = 'ACTIVE'`

	var count int
	if err := r.db.QueryRow(ctx, query, roomID).Scan(&count); err != nil {
		r.log.Error("Failed to count active bookings",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return 0, fmt.Errorf("count active bookings for room %s: %w", roomID, err)
	}

	return count, nil
}

// FindActiveByRoom selects on status alone; the provisional end time plays no part.
func (r *vipBookingRepository) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) (*entity.VipBooking, error) {
	query := `
		SELECT ` + vipBookingColumns + `
		FROM vip_bookings b
		WHERE b.room_id = $1 AND b.status = 'ACTIVE'
		ORDER BY b.start_time DESC
		LIMIT 1
	`

	booking, err := scanVipBooking(r.db.QueryRow(ctx, query, roomID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active booking",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find active booking for room %s: %w", roomID, err)
	}

	return booking, nil
}

func (r *vipBookingRepository) ListActiveByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]*entity.VipBookingDetail, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + vipBookingColumns + `, vr.name, vr.club_id, vr.hourly_rate, d.stage_name
		FROM vip_bookings b
		JOIN vip_rooms vr ON vr.id = b.room_id
		LEFT JOIN dancers d ON d.id = b.dancer_id
		WHERE b.room_id = ANY($1::uuid[]) AND b.status = 'ACTIVE'
		ORDER BY b.start_time ASC
	`

	rows, err := r.db.Query(ctx, query, uuidStrings(roomIDs))
	if err != nil {
		r.log.Error("Failed to list active bookings", zap.Error(err))
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.VipBookingDetail
	for rows.Next() {
		detail, err := scanVipBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan VIP booking row", zap.Error(err))
			return nil, fmt.Errorf("scan VIP booking row: %w", err)
		}
		bookings = append(bookings, detail)
	}

	return bookings, rows.Err()
}

// FindDetail returns nil when the booking does not belong to a room of the club.
func (r *vipBookingRepository) FindDetail(ctx context.Context, clubID, id uuid.UUID) (*entity.VipBookingDetail, error) {
	query := `
		SELECT ` + vipBookingColumns + `, vr.name, vr.club_id, vr.hourly_rate, d.stage_name
		FROM vip_bookings b
		JOIN vip_rooms vr ON vr.id = b.room_id
		LEFT JOIN dancers d ON d.id = b.dancer_id
		WHERE b.id = $1 AND vr.club_id = $2
	`

	detail, err := scanVipBookingDetail(r.db.QueryRow(ctx, query, id, clubID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find VIP booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find VIP booking %s: %w", id, err)
	}

	return detail, nil
}

// Complete stores the billed end time and amount and closes the booking.
func (r *vipBookingRepository) Complete(ctx context.Context, id uuid.UUID, endTime time.Time, amount decimal.Decimal) error {
	query := `
		UPDATE vip_bookings
		SET end_time = $2, total_amount = $3, status = 'COMPLETED', updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE'
	`

	result, err := r.db.Exec(ctx, query, id, endTime, amount)
	if err != nil {
		r.log.Error("Failed to complete VIP booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("complete booking %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("complete booking %s: %w", id, ErrBookingNotActive)
	}

	return nil
}

func scanVipBooking(row pgx.Row) (*entity.VipBooking, error) {
	var b entity.VipBooking
	err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.DancerID,
		&b.CustomerName,
		&b.StartTime,
		&b.EndTime,
		&b.TotalAmount,
		&b.Status,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanVipBookingDetail(row pgx.Row) (*entity.VipBookingDetail, error) {
	var d entity.VipBookingDetail
	err := row.Scan(
		&d.ID,
		&d.RoomID,
		&d.DancerID,
		&d.CustomerName,
		&d.StartTime,
		&d.EndTime,
		&d.TotalAmount,
		&d.Status,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.RoomName,
		&d.ClubID,
		&d.HourlyRate,
		&d.DancerStageName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
