package repository

import (
	"context"
	"errors"
	"fmt"

	"clubops/internal/data/entity"
	"clubops/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VipRoomRepository interface {
	Create(ctx context.Context, room *entity.VipRoom) error
	ListActive(ctx context.Context, clubID uuid.UUID) ([]*entity.VipRoom, error)
	FindByID(ctx context.Context, clubID, id uuid.UUID) (*entity.VipRoom, error)
	LockByID(ctx context.Context, clubID, id uuid.UUID) (*entity.VipRoom, error)
}

type vipRoomRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewVipRoomRepository(db database.DBTX, log *zap.Logger) VipRoomRepository {
	return &vipRoomRepository{
		db:  db,
		log: log.With(zap.String("repository", "vip_room")),
	}
}

const vipRoomColumns = `id, club_id, name, description, hourly_rate, capacity, amenities,
		       is_active, created_at, updated_at`

func (r *vipRoomRepository) Create(ctx context.Context, room *entity.VipRoom) error {
	query := `
		INSERT INTO vip_rooms (id, club_id, name, description, hourly_rate, capacity,
		                       amenities, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	amenities := room.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.ClubID,
		room.Name,
		room.Description,
		room.HourlyRate,
		room.Capacity,
		amenities,
		room.IsActive,
		room.CreatedAt,
		room.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create VIP room",
			zap.Error(err),
			zap.String("club_id", room.ClubID.String()),
			zap.String("name", room.Name),
		)
		return fmt.Errorf("create VIP room %s: %w", room.Name, err)
	}

	return nil
}

// ListActive returns the club's active rooms ordered by name.
func (r *vipRoomRepository) ListActive(ctx context.Context, clubID uuid.UUID) ([]*entity.VipRoom, error) {
	query := `
		SELECT ` + vipRoomColumns + `
		FROM vip_rooms
		WHERE club_id = $1 AND is_active = TRUE
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		r.log.Error("Failed to list VIP rooms",
			zap.Error(err),
			zap.String("club_id", clubID.String()),
		)
		return nil, fmt.Errorf("list VIP rooms for club %s: %w", clubID, err)
	}
	defer rows.Close()

	var rooms []*entity.VipRoom
	for rows.Next() {
		room, err := scanVipRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan VIP room row", zap.Error(err))
			return nil, fmt.Errorf("scan VIP room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// FindByID returns nil when the room does not exist in the club.
func (r *vipRoomRepository) FindByID(ctx context.Context, clubID, id uuid.UUID) (*entity.VipRoom, error) {
	query := `SELECT ` + vipRoomColumns + ` FROM vip_rooms WHERE id = $1 AND club_id = $2`
	return r.findOne(ctx, query, clubID, id)
}

// LockByID is FindByID holding a row lock on the room until the
// surrounding transaction ends.
func (r *vipRoomRepository) LockByID(ctx context.Context, clubID, id uuid.UUID) (*entity.VipRoom, error) {
	query := `SELECT ` + vipRoomColumns + ` FROM vip_rooms WHERE id = $1 AND club_id = $2 FOR UPDATE`
	return r.findOne(ctx, query, clubID, id)
}

func (r *vipRoomRepository) findOne(ctx context.Context, query string, clubID, id uuid.UUID) (*entity.VipRoom, error) {
	room, err := scanVipRoom(r.db.QueryRow(ctx, query, id, clubID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find VIP room",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find VIP room %s: %w", id, err)
	}
	return room, nil
}

func scanVipRoom(row pgx.Row) (*entity.VipRoom, error) {
	var room entity.VipRoom
	err := row.Scan(
		&room.ID,
		&room.ClubID,
		&room.Name,
		&room.Description,
		&room.HourlyRate,
		&room.Capacity,
		&room.Amenities,
		&room.IsActive,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
