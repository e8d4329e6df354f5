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

type ClubRepository interface {
	Create(ctx context.Context, club *entity.Club) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Club, error)
}

type clubRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewClubRepository(db database.DBTX, log *zap.Logger) ClubRepository {
	return &clubRepository{
		db:  db,
		log: log.With(zap.String("repository", "club")),
	}
}

func (r *clubRepository) Create(ctx context.Context, club *entity.Club) error {
	query := `
		INSERT INTO clubs (id, name, address, city, state, zip_code, phone, email,
		                   license_number, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		club.ID,
		club.Name,
		club.Address,
		club.City,
		club.State,
		club.ZipCode,
		club.Phone,
		club.Email,
		club.LicenseNumber,
		club.IsActive,
		club.CreatedAt,
		club.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create club",
			zap.Error(err),
			zap.String("name", club.Name),
		)
		return fmt.Errorf("create club %s: %w", club.Name, err)
	}

	return nil
}

func (r *clubRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Club, error) {
	query := `
		SELECT id, name, address, city, state, zip_code, phone, email,
		       license_number, is_active, created_at, updated_at
		FROM clubs
		WHERE id = $1
	`

	var club entity.Club
	err := r.db.QueryRow(ctx, query, id).Scan(
		&club.ID,
		&club.Name,
		&club.Address,
		&club.City,
		&club.State,
		&club.ZipCode,
		&club.Phone,
		&club.Email,
		&club.LicenseNumber,
		&club.IsActive,
		&club.CreatedAt,
		&club.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find club by ID",
			zap.Error(err),
			zap.String("club_id", id.String()),
		)
		return nil, fmt.Errorf("find club by ID %s: %w", id, err)
	}

	return &club, nil
}
