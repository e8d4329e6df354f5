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

type StageRepository interface {
	Create(ctx context.Context, stage *entity.Stage) error
	FindByID(ctx context.Context, clubID, id uuid.UUID) (*entity.Stage, error)
}

type stageRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewStageRepository(db database.DBTX, log *zap.Logger) StageRepository {
	return &stageRepository{
		db:  db,
		log: log.With(zap.String("repository", "stage")),
	}
}

func (r *stageRepository) Create(ctx context.Context, stage *entity.Stage) error {
	query := `
		INSERT INTO stages (id, club_id, name, description, max_capacity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		stage.ID,
		stage.ClubID,
		stage.Name,
		stage.Description,
		stage.MaxCapacity,
		stage.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create stage",
			zap.Error(err),
			zap.String("club_id", stage.ClubID.String()),
			zap.String("name", stage.Name),
		)
		return fmt.Errorf("create stage %s: %w", stage.Name, err)
	}

	return nil
}

// FindByID returns nil when the stage does not exist in the club.
func (r *stageRepository) FindByID(ctx context.Context, clubID, id uuid.UUID) (*entity.Stage, error) {
	query := `
		SELECT id, club_id, name, description, max_capacity, created_at
		FROM stages
		WHERE id = $1 AND club_id = $2
	`

	var stage entity.Stage
	err := r.db.QueryRow(ctx, query, id, clubID).Scan(
		&stage.ID,
		&stage.ClubID,
		&stage.Name,
		&stage.Description,
		&stage.MaxCapacity,
		&stage.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find stage by ID",
			zap.Error(err),
			zap.String("stage_id", id.String()),
		)
		return nil, fmt.Errorf("find stage by ID %s: %w", id, err)
	}

	return &stage, nil
}
