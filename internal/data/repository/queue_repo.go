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

type QueueRepository interface {
	Create(ctx context.Context, queue *entity.DJQueue) error
	FindByStage(ctx context.Context, clubID, stageID uuid.UUID) (*entity.DJQueue, error)
	LockByStage(ctx context.Context, clubID, stageID uuid.UUID) (*entity.DJQueue, error)

	// Entries
	MaxPosition(ctx context.Context, queueID uuid.UUID) (int, error)
	CreateEntry(ctx context.Context, entry *entity.QueueEntry) error
	ListActiveEntries(ctx context.Context, queueID uuid.UUID) ([]*entity.QueueEntryDetail, error)
	UpdatePosition(ctx context.Context, queueID, entryID uuid.UUID, position int) (bool, error)
	CancelEntry(ctx context.Context, queueID, entryID uuid.UUID) (*entity.QueueEntry, error)
}

type queueRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewQueueRepository(db database.DBTX, log *zap.Logger) QueueRepository {
	return &queueRepository{
		db:  db,
		log: log.With(zap.String("repository", "queue")),
	}
}

func (r *queueRepository) Create(ctx context.Context, queue *entity.DJQueue) error {
	query := `
		INSERT INTO dj_queues (id, club_id, stage_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		queue.ID,
		queue.ClubID,
		queue.StageID,
		queue.Name,
		queue.CreatedAt,
		queue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create queue",
			zap.Error(err),
			zap.String("stage_id", queue.StageID.String()),
		)
		return fmt.Errorf("create queue for stage %s: %w", queue.StageID, err)
	}

	return nil
}

func (r *queueRepository) FindByStage(ctx context.Context, clubID, stageID uuid.UUID) (*entity.DJQueue, error) {
	query := `
		SELECT id, club_id, stage_id, name, created_at, updated_at
		FROM dj_queues
		WHERE stage_id = $1 AND club_id = $2
	`
	return r.findByStage(ctx, query, clubID, stageID)
}

// LockByStage is FindByStage holding a row lock until the surrounding
// transaction ends, which serialises writers of the same queue.
func (r *queueRepository) LockByStage(ctx context.Context, clubID, stageID uuid.UUID) (*entity.DJQueue, error) {
	query := `
		SELECT id, club_id, stage_id, name, created_at, updated_at
		FROM dj_queues
		WHERE stage_id = $1 AND club_id = $2
		FOR UPDATE
	`
	return r.findByStage(ctx, query, clubID, stageID)
}

func (r *queueRepository) findByStage(ctx context.Context, query string, clubID, stageID uuid.UUID) (*entity.DJQueue, error) {
	var q entity.DJQueue
	err := r.db.QueryRow(ctx, query, stageID, clubID).Scan(
		&q.ID,
		&q.ClubID,
		&q.StageID,
		&q.Name,
		&q.CreatedAt,
		&q.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find queue by stage",
			zap.Error(err),
			zap.String("stage_id", stageID.String()),
			zap.String("club_id", clubID.String()),
		)
		return nil, fmt.Errorf("find queue for stage %s: %w", stageID, err)
	}

	return &q, nil
}

// MaxPosition counts cancelled entries too, so new entries always land
// behind every position ever handed out. Zero for an empty queue.
func (r *queueRepository) MaxPosition(ctx context.Context, queueID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(position), 0) FROM queue_entries WHERE queue_id = $1`

	var position int
	if err := r.db.QueryRow(ctx, query, queueID).Scan(&position); err != nil {
		r.log.Error("Failed to read max position",
			zap.Error(err),
			zap.String("queue_id", queueID.String()),
		)
		return 0, fmt.Errorf("max position for queue %s: %w", queueID, err)
	}

	return position, nil
}

func (r *queueRepository) CreateEntry(ctx context.Context, entry *entity.QueueEntry) error {
	query := `
		INSERT INTO queue_entries (id, queue_id, dancer_id, position, song_title, artist,
		                           duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.QueueID,
		entry.DancerID,
		entry.Position,
		entry.SongTitle,
		entry.Artist,
		entry.Duration,
		entry.Status,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create queue entry",
			zap.Error(err),
			zap.String("queue_id", entry.QueueID.String()),
			zap.String("dancer_id", entry.DancerID.String()),
		)
		return fmt.Errorf("create queue entry in queue %s: %w", entry.QueueID, err)
	}

	return nil
}

// ListActiveEntries returns non-cancelled entries, lowest position first.
func (r *queueRepository) ListActiveEntries(ctx context.Context, queueID uuid.UUID) ([]*entity.QueueEntryDetail, error) {
	query := `
		SELECT e.id, e.queue_id, e.dancer_id, e.position, e.song_title, e.artist,
		       e.duration, e.status, e.created_at, e.updated_at, d.stage_name
		FROM queue_entries e
		JOIN dancers d ON d.id = e.dancer_id
		WHERE e.queue_id = $1 AND e.status <> 'CANCELLED'
		ORDER BY e.position ASC, e.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, queueID)
	if err != nil {
		r.log.Error("Failed to list queue entries",
			zap.Error(err),
			zap.String("queue_id", queueID.String()),
		)
		return nil, fmt.Errorf("list entries for queue %s: %w", queueID, err)
	}
	defer rows.Close()

	var entries []*entity.QueueEntryDetail
	for rows.Next() {
		var e entity.QueueEntryDetail
		if err := rows.Scan(
			&e.ID,
			&e.QueueID,
			&e.DancerID,
			&e.Position,
			&e.SongTitle,
			&e.Artist,
			&e.Duration,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.DancerStageName,
		); err != nil {
			r.log.Error("Failed to scan queue entry row", zap.Error(err))
			return nil, fmt.Errorf("scan queue entry row: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// UpdatePosition overwrites one entry's position. It reports false when
// the entry is not part of the queue.
func (r *queueRepository) UpdatePosition(ctx context.Context, queueID, entryID uuid.UUID, position int) (bool, error) {
	query := `
		UPDATE queue_entries
		SET position = $3, updated_at = NOW()
		WHERE id = $1 AND queue_id = $2
	`

	result, err := r.db.Exec(ctx, query, entryID, queueID, position)
	if err != nil {
		r.log.Error("Failed to update entry position",
			zap.Error(err),
			zap.String("entry_id", entryID.String()),
			zap.Int("position", position),
		)
		return false, fmt.Errorf("update position of entry %s: %w", entryID, err)
	}

	return result.RowsAffected() == 1, nil
}

// CancelEntry flags an active entry as cancelled. Returns nil when the
// entry is unknown to the queue or already cancelled.
func (r *queueRepository) CancelEntry(ctx context.Context, queueID, entryID uuid.UUID) (*entity.QueueEntry, error) {
	query := `
		UPDATE queue_entries
		SET status = 'CANCELLED', updated_at = NOW()
		WHERE id = $1 AND queue_id = $2 AND status <> 'CANCELLED'
		RETURNING id, queue_id, dancer_id, position, song_title, artist,
		          duration, status, created_at, updated_at
	`

	var e entity.QueueEntry
	err := r.db.QueryRow(ctx, query, entryID, queueID).Scan(
		&e.ID,
		&e.QueueID,
		&e.DancerID,
		&e.Position,
		&e.SongTitle,
		&e.Artist,
		&e.Duration,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to cancel queue entry",
			zap.Error(err),
			zap.String("entry_id", entryID.String()),
		)
		return nil, fmt.Errorf("cancel entry %s: %w", entryID, err)
	}

	return &e, nil
}
