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

type DancerSessionRepository interface {
	Open(ctx context.Context, session *entity.DancerSession) error
	FindOpen(ctx context.Context, dancerID uuid.UUID) (*entity.DancerSession, error)
	FindOpenByDancers(ctx context.Context, dancerIDs []uuid.UUID) (map[uuid.UUID]*entity.DancerSession, error)
	Close(ctx context.Context, dancerID uuid.UUID, at time.Time) (*entity.DancerSession, error)
	MarkBarFeePaid(ctx context.Context, dancerID uuid.UUID, amount decimal.Decimal) (int64, error)
}

type dancerSessionRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewDancerSessionRepository(db database.DBTX, log *zap.Logger) DancerSessionRepository {
	return &dancerSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "dancer_session")),
	}
}

const dancerSessionColumns = `id, dancer_id, check_in_time, check_out_time, bar_fee_paid, bar_fee_amount, created_at`

// Open starts a session; a second open session for the dancer yields ErrDuplicate.
func (r *dancerSessionRepository) Open(ctx context.Context, session *entity.DancerSession) error {
	query := `
		INSERT INTO dancer_sessions (id, dancer_id, check_in_time, bar_fee_paid, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.DancerID,
		session.CheckInTime,
		session.BarFeePaid,
		session.CreatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("open session for dancer %s: %w", session.DancerID, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to open dancer session",
			zap.Error(err),
			zap.String("dancer_id", session.DancerID.String()),
		)
		return fmt.Errorf("open session for dancer %s: %w", session.DancerID, err)
	}

	return nil
}

func (r *dancerSessionRepository) FindOpen(ctx context.Context, dancerID uuid.UUID) (*entity.DancerSession, error) {
	query := `
		SELECT ` + dancerSessionColumns + `
		FROM dancer_sessions
		WHERE dancer_id = $1 AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	session, err := scanDancerSession(r.db.QueryRow(ctx, query, dancerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find open session",
			zap.Error(err),
			zap.String("dancer_id", dancerID.String()),
		)
		return nil, fmt.Errorf("find open session for dancer %s: %w", dancerID, err)
	}

	return session, nil
}

func (r *dancerSessionRepository) FindOpenByDancers(ctx context.Context, dancerIDs []uuid.UUID) (map[uuid.UUID]*entity.DancerSession, error) {
	result := make(map[uuid.UUID]*entity.DancerSession, len(dancerIDs))
	if len(dancerIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + dancerSessionColumns + `
		FROM dancer_sessions
		WHERE dancer_id = ANY($1::uuid[]) AND check_out_time IS NULL
	`

	rows, err := r.db.Query(ctx, query, uuidStrings(dancerIDs))
	if err != nil {
		r.log.Error("Failed to find open sessions", zap.Error(err))
		return nil, fmt.Errorf("find open sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		session, err := scanDancerSession(rows)
		if err != nil {
			r.log.Error("Failed to scan dancer session row", zap.Error(err))
			return nil, fmt.Errorf("scan dancer session row: %w", err)
		}
		result[session.DancerID] = session
	}

	return result, rows.Err()
}

// Close checks the dancer out. Returns nil when no session was open.
func (r *dancerSessionRepository) Close(ctx context.Context, dancerID uuid.UUID, at time.Time) (*entity.DancerSession, error) {
	query := `
		UPDATE dancer_sessions
		SET check_out_time = $2
		WHERE dancer_id = $1 AND check_out_time IS NULL
		RETURNING ` + dancerSessionColumns

	session, err := scanDancerSession(r.db.QueryRow(ctx, query, dancerID, at))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to close dancer session",
			zap.Error(err),
			zap.String("dancer_id", dancerID.String()),
		)
		return nil, fmt.Errorf("close session for dancer %s: %w", dancerID, err)
	}

	return session, nil
}

// MarkBarFeePaid flags every open session of the dancer as paid and
// reports how many sessions were updated.
func (r *dancerSessionRepository) MarkBarFeePaid(ctx context.Context, dancerID uuid.UUID, amount decimal.Decimal) (int64, error) {
	query := `
		UPDATE dancer_sessions
		SET bar_fee_paid = TRUE, bar_fee_amount = $2
		WHERE dancer_id = $1 AND check_out_time IS NULL
	`

	result, err := r.db.Exec(ctx, query, dancerID, amount)
	if err != nil {
		r.log.Error("Failed to mark bar fee paid",
			zap.Error(err),
			zap.String("dancer_id", dancerID.String()),
		)
		return 0, fmt.Errorf("mark bar fee paid for dancer %s: %w", dancerID, err)
	}

	return result.RowsAffected(), nil
}

func scanDancerSession(row pgx.Row) (*entity.DancerSession, error) {
	var s entity.DancerSession
	err := row.Scan(
		&s.ID,
		&s.DancerID,
		&s.CheckInTime,
		&s.CheckOutTime,
		&s.BarFeePaid,
		&s.BarFeeAmount,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
