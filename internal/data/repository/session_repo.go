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
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned by Revoke when nothing was revoked.
var ErrSessionNotFound = errors.New("session not found or already revoked")

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByToken(ctx context.Context, token uuid.UUID) (*entity.Session, error)
	Revoke(ctx context.Context, token uuid.UUID, at time.Time) error
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type sessionRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewSessionRepository(db database.DBTX, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

const sessionColumns = `id, user_id, token, user_agent, ip_address, expires_at, revoked_at, created_at`

func scanSession(row pgx.Row) (*entity.Session, error) {
	var session entity.Session
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Create stores a new login. Token doubles as the JWT id.
func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, token, user_agent, ip_address,
		                      expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("create session for user %s: %w", session.UserID, err)
	}

	return nil
}

// FindByToken returns the session whatever its state; callers check
// Live. Unknown tokens yield nil.
func (r *sessionRepository) FindByToken(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE token = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, token))
	if err != nil {
		r.log.Error("Failed to load session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

// Revoke stamps the session revoked at the given time. Revoking twice
// yields ErrSessionNotFound.
func (r *sessionRepository) Revoke(ctx context.Context, token uuid.UUID, at time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE sessions SET revoked_at = $2 WHERE token = $1 AND revoked_at IS NULL`,
		token, at)
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteStale removes sessions that expired or were revoked before cutoff.
func (r *sessionRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM sessions WHERE expires_at < $1 OR revoked_at < $1`,
		cutoff)
	if err != nil {
		r.log.Error("Failed to delete stale sessions", zap.Error(err))
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return result.RowsAffected(), nil
}
