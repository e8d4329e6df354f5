package repository

import (
	"context"
	"errors"
	"fmt"

	"clubops/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

type Repository struct {
	pool database.PgxIface // nil inside a transaction
	log  *zap.Logger

	User          UserRepository
	Club          ClubRepository
	Session       SessionRepository
	Dancer        DancerRepository
	DancerSession DancerSessionRepository
	Stage         StageRepository
	Queue         QueueRepository
	VipRoom       VipRoomRepository
	VipBooking    VipBookingRepository
	Transaction   TransactionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.pool = db
	return repo
}

func newRepository(db database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		log:           log,
		User:          NewUserRepository(db, log),
		Club:          NewClubRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Dancer:        NewDancerRepository(db, log),
		DancerSession: NewDancerSessionRepository(db, log),
		Stage:         NewStageRepository(db, log),
		Queue:         NewQueueRepository(db, log),
		VipRoom:       NewVipRoomRepository(db, log),
		VipBooking:    NewVipBookingRepository(db, log),
		Transaction:   NewTransactionRepository(db, log),
	}
}

// WithTx runs fn against repositories bound to one database transaction.
// Any error from fn rolls the whole transaction back. Calling WithTx on a
// repository that is already transactional reuses the open transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepository(tx, r.log)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Ping reports whether the database answers.
func (r *Repository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}
	return r.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
