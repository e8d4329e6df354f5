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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Club membership
	AddRole(ctx context.Context, role *entity.UserClubRole) error
	FindMemberships(ctx context.Context, userID uuid.UUID) ([]*entity.Membership, error)
	FindMembership(ctx context.Context, userID, clubID uuid.UUID) (*entity.Membership, error)
}

type userRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewUserRepository(db database.DBTX, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, email, password, first_name, last_name, phone, is_active, created_at, updated_at`

// Create inserts a user; a taken email yields ErrDuplicate.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password, first_name, last_name, phone,
		                   is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := ur.scanUser(ur.db.QueryRow(ctx, query, id))
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	user, err := ur.scanUser(ur.db.QueryRow(ctx, query, email))
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) AddRole(ctx context.Context, role *entity.UserClubRole) error {
	query := `
		INSERT INTO user_club_roles (id, user_id, club_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := ur.db.Exec(ctx, query, role.ID, role.UserID, role.ClubID, role.Role, role.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("add role for user %s: %w", role.UserID, ErrDuplicate)
	}
	if err != nil {
		ur.log.Error("Failed to add club role",
			zap.Error(err),
			zap.String("user_id", role.UserID.String()),
			zap.String("club_id", role.ClubID.String()),
		)
		return fmt.Errorf("add role for user %s: %w", role.UserID, err)
	}

	return nil
}

func (ur *userRepository) FindMemberships(ctx context.Context, userID uuid.UUID) ([]*entity.Membership, error) {
	query := `
		SELECT c.id, c.name, ucr.role
		FROM user_club_roles ucr
		JOIN clubs c ON c.id = ucr.club_id
		WHERE ucr.user_id = $1 AND c.is_active = TRUE
		ORDER BY c.name
	`

	rows, err := ur.db.Query(ctx, query, userID)
	if err != nil {
		ur.log.Error("Failed to find memberships",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find memberships for user %s: %w", userID, err)
	}
	defer rows.Close()

	var memberships []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ClubID, &m.ClubName, &m.Role); err != nil {
			ur.log.Error("Failed to scan membership row", zap.Error(err))
			return nil, fmt.Errorf("scan membership row: %w", err)
		}
		memberships = append(memberships, &m)
	}

	return memberships, rows.Err()
}

// FindMembership returns nil when the user has no role in the club.
func (ur *userRepository) FindMembership(ctx context.Context, userID, clubID uuid.UUID) (*entity.Membership, error) {
	query := `
		SELECT c.id, c.name, ucr.role
		FROM user_club_roles ucr
		JOIN clubs c ON c.id = ucr.club_id
		WHERE ucr.user_id = $1 AND ucr.club_id = $2 AND c.is_active = TRUE
	`

	var m entity.Membership
	err := ur.db.QueryRow(ctx, query, userID, clubID).Scan(&m.ClubID, &m.ClubName, &m.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find membership",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("club_id", clubID.String()),
		)
		return nil, fmt.Errorf("find membership for user %s in club %s: %w", userID, clubID, err)
	}

	return &m, nil
}
