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

type DancerRepository interface {
	Create(ctx context.Context, dancer *entity.Dancer) error
	FindByID(ctx context.Context, clubID, id uuid.UUID) (*entity.Dancer, error)
	List(ctx context.Context, clubID uuid.UUID, search string, limit, offset int) ([]*entity.Dancer, error)
	Count(ctx context.Context, clubID uuid.UUID, search string) (int64, error)

	// Licenses
	CreateLicense(ctx context.Context, license *entity.DancerLicense) error
	FindActiveLicenses(ctx context.Context, dancerIDs []uuid.UUID) (map[uuid.UUID][]*entity.DancerLicense, error)
	FindExpiringLicenses(ctx context.Context, clubID uuid.UUID, before time.Time) ([]*entity.DancerLicense, error)
}

type dancerRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewDancerRepository(db database.DBTX, log *zap.Logger) DancerRepository {
	return &dancerRepository{
		db:  db,
		log: log.With(zap.String("repository", "dancer")),
	}
}

const dancerColumns = `id, club_id, stage_name, first_name, last_name, phone, email,
		       date_of_birth, notes, is_active, created_by, created_at, updated_at`

// matches active dancers of $1 whose stage, first or last name contains $2
const dancerFilter = `
		WHERE club_id = $1 AND is_active = TRUE
		  AND ($2 = '' OR stage_name ILIKE '%' || $2 || '%'
		       OR first_name ILIKE '%' || $2 || '%'
		       OR last_name ILIKE '%' || $2 || '%')`

// Create inserts a dancer; a stage name already used in the club yields ErrDuplicate.
func (r *dancerRepository) Create(ctx context.Context, dancer *entity.Dancer) error {
	query := `
		INSERT INTO dancers (id, club_id, stage_name, first_name, last_name, phone, email,
		                     date_of_birth, notes, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		dancer.ID,
		dancer.ClubID,
		dancer.StageName,
		dancer.FirstName,
		dancer.LastName,
		dancer.Phone,
		dancer.Email,
		dancer.DateOfBirth,
		dancer.Notes,
		dancer.IsActive,
		dancer.CreatedBy,
		dancer.CreatedAt,
		dancer.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create dancer %s: %w", dancer.StageName, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create dancer",
			zap.Error(err),
			zap.String("club_id", dancer.ClubID.String()),
			zap.String("stage_name", dancer.StageName),
		)
		return fmt.Errorf("create dancer %s: %w", dancer.StageName, err)
	}

	return nil
}

// FindByID returns nil when the dancer does not exist in the club.
func (r *dancerRepository) FindByID(ctx context.Context, clubID, id uuid.UUID) (*entity.Dancer, error) {
	query := `SELECT ` + dancerColumns + ` FROM dancers WHERE id = $1 AND club_id = $2`

	dancer, err := scanDancer(r.db.QueryRow(ctx, query, id, clubID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find dancer by ID",
			zap.Error(err),
			zap.String("dancer_id", id.String()),
		)
		return nil, fmt.Errorf("find dancer by ID %s: %w", id, err)
	}

	return dancer, nil
}

func (r *dancerRepository) List(ctx context.Context, clubID uuid.UUID, search string, limit, offset int) ([]*entity.Dancer, error) {
	query := `SELECT ` + dancerColumns + ` FROM dancers` + dancerFilter + `
		ORDER BY stage_name ASC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, clubID, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to list dancers",
			zap.Error(err),
			zap.String("club_id", clubID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list dancers for club %s: %w", clubID, err)
	}
	defer rows.Close()

	var dancers []*entity.Dancer
	for rows.Next() {
		dancer, err := scanDancer(rows)
		if err != nil {
			r.log.Error("Failed to scan dancer row", zap.Error(err))
			return nil, fmt.Errorf("scan dancer row: %w", err)
		}
		dancers = append(dancers, dancer)
	}

	return dancers, rows.Err()
}

func (r *dancerRepository) Count(ctx context.Context, clubID uuid.UUID, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM dancers` + dancerFilter

	var count int64
	if err := r.db.QueryRow(ctx, query, clubID, search).Scan(&count); err != nil {
		r.log.Error("Failed to count dancers",
			zap.Error(err),
			zap.String("club_id", clubID.String()),
		)
		return 0, fmt.Errorf("count dancers for club %s: %w", clubID, err)
	}

	return count, nil
}

func scanDancer(row pgx.Row) (*entity.Dancer, error) {
	var d entity.Dancer
	err := row.Scan(
		&d.ID,
		&d.ClubID,
		&d.StageName,
		&d.FirstName,
		&d.LastName,
		&d.Phone,
		&d.Email,
		&d.DateOfBirth,
		&d.Notes,
		&d.IsActive,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dancerRepository) CreateLicense(ctx context.Context, license *entity.DancerLicense) error {
	query := `
		INSERT INTO dancer_licenses (id, dancer_id, license_type, license_number, issue_date,
		                             expiration_date, issuing_authority, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		license.ID,
		license.DancerID,
		license.LicenseType,
		license.LicenseNumber,
		license.IssueDate,
		license.ExpirationDate,
		license.IssuingAuthority,
		license.IsActive,
		license.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create license",
			zap.Error(err),
			zap.String("dancer_id", license.DancerID.String()),
		)
		return fmt.Errorf("create license for dancer %s: %w", license.DancerID, err)
	}

	return nil
}

const licenseColumns = `l.id, l.dancer_id, l.license_type, l.license_number, l.issue_date,
		       l.expiration_date, l.issuing_authority, l.is_active, l.created_at`

// FindActiveLicenses groups the active licenses of the given dancers by
// dancer, each group ordered by expiration date.
func (r *dancerRepository) FindActiveLicenses(ctx context.Context, dancerIDs []uuid.UUID) (map[uuid.UUID][]*entity.DancerLicense, error) {
	result := make(map[uuid.UUID][]*entity.DancerLicense, len(dancerIDs))
	if len(dancerIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + licenseColumns + `
		FROM dancer_licenses l
		WHERE l.dancer_id = ANY($1::uuid[]) AND l.is_active = TRUE
		ORDER BY l.expiration_date ASC
	`

	licenses, err := r.queryLicenses(ctx, query, uuidStrings(dancerIDs))
	if err != nil {
		r.log.Error("Failed to find active licenses", zap.Error(err), zap.Int("dancers", len(dancerIDs)))
		return nil, fmt.Errorf("find active licenses: %w", err)
	}

	for _, l := range licenses {
		result[l.DancerID] = append(result[l.DancerID], l)
	}
	return result, nil
}

// FindExpiringLicenses returns active licenses of the club's active dancers
// that expire on or before the given time, already expired ones included.
func (r *dancerRepository) FindExpiringLicenses(ctx context.Context, clubID uuid.UUID, before time.Time) ([]*entity.DancerLicense, error) {
	query := `
		SELECT ` + licenseColumns + `
		FROM dancer_licenses l
		JOIN dancers d ON d.id = l.dancer_id
		WHERE d.club_id = $1 AND d.is_active = TRUE
		  AND l.is_active = TRUE AND l.expiration_date <= $2
		ORDER BY l.expiration_date ASC
	`

	licenses, err := r.queryLicenses(ctx, query, clubID, before)
	if err != nil {
		r.log.Error("Failed to find expiring licenses",
			zap.Error(err),
			zap.String("club_id", clubID.String()),
		)
		return nil, fmt.Errorf("find expiring licenses for club %s: %w", clubID, err)
	}

	return licenses, nil
}

func (r *dancerRepository) queryLicenses(ctx context.Context, query string, args ...any) ([]*entity.DancerLicense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var licenses []*entity.DancerLicense
	for rows.Next() {
		var l entity.DancerLicense
		if err := rows.Scan(
			&l.ID,
			&l.DancerID,
			&l.LicenseType,
			&l.LicenseNumber,
			&l.IssueDate,
			&l.ExpirationDate,
			&l.IssuingAuthority,
			&l.IsActive,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan license row: %w", err)
		}
		licenses = append(licenses, &l)
	}

	return licenses, rows.Err()
}
