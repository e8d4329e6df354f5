package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Dancer struct {
	Base
	ClubID      uuid.UUID  `db:"club_id"`
	StageName   string     `db:"stage_name"`
	FirstName   *string    `db:"first_name"`
	LastName    *string    `db:"last_name"`
	Phone       *string    `db:"phone"`
	Email       *string    `db:"email"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Notes       *string    `db:"notes"`
	IsActive    bool       `db:"is_active"`
	CreatedBy   *uuid.UUID `db:"created_by"`
}

type DancerLicense struct {
	BaseSimple
	DancerID         uuid.UUID `db:"dancer_id"`
	LicenseType      string    `db:"license_type"`
	LicenseNumber    string    `db:"license_number"`
	IssueDate        time.Time `db:"issue_date"`
	ExpirationDate   time.Time `db:"expiration_date"`
	IssuingAuthority *string   `db:"issuing_authority"`
	IsActive         bool      `db:"is_active"`
}

// DancerSession is one check-in; CheckOutTime is nil while the dancer is in the club.
type DancerSession struct {
	BaseSimple
	DancerID     uuid.UUID           `db:"dancer_id"`
	CheckInTime  time.Time           `db:"check_in_time"`
	CheckOutTime *time.Time          `db:"check_out_time"`
	BarFeePaid   bool                `db:"bar_fee_paid"`
	BarFeeAmount decimal.NullDecimal `db:"bar_fee_amount"`
}
