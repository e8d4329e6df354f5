package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VipRoom struct {
	Base
	ClubID      uuid.UUID       `db:"club_id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	HourlyRate  decimal.Decimal `db:"hourly_rate"`
	Capacity    int             `db:"capacity"`
	Amenities   []string        `db:"amenities"`
	IsActive    bool            `db:"is_active"`
}
