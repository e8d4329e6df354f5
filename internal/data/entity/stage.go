package entity

import "github.com/google/uuid"

type Stage struct {
	BaseSimple
	ClubID      uuid.UUID `db:"club_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	MaxCapacity *int      `db:"max_capacity"`
}
