package entity

import "github.com/google/uuid"

// DJQueue is the ordered performance queue of exactly one stage.
type DJQueue struct {
	Base
	ClubID  uuid.UUID `db:"club_id"`
	StageID uuid.UUID `db:"stage_id"`
	Name    string    `db:"name"`
}
