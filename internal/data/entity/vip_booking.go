package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VipBookingStatus string

const (
	VipBookingActive    VipBookingStatus = "ACTIVE"
	VipBookingCompleted VipBookingStatus = "COMPLETED"
)

// VipBooking occupies its room while ACTIVE. EndTime and TotalAmount are
// provisional until checkout overwrites them with billed values.
type VipBooking struct {
	Base
	RoomID       uuid.UUID        `db:"room_id"`
	DancerID     *uuid.UUID       `db:"dancer_id"`
	CustomerName *string          `db:"customer_name"`
	StartTime    time.Time        `db:"start_time"`
	EndTime      time.Time        `db:"end_time"`
	TotalAmount  decimal.Decimal  `db:"total_amount"`
	Status       VipBookingStatus `db:"status"`
	CreatedBy    *uuid.UUID       `db:"created_by"`
}

// VipBookingDetail carries the names a booking is displayed with.
type VipBookingDetail struct {
	VipBooking
	RoomName        string
	ClubID          uuid.UUID
	HourlyRate      decimal.Decimal
	DancerStageName *string
}
