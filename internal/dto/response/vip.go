package response

import (
	"time"

	"clubops/internal/data/entity"
	"clubops/pkg/utils"

	"github.com/shopspring/decimal"
)

type VipRoomResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
	HourlyRate  decimal.Decimal      `json:"hourlyRate"`
	Capacity    int                  `json:"capacity"`
	Amenities   []string             `json:"amenities"`
	IsOccupied  bool                 `json:"isOccupied"`
	Bookings    []VipBookingResponse `json:"bookings"`
}

type VipRoomListResponse struct {
	Rooms []VipRoomResponse `json:"rooms"`
}

type VipBookingResponse struct {
	ID           string                  `json:"id"`
	RoomID       string                  `json:"roomId"`
	RoomName     string                  `json:"roomName,omitempty"`
	DancerID     *string                 `json:"dancerId,omitempty"`
	DancerName   *string                 `json:"dancerName,omitempty"`
	CustomerName *string                 `json:"customerName,omitempty"`
	StartTime    time.Time               `json:"startTime"`
	EndTime      time.Time               `json:"endTime"`
	TotalAmount  decimal.Decimal         `json:"totalAmount"`
	Status       entity.VipBookingStatus `json:"status"`
	BilledHours  int64                   `json:"billedHours,omitempty"`
	Reference    string                  `json:"reference"`
}

func VipRoomToResponse(room *entity.VipRoom, bookings []*entity.VipBookingDetail) VipRoomResponse {
	amenities := room.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	resp := VipRoomResponse{
		ID:          room.ID.String(),
		Name:        room.Name,
		Description: room.Description,
		HourlyRate:  room.HourlyRate,
		Capacity:    room.Capacity,
		Amenities:   amenities,
		IsOccupied:  len(bookings) > 0,
		Bookings:    make([]VipBookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, VipBookingToResponse(b, 0))
	}

	return resp
}

// VipBookingToResponse renders a booking; billedHours is left out when zero.
func VipBookingToResponse(b *entity.VipBookingDetail, billedHours int64) VipBookingResponse {
	resp := VipBookingResponse{
		ID:           b.ID.String(),
		RoomID:       b.RoomID.String(),
		RoomName:     b.RoomName,
		DancerName:   b.DancerStageName,
		CustomerName: b.CustomerName,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		TotalAmount:  b.TotalAmount,
		Status:       b.Status,
		BilledHours:  billedHours,
		Reference:    utils.BookingReference(b.ID, b.StartTime),
	}
	if b.DancerID != nil {
		id := b.DancerID.String()
		resp.DancerID = &id
	}
	return resp
}
