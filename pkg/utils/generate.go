package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ParseInt converts s to a positive int, falling back to defaultValue.
func ParseInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(s)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

// BookingReference is the human-readable code printed on VIP receipts.
// Format: VIP-YYYYMMDD-<first 8 hex chars of the booking id>
func BookingReference(bookingID uuid.UUID, start time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(bookingID.String(), "-", "")[:8])
	return fmt.Sprintf("VIP-%s-%s", start.Format("20060102"), short)
}
