package entities

import (
	"time"

	"autorenta/internal/db"
)

// AvailabilityResponse carries one count per vehicle type, zeroes
// included.
type AvailabilityResponse struct {
	RequestedStartTime time.Time              `json:"requested_start_time"`
	RequestedEndTime   time.Time              `json:"requested_end_time"`
	Availability       map[db.VehicleType]int `json:"availability"`
}
