package entities

import "time"

type ReservationRequest struct {
	VehicleType   string    `json:"vehicle_type"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartTime     time.Time `json:"start_time"`
	DurationDays  int       `json:"duration_days"`
}
