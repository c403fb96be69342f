package entities

import (
	"time"

	"autorenta/internal/db"
)

// ReservationResponse is the confirmation view: the reservation joined
// with the booked vehicle's display fields.
type ReservationResponse struct {
	ReservationID   string               `json:"reservation_id"`
	VehicleID       string               `json:"vehicle_id"`
	LicensePlate    string               `json:"license_plate"`
	VehicleType     db.VehicleType       `json:"vehicle_type"`
	VehicleTypeName string               `json:"vehicle_type_name"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         time.Time            `json:"end_time"`
	DurationDays    int                  `json:"duration_days"`
	TotalCost       float64              `json:"total_cost"`
	Status          db.ReservationStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
}

func NewReservationResponse(reservation db.Reservation, vehicle db.Vehicle) *ReservationResponse {
	return &ReservationResponse{
		ReservationID:   reservation.ID,
		VehicleID:       vehicle.ID,
		LicensePlate:    vehicle.LicensePlate,
		VehicleType:     vehicle.VehicleType,
		VehicleTypeName: vehicle.VehicleType.DisplayName(),
		CustomerName:    reservation.CustomerName,
		CustomerEmail:   reservation.CustomerEmail,
		StartTime:       reservation.StartTime,
		EndTime:         reservation.EndTime(),
		DurationDays:    reservation.DurationDays,
		TotalCost:       reservation.TotalCost,
		Status:          reservation.Status,
		CreatedAt:       reservation.CreatedAt,
	}
}
