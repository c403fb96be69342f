package entities

import "autorenta/internal/db"

type PriceResponse struct {
	VehicleType db.VehicleType `json:"vehicle_type"`
	DisplayName string         `json:"display_name"`
	DailyRate   float64        `json:"daily_rate"`
}
