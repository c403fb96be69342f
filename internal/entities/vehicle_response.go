package entities

import "autorenta/internal/db"

type VehicleResponse struct {
	ID              string         `json:"id"`
	LicensePlate    string         `json:"license_plate"`
	VehicleType     db.VehicleType `json:"vehicle_type"`
	VehicleTypeName string         `json:"vehicle_type_name"`
	Brand           string         `json:"brand"`
	Model           string         `json:"model"`
	Year            int            `json:"year"`
	DailyRate       float64        `json:"daily_rate"`
}

func NewVehicleResponse(vehicle db.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              vehicle.ID,
		LicensePlate:    vehicle.LicensePlate,
		VehicleType:     vehicle.VehicleType,
		VehicleTypeName: vehicle.VehicleType.DisplayName(),
		Brand:           vehicle.Brand,
		Model:           vehicle.Model,
		Year:            vehicle.Year,
		DailyRate:       vehicle.DailyRate(),
	}
}

func NewVehicleResponses(vehicles []db.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		responses = append(responses, NewVehicleResponse(vehicle))
	}
	return responses
}
