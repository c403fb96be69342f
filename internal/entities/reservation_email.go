package entities

type ReservationEmailData struct {
	CustomerName       string
	ReservationID      string
	VehicleModel       string
	LicensePlate       string
	StartTimeFormatted string
	EndTimeFormatted   string
	TotalCost          float64
	Status             string
}
