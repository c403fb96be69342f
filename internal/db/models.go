package db

import (
	"strings"
	"time"
)

// VehicleType is the closed set of rental categories. Display names and
// daily rates live in one table so no other package needs to switch on it.
type VehicleType string

const (
	VehicleTypeSedan VehicleType = "SEDAN"
	VehicleTypeSUV   VehicleType = "SUV"
	VehicleTypeVan   VehicleType = "VAN"
)

type VehicleTypeInfo struct {
	DisplayName string
	DailyRate   float64
}

var vehicleTypeInfo = map[VehicleType]VehicleTypeInfo{
	VehicleTypeSedan: {DisplayName: "Sedan", DailyRate: 50.0},
	VehicleTypeSUV:   {DisplayName: "SUV", DailyRate: 80.0},
	VehicleTypeVan:   {DisplayName: "Van", DailyRate: 100.0},
}

// AllVehicleTypes returns the enumeration in its fixed order.
func AllVehicleTypes() []VehicleType {
	return []VehicleType{VehicleTypeSedan, VehicleTypeSUV, VehicleTypeVan}
}

// ParseVehicleType accepts the enum value or the display name, case
// insensitively, so handlers can take "suv" as well as "SUV".
func ParseVehicleType(s string) (VehicleType, bool) {
	for _, t := range AllVehicleTypes() {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.DisplayName()) {
			return t, true
		}
	}
	return "", false
}

func (t VehicleType) Valid() bool {
	_, ok := vehicleTypeInfo[t]
	return ok
}

func (t VehicleType) DisplayName() string {
	return vehicleTypeInfo[t].DisplayName
}

func (t VehicleType) DailyRate() float64 {
	return vehicleTypeInfo[t].DailyRate
}

type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

type Vehicle struct {
	ID           string
	LicensePlate string
	VehicleType  VehicleType
	Brand        string
	Model        string
	Year         int
}

func (v Vehicle) DailyRate() float64 {
	return v.VehicleType.DailyRate()
}

type Reservation struct {
	ID            string
	VehicleID     string
	CustomerName  string
	CustomerEmail string
	StartTime     time.Time
	DurationDays  int
	TotalCost     float64
	Status        ReservationStatus
	CreatedAt     time.Time
}

// EndTime is derived, never stored.
func (r Reservation) EndTime() time.Time {
	return r.StartTime.AddDate(0, 0, r.DurationDays)
}

// OverlapsWindow reports whether the reservation blocks the half-open
// window [start, end). Cancelled reservations never block anything.
func (r Reservation) OverlapsWindow(start, end time.Time) bool {
	if r.Status != StatusActive {
		return false
	}
	return r.StartTime.Before(end) && r.EndTime().After(start)
}
