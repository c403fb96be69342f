package service

import (
	"fmt"
	"time"

	"autorenta/internal/db"
	"autorenta/internal/repository"
)

// AvailabilityService answers the one question allocation needs: which
// vehicles of a type have no ACTIVE reservation overlapping a window. It
// only reads; the ledger's overlap query is the single source of truth.
type AvailabilityService struct {
	vehicles     repository.VehicleRepository
	reservations repository.ReservationRepository
}

func NewAvailabilityService(vehicles repository.VehicleRepository, reservations repository.ReservationRepository) *AvailabilityService {
	return &AvailabilityService{vehicles: vehicles, reservations: reservations}
}

// FindAvailableVehicle picks the first free vehicle in catalog order.
// First-fit keeps allocation deterministic and reproducible. Returns
// (nil, nil) when no vehicle of the type is free.
func (s *AvailabilityService) FindAvailableVehicle(vehicleType db.VehicleType, start, end time.Time) (*db.Vehicle, error) {
	vehicles, err := s.vehicles.FindByType(vehicleType)
	if err != nil {
		return nil, fmt.Errorf("error listing %s vehicles: %w", vehicleType, err)
	}
	for _, vehicle := range vehicles {
		free, err := s.isVehicleFree(vehicle.ID, start, end)
		if err != nil {
			return nil, err
		}
		if free {
			v := vehicle
			return &v, nil
		}
	}
	return nil, nil
}

// ListAvailableVehicles returns every free vehicle of the type for the
// window, in catalog order. An empty type yields an empty list, not an
// error.
func (s *AvailabilityService) ListAvailableVehicles(vehicleType db.VehicleType, start, end time.Time) ([]db.Vehicle, error) {
	vehicles, err := s.vehicles.FindByType(vehicleType)
	if err != nil {
		return nil, fmt.Errorf("error listing %s vehicles: %w", vehicleType, err)
	}
	var available []db.Vehicle
	for _, vehicle := range vehicles {
		free, err := s.isVehicleFree(vehicle.ID, start, end)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, vehicle)
		}
	}
	return available, nil
}

// AvailabilityCounts always carries an entry for every vehicle type,
// including zeroes.
func (s *AvailabilityService) AvailabilityCounts(start, end time.Time) (map[db.VehicleType]int, error) {
	counts := make(map[db.VehicleType]int, len(db.AllVehicleTypes()))
	for _, vehicleType := range db.AllVehicleTypes() {
		available, err := s.ListAvailableVehicles(vehicleType, start, end)
		if err != nil {
			return nil, err
		}
		counts[vehicleType] = len(available)
	}
	return counts, nil
}

func (s *AvailabilityService) isVehicleFree(vehicleID string, start, end time.Time) (bool, error) {
	overlapping, err := s.reservations.FindOverlapping(vehicleID, start, end)
	if err != nil {
		return false, fmt.Errorf("error checking overlaps for vehicle %s: %w", vehicleID, err)
	}
	return len(overlapping) == 0, nil
}
