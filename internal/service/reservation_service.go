package service

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"autorenta/internal/db"
	"autorenta/internal/entities"
	"autorenta/internal/repository"

	"github.com/sirupsen/logrus"
)

// Notifier receives lifecycle events. Implementations must not block the
// caller.
type Notifier interface {
	ReservationCreated(reservation *entities.ReservationResponse)
	ReservationCancelled(reservation *entities.ReservationResponse)
}

// ReservationService orchestrates the reservation lifecycle. It is the
// only component that writes to the ledger.
//
// Creation holds one mutex per vehicle type from the overlap check
// through the persist, so two overlapping requests can never both observe
// the same vehicle as free. The type set is closed, so the lock table is
// built once.
type ReservationService struct {
	vehicles     repository.VehicleRepository
	reservations repository.ReservationRepository
	availability *AvailabilityService
	notifier     Notifier
	locks        map[db.VehicleType]*sync.Mutex
}

func NewReservationService(
	vehicles repository.VehicleRepository,
	reservations repository.ReservationRepository,
	availability *AvailabilityService,
	notifier Notifier,
) *ReservationService {
	locks := make(map[db.VehicleType]*sync.Mutex, len(db.AllVehicleTypes()))
	for _, vehicleType := range db.AllVehicleTypes() {
		locks[vehicleType] = &sync.Mutex{}
	}
	return &ReservationService{
		vehicles:     vehicles,
		reservations: reservations,
		availability: availability,
		notifier:     notifier,
		locks:        locks,
	}
}

// CreateReservation runs validate -> allocate -> price -> persist.
func (s *ReservationService) CreateReservation(req entities.ReservationRequest) (*entities.ReservationResponse, error) {
	vehicleType, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	start := req.StartTime
	end := start.AddDate(0, 0, req.DurationDays)

	lock := s.locks[vehicleType]
	lock.Lock()
	defer lock.Unlock()

	vehicle, err := s.availability.FindAvailableVehicle(vehicleType, start, end)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, &NoVehicleAvailableError{VehicleType: vehicleType, Start: start, End: end}
	}

	reservation := &db.Reservation{
		VehicleID:     vehicle.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		StartTime:     start,
		DurationDays:  req.DurationDays,
		TotalCost:     vehicle.DailyRate() * float64(req.DurationDays),
		Status:        db.StatusActive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.reservations.Save(reservation); err != nil {
		return nil, err
	}

	logrus.Infof("Created reservation %s for vehicle %s (%s, %d days)",
		reservation.ID, vehicle.ID, vehicleType, req.DurationDays)

	response := entities.NewReservationResponse(*reservation, *vehicle)
	if s.notifier != nil {
		s.notifier.ReservationCreated(response)
	}
	return response, nil
}

// GetReservation returns the confirmation view, or
// repository.ErrNotFound. A dangling vehicle reference is a
// ConsistencyError, never partial data.
func (s *ReservationService) GetReservation(id string) (*entities.ReservationResponse, error) {
	reservation, err := s.reservations.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.joinVehicle(*reservation)
}

// CancelReservation flips ACTIVE to CANCELLED. Returns false without
// error when the id is unknown. The transition is irreversible.
func (s *ReservationService) CancelReservation(id string) (bool, error) {
	reservation, err := s.reservations.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if reservation.Status != db.StatusActive {
		return false, &InvalidStateError{Reason: "cannot cancel a reservation that is not active"}
	}

	reservation.Status = db.StatusCancelled
	if err := s.reservations.Save(reservation); err != nil {
		return false, err
	}

	logrus.Infof("Cancelled reservation %s", id)

	if s.notifier != nil {
		if response, err := s.joinVehicle(*reservation); err == nil {
			s.notifier.ReservationCancelled(response)
		}
	}
	return true, nil
}

// ListForCustomer returns the customer's confirmations, most recent
// first. The sort is stable so same-instant entries keep arrival order.
func (s *ReservationService) ListForCustomer(email string) ([]*entities.ReservationResponse, error) {
	reservations, err := s.reservations.FindByCustomerEmail(email)
	if err != nil {
		return nil, err
	}

	responses := make([]*entities.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		response, err := s.joinVehicle(reservation)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].CreatedAt.After(responses[j].CreatedAt)
	})
	return responses, nil
}

// ListByStatus exposes the ledger's status listing for back-office use.
func (s *ReservationService) ListByStatus(status db.ReservationStatus) ([]*entities.ReservationResponse, error) {
	reservations, err := s.reservations.FindByStatus(status)
	if err != nil {
		return nil, err
	}
	responses := make([]*entities.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		response, err := s.joinVehicle(reservation)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (s *ReservationService) ListVehiclesByType(vehicleType db.VehicleType) ([]db.Vehicle, error) {
	return s.vehicles.FindByType(vehicleType)
}

func (s *ReservationService) ListAvailableVehicles(vehicleType db.VehicleType, start, end time.Time) ([]db.Vehicle, error) {
	return s.availability.ListAvailableVehicles(vehicleType, start, end)
}

func (s *ReservationService) AvailabilityCounts(start, end time.Time) (map[db.VehicleType]int, error) {
	return s.availability.AvailabilityCounts(start, end)
}

// GetPrices lists the flat daily rate per vehicle type.
func (s *ReservationService) GetPrices() []entities.PriceResponse {
	prices := make([]entities.PriceResponse, 0, len(db.AllVehicleTypes()))
	for _, vehicleType := range db.AllVehicleTypes() {
		prices = append(prices, entities.PriceResponse{
			VehicleType: vehicleType,
			DisplayName: vehicleType.DisplayName(),
			DailyRate:   vehicleType.DailyRate(),
		})
	}
	return prices
}

func (s *ReservationService) validateRequest(req entities.ReservationRequest) (db.VehicleType, error) {
	vehicleType, ok := db.ParseVehicleType(req.VehicleType)
	if !ok {
		return "", &InvalidRequestError{Reason: "unknown vehicle type: " + req.VehicleType}
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return "", &InvalidRequestError{Reason: "customer name is required"}
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return "", &InvalidRequestError{Reason: "customer email is required"}
	}
	if !req.StartTime.After(time.Now()) {
		return "", &InvalidRequestError{Reason: "start date cannot be in the past"}
	}
	if req.DurationDays < 1 {
		return "", &InvalidRequestError{Reason: "duration must be at least 1 day"}
	}
	if req.DurationDays > 365 {
		return "", &InvalidRequestError{Reason: "duration cannot exceed 365 days"}
	}
	return vehicleType, nil
}

func (s *ReservationService) joinVehicle(reservation db.Reservation) (*entities.ReservationResponse, error) {
	vehicle, err := s.vehicles.FindByID(reservation.VehicleID)
	if errors.Is(err, repository.ErrNotFound) {
		logrus.Errorf("Reservation %s references missing vehicle %s", reservation.ID, reservation.VehicleID)
		return nil, &ConsistencyError{Reason: "vehicle " + reservation.VehicleID + " not found for reservation " + reservation.ID}
	}
	if err != nil {
		return nil, err
	}
	return entities.NewReservationResponse(reservation, *vehicle), nil
}
