package repository

import (
	"sync"
	"time"

	"autorenta/internal/db"

	"github.com/google/uuid"
)

// ReservationRepository is the ledger storage surface. FindOverlapping is
// the hot read path for allocation: it must consider only reservations of
// the given vehicle and apply the ACTIVE-only strict overlap test.
type ReservationRepository interface {
	FindAll() ([]db.Reservation, error)
	FindByID(id string) (*db.Reservation, error)
	FindByVehicleID(vehicleID string) ([]db.Reservation, error)
	FindByCustomerEmail(email string) ([]db.Reservation, error)
	FindByStatus(status db.ReservationStatus) ([]db.Reservation, error)
	FindActiveForVehicle(vehicleID string) ([]db.Reservation, error)
	FindOverlapping(vehicleID string, start, end time.Time) ([]db.Reservation, error)
	Save(reservation *db.Reservation) error
	DeleteByID(id string) error
}

var _ ReservationRepository = (*MemoryReservationRepository)(nil)

type MemoryReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]db.Reservation
	order        []string
	byVehicle    map[string][]string
}

func NewMemoryReservationRepository() *MemoryReservationRepository {
	return &MemoryReservationRepository{
		reservations: make(map[string]db.Reservation),
		byVehicle:    make(map[string][]string),
	}
}

func (r *MemoryReservationRepository) FindAll() ([]db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]db.Reservation, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.reservations[id])
	}
	return result, nil
}

func (r *MemoryReservationRepository) FindByID(id string) (*db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &reservation, nil
}

func (r *MemoryReservationRepository) FindByVehicleID(vehicleID string) ([]db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []db.Reservation
	for _, id := range r.byVehicle[vehicleID] {
		result = append(result, r.reservations[id])
	}
	return result, nil
}

func (r *MemoryReservationRepository) FindByCustomerEmail(email string) ([]db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []db.Reservation
	for _, id := range r.order {
		if res := r.reservations[id]; res.CustomerEmail == email {
			result = append(result, res)
		}
	}
	return result, nil
}

func (r *MemoryReservationRepository) FindByStatus(status db.ReservationStatus) ([]db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []db.Reservation
	for _, id := range r.order {
		if res := r.reservations[id]; res.Status == status {
			result = append(result, res)
		}
	}
	return result, nil
}

func (r *MemoryReservationRepository) FindActiveForVehicle(vehicleID string) ([]db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []db.Reservation
	for _, id := range r.byVehicle[vehicleID] {
		if res := r.reservations[id]; res.Status == db.StatusActive {
			result = append(result, res)
		}
	}
	return result, nil
}

// FindOverlapping scans only the given vehicle's reservations, not the
// whole ledger.
func (r *MemoryReservationRepository) FindOverlapping(vehicleID string, start, end time.Time) ([]db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []db.Reservation
	for _, id := range r.byVehicle[vehicleID] {
		if res := r.reservations[id]; res.OverlapsWindow(start, end) {
			result = append(result, res)
		}
	}
	return result, nil
}

func (r *MemoryReservationRepository) Save(reservation *db.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	if _, exists := r.reservations[reservation.ID]; !exists {
		r.order = append(r.order, reservation.ID)
		r.byVehicle[reservation.VehicleID] = append(r.byVehicle[reservation.VehicleID], reservation.ID)
	}
	r.reservations[reservation.ID] = *reservation
	return nil
}

func (r *MemoryReservationRepository) DeleteByID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil
	}
	delete(r.reservations, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	ids := r.byVehicle[reservation.VehicleID]
	for i, oid := range ids {
		if oid == id {
			r.byVehicle[reservation.VehicleID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
