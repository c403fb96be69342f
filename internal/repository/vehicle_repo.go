package repository

import (
	"sync"

	"autorenta/internal/db"

	"github.com/google/uuid"
)

// VehicleRepository is the catalog storage surface. Implementations must
// keep FindAll / FindByType in stable insertion order; first-fit
// allocation depends on it.
type VehicleRepository interface {
	FindAll() ([]db.Vehicle, error)
	FindByID(id string) (*db.Vehicle, error)
	FindByType(vehicleType db.VehicleType) ([]db.Vehicle, error)
	Save(vehicle *db.Vehicle) error
	DeleteByID(id string) error
	CountByType(vehicleType db.VehicleType) (int, error)
}

var _ VehicleRepository = (*MemoryVehicleRepository)(nil)

type MemoryVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]db.Vehicle
	order    []string
}

func NewMemoryVehicleRepository() *MemoryVehicleRepository {
	return &MemoryVehicleRepository{vehicles: make(map[string]db.Vehicle)}
}

func (r *MemoryVehicleRepository) FindAll() ([]db.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]db.Vehicle, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.vehicles[id])
	}
	return result, nil
}

func (r *MemoryVehicleRepository) FindByID(id string) (*db.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &vehicle, nil
}

func (r *MemoryVehicleRepository) FindByType(vehicleType db.VehicleType) ([]db.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []db.Vehicle
	for _, id := range r.order {
		if v := r.vehicles[id]; v.VehicleType == vehicleType {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *MemoryVehicleRepository) Save(vehicle *db.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	if _, exists := r.vehicles[vehicle.ID]; !exists {
		r.order = append(r.order, vehicle.ID)
	}
	r.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r *MemoryVehicleRepository) DeleteByID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[id]; !ok {
		return nil
	}
	delete(r.vehicles, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryVehicleRepository) CountByType(vehicleType db.VehicleType) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, v := range r.vehicles {
		if v.VehicleType == vehicleType {
			count++
		}
	}
	return count, nil
}
