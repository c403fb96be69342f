package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"autorenta/internal/db"

	"github.com/google/uuid"
)

// PostgresVehicleRepository backs the catalog with the vehicles table.
// The seq column preserves insertion order for first-fit scans.
var _ VehicleRepository = (*PostgresVehicleRepository)(nil)

type PostgresVehicleRepository struct {
	DB *sql.DB
}

func NewPostgresVehicleRepository(database *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: database}
}

const vehicleColumns = "id, license_plate, vehicle_type, brand, model, year"

func scanVehicle(row interface{ Scan(...interface{}) error }) (db.Vehicle, error) {
	var v db.Vehicle
	err := row.Scan(&v.ID, &v.LicensePlate, &v.VehicleType, &v.Brand, &v.Model, &v.Year)
	return v, err
}

func (r *PostgresVehicleRepository) queryVehicles(query string, args ...interface{}) ([]db.Vehicle, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *PostgresVehicleRepository) FindAll() ([]db.Vehicle, error) {
	return r.queryVehicles(`SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY seq`)
}

func (r *PostgresVehicleRepository) FindByID(id string) (*db.Vehicle, error) {
	row := r.DB.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle %s: %w", id, err)
	}
	return &v, nil
}

func (r *PostgresVehicleRepository) FindByType(vehicleType db.VehicleType) ([]db.Vehicle, error) {
	return r.queryVehicles(`SELECT `+vehicleColumns+` FROM vehicles WHERE vehicle_type = $1 ORDER BY seq`, vehicleType)
}

func (r *PostgresVehicleRepository) Save(vehicle *db.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	query := `
	INSERT INTO vehicles (id, license_plate, vehicle_type, brand, model, year)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		license_plate = EXCLUDED.license_plate,
		vehicle_type = EXCLUDED.vehicle_type,
		brand = EXCLUDED.brand,
		model = EXCLUDED.model,
		year = EXCLUDED.year
	`
	_, err := r.DB.Exec(query, vehicle.ID, vehicle.LicensePlate, vehicle.VehicleType, vehicle.Brand, vehicle.Model, vehicle.Year)
	if err != nil {
		return fmt.Errorf("error saving vehicle %s: %w", vehicle.ID, err)
	}
	return nil
}

func (r *PostgresVehicleRepository) DeleteByID(id string) error {
	if _, err := r.DB.Exec(`DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting vehicle %s: %w", id, err)
	}
	return nil
}

func (r *PostgresVehicleRepository) CountByType(vehicleType db.VehicleType) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE vehicle_type = $1`, vehicleType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting vehicles: %w", err)
	}
	return count, nil
}
