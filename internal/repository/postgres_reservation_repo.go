package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autorenta/internal/db"

	"github.com/google/uuid"
)

var _ ReservationRepository = (*PostgresReservationRepository)(nil)

type PostgresReservationRepository struct {
	DB *sql.DB
}

func NewPostgresReservationRepository(database *sql.DB) *PostgresReservationRepository {
	return &PostgresReservationRepository{DB: database}
}

const reservationColumns = "id, vehicle_id, customer_name, customer_email, start_time, duration_days, total_cost, status, created_at"

func scanReservation(row interface{ Scan(...interface{}) error }) (db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(&res.ID, &res.VehicleID, &res.CustomerName, &res.CustomerEmail,
		&res.StartTime, &res.DurationDays, &res.TotalCost, &res.Status, &res.CreatedAt)
	return res, err
}

func (r *PostgresReservationRepository) queryReservations(query string, args ...interface{}) ([]db.Reservation, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *PostgresReservationRepository) FindAll() ([]db.Reservation, error) {
	return r.queryReservations(`SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at`)
}

func (r *PostgresReservationRepository) FindByID(id string) (*db.Reservation, error) {
	row := r.DB.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *PostgresReservationRepository) FindByVehicleID(vehicleID string) ([]db.Reservation, error) {
	return r.queryReservations(`SELECT `+reservationColumns+` FROM reservations WHERE vehicle_id = $1 ORDER BY created_at`, vehicleID)
}

func (r *PostgresReservationRepository) FindByCustomerEmail(email string) ([]db.Reservation, error) {
	return r.queryReservations(`SELECT `+reservationColumns+` FROM reservations WHERE customer_email = $1 ORDER BY created_at`, email)
}

func (r *PostgresReservationRepository) FindByStatus(status db.ReservationStatus) ([]db.Reservation, error) {
	return r.queryReservations(`SELECT `+reservationColumns+` FROM reservations WHERE status = $1 ORDER BY created_at`, status)
}

func (r *PostgresReservationRepository) FindActiveForVehicle(vehicleID string) ([]db.Reservation, error) {
	return r.queryReservations(`SELECT `+reservationColumns+` FROM reservations WHERE vehicle_id = $1 AND status = $2 ORDER BY created_at`,
		vehicleID, db.StatusActive)
}

// FindOverlapping applies the half-open window test in SQL so only the
// vehicle's blocking reservations cross the wire.
func (r *PostgresReservationRepository) FindOverlapping(vehicleID string, start, end time.Time) ([]db.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE vehicle_id = $1
	  AND status = $2
	  AND start_time < $4
	  AND start_time + duration_days * interval '1 day' > $3
	ORDER BY created_at
	`
	return r.queryReservations(query, vehicleID, db.StatusActive, start, end)
}

func (r *PostgresReservationRepository) Save(reservation *db.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	query := `
	INSERT INTO reservations (id, vehicle_id, customer_name, customer_email, start_time, duration_days, total_cost, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
	`
	_, err := r.DB.Exec(query, reservation.ID, reservation.VehicleID, reservation.CustomerName,
		reservation.CustomerEmail, reservation.StartTime, reservation.DurationDays,
		reservation.TotalCost, reservation.Status, reservation.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving reservation %s: %w", reservation.ID, err)
	}
	return nil
}

func (r *PostgresReservationRepository) DeleteByID(id string) error {
	if _, err := r.DB.Exec(`DELETE FROM reservations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting reservation %s: %w", id, err)
	}
	return nil
}
