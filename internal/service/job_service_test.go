package service

import (
	"testing"
	"time"

	"autorenta/internal/db"
	"autorenta/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeCancelledReservations(t *testing.T) {
	vehicles := repository.NewMemoryVehicleRepository()
	reservations := repository.NewMemoryReservationRepository()
	availability := NewAvailabilityService(vehicles, reservations)
	jobs := NewJobService(availability, reservations, 90)

	now := time.Now().UTC()
	oldCancelled := db.Reservation{VehicleID: "v1", StartTime: now.AddDate(-1, 0, 0), DurationDays: 3, Status: db.StatusCancelled, CreatedAt: now.AddDate(-1, 0, 0)}
	oldActive := db.Reservation{VehicleID: "v1", StartTime: now.AddDate(-1, 0, 0), DurationDays: 3, Status: db.StatusActive, CreatedAt: now.AddDate(-1, 0, 0)}
	recentCancelled := db.Reservation{VehicleID: "v1", StartTime: now.AddDate(0, 0, -10), DurationDays: 3, Status: db.StatusCancelled, CreatedAt: now.AddDate(0, 0, -10)}
	for _, r := range []*db.Reservation{&oldCancelled, &oldActive, &recentCancelled} {
		require.NoError(t, reservations.Save(r))
	}

	purged, err := jobs.PurgeCancelledReservations()
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = reservations.FindByID(oldCancelled.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "old cancelled reservation should be purged")

	_, err = reservations.FindByID(oldActive.ID)
	assert.NoError(t, err, "active reservations are never purged")

	_, err = reservations.FindByID(recentCancelled.ID)
	assert.NoError(t, err, "recently ended reservations stay within retention")
}

func TestLogAvailabilitySnapshot(t *testing.T) {
	vehicles := repository.NewMemoryVehicleRepository()
	for _, v := range db.SeedVehicles() {
		vehicle := v
		require.NoError(t, vehicles.Save(&vehicle))
	}
	reservations := repository.NewMemoryReservationRepository()
	jobs := NewJobService(NewAvailabilityService(vehicles, reservations), reservations, 90)

	assert.NoError(t, jobs.LogAvailabilitySnapshot())
}
