package service

import (
	"fmt"
	"time"

	"autorenta/internal/db"
	"autorenta/internal/repository"

	"github.com/sirupsen/logrus"
)

// JobService holds the cron-driven maintenance work: a periodic
// availability snapshot (the read-only projection that replaced the old
// per-vehicle availability flag) and a retention purge of cancelled
// reservations long past their window.
type JobService struct {
	availability *AvailabilityService
	reservations repository.ReservationRepository
	retention    time.Duration
}

func NewJobService(availability *AvailabilityService, reservations repository.ReservationRepository, retentionDays int) *JobService {
	return &JobService{
		availability: availability,
		reservations: reservations,
		retention:    time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// LogAvailabilitySnapshot logs how many vehicles of each type are free
// for the upcoming 24 hours.
func (s *JobService) LogAvailabilitySnapshot() error {
	now := time.Now().UTC()
	counts, err := s.availability.AvailabilityCounts(now, now.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("cron job: failed to compute availability snapshot: %w", err)
	}
	for _, vehicleType := range db.AllVehicleTypes() {
		logrus.Infof("Cron Job: %s available next 24h: %d", vehicleType, counts[vehicleType])
	}
	return nil
}

// PurgeCancelledReservations deletes cancelled reservations whose window
// ended before the retention cutoff. Active reservations are never
// touched.
func (s *JobService) PurgeCancelledReservations() (int, error) {
	cancelled, err := s.reservations.FindByStatus(db.StatusCancelled)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to list cancelled reservations: %w", err)
	}

	cutoff := time.Now().UTC().Add(-s.retention)
	purged := 0
	for _, reservation := range cancelled {
		if !reservation.EndTime().Before(cutoff) {
			continue
		}
		if err := s.reservations.DeleteByID(reservation.ID); err != nil {
			return purged, fmt.Errorf("cron job: failed to purge reservation %s: %w", reservation.ID, err)
		}
		purged++
	}
	if purged > 0 {
		logrus.Infof("Cron Job: purged %d cancelled reservations older than %s", purged, cutoff.Format(time.DateOnly))
	}
	return purged, nil
}
