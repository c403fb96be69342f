package service

import (
	"sync"
	"testing"
	"time"

	"autorenta/internal/db"
	"autorenta/internal/entities"
	"autorenta/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	vehicles     *repository.MemoryVehicleRepository
	reservations *repository.MemoryReservationRepository
	service      *ReservationService
}

func newFixture(t *testing.T, fleet ...db.Vehicle) *fixture {
	t.Helper()
	vehicles := repository.NewMemoryVehicleRepository()
	for _, v := range fleet {
		vehicle := v
		require.NoError(t, vehicles.Save(&vehicle))
	}
	reservations := repository.NewMemoryReservationRepository()
	availability := NewAvailabilityService(vehicles, reservations)
	return &fixture{
		vehicles:     vehicles,
		reservations: reservations,
		service:      NewReservationService(vehicles, reservations, availability, nil),
	}
}

func seededFixture(t *testing.T) *fixture {
	return newFixture(t, db.SeedVehicles()...)
}

func request(vehicleType string, start time.Time, days int) entities.ReservationRequest {
	return entities.ReservationRequest{
		VehicleType:   vehicleType,
		CustomerName:  "Ana Gomez",
		CustomerEmail: "ana@example.com",
		StartTime:     start,
		DurationDays:  days,
	}
}

func futureStart() time.Time {
	return time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Hour)
}

func TestCreateReservationPricesByDailyRate(t *testing.T) {
	f := seededFixture(t)

	response, err := f.service.CreateReservation(request("SEDAN", futureStart(), 3))
	require.NoError(t, err)

	assert.Equal(t, 150.0, response.TotalCost) // 50.0/day x 3
	assert.Equal(t, db.StatusActive, response.Status)
	assert.Equal(t, db.VehicleTypeSedan, response.VehicleType)
	assert.NotEmpty(t, response.ReservationID)
	assert.NotEmpty(t, response.LicensePlate)
	assert.Equal(t, response.StartTime.AddDate(0, 0, 3), response.EndTime)
}

func TestCreateReservationFirstFit(t *testing.T) {
	f := seededFixture(t)
	start := futureStart()

	first, err := f.service.CreateReservation(request("SEDAN", start, 2))
	require.NoError(t, err)
	second, err := f.service.CreateReservation(request("SEDAN", start, 2))
	require.NoError(t, err)

	// Seed order: ABC123, DEF456, GHI789.
	assert.Equal(t, "ABC123", first.LicensePlate)
	assert.Equal(t, "DEF456", second.LicensePlate)
}

func TestCreateReservationValidation(t *testing.T) {
	f := seededFixture(t)
	start := futureStart()

	cases := []struct {
		name string
		req  entities.ReservationRequest
	}{
		{"past start", request("SEDAN", time.Now().UTC().Add(-time.Hour), 3)},
		{"zero duration", request("SEDAN", start, 0)},
		{"negative duration", request("SEDAN", start, -1)},
		{"excessive duration", request("SEDAN", start, 366)},
		{"unknown type", request("LIMOUSINE", start, 3)},
		{"blank name", entities.ReservationRequest{VehicleType: "SEDAN", CustomerEmail: "ana@example.com", StartTime: start, DurationDays: 3}},
		{"blank email", entities.ReservationRequest{VehicleType: "SEDAN", CustomerName: "Ana Gomez", StartTime: start, DurationDays: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.CreateReservation(tc.req)
			var invalid *InvalidRequestError
			require.ErrorAs(t, err, &invalid)

			all, err := f.reservations.FindAll()
			require.NoError(t, err)
			assert.Empty(t, all, "validation failures must not mutate the ledger")
		})
	}
}

func TestCreateReservationBoundaryDurations(t *testing.T) {
	f := seededFixture(t)

	_, err := f.service.CreateReservation(request("SEDAN", futureStart(), 1))
	assert.NoError(t, err)
	_, err = f.service.CreateReservation(request("SUV", futureStart(), 365))
	assert.NoError(t, err)
}

func TestCreateReservationNoVehicleAvailable(t *testing.T) {
	van := db.Vehicle{LicensePlate: "VAN001", VehicleType: db.VehicleTypeVan, Brand: "Ford", Model: "Transit", Year: 2022}
	f := newFixture(t, van)
	start := futureStart()

	_, err := f.service.CreateReservation(request("VAN", start, 5))
	require.NoError(t, err)

	// Overlapping window against the only van.
	_, err = f.service.CreateReservation(request("VAN", start.AddDate(0, 0, 2), 5))
	var noVehicle *NoVehicleAvailableError
	require.ErrorAs(t, err, &noVehicle)
	assert.Equal(t, db.VehicleTypeVan, noVehicle.VehicleType)
	assert.Equal(t, start.AddDate(0, 0, 2), noVehicle.Start)
}

func TestDisjointWindowsDoNotBlock(t *testing.T) {
	van := db.Vehicle{LicensePlate: "VAN001", VehicleType: db.VehicleTypeVan, Brand: "Ford", Model: "Transit", Year: 2022}
	f := newFixture(t, van)
	start := futureStart()

	_, err := f.service.CreateReservation(request("VAN", start, 5))
	require.NoError(t, err)

	// Back-to-back window starting exactly at the previous end.
	response, err := f.service.CreateReservation(request("VAN", start.AddDate(0, 0, 5), 5))
	require.NoError(t, err)
	assert.Equal(t, "VAN001", response.LicensePlate)
}

func TestCancelReleasesVehicle(t *testing.T) {
	van := db.Vehicle{LicensePlate: "VAN001", VehicleType: db.VehicleTypeVan, Brand: "Ford", Model: "Transit", Year: 2022}
	f := newFixture(t, van)
	start := futureStart()
	end := start.AddDate(0, 0, 5)

	response, err := f.service.CreateReservation(request("VAN", start, 5))
	require.NoError(t, err)

	available, err := f.service.ListAvailableVehicles(db.VehicleTypeVan, start, end)
	require.NoError(t, err)
	assert.Empty(t, available)

	cancelled, err := f.service.CancelReservation(response.ReservationID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	// The vehicle is immediately available again for its former window.
	available, err = f.service.ListAvailableVehicles(db.VehicleTypeVan, start, end)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "VAN001", available[0].LicensePlate)
}

func TestCancelTwiceFailsWithoutStateChange(t *testing.T) {
	f := seededFixture(t)

	response, err := f.service.CreateReservation(request("SEDAN", futureStart(), 3))
	require.NoError(t, err)

	cancelled, err := f.service.CancelReservation(response.ReservationID)
	require.NoError(t, err)
	require.True(t, cancelled)

	_, err = f.service.CancelReservation(response.ReservationID)
	var invalidState *InvalidStateError
	require.ErrorAs(t, err, &invalidState)

	stored, err := f.reservations.FindByID(response.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCancelled, stored.Status)
}

func TestCancelUnknownReturnsFalse(t *testing.T) {
	f := seededFixture(t)

	cancelled, err := f.service.CancelReservation("missing")
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestGetReservation(t *testing.T) {
	f := seededFixture(t)

	created, err := f.service.CreateReservation(request("SUV", futureStart(), 2))
	require.NoError(t, err)

	fetched, err := f.service.GetReservation(created.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, created.ReservationID, fetched.ReservationID)
	assert.Equal(t, created.LicensePlate, fetched.LicensePlate)
	assert.Equal(t, 160.0, fetched.TotalCost)

	_, err = f.service.GetReservation("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetReservationDanglingVehicle(t *testing.T) {
	f := seededFixture(t)

	created, err := f.service.CreateReservation(request("SEDAN", futureStart(), 2))
	require.NoError(t, err)

	// Storage-level delete outside the normal lifecycle.
	require.NoError(t, f.vehicles.DeleteByID(created.VehicleID))

	_, err = f.service.GetReservation(created.ReservationID)
	var consistency *ConsistencyError
	assert.ErrorAs(t, err, &consistency)
}

func TestListForCustomerMostRecentFirst(t *testing.T) {
	f := seededFixture(t)
	start := futureStart()

	first, err := f.service.CreateReservation(request("SEDAN", start, 2))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := f.service.CreateReservation(request("SUV", start, 2))
	require.NoError(t, err)

	responses, err := f.service.ListForCustomer("ana@example.com")
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, second.ReservationID, responses[0].ReservationID)
	assert.Equal(t, first.ReservationID, responses[1].ReservationID)

	responses, err = f.service.ListForCustomer("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestAvailabilityCountsCoverAllTypes(t *testing.T) {
	// Fleet with no vans at all.
	f := newFixture(t,
		db.Vehicle{LicensePlate: "AAA111", VehicleType: db.VehicleTypeSedan, Brand: "Toyota", Model: "Camry", Year: 2022},
		db.Vehicle{LicensePlate: "BBB222", VehicleType: db.VehicleTypeSUV, Brand: "Honda", Model: "CR-V", Year: 2022},
	)
	start := futureStart()
	end := start.AddDate(0, 0, 2)

	counts, err := f.service.AvailabilityCounts(start, end)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, 1, counts[db.VehicleTypeSedan])
	assert.Equal(t, 1, counts[db.VehicleTypeSUV])
	assert.Equal(t, 0, counts[db.VehicleTypeVan])

	_, err = f.service.CreateReservation(request("SEDAN", start, 2))
	require.NoError(t, err)

	counts, err = f.service.AvailabilityCounts(start, end)
	require.NoError(t, err)
	assert.Equal(t, 0, counts[db.VehicleTypeSedan])
}

func TestConcurrentCreateSingleVehicle(t *testing.T) {
	van := db.Vehicle{LicensePlate: "VAN001", VehicleType: db.VehicleTypeVan, Brand: "Ford", Model: "Transit", Year: 2022}
	f := newFixture(t, van)
	start := futureStart()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateReservation(request("VAN", start, 5))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var noVehicle *NoVehicleAvailableError
		require.ErrorAs(t, err, &noVehicle)
		conflicts++
	}

	assert.Equal(t, 1, successes, "exactly one concurrent create may win")
	assert.Equal(t, workers-1, conflicts)

	vans, err := f.vehicles.FindByType(db.VehicleTypeVan)
	require.NoError(t, err)
	require.Len(t, vans, 1)
	active, err := f.reservations.FindActiveForVehicle(vans[0].ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
