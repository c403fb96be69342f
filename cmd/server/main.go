package main

import (
	"database/sql"
	"net/http"
	"os"

	"autorenta/internal/api"
	"autorenta/internal/config"
	"autorenta/internal/db"
	"autorenta/internal/repository"
	"autorenta/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	vehicleRepo, reservationRepo := buildRepositories(cfg)
	seedFleet(vehicleRepo)

	availability := service.NewAvailabilityService(vehicleRepo, reservationRepo)
	notify := service.NewNotifyService(cfg)
	svc := service.NewReservationService(vehicleRepo, reservationRepo, availability, notify)
	jobs := service.NewJobService(availability, reservationRepo, cfg.PurgeRetentionDays)

	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobs.LogAvailabilitySnapshot(); err != nil {
			logrus.Errorf("Availability snapshot failed: %v", err)
		}
	})
	c.AddFunc("@daily", func() {
		if _, err := jobs.PurgeCancelledReservations(); err != nil {
			logrus.Errorf("Retention purge failed: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	reservationHandler := api.NewReservationHandler(svc)
	vehicleHandler := api.NewVehicleHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/reservations", reservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations", reservationHandler.ListReservations).Methods("GET")
	r.HandleFunc("/api/reservations/customer/{email}", reservationHandler.ListCustomerReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.CancelReservation).Methods("DELETE")
	r.HandleFunc("/api/vehicles/available", vehicleHandler.ListAvailableVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles/{vehicle_type}", vehicleHandler.ListVehiclesByType).Methods("GET")
	r.HandleFunc("/api/availability", vehicleHandler.GetAvailability).Methods("GET")
	r.HandleFunc("/api/prices", vehicleHandler.GetPrices).Methods("GET")

	handler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.LoggingHandler(os.Stdout, r))

	logrus.Infof("Server running on port %s", cfg.Port)
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

func buildRepositories(cfg *config.Config) (repository.VehicleRepository, repository.ReservationRepository) {
	if cfg.DatabaseURL == "" {
		logrus.Info("DATABASE_URL not set, using in-memory stores")
		return repository.NewMemoryVehicleRepository(), repository.NewMemoryReservationRepository()
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		logrus.Fatalf("Failed to connect to DB: %v", err)
	}
	return repository.NewPostgresVehicleRepository(database), repository.NewPostgresReservationRepository(database)
}

// seedFleet loads the initial fleet once; a non-empty catalog is left
// alone so restarts don't duplicate vehicles.
func seedFleet(vehicleRepo repository.VehicleRepository) {
	existing, err := vehicleRepo.FindAll()
	if err != nil {
		logrus.Fatalf("Failed to inspect vehicle catalog: %v", err)
	}
	if len(existing) > 0 {
		logrus.Infof("Vehicle catalog already has %d vehicles, skipping seed", len(existing))
		return
	}
	for _, vehicle := range db.SeedVehicles() {
		v := vehicle
		if err := vehicleRepo.Save(&v); err != nil {
			logrus.Fatalf("Failed to seed vehicle %s: %v", v.LicensePlate, err)
		}
	}
	logrus.Infof("Initialized %d vehicles in repository", len(db.SeedVehicles()))
}
