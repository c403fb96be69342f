package api

import (
	"net/http"
	"time"

	"autorenta/internal/db"
	"autorenta/internal/entities"
	"autorenta/internal/service"

	"github.com/gorilla/mux"
)

type VehicleHandler struct {
	Service *service.ReservationService
}

func NewVehicleHandler(svc *service.ReservationService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

func (h *VehicleHandler) ListVehiclesByType(w http.ResponseWriter, r *http.Request) {
	vehicleType, ok := db.ParseVehicleType(mux.Vars(r)["vehicle_type"])
	if !ok {
		http.Error(w, "Unknown vehicle type", http.StatusBadRequest)
		return
	}

	vehicles, err := h.Service.ListVehiclesByType(vehicleType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewVehicleResponses(vehicles))
}

func (h *VehicleHandler) ListAvailableVehicles(w http.ResponseWriter, r *http.Request) {
	vehicleType, ok := db.ParseVehicleType(r.URL.Query().Get("vehicle_type"))
	if !ok {
		http.Error(w, "Unknown vehicle type", http.StatusBadRequest)
		return
	}
	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vehicles, err := h.Service.ListAvailableVehicles(vehicleType, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewVehicleResponses(vehicles))
}

func (h *VehicleHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	counts, err := h.Service.AvailabilityCounts(start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.AvailabilityResponse{
		RequestedStartTime: start,
		RequestedEndTime:   end,
		Availability:       counts,
	})
}

func (h *VehicleHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.GetPrices())
}

func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start_time"))
	if err != nil {
		return time.Time{}, time.Time{}, &badWindowError{param: "start_time"}
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end_time"))
	if err != nil {
		return time.Time{}, time.Time{}, &badWindowError{param: "end_time"}
	}
	return start, end, nil
}

type badWindowError struct {
	param string
}

func (e *badWindowError) Error() string {
	return e.param + " must be a valid RFC 3339 timestamp"
}
