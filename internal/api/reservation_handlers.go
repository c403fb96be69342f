package api

import (
	"encoding/json"
	"net/http"

	"autorenta/internal/db"
	"autorenta/internal/entities"
	apperrors "autorenta/internal/errors"
	"autorenta/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.Service.CreateReservation(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	response, err := h.Service.GetReservation(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	cancelled, err := h.Service.CancelReservation(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !cancelled {
		http.Error(w, "Reservation not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled successfully"})
}

func (h *ReservationHandler) ListCustomerReservations(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	responses, err := h.Service.ListForCustomer(email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// ListReservations supports an optional ?status= filter.
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(db.StatusActive)
	}
	if status != string(db.StatusActive) && status != string(db.StatusCancelled) {
		http.Error(w, "Unknown status: "+status, http.StatusBadRequest)
		return
	}

	responses, err := h.Service.ListByStatus(db.ReservationStatus(status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	httpErr := apperrors.FromError(err)
	if httpErr.Code == http.StatusInternalServerError {
		logrus.Errorf("Request failed: %v", err)
	}
	http.Error(w, httpErr.Message, httpErr.Code)
}
