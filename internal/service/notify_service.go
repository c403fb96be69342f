package service

import (
	"fmt"
	"time"

	"autorenta/internal/config"
	"autorenta/internal/entities"

	"github.com/sirupsen/logrus"
)

// NotifyService emails the customer and texts the operations number when
// a reservation is created or cancelled. Delivery runs in the background;
// the reservation flow never waits on it.
type NotifyService struct {
	sender    *SenderService
	opsNumber string
}

var _ Notifier = (*NotifyService)(nil)

func NewNotifyService(cfg *config.Config) *NotifyService {
	return &NotifyService{
		sender:    NewSenderService(cfg),
		opsNumber: cfg.TwilioOpsNumber,
	}
}

func (n *NotifyService) ReservationCreated(reservation *entities.ReservationResponse) {
	n.notify(reservation, "confirmed")
}

func (n *NotifyService) ReservationCancelled(reservation *entities.ReservationResponse) {
	n.notify(reservation, "cancelled")
}

func (n *NotifyService) notify(reservation *entities.ReservationResponse, status string) {
	data := entities.ReservationEmailData{
		CustomerName:       reservation.CustomerName,
		ReservationID:      reservation.ReservationID,
		VehicleModel:       reservation.VehicleTypeName,
		LicensePlate:       reservation.LicensePlate,
		StartTimeFormatted: reservation.StartTime.Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   reservation.EndTime.Format("02 Jan 2006 15:04 MST"),
		TotalCost:          reservation.TotalCost,
		Status:             status,
	}

	subject := fmt.Sprintf("Your AutoRenta reservation is %s - %s", status, data.ReservationID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation is %s.\n\n"+
			"Reservation ID: %s\n"+
			"Vehicle: %s (Plate: %s)\n"+
			"Pick-up: %s\n"+
			"Return: %s\n"+
			"Total: %.2f\n\n"+
			"Thank you for choosing AutoRenta.",
		data.CustomerName, status, data.ReservationID, data.VehicleModel, data.LicensePlate,
		data.StartTimeFormatted, data.EndTimeFormatted, data.TotalCost,
	)

	go func(toEmail, toName, subject, body string) {
		if err := n.sender.SendEmail(toEmail, toName, subject, body); err != nil {
			logrus.Errorf("Failed to send %s email for reservation %s: %v", status, data.ReservationID, err)
		}
	}(reservation.CustomerEmail, reservation.CustomerName, subject, body)

	if n.opsNumber == "" {
		return
	}
	sms := fmt.Sprintf("AutoRenta: reservation %s %s (%s %s, pick-up %s)",
		data.ReservationID, status, data.VehicleModel, data.LicensePlate,
		reservation.StartTime.Format(time.DateOnly))
	go func(to, sms string) {
		if err := n.sender.SendSMS(to, sms); err != nil {
			logrus.Errorf("Failed to send %s SMS for reservation %s: %v", status, data.ReservationID, err)
		}
	}(n.opsNumber, sms)
}
