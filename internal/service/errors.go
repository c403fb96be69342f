package service

import (
	"fmt"
	"time"

	"autorenta/internal/db"
)

// InvalidRequestError reports malformed or out-of-range input. Nothing is
// mutated when it is returned.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

// NoVehicleAvailableError means the request was valid but every vehicle of
// the type has a blocking reservation in the window.
type NoVehicleAvailableError struct {
	VehicleType db.VehicleType
	Start       time.Time
	End         time.Time
}

func (e *NoVehicleAvailableError) Error() string {
	return fmt.Sprintf("no %s available for the requested period: %s to %s",
		e.VehicleType.DisplayName(), e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// InvalidStateError reports an operation not permitted for the entity's
// current status, e.g. cancelling a cancelled reservation.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// ConsistencyError means a referenced entity is missing when it must
// exist. It aborts the operation; callers never get partial data.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string {
	return e.Reason
}
