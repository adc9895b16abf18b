package booking

import (
	"context"
	"time"
)

// Client defines the capability surface the reconciliation engine needs
// from the remote booking service. Authentication, session renewal and
// transport failures are the implementation's concern; a successful fetch
// is treated as ground truth for that call.
type Client interface {
	// FetchClasses lists the classes published for one venue over a window
	// of daysForward days starting at startDate.
	FetchClasses(ctx context.Context, venueID int64, startDate time.Time, daysForward int) ([]RawRecord, error)
}

// ReservationStatus is the remote service's answer to a reservation
// request. Status 1 means the reservation was made.
type ReservationStatus struct {
	Status int `json:"Status"`
}

// Reserver extends Client with the booking surface the reservation loop
// needs.
type Reserver interface {
	Client
	// AddReservation books one class occurrence. date is the class
	// StartTime as returned by FetchClasses, classScheduleID its Id.
	AddReservation(ctx context.Context, classScheduleID int64, date string) (*ReservationStatus, error)
}
