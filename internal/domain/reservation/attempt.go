package reservation

import "time"

// FailureFlags record why a reservation could not be made, derived from a
// by-id lookup of the venue's live day after the retries ran out.
type FailureFlags struct {
	WrongClassID   bool
	WrongClassName bool
	WrongVenueID   bool
	WrongClassTime bool
	IsCancelled    bool
	NotReservable  bool
	IsDisabled     bool
}

// Reasons lists the raised flags in a stable order, for logging and for
// the attempt log.
func (f FailureFlags) Reasons() []string {
	var reasons []string
	for _, r := range []struct {
		set  bool
		name string
	}{
		{f.WrongClassID, "wrong_class_id"},
		{f.WrongClassName, "wrong_class_name"},
		{f.WrongVenueID, "wrong_venue_id"},
		{f.WrongClassTime, "wrong_class_time"},
		{f.IsCancelled, "is_cancelled"},
		{f.NotReservable, "not_reservable"},
		{f.IsDisabled, "is_disabled"},
	} {
		if r.set {
			reasons = append(reasons, r.name)
		}
	}
	return reasons
}

// Attempt is one completed reservation attempt for a declared class,
// successful or not.
type Attempt struct {
	ID         int64
	ClassID    int64
	ClassName  string
	VenueID    int64
	ClassTime  string
	TargetDate time.Time
	Succeeded  bool
	Tries      int
	Reasons    []string
	CreatedAt  time.Time
}
