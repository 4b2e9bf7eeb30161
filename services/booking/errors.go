package booking

import "errors"

var (
	// ErrSlotTaken means another appointment claimed the interval first.
	ErrSlotTaken = errors.New("slot is no longer available")
	// ErrNotFinished is returned when completing an appointment before its end.
	ErrNotFinished = errors.New("appointment has not ended yet")
)
