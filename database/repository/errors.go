package repository

import "errors"

// Sentinel errors shared by the Mongo repositories. Services match them with
// errors.Is and translate them into domain errors.
var (
	ErrNotFound            = errors.New("document not found")
	ErrSlotTaken           = errors.New("slot overlaps an existing appointment")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrDuplicateReference  = errors.New("reference already recorded")
	ErrStateConflict       = errors.New("document is not in the expected state")
)
