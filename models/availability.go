package models

import (
	"fmt"
	"time"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "AVAILABLE"
	AvailabilityUnavailable AvailabilityStatus = "UNAVAILABLE"
)

// Availability is a doctor's recurring daily booking window.
type Availability struct {
	ID          string             `bson:"id" json:"id"`
	DoctorID    string             `bson:"doctorId" json:"doctorId"`
	StartMinute int                `bson:"startMinute" json:"startMinute"` // minutes from midnight (e.g., 540 for 9:00 AM)
	EndMinute   int                `bson:"endMinute" json:"endMinute"`     // minutes from midnight (e.g., 1020 for 5:00 PM)
	TimeZone    string             `bson:"timeZone,omitempty" json:"timeZone,omitempty"`
	Status      AvailabilityStatus `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Label renders the window, e.g. "9:00 AM - 5:00 PM".
func (a Availability) Label() string {
	return fmt.Sprintf("%s - %s", MinuteLabel(a.StartMinute), MinuteLabel(a.EndMinute))
}

// MinuteLabel renders minutes from midnight as a 12-hour clock time.
func MinuteLabel(m int) string {
	return time.Date(2000, 1, 1, 0, m, 0, 0, time.UTC).Format("3:04 PM")
}

// SetAvailabilityRequest is the doctor's window update, times as "15:04".
type SetAvailabilityRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	TimeZone  string `json:"timeZone"`
}

// BookedInterval is a half-open [Start, End) span already claimed on a doctor's calendar.
type BookedInterval struct {
	Start time.Time
	End   time.Time
}
