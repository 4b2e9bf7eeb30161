package models

import "time"

// Slot is a bookable interval free of any booked interval.
type Slot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Formatted string    `json:"formatted"` // e.g., "9:00 AM - 9:30 AM"
	DayLabel  string    `json:"day"`       // e.g., "Monday, January 2"
}

// DaySlots groups the free slots of one calendar day. Days without free
// slots are still present with an empty list.
type DaySlots struct {
	Date         string `json:"date"` // "2006-01-02"
	DisplayLabel string `json:"displayDate"`
	Slots        []Slot `json:"slots"`
}

// DoctorSlotsResponse is returned by the slot search endpoint.
type DoctorSlotsResponse struct {
	DoctorID string     `json:"doctorId"`
	TimeZone string     `json:"timeZone"`
	Days     []DaySlots `json:"days"`
}
