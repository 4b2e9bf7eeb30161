package models

import "time"

// ReminderPayload is carried by the delayed reminder task.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	FireAt        time.Time `json:"fireAt"`
}

type FCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
