package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a consultation between a patient and a doctor.
type Appointment struct {
	ID                 string            `bson:"id" json:"id"`
	PatientID          string            `bson:"patientId" json:"patientId"`
	DoctorID           string            `bson:"doctorId" json:"doctorId"`
	StartTime          time.Time         `bson:"startTime" json:"startTime"`
	EndTime            time.Time         `bson:"endTime" json:"endTime"`
	Status             AppointmentStatus `bson:"status" json:"status"`
	PatientDescription string            `bson:"patientDescription,omitempty" json:"patientDescription,omitempty"`
	Notes              string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Credits            int               `bson:"credits" json:"credits"` // credits moved from patient to doctor
	CreatedAt          time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the booked span of the appointment.
func (a Appointment) Interval() BookedInterval {
	return BookedInterval{Start: a.StartTime, End: a.EndTime}
}

// IsParticipant reports whether userID is the patient or the doctor.
func (a Appointment) IsParticipant(userID string) bool {
	return a.PatientID == userID || a.DoctorID == userID
}

// BookAppointmentRequest is the patient's reservation of a computed slot.
type BookAppointmentRequest struct {
	DoctorID    string    `json:"doctorId" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Description string    `json:"description" binding:"max=1000"`
}

type AppointmentNotesRequest struct {
	Notes string `json:"notes" binding:"required,max=4000"`
}
