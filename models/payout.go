package models

import "time"

type PayoutStatus string

const (
	PayoutProcessing PayoutStatus = "PROCESSING"
	PayoutProcessed  PayoutStatus = "PROCESSED"
)

// Payout is a doctor's request to cash out earned credits. Amounts are in
// whole currency units.
type Payout struct {
	ID          string       `bson:"id" json:"id"`
	DoctorID    string       `bson:"doctorId" json:"doctorId"`
	Credits     int          `bson:"credits" json:"credits"`
	Amount      int          `bson:"amount" json:"amount"`
	PlatformFee int          `bson:"platformFee" json:"platformFee"`
	NetAmount   int          `bson:"netAmount" json:"netAmount"`
	PaypalEmail string       `bson:"paypalEmail" json:"paypalEmail"`
	Status      PayoutStatus `bson:"status" json:"status"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	ProcessedAt *time.Time   `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	ProcessedBy string       `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
}

type PayoutRequest struct {
	PaypalEmail string `json:"paypalEmail" binding:"required,email"`
}
