package models

import "time"

type CreditTransactionType string

const (
	CreditPurchase        CreditTransactionType = "CREDIT_PURCHASE"
	CreditAppointment     CreditTransactionType = "APPOINTMENT_DEDUCTION"
	CreditEarning         CreditTransactionType = "APPOINTMENT_EARNING"
	CreditAdminAdjustment CreditTransactionType = "ADMIN_ADJUSTMENT"
	CreditRefund          CreditTransactionType = "REFUND"
)

// CreditTransaction is one signed ledger entry. Reference is unique when set.
type CreditTransaction struct {
	ID        string                `bson:"id" json:"id"`
	UserID    string                `bson:"userId" json:"userId"`
	Amount    int                   `bson:"amount" json:"amount"`
	Type      CreditTransactionType `bson:"type" json:"type"`
	Reference string                `bson:"reference,omitempty" json:"reference,omitempty"` // appointment, payout or payment intent id
	CreatedAt time.Time             `bson:"createdAt" json:"createdAt"`
}

type CreditPurchaseRequest struct {
	Credits int `json:"credits" binding:"required,min=1,max=100"`
}

// CreditPurchaseIntent is returned to the client to complete the card payment.
type CreditPurchaseIntent struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Credits         int    `json:"credits"`
	AmountCents     int64  `json:"amountCents"`
	Currency        string `json:"currency"`
}

type CreditBalance struct {
	UserID  string `json:"userId"`
	Credits int    `json:"credits"`
}
