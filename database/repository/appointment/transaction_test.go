package appointmentRepo

import (
	"testing"
	"time"

	"medibook/models"
)

func TestLedgerEntries(t *testing.T) {
	appt := &models.Appointment{ID: "appt-1", PatientID: "patient-1", DoctorID: "doctor-1", Credits: 2}
	at := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		entries []interface{}
		want    map[string]models.CreditTransaction
	}{
		{"booking", bookingEntries(appt, at), map[string]models.CreditTransaction{
			"patient-1": {Amount: -2, Type: models.CreditAppointment},
			"doctor-1":  {Amount: 2, Type: models.CreditEarning},
		}},
		{"refund", refundEntries(appt, at), map[string]models.CreditTransaction{
			"patient-1": {Amount: 2, Type: models.CreditRefund},
			"doctor-1":  {Amount: -2, Type: models.CreditRefund},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if len(c.entries) != 2 {
				t.Fatalf("expected two entries, got %d", len(c.entries))
			}
			sum := 0
			for _, e := range c.entries {
				tx := e.(models.CreditTransaction)
				want, ok := c.want[tx.UserID]
				if !ok {
					t.Fatalf("unexpected user %q", tx.UserID)
				}
				if tx.Amount != want.Amount || tx.Type != want.Type {
					t.Errorf("%s: got %d %s, want %d %s", tx.UserID, tx.Amount, tx.Type, want.Amount, want.Type)
				}
				if tx.Reference != appt.ID || !tx.CreatedAt.Equal(at) || tx.ID == "" {
					t.Errorf("%s: bad metadata %+v", tx.UserID, tx)
				}
				sum += tx.Amount
			}
			if sum != 0 {
				t.Errorf("entries must balance, sum = %d", sum)
			}
		})
	}
}
