package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCreditPurchaseIntentJSON(t *testing.T) {
	b, err := json.Marshal(CreditPurchaseIntent{PaymentIntentID: "pi_1", ClientSecret: "sec", Credits: 3, AmountCents: 1500, Currency: "usd"})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"paymentIntentId":"pi_1"`, `"clientSecret":"sec"`, `"amountCents":1500`} {
		if !strings.Contains(string(b), field) {
			t.Errorf("missing %s in %s", field, b)
		}
	}
}

func TestCreditTransactionTypesAreDistinct(t *testing.T) {
	seen := map[CreditTransactionType]bool{}
	for _, typ := range []CreditTransactionType{CreditPurchase, CreditAppointment, CreditEarning, CreditAdminAdjustment, CreditRefund} {
		if seen[typ] {
			t.Errorf("duplicate transaction type %s", typ)
		}
		seen[typ] = true
	}
}
