package credits

import (
	"context"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"
)

// PaymentGateway creates card payments and authenticates their webhooks.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, userID string, credits int, amountCents int64, currency string) (*stripe.PaymentIntent, error)
	ParseEvent(payload []byte, signature string) (stripe.Event, error)
}

// StripeGateway uses the package-level stripe.Key set in main.
type StripeGateway struct {
	WebhookSecret string
}

func (g *StripeGateway) CreateIntent(ctx context.Context, userID string, credits int, amountCents int64, currency string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(strconv.Itoa(credits) + " consultation credits"),
	}
	params.Context = ctx
	params.AddMetadata(metaUserID, userID)
	params.AddMetadata(metaCredits, strconv.Itoa(credits))
	return paymentintent.New(params)
}

func (g *StripeGateway) ParseEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, g.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
