package services

import (
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	apperrors "github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/logger"
)

// PaymentIntent is the subset of the processor's intent the booking flow
// needs: the id to reconcile against and the client secret the frontend uses
// to take the card payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentServiceInterface defines payment-intent operations.
type PaymentServiceInterface interface {
	CreateIntent(amount decimal.Decimal, bookingID string) (*PaymentIntent, error)
	CancelIntent(intentID string) error
}

// PaymentService creates Stripe payment intents for bookings. Amounts are
// converted to the currency's minor unit as Stripe requires.
type PaymentService struct {
	api      *client.API
	currency string
}

var _ PaymentServiceInterface = (*PaymentService)(nil)

func NewPaymentService(secretKey, currency string) *PaymentService {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &PaymentService{api: api, currency: currency}
}

func (s *PaymentService) CreateIntent(amount decimal.Decimal, bookingID string) (*PaymentIntent, error) {
	minorUnits := amount.Mul(decimal.NewFromInt(100)).IntPart()
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", bookingID)

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, apperrors.NewPaymentError(err, "create payment intent")
	}

	logger.GetLogger().Infow("Created payment intent",
		"bookingID", bookingID,
		"amountMinorUnits", minorUnits,
		"currency", s.currency)
	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (s *PaymentService) CancelIntent(intentID string) error {
	if intentID == "" {
		return nil
	}
	if _, err := s.api.PaymentIntents.Cancel(intentID, nil); err != nil {
		return apperrors.NewPaymentError(err, "cancel payment intent")
	}
	return nil
}
