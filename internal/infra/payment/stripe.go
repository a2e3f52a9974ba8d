package payment

import (
	"context"
	"log/slog"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	return &StripeGateway{api: client.New(cfg.SecretKey, nil)}
}

// NewStripeGatewayWithBackends points the client at a custom API backend, e.g. stripe-mock.
func NewStripeGatewayWithBackends(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, backends)}
}

// CreateIntent places a card hold only; the amount is captured when the host approves.
func (g *StripeGateway) CreateIntent(ctx context.Context, req shared.PaymentIntentRequest) (*shared.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey("intent:" + req.IdempotencyKey)
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapStripeErr(err, "failed to create payment intent")
	}
	return toPaymentIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*shared.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, wrapStripeErr(err, "failed to fetch payment intent")
	}
	return toPaymentIntent(pi), nil
}

func (g *StripeGateway) CaptureIntent(ctx context.Context, id string) error {
	params := &stripe.PaymentIntentCaptureParams{}
	params.SetIdempotencyKey("capture:" + id)
	params.Context = ctx

	if _, err := g.api.PaymentIntents.Capture(id, params); err != nil {
		return wrapStripeErr(err, "failed to capture payment intent")
	}
	return nil
}

func (g *StripeGateway) CancelIntent(ctx context.Context, id string) error {
	params := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonRequestedByCustomer)),
	}
	params.SetIdempotencyKey("cancel:" + id)
	params.Context = ctx

	if _, err := g.api.PaymentIntents.Cancel(id, params); err != nil {
		return wrapStripeErr(err, "failed to cancel payment intent")
	}
	return nil
}

// Refund returns part or all of a captured intent. A booking is refunded at most once.
func (g *StripeGateway) Refund(ctx context.Context, intentID string, amount int64) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(amount),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.SetIdempotencyKey("refund:" + intentID)
	params.Context = ctx

	if _, err := g.api.Refunds.New(params); err != nil {
		return wrapStripeErr(err, "failed to refund payment intent")
	}
	return nil
}

func toPaymentIntent(pi *stripe.PaymentIntent) *shared.PaymentIntent {
	return &shared.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       shared.PaymentStatus(pi.Status),
	}
}

func wrapStripeErr(err error, msg string) error {
	attrs := []any{slog.String("error", err.Error())}
	var se *stripe.Error
	if errs.As(err, &se) {
		attrs = append(attrs,
			slog.String("type", string(se.Type)),
			slog.String("code", string(se.Code)),
			slog.Int("http_status", se.HTTPStatusCode),
			slog.String("request_id", se.RequestID),
		)
	}
	slog.Error("Payment provider error: "+msg, attrs...)
	return errs.Mark(errs.Wrap(err, msg), shared.ErrPaymentProvider)
}
