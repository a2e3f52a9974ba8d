//go:build unit || e2e

package paymenttest

import (
	"context"
	"fmt"
	"sync"

	"rental-booking/internal/usecase/shared"

	"github.com/cockroachdb/errors"
)

var ErrUnknownIntent = errors.New("no such payment intent")

type Refund struct {
	IntentID string
	Amount   int64
}

// Gateway is an in-memory PaymentGateway. Intents start unconfirmed; call
// HoldCard to simulate the guest completing card authorization.
type Gateway struct {
	mu      sync.Mutex
	seq     int
	intents map[string]*shared.PaymentIntent
	byKey   map[string]string
	refunds []Refund

	// FailNext makes the next call of any method return this error.
	FailNext error
}

var _ shared.PaymentGateway = (*Gateway)(nil)

func NewGateway() *Gateway {
	return &Gateway{
		intents: make(map[string]*shared.PaymentIntent),
		byKey:   make(map[string]string),
	}
}

func (g *Gateway) takeFailure() error {
	err := g.FailNext
	g.FailNext = nil
	return err
}

func (g *Gateway) CreateIntent(_ context.Context, req shared.PaymentIntentRequest) (*shared.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}

	if id, ok := g.byKey[req.IdempotencyKey]; ok && req.IdempotencyKey != "" {
		return copyIntent(g.intents[id]), nil
	}
	g.seq++
	id := fmt.Sprintf("pi_test_%d", g.seq)
	g.intents[id] = &shared.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       req.Amount,
		Currency:     req.Currency,
		Status:       shared.PaymentRequiresPaymentMethod,
	}
	if req.IdempotencyKey != "" {
		g.byKey[req.IdempotencyKey] = id
	}
	return copyIntent(g.intents[id]), nil
}

func (g *Gateway) GetIntent(_ context.Context, id string) (*shared.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}
	pi, ok := g.intents[id]
	if !ok {
		return nil, ErrUnknownIntent
	}
	return copyIntent(pi), nil
}

func (g *Gateway) CaptureIntent(_ context.Context, id string) error {
	return g.move(id, shared.PaymentRequiresCapture, shared.PaymentSucceeded)
}

func (g *Gateway) CancelIntent(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	pi, ok := g.intents[id]
	if !ok {
		return ErrUnknownIntent
	}
	if pi.Status == shared.PaymentSucceeded {
		return errors.Newf("intent %s already captured", id)
	}
	pi.Status = shared.PaymentCanceled
	return nil
}

func (g *Gateway) Refund(_ context.Context, intentID string, amount int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	pi, ok := g.intents[intentID]
	if !ok {
		return ErrUnknownIntent
	}
	if pi.Status != shared.PaymentSucceeded {
		return errors.Newf("intent %s has not been captured", intentID)
	}
	g.refunds = append(g.refunds, Refund{IntentID: intentID, Amount: amount})
	return nil
}

// HoldCard moves an intent to requires_capture, as Stripe does once the card is authorized.
func (g *Gateway) HoldCard(id string) error {
	return g.move(id, shared.PaymentRequiresPaymentMethod, shared.PaymentRequiresCapture)
}

func (g *Gateway) Intent(id string) (shared.PaymentIntent, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	pi, ok := g.intents[id]
	if !ok {
		return shared.PaymentIntent{}, false
	}
	return *pi, true
}

func (g *Gateway) Refunds() []Refund {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Refund(nil), g.refunds...)
}

func (g *Gateway) IntentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.intents)
}

func (g *Gateway) move(id string, from, to shared.PaymentStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	pi, ok := g.intents[id]
	if !ok {
		return ErrUnknownIntent
	}
	if pi.Status != from {
		return errors.Newf("intent %s is %s, want %s", id, pi.Status, from)
	}
	pi.Status = to
	return nil
}

func copyIntent(pi *shared.PaymentIntent) *shared.PaymentIntent {
	c := *pi
	return &c
}
