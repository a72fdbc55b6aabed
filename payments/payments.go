// Package payments creates and inspects payment intents at the payment processor.
package payments

import (
	"context"
	"errors"
	"math"
)

// Intent statuses used by the order flow
const (
	StatusSucceeded = "succeeded"
	StatusCanceled  = "canceled"
)

// ErrDisabled is returned when no processor credential is configured.
var ErrDisabled = errors.New("payment processor is not configured")

// Intent is the processor's view of an authorized-but-not-yet-settled payment.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64 // minor units
	Currency     string
}

// Succeeded reports whether the processor has settled the payment.
func (i *Intent) Succeeded() bool {
	return i != nil && i.Status == StatusSucceeded
}

// Provider creates and looks up payment intents.
type Provider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

// ToMinorUnits converts a decimal amount to minor currency units (pence, cents).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100)) //nolint:mnd
}
