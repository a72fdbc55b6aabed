package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boomiis-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.OrderStatus
		to    models.OrderStatus
		actor Actor
		ok    bool
	}{
		{"customer pays", models.StatusPaymentRequired, models.StatusPaid, ActorCustomer, true},
		{"admin cancels unpaid", models.StatusPaymentRequired, models.StatusCancelled, ActorAdmin, true},
		{"customer can not cancel", models.StatusPaymentRequired, models.StatusCancelled, ActorCustomer, false},
		{"cancelled can not be paid", models.StatusCancelled, models.StatusPaid, ActorCustomer, false},
		{"paid can not be cancelled", models.StatusPaid, models.StatusCancelled, ActorAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusPaid))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPaymentRequired))

	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusPaid, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusPaymentRequired))

	err := CanTransition(models.StatusPaid, models.StatusCancelled, ActorAdmin)
	assert.ErrorContains(t, err, "none (terminal state)")
}
