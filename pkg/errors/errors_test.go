package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnavailable(t *testing.T) {
	t.Run("wraps untyped errors", func(t *testing.T) {
		err := Unavailable("list orders", fmt.Errorf("connection refused"))
		assert.True(t, IsUnavailable(err))
		assert.Contains(t, err.Error(), "list orders")
	})

	t.Run("keeps typed errors", func(t *testing.T) {
		nf := &ErrNotFound{Resource: "order", ID: "42"}
		err := Unavailable("get order", fmt.Errorf("query: %w", nf))
		assert.True(t, IsNotFound(err))
		assert.False(t, IsUnavailable(err))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Unavailable("noop", nil))
	})
}

func TestMatchersSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("set status: %w", &ErrInvalidStateTransition{From: "Delivered", To: "Pending"})
	assert.True(t, IsInvalidStateTransition(err))
	assert.Equal(t, "set status: invalid status transition from Delivered to Pending", err.Error())

	assert.True(t, IsEmptyCart(fmt.Errorf("checkout: %w", &ErrEmptyCart{})))
	assert.True(t, IsInvalidStatus(&ErrInvalidStatus{Value: "Bogus"}))
	assert.False(t, IsValidation(&ErrInvalidStatus{Value: "Bogus"}))
}
