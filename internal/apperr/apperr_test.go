package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:     http.StatusBadRequest,
		KindConflict:       http.StatusBadRequest,
		KindAuthentication: http.StatusUnauthorized,
		KindAuthorization:  http.StatusForbidden,
		KindNotFound:       http.StatusNotFound,
		KindUpstream:       http.StatusInternalServerError,
		KindInternal:       http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), kind.String())
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("cancel order: %w", ErrInvalidStateTransition)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	assert.False(t, errors.Is(err, ErrTokenExpired))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestPaymentProviderUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := PaymentProvider(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Equal(t, "Payment provider request failed", err.Message)
}

func TestIsDistinguishesErrors(t *testing.T) {
	providerErr := PaymentProvider(errors.New("card declined"))
	assert.False(t, errors.Is(providerErr, ErrProviderDisabled))
	assert.False(t, errors.Is(ErrProviderDisabled, providerErr))
	assert.True(t, errors.Is(fmt.Errorf("checkout: %w", ErrProviderDisabled), ErrProviderDisabled))

	assert.False(t, errors.Is(Validation("Name is required"), Validation("Invalid email address")))
	assert.False(t, errors.Is(NotFound("Order"), NotFound("Product")))
	assert.True(t, errors.Is(NotFound("Order"), NotFound("Order")))

	copied := *ErrEmailTaken
	assert.True(t, errors.Is(&copied, ErrEmailTaken))
}
