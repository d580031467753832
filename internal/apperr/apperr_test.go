package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(Validation, "Cart is empty"), http.StatusBadRequest},
		{New(Unauthorized, "Unauthorized access"), http.StatusUnauthorized},
		{New(Forbidden, "Forbidden access"), http.StatusForbidden},
		{Newf(NotFound, "Product id:%d not found", 9), http.StatusNotFound},
		{New(Provider, "Midtrans API error"), http.StatusBadGateway},
		{FromProvider(402, "payment declined", nil), 402},
		{New(Internal, "boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Cart is empty", PublicMessage(New(Validation, "Cart is empty")))
	assert.Equal(t, "Internal Server Error", PublicMessage(New(Internal, "pg down")))
	assert.Equal(t, "Internal Server Error", PublicMessage(errors.New("pg down")))
}

func TestKindOfUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("during checkout: %w", New(NotFound, "Order X not found"))
	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(Provider, "Midtrans API error", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
