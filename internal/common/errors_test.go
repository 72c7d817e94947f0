package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistence_KeepsKindAndCause(t *testing.T) {
	cause := errors.New("database is locked")

	err := Persistence(cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestPersistence_PassesClassifiedErrors(t *testing.T) {
	notFound := NotFound("card")
	assert.Equal(t, notFound, Persistence(notFound))

	invalid := fmt.Errorf("create: %w", Validation("stock name is required"))
	assert.Equal(t, invalid, Persistence(invalid))

	assert.NoError(t, Persistence(nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("card")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
