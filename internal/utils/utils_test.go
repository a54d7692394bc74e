package utils

import (
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMapping(t *testing.T) {
	err := E(CodeConflict, "AdminService.Register", "email already registered", nil)

	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
	assert.True(t, IsCode(err, CodeConflict))
	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.Equal(t, "AdminService.Register: email already registered", err.Error())

	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(ErrNotFound))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := E(CodeNotFound, "OrderService.Submit", "room not found", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIDs(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	assert.Regexp(t, regexp.MustCompile(`^ORD-20261019-[0-9A-F]{8}$`), NewOrderID(now))
	assert.Regexp(t, regexp.MustCompile(`^FB-20261019-[0-9A-F]{8}$`), NewFeedbackID(now))
	assert.Regexp(t, regexp.MustCompile(`^EMP20261019[0-9A-F]{6}$`), NewEmployeeID(now))
	assert.Len(t, NewToken(), 64)
	assert.NotEqual(t, NewToken(), NewToken())
}

func TestPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(h, "correct horse"))
	assert.Error(t, CheckPassword(h, "wrong horse!"))
}
