package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func shortID(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:n])
}

// NewOrderID returns ORD-YYYYMMDD-XXXXXXXX.
func NewOrderID(now time.Time) string {
	return "ORD-" + now.UTC().Format("20060102") + "-" + shortID(8)
}

// NewFeedbackID returns FB-YYYYMMDD-XXXXXXXX.
func NewFeedbackID(now time.Time) string {
	return "FB-" + now.UTC().Format("20060102") + "-" + shortID(8)
}

// NewEmployeeID returns EMPYYYYMMDDXXXXXX.
func NewEmployeeID(now time.Time) string {
	return "EMP" + now.UTC().Format("20060102") + shortID(6)
}

// NewToken returns an opaque url-safe token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
