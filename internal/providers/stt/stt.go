// Package stt turns customer audio chunks into text.
package stt

import (
	"context"
	"strings"
)

type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Close() error
}

const DefaultLanguage = "en-US"

// NormalizeLanguage maps the short codes the voice client sends to BCP-47
// tags. The store serves English and Indian English callers.
func NormalizeLanguage(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "en", "en-us":
		return DefaultLanguage
	case "in", "en-in":
		return "en-IN"
	case "hi", "hi-in":
		return "hi-IN"
	default:
		return strings.TrimSpace(v)
	}
}
