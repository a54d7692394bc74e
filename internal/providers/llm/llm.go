// Package llm generates the assistant's spoken replies.
package llm

import "context"

type Provider interface {
	// StreamAnswer returns a stream of text chunks (incremental). errs carries
	// at most one error and is closed after chunks.
	StreamAnswer(ctx context.Context, prompt string) (chunks <-chan string, errs <-chan error)
	Close() error
}
