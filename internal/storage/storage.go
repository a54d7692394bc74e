package storage

import (
	"context"
	"io"
	"path"
	"time"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// Archive is an Uploader whose objects can be handed out through signed links.
type Archive interface {
	Uploader
	Signer
}

// ExportObject names the archived copy of a generated export file.
func ExportObject(filename string, now time.Time) string {
	return path.Join("exports", now.UTC().Format("2006/01/02"), filename)
}
