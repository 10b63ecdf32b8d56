package labeling

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// ArtifactContentType is the MIME type of stored labels
const ArtifactContentType = "image/png"

// ArtifactStore keeps rendered label PNGs somewhere they can be served from.
type ArtifactStore interface {
	// Save stores the PNG under key and returns its public URL
	Save(ctx context.Context, key string, png []byte) (string, error)
	// Delete removes a previously saved artifact by its public URL
	Delete(ctx context.Context, url string) error
}

var unsafeSKUChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// SanitizeSKU replaces every character outside [a-zA-Z0-9-_] with an underscore
func SanitizeSKU(sku string) string {
	return unsafeSKUChars.ReplaceAllString(sku, "_")
}

// ArtifactKey returns the storage key for a label: qr-codes/{sku}/qr-{unixMillis}.png
func ArtifactKey(sku string, at time.Time) string {
	return fmt.Sprintf("qr-codes/%s/qr-%d.png", SanitizeSKU(sku), at.UnixMilli())
}
