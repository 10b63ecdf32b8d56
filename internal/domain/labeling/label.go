package labeling

import (
	"context"
	"encoding/base64"
)

// RenderedLabel is one encoded label image.
// It has no identity beyond the render call that produced it.
type RenderedLabel struct {
	PNG    []byte
	Width  int
	Height int
	SKU    string
}

// DataURI returns the PNG as an inline data URI for embedding in HTML
func (l *RenderedLabel) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(l.PNG)
}

// Renderer turns a product into a label image
type Renderer interface {
	Render(ctx context.Context, in ProductLabelInput) (*RenderedLabel, error)
}

// BatchItemResult is the outcome of one input in a batch render.
// Results always come back one per input, in input order.
type BatchItemResult struct {
	Index   int
	SKU     string
	Success bool
	Label   *RenderedLabel
	Err     error
}

// ErrorMessage returns the failure message, or an empty string on success
func (r BatchItemResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// SucceededLabels returns the successful labels in input order
func SucceededLabels(results []BatchItemResult) []*RenderedLabel {
	labels := make([]*RenderedLabel, 0, len(results))
	for _, r := range results {
		if r.Success && r.Label != nil {
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// CountResults returns the number of successes and failures
func CountResults(results []BatchItemResult) (succeeded, failed int) {
	for _, r := range results {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
