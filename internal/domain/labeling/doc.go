// Package labeling contains the QR label bounded context.
// It owns the physical label geometry, the product input that a label is
// rendered from, batch policies for printing several labels at once and the
// history of labels that were generated and stored.
package labeling
