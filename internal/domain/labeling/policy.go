package labeling

import (
	"fmt"
	"math"

	"github.com/showroom/backend/internal/domain/shared"
)

// DefaultBoundedBatchMax is the number of labels accepted per bounded batch
const DefaultBoundedBatchMax = 4

// BatchPolicy decides how many labels a batch accepts and how they are laid out on a sheet.
type BatchPolicy interface {
	// Name identifies the policy in logs and responses
	Name() string
	// Check rejects batch sizes the policy does not accept
	Check(n int) error
	// Columns returns the column count for a sheet of n labels
	Columns(n int) int
}

// BoundedBatch accepts at most Max labels and prints them two per row.
type BoundedBatch struct {
	Max int
}

// Name implements BatchPolicy
func (b BoundedBatch) Name() string { return "bounded" }

// Check implements BatchPolicy
func (b BoundedBatch) Check(n int) error {
	if n <= 0 {
		return ErrEmptyBatch
	}
	if b.Max > 0 && n > b.Max {
		return shared.NewDomainError(CodeBatchTooLarge, fmt.Sprintf("at most %d labels per batch, got %d", b.Max, n))
	}
	return nil
}

// Columns implements BatchPolicy
func (b BoundedBatch) Columns(n int) int {
	if n <= 1 {
		return 1
	}
	return 2
}

// UnboundedGridBatch accepts any number of labels and arranges them in a square-ish grid.
type UnboundedGridBatch struct{}

// Name implements BatchPolicy
func (UnboundedGridBatch) Name() string { return "grid" }

// Check implements BatchPolicy
func (UnboundedGridBatch) Check(n int) error {
	if n <= 0 {
		return ErrEmptyBatch
	}
	return nil
}

// Columns implements BatchPolicy
func (UnboundedGridBatch) Columns(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Grid is the column/row arrangement of a sheet
type Grid struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// GridFor computes the grid a policy uses for n labels
func GridFor(p BatchPolicy, n int) Grid {
	if n <= 0 {
		return Grid{}
	}
	cols := p.Columns(n)
	return Grid{Columns: cols, Rows: (n + cols - 1) / cols}
}
