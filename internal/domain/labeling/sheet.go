package labeling

import "github.com/showroom/backend/internal/domain/printing"

// PrintSheet is an ordered set of labels arranged for one print action.
// It is built on demand and never persisted.
type PrintSheet struct {
	Labels []*RenderedLabel
	Grid   Grid
	Page   printing.PageSetup
	Policy string
}

// NewPrintSheet arranges labels according to the policy on the given page
func NewPrintSheet(labels []*RenderedLabel, policy BatchPolicy, page printing.PageSetup) (*PrintSheet, error) {
	if err := policy.Check(len(labels)); err != nil {
		return nil, err
	}
	return &PrintSheet{
		Labels: labels,
		Grid:   GridFor(policy, len(labels)),
		Page:   page,
		Policy: policy.Name(),
	}, nil
}

// Centered reports whether the sheet holds a single label printed alone in the middle of the page
func (s *PrintSheet) Centered() bool {
	return len(s.Labels) == 1
}
