package matcher

import (
	"fmt"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
)

// Budget bounds how many document tokens a match may skip.
type Budget struct {
	ConsecutiveSkipMax int `json:"consecutive_skips" yaml:"consecutive_skips"`
	TotalSkipMax       int `json:"total_skips" yaml:"total_skips"`
}

// DefaultBudget allows two consecutive and four total skips.
func DefaultBudget() Budget {
	return Budget{ConsecutiveSkipMax: 2, TotalSkipMax: 4}
}

// Validate rejects negative limits.
func (b Budget) Validate() error {
	if b.ConsecutiveSkipMax < 0 || b.TotalSkipMax < 0 {
		return fmt.Errorf("skip budget %+v: %w", b, internalerr.ErrInvalidConfig)
	}
	return nil
}
