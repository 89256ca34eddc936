package dictionary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
)

// ParseCUI accepts "C0011849", "c11849" or a bare number.
func ParseCUI(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty concept code: %w", internalerr.ErrInvalidInput)
	}
	digits := s
	if s[0] == 'C' || s[0] == 'c' {
		digits = s[1:]
	}
	code, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || code < 0 {
		return 0, fmt.Errorf("concept code %q: %w", s, internalerr.ErrInvalidInput)
	}
	return code, nil
}

// FormatCUI renders a code as C plus at least seven digits.
func FormatCUI(code int64) string {
	return fmt.Sprintf("C%07d", code)
}
