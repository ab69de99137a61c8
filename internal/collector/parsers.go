package collector

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/devstatd/internal/errors"
)

// Parsers are pure: no I/O, no state, identical input yields identical
// output. Each returns either a typed value or a parse error carrying the
// raw content.

// parseCycleBins turns the space-delimited cycle count bins into a
// comma-separated list with edge whitespace trimmed: "1 2 3 " -> "1,2,3".
func parseCycleBins(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), " ", ",")
}

// parseLeadingInt parses the leading base-10 integer of raw, ignoring
// anything after it.
func parseLeadingInt(raw string) (int, error) {
	var count int
	if n, err := fmt.Sscanf(raw, "%d", &count); n != 1 {
		return 0, errors.New().Wrap(ErrParseFailed, err).WithData(raw)
	}

	return count, nil
}

// parseFloatPair parses exactly two comma-separated decimal values. Either
// both parse or the whole parse fails; there is no partial result.
func parseFloatPair(raw string) (left, right float64, err error) {
	if n, scanErr := fmt.Sscanf(raw, "%g,%g", &left, &right); n != 2 {
		return 0, 0, errors.New().Wrap(ErrParseFailed, scanErr).WithData(raw)
	}

	return left, right, nil
}
