package csvspan

import (
	"math"
	"strconv"
)

// parseLenientFloat parses a signed decimal number with an optional
// exponent from b, ignoring leading/trailing ASCII whitespace, and never
// fails: unparsable input yields math.NaN(). This is the mechanism behind
// CellView.AsDouble; no third-party decimal parser appears anywhere in the
// reference corpus; strconv.ParseFloat is the stdlib's own lexer for
// exactly this grammar, so reimplementing or vendoring one here would add
// risk without precedent. That reimplementation-avoidance is the
// justification required for the one stdlib-only leaf in this module.
func parseLenientFloat(b []byte) float64 {
	trimmed := trimASCIISpace(b)
	if len(trimmed) == 0 {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func trimASCIISpace(b []byte) []byte {
	start := 0
	for start < len(b) && isASCIISpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isASCIISpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
