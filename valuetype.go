package declare4py

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	integerRe = regexp.MustCompile(`^[+-]?\d+$`)
	floatRe   = regexp.MustCompile(`^[+-]?\d+\.\d+$`)
)

// DetectValueType classifies the trimmed right-hand side of an
// attribute-values line per spec §4.B:
//  1. an integer literal -> INTEGER
//  2. a float literal -> FLOAT
//  3. "integer between ..." -> INTEGER_RANGE
//  4. "float between ..." -> FLOAT_RANGE
//  5. otherwise -> ENUMERATION, split on commas
func DetectValueType(raw string) ValueType {
	value := strings.TrimSpace(raw)
	switch {
	case integerRe.MatchString(value):
		return ValueTypeInteger
	case floatRe.MatchString(value):
		return ValueTypeFloat
	case hasCaseInsensitivePrefix(value, "integer between"):
		return ValueTypeIntegerRange
	case hasCaseInsensitivePrefix(value, "float between"):
		return ValueTypeFloatRange
	default:
		return ValueTypeEnumeration
	}
}

func hasCaseInsensitivePrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

var rangeBoundsRe = regexp.MustCompile(`(?i)^(?:integer|float)\s+between\s+([+-]?\d+(?:\.\d+)?)\s+and\s+([+-]?\d+(?:\.\d+)?)$`)

// ParseRangeBounds extracts (lower, upper, precision) from a trimmed
// "integer|float between X and Y" value spec. precision is 10^k where k is
// the largest number of fractional digits present in either bound (1 for
// purely integral bounds).
func ParseRangeBounds(raw string) (lower, upper float64, precision int, ok bool) {
	m := rangeBoundsRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, 0, 0, false
	}
	lower, _ = strconv.ParseFloat(m[1], 64)
	upper, _ = strconv.ParseFloat(m[2], 64)
	precision = int(math.Pow10(maxInt(fractionalDigits(m[1]), fractionalDigits(m[2]))))
	return lower, upper, precision, true
}

func fractionalDigits(s string) int {
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return len(s) - idx - 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ParseEnumerationLiterals splits a trimmed enumeration value spec on
// commas, trimming whitespace from every literal.
func ParseEnumerationLiterals(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
